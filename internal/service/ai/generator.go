package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/Hassnain829/Ai-Sales-Representative/internal/config"
)

const systemPrompt = "You are a concise, friendly sales assistant for a software agency. " +
	"Answer the customer in one or two short sentences and always stay on topic."

// Generator wraps the Ark chat model behind a compiled eino chain. It is
// created once at startup and shared across requests.
type Generator struct {
	chain     compose.Runnable[map[string]any, *schema.Message]
	maxLength int
}

// NewGenerator builds the chat model handle and compiles the prompt chain.
func NewGenerator(ctx context.Context, cfg config.GenerationConfig) (*Generator, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile generation chain: %w", err)
	}

	return &Generator{chain: runnable, maxLength: cfg.MaxLength}, nil
}

// GenerateText runs the chain for a single prompt. Output is truncated to
// maxLength runes; zero means the configured default.
func (g *Generator) GenerateText(ctx context.Context, query string, maxLength int) (string, error) {
	input := map[string]any{
		"system": systemPrompt,
		"query":  query,
	}

	response, err := g.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("run generation chain: %w", err)
	}

	text := strings.TrimSpace(response.Content)
	if text == "" {
		return "", fmt.Errorf("generation chain returned empty content")
	}

	if maxLength <= 0 {
		maxLength = g.maxLength
	}
	return truncate(text, maxLength), nil
}

func truncate(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit]))
}
