package respond

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Hassnain829/Ai-Sales-Representative/internal/model/conversation"
)

// FallbackText is the static last-resort reply.
const FallbackText = "Let me connect you with a specialist."

const defaultTimeout = 10 * time.Second

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// TextGenerator is the generative capability behind tier 2.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, maxLength int) (string, error)
}

// Config tunes the response tiers.
type Config struct {
	// Templates maps intent to its template set; nil selects the defaults.
	Templates map[string][]string
	// Confidence reported for generated responses, in (0,1).
	Confidence float64
	// MaxLength bounds generated output in runes.
	MaxLength int
	// Timeout bounds a single generative call.
	Timeout time.Duration
}

// Generator produces a reply for an intent using a three-tier policy:
// registered template, generative model, static fallback. It never fails;
// every exit path yields a usable ResponseResult.
type Generator struct {
	templates  map[string][]string
	gen        TextGenerator
	confidence float64
	maxLength  int
	timeout    time.Duration
}

// DefaultTemplates returns the seeded template sets.
func DefaultTemplates() map[string][]string {
	return map[string][]string{
		"sales": {
			"Thanks for reaching out! We build {product} solutions for teams of every size. What budget did you have in mind?",
			"Happy to help with your {product} project. Could you tell me a bit more about what you need?",
			"Great question. Our packages are flexible and we can tailor a quote to your goals.",
		},
		"support": {
			"Sorry you're running into trouble. Can you describe what happened right before the issue?",
			"I can help with that. Let's start with the basics so we can get you back on track.",
		},
	}
}

// NewGenerator wires the generative capability; gen may be nil, in which case
// tier 2 is skipped entirely.
func NewGenerator(gen TextGenerator, cfg Config) *Generator {
	templates := cfg.Templates
	if templates == nil {
		templates = DefaultTemplates()
	}

	confidence := cfg.Confidence
	if confidence <= 0 || confidence >= 1 {
		confidence = 0.7
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Generator{
		templates:  templates,
		gen:        gen,
		confidence: confidence,
		maxLength:  cfg.MaxLength,
		timeout:    timeout,
	}
}

// Generate returns a reply for the classified intent. Template binding
// failures and generative failures are absorbed here; callers always get a
// result.
func (g *Generator) Generate(ctx context.Context, intent string, vars map[string]string) conversation.ResponseResult {
	if set, ok := g.templates[intent]; ok && len(set) > 0 {
		template := set[rand.Intn(len(set))]
		text, err := substitute(template, vars)
		if err == nil {
			return conversation.ResponseResult{
				Text:       text,
				Type:       conversation.ResponseTemplate,
				Confidence: 1.0,
			}
		}
		log.Printf("[respond] template binding failed for intent=%s: %v", intent, err)
		return fallback()
	}

	return g.generated(ctx, intent, vars)
}

func (g *Generator) generated(ctx context.Context, intent string, vars map[string]string) conversation.ResponseResult {
	if g.gen == nil {
		return fallback()
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.gen.GenerateText(ctx, buildPrompt(intent, vars), g.maxLength)
	if err != nil || strings.TrimSpace(text) == "" {
		log.Printf("[respond] generative tier failed for intent=%s: %v", intent, generationErr(err))
		return fallback()
	}

	return conversation.ResponseResult{
		Text:       text,
		Type:       conversation.ResponseGenerated,
		Confidence: g.confidence,
	}
}

// generationErr classifies a tier-2 failure for the operator log. These
// errors are absorbed into the static fallback, never surfaced.
func generationErr(err error) error {
	if err == nil {
		return conversation.ErrGeneration
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", conversation.ErrGenerationTimeout, err)
	}
	return fmt.Errorf("%w: %v", conversation.ErrGeneration, err)
}

func fallback() conversation.ResponseResult {
	return conversation.ResponseResult{
		Text:       FallbackText,
		Type:       conversation.ResponseFallback,
		Confidence: 0,
	}
}

// substitute fills {placeholder} tokens from context. Any unresolved
// placeholder fails the whole binding.
func substitute(template string, vars map[string]string) (string, error) {
	var missing []string
	result := placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
		name := token[1 : len(token)-1]
		value, ok := vars[name]
		if !ok || value == "" {
			missing = append(missing, name)
			return token
		}
		return value
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", conversation.ErrTemplateBinding, strings.Join(missing, ", "))
	}
	return result, nil
}

// buildPrompt derives a deterministic prompt from intent and context. Keys are
// sorted so identical input yields an identical prompt.
func buildPrompt(intent string, vars map[string]string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Customer asked about %s.", intent)

	if len(vars) > 0 {
		keys := make([]string, 0, len(vars))
		for key := range vars {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		sb.WriteString(" Context:")
		for _, key := range keys {
			fmt.Fprintf(&sb, " %s=%s", key, vars[key])
		}
		sb.WriteString(".")
	}

	sb.WriteString(" Response:")
	return sb.String()
}
