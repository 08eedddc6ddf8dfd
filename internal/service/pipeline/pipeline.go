package pipeline

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/Hassnain829/Ai-Sales-Representative/internal/model/conversation"
)

// Analyzer is the text-analysis stage.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (conversation.Analysis, error)
}

// Responder is the response-generation stage. By contract it cannot fail.
type Responder interface {
	Generate(ctx context.Context, intent string, vars map[string]string) conversation.ResponseResult
}

// Recorder is the persistence boundary. Its failures never surface to the
// end user.
type Recorder interface {
	SaveConversation(ctx context.Context, rec conversation.Record) error
}

// Deps wires the pipeline stages. Recorder may be nil when persistence is
// not configured.
type Deps struct {
	Analyzer  Analyzer
	Responder Responder
	Recorder  Recorder
}

// Pipeline orchestrates a single message through
// Received -> Analyzed -> ResponseGenerated -> Logged (best-effort).
// Invocations are independent; the only shared state is the injected
// long-lived handles.
type Pipeline struct {
	analyzer  Analyzer
	responder Responder
	recorder  Recorder
}

// New constructs the orchestrator.
func New(deps Deps) *Pipeline {
	return &Pipeline{
		analyzer:  deps.Analyzer,
		responder: deps.Responder,
		recorder:  deps.Recorder,
	}
}

// Result is the successful outcome of processing one message.
type Result struct {
	SessionID string                      `json:"sessionId"`
	Response  conversation.ResponseResult `json:"response"`
	Analysis  conversation.Analysis       `json:"analysis"`
}

// ProcessMessage validates, analyzes, and answers a customer message, then
// records the interaction best-effort. Analysis failures abort and nothing is
// persisted; persistence failures are logged and the result is still success.
func (p *Pipeline) ProcessMessage(ctx context.Context, text, sessionID string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, conversation.ErrEmptyMessage
	}

	analysis, err := p.analyzer.Analyze(ctx, text)
	if err != nil {
		return Result{}, fmt.Errorf("analyze message: %w", err)
	}

	response := p.responder.Generate(ctx, analysis.Intent, responseVars(analysis))

	if p.recorder != nil {
		rec := conversation.Record{
			SessionID:     sessionID,
			Transcript:    text,
			Intent:        analysis.Intent,
			Entities:      analysis.Entities,
			Sentiment:     analysis.Sentiment,
			AgentResponse: response.Text,
			Timestamp:     analysis.Timestamp,
		}
		if err := p.recorder.SaveConversation(ctx, rec); err != nil {
			log.Printf("[pipeline] failed to log conversation session=%s: %v", sessionID, err)
		} else {
			log.Printf("[pipeline] logged conversation session=%s intent=%s", sessionID, analysis.Intent)
		}
	}

	return Result{SessionID: sessionID, Response: response, Analysis: analysis}, nil
}

// responseVars flattens the analysis into template/prompt variables. Nil
// entities are dropped so missing placeholders are detected downstream.
func responseVars(analysis conversation.Analysis) map[string]string {
	vars := map[string]string{
		"intent":    analysis.Intent,
		"sentiment": analysis.Sentiment,
	}

	for key, value := range analysis.Entities {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			vars[key] = v
		case float64:
			vars[key] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			vars[key] = fmt.Sprintf("%v", v)
		}
	}
	return vars
}
