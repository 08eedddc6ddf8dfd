package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Hassnain829/Ai-Sales-Representative/internal/model/conversation"
)

// DefaultCandidates is the intent label set used when none is configured.
var DefaultCandidates = []string{"sales", "support", "billing", "technical"}

const defaultTimeout = 15 * time.Second

// LabelScore pairs a classification label with its probability.
type LabelScore struct {
	Label string
	Score float64
}

// Classifier is the model-serving capability the analyzer depends on.
// Implementations must be long-lived and safe for concurrent use.
type Classifier interface {
	ClassifyIntent(ctx context.Context, text string, candidates []string) ([]LabelScore, error)
	ClassifySentiment(ctx context.Context, text string) (LabelScore, error)
}

// Analyzer turns raw text into an Analysis: intent, sentiment, entities.
type Analyzer struct {
	classifier Classifier
	candidates []string
	timeout    time.Duration
}

// NewAnalyzer wires the classification capability with its candidate set.
// A nil or empty candidate list falls back to DefaultCandidates.
func NewAnalyzer(classifier Classifier, candidates []string, timeout time.Duration) *Analyzer {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Analyzer{classifier: classifier, candidates: candidates, timeout: timeout}
}

// Analyze runs intent classification, sentiment scoring, and entity
// extraction for a single message. Classification errors propagate; they are
// never silently defaulted.
func (a *Analyzer) Analyze(ctx context.Context, text string) (conversation.Analysis, error) {
	if a.classifier == nil {
		return conversation.Analysis{}, fmt.Errorf("classifier unavailable: %w", conversation.ErrAnalysis)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	ranked, err := a.classifier.ClassifyIntent(ctx, text, a.candidates)
	if err != nil {
		return conversation.Analysis{}, wrapClassifyErr("classify intent", err)
	}
	if len(ranked) == 0 {
		return conversation.Analysis{}, fmt.Errorf("classifier returned no labels: %w", conversation.ErrAnalysis)
	}

	intent, intentScore := a.pickIntent(ranked)

	sentiment, err := a.classifier.ClassifySentiment(ctx, text)
	if err != nil {
		return conversation.Analysis{}, wrapClassifyErr("classify sentiment", err)
	}
	if sentiment.Label == "" {
		return conversation.Analysis{}, fmt.Errorf("sentiment result missing label: %w", conversation.ErrAnalysis)
	}

	return conversation.Analysis{
		Intent:           intent,
		IntentConfidence: clampScore(intentScore),
		Sentiment:        sentiment.Label,
		SentimentScore:   clampScore(sentiment.Score),
		Entities:         ExtractEntities(text),
		Timestamp:        time.Now().UTC(),
	}, nil
}

// pickIntent re-ranks the returned scores against the configured candidate
// order. Strict > comparison means ties resolve to the earlier candidate, so
// the choice is stable regardless of upstream ordering.
func (a *Analyzer) pickIntent(ranked []LabelScore) (string, float64) {
	scores := make(map[string]float64, len(ranked))
	for _, ls := range ranked {
		scores[ls.Label] = ls.Score
	}

	best := ""
	bestScore := -1.0
	for _, candidate := range a.candidates {
		score, ok := scores[candidate]
		if !ok {
			continue
		}
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	if best == "" {
		// Classifier answered with labels outside the candidate set; trust
		// its top-ranked entry rather than inventing one.
		return ranked[0].Label, ranked[0].Score
	}
	return best, bestScore
}

func wrapClassifyErr(stage string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", stage, conversation.ErrAnalysisTimeout)
	}
	return fmt.Errorf("%s: %w: %v", stage, conversation.ErrAnalysis, err)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
