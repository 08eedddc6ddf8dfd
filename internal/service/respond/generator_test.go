package respond

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Hassnain829/Ai-Sales-Representative/internal/model/conversation"
)

type stubTextGenerator struct {
	text string
	err  error
}

func (s *stubTextGenerator) GenerateText(ctx context.Context, prompt string, maxLength int) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func TestGenerateTemplateTier(t *testing.T) {
	gen := NewGenerator(nil, Config{
		Templates: map[string][]string{
			"sales": {"We can build your {product} for you."},
		},
	})

	result := gen.Generate(context.Background(), "sales", map[string]string{"product": "website"})
	if result.Type != conversation.ResponseTemplate {
		t.Fatalf("expected template response, got %s", result.Type)
	}
	if result.Text != "We can build your website for you." {
		t.Fatalf("unexpected text: %q", result.Text)
	}
	if result.Confidence != 1.0 {
		t.Fatalf("template confidence must be 1.0, got %f", result.Confidence)
	}
}

func TestGenerateTemplatePickStaysInSet(t *testing.T) {
	set := []string{"Alpha.", "Beta.", "Gamma."}
	gen := NewGenerator(nil, Config{Templates: map[string][]string{"sales": set}})

	for i := 0; i < 20; i++ {
		result := gen.Generate(context.Background(), "sales", nil)
		found := false
		for _, tpl := range set {
			if result.Text == tpl {
				found = true
			}
		}
		if !found {
			t.Fatalf("response %q not in template set", result.Text)
		}
	}
}

func TestGenerateMissingPlaceholderFallsBack(t *testing.T) {
	gen := NewGenerator(&stubTextGenerator{text: "should not be used"}, Config{
		Templates: map[string][]string{
			"sales": {"Your {product} is ready for {budget}."},
		},
	})

	result := gen.Generate(context.Background(), "sales", map[string]string{"product": "website"})
	if result.Type != conversation.ResponseFallback {
		t.Fatalf("expected fallback after binding failure, got %s", result.Type)
	}
	if result.Text != FallbackText || result.Confidence != 0 {
		t.Fatalf("unexpected fallback: %+v", result)
	}
}

func TestGenerateGenerativeTier(t *testing.T) {
	gen := NewGenerator(&stubTextGenerator{text: "Our billing team can sort that out."}, Config{
		Templates: map[string][]string{},
	})

	result := gen.Generate(context.Background(), "billing", map[string]string{"sentiment": "NEGATIVE"})
	if result.Type != conversation.ResponseGenerated {
		t.Fatalf("expected generated response, got %s", result.Type)
	}
	if result.Confidence != 0.7 {
		t.Fatalf("expected default 0.7 confidence, got %f", result.Confidence)
	}
	if result.Text != "Our billing team can sort that out." {
		t.Fatalf("unexpected text: %q", result.Text)
	}
}

func TestGenerateGeneratorErrorFallsBack(t *testing.T) {
	gen := NewGenerator(&stubTextGenerator{err: errors.New("model offline")}, Config{
		Templates: map[string][]string{},
	})

	result := gen.Generate(context.Background(), "technical", nil)
	want := conversation.ResponseResult{Text: FallbackText, Type: conversation.ResponseFallback, Confidence: 0}
	if result != want {
		t.Fatalf("expected exact static fallback, got %+v", result)
	}
}

func TestGenerateNoGeneratorNoTemplate(t *testing.T) {
	gen := NewGenerator(nil, Config{Templates: map[string][]string{}})

	result := gen.Generate(context.Background(), "technical", nil)
	want := conversation.ResponseResult{Text: FallbackText, Type: conversation.ResponseFallback, Confidence: 0}
	if result != want {
		t.Fatalf("expected exact static fallback, got %+v", result)
	}
}

func TestGenerateConfiguredConfidence(t *testing.T) {
	gen := NewGenerator(&stubTextGenerator{text: "ok"}, Config{
		Templates:  map[string][]string{},
		Confidence: 0.55,
	})

	result := gen.Generate(context.Background(), "billing", nil)
	if result.Confidence != 0.55 {
		t.Fatalf("expected configured confidence, got %f", result.Confidence)
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	vars := map[string]string{"product": "website", "budget": "5000", "sentiment": "POSITIVE"}
	first := buildPrompt("sales", vars)
	second := buildPrompt("sales", vars)
	if first != second {
		t.Fatalf("prompt not deterministic: %q vs %q", first, second)
	}
	if !strings.Contains(first, "budget=5000") || !strings.Contains(first, "Customer asked about sales.") {
		t.Fatalf("unexpected prompt: %q", first)
	}
}
