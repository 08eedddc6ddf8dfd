package training

import (
	"context"
	"errors"
	"testing"

	"github.com/Hassnain829/Ai-Sales-Representative/internal/model/conversation"
)

type memStore struct {
	last conversation.TrainingExample
}

func (m *memStore) InsertTrainingExample(ctx context.Context, ex conversation.TrainingExample) (int64, error) {
	m.last = ex
	return 42, nil
}

func TestAddExample(t *testing.T) {
	store := &memStore{}
	svc := NewService(store)

	id, err := svc.AddExample(context.Background(), conversation.TrainingExample{
		Text:   "I need a mobile app",
		Intent: "sales",
	})
	if err != nil {
		t.Fatalf("AddExample err: %v", err)
	}
	if id != 42 {
		t.Fatalf("unexpected id: %d", id)
	}
	if store.last.Source != "api" {
		t.Fatalf("expected api source default, got %q", store.last.Source)
	}
	if store.last.CreatedAt.IsZero() {
		t.Fatal("expected created timestamp to be set")
	}
}

func TestAddExampleMissingFields(t *testing.T) {
	svc := NewService(&memStore{})

	if _, err := svc.AddExample(context.Background(), conversation.TrainingExample{Text: "hello"}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected missing-fields error, got %v", err)
	}
	if _, err := svc.AddExample(context.Background(), conversation.TrainingExample{Intent: "sales"}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected missing-fields error, got %v", err)
	}
}

func TestAddExampleKeepsExplicitSource(t *testing.T) {
	store := &memStore{}
	svc := NewService(store)

	if _, err := svc.AddExample(context.Background(), conversation.TrainingExample{
		Text:   "billing question",
		Intent: "billing",
		Source: "imported",
	}); err != nil {
		t.Fatalf("AddExample err: %v", err)
	}
	if store.last.Source != "imported" {
		t.Fatalf("expected imported source, got %q", store.last.Source)
	}
}
