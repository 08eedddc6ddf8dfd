package training

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Hassnain829/Ai-Sales-Representative/internal/model/conversation"
)

var ErrMissingFields = errors.New("text and intent are required")

// Store appends labeled examples for the future retraining workflow.
type Store interface {
	InsertTrainingExample(ctx context.Context, ex conversation.TrainingExample) (int64, error)
}

// Service validates and records training examples. Examples are independent
// of conversation records; there is no referential link between the two.
type Service struct {
	store Store
}

// NewService wires the training-data store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// AddExample validates and appends one labeled example, returning its id.
func (s *Service) AddExample(ctx context.Context, ex conversation.TrainingExample) (int64, error) {
	if strings.TrimSpace(ex.Text) == "" || strings.TrimSpace(ex.Intent) == "" {
		return 0, ErrMissingFields
	}

	if ex.Source == "" {
		ex.Source = "api"
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now().UTC()
	}

	return s.store.InsertTrainingExample(ctx, ex)
}
