package training

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	convmodel "github.com/Hassnain829/Ai-Sales-Representative/internal/model/conversation"
	trainingService "github.com/Hassnain829/Ai-Sales-Representative/internal/service/training"
	"github.com/Hassnain829/Ai-Sales-Representative/pkg/utils"
)

// Ingestor records labeled training examples.
type Ingestor interface {
	AddExample(ctx context.Context, ex convmodel.TrainingExample) (int64, error)
}

// Handler exposes the training-data endpoints.
type Handler struct {
	ingestor Ingestor
}

// New creates the training handler. ingestor may be nil when persistence is
// not configured.
func New(ingestor Ingestor) *Handler {
	return &Handler{ingestor: ingestor}
}

// RegisterRoutes mounts the training endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/training-data", h.handleAddExample)
	r.Post("/models/retrain", h.handleRetrain)
}

func (h *Handler) handleAddExample(w http.ResponseWriter, r *http.Request) {
	if h.ingestor == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "training ingestion unavailable")
		return
	}

	var payload struct {
		Text      string         `json:"text"`
		Intent    string         `json:"intent"`
		Entities  map[string]any `json:"entities"`
		Sentiment string         `json:"sentiment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.ingestor.AddExample(r.Context(), convmodel.TrainingExample{
		Text:      payload.Text,
		Intent:    payload.Intent,
		Entities:  payload.Entities,
		Sentiment: payload.Sentiment,
		Source:    "api",
	})
	if err != nil {
		if errors.Is(err, trainingService.ErrMissingFields) {
			utils.RespondError(w, http.StatusBadRequest, "missing required fields: text, intent")
			return
		}
		log.Printf("[training] failed to add example: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	log.Printf("[training] added example for intent=%s", payload.Intent)
	utils.RespondJSON(w, http.StatusCreated, map[string]any{"status": "success", "id": id})
}

// handleRetrain accepts the retraining trigger. Actual training runs in a
// separate offline workflow; the API only acknowledges the request.
func (h *Handler) handleRetrain(w http.ResponseWriter, r *http.Request) {
	jobID := uuid.NewString()
	log.Printf("[training] retraining requested job=%s", jobID)
	utils.RespondJSON(w, http.StatusAccepted, map[string]string{
		"status": "Retraining initiated",
		"jobId":  jobID,
	})
}
