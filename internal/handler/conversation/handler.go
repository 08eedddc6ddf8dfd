package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	convmodel "github.com/Hassnain829/Ai-Sales-Representative/internal/model/conversation"
	"github.com/Hassnain829/Ai-Sales-Representative/internal/service/pipeline"
	"github.com/Hassnain829/Ai-Sales-Representative/pkg/utils"
)

// Processor runs the message pipeline.
type Processor interface {
	ProcessMessage(ctx context.Context, text, sessionID string) (pipeline.Result, error)
}

// HistoryStore reads back persisted conversation records.
type HistoryStore interface {
	ListBySession(ctx context.Context, sessionID string) ([]convmodel.Record, error)
}

// Handler exposes the conversation endpoints.
type Handler struct {
	pipeline Processor
	history  HistoryStore
}

// New creates the conversation handler. history may be nil when persistence
// is not configured.
func New(p Processor, history HistoryStore) *Handler {
	return &Handler{pipeline: p, history: history}
}

// RegisterRoutes mounts the conversation endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/conversations", h.handleConversation)
	r.Get("/conversations/{sessionID}", h.handleHistory)
}

func (h *Handler) handleConversation(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text      string `json:"text"`
		SessionID string `json:"sessionId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Text) == "" {
		log.Printf("[conversation] rejected request with missing text")
		utils.RespondError(w, http.StatusBadRequest, "missing required 'text' parameter")
		return
	}

	sessionID := payload.SessionID
	if sessionID == "" {
		sessionID = newSessionID()
	}

	result, err := h.pipeline.ProcessMessage(r.Context(), payload.Text, sessionID)
	if err != nil {
		if errors.Is(err, convmodel.ErrEmptyMessage) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[conversation] pipeline failed session=%s: %v", sessionID, err)
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

type historyEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
	Response  string    `json:"response"`
	Intent    string    `json:"intent"`
	Sentiment string    `json:"sentiment"`
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "conversation history unavailable")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	records, err := h.history.ListBySession(r.Context(), sessionID)
	if err != nil {
		log.Printf("[conversation] failed to fetch history session=%s: %v", sessionID, err)
		utils.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if len(records) == 0 {
		utils.RespondError(w, http.StatusNotFound, "conversation not found")
		return
	}

	entries := make([]historyEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, historyEntry{
			Timestamp: rec.Timestamp,
			Text:      rec.Transcript,
			Response:  rec.AgentResponse,
			Intent:    rec.Intent,
			Sentiment: rec.Sentiment,
		})
	}

	utils.RespondJSON(w, http.StatusOK, entries)
}

// newSessionID mints "conv_" plus 8 hex chars for callers that did not
// provide their own session.
func newSessionID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "conv_" + hex[:8]
}
