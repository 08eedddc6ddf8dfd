package call

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Hassnain829/Ai-Sales-Representative/internal/telephony"
	"github.com/Hassnain829/Ai-Sales-Representative/pkg/utils"
)

// Handler exposes outbound call placement.
type Handler struct {
	dialer telephony.Dialer
}

// New creates the call handler. dialer may be nil when telephony is not
// configured.
func New(dialer telephony.Dialer) *Handler {
	return &Handler{dialer: dialer}
}

// RegisterRoutes mounts the call endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/calls", h.handlePlaceCall)
}

func (h *Handler) handlePlaceCall(w http.ResponseWriter, r *http.Request) {
	if h.dialer == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "telephony not configured")
		return
	}

	var payload struct {
		To      string `json:"to"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.To) == "" || strings.TrimSpace(payload.Message) == "" {
		utils.RespondError(w, http.StatusBadRequest, "to and message are required")
		return
	}

	sid, err := h.dialer.PlaceCall(r.Context(), payload.To, payload.Message)
	if err != nil {
		log.Printf("[call] failed to place call to=%s: %v", payload.To, err)
		utils.RespondError(w, http.StatusBadGateway, "call placement failed")
		return
	}

	utils.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "queued", "callSid": sid})
}
