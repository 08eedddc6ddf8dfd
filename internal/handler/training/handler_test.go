package training

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	convmodel "github.com/Hassnain829/Ai-Sales-Representative/internal/model/conversation"
	trainingService "github.com/Hassnain829/Ai-Sales-Representative/internal/service/training"
)

type memStore struct {
	last convmodel.TrainingExample
}

func (m *memStore) InsertTrainingExample(ctx context.Context, ex convmodel.TrainingExample) (int64, error) {
	m.last = ex
	return 7, nil
}

func setupRouter(store *memStore) *chi.Mux {
	r := chi.NewRouter()
	New(trainingService.NewService(store)).RegisterRoutes(r)
	return r
}

func TestAddTrainingExample(t *testing.T) {
	store := &memStore{}
	r := setupRouter(store)

	payload, _ := json.Marshal(map[string]any{
		"text":      "I need a mobile app",
		"intent":    "sales",
		"entities":  map[string]any{"product": "mobile app"},
		"sentiment": "positive",
	})
	req := httptest.NewRequest(http.MethodPost, "/training-data", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var body struct {
		Status string `json:"status"`
		ID     int64  `json:"id"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "success" || body.ID != 7 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if store.last.Source != "api" {
		t.Fatalf("expected api source, got %q", store.last.Source)
	}
}

func TestAddTrainingExampleMissingIntent(t *testing.T) {
	r := setupRouter(&memStore{})

	payload := []byte(`{"text": "hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/training-data", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestRetrainAccepted(t *testing.T) {
	r := setupRouter(&memStore{})

	req := httptest.NewRequest(http.MethodPost, "/models/retrain", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["jobId"] == "" {
		t.Fatal("expected a job id")
	}
}
