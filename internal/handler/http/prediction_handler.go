package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-prediction-service/internal/models"
	"github.com/cypherlabdev/match-prediction-service/internal/service"
	"github.com/cypherlabdev/match-prediction-service/pkg/engine"
)

// PredictionHandler handles HTTP requests for match predictions and parlays
type PredictionHandler struct {
	service *service.PredictionService
	logger  zerolog.Logger
}

// NewPredictionHandler creates a new prediction HTTP handler
func NewPredictionHandler(service *service.PredictionService, logger zerolog.Logger) *PredictionHandler {
	return &PredictionHandler{
		service: service,
		logger:  logger.With().Str("component", "prediction_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided mux
func (h *PredictionHandler) RegisterRoutes(mux *http.ServeMux) {
	// GET /api/v1/predictions/:fixture_id - Get a cached fixture prediction
	mux.HandleFunc("/api/v1/predictions/", h.handleGetPrediction)

	// GET /api/v1/batches/:batch_id/parlays - Get ranked parlays for a batch
	mux.HandleFunc("/api/v1/batches/", h.handleGetParlays)

	// POST /api/v1/runs - Run the engine over an inline fixture batch
	mux.HandleFunc("/api/v1/runs", h.handleRun)
}

// handleGetPrediction handles GET /api/v1/predictions/:fixture_id
func (h *PredictionHandler) handleGetPrediction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Parse path: /api/v1/predictions/:fixture_id
	fixtureID := strings.TrimPrefix(r.URL.Path, "/api/v1/predictions/")
	if fixtureID == "" || strings.Contains(fixtureID, "/") {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/predictions/:fixture_id")
		return
	}

	prediction, err := h.service.GetPrediction(r.Context(), fixtureID)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Str("fixture_id", fixtureID).
			Msg("prediction not found")
		h.errorResponse(w, http.StatusNotFound, "prediction not found")
		return
	}

	h.jsonResponse(w, http.StatusOK, prediction)
}

// handleGetParlays handles GET /api/v1/batches/:batch_id/parlays
func (h *PredictionHandler) handleGetParlays(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Parse path: /api/v1/batches/:batch_id/parlays
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/batches/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || parts[1] != "parlays" {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/batches/:batch_id/parlays")
		return
	}

	batchID := parts[0]
	if batchID == "" {
		h.errorResponse(w, http.StatusBadRequest, "batch_id is required")
		return
	}

	parlays, err := h.service.GetParlays(r.Context(), batchID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("batch_id", batchID).
			Msg("failed to retrieve parlays")
		h.errorResponse(w, http.StatusInternalServerError, "failed to retrieve parlays")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"batch_id": batchID,
		"count":    len(parlays),
		"parlays":  parlays,
	})
}

// RunRequest is the request body for POST /api/v1/runs
type RunRequest struct {
	BatchID  string              `json:"batch_id"`
	Fixtures []models.Fixture    `json:"fixtures"`
	Quotes   []models.OddsQuote  `json:"quotes"`
	Signals  models.SignalInputs `json:"signals"`
}

// handleRun handles POST /api/v1/runs
func (h *PredictionHandler) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Fixtures) == 0 {
		h.errorResponse(w, http.StatusBadRequest, "at least one fixture is required")
		return
	}

	result, err := h.service.Run(r.Context(), engine.RunInput{
		BatchID:  req.BatchID,
		Fixtures: req.Fixtures,
		Quotes:   req.Quotes,
		Signals:  req.Signals,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("batch_id", req.BatchID).
			Msg("engine run failed")
		h.errorResponse(w, http.StatusInternalServerError, "engine run failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, result)
}

// jsonResponse writes a JSON response
func (h *PredictionHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *PredictionHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
