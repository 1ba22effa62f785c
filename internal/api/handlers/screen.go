package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/ztrader/etfscreener/internal/contracts"
	"github.com/ztrader/etfscreener/internal/marketdata"
	"github.com/ztrader/etfscreener/internal/screening"
	"github.com/ztrader/etfscreener/internal/selector"
	"github.com/ztrader/etfscreener/internal/selectorconfig"
	"github.com/ztrader/etfscreener/pkg/logger"
)

// ScreenHandler handles screening API endpoints. Runs are serialized under
// the mutex: the pipeline itself is strictly sequential, so concurrent
// requests queue rather than interleave.
type ScreenHandler struct {
	defaults screening.Params
	registry *selector.Registry
	logger   *logger.Logger

	mu   sync.Mutex
	last *contracts.ScreeningResult
}

// NewScreenHandler creates a new screening handler.
func NewScreenHandler(defaults screening.Params, registry *selector.Registry, log *logger.Logger) *ScreenHandler {
	return &ScreenHandler{
		defaults: defaults,
		registry: registry,
		logger:   log,
	}
}

// screenRequest optionally overrides the per-run parameters.
type screenRequest struct {
	Date  string `json:"date,omitempty"`
	Codes string `json:"codes,omitempty"`
}

// RunScreen triggers a screening run
// POST /api/screen {"date": "2026-08-24", "codes": "510300,159915"}
func (h *ScreenHandler) RunScreen(w http.ResponseWriter, r *http.Request) {
	var req screenRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	params := h.defaults
	if req.Date != "" {
		params.Date = req.Date
	}
	if req.Codes != "" {
		params.Codes = req.Codes
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := screening.Run(r.Context(), params, h.registry, h.logger)
	if err != nil {
		h.logger.WithError(err).Error("Screening run failed")
		respondError(w, statusFor(err), err.Error())
		return
	}

	h.last = result
	respondJSON(w, http.StatusOK, result)
}

// GetResults returns the last completed run
// GET /api/results
func (h *ScreenHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	last := h.last
	h.mu.Unlock()

	if last == nil {
		respondError(w, http.StatusNotFound, "no screening run completed yet")
		return
	}
	respondJSON(w, http.StatusOK, last)
}

// statusFor maps the pipeline's fatal sentinels onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, marketdata.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, marketdata.ErrDataUnavailable),
		errors.Is(err, selectorconfig.ErrConfigMissing),
		errors.Is(err, selectorconfig.ErrConfigEmpty):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
