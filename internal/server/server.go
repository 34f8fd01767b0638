// Package server exposes the deal calculators over a JSON HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/iwvelando/deal-metrics/internal/config"
	"github.com/iwvelando/deal-metrics/internal/scenario"
	"github.com/iwvelando/deal-metrics/pkg/constants"
	"github.com/iwvelando/deal-metrics/pkg/loans"
	"github.com/iwvelando/deal-metrics/pkg/metrics"
	"github.com/iwvelando/deal-metrics/pkg/sensitivity"
	"github.com/iwvelando/deal-metrics/pkg/validation"
	"github.com/iwvelando/deal-metrics/pkg/valuation"
	"go.uber.org/zap"
)

type handler struct {
	logger       *zap.Logger
	orchestrator *scenario.Orchestrator
	maxBodySize  int64
	version      string
}

// NewHandler constructs the router serving the deal analysis API.
func NewHandler(logger *zap.Logger, orchestrator *scenario.Orchestrator, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:       logger,
		orchestrator: orchestrator,
		maxBodySize:  maxBodySize,
		version:      trimmedVersion,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Post("/mortgage/schedule", h.handleMortgageSchedule)
		r.Post("/scenario/analyze", h.handleScenarioAnalyze)
		r.Post("/sensitivity/flip", h.handleFlipSensitivity)
		r.Post("/arv", h.handleARV)
	})

	return r
}

func (h *handler) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		h.logger.Debug("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

type mortgageRequest struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annualRate"`
	Months     int     `json:"months"`
}

type mortgageResponse struct {
	loans.Summary
	Schedule []loans.Payment `json:"schedule"`
}

func (h *handler) handleMortgageSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleMortgageSchedule"

	var req mortgageRequest
	if !h.decode(w, r, &req, op) {
		return
	}

	schedule, err := loans.Amortize(req.Principal, req.AnnualRate, req.Months)
	if err != nil {
		h.respondCalculationError(w, err, op)
		return
	}

	h.writeJSON(w, http.StatusOK, mortgageResponse{
		Summary:  loans.Summarize(schedule),
		Schedule: schedule,
	})
}

// analyzeResponse replaces the infinite break-even horizons that JSON cannot
// carry with null.
type analyzeResponse struct {
	scenario.Result
	BreakEvenMonths *float64 `json:"breakEvenMonths"`
}

func (h *handler) handleScenarioAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenarioAnalyze"

	var deal config.Deal
	if !h.decode(w, r, &deal, op) {
		return
	}

	assumptions, err := deal.Assumptions(config.Analysis{})
	if err != nil {
		h.respondCalculationError(w, err, op)
		return
	}

	result, err := h.orchestrator.Analyze(assumptions)
	if err != nil {
		h.respondCalculationError(w, err, op)
		return
	}

	response := analyzeResponse{Result: result}
	if result.Strategy != scenario.Flip && !math.IsInf(result.BreakEvenMonths, 0) && !math.IsNaN(result.BreakEvenMonths) {
		months := result.BreakEvenMonths
		response.BreakEvenMonths = &months
	}
	h.writeJSON(w, http.StatusOK, response)
}

type flipSensitivityRequest struct {
	Base             metrics.FlipInputs `json:"base"`
	VariationPercent *float64           `json:"variationPercent"`
}

func (h *handler) handleFlipSensitivity(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleFlipSensitivity"

	var req flipSensitivityRequest
	if !h.decode(w, r, &req, op) {
		return
	}

	variation := constants.DefaultVariationPercent
	if req.VariationPercent != nil {
		variation = *req.VariationPercent
	}

	result, err := sensitivity.Flip(req.Base, variation)
	if err != nil {
		h.respondCalculationError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

type arvRequest struct {
	Comparables []valuation.Comparable `json:"comparables"`
	SubjectArea float64                `json:"subjectArea"`
}

type arvResponse struct {
	ARV          float64   `json:"arv"`
	PricePerArea []float64 `json:"pricePerArea"`
}

func (h *handler) handleARV(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleARV"

	var req arvRequest
	if !h.decode(w, r, &req, op) {
		return
	}

	arv, err := valuation.EstimateARV(req.Comparables, req.SubjectArea)
	if err != nil {
		h.respondCalculationError(w, err, op)
		return
	}
	prices, err := valuation.PricePerArea(req.Comparables)
	if err != nil {
		h.respondCalculationError(w, err, op)
		return
	}

	h.writeJSON(w, http.StatusOK, arvResponse{ARV: arv, PricePerArea: prices})
}

// decode reads a size-limited JSON body into dst, responding with an error
// and returning false on failure.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondCalculationError(w http.ResponseWriter, err error, op string) {
	status := http.StatusInternalServerError
	if validation.IsValidationError(err) || errors.Is(err, scenario.ErrUnsupportedStrategy) {
		status = http.StatusBadRequest
	}
	h.respondErrorWithOp(w, status, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before committing the status so an unencodable
// value becomes a 500 rather than a 200 with an empty body.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
		body.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&body).Encode(map[string]string{"error": "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
