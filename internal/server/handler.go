package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/abhisek/mathcheck/internal/grading"
	"github.com/abhisek/mathcheck/internal/mathcheck"
	"github.com/abhisek/mathcheck/internal/verdictlog"
)

// VerdictRecorder stores served comparisons. *verdictlog.Store satisfies it.
type VerdictRecorder interface {
	Append(ctx context.Context, e verdictlog.Entry) (int64, error)
}

// Handler provides the checking API endpoints.
type Handler struct {
	checker  *mathcheck.Checker
	grader   *grading.Grader
	recorder VerdictRecorder // nil disables the verdict log
	metrics  *Metrics
	logger   *zap.Logger
	version  string
	maxBody  int64
}

// RegisterRoutes sets up all API routes on r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.handleHealth).Methods("GET")
	r.HandleFunc("/info", h.handleInfo).Methods("GET")

	// Full paths rather than a /v1 subrouter: mux only reports 405 for
	// method mismatches on routes of the router being matched.
	r.HandleFunc("/v1/compare", h.handleCompare).Methods("POST")
	r.HandleFunc("/v1/explain", h.handleExplain).Methods("POST")
	r.HandleFunc("/v1/normalize", h.handleNormalize).Methods("POST")
	r.HandleFunc("/v1/grade", h.handleGrade).Methods("POST")
}

type compareRequest struct {
	User    string `json:"user"`
	Correct string `json:"correct"`
}

type compareResponse struct {
	Equivalent bool               `json:"equivalent"`
	Strategy   mathcheck.Strategy `json:"strategy"`
	RequestID  string             `json:"request_id"`
}

type normalizeRequest struct {
	Answer string `json:"answer"`
}

type gradeRequest struct {
	Exercise grading.Exercise  `json:"exercise"`
	Answers  map[string]string `json:"answers"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("encode response", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// decode reads a JSON body of at most maxBody bytes into v.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		h.respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	cfg := h.checker.Config()
	h.respondJSON(w, http.StatusOK, map[string]any{
		"version":         h.version,
		"tolerance":       cfg.Tolerance,
		"max_exponent":    cfg.MaxExponent,
		"max_depth":       cfg.MaxDepth,
		"max_input_len":   cfg.MaxInputLen,
		"verdict_logging": h.recorder != nil,
	})
}

func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !h.decode(w, r, &req) {
		return
	}

	strategy := h.checker.Match(req.User, req.Correct)
	h.metrics.ObserveComparison(strategy)
	h.record(r.Context(), req.User, req.Correct, strategy)

	h.respondJSON(w, http.StatusOK, compareResponse{
		Equivalent: strategy != mathcheck.StrategyNone,
		Strategy:   strategy,
		RequestID:  RequestID(r.Context()),
	})
}

func (h *Handler) handleExplain(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !h.decode(w, r, &req) {
		return
	}

	ex := h.checker.Explain(req.User, req.Correct)
	h.metrics.ObserveComparison(ex.Strategy)
	h.respondJSON(w, http.StatusOK, ex)
}

func (h *Handler) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{
		"normalized": mathcheck.Normalize(req.Answer),
	})
}

func (h *Handler) handleGrade(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.grader.Grade(req.Exercise, req.Answers)
	if err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	for i, qr := range res.Questions {
		h.metrics.ObserveComparison(qr.Strategy)
		h.record(r.Context(), qr.Given, req.Exercise.Questions[i].Answer, qr.Strategy)
	}
	h.respondJSON(w, http.StatusOK, res)
}

// record appends a verdict to the log. Failures are logged and otherwise
// ignored: the learner still gets a verdict.
func (h *Handler) record(ctx context.Context, user, correct string, strategy mathcheck.Strategy) {
	if h.recorder == nil || strings.TrimSpace(user) == "" {
		return
	}
	reqID := RequestID(ctx)
	_, err := h.recorder.Append(ctx, verdictlog.Entry{
		RequestID:         reqID,
		User:              user,
		Correct:           correct,
		UserNormalized:    mathcheck.Normalize(user),
		CorrectNormalized: mathcheck.Normalize(correct),
		Strategy:          string(strategy),
		Equivalent:        strategy != mathcheck.StrategyNone,
	})
	if err != nil {
		h.logger.Warn("record verdict", zap.String("request_id", reqID), zap.Error(err))
	}
}
