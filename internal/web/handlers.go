package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/bizreg/internal/core"
	"github.com/JonMunkholm/bizreg/internal/logging"
)

// handleIndex renders the registration form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, Page("Business Registration", RegistrationForm()))
}

// handleSubmit accepts one registration as JSON and answers with
// {"success": bool, "message": string}.
//
// Status codes: 200 stored, 400 rejected by validation, 413 body too large,
// 500 storage failure.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(WithRequestMetadata(r.Context(), r), s.cfg.Submit.Timeout)
	defer cancel()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Submit.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logging.FromContext(ctx).Warn("submission body too large", "limit", tooLarge.Limit)
			writeJSONStatus(w, http.StatusRequestEntityTooLarge, core.SubmissionResult{
				Success: false,
				Message: "Request body too large",
			})
			return
		}
		logging.FromContext(ctx).Warn("submission body read failed", "error", err)
		writeJSONStatus(w, http.StatusBadRequest, core.SubmissionResult{
			Success: false,
			Message: "Could not read request body",
		})
		return
	}

	result := s.registrar.HandleSubmission(ctx, body)
	writeJSONStatus(w, submissionStatus(result), result)
}

// submissionStatus maps a result onto an HTTP status.
func submissionStatus(res core.SubmissionResult) int {
	switch {
	case res.Success:
		return http.StatusOK
	case res.Message == core.MsgDatabaseFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// handleView renders every business with its items as an HTML table.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	list, err := s.registrar.ListBusinesses(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.render(w, r, Page("Stored Business Data", BusinessTable(list)))
}

// handleListBusinesses returns every business with its items as JSON.
func (s *Server) handleListBusinesses(w http.ResponseWriter, r *http.Request) {
	list, err := s.registrar.ListBusinesses(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status     string `json:"status"`
	Database   string `json:"database"`
	Businesses int64  `json:"businesses"`
}

// handleHealth reports whether the database answers.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.health.Ping(ctx); err != nil {
		logging.FromContext(ctx).Error("health check failed", "error", err, "code", core.MapError(err).Code)
		writeJSONStatus(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}

	resp := HealthResponse{Status: "ok", Database: "ok"}
	if n, err := s.health.CountBusinesses(ctx); err == nil {
		resp.Businesses = n
	}
	writeJSON(w, resp)
}

// writeJSON encodes v as JSON with status 200.
func writeJSON(w http.ResponseWriter, v interface{}) {
	writeJSONStatus(w, http.StatusOK, v)
}

// writeJSONStatus encodes v as JSON with the given status.
// Logs encoding errors since headers are already sent.
func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
