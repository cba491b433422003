package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/erdlayout/pkg/buildinfo"
	"github.com/matzehuels/erdlayout/pkg/errors"
	"github.com/matzehuels/erdlayout/pkg/layout"
	"github.com/matzehuels/erdlayout/pkg/pipeline"
	"github.com/matzehuels/erdlayout/pkg/schema"
)

// LayoutRequest is the body of POST /api/layout.
type LayoutRequest struct {
	Schema   schema.Schema    `json:"schema"`
	Bounds   *layout.Bounds   `json:"bounds,omitempty"`
	Settings layout.Overrides `json:"settings"`
	Refresh  bool             `json:"refresh,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Schema.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{Settings: req.Settings, Refresh: req.Refresh, Logger: s.logger}
	if req.Bounds != nil {
		opts.Width, opts.Height = req.Bounds.Width, req.Bounds.Height
	}

	result, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), req.Schema, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.runner.Engine.Settings())
}

func (s *Server) handlePatchSettings(w http.ResponseWriter, r *http.Request) {
	var o layout.Overrides
	if err := decodeJSON(w, r, &o); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.runner.Engine.UpdateSettings(o); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("settings updated", "request_id", RequestIDFrom(r.Context()))
	writeJSON(w, http.StatusOK, s.runner.Engine.Settings())
}

// decodeJSON decodes a size-limited body, rejecting unknown fields and
// trailing data.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New(errors.ErrCodeInvalidInput, "request body must contain a single JSON object")
	}
	return nil
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := ErrorResponse{
		Error:     errors.UserMessage(err),
		Code:      errors.GetCode(err),
		RequestID: RequestIDFrom(r.Context()),
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", resp.RequestID)
		resp.Error = "internal error"
		resp.Code = errors.ErrCodeInternal
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
