package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"skintone-studio/capture"
	"skintone-studio/logger"
	"skintone-studio/repository"
	"skintone-studio/scene"
	"skintone-studio/service"
)

type sessionKey struct{}

// SessionHeader carries the browser session identity
const SessionHeader = "X-Session-ID"

// WithSession stores the session id in the context
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

// SessionID returns the session id set by the session middleware
func SessionID(r *http.Request) string {
	if id, ok := r.Context().Value(sessionKey{}).(string); ok {
		return id
	}
	return r.Header.Get(SessionHeader)
}

// errorResponse is the JSON error body
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, log *logger.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("❌ Error encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, log *logger.Logger, status int, msg string) {
	writeJSON(w, log, status, errorResponse{Error: msg})
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// readBody decodes the JSON body into v, answering 413 for bodies over the router limit
// and 400 for malformed ones. Returns false when a response was written
func readBody(w http.ResponseWriter, r *http.Request, log *logger.Logger, v interface{}) bool {
	err := decodeBody(r, v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		log.Warn("⚠️ Request body too large", "path", r.URL.Path, "limit", tooLarge.Limit)
		writeError(w, log, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return false
	}
	writeError(w, log, http.StatusBadRequest, err.Error())
	return false
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	var analysisErr *service.AnalysisError
	var loadErr *scene.SceneLoadError
	switch {
	case errors.As(err, &loadErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &analysisErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrCustomizationIncomplete),
		errors.Is(err, capture.ErrDeviceBusy),
		errors.Is(err, capture.ErrFrameSuperseded),
		errors.Is(err, capture.ErrNoResult):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidMaterialValue),
		errors.Is(err, service.ErrInvalidCaptureTarget),
		errors.Is(err, service.ErrInvalidCartRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnknownMaterial),
		errors.Is(err, repository.ErrCustomerNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrCartNotFound),
		errors.Is(err, capture.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrCustomizationDisabled),
		errors.Is(err, service.ErrNo3DModel):
		return http.StatusUnprocessableEntity
	case errors.Is(err, capture.ErrSessionClosed):
		return http.StatusGone
	case errors.Is(err, capture.ErrPermissionDenied):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// fail logs and writes err with its mapped status. A model that fails to load is a
// degraded state, not a server error
func fail(w http.ResponseWriter, log *logger.Logger, action string, err error) {
	status := statusFor(err)
	var loadErr *scene.SceneLoadError
	if errors.As(err, &loadErr) {
		log.Warn("⚠️ "+action+": model unavailable", "source", loadErr.Source, "error", loadErr.Err)
		writeError(w, log, status, service.PreviewUnavailableMessage)
		return
	}
	if status >= http.StatusInternalServerError {
		log.Error("❌ "+action+" failed", "error", err)
	} else {
		log.Debug(action+" rejected", "status", status, "error", err)
	}
	writeError(w, log, status, err.Error())
}
