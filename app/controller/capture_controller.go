package controller

import (
	"net/http"

	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/service"
)

// CaptureController handles HTTP requests for capture sessions
type CaptureController struct {
	captures service.CaptureServiceInterface
	log      *logger.Logger
}

// NewCaptureController creates a new CaptureController
func NewCaptureController(captures service.CaptureServiceInterface, log *logger.Logger) *CaptureController {
	return &CaptureController{captures: captures, log: log.With("controller", "CaptureController")}
}

// Open handles POST /api/capture/sessions
func (c *CaptureController) Open(w http.ResponseWriter, r *http.Request) {
	var req models.CaptureOpenRequest
	if r.ContentLength != 0 {
		if !readBody(w, r, c.log, &req) {
			return
		}
	}

	session, err := c.captures.Open(r.Context(), SessionID(r), req.Source)
	if err != nil {
		fail(w, c.log, "OpenCapture", err)
		return
	}
	writeJSON(w, c.log, http.StatusCreated, session)
}

// Get handles GET /api/capture/sessions/{id}
func (c *CaptureController) Get(w http.ResponseWriter, r *http.Request) {
	session, err := c.captures.Get(r.Context(), SessionID(r), r.PathValue("id"))
	if err != nil {
		fail(w, c.log, "GetCapture", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, session)
}

// Submit handles POST /api/capture/sessions/{id}/frames
func (c *CaptureController) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.CaptureFrameRequest
	if !readBody(w, r, c.log, &req) {
		return
	}
	if req.Image == "" {
		writeError(w, c.log, http.StatusBadRequest, "image is required")
		return
	}

	result, err := c.captures.Submit(r.Context(), SessionID(r), r.PathValue("id"), req.Image)
	if err != nil {
		fail(w, c.log, "SubmitFrame", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, result)
}

// Confirm handles POST /api/capture/sessions/{id}/confirm
func (c *CaptureController) Confirm(w http.ResponseWriter, r *http.Request) {
	var req models.CaptureConfirmRequest
	if !readBody(w, r, c.log, &req) {
		return
	}

	resp, err := c.captures.Confirm(r.Context(), SessionID(r), r.PathValue("id"), &req)
	if err != nil {
		fail(w, c.log, "ConfirmCapture", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, resp)
}

// Cancel handles DELETE /api/capture/sessions/{id}
func (c *CaptureController) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := c.captures.Cancel(r.Context(), SessionID(r), r.PathValue("id")); err != nil {
		fail(w, c.log, "CancelCapture", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
