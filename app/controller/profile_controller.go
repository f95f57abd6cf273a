package controller

import (
	"net/http"

	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/service"
)

// ProfileController handles HTTP requests for customer skin tones
type ProfileController struct {
	profiles service.ProfileServiceInterface
	log      *logger.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profiles service.ProfileServiceInterface, log *logger.Logger) *ProfileController {
	return &ProfileController{profiles: profiles, log: log.With("controller", "ProfileController")}
}

// Get handles GET /api/customers/{id}/skin-tone
func (c *ProfileController) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := c.profiles.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(w, c.log, "GetProfile", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, resp)
}

// Update handles PUT /api/customers/{id}/skin-tone
func (c *ProfileController) Update(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileSkinToneRequest
	if !readBody(w, r, c.log, &req) {
		return
	}
	resp, err := c.profiles.Update(r.Context(), SessionID(r), r.PathValue("id"), &req)
	if err != nil {
		fail(w, c.log, "UpdateProfile", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, resp)
}
