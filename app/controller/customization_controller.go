package controller

import (
	"errors"
	"net/http"
	"strings"

	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/repository"
	"skintone-studio/scene"
	"skintone-studio/service"
)

// CustomizationController handles HTTP requests for product scenes and material state
type CustomizationController struct {
	customizations service.CustomizationServiceInterface
	scenes         service.SceneServiceInterface
	profiles       repository.ProfileRepositoryInterface
	paint          *service.PaintResolver
	log            *logger.Logger
}

// NewCustomizationController creates a new CustomizationController
func NewCustomizationController(
	customizations service.CustomizationServiceInterface,
	scenes service.SceneServiceInterface,
	profiles repository.ProfileRepositoryInterface,
	paint *service.PaintResolver,
	log *logger.Logger,
) *CustomizationController {
	return &CustomizationController{
		customizations: customizations,
		scenes:         scenes,
		profiles:       profiles,
		paint:          paint,
		log:            log.With("controller", "CustomizationController"),
	}
}

// Materials handles GET /api/products/{id}/materials?viewer=primary|avatar
func (c *CustomizationController) Materials(w http.ResponseWriter, r *http.Request) {
	kind := scene.ParseViewerKind(r.URL.Query().Get("viewer"))
	resp, err := c.scenes.Materials(r.Context(), r.PathValue("id"), kind)
	if err != nil {
		fail(w, c.log, "Materials", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, resp)
}

// Get handles GET /api/products/{id}/customization
func (c *CustomizationController) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := c.customizations.Get(r.Context(), SessionID(r), r.PathValue("id"))
	if err != nil {
		fail(w, c.log, "GetCustomization", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, resp)
}

// Select handles PUT /api/products/{id}/customization/selection
func (c *CustomizationController) Select(w http.ResponseWriter, r *http.Request) {
	var req models.SelectionRequest
	if !readBody(w, r, c.log, &req) {
		return
	}
	resp, err := c.customizations.Select(r.Context(), SessionID(r), r.PathValue("id"), req.Material)
	if err != nil {
		fail(w, c.log, "Select", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, resp)
}

// SetMaterial handles PUT /api/products/{id}/customization/materials/{material}
// An empty value clears the material
func (c *CustomizationController) SetMaterial(w http.ResponseWriter, r *http.Request) {
	var req models.MaterialSetRequest
	if !readBody(w, r, c.log, &req) {
		return
	}
	value := models.MaterialValue{Type: req.Type, Value: req.Value}
	resp, err := c.customizations.SetMaterial(r.Context(), SessionID(r), r.PathValue("id"), r.PathValue("material"), value)
	if err != nil {
		fail(w, c.log, "SetMaterial", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, resp)
}

// Clear handles DELETE /api/products/{id}/customization
func (c *CustomizationController) Clear(w http.ResponseWriter, r *http.Request) {
	if err := c.customizations.Clear(r.Context(), SessionID(r), r.PathValue("id")); err != nil {
		fail(w, c.log, "ClearCustomization", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetSkinTone handles PUT /api/products/{id}/skin-tone
// Stores the page level skin tone choice of the product
func (c *CustomizationController) SetSkinTone(w http.ResponseWriter, r *http.Request) {
	var req models.SkinToneSelectionRequest
	if !readBody(w, r, c.log, &req) {
		return
	}
	productID := r.PathValue("id")
	if err := c.customizations.SetProductSkinTone(r.Context(), SessionID(r), productID, req.SkinToneID, req.CustomColor); err != nil {
		fail(w, c.log, "SetSkinTone", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, models.EffectiveSkinToneResponse{
		ProductID: productID,
		SkinTone:  req.SkinToneID,
		Hex:       c.paint.SkinToneHex(req.SkinToneID, req.CustomColor),
	})
}

// EffectiveSkinTone handles GET /api/products/{id}/skin-tone?customerId=
func (c *CustomizationController) EffectiveSkinTone(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")
	var profile *models.CustomerMetadata
	if customerID := strings.TrimSpace(r.URL.Query().Get("customerId")); customerID != "" {
		meta, err := c.profiles.GetMetadata(r.Context(), customerID)
		switch {
		case errors.Is(err, repository.ErrCustomerNotFound):
		case err != nil:
			c.log.Warn("⚠️ Profile unavailable for page skin tone", "customerId", customerID, "error", err)
		default:
			profile = meta
		}
	}

	toneID, err := c.customizations.EffectiveSkinTone(r.Context(), SessionID(r), productID, profile)
	if err != nil {
		fail(w, c.log, "EffectiveSkinTone", err)
		return
	}
	resp := models.EffectiveSkinToneResponse{ProductID: productID, SkinTone: toneID}
	if toneID != "" {
		custom := ""
		if profile != nil {
			custom = profile.CustomSkinColor
		}
		resp.Hex = c.paint.SkinToneHex(toneID, custom)
	}
	writeJSON(w, c.log, http.StatusOK, resp)
}
