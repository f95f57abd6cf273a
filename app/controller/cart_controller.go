package controller

import (
	"errors"
	"net/http"

	"skintone-studio/customization"
	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/service"
)

// CartController handles HTTP requests for adding customized products to carts
type CartController struct {
	carts service.CartMetadataServiceInterface
	log   *logger.Logger
}

// NewCartController creates a new CartController
func NewCartController(carts service.CartMetadataServiceInterface, log *logger.Logger) *CartController {
	return &CartController{carts: carts, log: log.With("controller", "CartController")}
}

// incompleteResponse is returned with 409 while materials are still unpainted
type incompleteResponse struct {
	Error            string   `json:"error"`
	MissingMaterials []string `json:"missingMaterials"`
}

// AddLine handles POST /api/products/{id}/cart-lines
func (c *CartController) AddLine(w http.ResponseWriter, r *http.Request) {
	var req models.AddToCartRequest
	if !readBody(w, r, c.log, &req) {
		return
	}

	line, err := c.carts.AddToCart(r.Context(), SessionID(r), r.PathValue("id"), &req)
	var incomplete *service.IncompleteError
	if errors.As(err, &incomplete) {
		writeJSON(w, c.log, http.StatusConflict, incompleteResponse{
			Error:            customization.IncompleteMessage,
			MissingMaterials: incomplete.Missing,
		})
		return
	}
	if err != nil {
		fail(w, c.log, "AddLine", err)
		return
	}
	writeJSON(w, c.log, http.StatusCreated, line)
}
