package controller

import (
	"net/http"

	"skintone-studio/logger"
	"skintone-studio/service"
)

// ModelController handles HTTP requests for model cache administration
type ModelController struct {
	syncService service.ModelSyncServiceInterface
	log         *logger.Logger
}

// NewModelController creates a new ModelController
func NewModelController(syncService service.ModelSyncServiceInterface, log *logger.Logger) *ModelController {
	return &ModelController{syncService: syncService, log: log.With("controller", "ModelController")}
}

// Sync handles POST /admin/models/sync
// Prefetches the avatar and every product model into the model cache
func (c *ModelController) Sync(w http.ResponseWriter, r *http.Request) {
	c.log.Info("📥 Model sync request received")
	resp, err := c.syncService.Sync(r.Context())
	if err != nil {
		fail(w, c.log, "ModelSync", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, resp)
}
