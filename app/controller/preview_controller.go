package controller

import (
	"bytes"
	"net/http"
	"strconv"

	"skintone-studio/logger"
	"skintone-studio/scene"
	"skintone-studio/service"
)

// PreviewController handles HTTP requests for recolored model exports
type PreviewController struct {
	previews service.PreviewServiceInterface
	log      *logger.Logger
}

// NewPreviewController creates a new PreviewController
func NewPreviewController(previews service.PreviewServiceInterface, log *logger.Logger) *PreviewController {
	return &PreviewController{previews: previews, log: log.With("controller", "PreviewController")}
}

// GLB handles GET /api/products/{id}/preview.glb?viewer=primary|avatar&part=0&customerId=
func (c *PreviewController) GLB(w http.ResponseWriter, r *http.Request) {
	kind := scene.ParseViewerKind(r.URL.Query().Get("viewer"))
	part := 0
	if raw := r.URL.Query().Get("part"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, c.log, http.StatusBadRequest, "part must be a number")
			return
		}
		part = n
	}

	// Buffer so a failed export can still be reported as JSON
	var buf bytes.Buffer
	if err := c.previews.WriteGLB(r.Context(), service.PreviewRequest{
		SessionID:  SessionID(r),
		ProductID:  r.PathValue("id"),
		CustomerID: r.URL.Query().Get("customerId"),
		Kind:       kind,
		Part:       part,
	}, &buf); err != nil {
		fail(w, c.log, "Preview", err)
		return
	}
	w.Header().Set("Content-Type", "model/gltf-binary")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
