package controller

import (
	"net/http"
	"strings"

	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/palette"
	"skintone-studio/service"
)

// PaletteController handles HTTP requests for the skin tone palette
type PaletteController struct {
	palette *palette.Palette
	sheets  service.SwatchSheetServiceInterface
	log     *logger.Logger
}

// NewPaletteController creates a new PaletteController
func NewPaletteController(p *palette.Palette, sheets service.SwatchSheetServiceInterface, log *logger.Logger) *PaletteController {
	return &PaletteController{palette: p, sheets: sheets, log: log.With("controller", "PaletteController")}
}

// List handles GET /api/skin-tones?filter=all|fitzpatrick|regional|foundation
func (c *PaletteController) List(w http.ResponseWriter, r *http.Request) {
	filter := strings.TrimSpace(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = "all"
	}
	writeJSON(w, c.log, http.StatusOK, models.SkinToneListResponse{
		Filter: filter,
		Tones:  c.palette.Filter(filter),
	})
}

// Get handles GET /api/skin-tones/{id}
func (c *PaletteController) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tone, ok := c.palette.ByID(id)
	if !ok {
		writeError(w, c.log, http.StatusNotFound, "skin tone not found: "+id)
		return
	}
	writeJSON(w, c.log, http.StatusOK, models.SkinToneDetail{
		SkinTone:          tone,
		RecommendedColors: c.palette.RecommendedColors(tone.ID),
	})
}

// Sheet handles GET /api/skin-tones/sheet?format=html|png|pdf&filter=
func (c *PaletteController) Sheet(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}

	switch format {
	case "html":
		html, err := c.sheets.RenderHTML(filter)
		if err != nil {
			fail(w, c.log, "Sheet", err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(html))
	case "png":
		data, err := c.sheets.GeneratePNG(r.Context(), filter)
		if err != nil {
			fail(w, c.log, "Sheet", err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", `inline; filename="skin-tones.png"`)
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	case "pdf":
		data, err := c.sheets.GeneratePDF(r.Context(), filter)
		if err != nil {
			fail(w, c.log, "Sheet", err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="skin-tones.pdf"`)
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	default:
		writeError(w, c.log, http.StatusBadRequest, "format must be html, png or pdf")
	}
}
