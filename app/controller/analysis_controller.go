package controller

import (
	"net/http"
	"strings"

	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/service"
)

const analysisTypeSkinTone = "skin_tone"

// AnalysisController handles HTTP requests for photo skin tone analysis
type AnalysisController struct {
	analyzer service.SkinToneAnalyzerInterface
	log      *logger.Logger
}

// NewAnalysisController creates a new AnalysisController
func NewAnalysisController(analyzer service.SkinToneAnalyzerInterface, log *logger.Logger) *AnalysisController {
	return &AnalysisController{analyzer: analyzer, log: log.With("controller", "AnalysisController")}
}

// Analyze handles POST /api/skin-tone-analysis
func (c *AnalysisController) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.SkinToneAnalysisRequest
	if !readBody(w, r, c.log, &req) {
		return
	}
	if strings.TrimSpace(req.Image) == "" {
		writeError(w, c.log, http.StatusBadRequest, "image is required")
		return
	}
	if req.AnalysisType != analysisTypeSkinTone {
		writeError(w, c.log, http.StatusBadRequest, "analysisType must be skin_tone")
		return
	}

	result, err := c.analyzer.AnalyzePayload(r.Context(), req.Image)
	if err != nil {
		fail(w, c.log, "Analyze", err)
		return
	}

	c.log.Info("✓ Analyzed photo", "skinTone", result.SkinToneID, "confidence", result.Confidence)
	writeJSON(w, c.log, http.StatusOK, result)
}
