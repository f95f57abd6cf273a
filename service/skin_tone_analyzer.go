package service

import (
	"context"
	"image"
	"math/rand/v2"
	"sort"
	"sync"

	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/palette"
	"skintone-studio/utils"
)

const (
	// ConfidenceThreshold is the palette match confidence below which a custom tone is
	// synthesized from the measured color
	ConfidenceThreshold = 0.7
	// Confidence reported when no skin pixel was found and the center pixel is used
	centerFallbackConfidence = 0.8
	// Confidence reported for a custom tone synthesized after a poor palette match
	customToneConfidence = 0.9
	maxDominantColors    = 5
)

// AnalysisError is returned when an image cannot be decoded. Every decodable image yields
// a result
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return "skin tone analysis failed: " + e.Err.Error()
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// SkinToneAnalyzer classifies the skin tone of a photo against a palette
// Implements SkinToneAnalyzerInterface
type SkinToneAnalyzer struct {
	palette *palette.Palette
	log     *logger.Logger
	maxDim  int

	mu  sync.Mutex
	rnd RandomSource
}

// NewSkinToneAnalyzer creates a new SkinToneAnalyzer
// rnd may be nil, in which case a randomly seeded PCG source is used
// maxDim <= 0 uses the default analysis dimension
func NewSkinToneAnalyzer(p *palette.Palette, log *logger.Logger, rnd RandomSource, maxDim int) *SkinToneAnalyzer {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if maxDim <= 0 {
		maxDim = defaultMaxAnalysisDimension
	}
	return &SkinToneAnalyzer{
		palette: p,
		log:     log,
		maxDim:  maxDim,
		rnd:     rnd,
	}
}

// Ensure SkinToneAnalyzer implements SkinToneAnalyzerInterface
var _ SkinToneAnalyzerInterface = (*SkinToneAnalyzer)(nil)

// AnalyzePayload analyzes a data URL or base64 encoded image
func (a *SkinToneAnalyzer) AnalyzePayload(ctx context.Context, payload string) (*models.SkinToneResult, error) {
	raw, err := DecodeImagePayload(payload)
	if err != nil {
		return nil, &AnalysisError{Err: err}
	}
	return a.AnalyzeBytes(ctx, raw)
}

// AnalyzeBytes analyzes an encoded image (JPEG, PNG, GIF, BMP, TIFF)
func (a *SkinToneAnalyzer) AnalyzeBytes(ctx context.Context, imageData []byte) (*models.SkinToneResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := OptimizeForAnalysis(imageData, a.maxDim)
	if err != nil {
		return nil, &AnalysisError{Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a.classify(img), nil
}

func (a *SkinToneAnalyzer) classify(img *image.NRGBA) *models.SkinToneResult {
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	a.mu.Lock()
	points := samplePoints(width, height, a.rnd)
	a.mu.Unlock()

	counts := make(map[string]int)
	var order []string
	for _, pt := range points {
		r, g, b := pixelAt(img, pt.X, pt.Y)
		if !utils.IsLikelySkinTone(r, g, b) {
			continue
		}
		hex := utils.RGBToHex(r, g, b)
		if counts[hex] == 0 {
			order = append(order, hex)
		}
		counts[hex]++
	}

	if len(order) == 0 {
		r, g, b := pixelAt(img, width/2, height/2)
		hex := utils.RGBToHex(r, g, b)
		a.log.Info("No skin pixels detected, using center pixel", "color", hex, "samples", len(points))
		return &models.SkinToneResult{
			SkinToneID:     models.CustomSkinToneID,
			Confidence:     centerFallbackConfidence,
			DominantColors: []string{hex},
			Undertone:      utils.DetermineUndertone(r, g, b),
			CustomColor:    hex,
		}
	}

	// Most frequent first, first seen wins ties
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	dominant := order
	if len(dominant) > maxDominantColors {
		dominant = dominant[:maxDominantColors]
	}
	dominant = append([]string(nil), dominant...)

	match, _ := a.palette.FindClosest(dominant)
	if match.Confidence < ConfidenceThreshold {
		primary := dominant[0]
		a.log.Info("Palette match below threshold, synthesizing custom tone",
			"closest", match.ID, "confidence", match.Confidence, "color", primary)
		return &models.SkinToneResult{
			SkinToneID:     models.CustomSkinToneID,
			Confidence:     customToneConfidence,
			DominantColors: dominant,
			Undertone:      utils.DetermineUndertoneFromHex(primary),
			CustomColor:    primary,
		}
	}

	a.log.Debug("Palette match", "tone", match.ID, "confidence", match.Confidence)
	return &models.SkinToneResult{
		SkinToneID:     match.ID,
		Confidence:     match.Confidence,
		DominantColors: dominant,
		Undertone:      match.Undertone,
	}
}

func pixelAt(img *image.NRGBA, x, y int) (r, g, b int) {
	i := img.PixOffset(x+img.Rect.Min.X, y+img.Rect.Min.Y)
	return int(img.Pix[i]), int(img.Pix[i+1]), int(img.Pix[i+2])
}
