package service

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	// Default max dimension of an image before sampling
	defaultMaxAnalysisDimension = 1600
	// Images declaring more pixels than this are rejected before decoding
	maxAnalysisPixels = 40_000_000
)

var (
	errEmptyPayload = errors.New("empty image payload")
	// ErrImageTooLarge is returned for images whose declared size exceeds the pixel limit
	ErrImageTooLarge = errors.New("image too large")
)

// DecodeImagePayload returns the raw bytes of an uploaded image
// payload: a data URL ("data:image/jpeg;base64,...") or a bare base64 string
func DecodeImagePayload(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, errEmptyPayload
	}

	encoded := payload
	if strings.HasPrefix(payload, "data:") {
		header, data, found := strings.Cut(payload, ",")
		if !found {
			return nil, fmt.Errorf("malformed data URL")
		}
		if !strings.HasSuffix(header, ";base64") {
			return nil, fmt.Errorf("data URL is not base64 encoded: %s", header)
		}
		encoded = data
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image: %w", err)
	}
	if len(raw) == 0 {
		return nil, errEmptyPayload
	}
	return raw, nil
}

// OptimizeForAnalysis decodes an image, applies its EXIF orientation, shrinks it to fit
// maxDim and returns it as NRGBA with a zero origin
// maxDim <= 0 disables resizing. Shrinking picks source pixels so colors stay exact
func OptimizeForAnalysis(imageData []byte, maxDim int) (*image.NRGBA, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > maxAnalysisPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}

	if maxDim > 0 && (bounds.Dx() > maxDim || bounds.Dy() > maxDim) {
		// Fit keeps the aspect ratio
		return imaging.Fit(img, maxDim, maxDim, imaging.NearestNeighbor), nil
	}
	return imaging.Clone(img), nil
}
