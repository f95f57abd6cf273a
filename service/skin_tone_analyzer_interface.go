package service

import (
	"context"

	"skintone-studio/models"
)

// SkinToneAnalyzerInterface defines the interface for skin tone classification
type SkinToneAnalyzerInterface interface {
	AnalyzePayload(ctx context.Context, payload string) (*models.SkinToneResult, error)
	AnalyzeBytes(ctx context.Context, imageData []byte) (*models.SkinToneResult, error)
}
