package service

import (
	"context"
	"fmt"

	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/repository"
)

// ModelSyncServiceInterface defines the contract for model cache warm-up
type ModelSyncServiceInterface interface {
	Sync(ctx context.Context) (*models.ModelSyncResponse, error)
}

// ModelSyncService prefetches the avatar and every product model into the model cache so
// the first customization request does not pay for the download
type ModelSyncService struct {
	products  repository.ProductRepositoryInterface
	source    ModelSourceInterface
	avatarURL string
	log       *logger.Logger
}

// NewModelSyncService creates a new ModelSyncService
func NewModelSyncService(products repository.ProductRepositoryInterface, source ModelSourceInterface, avatarURL string, log *logger.Logger) *ModelSyncService {
	return &ModelSyncService{
		products:  products,
		source:    source,
		avatarURL: avatarURL,
		log:       log.With("service", "ModelSyncService"),
	}
}

// Ensure ModelSyncService implements ModelSyncServiceInterface
var _ ModelSyncServiceInterface = (*ModelSyncService)(nil)

// Sync fetches every distinct model url once. Individual failures are collected, not fatal
func (s *ModelSyncService) Sync(ctx context.Context) (*models.ModelSyncResponse, error) {
	s.log.Info("🔄 Starting model synchronization")

	products, err := s.products.List3D(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	resp := &models.ModelSyncResponse{Products: len(products), Errors: []string{}}
	seen := make(map[string]bool)
	fetch := func(owner, url string) {
		if url == "" || seen[url] {
			return
		}
		seen[url] = true
		resp.Total++
		if _, err := s.source.Fetch(ctx, url); err != nil {
			s.log.Warn("⚠️ Model prefetch failed", "owner", owner, "url", url, "error", err)
			resp.Failed++
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", owner, err))
			return
		}
		resp.Fetched++
	}

	fetch("avatar", s.avatarURL)
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fetch(p.ProductID, p.ModelURL)
		fetch(p.ProductID, p.SkinnedModelURL)
	}

	resp.Status = "success"
	if resp.Failed > 0 {
		resp.Status = "partial"
	}
	s.log.Info("✅ Model synchronization completed", "products", resp.Products, "fetched", resp.Fetched, "failed", resp.Failed)
	return resp, nil
}
