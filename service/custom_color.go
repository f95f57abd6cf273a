package service

import (
	"context"

	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/repository"
	"skintone-studio/utils"
)

// CustomColorQuery is what the custom color chain looks at
type CustomColorQuery struct {
	SessionID  string
	ProductID  string
	Material   string // "" for the page level skin tone
	CustomerID string
	Hint       *models.CustomerMetadata
}

type customColorSource func(ctx context.Context, q CustomColorQuery) string

// CustomColorChain resolves the real color behind the "custom" skin tone. Sources are
// tried in order: product selector cache, per-material cache, customer hint, live profile.
// The first valid hex wins, else the default skin color
type CustomColorChain struct {
	sessions repository.SessionStore
	profiles repository.ProfileRepositoryInterface
	log      *logger.Logger
	sources  []customColorSource
}

// NewCustomColorChain creates a new CustomColorChain. profiles may be nil
func NewCustomColorChain(sessions repository.SessionStore, profiles repository.ProfileRepositoryInterface, log *logger.Logger) *CustomColorChain {
	c := &CustomColorChain{
		sessions: sessions,
		profiles: profiles,
		log:      log.With("service", "CustomColorChain"),
	}
	c.sources = []customColorSource{
		c.tryProductSelectorCache,
		c.tryPerMaterialCache,
		c.tryGlobalHint,
		c.tryLiveProfile,
	}
	return c
}

func (c *CustomColorChain) selections(sessionID string) *repository.SelectionCache {
	return repository.NewSelectionCache(repository.NewScopedSessionStore(c.sessions, sessionID))
}

func (c *CustomColorChain) tryProductSelectorCache(ctx context.Context, q CustomColorQuery) string {
	sel, err := c.selections(q.SessionID).GetProduct(ctx, q.ProductID)
	if err != nil {
		c.log.Warn("⚠️ Product selection unreadable", "productId", q.ProductID, "error", err)
		return ""
	}
	if sel == nil || sel.SkinToneID != models.CustomSkinToneID {
		return ""
	}
	return sel.CustomColor
}

func (c *CustomColorChain) tryPerMaterialCache(ctx context.Context, q CustomColorQuery) string {
	if q.Material == "" {
		return ""
	}
	sel, err := c.selections(q.SessionID).GetMaterial(ctx, q.ProductID, q.Material)
	if err != nil {
		c.log.Warn("⚠️ Material selection unreadable", "productId", q.ProductID, "material", q.Material, "error", err)
		return ""
	}
	if sel == nil || sel.SkinToneID != models.CustomSkinToneID {
		return ""
	}
	return sel.CustomColor
}

func (c *CustomColorChain) tryGlobalHint(_ context.Context, q CustomColorQuery) string {
	if q.Hint == nil {
		return ""
	}
	return q.Hint.CustomSkinColor
}

func (c *CustomColorChain) tryLiveProfile(ctx context.Context, q CustomColorQuery) string {
	if q.CustomerID == "" || c.profiles == nil {
		return ""
	}
	meta, err := c.profiles.GetMetadata(ctx, q.CustomerID)
	if err != nil {
		c.log.Warn("⚠️ Profile unavailable for custom color", "customerId", q.CustomerID, "error", err)
		return ""
	}
	if meta.SkinTone != models.CustomSkinToneID {
		return ""
	}
	return meta.CustomSkinColor
}

// Resolve walks the chain
func (c *CustomColorChain) Resolve(ctx context.Context, q CustomColorQuery) string {
	for _, source := range c.sources {
		if hex, ok := utils.NormalizeHex(source(ctx, q)); ok {
			return hex
		}
	}
	return models.DefaultSkinHex
}
