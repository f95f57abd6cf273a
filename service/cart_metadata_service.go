package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/palette"
	"skintone-studio/repository"
)

var (
	// ErrCustomizationIncomplete is returned when a product still has unpainted materials
	ErrCustomizationIncomplete = errors.New("customization incomplete")
	// ErrInvalidCartRequest is returned when the cart or variant is missing
	ErrInvalidCartRequest = errors.New("cartId and variantId are required")
)

// IncompleteError lists the materials still missing a value
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrCustomizationIncomplete, strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Is(target error) bool {
	return target == ErrCustomizationIncomplete
}

// CartMetadataServiceInterface defines the contract for add-to-cart operations
type CartMetadataServiceInterface interface {
	Build(ctx context.Context, sessionID, productID string, req *models.AddToCartRequest) (*models.CartLineMetadata, error)
	AddToCart(ctx context.Context, sessionID, productID string, req *models.AddToCartRequest) (*models.CartLine, error)
}

// CartMetadataService freezes customization into cart line metadata
type CartMetadataService struct {
	customizations CustomizationServiceInterface
	scenes         SceneServiceInterface
	profiles       repository.ProfileRepositoryInterface
	carts          repository.CartRepositoryInterface
	colors         *CustomColorChain
	palette        *palette.Palette
	log            *logger.Logger
}

// NewCartMetadataService creates a new CartMetadataService
func NewCartMetadataService(
	customizations CustomizationServiceInterface,
	scenes SceneServiceInterface,
	profiles repository.ProfileRepositoryInterface,
	carts repository.CartRepositoryInterface,
	colors *CustomColorChain,
	p *palette.Palette,
	log *logger.Logger,
) *CartMetadataService {
	return &CartMetadataService{
		customizations: customizations,
		scenes:         scenes,
		profiles:       profiles,
		carts:          carts,
		colors:         colors,
		palette:        p,
		log:            log.With("service", "CartMetadataService"),
	}
}

// Ensure CartMetadataService implements CartMetadataServiceInterface
var _ CartMetadataServiceInterface = (*CartMetadataService)(nil)

func (s *CartMetadataService) skinToneHex(ctx context.Context, value string, q CustomColorQuery) string {
	if s.palette.IsCustomValue(value) {
		return s.colors.Resolve(ctx, q)
	}
	if hex, ok := s.palette.ResolveHex(value); ok {
		return hex
	}
	return models.DefaultSkinHex
}

// effectiveSkinTone is the page skin tone when the request does not name one. The live
// profile is preferred over the customer hint
func (s *CartMetadataService) effectiveSkinTone(ctx context.Context, sessionID, productID string, q CustomColorQuery) (string, error) {
	profile := q.Hint
	if q.CustomerID != "" && s.profiles != nil {
		meta, err := s.profiles.GetMetadata(ctx, q.CustomerID)
		if err != nil {
			s.log.Warn("⚠️ Profile unavailable for skin tone", "customerId", q.CustomerID, "error", err)
		} else {
			profile = meta
		}
	}
	return s.customizations.EffectiveSkinTone(ctx, sessionID, productID, profile)
}

// Build checks completeness and freezes the current values into cart metadata
func (s *CartMetadataService) Build(ctx context.Context, sessionID, productID string, req *models.AddToCartRequest) (*models.CartLineMetadata, error) {
	required, err := s.scenes.RequiredMaterials(ctx, productID)
	if err != nil {
		return nil, err
	}
	values, err := s.customizations.Values(ctx, sessionID, productID)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, m := range required {
		if !values[m].IsSet() {
			missing = append(missing, m)
		}
	}
	if len(missing) > 0 {
		return nil, &IncompleteError{Missing: missing}
	}

	q := CustomColorQuery{SessionID: sessionID, ProductID: productID}
	var requested string
	if req != nil {
		q.Hint = req.CustomerHint
		q.CustomerID = req.CustomerID
		requested = strings.TrimSpace(req.SkinTone)
	}

	meta := &models.CartLineMetadata{Version: models.CartItemVersion}
	if len(values) > 0 {
		meta.Materials = make(map[string]models.CartMaterialEntry, len(values))
	}
	for material, v := range values {
		if !v.IsSet() {
			continue
		}
		entry := models.CartMaterialEntry{Type: v.Type, Value: v.Value}
		switch v.Type {
		case models.MaterialValueColor:
			entry.Hex = v.Value
		case models.MaterialValueSkinTone:
			mq := q
			mq.Material = material
			entry.Hex = s.skinToneHex(ctx, v.Value, mq)
		}
		meta.Materials[material] = entry
	}

	if requested == "" {
		requested, err = s.effectiveSkinTone(ctx, sessionID, productID, q)
		if err != nil {
			return nil, err
		}
	}
	if requested != "" {
		meta.VirtualSkinTone = requested
		meta.VirtualSkinToneHex = s.skinToneHex(ctx, requested, q)
	}
	return meta, nil
}

// AddToCart builds the metadata and adds the line item
func (s *CartMetadataService) AddToCart(ctx context.Context, sessionID, productID string, req *models.AddToCartRequest) (*models.CartLine, error) {
	if req == nil || req.CartID == "" || req.VariantID == "" {
		return nil, ErrInvalidCartRequest
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	meta, err := s.Build(ctx, sessionID, productID, req)
	if err != nil {
		return nil, err
	}

	line, err := s.carts.AddLineItem(ctx, &models.CartLine{
		CartID:    req.CartID,
		ProductID: productID,
		VariantID: req.VariantID,
		Quantity:  quantity,
		Metadata:  *meta,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add line item: %w", err)
	}
	s.log.Info("✓ Added customized line item", "cartId", req.CartID, "productId", productID, "materials", len(meta.Materials))
	return line, nil
}
