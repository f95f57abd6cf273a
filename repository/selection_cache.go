package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"skintone-studio/models"
)

// SelectionKeyPrefix is shared by every cached skin tone selection key
const SelectionKeyPrefix = "skin_tone_selection_virtual_skin_tone"

// ProductSelectionKey returns the key of the page level selection of a product
func ProductSelectionKey(productID string) string {
	return SelectionKeyPrefix + "_" + productID
}

// MaterialSelectionKey returns the key of the selection of one product material
func MaterialSelectionKey(productID, material string) string {
	return SelectionKeyPrefix + "_" + productID + "_" + material
}

// SelectionCache reads and writes cached skin tone selections
type SelectionCache struct {
	store SessionStore
}

// NewSelectionCache creates a new SelectionCache
func NewSelectionCache(store SessionStore) *SelectionCache {
	return &SelectionCache{store: store}
}

// GetProduct returns the page level selection of a product
func (c *SelectionCache) GetProduct(ctx context.Context, productID string) (*models.ProductSkinToneSelection, error) {
	var sel models.ProductSkinToneSelection
	ok, err := c.getJSON(ctx, ProductSelectionKey(productID), &sel)
	if err != nil || !ok {
		return nil, err
	}
	return &sel, nil
}

// SetProduct stores the page level selection of a product
func (c *SelectionCache) SetProduct(ctx context.Context, productID string, sel models.ProductSkinToneSelection) error {
	return c.setJSON(ctx, ProductSelectionKey(productID), sel)
}

// GetMaterial returns the selection of one product material
func (c *SelectionCache) GetMaterial(ctx context.Context, productID, material string) (*models.MaterialSkinToneSelection, error) {
	var sel models.MaterialSkinToneSelection
	ok, err := c.getJSON(ctx, MaterialSelectionKey(productID, material), &sel)
	if err != nil || !ok {
		return nil, err
	}
	return &sel, nil
}

// SetMaterial stores the selection of one product material
func (c *SelectionCache) SetMaterial(ctx context.Context, productID string, sel models.MaterialSkinToneSelection) error {
	return c.setJSON(ctx, MaterialSelectionKey(productID, sel.Material), sel)
}

// DeleteMaterial removes the selection of one product material
func (c *SelectionCache) DeleteMaterial(ctx context.Context, productID, material string) error {
	return c.store.Delete(ctx, MaterialSelectionKey(productID, material))
}

// Purge removes every cached selection and returns how many keys were deleted
func (c *SelectionCache) Purge(ctx context.Context) (int, error) {
	keys, err := c.store.Keys(ctx, SelectionKeyPrefix)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := c.store.Delete(ctx, keys...); err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (c *SelectionCache) getJSON(ctx context.Context, key string, v interface{}) (bool, error) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (c *SelectionCache) setJSON(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return c.store.Set(ctx, key, string(raw))
}
