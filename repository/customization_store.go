package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"skintone-studio/customization"
	"skintone-studio/models"
)

const customizationKeyPrefix = "customization_values_"

// CustomizationKey returns the session key of a product snapshot
func CustomizationKey(productID string) string {
	return customizationKeyPrefix + productID
}

// CustomizationStore persists customization snapshots as JSON in a session store
type CustomizationStore struct {
	store SessionStore
}

// NewCustomizationStore creates a new CustomizationStore
func NewCustomizationStore(store SessionStore) *CustomizationStore {
	return &CustomizationStore{store: store}
}

// Ensure CustomizationStore implements customization.Store
var _ customization.Store = (*CustomizationStore)(nil)

// Load implements customization.Store. A missing snapshot is an empty one
func (s *CustomizationStore) Load(ctx context.Context, productID string) (models.MaterialValues, error) {
	raw, ok, err := s.store.Get(ctx, CustomizationKey(productID))
	if err != nil {
		return nil, err
	}
	values := models.MaterialValues{}
	if !ok || raw == "" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("failed to decode customization snapshot for %s: %w", productID, err)
	}
	return values, nil
}

// Save implements customization.Store
func (s *CustomizationStore) Save(ctx context.Context, productID string, values models.MaterialValues) error {
	if values == nil {
		values = models.MaterialValues{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode customization snapshot: %w", err)
	}
	return s.store.Set(ctx, CustomizationKey(productID), string(raw))
}

// Clear implements customization.Store
func (s *CustomizationStore) Clear(ctx context.Context, productID string) error {
	return s.store.Delete(ctx, CustomizationKey(productID))
}
