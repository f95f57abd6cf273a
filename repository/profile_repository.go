package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"skintone-studio/logger"
	"skintone-studio/models"
)

// ProfileRepository handles customer metadata stored as JSONB on the customers table
type ProfileRepository struct {
	db  *sql.DB
	log *logger.Logger
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(conn *sql.DB, log *logger.Logger) *ProfileRepository {
	return &ProfileRepository{db: conn, log: log.With("repository", "profile")}
}

// Ensure ProfileRepository implements ProfileRepositoryInterface
var _ ProfileRepositoryInterface = (*ProfileRepository)(nil)

// GetMetadata reads the customer metadata
func (r *ProfileRepository) GetMetadata(ctx context.Context, customerID string) (*models.CustomerMetadata, error) {
	query := `SELECT COALESCE(metadata, '{}'::jsonb) FROM customers WHERE id = $1`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		r.log.Error("❌ GetMetadata: Error fetching customer", "customerId", customerID, "error", err)
		return nil, fmt.Errorf("failed to fetch customer metadata: %w", err)
	}

	var meta models.CustomerMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode customer metadata: %w", err)
	}
	return &meta, nil
}

// MergeMetadata merges patch into the stored metadata in one statement. Keys set to nil
// are removed
func (r *ProfileRepository) MergeMetadata(ctx context.Context, customerID string, patch map[string]interface{}) (*models.CustomerMetadata, error) {
	r.log.Debug("📝 MergeMetadata", "customerId", customerID, "keys", len(patch))

	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata patch: %w", err)
	}

	query := `
		UPDATE customers
		SET metadata = jsonb_strip_nulls(COALESCE(metadata, '{}'::jsonb) || $2::jsonb),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING metadata
	`

	var updated []byte
	err = r.db.QueryRowContext(ctx, query, customerID, string(raw)).Scan(&updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		r.log.Error("❌ MergeMetadata: Error updating customer", "customerId", customerID, "error", err)
		return nil, fmt.Errorf("failed to update customer metadata: %w", err)
	}

	var meta models.CustomerMetadata
	if err := json.Unmarshal(updated, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode customer metadata: %w", err)
	}
	r.log.Info("✓ Customer metadata updated", "customerId", customerID)
	return &meta, nil
}
