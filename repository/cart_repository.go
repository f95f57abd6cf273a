package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skintone-studio/logger"
	"skintone-studio/models"
)

// CartRepository writes cart line items with their customization metadata
type CartRepository struct {
	db  *sql.DB
	log *logger.Logger
}

// NewCartRepository creates a new CartRepository
func NewCartRepository(conn *sql.DB, log *logger.Logger) *CartRepository {
	return &CartRepository{db: conn, log: log.With("repository", "cart")}
}

// Ensure CartRepository implements CartRepositoryInterface
var _ CartRepositoryInterface = (*CartRepository)(nil)

// AddLineItem adds a line to an open cart. Each customized add creates its own line so
// differently painted copies of a product stay apart
func (r *CartRepository) AddLineItem(ctx context.Context, line *models.CartLine) (*models.CartLine, error) {
	r.log.Info("📦 AddLineItem", "cartId", line.CartID, "productId", line.ProductID, "quantity", line.Quantity)

	if line.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than 0")
	}

	metadata, err := json.Marshal(line.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode line metadata: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.log.Error("❌ AddLineItem: Error starting transaction", "error", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Validate cart exists and is still open, lock it for the insert
	var completedAt sql.NullTime
	queryCart := `SELECT completed_at FROM carts WHERE id = $1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, queryCart, line.CartID).Scan(&completedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		r.log.Error("❌ AddLineItem: Error fetching cart", "cartId", line.CartID, "error", err)
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	if completedAt.Valid {
		return nil, ErrCartNotFound
	}

	queryInsert := `
		INSERT INTO cart_line_items (cart_id, product_id, variant_id, quantity, metadata)
		VALUES ($1, $2, $3, $4, $5::jsonb)
		RETURNING id, created_at
	`
	out := *line
	var createdAt time.Time
	err = tx.QueryRowContext(ctx, queryInsert,
		line.CartID,
		line.ProductID,
		line.VariantID,
		line.Quantity,
		string(metadata),
	).Scan(&out.ID, &createdAt)
	if err != nil {
		r.log.Error("❌ AddLineItem: Error inserting line", "error", err)
		return nil, fmt.Errorf("failed to insert cart line: %w", err)
	}

	if err := tx.Commit(); err != nil {
		r.log.Error("❌ AddLineItem: Error committing transaction", "error", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	out.CreatedAt = createdAt.Format(time.RFC3339)
	r.log.Info("✅ AddLineItem: line added", "lineId", out.ID)
	return &out, nil
}
