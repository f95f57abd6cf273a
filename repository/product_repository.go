package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skintone-studio/logger"
	"skintone-studio/models"
)

// ProductRepository reads the 3D metadata of products
type ProductRepository struct {
	db  *sql.DB
	log *logger.Logger
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(conn *sql.DB, log *logger.Logger) *ProductRepository {
	return &ProductRepository{db: conn, log: log.With("repository", "product")}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

// Get3D returns the model URLs of a product. A product without modelUrl does not support
// 3D customization
func (r *ProductRepository) Get3D(ctx context.Context, productID string) (*models.Product3D, error) {
	query := `
		SELECT
			id,
			COALESCE(metadata->>'modelUrl', ''),
			COALESCE(metadata->>'skinnedModelUrl', '')
		FROM products
		WHERE id = $1
	`

	var p models.Product3D
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&p.ProductID, &p.ModelURL, &p.SkinnedModelURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		r.log.Error("❌ Get3D: Error fetching product", "productId", productID, "error", err)
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &p, nil
}

// List3D returns every product with a model URL
func (r *ProductRepository) List3D(ctx context.Context) ([]models.Product3D, error) {
	query := `
		SELECT
			id,
			metadata->>'modelUrl',
			COALESCE(metadata->>'skinnedModelUrl', '')
		FROM products
		WHERE COALESCE(metadata->>'modelUrl', '') <> ''
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Error("❌ List3D: Error querying products", "error", err)
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product3D{}
	for rows.Next() {
		var p models.Product3D
		if err := rows.Scan(&p.ProductID, &p.ModelURL, &p.SkinnedModelURL); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}
