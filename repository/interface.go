package repository

import (
	"context"
	"errors"

	"skintone-studio/models"
)

var (
	// ErrCustomerNotFound is returned when the customer does not exist
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProductNotFound is returned when the product does not exist
	ErrProductNotFound = errors.New("product not found")
	// ErrCartNotFound is returned when the cart does not exist or is no longer open
	ErrCartNotFound = errors.New("cart not found")
)

// ProfileRepositoryInterface defines the contract for customer profile metadata operations
type ProfileRepositoryInterface interface {
	GetMetadata(ctx context.Context, customerID string) (*models.CustomerMetadata, error)
	// MergeMetadata merges patch into the customer metadata; nil values delete keys
	MergeMetadata(ctx context.Context, customerID string, patch map[string]interface{}) (*models.CustomerMetadata, error)
}

// ProductRepositoryInterface defines the contract for product 3D metadata operations
type ProductRepositoryInterface interface {
	Get3D(ctx context.Context, productID string) (*models.Product3D, error)
	List3D(ctx context.Context) ([]models.Product3D, error)
}

// CartRepositoryInterface defines the contract for cart line item operations
type CartRepositoryInterface interface {
	AddLineItem(ctx context.Context, line *models.CartLine) (*models.CartLine, error)
}
