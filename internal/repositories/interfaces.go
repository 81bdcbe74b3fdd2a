package repositories

import (
	"context"

	domain "github.com/peakform/storefront-api/internal/domain"
)

// Registry exposes typed repository accessors and lifecycle hooks for dependency injection.
type Registry interface {
	Close(ctx context.Context) error

	Products() ProductRepository
	Carts() CartRepository
	Wishlists() WishlistRepository
	Comparisons() ComparisonRepository
	Health() HealthRepository
}

// RepositoryError wraps low-level persistence failures with categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}

// ProductListFilter narrows catalog listings. Sort orders results by price;
// the zero value keeps catalog order.
type ProductListFilter struct {
	Category   *domain.ProductCategory
	OnSaleOnly bool
	Featured   *bool
	Sort       domain.SortOrder
	Pagination domain.Pagination
}

// ProductRepository reads the catalog source. The catalog is owned upstream;
// this service never writes product records.
type ProductRepository interface {
	List(ctx context.Context, filter ProductListFilter) (domain.ProductPage, error)
	FindByID(ctx context.Context, productID string) (domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (domain.Product, error)
	FindByIDs(ctx context.Context, productIDs []string) ([]domain.Product, error)
}

// CartRepository persists one cart document per shopper under a fixed key.
type CartRepository interface {
	Get(ctx context.Context, shopperID string) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
	Delete(ctx context.Context, shopperID string) error
}

// WishlistRepository persists one wishlist document per shopper under a fixed key.
type WishlistRepository interface {
	Get(ctx context.Context, shopperID string) (domain.Wishlist, error)
	Save(ctx context.Context, wishlist domain.Wishlist) error
	Delete(ctx context.Context, shopperID string) error
}

// ComparisonRepository persists one comparison document per shopper under a fixed key.
type ComparisonRepository interface {
	Get(ctx context.Context, shopperID string) (domain.Comparison, error)
	Save(ctx context.Context, comparison domain.Comparison) error
	Delete(ctx context.Context, shopperID string) error
}

// HealthRepository evaluates dependency probes for readiness responses.
type HealthRepository interface {
	Collect(ctx context.Context) (domain.HealthReport, error)
}
