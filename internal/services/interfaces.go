package services

import (
	"context"
	"time"

	domain "github.com/peakform/storefront-api/internal/domain"
)

// Type aliases expose domain models to the services package without reversing dependency direction.
type (
	Pagination      = domain.Pagination
	SortOrder       = domain.SortOrder
	Product         = domain.Product
	ProductCategory = domain.ProductCategory
	ProductPage     = domain.ProductPage
	Cart            = domain.Cart
	CartLine        = domain.CartLine
	CartTotals      = domain.CartTotals
	Wishlist        = domain.Wishlist
	WishlistItem    = domain.WishlistItem
	Comparison      = domain.Comparison
	ComparisonItem  = domain.ComparisonItem
	BundleTier      = domain.BundleTier
	HealthReport    = domain.HealthReport
)

// CatalogService is the read facade over the configured product source.
type CatalogService interface {
	ListProducts(ctx context.Context, query ListProductsQuery) (ProductPage, error)
	GetProductBySlug(ctx context.Context, slug string) (Product, error)
	GetProductByID(ctx context.Context, productID string) (Product, error)
	GetFeaturedProducts(ctx context.Context, limit int) ([]Product, error)
}

// CartService manages per-shopper cart state. Mutations persist the updated
// document and return the resulting cart.
type CartService interface {
	GetCart(ctx context.Context, shopperID string) (Cart, error)
	AddItem(ctx context.Context, cmd AddCartItemCommand) (Cart, error)
	UpdateQuantity(ctx context.Context, cmd UpdateCartQuantityCommand) (Cart, error)
	RemoveItem(ctx context.Context, cmd RemoveCartItemCommand) (Cart, error)
	ClearCart(ctx context.Context, shopperID string) (Cart, error)
	SetOpen(ctx context.Context, shopperID string, open bool) (Cart, error)
}

// WishlistService manages the shopper's saved-items set. All membership
// operations are idempotent.
type WishlistService interface {
	GetWishlist(ctx context.Context, shopperID string) (Wishlist, error)
	AddItem(ctx context.Context, shopperID, productID string) (Wishlist, error)
	RemoveItem(ctx context.Context, shopperID, productID string) (Wishlist, error)
	ToggleItem(ctx context.Context, shopperID, productID string) (Wishlist, error)
	ClearWishlist(ctx context.Context, shopperID string) (Wishlist, error)
}

// ComparisonService manages the capacity-bounded compare tray.
type ComparisonService interface {
	GetComparison(ctx context.Context, shopperID string) (Comparison, error)
	AddItem(ctx context.Context, shopperID, productID string) (Comparison, error)
	RemoveItem(ctx context.Context, shopperID, productID string) (Comparison, error)
	ToggleItem(ctx context.Context, shopperID, productID string) (Comparison, error)
	ClearComparison(ctx context.Context, shopperID string) (Comparison, error)
	SetOpen(ctx context.Context, shopperID string, open bool) (Comparison, error)
}

// RecommendationService computes product suggestions against the catalog.
type RecommendationService interface {
	FrequentlyBoughtTogether(ctx context.Context, productID string, max int) ([]Product, error)
	YouMayAlsoLike(ctx context.Context, productID string, max int) ([]Product, error)
	ComplementaryProducts(ctx context.Context, productID string, max int) ([]Product, error)
	CartRecommendations(ctx context.Context, shopperID string, max int) ([]Product, error)
	BundleDiscount(ctx context.Context, shopperID string) (BundleTier, error)
}

// SystemService aggregates dependency health for readiness probes.
type SystemService interface {
	Health(ctx context.Context) (HealthReport, error)
}

// ListProductsQuery narrows and pages catalog listings. Sort orders results
// by price; the zero value keeps catalog order.
type ListProductsQuery struct {
	Category   *ProductCategory
	OnSale     bool
	Sort       SortOrder
	Pagination Pagination
}

// AddCartItemCommand adds quantity of a product to the shopper's cart, merging
// with an existing line for the same product.
type AddCartItemCommand struct {
	ShopperID string
	ProductID string
	Quantity  int
}

// UpdateCartQuantityCommand sets the absolute quantity for a cart line.
// A quantity of zero or less removes the line.
type UpdateCartQuantityCommand struct {
	ShopperID string
	ProductID string
	Quantity  int
}

// RemoveCartItemCommand removes a product's line from the cart.
type RemoveCartItemCommand struct {
	ShopperID string
	ProductID string
}

// CartActivityMessage is the event published when a shopper adds to their
// cart; the storefront's social-proof feed consumes it.
type CartActivityMessage struct {
	ShopperID   string    `json:"shopperId"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// CartActivityPublisher delivers cart activity events to interested consumers.
type CartActivityPublisher interface {
	PublishCartActivity(ctx context.Context, message CartActivityMessage) (string, error)
}
