package domain

import (
	"errors"
	"fmt"
	"time"
)

// Pagination defines standard offset paging inputs for catalog list operations.
type Pagination struct {
	Page     int
	PageSize int
}

// Normalize clamps paging inputs to sane bounds.
func (p Pagination) Normalize(defaultSize, maxSize int) Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultSize
	}
	if maxSize > 0 && p.PageSize > maxSize {
		p.PageSize = maxSize
	}
	return p
}

// Offset returns the zero-based item offset for the page.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// SortOrder indicates ascending or descending ordering for list queries.
type SortOrder string

const (
	// SortAsc sorts results in ascending order.
	SortAsc SortOrder = "asc"
	// SortDesc sorts results in descending order.
	SortDesc SortOrder = "desc"
)

// ProductPage holds one page of catalog results together with the total match
// count and the normalized paging inputs that produced it.
type ProductPage struct {
	Products []Product
	Total    int
	Page     int
	PageSize int
}

// ProductCategory enumerates the storefront's merchandising categories.
type ProductCategory string

const (
	CategorySupplements      ProductCategory = "supplements"
	CategoryNootropics       ProductCategory = "nootropics"
	CategoryPerformance      ProductCategory = "performance"
	CategoryRecovery         ProductCategory = "recovery"
	CategorySleep            ProductCategory = "sleep"
	CategoryWearables        ProductCategory = "wearables"
	CategoryBlueLightGlasses ProductCategory = "blue-light-glasses"
)

// KnownCategories lists every category the storefront merchandises, in display order.
var KnownCategories = []ProductCategory{
	CategorySupplements,
	CategoryNootropics,
	CategoryPerformance,
	CategoryRecovery,
	CategorySleep,
	CategoryWearables,
	CategoryBlueLightGlasses,
}

// IsKnownCategory reports whether c is a category the storefront merchandises.
func IsKnownCategory(c ProductCategory) bool {
	for _, known := range KnownCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is the catalog record shared across layers. All monetary amounts are
// minor units (cents) in the store currency. Catalog records are owned by the
// catalog source and treated as immutable by this service.
type Product struct {
	ID               string
	Slug             string
	Name             string
	Description      string
	ShortDescription string
	Price            int64
	CompareAtPrice   int64
	Category         ProductCategory
	Images           []string
	Features         []string
	Benefits         []string
	Ingredients      []string
	InStock          bool
	Inventory        int
	Rating           float64
	ReviewCount      int
	SKU              string
	Tags             []string
	Featured         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OnSale reports whether the product carries an active markdown.
func (p Product) OnSale() bool {
	return p.CompareAtPrice > p.Price && p.Price > 0
}

// DiscountPercent returns the rounded markdown percentage, or 0 when not on sale.
func (p Product) DiscountPercent() int {
	if !p.OnSale() || p.CompareAtPrice == 0 {
		return 0
	}
	return int(((p.CompareAtPrice-p.Price)*100 + p.CompareAtPrice/2) / p.CompareAtPrice)
}

// PrimaryImage returns the first catalog image, or "" when none exist.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Validate enforces the catalog record invariants.
func (p Product) Validate() error {
	var problems []string
	if p.ID == "" {
		problems = append(problems, "id is required")
	}
	if p.Slug == "" {
		problems = append(problems, "slug is required")
	}
	if p.Name == "" {
		problems = append(problems, "name is required")
	}
	if p.Price <= 0 {
		problems = append(problems, "price must be positive")
	}
	if p.Inventory < 0 {
		problems = append(problems, "inventory must not be negative")
	}
	if len(p.Images) == 0 {
		problems = append(problems, "at least one image is required")
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("product %q invalid: %v", p.ID, problems)
}

// CartLine is a single cart entry: the quantity plus a value copy of the product
// taken at add time. The snapshot intentionally does not track later catalog
// edits; cart semantics are price-at-add.
type CartLine struct {
	Product  Product
	Quantity int
	AddedAt  time.Time
}

// LineSubtotal is the extended price of the line in minor units.
func (l CartLine) LineSubtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Cart is a shopper's cart document. Totals are always derived, never stored.
type Cart struct {
	ShopperID string
	Lines     []CartLine
	Open      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemCount sums the quantities across all lines.
func (c Cart) ItemCount() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// IsEmpty reports whether the cart holds no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// LineFor returns the index of the line holding productID, or -1.
func (c Cart) LineFor(productID string) int {
	for i, line := range c.Lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

// WishlistItem is the lightweight product summary saved in a wishlist.
type WishlistItem struct {
	ProductID string
	Slug      string
	Name      string
	Price     int64
	Image     string
	InStock   bool
	AddedAt   time.Time
}

// Wishlist is a shopper's saved-items set, keyed by product ID.
type Wishlist struct {
	ShopperID string
	Items     []WishlistItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether productID is present in the wishlist.
func (w Wishlist) Contains(productID string) bool {
	for _, item := range w.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// ComparisonCapacity bounds how many products a comparison tray holds at once.
const ComparisonCapacity = 3

// ComparisonItem is the richer summary the compare tray renders side by side.
type ComparisonItem struct {
	ProductID   string
	Slug        string
	Name        string
	Price       int64
	Image       string
	Category    ProductCategory
	Description string
	Features    []string
	Benefits    []string
	Ingredients []string
	InStock     bool
	Rating      float64
	AddedAt     time.Time
}

// Comparison is a shopper's compare tray: an ordered, capacity-bounded product set.
type Comparison struct {
	ShopperID string
	Items     []ComparisonItem
	Open      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether productID is present in the comparison.
func (c Comparison) Contains(productID string) bool {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Full reports whether the comparison has reached capacity.
func (c Comparison) Full() bool {
	return len(c.Items) >= ComparisonCapacity
}

// ErrUnknownCategory marks lookups against a category outside KnownCategories.
var ErrUnknownCategory = errors.New("domain: unknown product category")

// HealthStatus is the verdict attached to a single probe or the aggregate report.
type HealthStatus string

const (
	// HealthStatusOK indicates the dependency responded within its deadline.
	HealthStatusOK HealthStatus = "ok"
	// HealthStatusDegraded indicates the dependency responded with an error.
	HealthStatusDegraded HealthStatus = "degraded"
	// HealthStatusError indicates the probe timed out or was cancelled.
	HealthStatusError HealthStatus = "error"
)

// HealthCheck is the outcome of probing a single dependency.
type HealthCheck struct {
	Status    HealthStatus
	Detail    string
	Error     string
	Latency   time.Duration
	CheckedAt time.Time
}

// HealthReport aggregates dependency probe outcomes for readiness responses.
type HealthReport struct {
	Status      HealthStatus
	Checks      map[string]HealthCheck
	GeneratedAt time.Time
}
