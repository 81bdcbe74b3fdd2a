package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	domain "github.com/peakform/storefront-api/internal/domain"
	"github.com/peakform/storefront-api/internal/platform/textutil"
	"github.com/peakform/storefront-api/internal/repositories"
)

const (
	defaultCatalogPageSize = 12
	defaultCatalogMaxPage  = 48
	defaultFeaturedLimit   = 4
)

// ErrCatalogInvalidInput indicates the caller supplied invalid query parameters.
var ErrCatalogInvalidInput = errors.New("catalog service: invalid input")

// ErrCatalogNotFound indicates the requested product does not exist.
var ErrCatalogNotFound = errors.New("catalog service: not found")

// ErrCatalogUnavailable indicates the product source cannot serve the request.
var ErrCatalogUnavailable = errors.New("catalog service: unavailable")

var errCatalogProductsRequired = errors.New("catalog service: product repository is required")

// CatalogServiceDeps bundles constructor inputs for the catalog facade.
type CatalogServiceDeps struct {
	Products        repositories.ProductRepository
	Sanitizer       *bluemonday.Policy
	DefaultPageSize int
	MaxPageSize     int
	FeaturedLimit   int
	Clock           func() time.Time
	Logger          func(context.Context, string, map[string]any)
}

type catalogService struct {
	products        repositories.ProductRepository
	sanitizer       *bluemonday.Policy
	defaultPageSize int
	maxPageSize     int
	featuredLimit   int
	now             func() time.Time
	logger          func(context.Context, string, map[string]any)
}

// NewCatalogService constructs the catalog facade with the supplied dependencies.
func NewCatalogService(deps CatalogServiceDeps) (CatalogService, error) {
	if deps.Products == nil {
		return nil, errCatalogProductsRequired
	}

	sanitizer := deps.Sanitizer
	if sanitizer == nil {
		sanitizer = bluemonday.UGCPolicy()
	}
	defaultPageSize := deps.DefaultPageSize
	if defaultPageSize <= 0 {
		defaultPageSize = defaultCatalogPageSize
	}
	maxPageSize := deps.MaxPageSize
	if maxPageSize <= 0 {
		maxPageSize = defaultCatalogMaxPage
	}
	featuredLimit := deps.FeaturedLimit
	if featuredLimit <= 0 {
		featuredLimit = defaultFeaturedLimit
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	return &catalogService{
		products:        deps.Products,
		sanitizer:       sanitizer,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		featuredLimit:   featuredLimit,
		now:             func() time.Time { return clock().UTC() },
		logger:          logger,
	}, nil
}

// ListProducts returns a catalog page, optionally narrowed to one category.
func (s *catalogService) ListProducts(ctx context.Context, query ListProductsQuery) (ProductPage, error) {
	if s == nil || s.products == nil {
		return ProductPage{}, ErrCatalogUnavailable
	}

	filter := repositories.ProductListFilter{
		OnSaleOnly: query.OnSale,
		Pagination: query.Pagination.Normalize(s.defaultPageSize, s.maxPageSize),
	}
	switch query.Sort {
	case "", domain.SortAsc, domain.SortDesc:
		filter.Sort = query.Sort
	default:
		return ProductPage{}, fmt.Errorf("%w: unknown sort order %q", ErrCatalogInvalidInput, query.Sort)
	}
	if query.Category != nil {
		category := domain.ProductCategory(strings.ToLower(strings.TrimSpace(string(*query.Category))))
		if !domain.IsKnownCategory(category) {
			return ProductPage{}, fmt.Errorf("%w: unknown category %q", ErrCatalogInvalidInput, category)
		}
		filter.Category = &category
	}

	page, err := s.products.List(ctx, filter)
	if err != nil {
		return ProductPage{}, s.translateRepoError(err)
	}
	for i := range page.Products {
		page.Products[i] = s.sanitizeProduct(page.Products[i])
	}
	page.Page = filter.Pagination.Page
	page.PageSize = filter.Pagination.PageSize
	return page, nil
}

// GetProductBySlug resolves a product by its URL slug. Lookup is tolerant of
// casing and diacritics in the supplied value.
func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (Product, error) {
	if s == nil || s.products == nil {
		return Product{}, ErrCatalogUnavailable
	}
	normalized := textutil.Slugify(slug)
	if normalized == "" {
		return Product{}, fmt.Errorf("%w: slug is required", ErrCatalogInvalidInput)
	}

	product, err := s.products.FindBySlug(ctx, normalized)
	if err != nil {
		return Product{}, s.translateRepoError(err)
	}
	return s.sanitizeProduct(product), nil
}

// GetProductByID resolves a product by identifier.
func (s *catalogService) GetProductByID(ctx context.Context, productID string) (Product, error) {
	if s == nil || s.products == nil {
		return Product{}, ErrCatalogUnavailable
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return Product{}, fmt.Errorf("%w: product id is required", ErrCatalogInvalidInput)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return Product{}, s.translateRepoError(err)
	}
	return s.sanitizeProduct(product), nil
}

// GetFeaturedProducts returns up to limit featured products in catalog order.
func (s *catalogService) GetFeaturedProducts(ctx context.Context, limit int) ([]Product, error) {
	if s == nil || s.products == nil {
		return nil, ErrCatalogUnavailable
	}
	if limit <= 0 || limit > s.featuredLimit {
		limit = s.featuredLimit
	}

	featured := true
	page, err := s.products.List(ctx, repositories.ProductListFilter{
		Featured:   &featured,
		Pagination: domain.Pagination{Page: 1, PageSize: limit},
	})
	if err != nil {
		return nil, s.translateRepoError(err)
	}
	products := page.Products
	if len(products) > limit {
		products = products[:limit]
	}
	for i := range products {
		products[i] = s.sanitizeProduct(products[i])
	}
	return products, nil
}

// sanitizeProduct strips unsafe markup from merchant-authored copy before it
// leaves the service.
func (s *catalogService) sanitizeProduct(product Product) Product {
	product.Description = strings.TrimSpace(s.sanitizer.Sanitize(product.Description))
	product.ShortDescription = strings.TrimSpace(s.sanitizer.Sanitize(product.ShortDescription))
	for i, benefit := range product.Benefits {
		product.Benefits[i] = strings.TrimSpace(s.sanitizer.Sanitize(benefit))
	}
	return product
}

func (s *catalogService) translateRepoError(err error) error {
	if err == nil {
		return nil
	}
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		switch {
		case repoErr.IsNotFound():
			return ErrCatalogNotFound
		case repoErr.IsUnavailable():
			return ErrCatalogUnavailable
		}
		return ErrCatalogUnavailable
	}
	return ErrCatalogUnavailable
}
