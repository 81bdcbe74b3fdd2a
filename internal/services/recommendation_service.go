package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/peakform/storefront-api/internal/domain"
	"github.com/peakform/storefront-api/internal/repositories"
)

var (
	errRecommendationProductsRequired = errors.New("recommendation service: product repository is required")
	errRecommendationCartsRequired    = errors.New("recommendation service: cart repository is required")
	errRecommendationClockRequired    = errors.New("recommendation service: clock is required")
)

// recommendationScanLimit bounds how much of the catalog a single
// recommendation request will consider.
const recommendationScanLimit = 500

// ErrRecommendationInvalidInput indicates the caller supplied invalid input.
var ErrRecommendationInvalidInput = errors.New("recommendation service: invalid input")

// ErrRecommendationNotFound indicates the subject product does not exist.
var ErrRecommendationNotFound = errors.New("recommendation service: not found")

// ErrRecommendationUnavailable indicates the catalog or cart backend cannot serve the request.
var ErrRecommendationUnavailable = errors.New("recommendation service: unavailable")

// RecommendationServiceDeps wires the catalog and cart dependencies for recommendation queries.
type RecommendationServiceDeps struct {
	Products repositories.ProductRepository
	Carts    repositories.CartRepository
	Clock    func() time.Time
	Logger   func(context.Context, string, map[string]any)
}

type recommendationService struct {
	products repositories.ProductRepository
	carts    repositories.CartRepository
	now      func() time.Time
	logger   func(context.Context, string, map[string]any)
}

// NewRecommendationService constructs a RecommendationService enforcing dependency validation.
func NewRecommendationService(deps RecommendationServiceDeps) (RecommendationService, error) {
	if deps.Products == nil {
		return nil, errRecommendationProductsRequired
	}
	if deps.Carts == nil {
		return nil, errRecommendationCartsRequired
	}
	if deps.Clock == nil {
		return nil, errRecommendationClockRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	return &recommendationService{
		products: deps.Products,
		carts:    deps.Carts,
		now:      func() time.Time { return deps.Clock().UTC() },
		logger:   logger,
	}, nil
}

// FrequentlyBoughtTogether suggests companions for a product page.
func (s *recommendationService) FrequentlyBoughtTogether(ctx context.Context, productID string, max int) ([]Product, error) {
	subject, catalog, err := s.subjectAndCatalog(ctx, productID)
	if err != nil {
		return nil, err
	}
	return frequentlyBoughtTogether(catalog, subject, max), nil
}

// YouMayAlsoLike suggests browse alternatives for a product page.
func (s *recommendationService) YouMayAlsoLike(ctx context.Context, productID string, max int) ([]Product, error) {
	subject, catalog, err := s.subjectAndCatalog(ctx, productID)
	if err != nil {
		return nil, err
	}
	return youMayAlsoLike(catalog, subject, max), nil
}

// ComplementaryProducts suggests cross-sells for a product page.
func (s *recommendationService) ComplementaryProducts(ctx context.Context, productID string, max int) ([]Product, error) {
	subject, catalog, err := s.subjectAndCatalog(ctx, productID)
	if err != nil {
		return nil, err
	}
	return complementaryProducts(catalog, subject, max), nil
}

// CartRecommendations suggests cross-sells for the shopper's current cart.
func (s *recommendationService) CartRecommendations(ctx context.Context, shopperID string, max int) ([]Product, error) {
	if s == nil || s.products == nil || s.carts == nil {
		return nil, ErrRecommendationUnavailable
	}
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return nil, fmt.Errorf("%w: shopper id is required", ErrRecommendationInvalidInput)
	}

	cart, err := s.loadCart(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshCartProducts(ctx, &cart); err != nil {
		return nil, err
	}
	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return cartRecommendations(catalog, cart, max), nil
}

// refreshCartProducts swaps each line's price-at-add snapshot for the current
// catalog record, so suggestions key off live categorisation. Lines whose
// product has left the catalog keep their snapshot.
func (s *recommendationService) refreshCartProducts(ctx context.Context, cart *Cart) error {
	if len(cart.Lines) == 0 {
		return nil
	}
	ids := make([]string, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		ids = append(ids, line.Product.ID)
	}
	current, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return s.translateRepoError(err)
	}
	byID := make(map[string]Product, len(current))
	for _, product := range current {
		byID[product.ID] = product
	}
	for i, line := range cart.Lines {
		if product, ok := byID[line.Product.ID]; ok {
			cart.Lines[i].Product = product
		}
	}
	return nil
}

// BundleDiscount reports the bundle tier the shopper's cart currently earns.
func (s *recommendationService) BundleDiscount(ctx context.Context, shopperID string) (BundleTier, error) {
	if s == nil || s.carts == nil {
		return BundleTier{}, ErrRecommendationUnavailable
	}
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return BundleTier{}, fmt.Errorf("%w: shopper id is required", ErrRecommendationInvalidInput)
	}

	cart, err := s.loadCart(ctx, shopperID)
	if err != nil {
		return BundleTier{}, err
	}
	return domain.BundleTierFor(cart.ItemCount()), nil
}

func (s *recommendationService) subjectAndCatalog(ctx context.Context, productID string) (Product, []Product, error) {
	if s == nil || s.products == nil {
		return Product{}, nil, ErrRecommendationUnavailable
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return Product{}, nil, fmt.Errorf("%w: product id is required", ErrRecommendationInvalidInput)
	}

	subject, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return Product{}, nil, s.translateRepoError(err)
	}
	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return Product{}, nil, err
	}
	return subject, catalog, nil
}

func (s *recommendationService) loadCatalog(ctx context.Context) ([]Product, error) {
	page, err := s.products.List(ctx, repositories.ProductListFilter{
		Pagination: domain.Pagination{Page: 1, PageSize: recommendationScanLimit},
	})
	if err != nil {
		return nil, s.translateRepoError(err)
	}
	return page.Products, nil
}

func (s *recommendationService) loadCart(ctx context.Context, shopperID string) (Cart, error) {
	cart, err := s.carts.Get(ctx, shopperID)
	if err != nil {
		translated := s.translateRepoError(err)
		if errors.Is(translated, ErrRecommendationNotFound) {
			return Cart{ShopperID: shopperID}, nil
		}
		return Cart{}, translated
	}
	return cart, nil
}

func (s *recommendationService) translateRepoError(err error) error {
	if err == nil {
		return nil
	}
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		switch {
		case repoErr.IsNotFound():
			return ErrRecommendationNotFound
		case repoErr.IsUnavailable():
			return ErrRecommendationUnavailable
		}
		return ErrRecommendationUnavailable
	}
	return ErrRecommendationUnavailable
}
