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
	errComparisonRepositoryRequired = errors.New("comparison service: repository is required")
	errComparisonCatalogRequired    = errors.New("comparison service: catalog is required")
	errComparisonClockRequired      = errors.New("comparison service: clock is required")
)

// ErrComparisonInvalidInput indicates the caller supplied invalid input.
var ErrComparisonInvalidInput = errors.New("comparison service: invalid input")

// ErrComparisonUnavailable indicates the comparison backend cannot serve the request.
var ErrComparisonUnavailable = errors.New("comparison service: unavailable")

// ErrComparisonNotFound indicates the referenced comparison entry does not exist.
var ErrComparisonNotFound = errors.New("comparison service: not found")

type comparisonProductFinder interface {
	GetProductByID(ctx context.Context, productID string) (Product, error)
}

// ComparisonServiceDeps wires the repository and catalog dependencies for comparison operations.
type ComparisonServiceDeps struct {
	Repository repositories.ComparisonRepository
	Catalog    comparisonProductFinder
	Clock      func() time.Time
	Logger     func(context.Context, string, map[string]any)
}

type comparisonService struct {
	repo    repositories.ComparisonRepository
	catalog comparisonProductFinder
	now     func() time.Time
	logger  func(context.Context, string, map[string]any)
}

// NewComparisonService constructs a ComparisonService enforcing dependency validation.
func NewComparisonService(deps ComparisonServiceDeps) (ComparisonService, error) {
	if deps.Repository == nil {
		return nil, errComparisonRepositoryRequired
	}
	if deps.Catalog == nil {
		return nil, errComparisonCatalogRequired
	}
	if deps.Clock == nil {
		return nil, errComparisonClockRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	return &comparisonService{
		repo:    deps.Repository,
		catalog: deps.Catalog,
		now:     func() time.Time { return deps.Clock().UTC() },
		logger:  logger,
	}, nil
}

// GetComparison loads the shopper's compare tray, returning an empty tray when
// none has been persisted yet.
func (s *comparisonService) GetComparison(ctx context.Context, shopperID string) (Comparison, error) {
	if s == nil || s.repo == nil {
		return Comparison{}, ErrComparisonUnavailable
	}
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return Comparison{}, fmt.Errorf("%w: shopper id is required", ErrComparisonInvalidInput)
	}
	return s.loadOrInit(ctx, shopperID)
}

// AddItem places a product in the compare tray. Adding a product that is
// already present, or adding to a tray at capacity, leaves the tray unchanged.
func (s *comparisonService) AddItem(ctx context.Context, shopperID, productID string) (Comparison, error) {
	if s == nil || s.repo == nil {
		return Comparison{}, ErrComparisonUnavailable
	}
	shopperID = strings.TrimSpace(shopperID)
	productID = strings.TrimSpace(productID)
	if shopperID == "" {
		return Comparison{}, fmt.Errorf("%w: shopper id is required", ErrComparisonInvalidInput)
	}
	if productID == "" {
		return Comparison{}, fmt.Errorf("%w: product id is required", ErrComparisonInvalidInput)
	}

	comparison, err := s.loadOrInit(ctx, shopperID)
	if err != nil {
		return Comparison{}, err
	}
	if comparison.Contains(productID) {
		return comparison, nil
	}
	if comparison.Full() {
		s.logger(ctx, "comparison.add.at_capacity", map[string]any{
			"shopperId": shopperID,
			"productId": productID,
		})
		return comparison, nil
	}

	product, err := s.catalog.GetProductByID(ctx, productID)
	if err != nil {
		return Comparison{}, s.translateCatalogError(err)
	}

	now := s.now()
	comparison.Items = append(comparison.Items, domain.ComparisonItem{
		ProductID:   product.ID,
		Slug:        product.Slug,
		Name:        product.Name,
		Price:       product.Price,
		Image:       product.PrimaryImage(),
		Category:    product.Category,
		Description: product.ShortDescription,
		Features:    product.Features,
		Benefits:    product.Benefits,
		Ingredients: product.Ingredients,
		Rating:      product.Rating,
		InStock:     product.InStock,
		AddedAt:     now,
	})
	comparison.Open = true
	comparison.UpdatedAt = now

	if err := s.repo.Save(ctx, comparison); err != nil {
		return Comparison{}, s.translateRepoError(err)
	}
	return comparison, nil
}

// RemoveItem removes a product from the tray. Removing a product that is not
// present is a no-op.
func (s *comparisonService) RemoveItem(ctx context.Context, shopperID, productID string) (Comparison, error) {
	if s == nil || s.repo == nil {
		return Comparison{}, ErrComparisonUnavailable
	}
	shopperID = strings.TrimSpace(shopperID)
	productID = strings.TrimSpace(productID)
	if shopperID == "" {
		return Comparison{}, fmt.Errorf("%w: shopper id is required", ErrComparisonInvalidInput)
	}
	if productID == "" {
		return Comparison{}, fmt.Errorf("%w: product id is required", ErrComparisonInvalidInput)
	}

	comparison, err := s.loadOrInit(ctx, shopperID)
	if err != nil {
		return Comparison{}, err
	}
	if !comparison.Contains(productID) {
		return comparison, nil
	}

	filtered := comparison.Items[:0]
	for _, item := range comparison.Items {
		if item.ProductID == productID {
			continue
		}
		filtered = append(filtered, item)
	}
	comparison.Items = filtered
	comparison.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, comparison); err != nil {
		return Comparison{}, s.translateRepoError(err)
	}
	return comparison, nil
}

// ToggleItem adds the product when absent and removes it when present.
// Toggling in follows the same capacity no-op rule as AddItem.
func (s *comparisonService) ToggleItem(ctx context.Context, shopperID, productID string) (Comparison, error) {
	if s == nil || s.repo == nil {
		return Comparison{}, ErrComparisonUnavailable
	}
	shopperID = strings.TrimSpace(shopperID)
	productID = strings.TrimSpace(productID)
	if shopperID == "" {
		return Comparison{}, fmt.Errorf("%w: shopper id is required", ErrComparisonInvalidInput)
	}
	if productID == "" {
		return Comparison{}, fmt.Errorf("%w: product id is required", ErrComparisonInvalidInput)
	}

	comparison, err := s.loadOrInit(ctx, shopperID)
	if err != nil {
		return Comparison{}, err
	}
	if comparison.Contains(productID) {
		return s.RemoveItem(ctx, shopperID, productID)
	}
	return s.AddItem(ctx, shopperID, productID)
}

// ClearComparison deletes the stored tray and returns a fresh empty one.
func (s *comparisonService) ClearComparison(ctx context.Context, shopperID string) (Comparison, error) {
	if s == nil || s.repo == nil {
		return Comparison{}, ErrComparisonUnavailable
	}
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return Comparison{}, fmt.Errorf("%w: shopper id is required", ErrComparisonInvalidInput)
	}

	// Clearing drops the stored document entirely; a missing document is
	// already clear.
	if err := s.repo.Delete(ctx, shopperID); err != nil {
		if translated := s.translateRepoError(err); !errors.Is(translated, ErrComparisonNotFound) {
			return Comparison{}, translated
		}
	}
	now := s.now()
	return Comparison{ShopperID: shopperID, CreatedAt: now, UpdatedAt: now}, nil
}

// SetOpen records whether the compare tray is expanded on the storefront.
func (s *comparisonService) SetOpen(ctx context.Context, shopperID string, open bool) (Comparison, error) {
	if s == nil || s.repo == nil {
		return Comparison{}, ErrComparisonUnavailable
	}
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return Comparison{}, fmt.Errorf("%w: shopper id is required", ErrComparisonInvalidInput)
	}

	comparison, err := s.loadOrInit(ctx, shopperID)
	if err != nil {
		return Comparison{}, err
	}
	if comparison.Open == open {
		return comparison, nil
	}
	comparison.Open = open
	comparison.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, comparison); err != nil {
		return Comparison{}, s.translateRepoError(err)
	}
	return comparison, nil
}

func (s *comparisonService) loadOrInit(ctx context.Context, shopperID string) (Comparison, error) {
	comparison, err := s.repo.Get(ctx, shopperID)
	if err != nil {
		translated := s.translateRepoError(err)
		if errors.Is(translated, ErrComparisonNotFound) {
			now := s.now()
			return Comparison{ShopperID: shopperID, CreatedAt: now, UpdatedAt: now}, nil
		}
		return Comparison{}, translated
	}
	return comparison, nil
}

func (s *comparisonService) translateRepoError(err error) error {
	if err == nil {
		return nil
	}
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		switch {
		case repoErr.IsNotFound():
			return ErrComparisonNotFound
		case repoErr.IsUnavailable():
			return ErrComparisonUnavailable
		}
		return ErrComparisonUnavailable
	}
	return ErrComparisonUnavailable
}

func (s *comparisonService) translateCatalogError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrCatalogNotFound) {
		return fmt.Errorf("%w: unknown product", ErrComparisonInvalidInput)
	}
	if errors.Is(err, ErrCatalogInvalidInput) {
		return fmt.Errorf("%w: invalid product reference", ErrComparisonInvalidInput)
	}
	return ErrComparisonUnavailable
}
