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
	errWishlistRepositoryRequired = errors.New("wishlist service: repository is required")
	errWishlistCatalogRequired    = errors.New("wishlist service: catalog is required")
	errWishlistClockRequired      = errors.New("wishlist service: clock is required")
)

// ErrWishlistInvalidInput indicates the caller supplied invalid input.
var ErrWishlistInvalidInput = errors.New("wishlist service: invalid input")

// ErrWishlistUnavailable indicates the wishlist backend cannot serve the request.
var ErrWishlistUnavailable = errors.New("wishlist service: unavailable")

// ErrWishlistNotFound indicates the referenced wishlist entry does not exist.
var ErrWishlistNotFound = errors.New("wishlist service: not found")

type wishlistProductFinder interface {
	GetProductByID(ctx context.Context, productID string) (Product, error)
}

// WishlistServiceDeps wires the repository and catalog dependencies for wishlist operations.
type WishlistServiceDeps struct {
	Repository repositories.WishlistRepository
	Catalog    wishlistProductFinder
	Clock      func() time.Time
	Logger     func(context.Context, string, map[string]any)
}

type wishlistService struct {
	repo    repositories.WishlistRepository
	catalog wishlistProductFinder
	now     func() time.Time
	logger  func(context.Context, string, map[string]any)
}

// NewWishlistService constructs a WishlistService enforcing dependency validation.
func NewWishlistService(deps WishlistServiceDeps) (WishlistService, error) {
	if deps.Repository == nil {
		return nil, errWishlistRepositoryRequired
	}
	if deps.Catalog == nil {
		return nil, errWishlistCatalogRequired
	}
	if deps.Clock == nil {
		return nil, errWishlistClockRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	return &wishlistService{
		repo:    deps.Repository,
		catalog: deps.Catalog,
		now:     func() time.Time { return deps.Clock().UTC() },
		logger:  logger,
	}, nil
}

// GetWishlist loads the shopper's wishlist, returning an empty wishlist when
// none has been persisted yet.
func (s *wishlistService) GetWishlist(ctx context.Context, shopperID string) (Wishlist, error) {
	if s == nil || s.repo == nil {
		return Wishlist{}, ErrWishlistUnavailable
	}
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return Wishlist{}, fmt.Errorf("%w: shopper id is required", ErrWishlistInvalidInput)
	}
	return s.loadOrInit(ctx, shopperID)
}

// AddItem saves a product to the wishlist. Adding a product that is already
// saved is a no-op.
func (s *wishlistService) AddItem(ctx context.Context, shopperID, productID string) (Wishlist, error) {
	if s == nil || s.repo == nil {
		return Wishlist{}, ErrWishlistUnavailable
	}
	shopperID = strings.TrimSpace(shopperID)
	productID = strings.TrimSpace(productID)
	if shopperID == "" {
		return Wishlist{}, fmt.Errorf("%w: shopper id is required", ErrWishlistInvalidInput)
	}
	if productID == "" {
		return Wishlist{}, fmt.Errorf("%w: product id is required", ErrWishlistInvalidInput)
	}

	wishlist, err := s.loadOrInit(ctx, shopperID)
	if err != nil {
		return Wishlist{}, err
	}
	if wishlist.Contains(productID) {
		return wishlist, nil
	}

	product, err := s.catalog.GetProductByID(ctx, productID)
	if err != nil {
		return Wishlist{}, s.translateCatalogError(err)
	}

	now := s.now()
	wishlist.Items = append(wishlist.Items, domain.WishlistItem{
		ProductID: product.ID,
		Slug:      product.Slug,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.PrimaryImage(),
		InStock:   product.InStock,
		AddedAt:   now,
	})
	wishlist.UpdatedAt = now

	if err := s.repo.Save(ctx, wishlist); err != nil {
		return Wishlist{}, s.translateRepoError(err)
	}
	return wishlist, nil
}

// RemoveItem deletes a product from the wishlist. Removing a product that is
// not saved is a no-op.
func (s *wishlistService) RemoveItem(ctx context.Context, shopperID, productID string) (Wishlist, error) {
	if s == nil || s.repo == nil {
		return Wishlist{}, ErrWishlistUnavailable
	}
	shopperID = strings.TrimSpace(shopperID)
	productID = strings.TrimSpace(productID)
	if shopperID == "" {
		return Wishlist{}, fmt.Errorf("%w: shopper id is required", ErrWishlistInvalidInput)
	}
	if productID == "" {
		return Wishlist{}, fmt.Errorf("%w: product id is required", ErrWishlistInvalidInput)
	}

	wishlist, err := s.loadOrInit(ctx, shopperID)
	if err != nil {
		return Wishlist{}, err
	}
	if !wishlist.Contains(productID) {
		return wishlist, nil
	}

	filtered := wishlist.Items[:0]
	for _, item := range wishlist.Items {
		if item.ProductID == productID {
			continue
		}
		filtered = append(filtered, item)
	}
	wishlist.Items = filtered
	wishlist.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, wishlist); err != nil {
		return Wishlist{}, s.translateRepoError(err)
	}
	return wishlist, nil
}

// ToggleItem adds the product when absent and removes it when present.
func (s *wishlistService) ToggleItem(ctx context.Context, shopperID, productID string) (Wishlist, error) {
	if s == nil || s.repo == nil {
		return Wishlist{}, ErrWishlistUnavailable
	}
	shopperID = strings.TrimSpace(shopperID)
	productID = strings.TrimSpace(productID)
	if shopperID == "" {
		return Wishlist{}, fmt.Errorf("%w: shopper id is required", ErrWishlistInvalidInput)
	}
	if productID == "" {
		return Wishlist{}, fmt.Errorf("%w: product id is required", ErrWishlistInvalidInput)
	}

	wishlist, err := s.loadOrInit(ctx, shopperID)
	if err != nil {
		return Wishlist{}, err
	}
	if wishlist.Contains(productID) {
		return s.RemoveItem(ctx, shopperID, productID)
	}
	return s.AddItem(ctx, shopperID, productID)
}

// ClearWishlist deletes the stored wishlist and returns a fresh empty one.
func (s *wishlistService) ClearWishlist(ctx context.Context, shopperID string) (Wishlist, error) {
	if s == nil || s.repo == nil {
		return Wishlist{}, ErrWishlistUnavailable
	}
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return Wishlist{}, fmt.Errorf("%w: shopper id is required", ErrWishlistInvalidInput)
	}

	// Clearing drops the stored document entirely; a missing document is
	// already clear.
	if err := s.repo.Delete(ctx, shopperID); err != nil {
		if translated := s.translateRepoError(err); !errors.Is(translated, ErrWishlistNotFound) {
			return Wishlist{}, translated
		}
	}
	now := s.now()
	return Wishlist{ShopperID: shopperID, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *wishlistService) loadOrInit(ctx context.Context, shopperID string) (Wishlist, error) {
	wishlist, err := s.repo.Get(ctx, shopperID)
	if err != nil {
		translated := s.translateRepoError(err)
		if errors.Is(translated, ErrWishlistNotFound) {
			now := s.now()
			return Wishlist{ShopperID: shopperID, CreatedAt: now, UpdatedAt: now}, nil
		}
		return Wishlist{}, translated
	}
	return wishlist, nil
}

func (s *wishlistService) translateRepoError(err error) error {
	if err == nil {
		return nil
	}
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		switch {
		case repoErr.IsNotFound():
			return ErrWishlistNotFound
		case repoErr.IsUnavailable():
			return ErrWishlistUnavailable
		}
		return ErrWishlistUnavailable
	}
	return ErrWishlistUnavailable
}

func (s *wishlistService) translateCatalogError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrCatalogNotFound) {
		return fmt.Errorf("%w: unknown product", ErrWishlistInvalidInput)
	}
	if errors.Is(err, ErrCatalogInvalidInput) {
		return fmt.Errorf("%w: invalid product reference", ErrWishlistInvalidInput)
	}
	return ErrWishlistUnavailable
}
