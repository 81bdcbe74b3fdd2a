// Package memory holds per-shopper store documents in process memory. It
// backs the mock catalog mode, where no Firestore project is configured.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	domain "github.com/peakform/storefront-api/internal/domain"
	"github.com/peakform/storefront-api/internal/repositories"
)

type notFoundError struct {
	detail string
}

func (e notFoundError) Error() string       { return "memory store: " + e.detail + " not found" }
func (e notFoundError) IsNotFound() bool    { return true }
func (e notFoundError) IsConflict() bool    { return false }
func (e notFoundError) IsUnavailable() bool { return false }

var _ repositories.RepositoryError = notFoundError{}

// CartStore is an in-memory CartRepository.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

// NewCartStore constructs an empty in-memory cart store.
func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]domain.Cart)}
}

func (s *CartStore) Get(ctx context.Context, shopperID string) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[strings.TrimSpace(shopperID)]
	if !ok {
		return domain.Cart{}, notFoundError{detail: fmt.Sprintf("cart for %q", shopperID)}
	}
	return cloneCart(cart), nil
}

func (s *CartStore) Save(ctx context.Context, cart domain.Cart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	shopperID := strings.TrimSpace(cart.ShopperID)
	if shopperID == "" {
		return fmt.Errorf("memory store: shopper id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[shopperID] = cloneCart(cart)
	return nil
}

func (s *CartStore) Delete(ctx context.Context, shopperID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, strings.TrimSpace(shopperID))
	return nil
}

// WishlistStore is an in-memory WishlistRepository.
type WishlistStore struct {
	mu        sync.RWMutex
	wishlists map[string]domain.Wishlist
}

// NewWishlistStore constructs an empty in-memory wishlist store.
func NewWishlistStore() *WishlistStore {
	return &WishlistStore{wishlists: make(map[string]domain.Wishlist)}
}

func (s *WishlistStore) Get(ctx context.Context, shopperID string) (domain.Wishlist, error) {
	if err := ctx.Err(); err != nil {
		return domain.Wishlist{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	wishlist, ok := s.wishlists[strings.TrimSpace(shopperID)]
	if !ok {
		return domain.Wishlist{}, notFoundError{detail: fmt.Sprintf("wishlist for %q", shopperID)}
	}
	return cloneWishlist(wishlist), nil
}

func (s *WishlistStore) Save(ctx context.Context, wishlist domain.Wishlist) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	shopperID := strings.TrimSpace(wishlist.ShopperID)
	if shopperID == "" {
		return fmt.Errorf("memory store: shopper id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlists[shopperID] = cloneWishlist(wishlist)
	return nil
}

func (s *WishlistStore) Delete(ctx context.Context, shopperID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.wishlists, strings.TrimSpace(shopperID))
	return nil
}

// ComparisonStore is an in-memory ComparisonRepository.
type ComparisonStore struct {
	mu          sync.RWMutex
	comparisons map[string]domain.Comparison
}

// NewComparisonStore constructs an empty in-memory comparison store.
func NewComparisonStore() *ComparisonStore {
	return &ComparisonStore{comparisons: make(map[string]domain.Comparison)}
}

func (s *ComparisonStore) Get(ctx context.Context, shopperID string) (domain.Comparison, error) {
	if err := ctx.Err(); err != nil {
		return domain.Comparison{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	comparison, ok := s.comparisons[strings.TrimSpace(shopperID)]
	if !ok {
		return domain.Comparison{}, notFoundError{detail: fmt.Sprintf("comparison for %q", shopperID)}
	}
	return cloneComparison(comparison), nil
}

func (s *ComparisonStore) Save(ctx context.Context, comparison domain.Comparison) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	shopperID := strings.TrimSpace(comparison.ShopperID)
	if shopperID == "" {
		return fmt.Errorf("memory store: shopper id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comparisons[shopperID] = cloneComparison(comparison)
	return nil
}

func (s *ComparisonStore) Delete(ctx context.Context, shopperID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.comparisons, strings.TrimSpace(shopperID))
	return nil
}

func cloneCart(cart domain.Cart) domain.Cart {
	dup := cart
	dup.Lines = append([]domain.CartLine(nil), cart.Lines...)
	return dup
}

func cloneWishlist(wishlist domain.Wishlist) domain.Wishlist {
	dup := wishlist
	dup.Items = append([]domain.WishlistItem(nil), wishlist.Items...)
	return dup
}

func cloneComparison(comparison domain.Comparison) domain.Comparison {
	dup := comparison
	dup.Items = append([]domain.ComparisonItem(nil), comparison.Items...)
	return dup
}

var (
	_ repositories.CartRepository       = (*CartStore)(nil)
	_ repositories.WishlistRepository   = (*WishlistStore)(nil)
	_ repositories.ComparisonRepository = (*ComparisonStore)(nil)
)
