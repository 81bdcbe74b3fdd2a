package memory

import (
	"context"
	"errors"
	"testing"

	domain "github.com/peakform/storefront-api/internal/domain"
	"github.com/peakform/storefront-api/internal/repositories"
)

func TestCartStoreRoundTrip(t *testing.T) {
	store := NewCartStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "shopper-1")
	var repoErr repositories.RepositoryError
	if !errors.As(err, &repoErr) || !repoErr.IsNotFound() {
		t.Fatalf("expected not-found repository error, got %v", err)
	}

	cart := domain.Cart{
		ShopperID: "shopper-1",
		Open:      true,
		Lines: []domain.CartLine{
			{Product: domain.Product{ID: "prod-1", Price: 2000}, Quantity: 2},
		},
	}
	if err := store.Save(ctx, cart); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, "shopper-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ItemCount() != 2 || !got.Open {
		t.Fatalf("unexpected cart %+v", got)
	}

	// Mutating the returned cart must not leak back into the store.
	got.Lines[0].Quantity = 99
	again, err := store.Get(ctx, "shopper-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Lines[0].Quantity != 2 {
		t.Fatalf("store state mutated through returned cart")
	}

	if err := store.Delete(ctx, "shopper-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(ctx, "shopper-1"); err == nil {
		t.Fatalf("expected not found after delete")
	}
}

func TestWishlistStoreRoundTrip(t *testing.T) {
	store := NewWishlistStore()
	ctx := context.Background()

	wishlist := domain.Wishlist{
		ShopperID: "shopper-1",
		Items:     []domain.WishlistItem{{ProductID: "prod-1", Name: "Omega-3"}},
	}
	if err := store.Save(ctx, wishlist); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := store.Get(ctx, "shopper-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Contains("prod-1") {
		t.Fatalf("expected saved item present")
	}
}

func TestComparisonStoreRoundTrip(t *testing.T) {
	store := NewComparisonStore()
	ctx := context.Background()

	comparison := domain.Comparison{
		ShopperID: "shopper-1",
		Items:     []domain.ComparisonItem{{ProductID: "prod-1"}},
	}
	if err := store.Save(ctx, comparison); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := store.Get(ctx, "shopper-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Contains("prod-1") {
		t.Fatalf("expected saved item present")
	}
}

func TestStoresRejectEmptyShopperID(t *testing.T) {
	ctx := context.Background()
	if err := NewCartStore().Save(ctx, domain.Cart{}); err == nil {
		t.Fatalf("expected error for empty shopper id")
	}
	if err := NewWishlistStore().Save(ctx, domain.Wishlist{}); err == nil {
		t.Fatalf("expected error for empty shopper id")
	}
	if err := NewComparisonStore().Save(ctx, domain.Comparison{}); err == nil {
		t.Fatalf("expected error for empty shopper id")
	}
}
