package fixture

import (
	"context"
	"errors"
	"testing"

	domain "github.com/peakform/storefront-api/internal/domain"
	"github.com/peakform/storefront-api/internal/repositories"
)

func TestCatalogProductsAreValid(t *testing.T) {
	catalog := NewCatalog()
	page, err := catalog.List(context.Background(), repositories.ProductListFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Products) == 0 {
		t.Fatalf("expected embedded products")
	}

	slugs := make(map[string]struct{}, len(page.Products))
	for _, product := range page.Products {
		if err := product.Validate(); err != nil {
			t.Fatalf("product %s invalid: %v", product.ID, err)
		}
		if !domain.IsKnownCategory(product.Category) {
			t.Fatalf("product %s has unknown category %q", product.ID, product.Category)
		}
		if _, dup := slugs[product.Slug]; dup {
			t.Fatalf("duplicate slug %q", product.Slug)
		}
		slugs[product.Slug] = struct{}{}
	}
}

func TestCatalogCoversEveryCategory(t *testing.T) {
	catalog := NewCatalog()
	for _, category := range domain.KnownCategories {
		c := category
		page, err := catalog.List(context.Background(), repositories.ProductListFilter{Category: &c})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Products) == 0 {
			t.Fatalf("category %q has no fixture products", category)
		}
	}
}

func TestCatalogListFilters(t *testing.T) {
	catalog := NewCatalog()

	featured := true
	page, err := catalog.List(context.Background(), repositories.ProductListFilter{Featured: &featured})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, product := range page.Products {
		if !product.Featured {
			t.Fatalf("non-featured product %s in featured listing", product.ID)
		}
	}

	page, err = catalog.List(context.Background(), repositories.ProductListFilter{OnSaleOnly: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Products) == 0 {
		t.Fatalf("expected at least one sale product")
	}
	for _, product := range page.Products {
		if !product.OnSale() {
			t.Fatalf("full-price product %s in sale listing", product.ID)
		}
	}
}

func TestCatalogListSortsByPrice(t *testing.T) {
	catalog := NewCatalog()

	page, err := catalog.List(context.Background(), repositories.ProductListFilter{Sort: domain.SortAsc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(page.Products); i++ {
		if page.Products[i-1].Price > page.Products[i].Price {
			t.Fatalf("ascending listing out of order at %d: %d > %d", i, page.Products[i-1].Price, page.Products[i].Price)
		}
	}

	page, err = catalog.List(context.Background(), repositories.ProductListFilter{Sort: domain.SortDesc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(page.Products); i++ {
		if page.Products[i-1].Price < page.Products[i].Price {
			t.Fatalf("descending listing out of order at %d: %d < %d", i, page.Products[i-1].Price, page.Products[i].Price)
		}
	}
}

func TestCatalogListPaginates(t *testing.T) {
	catalog := NewCatalog()

	page, err := catalog.List(context.Background(), repositories.ProductListFilter{
		Pagination: domain.Pagination{Page: 2, PageSize: 5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Products) != 5 {
		t.Fatalf("expected 5 products on page 2, got %d", len(page.Products))
	}
	if page.Total != 14 {
		t.Fatalf("expected total 14, got %d", page.Total)
	}

	page, err = catalog.List(context.Background(), repositories.ProductListFilter{
		Pagination: domain.Pagination{Page: 99, PageSize: 5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Products) != 0 {
		t.Fatalf("expected empty page past the end, got %d", len(page.Products))
	}
}

func TestCatalogFindBySlug(t *testing.T) {
	catalog := NewCatalog()

	product, err := catalog.FindBySlug(context.Background(), "omega-3-fish-oil")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.ID != "prod-omega3" {
		t.Fatalf("expected prod-omega3, got %q", product.ID)
	}

	_, err = catalog.FindBySlug(context.Background(), "does-not-exist")
	var repoErr repositories.RepositoryError
	if !errors.As(err, &repoErr) || !repoErr.IsNotFound() {
		t.Fatalf("expected not-found repository error, got %v", err)
	}
}

func TestCatalogReturnsCopies(t *testing.T) {
	catalog := NewCatalog()

	first, err := catalog.FindByID(context.Background(), "prod-omega3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first.Benefits[0] = "mutated"

	second, err := catalog.FindByID(context.Background(), "prod-omega3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Benefits[0] == "mutated" {
		t.Fatalf("fixture data mutated through returned product")
	}
}

func TestCatalogFindByIDsSkipsUnknown(t *testing.T) {
	catalog := NewCatalog()

	products, err := catalog.FindByIDs(context.Background(), []string{"prod-omega3", "missing", "prod-creatine"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
}
