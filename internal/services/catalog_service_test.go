package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	domain "github.com/peakform/storefront-api/internal/domain"
	"github.com/peakform/storefront-api/internal/repositories"
)

func TestNewCatalogServiceRequiresRepository(t *testing.T) {
	if _, err := NewCatalogService(CatalogServiceDeps{}); err == nil {
		t.Fatalf("expected error when product repository missing")
	}
}

func TestCatalogServiceListProductsAppliesPageDefaults(t *testing.T) {
	var captured repositories.ProductListFilter
	repo := &stubProductRepository{
		listFunc: func(ctx context.Context, filter repositories.ProductListFilter) (domain.ProductPage, error) {
			captured = filter
			return domain.ProductPage{Products: []domain.Product{testCatalogProduct("prod-1", 2900)}, Total: 1}, nil
		},
	}

	service := newTestCatalogService(t, repo)

	page, err := service.ListProducts(context.Background(), ListProductsQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Pagination.Page != 1 {
		t.Fatalf("expected page 1, got %d", captured.Pagination.Page)
	}
	if captured.Pagination.PageSize != 12 {
		t.Fatalf("expected default page size 12, got %d", captured.Pagination.PageSize)
	}
	if page.Total != 1 {
		t.Fatalf("expected total 1, got %d", page.Total)
	}
}

func TestCatalogServiceListProductsClampsPageSize(t *testing.T) {
	var captured repositories.ProductListFilter
	repo := &stubProductRepository{
		listFunc: func(ctx context.Context, filter repositories.ProductListFilter) (domain.ProductPage, error) {
			captured = filter
			return domain.ProductPage{}, nil
		},
	}

	service := newTestCatalogService(t, repo)

	if _, err := service.ListProducts(context.Background(), ListProductsQuery{
		Pagination: domain.Pagination{Page: 2, PageSize: 500},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Pagination.PageSize != 48 {
		t.Fatalf("expected page size clamped to 48, got %d", captured.Pagination.PageSize)
	}
}

func TestCatalogServiceListProductsNormalisesCategory(t *testing.T) {
	var captured repositories.ProductListFilter
	repo := &stubProductRepository{
		listFunc: func(ctx context.Context, filter repositories.ProductListFilter) (domain.ProductPage, error) {
			captured = filter
			return domain.ProductPage{}, nil
		},
	}

	service := newTestCatalogService(t, repo)

	category := domain.ProductCategory(" Sleep ")
	if _, err := service.ListProducts(context.Background(), ListProductsQuery{Category: &category}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Category == nil || *captured.Category != domain.CategorySleep {
		t.Fatalf("expected category sleep, got %v", captured.Category)
	}
}

func TestCatalogServiceListProductsRejectsUnknownCategory(t *testing.T) {
	service := newTestCatalogService(t, &stubProductRepository{})

	category := domain.ProductCategory("gadgets")
	if _, err := service.ListProducts(context.Background(), ListProductsQuery{Category: &category}); !errors.Is(err, ErrCatalogInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCatalogServiceListProductsForwardsSaleAndSort(t *testing.T) {
	var captured repositories.ProductListFilter
	repo := &stubProductRepository{
		listFunc: func(ctx context.Context, filter repositories.ProductListFilter) (domain.ProductPage, error) {
			captured = filter
			return domain.ProductPage{}, nil
		},
	}

	service := newTestCatalogService(t, repo)

	if _, err := service.ListProducts(context.Background(), ListProductsQuery{
		OnSale: true,
		Sort:   domain.SortDesc,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !captured.OnSaleOnly {
		t.Fatalf("expected on-sale filter forwarded")
	}
	if captured.Sort != domain.SortDesc {
		t.Fatalf("expected sort desc, got %q", captured.Sort)
	}
}

func TestCatalogServiceListProductsRejectsUnknownSort(t *testing.T) {
	service := newTestCatalogService(t, &stubProductRepository{})

	if _, err := service.ListProducts(context.Background(), ListProductsQuery{
		Sort: domain.SortOrder("cheapest"),
	}); !errors.Is(err, ErrCatalogInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCatalogServiceGetProductBySlugNormalisesLookup(t *testing.T) {
	repo := &stubProductRepository{
		findBySlugFunc: func(ctx context.Context, slug string) (domain.Product, error) {
			if slug != "omega-3-fish-oil" {
				t.Fatalf("unexpected slug %q", slug)
			}
			return testCatalogProduct("prod-1", 2900), nil
		},
	}

	service := newTestCatalogService(t, repo)

	product, err := service.GetProductBySlug(context.Background(), " Omega-3 Fish Oil ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.ID != "prod-1" {
		t.Fatalf("expected prod-1, got %q", product.ID)
	}
}

func TestCatalogServiceGetProductBySlugNotFound(t *testing.T) {
	repo := &stubProductRepository{
		findBySlugFunc: func(ctx context.Context, slug string) (domain.Product, error) {
			return domain.Product{}, &repositoryErrorStub{notFound: true}
		},
	}

	service := newTestCatalogService(t, repo)

	if _, err := service.GetProductBySlug(context.Background(), "missing"); !errors.Is(err, ErrCatalogNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCatalogServiceSanitisesProductCopy(t *testing.T) {
	product := testCatalogProduct("prod-1", 2900)
	product.Description = `Supports recovery.<script>alert("x")</script>`
	product.ShortDescription = `<b>Clinically dosed</b><iframe src="evil"></iframe>`
	product.Benefits = []string{`Deeper sleep<script>steal()</script>`}

	repo := &stubProductRepository{
		findByIDFunc: func(ctx context.Context, productID string) (domain.Product, error) {
			return product, nil
		},
	}

	service := newTestCatalogService(t, repo)

	got, err := service.GetProductByID(context.Background(), "prod-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got.Description, "<script>") {
		t.Fatalf("expected script stripped from description, got %q", got.Description)
	}
	if strings.Contains(got.ShortDescription, "<iframe") {
		t.Fatalf("expected iframe stripped, got %q", got.ShortDescription)
	}
	if !strings.Contains(got.ShortDescription, "<b>") {
		t.Fatalf("expected benign markup kept, got %q", got.ShortDescription)
	}
	if strings.Contains(got.Benefits[0], "<script>") {
		t.Fatalf("expected script stripped from benefit, got %q", got.Benefits[0])
	}
}

func TestCatalogServiceGetFeaturedProductsClampsLimit(t *testing.T) {
	var captured repositories.ProductListFilter
	repo := &stubProductRepository{
		listFunc: func(ctx context.Context, filter repositories.ProductListFilter) (domain.ProductPage, error) {
			captured = filter
			return domain.ProductPage{Products: []domain.Product{
				testCatalogProduct("prod-1", 1000),
				testCatalogProduct("prod-2", 2000),
			}}, nil
		},
	}

	service := newTestCatalogService(t, repo)

	products, err := service.GetFeaturedProducts(context.Background(), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Featured == nil || !*captured.Featured {
		t.Fatalf("expected featured filter set")
	}
	if captured.Pagination.PageSize != 4 {
		t.Fatalf("expected limit clamped to 4, got %d", captured.Pagination.PageSize)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
}

func newTestCatalogService(t *testing.T, repo *stubProductRepository) CatalogService {
	t.Helper()
	service, err := NewCatalogService(CatalogServiceDeps{Products: repo})
	if err != nil {
		t.Fatalf("unexpected error constructing catalog service: %v", err)
	}
	return service
}

type stubProductRepository struct {
	listFunc       func(ctx context.Context, filter repositories.ProductListFilter) (domain.ProductPage, error)
	findByIDFunc   func(ctx context.Context, productID string) (domain.Product, error)
	findBySlugFunc func(ctx context.Context, slug string) (domain.Product, error)
	findByIDsFunc  func(ctx context.Context, productIDs []string) ([]domain.Product, error)
}

func (s *stubProductRepository) List(ctx context.Context, filter repositories.ProductListFilter) (domain.ProductPage, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx, filter)
	}
	return domain.ProductPage{}, nil
}

func (s *stubProductRepository) FindByID(ctx context.Context, productID string) (domain.Product, error) {
	if s.findByIDFunc != nil {
		return s.findByIDFunc(ctx, productID)
	}
	return domain.Product{}, &repositoryErrorStub{notFound: true}
}

func (s *stubProductRepository) FindBySlug(ctx context.Context, slug string) (domain.Product, error) {
	if s.findBySlugFunc != nil {
		return s.findBySlugFunc(ctx, slug)
	}
	return domain.Product{}, &repositoryErrorStub{notFound: true}
}

func (s *stubProductRepository) FindByIDs(ctx context.Context, productIDs []string) ([]domain.Product, error) {
	if s.findByIDsFunc != nil {
		return s.findByIDsFunc(ctx, productIDs)
	}
	return nil, nil
}
