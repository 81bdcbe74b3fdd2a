package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	domain "github.com/peakform/storefront-api/internal/domain"
	"github.com/peakform/storefront-api/internal/services"
)

func TestListProductsReturnsPage(t *testing.T) {
	catalog := &stubCatalogService{
		listFunc: func(ctx context.Context, query services.ListProductsQuery) (services.ProductPage, error) {
			return services.ProductPage{
				Products: []services.Product{testProduct("prod-1", 2900), testProduct("prod-2", 4900)},
				Total:    17,
				Page:     2,
				PageSize: 12,
			}, nil
		},
	}
	handler := NewProductHandlers(WithProductCatalogService(catalog))
	router := mountRoutes("/products", handler.Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?page=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=300" {
		t.Fatalf("expected catalog cache header, got %q", got)
	}
	payload := decodeResponse(t, rec)
	if payload["total"].(float64) != 17 {
		t.Fatalf("expected total 17, got %v", payload["total"])
	}
	if payload["page"].(float64) != 2 || payload["pageSize"].(float64) != 12 {
		t.Fatalf("expected page 2 size 12, got %v/%v", payload["page"], payload["pageSize"])
	}
	products := payload["products"].([]any)
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	first := products[0].(map[string]any)
	if first["slug"] != "prod-1-slug" {
		t.Fatalf("unexpected first product %v", first)
	}
}

func TestListProductsPassesCategoryFilter(t *testing.T) {
	var captured services.ListProductsQuery
	catalog := &stubCatalogService{
		listFunc: func(ctx context.Context, query services.ListProductsQuery) (services.ProductPage, error) {
			captured = query
			return services.ProductPage{Page: 1, PageSize: 12}, nil
		},
	}
	handler := NewProductHandlers(WithProductCatalogService(catalog))
	router := mountRoutes("/products", handler.Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?category=nootropics&pageSize=6", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Category == nil || *captured.Category != domain.CategoryNootropics {
		t.Fatalf("expected nootropics category filter, got %v", captured.Category)
	}
	if captured.Pagination.PageSize != 6 {
		t.Fatalf("expected page size 6, got %d", captured.Pagination.PageSize)
	}
}

func TestListProductsPassesSaleAndSort(t *testing.T) {
	var captured services.ListProductsQuery
	catalog := &stubCatalogService{
		listFunc: func(ctx context.Context, query services.ListProductsQuery) (services.ProductPage, error) {
			captured = query
			return services.ProductPage{Page: 1, PageSize: 12}, nil
		},
	}
	handler := NewProductHandlers(WithProductCatalogService(catalog))
	router := mountRoutes("/products", handler.Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?onSale=true&sort=asc", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !captured.OnSale {
		t.Fatalf("expected on-sale filter forwarded")
	}
	if captured.Sort != domain.SortAsc {
		t.Fatalf("expected sort asc, got %q", captured.Sort)
	}
}

func TestListProductsRejectsUnknownSort(t *testing.T) {
	handler := NewProductHandlers(WithProductCatalogService(&stubCatalogService{}))
	router := mountRoutes("/products", handler.Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?sort=cheapest", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "invalid_request" {
		t.Fatalf("expected invalid_request, got %q", code)
	}
}

func TestListProductsRejectsNonNumericPage(t *testing.T) {
	handler := NewProductHandlers(WithProductCatalogService(&stubCatalogService{}))
	router := mountRoutes("/products", handler.Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?page=abc", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "invalid_request" {
		t.Fatalf("expected invalid_request, got %q", code)
	}
}

func TestListProductsUnavailableWithoutService(t *testing.T) {
	handler := NewProductHandlers()
	router := mountRoutes("/products", handler.Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestGetProductComputesSaleFields(t *testing.T) {
	product := testProduct("prod-1", 2900)
	product.CompareAtPrice = 3900
	catalog := &stubCatalogService{
		bySlugFunc: func(ctx context.Context, slug string) (services.Product, error) {
			if slug != "prod-1-slug" {
				t.Fatalf("unexpected slug %q", slug)
			}
			return product, nil
		},
	}
	handler := NewProductHandlers(WithProductCatalogService(catalog))
	router := mountRoutes("/products", handler.Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/prod-1-slug", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	payload := decodeResponse(t, rec)
	if payload["onSale"] != true {
		t.Fatalf("expected onSale true, got %v", payload["onSale"])
	}
	if payload["discountPercent"].(float64) != float64(product.DiscountPercent()) {
		t.Fatalf("unexpected discountPercent %v", payload["discountPercent"])
	}
}

func TestGetProductNotFound(t *testing.T) {
	catalog := &stubCatalogService{
		bySlugFunc: func(ctx context.Context, slug string) (services.Product, error) {
			return services.Product{}, fmt.Errorf("%w: no product with slug %q", services.ErrCatalogNotFound, slug)
		},
	}
	handler := NewProductHandlers(WithProductCatalogService(catalog))
	router := mountRoutes("/products", handler.Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "product_not_found" {
		t.Fatalf("expected product_not_found, got %q", code)
	}
}

func TestListFeaturedPassesLimit(t *testing.T) {
	var capturedLimit int
	catalog := &stubCatalogService{
		featuredFunc: func(ctx context.Context, limit int) ([]services.Product, error) {
			capturedLimit = limit
			return []services.Product{testProduct("prod-1", 2900)}, nil
		},
	}
	handler := NewProductHandlers(WithProductCatalogService(catalog))
	router := mountRoutes("/products", handler.Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/featured?limit=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if capturedLimit != 2 {
		t.Fatalf("expected limit 2, got %d", capturedLimit)
	}
}

func TestListRelatedDefaultsToBoughtTogether(t *testing.T) {
	subject := testProduct("prod-1", 2900)
	var capturedID string
	var capturedMax int
	catalog := &stubCatalogService{
		bySlugFunc: func(ctx context.Context, slug string) (services.Product, error) {
			return subject, nil
		},
	}
	recommendations := &stubRecommendationService{
		boughtTogetherFunc: func(ctx context.Context, productID string, max int) ([]services.Product, error) {
			capturedID = productID
			capturedMax = max
			return []services.Product{testProduct("prod-2", 1900)}, nil
		},
	}
	handler := NewProductHandlers(
		WithProductCatalogService(catalog),
		WithProductRecommendationService(recommendations),
	)
	router := mountRoutes("/products", handler.Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/prod-1-slug/related", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if capturedID != "prod-1" {
		t.Fatalf("expected lookup by prod-1, got %q", capturedID)
	}
	if capturedMax != 2 {
		t.Fatalf("expected default max 2, got %d", capturedMax)
	}
	payload := decodeResponse(t, rec)
	if payload["kind"] != "bought-together" {
		t.Fatalf("expected kind bought-together, got %v", payload["kind"])
	}
}

func TestListRelatedSimilarClampsMax(t *testing.T) {
	var capturedMax int
	catalog := &stubCatalogService{
		bySlugFunc: func(ctx context.Context, slug string) (services.Product, error) {
			return testProduct("prod-1", 2900), nil
		},
	}
	recommendations := &stubRecommendationService{
		alsoLikeFunc: func(ctx context.Context, productID string, max int) ([]services.Product, error) {
			capturedMax = max
			return nil, nil
		},
	}
	handler := NewProductHandlers(
		WithProductCatalogService(catalog),
		WithProductRecommendationService(recommendations),
	)
	router := mountRoutes("/products", handler.Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/prod-1-slug/related?kind=similar&max=50", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if capturedMax != 12 {
		t.Fatalf("expected max clamped to 12, got %d", capturedMax)
	}
}

func TestListRelatedRejectsUnknownKind(t *testing.T) {
	handler := NewProductHandlers(
		WithProductCatalogService(&stubCatalogService{
			bySlugFunc: func(ctx context.Context, slug string) (services.Product, error) {
				return testProduct("prod-1", 2900), nil
			},
		}),
		WithProductRecommendationService(&stubRecommendationService{}),
	)
	router := mountRoutes("/products", handler.Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/prod-1-slug/related?kind=trending", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListCategoriesReturnsKnownSet(t *testing.T) {
	handler := NewProductHandlers()
	router := mountRoutes("/categories", handler.CategoryRoutes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	payload := decodeResponse(t, rec)
	categories := payload["categories"].([]any)
	if len(categories) != len(domain.KnownCategories) {
		t.Fatalf("expected %d categories, got %d", len(domain.KnownCategories), len(categories))
	}
	last := categories[len(categories)-1].(map[string]any)
	if last["slug"] != "blue-light-glasses" || last["name"] != "Blue Light Glasses" {
		t.Fatalf("unexpected category payload %v", last)
	}
}
