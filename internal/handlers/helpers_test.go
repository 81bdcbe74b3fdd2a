package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	domain "github.com/peakform/storefront-api/internal/domain"
	"github.com/peakform/storefront-api/internal/platform/auth"
	"github.com/peakform/storefront-api/internal/services"
)

type stubCatalogService struct {
	listFunc     func(ctx context.Context, query services.ListProductsQuery) (services.ProductPage, error)
	bySlugFunc   func(ctx context.Context, slug string) (services.Product, error)
	byIDFunc     func(ctx context.Context, productID string) (services.Product, error)
	featuredFunc func(ctx context.Context, limit int) ([]services.Product, error)
}

func (s *stubCatalogService) ListProducts(ctx context.Context, query services.ListProductsQuery) (services.ProductPage, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx, query)
	}
	return services.ProductPage{}, nil
}

func (s *stubCatalogService) GetProductBySlug(ctx context.Context, slug string) (services.Product, error) {
	if s.bySlugFunc != nil {
		return s.bySlugFunc(ctx, slug)
	}
	return services.Product{}, services.ErrCatalogNotFound
}

func (s *stubCatalogService) GetProductByID(ctx context.Context, productID string) (services.Product, error) {
	if s.byIDFunc != nil {
		return s.byIDFunc(ctx, productID)
	}
	return services.Product{}, services.ErrCatalogNotFound
}

func (s *stubCatalogService) GetFeaturedProducts(ctx context.Context, limit int) ([]services.Product, error) {
	if s.featuredFunc != nil {
		return s.featuredFunc(ctx, limit)
	}
	return nil, nil
}

type stubCartService struct {
	getFunc     func(ctx context.Context, shopperID string) (services.Cart, error)
	addFunc     func(ctx context.Context, cmd services.AddCartItemCommand) (services.Cart, error)
	updateFunc  func(ctx context.Context, cmd services.UpdateCartQuantityCommand) (services.Cart, error)
	removeFunc  func(ctx context.Context, cmd services.RemoveCartItemCommand) (services.Cart, error)
	clearFunc   func(ctx context.Context, shopperID string) (services.Cart, error)
	setOpenFunc func(ctx context.Context, shopperID string, open bool) (services.Cart, error)
}

func (s *stubCartService) GetCart(ctx context.Context, shopperID string) (services.Cart, error) {
	if s.getFunc != nil {
		return s.getFunc(ctx, shopperID)
	}
	return services.Cart{ShopperID: shopperID}, nil
}

func (s *stubCartService) AddItem(ctx context.Context, cmd services.AddCartItemCommand) (services.Cart, error) {
	if s.addFunc != nil {
		return s.addFunc(ctx, cmd)
	}
	return services.Cart{ShopperID: cmd.ShopperID}, nil
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, cmd services.UpdateCartQuantityCommand) (services.Cart, error) {
	if s.updateFunc != nil {
		return s.updateFunc(ctx, cmd)
	}
	return services.Cart{ShopperID: cmd.ShopperID}, nil
}

func (s *stubCartService) RemoveItem(ctx context.Context, cmd services.RemoveCartItemCommand) (services.Cart, error) {
	if s.removeFunc != nil {
		return s.removeFunc(ctx, cmd)
	}
	return services.Cart{ShopperID: cmd.ShopperID}, nil
}

func (s *stubCartService) ClearCart(ctx context.Context, shopperID string) (services.Cart, error) {
	if s.clearFunc != nil {
		return s.clearFunc(ctx, shopperID)
	}
	return services.Cart{ShopperID: shopperID}, nil
}

func (s *stubCartService) SetOpen(ctx context.Context, shopperID string, open bool) (services.Cart, error) {
	if s.setOpenFunc != nil {
		return s.setOpenFunc(ctx, shopperID, open)
	}
	return services.Cart{ShopperID: shopperID, Open: open}, nil
}

type stubWishlistService struct {
	getFunc    func(ctx context.Context, shopperID string) (services.Wishlist, error)
	addFunc    func(ctx context.Context, shopperID, productID string) (services.Wishlist, error)
	removeFunc func(ctx context.Context, shopperID, productID string) (services.Wishlist, error)
	toggleFunc func(ctx context.Context, shopperID, productID string) (services.Wishlist, error)
	clearFunc  func(ctx context.Context, shopperID string) (services.Wishlist, error)
}

func (s *stubWishlistService) GetWishlist(ctx context.Context, shopperID string) (services.Wishlist, error) {
	if s.getFunc != nil {
		return s.getFunc(ctx, shopperID)
	}
	return services.Wishlist{ShopperID: shopperID}, nil
}

func (s *stubWishlistService) AddItem(ctx context.Context, shopperID, productID string) (services.Wishlist, error) {
	if s.addFunc != nil {
		return s.addFunc(ctx, shopperID, productID)
	}
	return services.Wishlist{ShopperID: shopperID}, nil
}

func (s *stubWishlistService) RemoveItem(ctx context.Context, shopperID, productID string) (services.Wishlist, error) {
	if s.removeFunc != nil {
		return s.removeFunc(ctx, shopperID, productID)
	}
	return services.Wishlist{ShopperID: shopperID}, nil
}

func (s *stubWishlistService) ToggleItem(ctx context.Context, shopperID, productID string) (services.Wishlist, error) {
	if s.toggleFunc != nil {
		return s.toggleFunc(ctx, shopperID, productID)
	}
	return services.Wishlist{ShopperID: shopperID}, nil
}

func (s *stubWishlistService) ClearWishlist(ctx context.Context, shopperID string) (services.Wishlist, error) {
	if s.clearFunc != nil {
		return s.clearFunc(ctx, shopperID)
	}
	return services.Wishlist{ShopperID: shopperID}, nil
}

type stubComparisonService struct {
	getFunc     func(ctx context.Context, shopperID string) (services.Comparison, error)
	addFunc     func(ctx context.Context, shopperID, productID string) (services.Comparison, error)
	removeFunc  func(ctx context.Context, shopperID, productID string) (services.Comparison, error)
	toggleFunc  func(ctx context.Context, shopperID, productID string) (services.Comparison, error)
	clearFunc   func(ctx context.Context, shopperID string) (services.Comparison, error)
	setOpenFunc func(ctx context.Context, shopperID string, open bool) (services.Comparison, error)
}

func (s *stubComparisonService) GetComparison(ctx context.Context, shopperID string) (services.Comparison, error) {
	if s.getFunc != nil {
		return s.getFunc(ctx, shopperID)
	}
	return services.Comparison{ShopperID: shopperID}, nil
}

func (s *stubComparisonService) AddItem(ctx context.Context, shopperID, productID string) (services.Comparison, error) {
	if s.addFunc != nil {
		return s.addFunc(ctx, shopperID, productID)
	}
	return services.Comparison{ShopperID: shopperID}, nil
}

func (s *stubComparisonService) RemoveItem(ctx context.Context, shopperID, productID string) (services.Comparison, error) {
	if s.removeFunc != nil {
		return s.removeFunc(ctx, shopperID, productID)
	}
	return services.Comparison{ShopperID: shopperID}, nil
}

func (s *stubComparisonService) ToggleItem(ctx context.Context, shopperID, productID string) (services.Comparison, error) {
	if s.toggleFunc != nil {
		return s.toggleFunc(ctx, shopperID, productID)
	}
	return services.Comparison{ShopperID: shopperID}, nil
}

func (s *stubComparisonService) ClearComparison(ctx context.Context, shopperID string) (services.Comparison, error) {
	if s.clearFunc != nil {
		return s.clearFunc(ctx, shopperID)
	}
	return services.Comparison{ShopperID: shopperID}, nil
}

func (s *stubComparisonService) SetOpen(ctx context.Context, shopperID string, open bool) (services.Comparison, error) {
	if s.setOpenFunc != nil {
		return s.setOpenFunc(ctx, shopperID, open)
	}
	return services.Comparison{ShopperID: shopperID, Open: open}, nil
}

type stubRecommendationService struct {
	boughtTogetherFunc func(ctx context.Context, productID string, max int) ([]services.Product, error)
	alsoLikeFunc       func(ctx context.Context, productID string, max int) ([]services.Product, error)
	complementaryFunc  func(ctx context.Context, productID string, max int) ([]services.Product, error)
	cartFunc           func(ctx context.Context, shopperID string, max int) ([]services.Product, error)
	bundleFunc         func(ctx context.Context, shopperID string) (services.BundleTier, error)
}

func (s *stubRecommendationService) FrequentlyBoughtTogether(ctx context.Context, productID string, max int) ([]services.Product, error) {
	if s.boughtTogetherFunc != nil {
		return s.boughtTogetherFunc(ctx, productID, max)
	}
	return nil, nil
}

func (s *stubRecommendationService) YouMayAlsoLike(ctx context.Context, productID string, max int) ([]services.Product, error) {
	if s.alsoLikeFunc != nil {
		return s.alsoLikeFunc(ctx, productID, max)
	}
	return nil, nil
}

func (s *stubRecommendationService) ComplementaryProducts(ctx context.Context, productID string, max int) ([]services.Product, error) {
	if s.complementaryFunc != nil {
		return s.complementaryFunc(ctx, productID, max)
	}
	return nil, nil
}

func (s *stubRecommendationService) CartRecommendations(ctx context.Context, shopperID string, max int) ([]services.Product, error) {
	if s.cartFunc != nil {
		return s.cartFunc(ctx, shopperID, max)
	}
	return nil, nil
}

func (s *stubRecommendationService) BundleDiscount(ctx context.Context, shopperID string) (services.BundleTier, error) {
	if s.bundleFunc != nil {
		return s.bundleFunc(ctx, shopperID)
	}
	return services.BundleTier{}, nil
}

type stubSystemService struct {
	healthFunc func(ctx context.Context) (services.HealthReport, error)
}

func (s *stubSystemService) Health(ctx context.Context) (services.HealthReport, error) {
	if s.healthFunc != nil {
		return s.healthFunc(ctx)
	}
	return services.HealthReport{Status: domain.HealthStatusOK}, nil
}

func testProduct(id string, price int64) services.Product {
	return services.Product{
		ID:             id,
		Slug:           id + "-slug",
		Name:           "Product " + id,
		Price:          price,
		CompareAtPrice: 0,
		Category:       domain.CategorySupplements,
		Images:         []string{"https://cdn.example.com/" + id + ".jpg"},
		InStock:        true,
		Inventory:      25,
		Rating:         4.5,
		ReviewCount:    12,
		CreatedAt:      time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
	}
}

// mountRoutes wires a registrar under prefix the same way the production
// router does, so URL parameters resolve through chi.
func mountRoutes(prefix string, registrar RouteRegistrar) chi.Router {
	r := chi.NewRouter()
	r.Route(prefix, func(group chi.Router) {
		registrar(group)
	})
	return r
}

func withShopper(r *http.Request, shopperID string) *http.Request {
	identity := &auth.Identity{
		ShopperID: shopperID,
		IssuedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ExpiresAt: time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC),
	}
	return r.WithContext(auth.WithIdentity(r.Context(), identity))
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal request payload: %v", err)
		}
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response body %q: %v", rec.Body.String(), err)
	}
	return payload
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	payload := decodeResponse(t, rec)
	code, _ := payload["error"].(string)
	return code
}
