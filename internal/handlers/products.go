package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	domain "github.com/peakform/storefront-api/internal/domain"
	"github.com/peakform/storefront-api/internal/platform/httpx"
	"github.com/peakform/storefront-api/internal/services"
)

const (
	catalogCacheControl = "public, max-age=300"

	relatedKindBoughtTogether = "bought-together"
	relatedKindSimilar        = "similar"
	relatedKindComplementary  = "complementary"

	defaultBoughtTogetherMax = 2
	defaultSimilarMax        = 6
	defaultComplementaryMax  = 4
	maxRelatedProducts       = 12
)

// ProductHandlers exposes the public catalog and recommendation endpoints.
type ProductHandlers struct {
	catalog         services.CatalogService
	recommendations services.RecommendationService
}

// ProductOption customises construction of ProductHandlers.
type ProductOption func(*ProductHandlers)

// WithProductCatalogService injects the catalog service dependency.
func WithProductCatalogService(svc services.CatalogService) ProductOption {
	return func(h *ProductHandlers) {
		h.catalog = svc
	}
}

// WithProductRecommendationService injects the recommendation service dependency.
func WithProductRecommendationService(svc services.RecommendationService) ProductOption {
	return func(h *ProductHandlers) {
		h.recommendations = svc
	}
}

// NewProductHandlers constructs handlers for catalog endpoints.
func NewProductHandlers(opts ...ProductOption) *ProductHandlers {
	handler := &ProductHandlers{}
	for _, opt := range opts {
		if opt != nil {
			opt(handler)
		}
	}
	return handler
}

// Routes registers catalog endpoints against the provided router.
func (h *ProductHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listProducts)
	r.Get("/featured", h.listFeatured)
	r.Get("/{slug}", h.getProduct)
	r.Get("/{slug}/related", h.listRelated)
}

// CategoryRoutes registers the category listing endpoint.
func (h *ProductHandlers) CategoryRoutes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listCategories)
}

func (h *ProductHandlers) listProducts(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("catalog_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
		return
	}

	query, err := parseListProductsQuery(r)
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	page, err := h.catalog.ListProducts(r.Context(), query)
	if err != nil {
		writeCatalogError(r.Context(), w, err)
		return
	}

	w.Header().Set("Cache-Control", catalogCacheControl)
	writeJSON(w, http.StatusOK, productListResponse{
		Products: buildProductPayloads(page.Products),
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
	})
}

func (h *ProductHandlers) listFeatured(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("catalog_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
		return
	}

	limit, err := parseOptionalInt(r.URL.Query().Get("limit"))
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", "limit must be a positive integer", http.StatusBadRequest))
		return
	}

	products, err := h.catalog.GetFeaturedProducts(r.Context(), limit)
	if err != nil {
		writeCatalogError(r.Context(), w, err)
		return
	}

	w.Header().Set("Cache-Control", catalogCacheControl)
	writeJSON(w, http.StatusOK, productsResponse{Products: buildProductPayloads(products)})
}

func (h *ProductHandlers) getProduct(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("catalog_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
		return
	}

	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_slug", "product slug is required", http.StatusBadRequest))
		return
	}

	product, err := h.catalog.GetProductBySlug(r.Context(), slug)
	if err != nil {
		writeCatalogError(r.Context(), w, err)
		return
	}

	w.Header().Set("Cache-Control", catalogCacheControl)
	writeJSON(w, http.StatusOK, buildProductPayload(product))
}

func (h *ProductHandlers) listRelated(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil || h.recommendations == nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("catalog_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
		return
	}

	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_slug", "product slug is required", http.StatusBadRequest))
		return
	}

	kind := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("kind")))
	if kind == "" {
		kind = relatedKindBoughtTogether
	}
	max, err := parseOptionalInt(r.URL.Query().Get("max"))
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", "max must be a positive integer", http.StatusBadRequest))
		return
	}

	product, err := h.catalog.GetProductBySlug(r.Context(), slug)
	if err != nil {
		writeCatalogError(r.Context(), w, err)
		return
	}

	var related []services.Product
	switch kind {
	case relatedKindBoughtTogether:
		related, err = h.recommendations.FrequentlyBoughtTogether(r.Context(), product.ID, clampRelatedMax(max, defaultBoughtTogetherMax))
	case relatedKindSimilar:
		related, err = h.recommendations.YouMayAlsoLike(r.Context(), product.ID, clampRelatedMax(max, defaultSimilarMax))
	case relatedKindComplementary:
		related, err = h.recommendations.ComplementaryProducts(r.Context(), product.ID, clampRelatedMax(max, defaultComplementaryMax))
	default:
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", fmt.Sprintf("unknown related kind %q", kind), http.StatusBadRequest))
		return
	}
	if err != nil {
		writeRecommendationError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, relatedProductsResponse{
		Kind:     kind,
		Products: buildProductPayloads(related),
	})
}

func (h *ProductHandlers) listCategories(w http.ResponseWriter, r *http.Request) {
	categories := make([]categoryPayload, 0, len(domain.KnownCategories))
	for _, category := range domain.KnownCategories {
		categories = append(categories, categoryPayload{
			Slug: string(category),
			Name: categoryDisplayName(category),
		})
	}

	w.Header().Set("Cache-Control", catalogCacheControl)
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: categories})
}

func parseListProductsQuery(r *http.Request) (services.ListProductsQuery, error) {
	var query services.ListProductsQuery

	values := r.URL.Query()
	if raw := strings.TrimSpace(values.Get("category")); raw != "" {
		category := services.ProductCategory(raw)
		query.Category = &category
	}
	if raw := strings.TrimSpace(values.Get("onSale")); raw != "" {
		onSale, err := strconv.ParseBool(raw)
		if err != nil {
			return query, errors.New("onSale must be a boolean")
		}
		query.OnSale = onSale
	}
	switch raw := strings.TrimSpace(values.Get("sort")); raw {
	case "":
	case "asc", "desc":
		query.Sort = services.SortOrder(raw)
	default:
		return query, errors.New("sort must be asc or desc")
	}

	page, err := parseOptionalInt(values.Get("page"))
	if err != nil {
		return query, errors.New("page must be a positive integer")
	}
	pageSize, err := parseOptionalInt(values.Get("pageSize"))
	if err != nil {
		return query, errors.New("pageSize must be a positive integer")
	}
	query.Pagination = services.Pagination{Page: page, PageSize: pageSize}
	return query, nil
}

// parseOptionalInt returns 0 for an absent value and an error for anything
// that is not a positive integer.
func parseOptionalInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, errors.New("value must be a positive integer")
	}
	return value, nil
}

func clampRelatedMax(max, fallback int) int {
	if max < 1 {
		return fallback
	}
	if max > maxRelatedProducts {
		return maxRelatedProducts
	}
	return max
}

func categoryDisplayName(category domain.ProductCategory) string {
	parts := strings.Split(string(category), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func writeCatalogError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCatalogInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrCatalogNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "product not found", http.StatusNotFound))
	case errors.Is(err, services.ErrCatalogUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("catalog_error", "failed to query catalog", http.StatusInternalServerError))
	}
}

func writeRecommendationError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrRecommendationInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrRecommendationNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "product not found", http.StatusNotFound))
	case errors.Is(err, services.ErrRecommendationUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("recommendations_unavailable", "recommendation service is unavailable", http.StatusServiceUnavailable))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("recommendation_error", "failed to compute recommendations", http.StatusInternalServerError))
	}
}

type productListResponse struct {
	Products []productPayload `json:"products"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

type productsResponse struct {
	Products []productPayload `json:"products"`
}

type relatedProductsResponse struct {
	Kind     string           `json:"kind"`
	Products []productPayload `json:"products"`
}

type categoriesResponse struct {
	Categories []categoryPayload `json:"categories"`
}

type categoryPayload struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}
