package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/peakform/storefront-api/internal/platform/httpx"
	"github.com/peakform/storefront-api/internal/services"
)

const defaultCartRecommendationMax = 4

// CartHandlers exposes the session shopper's cart endpoints.
type CartHandlers struct {
	carts           services.CartService
	recommendations services.RecommendationService
}

// CartOption customises construction of CartHandlers.
type CartOption func(*CartHandlers)

// WithCartService injects the cart service dependency.
func WithCartService(svc services.CartService) CartOption {
	return func(h *CartHandlers) {
		h.carts = svc
	}
}

// WithCartRecommendationService injects the recommendation service dependency.
func WithCartRecommendationService(svc services.RecommendationService) CartOption {
	return func(h *CartHandlers) {
		h.recommendations = svc
	}
}

// NewCartHandlers constructs handlers for cart endpoints.
func NewCartHandlers(opts ...CartOption) *CartHandlers {
	handler := &CartHandlers{}
	for _, opt := range opts {
		if opt != nil {
			opt(handler)
		}
	}
	return handler
}

// Routes wires the /cart endpoints onto the provided router.
func (h *CartHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.getCart)
	r.Patch("/", h.patchCart)
	r.Delete("/", h.clearCart)
	r.Post("/items", h.addItem)
	r.Patch("/items/{productID}", h.updateItem)
	r.Delete("/items/{productID}", h.removeItem)
	r.Get("/recommendations", h.listRecommendations)
	r.Get("/bundle", h.getBundleDiscount)
}

func (h *CartHandlers) getCart(w http.ResponseWriter, r *http.Request) {
	shopperID, ok := h.requireCart(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.GetCart(r.Context(), shopperID)
	if err != nil {
		writeCartError(r.Context(), w, err)
		return
	}
	writeCart(w, cart)
}

func (h *CartHandlers) patchCart(w http.ResponseWriter, r *http.Request) {
	shopperID, ok := h.requireCart(w, r)
	if !ok {
		return
	}

	var req struct {
		Open *bool `json:"open"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeBodyError(w, r, err)
		return
	}
	if req.Open == nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", "open is required", http.StatusBadRequest))
		return
	}

	cart, err := h.carts.SetOpen(r.Context(), shopperID, *req.Open)
	if err != nil {
		writeCartError(r.Context(), w, err)
		return
	}
	writeCart(w, cart)
}

func (h *CartHandlers) clearCart(w http.ResponseWriter, r *http.Request) {
	shopperID, ok := h.requireCart(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.ClearCart(r.Context(), shopperID)
	if err != nil {
		writeCartError(r.Context(), w, err)
		return
	}
	writeCart(w, cart)
}

func (h *CartHandlers) addItem(w http.ResponseWriter, r *http.Request) {
	shopperID, ok := h.requireCart(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeBodyError(w, r, err)
		return
	}
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", "productId is required", http.StatusBadRequest))
		return
	}

	cart, err := h.carts.AddItem(r.Context(), services.AddCartItemCommand{
		ShopperID: shopperID,
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeCartError(r.Context(), w, err)
		return
	}
	writeCartStatus(w, http.StatusCreated, cart)
}

func (h *CartHandlers) updateItem(w http.ResponseWriter, r *http.Request) {
	shopperID, ok := h.requireCart(w, r)
	if !ok {
		return
	}

	productID := strings.TrimSpace(chi.URLParam(r, "productID"))
	if productID == "" {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", "product id is required", http.StatusBadRequest))
		return
	}

	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeBodyError(w, r, err)
		return
	}
	if req.Quantity == nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", "quantity is required", http.StatusBadRequest))
		return
	}

	cart, err := h.carts.UpdateQuantity(r.Context(), services.UpdateCartQuantityCommand{
		ShopperID: shopperID,
		ProductID: productID,
		Quantity:  *req.Quantity,
	})
	if err != nil {
		writeCartError(r.Context(), w, err)
		return
	}
	writeCart(w, cart)
}

func (h *CartHandlers) removeItem(w http.ResponseWriter, r *http.Request) {
	shopperID, ok := h.requireCart(w, r)
	if !ok {
		return
	}

	productID := strings.TrimSpace(chi.URLParam(r, "productID"))
	if productID == "" {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", "product id is required", http.StatusBadRequest))
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), services.RemoveCartItemCommand{
		ShopperID: shopperID,
		ProductID: productID,
	})
	if err != nil {
		writeCartError(r.Context(), w, err)
		return
	}
	writeCart(w, cart)
}

func (h *CartHandlers) listRecommendations(w http.ResponseWriter, r *http.Request) {
	if h.recommendations == nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("recommendations_unavailable", "recommendation service is unavailable", http.StatusServiceUnavailable))
		return
	}
	shopperID, ok := requireShopper(w, r)
	if !ok {
		return
	}

	max, err := parseOptionalInt(r.URL.Query().Get("max"))
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", "max must be a positive integer", http.StatusBadRequest))
		return
	}

	products, err := h.recommendations.CartRecommendations(r.Context(), shopperID, clampRelatedMax(max, defaultCartRecommendationMax))
	if err != nil {
		writeRecommendationError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, productsResponse{Products: buildProductPayloads(products)})
}

func (h *CartHandlers) getBundleDiscount(w http.ResponseWriter, r *http.Request) {
	if h.recommendations == nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("recommendations_unavailable", "recommendation service is unavailable", http.StatusServiceUnavailable))
		return
	}
	shopperID, ok := requireShopper(w, r)
	if !ok {
		return
	}

	tier, err := h.recommendations.BundleDiscount(r.Context(), shopperID)
	if err != nil {
		writeRecommendationError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, bundleDiscountPayload{
		Eligible:   tier.Percentage > 0,
		Percentage: tier.Percentage,
		MinItems:   tier.MinItems,
	})
}

// requireCart resolves the shopper session and confirms the cart service is wired.
func (h *CartHandlers) requireCart(w http.ResponseWriter, r *http.Request) (string, bool) {
	if h.carts == nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("cart_unavailable", "cart service is unavailable", http.StatusServiceUnavailable))
		return "", false
	}
	return requireShopper(w, r)
}

func writeCart(w http.ResponseWriter, cart services.Cart) {
	writeCartStatus(w, http.StatusOK, cart)
}

func writeCartStatus(w http.ResponseWriter, status int, cart services.Cart) {
	w.Header().Set("Cache-Control", "no-store, no-cache, max-age=0, must-revalidate")
	writeJSON(w, status, cartResponse{Cart: buildCartPayload(cart)})
}

func writeCartError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCartInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrCartNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("cart_item_not_found", "cart item not found", http.StatusNotFound))
	case errors.Is(err, services.ErrCartConflict):
		httpx.WriteError(ctx, w, httpx.NewError("cart_conflict", "cart has been modified; refresh and retry", http.StatusConflict))
	case errors.Is(err, services.ErrCartUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("cart_unavailable", "cart service is unavailable", http.StatusServiceUnavailable))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("cart_error", "failed to update cart", http.StatusInternalServerError))
	}
}

type cartResponse struct {
	Cart cartPayload `json:"cart"`
}

type bundleDiscountPayload struct {
	Eligible   bool `json:"eligible"`
	Percentage int  `json:"percentage"`
	MinItems   int  `json:"minItems"`
}
