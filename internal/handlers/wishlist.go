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

// WishlistHandlers exposes the session shopper's wishlist endpoints.
type WishlistHandlers struct {
	wishlists services.WishlistService
}

// NewWishlistHandlers constructs handlers for wishlist endpoints.
func NewWishlistHandlers(wishlists services.WishlistService) *WishlistHandlers {
	return &WishlistHandlers{wishlists: wishlists}
}

// Routes wires the /wishlist endpoints onto the provided router.
func (h *WishlistHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.getWishlist)
	r.Delete("/", h.clearWishlist)
	r.Put("/items/{productID}", h.addItem)
	r.Delete("/items/{productID}", h.removeItem)
	r.Post("/items/{productID}/toggle", h.toggleItem)
}

func (h *WishlistHandlers) getWishlist(w http.ResponseWriter, r *http.Request) {
	shopperID, ok := h.requireWishlist(w, r)
	if !ok {
		return
	}

	wishlist, err := h.wishlists.GetWishlist(r.Context(), shopperID)
	if err != nil {
		writeWishlistError(r.Context(), w, err)
		return
	}
	writeWishlist(w, wishlist)
}

func (h *WishlistHandlers) clearWishlist(w http.ResponseWriter, r *http.Request) {
	shopperID, ok := h.requireWishlist(w, r)
	if !ok {
		return
	}

	wishlist, err := h.wishlists.ClearWishlist(r.Context(), shopperID)
	if err != nil {
		writeWishlistError(r.Context(), w, err)
		return
	}
	writeWishlist(w, wishlist)
}

func (h *WishlistHandlers) addItem(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, func(ctx context.Context, shopperID, productID string) (services.Wishlist, error) {
		return h.wishlists.AddItem(ctx, shopperID, productID)
	})
}

func (h *WishlistHandlers) removeItem(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, func(ctx context.Context, shopperID, productID string) (services.Wishlist, error) {
		return h.wishlists.RemoveItem(ctx, shopperID, productID)
	})
}

func (h *WishlistHandlers) toggleItem(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, func(ctx context.Context, shopperID, productID string) (services.Wishlist, error) {
		return h.wishlists.ToggleItem(ctx, shopperID, productID)
	})
}

func (h *WishlistHandlers) mutateItem(w http.ResponseWriter, r *http.Request, op func(context.Context, string, string) (services.Wishlist, error)) {
	shopperID, ok := h.requireWishlist(w, r)
	if !ok {
		return
	}

	productID := strings.TrimSpace(chi.URLParam(r, "productID"))
	if productID == "" {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", "product id is required", http.StatusBadRequest))
		return
	}

	wishlist, err := op(r.Context(), shopperID, productID)
	if err != nil {
		writeWishlistError(r.Context(), w, err)
		return
	}
	writeWishlist(w, wishlist)
}

func (h *WishlistHandlers) requireWishlist(w http.ResponseWriter, r *http.Request) (string, bool) {
	if h == nil || h.wishlists == nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("wishlist_unavailable", "wishlist service is unavailable", http.StatusServiceUnavailable))
		return "", false
	}
	return requireShopper(w, r)
}

func writeWishlist(w http.ResponseWriter, wishlist services.Wishlist) {
	w.Header().Set("Cache-Control", "no-store, no-cache, max-age=0, must-revalidate")
	writeJSON(w, http.StatusOK, wishlistResponse{Wishlist: buildWishlistPayload(wishlist)})
}

func writeWishlistError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrWishlistInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrWishlistNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "product not found", http.StatusNotFound))
	case errors.Is(err, services.ErrWishlistUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("wishlist_unavailable", "wishlist service is unavailable", http.StatusServiceUnavailable))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("wishlist_error", "failed to update wishlist", http.StatusInternalServerError))
	}
}

type wishlistResponse struct {
	Wishlist wishlistPayload `json:"wishlist"`
}
