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

// ComparisonHandlers exposes the session shopper's compare-tray endpoints.
type ComparisonHandlers struct {
	comparisons services.ComparisonService
}

// NewComparisonHandlers constructs handlers for comparison endpoints.
func NewComparisonHandlers(comparisons services.ComparisonService) *ComparisonHandlers {
	return &ComparisonHandlers{comparisons: comparisons}
}

// Routes wires the /comparison endpoints onto the provided router.
func (h *ComparisonHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.getComparison)
	r.Patch("/", h.patchComparison)
	r.Delete("/", h.clearComparison)
	r.Put("/items/{productID}", h.addItem)
	r.Delete("/items/{productID}", h.removeItem)
	r.Post("/items/{productID}/toggle", h.toggleItem)
}

func (h *ComparisonHandlers) getComparison(w http.ResponseWriter, r *http.Request) {
	shopperID, ok := h.requireComparison(w, r)
	if !ok {
		return
	}

	comparison, err := h.comparisons.GetComparison(r.Context(), shopperID)
	if err != nil {
		writeComparisonError(r.Context(), w, err)
		return
	}
	writeComparison(w, comparison)
}

func (h *ComparisonHandlers) patchComparison(w http.ResponseWriter, r *http.Request) {
	shopperID, ok := h.requireComparison(w, r)
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

	comparison, err := h.comparisons.SetOpen(r.Context(), shopperID, *req.Open)
	if err != nil {
		writeComparisonError(r.Context(), w, err)
		return
	}
	writeComparison(w, comparison)
}

func (h *ComparisonHandlers) clearComparison(w http.ResponseWriter, r *http.Request) {
	shopperID, ok := h.requireComparison(w, r)
	if !ok {
		return
	}

	comparison, err := h.comparisons.ClearComparison(r.Context(), shopperID)
	if err != nil {
		writeComparisonError(r.Context(), w, err)
		return
	}
	writeComparison(w, comparison)
}

func (h *ComparisonHandlers) addItem(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, func(ctx context.Context, shopperID, productID string) (services.Comparison, error) {
		return h.comparisons.AddItem(ctx, shopperID, productID)
	})
}

func (h *ComparisonHandlers) removeItem(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, func(ctx context.Context, shopperID, productID string) (services.Comparison, error) {
		return h.comparisons.RemoveItem(ctx, shopperID, productID)
	})
}

func (h *ComparisonHandlers) toggleItem(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, func(ctx context.Context, shopperID, productID string) (services.Comparison, error) {
		return h.comparisons.ToggleItem(ctx, shopperID, productID)
	})
}

func (h *ComparisonHandlers) mutateItem(w http.ResponseWriter, r *http.Request, op func(context.Context, string, string) (services.Comparison, error)) {
	shopperID, ok := h.requireComparison(w, r)
	if !ok {
		return
	}

	productID := strings.TrimSpace(chi.URLParam(r, "productID"))
	if productID == "" {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", "product id is required", http.StatusBadRequest))
		return
	}

	comparison, err := op(r.Context(), shopperID, productID)
	if err != nil {
		writeComparisonError(r.Context(), w, err)
		return
	}
	writeComparison(w, comparison)
}

func (h *ComparisonHandlers) requireComparison(w http.ResponseWriter, r *http.Request) (string, bool) {
	if h == nil || h.comparisons == nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("comparison_unavailable", "comparison service is unavailable", http.StatusServiceUnavailable))
		return "", false
	}
	return requireShopper(w, r)
}

func writeComparison(w http.ResponseWriter, comparison services.Comparison) {
	w.Header().Set("Cache-Control", "no-store, no-cache, max-age=0, must-revalidate")
	writeJSON(w, http.StatusOK, comparisonResponse{Comparison: buildComparisonPayload(comparison)})
}

func writeComparisonError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrComparisonInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrComparisonNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "product not found", http.StatusNotFound))
	case errors.Is(err, services.ErrComparisonUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("comparison_unavailable", "comparison service is unavailable", http.StatusServiceUnavailable))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("comparison_error", "failed to update comparison", http.StatusInternalServerError))
	}
}

type comparisonResponse struct {
	Comparison comparisonPayload `json:"comparison"`
}
