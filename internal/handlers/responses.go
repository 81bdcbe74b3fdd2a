package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	domain "github.com/peakform/storefront-api/internal/domain"
	"github.com/peakform/storefront-api/internal/platform/auth"
	"github.com/peakform/storefront-api/internal/platform/httpx"
	"github.com/peakform/storefront-api/internal/services"
)

const maxStoreBodySize = 16 * 1024

var (
	errEmptyBody    = errors.New("request body is required")
	errBodyTooLarge = errors.New("request body too large")
)

type productPayload struct {
	ID               string   `json:"id"`
	Slug             string   `json:"slug"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	ShortDescription string   `json:"shortDescription,omitempty"`
	Price            int64    `json:"price"`
	CompareAtPrice   int64    `json:"compareAtPrice,omitempty"`
	OnSale           bool     `json:"onSale"`
	DiscountPercent  int      `json:"discountPercent,omitempty"`
	Category         string   `json:"category"`
	Images           []string `json:"images"`
	Features         []string `json:"features,omitempty"`
	Benefits         []string `json:"benefits,omitempty"`
	Ingredients      []string `json:"ingredients,omitempty"`
	InStock          bool     `json:"inStock"`
	Rating           float64  `json:"rating"`
	ReviewCount      int      `json:"reviewCount"`
	SKU              string   `json:"sku,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	Featured         bool     `json:"featured"`
	CreatedAt        string   `json:"createdAt,omitempty"`
	UpdatedAt        string   `json:"updatedAt,omitempty"`
}

func buildProductPayload(product services.Product) productPayload {
	return productPayload{
		ID:               product.ID,
		Slug:             product.Slug,
		Name:             product.Name,
		Description:      product.Description,
		ShortDescription: product.ShortDescription,
		Price:            product.Price,
		CompareAtPrice:   product.CompareAtPrice,
		OnSale:           product.OnSale(),
		DiscountPercent:  product.DiscountPercent(),
		Category:         string(product.Category),
		Images:           copyStringSlice(product.Images),
		Features:         copyStringSlice(product.Features),
		Benefits:         copyStringSlice(product.Benefits),
		Ingredients:      copyStringSlice(product.Ingredients),
		InStock:          product.InStock,
		Rating:           product.Rating,
		ReviewCount:      product.ReviewCount,
		SKU:              product.SKU,
		Tags:             copyStringSlice(product.Tags),
		Featured:         product.Featured,
		CreatedAt:        formatTimestamp(product.CreatedAt),
		UpdatedAt:        formatTimestamp(product.UpdatedAt),
	}
}

func buildProductPayloads(products []services.Product) []productPayload {
	payloads := make([]productPayload, 0, len(products))
	for _, product := range products {
		payloads = append(payloads, buildProductPayload(product))
	}
	return payloads
}

type cartLinePayload struct {
	Product      productPayload `json:"product"`
	Quantity     int            `json:"quantity"`
	LineSubtotal int64          `json:"lineSubtotal"`
	AddedAt      string         `json:"addedAt,omitempty"`
}

type cartTotalsPayload struct {
	ItemCount int   `json:"itemCount"`
	Subtotal  int64 `json:"subtotal"`
	Tax       int64 `json:"tax"`
	Shipping  int64 `json:"shipping"`
	Total     int64 `json:"total"`
}

type cartPayload struct {
	ShopperID string            `json:"shopperId"`
	Lines     []cartLinePayload `json:"lines"`
	Open      bool              `json:"open"`
	Totals    cartTotalsPayload `json:"totals"`
	UpdatedAt string            `json:"updatedAt,omitempty"`
}

func buildCartPayload(cart services.Cart) cartPayload {
	lines := make([]cartLinePayload, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, cartLinePayload{
			Product:      buildProductPayload(line.Product),
			Quantity:     line.Quantity,
			LineSubtotal: line.LineSubtotal(),
			AddedAt:      formatTimestamp(line.AddedAt),
		})
	}
	totals := cart.Totals()
	return cartPayload{
		ShopperID: cart.ShopperID,
		Lines:     lines,
		Open:      cart.Open,
		Totals: cartTotalsPayload{
			ItemCount: totals.ItemCount,
			Subtotal:  totals.Subtotal,
			Tax:       totals.Tax,
			Shipping:  totals.Shipping,
			Total:     totals.Total,
		},
		UpdatedAt: formatTimestamp(cart.UpdatedAt),
	}
}

type wishlistItemPayload struct {
	ProductID string `json:"productId"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image,omitempty"`
	InStock   bool   `json:"inStock"`
	AddedAt   string `json:"addedAt,omitempty"`
}

type wishlistPayload struct {
	ShopperID string                `json:"shopperId"`
	Items     []wishlistItemPayload `json:"items"`
	UpdatedAt string                `json:"updatedAt,omitempty"`
}

func buildWishlistPayload(wishlist services.Wishlist) wishlistPayload {
	items := make([]wishlistItemPayload, 0, len(wishlist.Items))
	for _, item := range wishlist.Items {
		items = append(items, wishlistItemPayload{
			ProductID: item.ProductID,
			Slug:      item.Slug,
			Name:      item.Name,
			Price:     item.Price,
			Image:     item.Image,
			InStock:   item.InStock,
			AddedAt:   formatTimestamp(item.AddedAt),
		})
	}
	return wishlistPayload{
		ShopperID: wishlist.ShopperID,
		Items:     items,
		UpdatedAt: formatTimestamp(wishlist.UpdatedAt),
	}
}

type comparisonItemPayload struct {
	ProductID   string   `json:"productId"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Image       string   `json:"image,omitempty"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
	Benefits    []string `json:"benefits,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	InStock     bool     `json:"inStock"`
	Rating      float64  `json:"rating"`
	AddedAt     string   `json:"addedAt,omitempty"`
}

type comparisonPayload struct {
	ShopperID string                  `json:"shopperId"`
	Items     []comparisonItemPayload `json:"items"`
	Open      bool                    `json:"open"`
	Capacity  int                     `json:"capacity"`
	UpdatedAt string                  `json:"updatedAt,omitempty"`
}

func buildComparisonPayload(comparison services.Comparison) comparisonPayload {
	items := make([]comparisonItemPayload, 0, len(comparison.Items))
	for _, item := range comparison.Items {
		items = append(items, comparisonItemPayload{
			ProductID:   item.ProductID,
			Slug:        item.Slug,
			Name:        item.Name,
			Price:       item.Price,
			Image:       item.Image,
			Category:    string(item.Category),
			Description: item.Description,
			Features:    copyStringSlice(item.Features),
			Benefits:    copyStringSlice(item.Benefits),
			Ingredients: copyStringSlice(item.Ingredients),
			InStock:     item.InStock,
			Rating:      item.Rating,
			AddedAt:     formatTimestamp(item.AddedAt),
		})
	}
	return comparisonPayload{
		ShopperID: comparison.ShopperID,
		Items:     items,
		Open:      comparison.Open,
		Capacity:  domain.ComparisonCapacity,
		UpdatedAt: formatTimestamp(comparison.UpdatedAt),
	}
}

// requireShopper extracts the session shopper ID or writes a 401 and reports false.
func requireShopper(w http.ResponseWriter, r *http.Request) (string, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok || strings.TrimSpace(identity.ShopperID) == "" {
		httpx.WriteError(r.Context(), w, httpx.NewError("session_required", "a shopper session is required", http.StatusUnauthorized))
		return "", false
	}
	return identity.ShopperID, true
}

func readLimitedBody(r *http.Request, limit int64) ([]byte, error) {
	if r == nil || r.Body == nil {
		return nil, errEmptyBody
	}
	if limit <= 0 {
		limit = maxStoreBodySize
	}
	reader := io.LimitReader(r.Body, limit+1)
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errEmptyBody
	}
	if int64(len(data)) > limit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

func decodeBody(r *http.Request, dest any) error {
	data, err := readLimitedBody(r, maxStoreBodySize)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return errors.New("invalid JSON payload")
	}
	return nil
}

func writeBodyError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errBodyTooLarge):
		httpx.WriteError(r.Context(), w, httpx.NewError("payload_too_large", "request body exceeds allowed size", http.StatusRequestEntityTooLarge))
	default:
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}

func copyStringSlice(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
