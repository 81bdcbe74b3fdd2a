package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "github.com/peakform/storefront-api/internal/domain"
	pfirestore "github.com/peakform/storefront-api/internal/platform/firestore"
	"github.com/peakform/storefront-api/internal/repositories"
)

const cartsCollection = "carts"

// CartRepository persists one cart document per shopper. The shopper ID is
// the document identifier, so writes are whole-document last-write-wins.
type CartRepository struct {
	base *pfirestore.BaseRepository[cartDocument]
}

// NewCartRepository constructs a Firestore-backed cart repository.
func NewCartRepository(provider *pfirestore.Provider) (*CartRepository, error) {
	if provider == nil {
		return nil, errors.New("cart repository requires firestore provider")
	}
	base := pfirestore.NewBaseRepository[cartDocument](provider, cartsCollection, nil, nil)
	return &CartRepository{base: base}, nil
}

// Get loads the cart for the given shopper.
func (r *CartRepository) Get(ctx context.Context, shopperID string) (domain.Cart, error) {
	if r == nil || r.base == nil {
		return domain.Cart{}, errors.New("cart repository not initialised")
	}
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return domain.Cart{}, errors.New("cart repository: shopper id is required")
	}

	doc, err := r.base.Get(ctx, shopperID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart := domain.Cart{
		ShopperID: doc.ID,
		Open:      doc.Data.Open,
		Lines:     make([]domain.CartLine, 0, len(doc.Data.Lines)),
		CreatedAt: doc.Data.CreatedAt,
		UpdatedAt: doc.Data.UpdatedAt,
	}
	if cart.UpdatedAt.IsZero() {
		cart.UpdatedAt = doc.UpdateTime
	}
	for _, line := range doc.Data.Lines {
		cart.Lines = append(cart.Lines, domain.CartLine{
			Product:  line.Product.toDomain(line.ProductID),
			Quantity: line.Quantity,
			AddedAt:  line.AddedAt,
		})
	}
	return cart, nil
}

// Save replaces the shopper's cart document.
func (r *CartRepository) Save(ctx context.Context, cart domain.Cart) error {
	if r == nil || r.base == nil {
		return errors.New("cart repository not initialised")
	}
	shopperID := strings.TrimSpace(cart.ShopperID)
	if shopperID == "" {
		return errors.New("cart repository: shopper id is required")
	}

	doc := cartDocument{
		Open:      cart.Open,
		Lines:     make([]cartLineDocument, 0, len(cart.Lines)),
		CreatedAt: cart.CreatedAt.UTC(),
		UpdatedAt: cart.UpdatedAt.UTC(),
	}
	for _, line := range cart.Lines {
		doc.Lines = append(doc.Lines, cartLineDocument{
			ProductID: line.Product.ID,
			Product:   productDocumentFrom(line.Product),
			Quantity:  line.Quantity,
			AddedAt:   line.AddedAt.UTC(),
		})
	}

	_, err := r.base.Set(ctx, shopperID, doc)
	return err
}

// Delete removes the shopper's cart document entirely.
func (r *CartRepository) Delete(ctx context.Context, shopperID string) error {
	if r == nil || r.base == nil {
		return errors.New("cart repository not initialised")
	}
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return errors.New("cart repository: shopper id is required")
	}
	return r.base.Delete(ctx, shopperID)
}

type cartDocument struct {
	Open      bool               `firestore:"open"`
	Lines     []cartLineDocument `firestore:"lines"`
	CreatedAt time.Time          `firestore:"createdAt"`
	UpdatedAt time.Time          `firestore:"updatedAt"`
}

type cartLineDocument struct {
	ProductID string          `firestore:"productId"`
	Product   productDocument `firestore:"product"`
	Quantity  int             `firestore:"quantity"`
	AddedAt   time.Time       `firestore:"addedAt"`
}

var _ repositories.CartRepository = (*CartRepository)(nil)
