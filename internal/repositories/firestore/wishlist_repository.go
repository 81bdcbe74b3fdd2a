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

const wishlistsCollection = "wishlists"

// WishlistRepository persists one wishlist document per shopper.
type WishlistRepository struct {
	base *pfirestore.BaseRepository[wishlistDocument]
}

// NewWishlistRepository constructs a Firestore-backed wishlist repository.
func NewWishlistRepository(provider *pfirestore.Provider) (*WishlistRepository, error) {
	if provider == nil {
		return nil, errors.New("wishlist repository requires firestore provider")
	}
	base := pfirestore.NewBaseRepository[wishlistDocument](provider, wishlistsCollection, nil, nil)
	return &WishlistRepository{base: base}, nil
}

// Get loads the wishlist for the given shopper.
func (r *WishlistRepository) Get(ctx context.Context, shopperID string) (domain.Wishlist, error) {
	if r == nil || r.base == nil {
		return domain.Wishlist{}, errors.New("wishlist repository not initialised")
	}
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return domain.Wishlist{}, errors.New("wishlist repository: shopper id is required")
	}

	doc, err := r.base.Get(ctx, shopperID)
	if err != nil {
		return domain.Wishlist{}, err
	}

	wishlist := domain.Wishlist{
		ShopperID: doc.ID,
		Items:     make([]domain.WishlistItem, 0, len(doc.Data.Items)),
		CreatedAt: doc.Data.CreatedAt,
		UpdatedAt: doc.Data.UpdatedAt,
	}
	if wishlist.UpdatedAt.IsZero() {
		wishlist.UpdatedAt = doc.UpdateTime
	}
	for _, item := range doc.Data.Items {
		wishlist.Items = append(wishlist.Items, domain.WishlistItem{
			ProductID: item.ProductID,
			Slug:      item.Slug,
			Name:      item.Name,
			Price:     item.Price,
			Image:     item.Image,
			InStock:   item.InStock,
			AddedAt:   item.AddedAt,
		})
	}
	return wishlist, nil
}

// Save replaces the shopper's wishlist document.
func (r *WishlistRepository) Save(ctx context.Context, wishlist domain.Wishlist) error {
	if r == nil || r.base == nil {
		return errors.New("wishlist repository not initialised")
	}
	shopperID := strings.TrimSpace(wishlist.ShopperID)
	if shopperID == "" {
		return errors.New("wishlist repository: shopper id is required")
	}

	doc := wishlistDocument{
		Items:     make([]wishlistItemDocument, 0, len(wishlist.Items)),
		CreatedAt: wishlist.CreatedAt.UTC(),
		UpdatedAt: wishlist.UpdatedAt.UTC(),
	}
	for _, item := range wishlist.Items {
		doc.Items = append(doc.Items, wishlistItemDocument{
			ProductID: item.ProductID,
			Slug:      item.Slug,
			Name:      item.Name,
			Price:     item.Price,
			Image:     item.Image,
			InStock:   item.InStock,
			AddedAt:   item.AddedAt.UTC(),
		})
	}

	_, err := r.base.Set(ctx, shopperID, doc)
	return err
}

// Delete removes the shopper's wishlist document entirely.
func (r *WishlistRepository) Delete(ctx context.Context, shopperID string) error {
	if r == nil || r.base == nil {
		return errors.New("wishlist repository not initialised")
	}
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return errors.New("wishlist repository: shopper id is required")
	}
	return r.base.Delete(ctx, shopperID)
}

type wishlistDocument struct {
	Items     []wishlistItemDocument `firestore:"items"`
	CreatedAt time.Time              `firestore:"createdAt"`
	UpdatedAt time.Time              `firestore:"updatedAt"`
}

type wishlistItemDocument struct {
	ProductID string    `firestore:"productId"`
	Slug      string    `firestore:"slug"`
	Name      string    `firestore:"name"`
	Price     int64     `firestore:"price"`
	Image     string    `firestore:"image,omitempty"`
	InStock   bool      `firestore:"inStock"`
	AddedAt   time.Time `firestore:"addedAt"`
}

var _ repositories.WishlistRepository = (*WishlistRepository)(nil)
