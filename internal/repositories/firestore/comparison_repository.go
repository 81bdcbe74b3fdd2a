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

const comparisonsCollection = "comparisons"

// ComparisonRepository persists one compare-tray document per shopper.
type ComparisonRepository struct {
	base *pfirestore.BaseRepository[comparisonDocument]
}

// NewComparisonRepository constructs a Firestore-backed comparison repository.
func NewComparisonRepository(provider *pfirestore.Provider) (*ComparisonRepository, error) {
	if provider == nil {
		return nil, errors.New("comparison repository requires firestore provider")
	}
	base := pfirestore.NewBaseRepository[comparisonDocument](provider, comparisonsCollection, nil, nil)
	return &ComparisonRepository{base: base}, nil
}

// Get loads the compare tray for the given shopper.
func (r *ComparisonRepository) Get(ctx context.Context, shopperID string) (domain.Comparison, error) {
	if r == nil || r.base == nil {
		return domain.Comparison{}, errors.New("comparison repository not initialised")
	}
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return domain.Comparison{}, errors.New("comparison repository: shopper id is required")
	}

	doc, err := r.base.Get(ctx, shopperID)
	if err != nil {
		return domain.Comparison{}, err
	}

	comparison := domain.Comparison{
		ShopperID: doc.ID,
		Open:      doc.Data.Open,
		Items:     make([]domain.ComparisonItem, 0, len(doc.Data.Items)),
		CreatedAt: doc.Data.CreatedAt,
		UpdatedAt: doc.Data.UpdatedAt,
	}
	if comparison.UpdatedAt.IsZero() {
		comparison.UpdatedAt = doc.UpdateTime
	}
	for _, item := range doc.Data.Items {
		comparison.Items = append(comparison.Items, domain.ComparisonItem{
			ProductID:   item.ProductID,
			Slug:        item.Slug,
			Name:        item.Name,
			Price:       item.Price,
			Image:       item.Image,
			Category:    domain.ProductCategory(item.Category),
			Description: item.Description,
			Features:    item.Features,
			Benefits:    item.Benefits,
			Ingredients: item.Ingredients,
			InStock:     item.InStock,
			Rating:      item.Rating,
			AddedAt:     item.AddedAt,
		})
	}
	return comparison, nil
}

// Save replaces the shopper's comparison document.
func (r *ComparisonRepository) Save(ctx context.Context, comparison domain.Comparison) error {
	if r == nil || r.base == nil {
		return errors.New("comparison repository not initialised")
	}
	shopperID := strings.TrimSpace(comparison.ShopperID)
	if shopperID == "" {
		return errors.New("comparison repository: shopper id is required")
	}

	doc := comparisonDocument{
		Open:      comparison.Open,
		Items:     make([]comparisonItemDocument, 0, len(comparison.Items)),
		CreatedAt: comparison.CreatedAt.UTC(),
		UpdatedAt: comparison.UpdatedAt.UTC(),
	}
	for _, item := range comparison.Items {
		doc.Items = append(doc.Items, comparisonItemDocument{
			ProductID:   item.ProductID,
			Slug:        item.Slug,
			Name:        item.Name,
			Price:       item.Price,
			Image:       item.Image,
			Category:    string(item.Category),
			Description: item.Description,
			Features:    item.Features,
			Benefits:    item.Benefits,
			Ingredients: item.Ingredients,
			InStock:     item.InStock,
			Rating:      item.Rating,
			AddedAt:     item.AddedAt.UTC(),
		})
	}

	_, err := r.base.Set(ctx, shopperID, doc)
	return err
}

// Delete removes the shopper's comparison document entirely.
func (r *ComparisonRepository) Delete(ctx context.Context, shopperID string) error {
	if r == nil || r.base == nil {
		return errors.New("comparison repository not initialised")
	}
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return errors.New("comparison repository: shopper id is required")
	}
	return r.base.Delete(ctx, shopperID)
}

type comparisonDocument struct {
	Open      bool                     `firestore:"open"`
	Items     []comparisonItemDocument `firestore:"items"`
	CreatedAt time.Time                `firestore:"createdAt"`
	UpdatedAt time.Time                `firestore:"updatedAt"`
}

type comparisonItemDocument struct {
	ProductID   string    `firestore:"productId"`
	Slug        string    `firestore:"slug"`
	Name        string    `firestore:"name"`
	Price       int64     `firestore:"price"`
	Image       string    `firestore:"image,omitempty"`
	Category    string    `firestore:"category"`
	Description string    `firestore:"description,omitempty"`
	Features    []string  `firestore:"features,omitempty"`
	Benefits    []string  `firestore:"benefits,omitempty"`
	Ingredients []string  `firestore:"ingredients,omitempty"`
	InStock     bool      `firestore:"inStock"`
	Rating      float64   `firestore:"rating,omitempty"`
	AddedAt     time.Time `firestore:"addedAt"`
}

var _ repositories.ComparisonRepository = (*ComparisonRepository)(nil)
