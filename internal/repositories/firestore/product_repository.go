package firestore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	domain "github.com/peakform/storefront-api/internal/domain"
	pfirestore "github.com/peakform/storefront-api/internal/platform/firestore"
	"github.com/peakform/storefront-api/internal/repositories"
)

const defaultProductsCollection = "products"

// ProductRepository reads the merchandised catalog from Firestore.
type ProductRepository struct {
	base *pfirestore.BaseRepository[productDocument]
}

// NewProductRepository constructs a Firestore-backed product repository. An
// empty collection name falls back to "products".
func NewProductRepository(provider *pfirestore.Provider, collection string) (*ProductRepository, error) {
	if provider == nil {
		return nil, errors.New("product repository requires firestore provider")
	}
	collection = strings.TrimSpace(collection)
	if collection == "" {
		collection = defaultProductsCollection
	}
	base := pfirestore.NewBaseRepository[productDocument](provider, collection, nil, nil)
	return &ProductRepository{base: base}, nil
}

// List returns a catalog page. Category and featured narrowing run on the
// Firestore query; sale filtering, price ordering, and pagination run in
// memory since the discount relation between two fields is not expressible
// as a Firestore predicate.
func (r *ProductRepository) List(ctx context.Context, filter repositories.ProductListFilter) (domain.ProductPage, error) {
	if r == nil || r.base == nil {
		return domain.ProductPage{}, errors.New("product repository not initialised")
	}

	docs, err := r.base.Query(ctx, func(query firestore.Query) firestore.Query {
		if filter.Category != nil {
			query = query.Where("category", "==", string(*filter.Category))
		}
		if filter.Featured != nil {
			query = query.Where("featured", "==", *filter.Featured)
		}
		return query.OrderBy("createdAt", firestore.Asc)
	})
	if err != nil {
		return domain.ProductPage{}, err
	}

	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		product := doc.Data.toDomain(doc.ID)
		if filter.OnSaleOnly && !product.OnSale() {
			continue
		}
		products = append(products, product)
	}
	switch filter.Sort {
	case domain.SortAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case domain.SortDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	}

	total := len(products)
	pagination := filter.Pagination
	if pagination.PageSize <= 0 {
		return domain.ProductPage{Products: products, Total: total}, nil
	}
	offset := pagination.Offset()
	if offset >= total {
		return domain.ProductPage{Products: []domain.Product{}, Total: total}, nil
	}
	end := offset + pagination.PageSize
	if end > total {
		end = total
	}
	return domain.ProductPage{Products: products[offset:end], Total: total}, nil
}

// FindByID loads a single product document.
func (r *ProductRepository) FindByID(ctx context.Context, productID string) (domain.Product, error) {
	if r == nil || r.base == nil {
		return domain.Product{}, errors.New("product repository not initialised")
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domain.Product{}, errors.New("product repository: product id is required")
	}

	doc, err := r.base.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	return doc.Data.toDomain(doc.ID), nil
}

// FindBySlug resolves a product by its unique URL slug.
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (domain.Product, error) {
	if r == nil || r.base == nil {
		return domain.Product{}, errors.New("product repository not initialised")
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.Product{}, errors.New("product repository: slug is required")
	}

	docs, err := r.base.Query(ctx, func(query firestore.Query) firestore.Query {
		return query.Where("slug", "==", slug).Limit(1)
	})
	if err != nil {
		return domain.Product{}, err
	}
	if len(docs) == 0 {
		return domain.Product{}, pfirestore.NotFoundError("products.findBySlug", "no product with slug "+slug)
	}
	return docs[0].Data.toDomain(docs[0].ID), nil
}

// FindByIDs loads the given products, silently skipping identifiers that no
// longer exist. Order follows the input identifiers.
func (r *ProductRepository) FindByIDs(ctx context.Context, productIDs []string) ([]domain.Product, error) {
	if r == nil || r.base == nil {
		return nil, errors.New("product repository not initialised")
	}

	products := make([]domain.Product, 0, len(productIDs))
	for _, id := range productIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		doc, err := r.base.Get(ctx, id)
		if err != nil {
			var repoErr repositories.RepositoryError
			if errors.As(err, &repoErr) && repoErr.IsNotFound() {
				continue
			}
			return nil, err
		}
		products = append(products, doc.Data.toDomain(doc.ID))
	}
	return products, nil
}

type productDocument struct {
	Slug             string    `firestore:"slug"`
	Name             string    `firestore:"name"`
	Description      string    `firestore:"description,omitempty"`
	ShortDescription string    `firestore:"shortDescription,omitempty"`
	Price            int64     `firestore:"price"`
	CompareAtPrice   int64     `firestore:"compareAtPrice,omitempty"`
	Category         string    `firestore:"category"`
	Images           []string  `firestore:"images"`
	Features         []string  `firestore:"features,omitempty"`
	Benefits         []string  `firestore:"benefits,omitempty"`
	Ingredients      []string  `firestore:"ingredients,omitempty"`
	InStock          bool      `firestore:"inStock"`
	Inventory        int       `firestore:"inventory"`
	Rating           float64   `firestore:"rating,omitempty"`
	ReviewCount      int       `firestore:"reviewCount,omitempty"`
	SKU              string    `firestore:"sku,omitempty"`
	Tags             []string  `firestore:"tags,omitempty"`
	Featured         bool      `firestore:"featured"`
	CreatedAt        time.Time `firestore:"createdAt"`
	UpdatedAt        time.Time `firestore:"updatedAt"`
}

func (d productDocument) toDomain(id string) domain.Product {
	return domain.Product{
		ID:               id,
		Slug:             d.Slug,
		Name:             d.Name,
		Description:      d.Description,
		ShortDescription: d.ShortDescription,
		Price:            d.Price,
		CompareAtPrice:   d.CompareAtPrice,
		Category:         domain.ProductCategory(d.Category),
		Images:           d.Images,
		Features:         d.Features,
		Benefits:         d.Benefits,
		Ingredients:      d.Ingredients,
		InStock:          d.InStock,
		Inventory:        d.Inventory,
		Rating:           d.Rating,
		ReviewCount:      d.ReviewCount,
		SKU:              d.SKU,
		Tags:             d.Tags,
		Featured:         d.Featured,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func productDocumentFrom(product domain.Product) productDocument {
	return productDocument{
		Slug:             product.Slug,
		Name:             product.Name,
		Description:      product.Description,
		ShortDescription: product.ShortDescription,
		Price:            product.Price,
		CompareAtPrice:   product.CompareAtPrice,
		Category:         string(product.Category),
		Images:           product.Images,
		Features:         product.Features,
		Benefits:         product.Benefits,
		Ingredients:      product.Ingredients,
		InStock:          product.InStock,
		Inventory:        product.Inventory,
		Rating:           product.Rating,
		ReviewCount:      product.ReviewCount,
		SKU:              product.SKU,
		Tags:             product.Tags,
		Featured:         product.Featured,
		CreatedAt:        product.CreatedAt,
		UpdatedAt:        product.UpdatedAt,
	}
}

var _ repositories.ProductRepository = (*ProductRepository)(nil)
