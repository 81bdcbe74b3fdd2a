// Package fixture ships an embedded demo catalog so the storefront runs
// without a Firestore project, for local development and tests.
package fixture

import (
	"context"
	"fmt"
	"sort"
	"strings"

	domain "github.com/peakform/storefront-api/internal/domain"
	"github.com/peakform/storefront-api/internal/repositories"
)

// Catalog is an in-memory ProductRepository over the embedded product set.
type Catalog struct {
	products []domain.Product
}

// NewCatalog returns the embedded demo catalog.
func NewCatalog() *Catalog {
	return &Catalog{products: fixtureProducts()}
}

// NewCatalogWith builds a catalog over the supplied products. Used by tests.
func NewCatalogWith(products []domain.Product) *Catalog {
	return &Catalog{products: products}
}

// List filters and pages the embedded catalog in declaration order.
func (c *Catalog) List(ctx context.Context, filter repositories.ProductListFilter) (domain.ProductPage, error) {
	if err := ctx.Err(); err != nil {
		return domain.ProductPage{}, err
	}

	matched := make([]domain.Product, 0, len(c.products))
	for _, product := range c.products {
		if filter.Category != nil && product.Category != *filter.Category {
			continue
		}
		if filter.Featured != nil && product.Featured != *filter.Featured {
			continue
		}
		if filter.OnSaleOnly && !product.OnSale() {
			continue
		}
		matched = append(matched, cloneProduct(product))
	}
	sortProductsByPrice(matched, filter.Sort)

	total := len(matched)
	pagination := filter.Pagination
	if pagination.PageSize <= 0 {
		return domain.ProductPage{Products: matched, Total: total}, nil
	}
	offset := pagination.Offset()
	if offset >= total {
		return domain.ProductPage{Products: []domain.Product{}, Total: total}, nil
	}
	end := offset + pagination.PageSize
	if end > total {
		end = total
	}
	return domain.ProductPage{Products: matched[offset:end], Total: total}, nil
}

// FindByID resolves a product by identifier.
func (c *Catalog) FindByID(ctx context.Context, productID string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	productID = strings.TrimSpace(productID)
	for _, product := range c.products {
		if product.ID == productID {
			return cloneProduct(product), nil
		}
	}
	return domain.Product{}, notFoundError{detail: fmt.Sprintf("product %q", productID)}
}

// FindBySlug resolves a product by its URL slug.
func (c *Catalog) FindBySlug(ctx context.Context, slug string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	slug = strings.TrimSpace(slug)
	for _, product := range c.products {
		if product.Slug == slug {
			return cloneProduct(product), nil
		}
	}
	return domain.Product{}, notFoundError{detail: fmt.Sprintf("slug %q", slug)}
}

// FindByIDs resolves the given products, skipping unknown identifiers.
func (c *Catalog) FindByIDs(ctx context.Context, productIDs []string) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(productIDs))
	for _, id := range productIDs {
		product, err := c.FindByID(ctx, id)
		if err != nil {
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

func sortProductsByPrice(products []domain.Product, order domain.SortOrder) {
	switch order {
	case domain.SortAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case domain.SortDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	}
}

func cloneProduct(product domain.Product) domain.Product {
	dup := product
	dup.Images = append([]string(nil), product.Images...)
	dup.Features = append([]string(nil), product.Features...)
	dup.Benefits = append([]string(nil), product.Benefits...)
	dup.Ingredients = append([]string(nil), product.Ingredients...)
	dup.Tags = append([]string(nil), product.Tags...)
	return dup
}

type notFoundError struct {
	detail string
}

func (e notFoundError) Error() string       { return "fixture catalog: " + e.detail + " not found" }
func (e notFoundError) IsNotFound() bool    { return true }
func (e notFoundError) IsConflict() bool    { return false }
func (e notFoundError) IsUnavailable() bool { return false }

var (
	_ repositories.ProductRepository = (*Catalog)(nil)
	_ repositories.RepositoryError   = notFoundError{}
)
