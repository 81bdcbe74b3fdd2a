package services

import (
	"sort"

	domain "github.com/peakform/storefront-api/internal/domain"
)

// relatedCategories pairs each category with the categories shoppers browse
// alongside it. Drives the "frequently bought together" and "you may also
// like" pools.
var relatedCategories = map[domain.ProductCategory][]domain.ProductCategory{
	domain.CategorySupplements:      {domain.CategoryNootropics, domain.CategoryPerformance, domain.CategoryRecovery},
	domain.CategoryNootropics:       {domain.CategorySupplements, domain.CategorySleep},
	domain.CategoryPerformance:      {domain.CategorySupplements, domain.CategoryRecovery},
	domain.CategoryRecovery:         {domain.CategoryPerformance, domain.CategorySleep},
	domain.CategorySleep:            {domain.CategoryNootropics, domain.CategoryRecovery},
	domain.CategoryWearables:        {domain.CategoryBlueLightGlasses},
	domain.CategoryBlueLightGlasses: {domain.CategoryWearables, domain.CategorySleep},
}

// complementaryCategories pairs each category with cross-sell categories from
// a different part of the catalog.
var complementaryCategories = map[domain.ProductCategory][]domain.ProductCategory{
	domain.CategorySupplements:      {domain.CategoryWearables, domain.CategoryBlueLightGlasses},
	domain.CategoryNootropics:       {domain.CategoryBlueLightGlasses},
	domain.CategoryPerformance:      {domain.CategoryWearables},
	domain.CategoryRecovery:         {domain.CategoryWearables},
	domain.CategorySleep:            {domain.CategoryBlueLightGlasses},
	domain.CategoryWearables:        {domain.CategorySupplements, domain.CategoryPerformance},
	domain.CategoryBlueLightGlasses: {domain.CategoryNootropics, domain.CategorySleep},
}

// frequentlyBoughtTogether suggests companions for the subject product:
// same-category products first, then products from related categories,
// cheapest first. The subject itself is never suggested.
func frequentlyBoughtTogether(catalog []Product, subject Product, max int) []Product {
	if max <= 0 {
		return nil
	}

	pool := make([]Product, 0, len(catalog))
	seen := map[string]struct{}{subject.ID: {}}
	appendCandidates := func(category domain.ProductCategory) {
		for _, product := range catalog {
			if product.Category != category {
				continue
			}
			if _, ok := seen[product.ID]; ok {
				continue
			}
			seen[product.ID] = struct{}{}
			pool = append(pool, product)
		}
	}

	appendCandidates(subject.Category)
	for _, category := range relatedCategories[subject.Category] {
		appendCandidates(category)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Price < pool[j].Price
	})
	return truncateProducts(pool, max)
}

// youMayAlsoLike suggests browse alternatives: same and related categories,
// discounted products first, then nearest in price to the subject.
func youMayAlsoLike(catalog []Product, subject Product, max int) []Product {
	if max <= 0 {
		return nil
	}

	categories := append([]domain.ProductCategory{subject.Category}, relatedCategories[subject.Category]...)
	wanted := make(map[domain.ProductCategory]struct{}, len(categories))
	for _, category := range categories {
		wanted[category] = struct{}{}
	}

	pool := make([]Product, 0, len(catalog))
	for _, product := range catalog {
		if product.ID == subject.ID {
			continue
		}
		if _, ok := wanted[product.Category]; !ok {
			continue
		}
		pool = append(pool, product)
	}

	distance := func(p Product) int64 {
		d := p.Price - subject.Price
		if d < 0 {
			return -d
		}
		return d
	}
	discounted := func(p Product) bool { return p.CompareAtPrice != 0 }
	sort.SliceStable(pool, func(i, j int) bool {
		if discounted(pool[i]) != discounted(pool[j]) {
			return discounted(pool[i])
		}
		return distance(pool[i]) < distance(pool[j])
	})
	return truncateProducts(pool, max)
}

// complementaryProducts suggests cross-sells from the subject's complementary
// categories, preserving catalog order. A category without a complementary
// mapping yields no suggestions.
func complementaryProducts(catalog []Product, subject Product, max int) []Product {
	if max <= 0 {
		return nil
	}

	wanted := make(map[domain.ProductCategory]struct{})
	for _, category := range complementaryCategories[subject.Category] {
		wanted[category] = struct{}{}
	}
	if len(wanted) == 0 {
		return nil
	}

	pool := make([]Product, 0, max)
	for _, product := range catalog {
		if product.ID == subject.ID {
			continue
		}
		if _, ok := wanted[product.Category]; !ok {
			continue
		}
		pool = append(pool, product)
		if len(pool) == max {
			break
		}
	}
	return pool
}

// cartRecommendations suggests cross-sells for the whole cart. An empty cart
// yields discounted products in catalog order; otherwise each line's
// complementary suggestions are concatenated in cart order, deduplicated
// first-wins, excluding cart members.
func cartRecommendations(catalog []Product, cart Cart, max int) []Product {
	if max <= 0 {
		return nil
	}

	if cart.IsEmpty() {
		pool := make([]Product, 0, max)
		for _, product := range catalog {
			if product.CompareAtPrice == 0 {
				continue
			}
			pool = append(pool, product)
			if len(pool) == max {
				break
			}
		}
		return pool
	}

	inCart := make(map[string]struct{}, len(cart.Lines))
	for _, line := range cart.Lines {
		inCart[line.Product.ID] = struct{}{}
	}

	pool := make([]Product, 0, max)
	seen := make(map[string]struct{})
	for _, line := range cart.Lines {
		for _, product := range complementaryProducts(catalog, line.Product, len(catalog)) {
			if _, ok := inCart[product.ID]; ok {
				continue
			}
			if _, ok := seen[product.ID]; ok {
				continue
			}
			seen[product.ID] = struct{}{}
			pool = append(pool, product)
			if len(pool) == max {
				return pool
			}
		}
	}
	return pool
}

func truncateProducts(products []Product, max int) []Product {
	if len(products) > max {
		return products[:max]
	}
	return products
}
