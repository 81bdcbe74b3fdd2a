package repositories

import (
	"context"
	"errors"
)

// RegistryDeps lists the concrete repositories composed into a Registry.
type RegistryDeps struct {
	Products    ProductRepository
	Carts       CartRepository
	Wishlists   WishlistRepository
	Comparisons ComparisonRepository
	Health      HealthRepository
	Closer      func(ctx context.Context) error
}

type registry struct {
	products    ProductRepository
	carts       CartRepository
	wishlists   WishlistRepository
	comparisons ComparisonRepository
	health      HealthRepository
	closer      func(ctx context.Context) error
}

// NewRegistry bundles repositories behind the Registry interface. All
// repositories are required; the closer is optional.
func NewRegistry(deps RegistryDeps) (Registry, error) {
	if deps.Products == nil {
		return nil, errors.New("registry: product repository is required")
	}
	if deps.Carts == nil {
		return nil, errors.New("registry: cart repository is required")
	}
	if deps.Wishlists == nil {
		return nil, errors.New("registry: wishlist repository is required")
	}
	if deps.Comparisons == nil {
		return nil, errors.New("registry: comparison repository is required")
	}
	if deps.Health == nil {
		return nil, errors.New("registry: health repository is required")
	}
	return &registry{
		products:    deps.Products,
		carts:       deps.Carts,
		wishlists:   deps.Wishlists,
		comparisons: deps.Comparisons,
		health:      deps.Health,
		closer:      deps.Closer,
	}, nil
}

func (r *registry) Close(ctx context.Context) error {
	if r.closer == nil {
		return nil
	}
	return r.closer(ctx)
}

func (r *registry) Products() ProductRepository       { return r.products }
func (r *registry) Carts() CartRepository             { return r.carts }
func (r *registry) Wishlists() WishlistRepository     { return r.wishlists }
func (r *registry) Comparisons() ComparisonRepository { return r.comparisons }
func (r *registry) Health() HealthRepository          { return r.health }
