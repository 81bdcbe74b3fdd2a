package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/peakform/storefront-api/internal/platform/config"
	"github.com/peakform/storefront-api/internal/repositories"
	"github.com/peakform/storefront-api/internal/services"
)

// Services bundles the service-layer contracts that handlers rely upon. Concrete implementations
// are assembled via dependency injection in NewContainer.
type Services struct {
	Catalog         services.CatalogService
	Cart            services.CartService
	Wishlist        services.WishlistService
	Comparison      services.ComparisonService
	Recommendations services.RecommendationService
	System          services.SystemService
}

// Container wires repositories, services, and background infrastructure for runtime use.
type Container struct {
	Config       config.Config
	Repositories repositories.Registry
	Services     Services
}

// ContainerDeps carries optional collaborators that cannot be derived from the registry.
type ContainerDeps struct {
	// ActivityPublisher delivers cart activity events; nil disables publishing.
	ActivityPublisher services.CartActivityPublisher
	// Logger receives structured service-level events; nil means silent.
	Logger func(context.Context, string, map[string]any)
	// Clock overrides time.Now, primarily for tests.
	Clock func() time.Time
}

// NewContainer constructs the runtime dependencies. Production wiring provides real
// implementations, while tests can supply in-memory registries.
func NewContainer(cfg config.Config, reg repositories.Registry, deps ContainerDeps) (*Container, error) {
	if reg == nil {
		return nil, errors.New("repositories registry is required")
	}

	svc, err := buildServices(cfg, reg, deps)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:       cfg,
		Repositories: reg,
		Services:     svc,
	}, nil
}

// Close releases resources such as repository clients and event publishers.
func (c *Container) Close(ctx context.Context) error {
	if c == nil || c.Repositories == nil {
		return nil
	}
	return c.Repositories.Close(ctx)
}

func buildServices(cfg config.Config, reg repositories.Registry, deps ContainerDeps) (Services, error) {
	var svc Services

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	catalogSvc, err := services.NewCatalogService(services.CatalogServiceDeps{
		Products:        reg.Products(),
		DefaultPageSize: cfg.Catalog.DefaultPageSize,
		MaxPageSize:     cfg.Catalog.MaxPageSize,
		FeaturedLimit:   cfg.Catalog.FeaturedLimit,
		Clock:           clock,
		Logger:          deps.Logger,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build catalog service: %w", err)
	}
	svc.Catalog = catalogSvc

	cartSvc, err := services.NewCartService(services.CartServiceDeps{
		Repository: reg.Carts(),
		Catalog:    catalogSvc,
		Publisher:  deps.ActivityPublisher,
		Clock:      clock,
		Logger:     deps.Logger,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build cart service: %w", err)
	}
	svc.Cart = cartSvc

	wishlistSvc, err := services.NewWishlistService(services.WishlistServiceDeps{
		Repository: reg.Wishlists(),
		Catalog:    catalogSvc,
		Clock:      clock,
		Logger:     deps.Logger,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build wishlist service: %w", err)
	}
	svc.Wishlist = wishlistSvc

	comparisonSvc, err := services.NewComparisonService(services.ComparisonServiceDeps{
		Repository: reg.Comparisons(),
		Catalog:    catalogSvc,
		Clock:      clock,
		Logger:     deps.Logger,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build comparison service: %w", err)
	}
	svc.Comparison = comparisonSvc

	recommendationSvc, err := services.NewRecommendationService(services.RecommendationServiceDeps{
		Products: reg.Products(),
		Carts:    reg.Carts(),
		Clock:    clock,
		Logger:   deps.Logger,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build recommendation service: %w", err)
	}
	svc.Recommendations = recommendationSvc

	if healthRepo := reg.Health(); healthRepo != nil {
		systemSvc, err := services.NewSystemService(services.SystemServiceDeps{
			HealthRepository: healthRepo,
			Clock:            clock,
		})
		if err != nil {
			return Services{}, fmt.Errorf("build system service: %w", err)
		}
		svc.System = systemSvc
	}

	return svc, nil
}
