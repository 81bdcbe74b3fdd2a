package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/peakform/storefront-api/internal/di"
	"github.com/peakform/storefront-api/internal/handlers"
	"github.com/peakform/storefront-api/internal/platform/auth"
	"github.com/peakform/storefront-api/internal/platform/config"
	"github.com/peakform/storefront-api/internal/platform/events"
	pfirestore "github.com/peakform/storefront-api/internal/platform/firestore"
	"github.com/peakform/storefront-api/internal/platform/observability"
	"github.com/peakform/storefront-api/internal/platform/secrets"
	"github.com/peakform/storefront-api/internal/repositories"
	firestoreRepo "github.com/peakform/storefront-api/internal/repositories/firestore"
	"github.com/peakform/storefront-api/internal/repositories/fixture"
	"github.com/peakform/storefront-api/internal/repositories/memory"
	"github.com/peakform/storefront-api/internal/services"
)

const (
	shutdownGrace          = 10 * time.Second
	storeMutationLimit     = 120
	storeMutationWindow    = time.Minute
	dependencyProbeTimeout = 1500 * time.Millisecond
)

func main() {
	ctx := context.Background()
	startedAt := time.Now().UTC()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("api")
	ctx = observability.WithLogger(ctx, logger)

	fetcher, err := newSecretFetcher(ctx, logger)
	if err != nil {
		logger.Fatal("failed to initialise secret fetcher", zap.Error(err))
	}
	defer func() {
		if err := fetcher.Close(); err != nil {
			logger.Warn("secret fetcher close error", zap.Error(err))
		}
	}()

	cfg, err := config.Load(ctx, config.WithSecretResolver(fetcher))
	if err != nil {
		var missing *config.MissingSecretsError
		if errors.As(err, &missing) {
			logger.Fatal("missing required secrets", zap.Strings("secrets", missing.Names()))
		}
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	var (
		registryDeps repositories.RegistryDeps
		healthChecks []repositories.DependencyCheck
	)

	switch cfg.Catalog.Source {
	case config.CatalogSourceFirestore:
		provider := pfirestore.NewProvider(cfg.Firestore)
		client, err := provider.Client(ctx)
		if err != nil {
			logger.Fatal("failed to initialise firestore client", zap.Error(err))
		}

		products, err := firestoreRepo.NewProductRepository(provider, cfg.Catalog.ProductsCollection)
		if err != nil {
			logger.Fatal("failed to initialise product repository", zap.Error(err))
		}
		carts, err := firestoreRepo.NewCartRepository(provider)
		if err != nil {
			logger.Fatal("failed to initialise cart repository", zap.Error(err))
		}
		wishlists, err := firestoreRepo.NewWishlistRepository(provider)
		if err != nil {
			logger.Fatal("failed to initialise wishlist repository", zap.Error(err))
		}
		comparisons, err := firestoreRepo.NewComparisonRepository(provider)
		if err != nil {
			logger.Fatal("failed to initialise comparison repository", zap.Error(err))
		}

		registryDeps = repositories.RegistryDeps{
			Products:    products,
			Carts:       carts,
			Wishlists:   wishlists,
			Comparisons: comparisons,
			Closer:      provider.Close,
		}
		healthChecks = append(healthChecks, repositories.DependencyCheck{
			Name:    "firestore",
			Timeout: dependencyProbeTimeout,
			Check: func(ctx context.Context) error {
				iter := client.Collections(ctx)
				_, err := iter.Next()
				if errors.Is(err, iterator.Done) {
					return nil
				}
				return err
			},
		})

	case config.CatalogSourceMock:
		catalog := fixture.NewCatalog()
		registryDeps = repositories.RegistryDeps{
			Products:    catalog,
			Carts:       memory.NewCartStore(),
			Wishlists:   memory.NewWishlistStore(),
			Comparisons: memory.NewComparisonStore(),
		}
		healthChecks = append(healthChecks, repositories.DependencyCheck{
			Name:    "catalog",
			Timeout: dependencyProbeTimeout,
			Check: func(ctx context.Context) error {
				_, err := catalog.List(ctx, repositories.ProductListFilter{})
				return err
			},
		})

	default:
		logger.Fatal("unknown catalog source", zap.String("source", string(cfg.Catalog.Source)))
	}

	var activityPublisher services.CartActivityPublisher
	if cfg.Events.Enabled {
		pubsubClient, err := pubsub.NewClient(ctx, cfg.Events.ProjectID)
		if err != nil {
			logger.Fatal("failed to initialise pubsub client", zap.Error(err))
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logger.Warn("pubsub close error", zap.Error(err))
			}
		}()

		topic := pubsubClient.Topic(cfg.Events.Topic)
		publisher, err := events.NewPubSubCartActivityPublisher(topic)
		if err != nil {
			logger.Fatal("failed to initialise cart activity publisher", zap.Error(err))
		}
		activityPublisher = publisher

		healthChecks = append(healthChecks, repositories.DependencyCheck{
			Name:    "pubsub",
			Timeout: dependencyProbeTimeout,
			Check: func(ctx context.Context) error {
				exists, err := topic.Exists(ctx)
				if err != nil {
					return err
				}
				if !exists {
					return fmt.Errorf("topic %q does not exist", cfg.Events.Topic)
				}
				return nil
			},
		})
	}

	healthRepo, err := repositories.NewDependencyHealthRepository(healthChecks)
	if err != nil {
		logger.Fatal("failed to initialise health repository", zap.Error(err))
	}
	registryDeps.Health = healthRepo

	registry, err := repositories.NewRegistry(registryDeps)
	if err != nil {
		logger.Fatal("failed to initialise repository registry", zap.Error(err))
	}

	container, err := di.NewContainer(cfg, registry, di.ContainerDeps{
		ActivityPublisher: activityPublisher,
		Logger:            zapEventLogger(logger.Named("services")),
	})
	if err != nil {
		logger.Fatal("failed to assemble services", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := container.Close(closeCtx); err != nil {
			logger.Warn("container close error", zap.Error(err))
		}
	}()

	sessionManager, err := auth.NewSessionManager(cfg.Session.Secret, cfg.Session.Issuer,
		auth.WithSessionTTL(cfg.Session.TTL),
	)
	if err != nil {
		logger.Fatal("failed to initialise session manager", zap.Error(err))
	}

	productHandlers := handlers.NewProductHandlers(
		handlers.WithProductCatalogService(container.Services.Catalog),
		handlers.WithProductRecommendationService(container.Services.Recommendations),
	)
	cartHandlers := handlers.NewCartHandlers(
		handlers.WithCartService(container.Services.Cart),
		handlers.WithCartRecommendationService(container.Services.Recommendations),
	)
	wishlistHandlers := handlers.NewWishlistHandlers(container.Services.Wishlist)
	comparisonHandlers := handlers.NewComparisonHandlers(container.Services.Comparison)
	healthHandlers := handlers.NewHealthHandlers(
		handlers.WithHealthSystemService(container.Services.System),
		handlers.WithHealthBuildInfo(buildInfoFromEnv(startedAt)),
	)

	router := handlers.NewRouter(
		handlers.WithMiddlewares(
			observability.InjectLoggerMiddleware(logger.Named("http")),
			observability.TraceMiddleware(),
			observability.RecoveryMiddleware(logger.Named("http")),
			observability.RequestLoggerMiddleware(),
		),
		handlers.WithHealthHandlers(healthHandlers),
		handlers.WithProductRoutes(productHandlers.Routes),
		handlers.WithCategoryRoutes(productHandlers.CategoryRoutes),
		handlers.WithCartRoutes(cartHandlers.Routes),
		handlers.WithWishlistRoutes(wishlistHandlers.Routes),
		handlers.WithComparisonRoutes(comparisonHandlers.Routes),
		handlers.WithStoreMiddlewares(
			auth.SessionMiddleware(sessionManager, auth.CookieSettings{Name: cfg.Session.CookieName}),
			handlers.StoreMutationRateLimit(storeMutationLimit, storeMutationWindow),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("storefront api listening", zap.String("catalogSource", string(cfg.Catalog.Source)))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newSecretFetcher(ctx context.Context, logger *zap.Logger) (*secrets.Fetcher, error) {
	opts := []secrets.Option{
		secrets.WithLogger(logger.Named("secrets")),
		secrets.WithFallbackFile(envOrDefault("API_SECRET_FALLBACK_FILE", ".secrets.local")),
	}
	project := envOrDefault("API_SECRET_PROJECT_ID", os.Getenv("API_FIRESTORE_PROJECT_ID"))
	if project != "" {
		opts = append(opts, secrets.WithProject(project))
	}
	return secrets.NewFetcher(ctx, opts...)
}

func buildInfoFromEnv(started time.Time) handlers.BuildInfo {
	return handlers.BuildInfo{
		Version:     envOrDefault("API_BUILD_VERSION", "dev"),
		CommitSHA:   envOrDefault("API_BUILD_COMMIT_SHA", "unknown"),
		Environment: envOrDefault("API_ENVIRONMENT", "local"),
		StartedAt:   started,
	}
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func zapEventLogger(logger *zap.Logger) func(context.Context, string, map[string]any) {
	if logger == nil {
		return nil
	}
	return func(_ context.Context, event string, fields map[string]any) {
		zFields := make([]zap.Field, 0, len(fields)+1)
		zFields = append(zFields, zap.String("event", event))
		for k, v := range fields {
			zFields = append(zFields, zap.Any(k, v))
		}
		logger.Debug("service event", zFields...)
	}
}
