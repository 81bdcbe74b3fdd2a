package services

import (
	"context"
	"testing"
	"time"

	domain "github.com/peakform/storefront-api/internal/domain"
)

func TestComparisonServiceAddItemCopiesCompareFields(t *testing.T) {
	now := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	product := testCatalogProduct("prod-1", 2900)
	product.ShortDescription = "Magnesium glycinate for deeper sleep"
	product.Features = []string{"300mg elemental magnesium"}
	product.Benefits = []string{"Deeper sleep"}
	product.Ingredients = []string{"Magnesium glycinate"}
	product.Rating = 4.7

	var saved domain.Comparison
	repo := &stubComparisonRepository{
		getFunc: func(ctx context.Context, shopperID string) (domain.Comparison, error) {
			return domain.Comparison{}, &repositoryErrorStub{notFound: true}
		},
		saveFunc: func(ctx context.Context, comparison domain.Comparison) error {
			saved = comparison
			return nil
		},
	}
	finder := &stubProductFinder{
		getFunc: func(ctx context.Context, productID string) (Product, error) {
			return product, nil
		},
	}

	service := newTestComparisonService(t, repo, finder, now)

	comparison, err := service.AddItem(context.Background(), "shopper-1", "prod-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comparison.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(comparison.Items))
	}
	item := comparison.Items[0]
	if item.Description != product.ShortDescription {
		t.Fatalf("expected short description copied, got %q", item.Description)
	}
	if item.Rating != 4.7 {
		t.Fatalf("expected rating copied, got %v", item.Rating)
	}
	if len(item.Ingredients) != 1 {
		t.Fatalf("expected ingredients copied")
	}
	if !comparison.Open {
		t.Fatalf("expected tray opened after add")
	}
	if len(saved.Items) != 1 {
		t.Fatalf("expected persisted comparison")
	}
}

func TestComparisonServiceAddItemNoOpWhenFull(t *testing.T) {
	now := time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)
	saveCalls := 0
	repo := &stubComparisonRepository{
		getFunc: func(ctx context.Context, shopperID string) (domain.Comparison, error) {
			return domain.Comparison{
				ShopperID: "shopper-1",
				Items: []domain.ComparisonItem{
					{ProductID: "prod-1"},
					{ProductID: "prod-2"},
					{ProductID: "prod-3"},
				},
			}, nil
		},
		saveFunc: func(ctx context.Context, comparison domain.Comparison) error {
			saveCalls++
			return nil
		},
	}

	service := newTestComparisonService(t, repo, &stubProductFinder{}, now)

	comparison, err := service.AddItem(context.Background(), "shopper-1", "prod-4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comparison.Items) != 3 {
		t.Fatalf("expected tray unchanged, got %d items", len(comparison.Items))
	}
	if comparison.Contains("prod-4") {
		t.Fatalf("expected prod-4 not added")
	}
	if saveCalls != 0 {
		t.Fatalf("expected no save, got %d", saveCalls)
	}
}

func TestComparisonServiceAddItemIsIdempotentWhenFull(t *testing.T) {
	// Re-adding a member of a full tray must not trip the capacity check.
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	saveCalls := 0
	repo := &stubComparisonRepository{
		getFunc: func(ctx context.Context, shopperID string) (domain.Comparison, error) {
			return domain.Comparison{
				ShopperID: "shopper-1",
				Items: []domain.ComparisonItem{
					{ProductID: "prod-1"},
					{ProductID: "prod-2"},
					{ProductID: "prod-3"},
				},
			}, nil
		},
		saveFunc: func(ctx context.Context, comparison domain.Comparison) error {
			saveCalls++
			return nil
		},
	}

	service := newTestComparisonService(t, repo, &stubProductFinder{}, now)

	comparison, err := service.AddItem(context.Background(), "shopper-1", "prod-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comparison.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(comparison.Items))
	}
	if saveCalls != 0 {
		t.Fatalf("expected no save, got %d", saveCalls)
	}
}

func TestComparisonServiceRemoveItem(t *testing.T) {
	now := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
	repo := &stubComparisonRepository{
		getFunc: func(ctx context.Context, shopperID string) (domain.Comparison, error) {
			return domain.Comparison{
				ShopperID: "shopper-1",
				Items: []domain.ComparisonItem{
					{ProductID: "prod-1"},
					{ProductID: "prod-2"},
				},
			}, nil
		},
	}

	service := newTestComparisonService(t, repo, &stubProductFinder{}, now)

	comparison, err := service.RemoveItem(context.Background(), "shopper-1", "prod-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comparison.Items) != 1 || comparison.Items[0].ProductID != "prod-2" {
		t.Fatalf("unexpected items %+v", comparison.Items)
	}
}

func TestComparisonServiceToggleItemRespectsCapacity(t *testing.T) {
	now := time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC)
	repo := &stubComparisonRepository{
		getFunc: func(ctx context.Context, shopperID string) (domain.Comparison, error) {
			return domain.Comparison{
				ShopperID: "shopper-1",
				Items: []domain.ComparisonItem{
					{ProductID: "prod-1"},
					{ProductID: "prod-2"},
					{ProductID: "prod-3"},
				},
			}, nil
		},
	}

	service := newTestComparisonService(t, repo, &stubProductFinder{}, now)

	toggled, err := service.ToggleItem(context.Background(), "shopper-1", "prod-4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toggled.Contains("prod-4") || len(toggled.Items) != 3 {
		t.Fatalf("expected toggle-in at capacity to leave tray unchanged, got %+v", toggled.Items)
	}

	comparison, err := service.ToggleItem(context.Background(), "shopper-1", "prod-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comparison.Contains("prod-2") {
		t.Fatalf("expected prod-2 toggled out")
	}
}

func TestComparisonServiceClearDeletesDocument(t *testing.T) {
	now := time.Date(2026, 3, 4, 11, 30, 0, 0, time.UTC)
	deleted := ""
	repo := &stubComparisonRepository{
		deleteFunc: func(ctx context.Context, shopperID string) error {
			deleted = shopperID
			return nil
		},
	}

	service := newTestComparisonService(t, repo, &stubProductFinder{}, now)

	comparison, err := service.ClearComparison(context.Background(), "shopper-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "shopper-1" {
		t.Fatalf("expected delete for shopper-1, got %q", deleted)
	}
	if len(comparison.Items) != 0 {
		t.Fatalf("expected cleared tray")
	}
	if comparison.Open {
		t.Fatalf("expected tray closed after clear")
	}
}

func TestComparisonServiceClearToleratesMissingDocument(t *testing.T) {
	repo := &stubComparisonRepository{
		deleteFunc: func(ctx context.Context, shopperID string) error {
			return &repositoryErrorStub{notFound: true}
		},
	}

	service := newTestComparisonService(t, repo, &stubProductFinder{}, time.Now())

	if _, err := service.ClearComparison(context.Background(), "shopper-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestComparisonServiceSetOpen(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	var saved domain.Comparison
	repo := &stubComparisonRepository{
		getFunc: func(ctx context.Context, shopperID string) (domain.Comparison, error) {
			return domain.Comparison{ShopperID: "shopper-1"}, nil
		},
		saveFunc: func(ctx context.Context, comparison domain.Comparison) error {
			saved = comparison
			return nil
		},
	}

	service := newTestComparisonService(t, repo, &stubProductFinder{}, now)

	comparison, err := service.SetOpen(context.Background(), "shopper-1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !comparison.Open || !saved.Open {
		t.Fatalf("expected open persisted")
	}
}

func newTestComparisonService(t *testing.T, repo *stubComparisonRepository, finder *stubProductFinder, now time.Time) ComparisonService {
	t.Helper()
	service, err := NewComparisonService(ComparisonServiceDeps{
		Repository: repo,
		Catalog:    finder,
		Clock:      func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("unexpected error constructing comparison service: %v", err)
	}
	return service
}

type stubComparisonRepository struct {
	getFunc    func(ctx context.Context, shopperID string) (domain.Comparison, error)
	saveFunc   func(ctx context.Context, comparison domain.Comparison) error
	deleteFunc func(ctx context.Context, shopperID string) error
}

func (s *stubComparisonRepository) Get(ctx context.Context, shopperID string) (domain.Comparison, error) {
	if s.getFunc != nil {
		return s.getFunc(ctx, shopperID)
	}
	return domain.Comparison{}, &repositoryErrorStub{notFound: true}
}

func (s *stubComparisonRepository) Save(ctx context.Context, comparison domain.Comparison) error {
	if s.saveFunc != nil {
		return s.saveFunc(ctx, comparison)
	}
	return nil
}

func (s *stubComparisonRepository) Delete(ctx context.Context, shopperID string) error {
	if s.deleteFunc != nil {
		return s.deleteFunc(ctx, shopperID)
	}
	return nil
}
