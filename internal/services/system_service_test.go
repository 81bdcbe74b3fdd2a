package services

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/peakform/storefront-api/internal/domain"
)

type stubHealthRepository struct {
	report domain.HealthReport
	err    error
	calls  int
}

func (s *stubHealthRepository) Collect(ctx context.Context) (domain.HealthReport, error) {
	s.calls++
	return s.report, s.err
}

func TestSystemServiceHealthFillsGeneratedAt(t *testing.T) {
	now := time.Date(2026, 3, 6, 8, 0, 0, 0, time.UTC)
	repo := &stubHealthRepository{
		report: domain.HealthReport{
			Status: domain.HealthStatusOK,
			Checks: map[string]domain.HealthCheck{
				"firestore": {Status: domain.HealthStatusOK},
			},
		},
	}

	service, err := NewSystemService(SystemServiceDeps{
		HealthRepository: repo,
		Clock:            func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("unexpected error constructing system service: %v", err)
	}

	report, err := service.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.GeneratedAt.Equal(now) {
		t.Fatalf("expected generated at %v, got %v", now, report.GeneratedAt)
	}
	if repo.calls != 1 {
		t.Fatalf("expected one collect call, got %d", repo.calls)
	}
}

func TestSystemServiceHealthDerivesStatus(t *testing.T) {
	repo := &stubHealthRepository{
		report: domain.HealthReport{
			Checks: map[string]domain.HealthCheck{
				"firestore": {Status: domain.HealthStatusOK},
				"pubsub":    {Status: domain.HealthStatusDegraded},
			},
		},
	}

	service, err := NewSystemService(SystemServiceDeps{HealthRepository: repo})
	if err != nil {
		t.Fatalf("unexpected error constructing system service: %v", err)
	}

	report, err := service.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Status != domain.HealthStatusDegraded {
		t.Fatalf("expected degraded, got %q", report.Status)
	}
}

func TestSystemServiceHealthErrorWins(t *testing.T) {
	repo := &stubHealthRepository{
		report: domain.HealthReport{
			Checks: map[string]domain.HealthCheck{
				"firestore": {Status: domain.HealthStatusError},
				"pubsub":    {Status: domain.HealthStatusOK},
			},
		},
	}

	service, err := NewSystemService(SystemServiceDeps{HealthRepository: repo})
	if err != nil {
		t.Fatalf("unexpected error constructing system service: %v", err)
	}

	report, err := service.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Status != domain.HealthStatusError {
		t.Fatalf("expected error status, got %q", report.Status)
	}
}

func TestSystemServiceHealthPropagatesCollectError(t *testing.T) {
	repo := &stubHealthRepository{err: errors.New("collect failed")}

	service, err := NewSystemService(SystemServiceDeps{HealthRepository: repo})
	if err != nil {
		t.Fatalf("unexpected error constructing system service: %v", err)
	}

	if _, err := service.Health(context.Background()); err == nil {
		t.Fatalf("expected collect error propagated")
	}
}

func TestNewSystemServiceRequiresRepository(t *testing.T) {
	if _, err := NewSystemService(SystemServiceDeps{}); err == nil {
		t.Fatalf("expected error for missing health repository")
	}
}
