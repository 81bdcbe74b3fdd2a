package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domain "github.com/peakform/storefront-api/internal/domain"
	"github.com/peakform/storefront-api/internal/services"
)

func TestHealthzIncludesBuildInfo(t *testing.T) {
	started := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	handler := NewHealthHandlers(
		WithHealthBuildInfo(BuildInfo{
			Version:     "1.4.0",
			CommitSHA:   "abc1234",
			Environment: "staging",
			StartedAt:   started,
		}),
		WithHealthClock(func() time.Time { return now }),
	)

	rec := httptest.NewRecorder()
	handler.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	payload := decodeResponse(t, rec)
	if payload["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", payload["status"])
	}
	if payload["version"] != "1.4.0" || payload["commitSha"] != "abc1234" || payload["environment"] != "staging" {
		t.Fatalf("unexpected build info %v", payload)
	}
	if payload["uptime"] != "1h30m0s" {
		t.Fatalf("expected uptime 1h30m0s, got %v", payload["uptime"])
	}
}

func TestReadyzOKWithoutSystemService(t *testing.T) {
	handler := NewHealthHandlers()

	rec := httptest.NewRecorder()
	handler.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	payload := decodeResponse(t, rec)
	if payload["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", payload["status"])
	}
}

func TestReadyzReportsDegradedDependencies(t *testing.T) {
	generated := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	system := &stubSystemService{
		healthFunc: func(ctx context.Context) (services.HealthReport, error) {
			return services.HealthReport{
				Status:      domain.HealthStatusDegraded,
				GeneratedAt: generated,
				Checks: map[string]domain.HealthCheck{
					"firestore": {Status: domain.HealthStatusOK, Latency: 12 * time.Millisecond, CheckedAt: generated},
					"pubsub":    {Status: domain.HealthStatusDegraded, Error: "publish failed", CheckedAt: generated},
				},
			}, nil
		},
	}
	handler := NewHealthHandlers(WithHealthSystemService(system))

	rec := httptest.NewRecorder()
	handler.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	payload := decodeResponse(t, rec)
	if payload["status"] != "degraded" {
		t.Fatalf("expected degraded status, got %v", payload["status"])
	}
	checks := payload["checks"].(map[string]any)
	if len(checks) != 2 {
		t.Fatalf("expected 2 checks, got %d", len(checks))
	}
	pubsub := checks["pubsub"].(map[string]any)
	if pubsub["error"] != "publish failed" {
		t.Fatalf("unexpected pubsub check %v", pubsub)
	}
	details := payload["details"].([]any)
	if len(details) != 1 || details[0] != "pubsub: publish failed" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestReadyzMapsSystemError(t *testing.T) {
	system := &stubSystemService{
		healthFunc: func(ctx context.Context) (services.HealthReport, error) {
			return services.HealthReport{}, errors.New("health probe aborted")
		},
	}
	handler := NewHealthHandlers(WithHealthSystemService(system))

	rec := httptest.NewRecorder()
	handler.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	payload := decodeResponse(t, rec)
	if payload["status"] != "error" {
		t.Fatalf("expected error status, got %v", payload["status"])
	}
	details := payload["details"].([]any)
	if len(details) != 1 || details[0] != "health probe aborted" {
		t.Fatalf("unexpected details %v", details)
	}
}
