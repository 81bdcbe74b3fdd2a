package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	domain "github.com/peakform/storefront-api/internal/domain"
	"github.com/peakform/storefront-api/internal/services"
)

// BuildInfo carries release metadata surfaced on the health endpoints.
type BuildInfo struct {
	Version     string
	CommitSHA   string
	Environment string
	StartedAt   time.Time
}

// HealthHandlers serves the /healthz liveness and /readyz readiness probes.
type HealthHandlers struct {
	system services.SystemService
	build  BuildInfo
	clock  func() time.Time
}

// HealthOption customises construction of HealthHandlers.
type HealthOption func(*HealthHandlers)

// WithHealthSystemService injects the system service used by readiness checks.
func WithHealthSystemService(svc services.SystemService) HealthOption {
	return func(h *HealthHandlers) {
		h.system = svc
	}
}

// WithHealthBuildInfo attaches release metadata to health responses.
func WithHealthBuildInfo(info BuildInfo) HealthOption {
	return func(h *HealthHandlers) {
		h.build = info
	}
}

// WithHealthClock overrides the clock, primarily for tests.
func WithHealthClock(clock func() time.Time) HealthOption {
	return func(h *HealthHandlers) {
		if clock != nil {
			h.clock = func() time.Time { return clock().UTC() }
		}
	}
}

// NewHealthHandlers constructs handlers for the health endpoints.
func NewHealthHandlers(opts ...HealthOption) *HealthHandlers {
	handlers := &HealthHandlers{
		build: BuildInfo{StartedAt: time.Now().UTC()},
		clock: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(handlers)
		}
	}
	return handlers
}

// Healthz reports process liveness without touching any dependency.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	now := h.clock()

	payload := map[string]any{
		"status":    string(domain.HealthStatusOK),
		"timestamp": now.Format(time.RFC3339),
	}
	if !h.build.StartedAt.IsZero() {
		payload["uptime"] = now.Sub(h.build.StartedAt).String()
	}
	if h.build.Version != "" {
		payload["version"] = h.build.Version
	}
	if h.build.CommitSHA != "" {
		payload["commitSha"] = h.build.CommitSHA
	}
	if h.build.Environment != "" {
		payload["environment"] = h.build.Environment
	}

	writeJSON(w, http.StatusOK, payload)
}

// Readyz probes the configured dependencies and reports aggregate readiness.
// A report that is anything but ok answers 503 so load balancers drain the
// instance while the catalog source or event broker is unreachable.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.system == nil {
		writeJSON(w, http.StatusOK, readinessPayload{
			Status:      string(domain.HealthStatusOK),
			GeneratedAt: h.clock().Format(time.RFC3339),
			Checks:      map[string]readinessCheckPayload{},
		})
		return
	}

	report, err := h.system.Health(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, readinessPayload{
			Status:      string(domain.HealthStatusError),
			GeneratedAt: h.clock().Format(time.RFC3339),
			Details:     []string{err.Error()},
		})
		return
	}

	payload := readinessPayload{
		Status:      string(report.Status),
		GeneratedAt: formatTimestamp(report.GeneratedAt),
		Checks:      make(map[string]readinessCheckPayload, len(report.Checks)),
	}
	for name, check := range report.Checks {
		payload.Checks[name] = readinessCheckPayload{
			Status:    string(check.Status),
			Detail:    check.Detail,
			Error:     check.Error,
			LatencyMS: check.Latency.Milliseconds(),
			CheckedAt: formatTimestamp(check.CheckedAt),
		}
		if check.Error != "" {
			payload.Details = append(payload.Details, fmt.Sprintf("%s: %s", name, check.Error))
		}
	}
	sort.Strings(payload.Details)

	status := http.StatusOK
	if report.Status != domain.HealthStatusOK {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, payload)
}

type readinessPayload struct {
	Status      string                           `json:"status"`
	GeneratedAt string                           `json:"generatedAt,omitempty"`
	Checks      map[string]readinessCheckPayload `json:"checks,omitempty"`
	Details     []string                         `json:"details,omitempty"`
}

type readinessCheckPayload struct {
	Status    string `json:"status"`
	Detail    string `json:"detail,omitempty"`
	Error     string `json:"error,omitempty"`
	LatencyMS int64  `json:"latencyMs"`
	CheckedAt string `json:"checkedAt,omitempty"`
}
