package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "unit-test-session-secret"

func newTestManager(t *testing.T, opts ...SessionOption) *SessionManager {
	t.Helper()
	manager, err := NewSessionManager(testSecret, "storefront-api", opts...)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return manager
}

func TestSessionIssueAndVerify(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	manager := newTestManager(t,
		WithSessionClock(func() time.Time { return now }),
		WithSessionIDGenerator(func() string { return "shopper-1" }),
	)

	originalTimeFunc := jwt.TimeFunc
	jwt.TimeFunc = func() time.Time { return now }
	t.Cleanup(func() { jwt.TimeFunc = originalTimeFunc })

	identity, token, err := manager.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if identity.ShopperID != "shopper-1" {
		t.Fatalf("unexpected shopper id: %s", identity.ShopperID)
	}
	if !identity.Fresh {
		t.Fatalf("expected fresh identity")
	}

	verified, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if verified.ShopperID != "shopper-1" {
		t.Fatalf("unexpected verified shopper id: %s", verified.ShopperID)
	}
	if verified.Fresh {
		t.Fatalf("verified identity must not be fresh")
	}
}

func TestSessionVerifyExpired(t *testing.T) {
	issued := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	manager := newTestManager(t,
		WithSessionClock(func() time.Time { return issued }),
		WithSessionTTL(time.Hour),
	)

	_, token, err := manager.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	originalTimeFunc := jwt.TimeFunc
	jwt.TimeFunc = func() time.Time { return issued.Add(2 * time.Hour) }
	t.Cleanup(func() { jwt.TimeFunc = originalTimeFunc })

	if _, err := manager.Verify(token); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestSessionVerifyWrongSecret(t *testing.T) {
	manager := newTestManager(t)
	other, err := NewSessionManager("another-session-secret", "storefront-api")
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}

	_, token, err := other.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := manager.Verify(token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestSessionVerifyWrongIssuer(t *testing.T) {
	other, err := NewSessionManager(testSecret, "someone-else")
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	_, token, err := other.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	manager := newTestManager(t)
	if _, err := manager.Verify(token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestNewSessionManagerRejectsShortSecret(t *testing.T) {
	if _, err := NewSessionManager("short", "storefront-api"); err == nil {
		t.Fatalf("expected error for short secret")
	}
}

func TestSessionMiddlewareMintsIdentity(t *testing.T) {
	manager := newTestManager(t, WithSessionIDGenerator(func() string { return "minted" }))

	var seen *Identity
	handler := SessionMiddleware(manager, CookieSettings{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	if seen == nil || seen.ShopperID != "minted" {
		t.Fatalf("expected minted identity, got %+v", seen)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sf_session" {
		t.Fatalf("expected session cookie, got %v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatalf("expected HttpOnly cookie")
	}
}

func TestSessionMiddlewareHonoursExistingCookie(t *testing.T) {
	manager := newTestManager(t, WithSessionIDGenerator(func() string { return "original" }))
	_, token, err := manager.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var seen *Identity
	handler := SessionMiddleware(manager, CookieSettings{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "sf_session", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen == nil || seen.ShopperID != "original" {
		t.Fatalf("expected original identity, got %+v", seen)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("expected no new cookie for valid session")
	}
}

func TestSessionMiddlewareBearerToken(t *testing.T) {
	manager := newTestManager(t, WithSessionIDGenerator(func() string { return "bearer-shopper" }))
	_, token, err := manager.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var seen *Identity
	handler := SessionMiddleware(manager, CookieSettings{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/wishlist", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen == nil || seen.ShopperID != "bearer-shopper" {
		t.Fatalf("expected bearer identity, got %+v", seen)
	}
}
