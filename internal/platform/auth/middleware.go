package auth

import (
	"net/http"
	"strings"
)

// CookieSettings controls how the session cookie is written.
type CookieSettings struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
}

func (c CookieSettings) withDefaults() CookieSettings {
	if strings.TrimSpace(c.Name) == "" {
		c.Name = "sf_session"
	}
	if c.SameSite == 0 {
		c.SameSite = http.SameSiteLaxMode
	}
	return c
}

// SessionMiddleware attaches a shopper identity to every request. A valid
// session token from the cookie or Authorization header is honoured; otherwise
// a fresh identity is minted and its cookie set on the response. Requests are
// never rejected for session problems since every shopper starts anonymous.
func SessionMiddleware(manager *SessionManager, cookie CookieSettings) func(http.Handler) http.Handler {
	cookie = cookie.withDefaults()
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager == nil {
				next.ServeHTTP(w, r)
				return
			}

			var identity *Identity
			if token := sessionToken(r, cookie.Name); token != "" {
				if verified, err := manager.Verify(token); err == nil {
					identity = verified
				}
			}

			if identity == nil {
				fresh, signed, err := manager.Issue()
				if err != nil {
					// Leave the request anonymous; store handlers reject
					// missing shopper IDs themselves.
					next.ServeHTTP(w, r)
					return
				}
				identity = fresh
				http.SetCookie(w, &http.Cookie{
					Name:     cookie.Name,
					Value:    signed,
					Path:     "/",
					MaxAge:   int(manager.TTL().Seconds()),
					HttpOnly: true,
					Secure:   cookie.Secure,
					SameSite: cookie.SameSite,
				})
			}

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request, cookieName string) string {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}
