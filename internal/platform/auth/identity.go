package auth

import (
	"context"
	"time"
)

// Identity captures the guest shopper principal carried by a session token.
// Shoppers are anonymous; the ID exists only to namespace their stored state.
type Identity struct {
	ShopperID string
	IssuedAt  time.Time
	ExpiresAt time.Time

	// Fresh marks identities minted during this request, meaning no prior
	// session cookie was presented or the presented one failed verification.
	Fresh bool
}

type contextKey string

const identityContextKey contextKey = "github.com/peakform/storefront-api/internal/platform/auth/identity"

// WithIdentity stores the identity within the context for downstream handlers.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext retrieves the identity previously stored in context.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}

// ShopperIDFromContext returns the shopper ID or "" when no identity is present.
func ShopperIDFromContext(ctx context.Context) string {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return ""
	}
	return identity.ShopperID
}
