package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/oklog/ulid/v2"
)

const (
	defaultSessionTTL = 30 * 24 * time.Hour
	minSecretLength   = 16
)

var (
	// ErrSessionInvalid signals that the presented session token failed verification.
	ErrSessionInvalid = errors.New("auth: session token invalid")
	// ErrSessionExpired signals that the presented session token has expired.
	ErrSessionExpired = errors.New("auth: session token expired")
)

// SessionManager mints and verifies signed guest session tokens. Tokens are
// HS256 JWTs whose subject is the shopper ID.
type SessionManager struct {
	secret []byte
	issuer string
	ttl    time.Duration

	clock func() time.Time
	newID func() string
}

// SessionOption customises SessionManager behaviour.
type SessionOption func(*SessionManager)

// WithSessionClock injects a custom clock primarily for tests.
func WithSessionClock(clock func() time.Time) SessionOption {
	return func(m *SessionManager) {
		if clock != nil {
			m.clock = func() time.Time { return clock().UTC() }
		}
	}
}

// WithSessionIDGenerator overrides shopper ID generation.
func WithSessionIDGenerator(gen func() string) SessionOption {
	return func(m *SessionManager) {
		if gen != nil {
			m.newID = gen
		}
	}
}

// WithSessionTTL overrides the token lifetime.
func WithSessionTTL(ttl time.Duration) SessionOption {
	return func(m *SessionManager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// NewSessionManager constructs a SessionManager with the given signing secret and issuer.
func NewSessionManager(secret, issuer string, opts ...SessionOption) (*SessionManager, error) {
	secret = strings.TrimSpace(secret)
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("auth: session secret must be at least %d characters", minSecretLength)
	}
	issuer = strings.TrimSpace(issuer)
	if issuer == "" {
		return nil, errors.New("auth: session issuer is required")
	}

	manager := &SessionManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    defaultSessionTTL,
		clock:  func() time.Time { return time.Now().UTC() },
		newID:  func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(manager)
		}
	}
	return manager, nil
}

// Issue mints a fresh identity with a new shopper ID and returns its signed token.
func (m *SessionManager) Issue() (*Identity, string, error) {
	now := m.clock()
	identity := &Identity{
		ShopperID: m.newID(),
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
		Fresh:     true,
	}

	claims := jwt.RegisteredClaims{
		Subject:   identity.ShopperID,
		Issuer:    m.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(identity.ExpiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, "", fmt.Errorf("auth: sign session token: %w", err)
	}
	return identity, signed, nil
}

// Verify validates the signed token and returns the identity it carries.
func (m *SessionManager) Verify(tokenString string) (*Identity, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrSessionInvalid
	}

	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	_, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}

	if claims.Issuer != m.issuer || strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrSessionInvalid
	}

	identity := &Identity{ShopperID: claims.Subject}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

// TTL reports the configured session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}
