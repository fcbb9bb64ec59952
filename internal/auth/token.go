// Package auth implements the session-token subsystem: issuing signed,
// time-limited bearer tokens at login and verifying them on every admin
// request.
//
// Tokens are stateless HS256 JWTs. There is no server-side revocation
// list: a minted token stays valid until its expiry, and logout is a
// client-side discard. This is a documented limitation; the default TTL
// is kept short to bound the exposure.
package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mastergurukulam/apiserver/types"
)

// Claims is the decoded payload of a session token.
type Claims struct {
	// AdminID is the account the token was minted for.
	AdminID int

	// Role is the account's role at issuance time.
	Role types.Role

	// IssuedAt and ExpiresAt bound the token's validity window.
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type tokenClaims struct {
	Role types.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies session tokens against an injected
// secret. Verification is pure computation and safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the lifetime applied to newly issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue mints a signed token embedding the account id, role, issuance
// time, and expiry.
func (s *TokenService) Issue(adminID int, role types.Role) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(adminID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify decodes a token and checks its signature and expiry. It returns
// (nil, false) on any failure so callers respond with a uniform
// "unauthorized" regardless of whether the token was malformed, expired,
// or tampered with.
func (s *TokenService) Verify(tokenString string) (*Claims, bool) {
	parsed := tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &parsed, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	if !parsed.Role.Valid() {
		return nil, false
	}

	adminID, err := strconv.Atoi(strings.TrimSpace(parsed.Subject))
	if err != nil || adminID < 1 {
		return nil, false
	}

	claims := &Claims{
		AdminID: adminID,
		Role:    parsed.Role,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time
	}
	if parsed.ExpiresAt != nil {
		claims.ExpiresAt = parsed.ExpiresAt.Time
	}
	return claims, true
}

// Authorize reports whether the claims' role is in the allowed set.
// There is no role hierarchy; each caller passes its own explicit
// allow-list.
func Authorize(claims *Claims, allowed ...types.Role) bool {
	if claims == nil {
		return false
	}
	for _, role := range allowed {
		if claims.Role == role {
			return true
		}
	}
	return false
}
