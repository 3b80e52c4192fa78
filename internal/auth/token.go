package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/commerce-admin/internal/domain"
)

// TokenLifetime is the fixed validity window of an access token. There is
// no refresh mechanism and no revocation; a token is honored until expiry.
const TokenLifetime = time.Hour

// VerificationKind classifies why a token failed verification.
type VerificationKind string

const (
	// VerificationMalformed covers undecodable tokens and bad signatures.
	VerificationMalformed VerificationKind = "MALFORMED"
	// VerificationExpired covers structurally valid but expired tokens.
	VerificationExpired VerificationKind = "EXPIRED"
)

// VerificationError is the failure outcome of Verify. The message is an
// observable contract and is surfaced to clients verbatim.
type VerificationError struct {
	Kind    VerificationKind
	Message string
}

func (e *VerificationError) Error() string {
	return e.Message
}

// TokenManager handles issuing and verifying JWT access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a manager signing with the given secret. A
// non-positive ttl falls back to TokenLifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = TokenLifetime
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Claims describes the JWT payload: account id, email and role set.
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Identity converts the claims back to a domain identity.
func (c *Claims) Identity() domain.Identity {
	return domain.Identity{
		ID:    c.Subject,
		Email: c.Email,
		Roles: domain.RolesFromStrings(c.Roles),
	}
}

// Issue builds and signs a token carrying the identity claims.
func (tm *TokenManager) Issue(identity domain.Identity) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Email: identity.Email,
		Roles: domain.RolesToStrings(identity.Roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify checks signature and expiry. Expired tokens report
// VerificationExpired; everything else, including bad signatures,
// reports VerificationMalformed.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, *VerificationError) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, &VerificationError{Kind: VerificationExpired, Message: "jwt expired"}
		}
		return nil, &VerificationError{Kind: VerificationMalformed, Message: "jwt malformed"}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, &VerificationError{Kind: VerificationMalformed, Message: "jwt malformed"}
	}
	return claims, nil
}
