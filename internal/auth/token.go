package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/bank-auth-service/internal/domain"
)

// TokenManager handles issuing and validating JWT session tokens. The
// signing secret is process-wide configuration with no fallback; the
// constructor refuses an empty secret.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// ErrEmptySecret is returned when a TokenManager is built without a key.
var ErrEmptySecret = errors.New("token signing secret must not be empty")

// NewTokenManager builds a new manager.
func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenManager{secret: []byte(secret), now: time.Now}, nil
}

// WithClock overrides the time source. Used by tests to verify expiry
// without sleeping.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// Claims describes the JWT payload. Type carries exactly one principal
// discriminator per token.
type Claims struct {
	SubjectID string               `json:"sub"`
	Type      domain.PrincipalType `json:"type"`
	Role      *domain.EmployeeRole `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken builds and signs a JWT for the subject with the given
// lifetime.
func (tm *TokenManager) GenerateToken(subjectID string, principalType domain.PrincipalType, role *domain.EmployeeRole, ttl time.Duration) (string, time.Time, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(ttl)
	claims := &Claims{
		SubjectID: subjectID,
		Type:      principalType,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates and returns claims. Expired or foreign-signed
// tokens are rejected.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return tm.now() }))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
