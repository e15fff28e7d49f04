package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenAbsent  = errors.New("session token absent")
	ErrTokenInvalid = errors.New("session token invalid")
)

// Claims is the signed session payload: user id, username and expiry.
type Claims struct {
	UserID   uint64 `json:"userid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed session tokens. Verification
// is stateless; the service holds no per-session state.
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

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a session token for the given user.
func (s *TokenService) Issue(userID uint64, username string) (string, time.Time, error) {
	exp := time.Now().Add(s.ttl)
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	return signed, exp, err
}

// Verify checks a bearer token and returns its claims. Every failure mode is
// reported to the caller as ErrTokenInvalid (or ErrTokenAbsent for an empty
// token); the FailureReason distinguishes expired, forged and malformed
// tokens for diagnostics.
func (s *TokenService) Verify(tokenStr string) (*Claims, FailureReason, error) {
	if tokenStr == "" {
		return nil, ReasonAbsent, ErrTokenAbsent
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ReasonExpired, ErrTokenInvalid
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ReasonBadSignature, ErrTokenInvalid
		default:
			return nil, ReasonMalformed, ErrTokenInvalid
		}
	}

	if !token.Valid {
		return nil, ReasonMalformed, ErrTokenInvalid
	}

	return claims, "", nil
}
