package crypto

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const issuer = "finance-dashboard"

var ErrInvalidToken = errors.New("invalid or expired token")

type SessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// tokens signs and verifies HS256 session tokens.
type tokens struct {
	secret   []byte
	ttl      time.Duration
	clockNow func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *tokens {
	return &tokens{
		secret:   []byte(secret),
		ttl:      ttl,
		clockNow: time.Now,
	}
}

func (t *tokens) TTL() time.Duration { return t.ttl }

// Issue returns a signed token for userID and its expiry.
func (t *tokens) Issue(userID int64, email string) (string, time.Time, error) {
	now := t.clockNow()
	exp := now.Add(t.ttl)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks signature and expiry and returns the user id.
func (t *tokens) Verify(token string) (int64, error) {
	var claims SessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}
	if claims.Issuer != issuer {
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}
