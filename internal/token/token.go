package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/Raulcudris/microservices-fargate-demo/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the identity payload carried inside a token. Tokens are
// self-contained: downstream services can read the claims without calling
// back to the issuer.
type Claims struct {
	UserID uint   `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens with an HMAC-SHA256 secret shared only
// among trusted services.
type Codec struct {
	secret []byte
	leeway time.Duration
}

type Option func(*Codec)

// WithLeeway tolerates the given clock skew when checking expiry.
func WithLeeway(d time.Duration) Option {
	return func(c *Codec) {
		c.leeway = d
	}
}

func NewCodec(secret string, opts ...Option) *Codec {
	c := &Codec{secret: []byte(secret)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Issue mints a token for the user with the given TTL. The JTI is the
// handle used for revocation.
func (c *Codec) Issue(user *model.User, ttl time.Duration) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return raw, claims, nil
}

// Parse verifies signature and expiry and returns the embedded claims.
func (c *Codec) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(c.leeway),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, model.ErrExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, model.ErrMalformed
		default:
			return nil, model.ErrInvalidToken
		}
	}
	return claims, nil
}
