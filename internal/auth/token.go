package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// HeaderPrefix is prepended to issued tokens when handed to clients.
const HeaderPrefix = "JWT "

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claim is the identity carried by a token.
type Claim struct {
	UserID   string
	Username string
	Expiry   time.Time
}

type tokenClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens. It holds no per-token state.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}
}

// TTL is the lifetime given to issued tokens.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for c. c.Expiry is ignored; the issuer's TTL applies.
func (i *Issuer) Issue(c Claim) (string, error) {
	now := i.now()
	claims := tokenClaims{
		UserID:   c.UserID,
		Username: c.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of tokenStr and returns its claim.
func (i *Issuer) Verify(tokenStr string) (*Claim, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return &Claim{
		UserID:   claims.UserID,
		Username: claims.Username,
		Expiry:   claims.ExpiresAt.Time,
	}, nil
}

// TokenFromHeader extracts the raw token from an Authorization header value.
// Both "JWT <token>" and "Bearer <token>" are accepted.
func TokenFromHeader(header string) (string, bool) {
	for _, prefix := range []string{HeaderPrefix, "Bearer "} {
		if strings.HasPrefix(header, prefix) {
			tok := strings.TrimSpace(strings.TrimPrefix(header, prefix))
			return tok, tok != ""
		}
	}
	return "", false
}
