package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/crucial707/movies-api/internal/auth"
)

type key string

const claimKey key = "claim"

// RequireToken rejects requests without a valid "JWT <token>" (or Bearer) Authorization
// header and stores the verified claim in the request context.
func RequireToken(issuer *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			tokenStr, ok := auth.TokenFromHeader(header)
			if !ok {
				unauthorized(w, "malformed authorization header")
				return
			}

			claim, err := issuer.Verify(tokenStr)
			if err != nil {
				if errors.Is(err, auth.ErrExpiredToken) {
					unauthorized(w, "token expired")
					return
				}
				unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimKey, claim)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaim returns the verified token claim stored by RequireToken.
func GetClaim(ctx context.Context) (*auth.Claim, bool) {
	claim, ok := ctx.Value(claimKey).(*auth.Claim)
	return claim, ok
}

// WithClaim returns ctx carrying claim, as RequireToken would after verification.
func WithClaim(ctx context.Context, claim *auth.Claim) context.Context {
	return context.WithValue(ctx, claimKey, claim)
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `JWT realm="movies"`)
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
