package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ec5/ec5-api/internal/domain"
	jwtinfra "github.com/ec5/ec5-api/internal/infrastructure/jwt"
)

type contextKey string

const ClaimsKey contextKey = "claims"

// TokenCookie holds the session token for browser clients.
const TokenCookie = "ec5_token"

type tokenVerifier interface {
	Verify(token string) (*jwtinfra.Claims, error)
}

// Auth validates the session token (Bearer header first, then the
// ec5_token cookie) and injects its claims into the request context.
// Failures go through resp: ec5_77 for an expired token, ec5_70 otherwise.
func Auth(v tokenVerifier, resp *ErrorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := tokenFromRequest(r)
			if tokenStr == "" {
				resp.Respond(w, r, domain.CodeNotLoggedIn, http.StatusUnauthorized)
				return
			}
			claims, err := v.Verify(tokenStr)
			if errors.Is(err, jwtinfra.ErrExpired) {
				resp.Respond(w, r, domain.CodeSessionExpired, http.StatusUnauthorized)
				return
			}
			if err != nil {
				resp.Respond(w, r, domain.CodeNotLoggedIn, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(TokenCookie); err == nil {
		return c.Value
	}
	return ""
}

// ClaimsFromContext extracts JWT claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.Claims, bool) {
	c, ok := ctx.Value(ClaimsKey).(*jwtinfra.Claims)
	return c, ok
}
