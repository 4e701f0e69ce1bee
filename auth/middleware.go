// Package auth implements the authentication and authorization gates and the
// token endpoints behind them. The gates are plain chi middleware composed in
// a fixed order: RequireAuth verifies the bearer token and attaches the
// principal, RequireRole checks the principal's role. Either failing is
// terminal for the request.
package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Anse-dev/todo-list-app/api"
	"github.com/Anse-dev/todo-list-app/apperror"
	"github.com/Anse-dev/todo-list-app/config"
)

// Claims is the JWT payload: the principal's id and role plus the registered
// claims. TokenType distinguishes access from refresh tokens.
type Claims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// RequireAuth is the authentication gate. A missing Authorization header is a
// 401; a header that is present but does not verify is a 403. On success the
// decoded claims are attached to the request context for RequireRole and the
// handlers downstream.
func RequireAuth(cfg *config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.WriteError(w, r, apperror.NewAuthError("Unauthorized", nil))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				api.WriteError(w, r, apperror.NewForbiddenError("Invalid token", nil))
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				api.WriteError(w, r, apperror.NewForbiddenError("Invalid token", err))
				return
			}
			if claims.TokenType != tokenTypeAccess {
				api.WriteError(w, r, apperror.NewForbiddenError("Invalid token", nil))
				return
			}

			ctx := NewContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole is the authorization gate. It assumes RequireAuth ran earlier in
// the chain; a request without an attached principal, or whose role is not in
// the allowed set, is rejected with 403.
func RequireRole(roles ...string) func(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || !allowed[claims.Role] {
				api.WriteError(w, r, apperror.NewForbiddenError("Forbidden", nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
