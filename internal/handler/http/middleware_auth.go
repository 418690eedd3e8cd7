package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

// auth guards the sync API with bearer-token authentication. Tokens are
// minted by the platform's identity service; this engine only verifies
// signature, issuer, and expiry. On success the user ID from the token
// claims lands in the request context under [utils.UserIDCtxKey], which is
// how every sync operation learns whose queue and conflicts it works on.
// Any failure answers 401 and is logged through the request-scoped logger.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		token, err := utils.ValidateAndParseJWTToken(tokenString, h.app.TokenSignKey, h.app.TokenIssuer)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				log.Err(err).Msg("token expired")
				http.Error(w, "token is expired", http.StatusUnauthorized)
				return
			}
			log.Err(err).Msg("error occurred during parsing token")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		// Downstream handlers read the user ID from the context instead of
		// re-parsing the token.
		ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, token.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader splits an "Authorization: <scheme> <token>" header
// value and returns the token part. ErrInvalidAuthorizationHeader means the
// token part is missing entirely; ErrEmptyToken means it is present but
// empty.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	if parts[1] == "" {
		return "", ErrEmptyToken
	}

	return parts[1], nil
}
