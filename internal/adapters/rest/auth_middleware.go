package rest

import (
	"context"
	"net/http"
	"strings"

	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port/usecases_port"
)

type contextKey string

const claimsKey = contextKey("claims")

// ClaimsFromContext returns the authenticated identity placed by AuthMiddleware.
func ClaimsFromContext(ctx context.Context) (domain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(domain.Claims)
	return claims, ok
}

// AuthMiddleware validates the bearer token and puts the claims into the
// request context. EventSource cannot set headers, so the token is also
// accepted as a "token" query parameter.
func AuthMiddleware(validateUC usecases_port.ValidateTokenUseCasePort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if header := r.Header.Get("Authorization"); header != "" {
				parts := strings.SplitN(header, " ", 2)
				if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
					WriteJSONError(w, http.StatusUnauthorized, "Authentication error: malformed Authorization header")
					return
				}
				token = parts[1]
			} else {
				token = r.URL.Query().Get("token")
			}

			if token == "" {
				WriteJSONError(w, http.StatusUnauthorized, "Authentication error: token is missing")
				return
			}

			claims, err := validateUC.Execute(r.Context(), token)
			if err != nil {
				WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, *claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
