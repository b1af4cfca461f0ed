package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/rcoelho/marketplace-api/internal/api/httpjson"
	"github.com/rcoelho/marketplace-api/internal/domain"
	"github.com/rcoelho/marketplace-api/internal/service"
)

type contextKey string

const identityKey contextKey = "identity"

// Auth requires a "Bearer <token>" Authorization header. A missing token is
// 401; a token that fails verification is 403.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				httpjson.Error(w, http.StatusUnauthorized, "Authentication token required")
				return
			}

			identity, err := authService.ValidateToken(token)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
				httpjson.Error(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func GetIdentity(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*domain.Identity)
	return identity, ok
}
