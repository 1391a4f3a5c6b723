package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/AlaBhs/kanban-devops/logging"
	"github.com/AlaBhs/kanban-devops/models"
	"github.com/AlaBhs/kanban-devops/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const principalKey contextKey = "principal"

// PrincipalFromContext returns the caller identity stored by JWTAuthMiddleware.
func PrincipalFromContext(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(principalKey).(models.Principal)
	return p, ok
}

// JWTAuthMiddleware verifies the bearer token and makes the resolved
// principal available to handlers through the request context. The role in
// the token is trusted until expiry; there is no database re-check here.
func JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			logging.Logger.Warnf("Event ID: JWT_AUTH_MISSING_HEADER, Description: No bearer token on %s %s", r.Method, r.URL.Path)
			http.Error(w, "No token provided", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateToken(tokenStr)
		if err != nil {
			logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Invalid token on %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		accountID, err := primitive.ObjectIDFromHex(claims.ID)
		if err != nil {
			logging.Logger.Warnf("Event ID: JWT_AUTH_BAD_SUBJECT, Description: Token carries malformed account id on %s %s", r.Method, r.URL.Path)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		principal := models.Principal{ID: accountID, Role: claims.Role}
		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
