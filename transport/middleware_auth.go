package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/community-market/application/user"
	"github.com/muhammadheryan/community-market/constant"
	utilsContext "github.com/muhammadheryan/community-market/utils/context"
	"github.com/muhammadheryan/community-market/utils/errors"
)

// AuthMiddleware returns a middleware that validates JWT sessions using UserApp.
// It allows public endpoints (like /login, /register, /swagger/, product
// browsing) without token.
func AuthMiddleware(userApp user.UserApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicRequest(r) {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			p, err := userApp.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			next.ServeHTTP(w, r.WithContext(utilsContext.WithPrincipal(r.Context(), p)))
		})
	}
}

// isPublicRequest defines which endpoints are public (no auth required).
// /internal/ is guarded by InternalMiddleware instead.
func isPublicRequest(r *http.Request) bool {
	path := r.URL.Path
	if strings.HasPrefix(path, "/swagger/") || strings.HasPrefix(path, "/internal/") {
		return true
	}
	if path == "/login" || path == "/register" {
		return true
	}

	if r.Method != http.MethodGet {
		return false
	}
	if path == "/products" {
		return true
	}
	// GET /products/{id}, but not /products/{id}/reservations
	rest := strings.TrimPrefix(path, "/products/")
	return rest != path && rest != "" && !strings.Contains(rest, "/")
}
