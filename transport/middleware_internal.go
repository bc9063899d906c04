package transport

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/community-market/constant"
	"github.com/muhammadheryan/community-market/utils/errors"
)

// InternalMiddleware checks for static API key in header. An empty key
// disables the internal routes.
func InternalMiddleware(apiKey string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if apiKey == "" || !ok || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
				writeError(w, errors.SetCustomError(constant.ErrForbidden))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
