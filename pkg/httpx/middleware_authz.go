package httpx

import "net/http"

// RequireSelf only lets a caller operate on their own resource. The path
// parameter named by param must match the authenticated user's id exactly.
// Must run after AuthnMiddleware.
func RequireSelf(param string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid := UserIDFromCtx(r.Context())
			if uid == "" || r.PathValue(param) != uid {
				WriteError(w, http.StatusForbidden, ErrCodeForbidden, "not allowed to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
