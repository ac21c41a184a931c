package http

import (
	"errors"
	"net/http"

	"github.com/mercatohq/mercato/internal/mercato/store"
	"github.com/mercatohq/mercato/pkg/httpx"
	"github.com/mercatohq/mercato/pkg/slogx"
	"github.com/mercatohq/mercato/pkg/storesdk"
)

// requireActiveUser re-checks the token subject against storage on every
// authenticated request. A signature check alone is not enough: tokens
// outlive account state, and a soft-deleted or hard-deleted user holds a
// verifiable token until it expires. That token must stop working the
// moment the account does.
func requireActiveUser(st store.Store) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			user, err := st.Users().GetUserByID(ctx, httpx.UserIDFromCtx(ctx))
			switch {
			case errors.Is(err, store.ErrNotFound):
				writeInactiveAccount(w)
			case err != nil:
				log.Error("active-user check failed", "err", err)
				storesdk.ErrServerError.WriteError(w)
			case !user.IsActive:
				writeInactiveAccount(w)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func writeInactiveAccount(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate",
		`Bearer error="invalid_token", error_description="account is inactive or no longer exists"`)
	storesdk.ErrInvalidToken.
		WithDescription("account is inactive or no longer exists").
		WriteError(w)
}
