package app

import (
	"context"
	"net/http"

	"github.com/metinatakli/seat-reservation-engine/api"
)

// authorize enforces the security requirement the generated router attached
// to the request context. Operations without one pass through.
func (app *Application) authorize(next http.Handler) http.Handler {
	holder := app.requireHolder(next)
	admin := app.requireRole(RoleAdmin)(next)
	payment := app.requireRole(RolePayment)(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		switch {
		case ctx.Value(api.HolderSessionScopes) != nil:
			holder.ServeHTTP(w, r)
		case ctx.Value(api.AdminSessionScopes) != nil:
			admin.ServeHTTP(w, r)
		case ctx.Value(api.PaymentSessionScopes) != nil:
			payment.ServeHTTP(w, r)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (app *Application) requireHolder(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		holderId := app.sessionManager.GetInt(r.Context(), SessionKeyHolderId.String())
		if holderId == 0 {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), SessionKeyHolderId, holderId)
		r = r.WithContext(ctx)

		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !app.sessionManager.Exists(r.Context(), SessionKeyRole.String()) {
				app.unauthorizedAccessResponse(w, r)
				return
			}

			if app.sessionManager.GetString(r.Context(), SessionKeyRole.String()) != role {
				app.forbiddenResponse(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
