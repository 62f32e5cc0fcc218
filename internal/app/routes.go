package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/seat-reservation-engine/api"
	"github.com/metinatakli/seat-reservation-engine/internal/jsonutil"
	appmiddleware "github.com/metinatakli/seat-reservation-engine/internal/middleware"
	"github.com/riandyrn/otelchi"
)

var _ api.ServerInterface = (*Application)(nil)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(appmiddleware.NotFoundHandler)
	r.MethodNotAllowed(appmiddleware.MethodNotAllowedHandler)

	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(appmiddleware.RecoverPanic(app.logger))
	r.Use(app.sessionManager.LoadAndSave)

	api.HandlerWithOptions(app, api.ChiServerOptions{
		BaseRouter:       r,
		Middlewares:      []api.MiddlewareFunc{app.authorize},
		ErrorHandlerFunc: app.invalidParamResponse,
	})

	r.Get("/openapi.json", app.GetOpenAPISpec)

	if app.webhookParser != nil {
		r.Post("/webhook/stripe", app.StripeWebhookHandler)
	}

	if app.config.Env == "dev" {
		r.Put("/dev/session", app.DevSessionHandler)
	}

	return r
}

// invalidParamResponse reports path and query parameters the generated
// router could not bind.
func (app *Application) invalidParamResponse(w http.ResponseWriter, r *http.Request, err error) {
	var formatErr *api.InvalidParamFormatError
	if errors.As(err, &formatErr) {
		app.badRequestResponse(w, r, fmt.Errorf("invalid %s parameter", formatErr.ParamName))
		return
	}

	app.badRequestResponse(w, r, err)
}

// GetOpenAPISpec serves the API description the router is generated from.
func (app *Application) GetOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	swagger, err := api.GetSwagger()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = jsonutil.WriteJSON(w, http.StatusOK, swagger, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
