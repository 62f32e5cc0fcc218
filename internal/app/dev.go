package app

import (
	"net/http"

	"github.com/metinatakli/seat-reservation-engine/internal/jsonutil"
)

type devSessionRequest struct {
	HolderId int    `json:"holderId" validate:"required,min=1"`
	Role     string `json:"role" validate:"omitempty,oneof=admin payment"`
}

// DevSessionHandler writes an identity into the caller's session. It is only
// routed in the dev environment, where no identity service is running.
func (app *Application) DevSessionHandler(w http.ResponseWriter, r *http.Request) {
	var input devSessionRequest
	err := jsonutil.ReadJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	err = app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), SessionKeyHolderId.String(), input.HolderId)
	if input.Role != "" {
		app.sessionManager.Put(r.Context(), SessionKeyRole.String(), input.Role)
	} else {
		app.sessionManager.Remove(r.Context(), SessionKeyRole.String())
	}

	w.WriteHeader(http.StatusNoContent)
}
