package app

import "net/http"

type sessionKey string

// The identity service writes these keys into the shared session store.
const (
	SessionKeyHolderId = sessionKey("holderID")
	SessionKeyRole     = sessionKey("role")
)

const (
	RoleAdmin   = "admin"
	RolePayment = "payment"
)

func (s sessionKey) String() string {
	return string(s)
}

func (app *Application) contextGetHolderId(r *http.Request) int {
	holderId, ok := r.Context().Value(SessionKeyHolderId).(int)
	if !ok {
		panic("missing holder id from context")
	}

	return holderId
}
