package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/metinatakli/seat-reservation-engine/api"
	"github.com/metinatakli/seat-reservation-engine/internal/mocks"
	"github.com/metinatakli/seat-reservation-engine/internal/validator"
	"github.com/stretchr/testify/require"
)

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config:          Config{Env: "test"},
		validator:       validator.NewValidator(),
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionManager:  NewSessionManager(nil),
		engine:          &mocks.MockEngine{},
		sweeper:         &mocks.MockSweeper{},
		paymentProvider: &mocks.MockPaymentProvider{},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// sessionCookie stores an identity the way the identity service does and
// returns the cookie that carries it.
func sessionCookie(t *testing.T, app *Application, holderId int, role string) *http.Cookie {
	ctx, err := app.sessionManager.Load(context.Background(), "")
	require.NoError(t, err)

	if holderId != 0 {
		app.sessionManager.Put(ctx, SessionKeyHolderId.String(), holderId)
	}
	if role != "" {
		app.sessionManager.Put(ctx, SessionKeyRole.String(), role)
	}

	token, _, err := app.sessionManager.Commit(ctx)
	require.NoError(t, err)

	return &http.Cookie{Name: app.sessionManager.Cookie.Name, Value: token}
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader

	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

type errorBody struct {
	api.ErrorResponse
	ValidationErrors []api.ValidationError `json:"validationErrors"`
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) *errorBody {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return nil
	}

	var resp errorBody
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if tt.wantErrMessage == "" {
		return &resp
	}

	if len(resp.ValidationErrors) > 0 {
		errorSet := make(map[string]bool)
		for _, vErr := range resp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

		return &resp
	}

	if resp.Message != tt.wantErrMessage {
		t.Errorf("Error message = %v, want %v", resp.Message, tt.wantErrMessage)
	}

	return &resp
}

func ptr[T any](v T) *T {
	return &v
}
