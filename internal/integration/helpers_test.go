package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/metinatakli/seat-reservation-engine/internal/app"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(
	method, path string,
	body io.Reader,
	headers map[string]string,
	cookies []*http.Cookie) (*http.Request, error) {

	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		return k == "timestamp" || k == "requestId" || k == "createdAt"
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	query, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(query))
	require.NoError(t, err)
}

func flushAllCache(t testing.TB, client *redis.Client) {
	t.Helper()

	err := client.FlushAll(context.Background()).Err()
	require.NoError(t, err)
}

func resetState(t testing.TB, app *TestApp) {
	t.Helper()

	executeSQLFile(t, app.DB, "testdata/catalog_up.sql")
	flushAllCache(t, app.RedisClient)
}

// sessionCookie writes an identity into the shared session store the way the
// identity service does.
func sessionCookie(t testing.TB, testApp *TestApp, holderId int, role string) *http.Cookie {
	t.Helper()

	sm := testApp.SessionManager

	ctx, err := sm.Load(context.Background(), "")
	require.NoError(t, err)

	if holderId != 0 {
		sm.Put(ctx, app.SessionKeyHolderId.String(), holderId)
	}
	if role != "" {
		sm.Put(ctx, app.SessionKeyRole.String(), role)
	}

	token, _, err := sm.Commit(ctx)
	require.NoError(t, err)

	return &http.Cookie{Name: sm.Cookie.Name, Value: token}
}

func jsonBody(t testing.TB, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

// do sends one request straight to the router.
func do(t testing.TB, testApp *TestApp, method, path string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = jsonBody(t, body)
	}

	req, err := prepareRequest(method, path, reader, nil, cookies)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	testApp.App.Routes().ServeHTTP(rec, req)

	return rec.Result()
}

func decodeJSON[T any](t testing.TB, res *http.Response) T {
	t.Helper()
	defer res.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))

	return v
}

// rewindClock moves the fake clock back to at. Going backwards never reaches
// the deadline of a pending ticker, so nothing fires.
func rewindClock(clk *clockwork.FakeClock, at time.Time) {
	clk.Advance(at.Sub(clk.Now()))
}
