package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/tally"
	httpAdapter "github.com/aretw0/tally/internal/adapters/http"
	"github.com/aretw0/tally/internal/adapters/memory"
	"github.com/aretw0/tally/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	handler := httpAdapter.NewHandler(tally.New(), memory.NewStore(), logging.NewNop())
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func press(t *testing.T, srv *httptest.Server, sessionID, button string) (*http.Response, httpAdapter.SessionResponse) {
	t.Helper()
	body, err := json.Marshal(httpAdapter.PressRequest{Button: button})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/sessions/"+sessionID+"/press", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out httpAdapter.SessionResponse
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestServer_PressFlow(t *testing.T) {
	srv := newTestServer(t)

	var last httpAdapter.SessionResponse
	for _, button := range []string{"5", "+", "3", "="} {
		resp, out := press(t, srv, "s1", button)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		last = out
	}

	assert.Equal(t, "8", last.Display)
	assert.Empty(t, last.Error)
	assert.Equal(t, "s1", last.SessionID)
}

func TestServer_SessionsAreIsolated(t *testing.T) {
	srv := newTestServer(t)

	press(t, srv, "a", "7")
	press(t, srv, "b", "9")

	resp, err := http.Get(srv.URL + "/sessions/a")
	require.NoError(t, err)
	defer resp.Body.Close()
	var out httpAdapter.SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "7", out.Display)
}

func TestServer_DivisionByZero(t *testing.T) {
	srv := newTestServer(t)

	for _, button := range []string{"6", "/", "0"} {
		resp, _ := press(t, srv, "dz", button)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, out := press(t, srv, "dz", "=")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "division_by_zero", out.Error)
	assert.Equal(t, "0", out.Display, "session must be reset")

	// The session keeps working afterwards.
	resp, out = press(t, srv, "dz", "4")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "4", out.Display)
}

func TestServer_UnknownButton(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := press(t, srv, "ub", "sqrt")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_GetSessionNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/sessions/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_DeleteSession(t *testing.T) {
	srv := newTestServer(t)
	press(t, srv, "del-me", "1")

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/sessions/del-me", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := http.Get(srv.URL + "/sessions/del-me")
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestServer_ListSessions(t *testing.T) {
	srv := newTestServer(t)
	press(t, srv, "one", "1")
	press(t, srv, "two", "2")

	resp, err := http.Get(srv.URL + "/sessions")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.ElementsMatch(t, []string{"one", "two"}, out["sessions"])
}

func TestServer_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	press(t, srv, "m", "5")
	metricsResp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()
	assert.Equal(t, http.StatusOK, metricsResp.StatusCode)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(metricsResp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "tally_presses_total")
}
