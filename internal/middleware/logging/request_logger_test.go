package loggingmw

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedEcho(buf *bytes.Buffer) *echo.Echo {
	e := echo.New()
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(slog.New(slog.NewJSONHandler(buf, nil))))
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &rec))
	return rec
}

func TestRequestLogger_CarriesRequestAttributes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := newLoggedEcho(&buf)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("User-Agent", "discoshop-test/1.0")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	entry := lastRecord(t, &buf)
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/ping", entry["url"])
	assert.Equal(t, "discoshop-test/1.0", entry["user_agent"])
}

func TestRequestLogger_GeneratedRequestIDIsLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := newLoggedEcho(&buf)

	// No X-Request-ID from the client; the id generated upstream must
	// still land in the log and on the response.
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	entry := lastRecord(t, &buf)
	rid, _ := entry["request_id"].(string)
	assert.NotEmpty(t, rid)
	assert.Equal(t, rid, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRequestLogger_ClientRequestIDWins(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := newLoggedEcho(&buf)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "client-supplied-id")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	entry := lastRecord(t, &buf)
	assert.Equal(t, "client-supplied-id", entry["request_id"])
}
