package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/kioku-app/kioku/internal/profile"
	storetest "github.com/kioku-app/kioku/store/test"
)

func newTestServer(t *testing.T) *echo.Echo {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	testProfile := &profile.Profile{Mode: "dev", Driver: "sqlite"}

	e := echo.New()
	NewAPIV1Service(testProfile, ts, time.UTC).Register(e)
	return e
}

func doRequest(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}
	return rec, payload
}

func TestReviewFlow(t *testing.T) {
	e := newTestServer(t)

	// Register an item; it comes back due immediately.
	rec, created := doRequest(t, e, http.MethodPost, "/api/v1/vocab", "")
	require.Equal(t, http.StatusOK, rec.Code)
	uid, ok := created["vocab_id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, uid)

	rec, cards := doRequest(t, e, http.MethodGet, "/api/v1/review/cards", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(1), cards["total"])

	// Answer correctly: interval 1 day, reps 1.
	rec, answer := doRequest(t, e, http.MethodPost, "/api/v1/review/answer", `{"vocab_id":"`+uid+`","known":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(1), answer["new_interval"])
	require.Equal(t, float64(1), answer["reps"])
	require.Equal(t, 2.5, answer["ease_factor"])

	// The item is scheduled out, so the due queue empties.
	rec, cards = doRequest(t, e, http.MethodGet, "/api/v1/review/cards", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(0), cards["total"])

	// Reset brings it back.
	rec, _ = doRequest(t, e, http.MethodPost, "/api/v1/review/reset/"+uid, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, cards = doRequest(t, e, http.MethodGet, "/api/v1/review/cards", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(1), cards["total"])
}

func TestErrorMapping(t *testing.T) {
	e := newTestServer(t)

	// Unknown item maps to 404.
	rec, payload := doRequest(t, e, http.MethodPost, "/api/v1/review/answer", `{"vocab_id":"missing","known":true}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", payload["code"])

	rec, payload = doRequest(t, e, http.MethodPost, "/api/v1/review/reset/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", payload["code"])

	rec, payload = doRequest(t, e, http.MethodDelete, "/api/v1/vocab/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", payload["code"])

	// Out-of-range parameters map to 400.
	for _, path := range []string{
		"/api/v1/review/cards?limit=abc",
		"/api/v1/review/cards?limit=101",
		"/api/v1/stats/daily?days=31",
		"/api/v1/stats/daily?days=abc",
		"/api/v1/stats/accuracy?days=6",
	} {
		rec, payload = doRequest(t, e, http.MethodGet, path, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, path)
		require.Equal(t, "INVALID_ARGUMENT", payload["code"], path)
	}

	// Missing vocab_id in the answer body.
	rec, payload = doRequest(t, e, http.MethodPost, "/api/v1/review/answer", `{"known":true}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_ARGUMENT", payload["code"])
}

func TestStatsEndpoints(t *testing.T) {
	e := newTestServer(t)

	rec, _ := doRequest(t, e, http.MethodPost, "/api/v1/vocab", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, overview := doRequest(t, e, http.MethodGet, "/api/v1/stats/overview", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(1), overview["total_words"])
	require.Equal(t, float64(1), overview["new_words"])

	rec, streak := doRequest(t, e, http.MethodGet, "/api/v1/stats/streak", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(0), streak["current_streak"])

	rec, dashboard := doRequest(t, e, http.MethodGet, "/api/v1/stats/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, dashboard["overview"])
	require.NotNil(t, dashboard["streak"])
	require.NotNil(t, dashboard["accuracy_trend"])
	require.Len(t, dashboard["recent_daily_stats"], 7)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/daily", nil)
	rec2 := httptest.NewRecorder()
	e.ServeHTTP(rec2, req)
	require.Equal(t, http.StatusOK, rec2.Code)
	var daily []map[string]any
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &daily))
	require.Len(t, daily, 7)
}

func TestVocabularyEndpoints(t *testing.T) {
	e := newTestServer(t)

	rec, created := doRequest(t, e, http.MethodPost, "/api/v1/vocab", "")
	require.Equal(t, http.StatusOK, rec.Code)
	uid := created["vocab_id"].(string)

	rec, listed := doRequest(t, e, http.MethodGet, "/api/v1/vocab", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(1), listed["total"])

	rec, _ = doRequest(t, e, http.MethodDelete, "/api/v1/vocab/"+uid, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, listed = doRequest(t, e, http.MethodGet, "/api/v1/vocab", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(0), listed["total"])
}
