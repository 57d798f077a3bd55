package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyrate/rate-limiter-go/internal/metrics"
	"github.com/keyrate/rate-limiter-go/internal/utils"
	"github.com/keyrate/rate-limiter-go/ratelimiter"
)

func newTestHandler(t *testing.T, capacity int) http.Handler {
	t.Helper()

	clock := ratelimiter.NewManualClock(time.Date(2023, 8, 14, 10, 0, 0, 0, time.UTC))
	limiter, err := ratelimiter.NewTokenBucketLimiter(capacity, time.Minute, ratelimiter.WithClock(clock))
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	return NewHTTPRateLimiterHandler(next, &Config{
		Extractor:   utils.NewHTTPHeadersExtractor("X-Api-Key"),
		Limiter:     limiter,
		MaxRequests: capacity,
		Metrics:     metrics.NewWith(prometheus.NewRegistry()),
	})
}

func doRequest(handler http.Handler, apiKey string) *httptest.ResponseRecorder {
	r := httptest.NewRequest("GET", "/api/v1/hello", nil)
	if apiKey != "" {
		r.Header.Set("X-Api-Key", apiKey)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func TestHandler_AllowsUntilBudgetExhausted(t *testing.T) {
	handler := newTestHandler(t, 2)

	for i := 0; i < 2; i++ {
		w := doRequest(handler, "client-a")
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
		assert.Equal(t, "Allow", w.Header().Get("X-Ratelimit-State"))
		assert.Equal(t, "2", w.Header().Get("X-Ratelimit-Max-Requests"))
	}

	w := doRequest(handler, "client-a")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Deny", w.Header().Get("X-Ratelimit-State"))
}

func TestHandler_ClientsAreIndependent(t *testing.T) {
	handler := newTestHandler(t, 1)

	assert.Equal(t, http.StatusOK, doRequest(handler, "client-a").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "client-a").Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, "client-b").Code)
}

func TestHandler_MissingKeyIsBadRequest(t *testing.T) {
	handler := newTestHandler(t, 1)

	w := doRequest(handler, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_TagsResponsesWithRequestID(t *testing.T) {
	handler := newTestHandler(t, 1)

	w := doRequest(handler, "client-a")
	id := w.Header().Get("X-Request-Id")
	_, err := uuid.Parse(id)
	assert.NoError(t, err, "X-Request-Id %q should be a uuid", id)
}
