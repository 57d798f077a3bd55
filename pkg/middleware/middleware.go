// Package middleware wraps an http.Handler with per-client admission control.
package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/keyrate/rate-limiter-go/internal/log"
	"github.com/keyrate/rate-limiter-go/internal/metrics"
	"github.com/keyrate/rate-limiter-go/internal/utils"
	"github.com/keyrate/rate-limiter-go/ratelimiter"
)

const (
	rateLimitMaxRequests = "X-Ratelimit-Max-Requests"
	rateLimitState       = "X-Ratelimit-State"
	requestIDHeader      = "X-Request-Id"
)

// Config defines the configuration for the rate limiter handler.
type Config struct {
	Extractor utils.Extractor
	Limiter   ratelimiter.RateLimiter

	// MaxRequests is the admit budget advertised to clients in the
	// X-Ratelimit-Max-Requests header. Zero omits the header.
	MaxRequests int

	// Metrics is optional; when set, each decision is recorded.
	Metrics *metrics.Metrics
}

type rateLimiterHandler struct {
	handler http.Handler
	config  *Config
}

// NewHTTPRateLimiterHandler wraps an existing http.Handler, performing rate
// limiting before the request reaches the wrapped handler. When the key
// cannot be extracted or the request is denied, a response is written and
// the wrapped handler is never called.
func NewHTTPRateLimiterHandler(originalHandler http.Handler, config *Config) http.Handler {
	return &rateLimiterHandler{
		handler: originalHandler,
		config:  config,
	}
}

func (h *rateLimiterHandler) writeResponse(writer http.ResponseWriter, status int, msg string, args ...interface{}) {
	writer.Header().Set("Content-Type", "text/plain")
	writer.WriteHeader(status)
	if _, err := writer.Write([]byte(fmt.Sprintf(msg, args...))); err != nil {
		log.Logger().Error("Failed to write body to HTTP response", zap.Error(err))
	}
}

// ServeHTTP extracts the client key, charges it against the limiter, and
// either rejects with 429 or forwards to the wrapped handler. Rate limiting
// headers are set on both outcomes so the client knows where it stands.
func (h *rateLimiterHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	requestID := uuid.NewString()
	writer.Header().Set(requestIDHeader, requestID)

	key, err := h.config.Extractor.Extract(request)
	if err != nil {
		h.writeResponse(writer, http.StatusBadRequest, "failed to collect rate limiting key from request: %v", err)
		return
	}

	start := time.Now()
	allowed := h.config.Limiter.Allow(key)
	if h.config.Metrics != nil {
		h.config.Metrics.RecordDecision(allowed, time.Since(start))
	}

	if h.config.MaxRequests > 0 {
		writer.Header().Set(rateLimitMaxRequests, strconv.Itoa(h.config.MaxRequests))
	}

	if !allowed {
		writer.Header().Set(rateLimitState, "Deny")
		log.Logger().Debug("Request rejected by rate limiter",
			zap.String("key", key),
			zap.String("request_id", requestID))
		h.writeResponse(writer, http.StatusTooManyRequests, "you have sent too many requests to this service, slow down please")
		return
	}

	writer.Header().Set(rateLimitState, "Allow")
	h.handler.ServeHTTP(writer, request)
}
