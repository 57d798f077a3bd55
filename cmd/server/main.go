package main

import (
	"flag"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/keyrate/rate-limiter-go/internal/config"
	"github.com/keyrate/rate-limiter-go/internal/log"
	"github.com/keyrate/rate-limiter-go/internal/metrics"
	"github.com/keyrate/rate-limiter-go/internal/utils"
	"github.com/keyrate/rate-limiter-go/pkg/middleware"
	"github.com/keyrate/rate-limiter-go/ratelimiter"
)

func HelloHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Hello, World!"))
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Logger().Fatal("Failed to load configuration", zap.Error(err))
	}

	// create a rate limiter with the configured algorithm
	limiter, err := cfg.Limiter.Build()
	if err != nil {
		log.Logger().Fatal("Failed to construct rate limiter", zap.Error(err))
	}

	if cfg.Reaper.Enabled() {
		interval, maxIdle, err := cfg.Reaper.Durations()
		if err != nil {
			log.Logger().Fatal("Failed to read reaper settings", zap.Error(err))
		}
		if evicter, ok := limiter.(ratelimiter.IdleEvicter); ok {
			stop := evicter.StartReaper(interval, maxIdle)
			defer stop()
			log.Logger().Info("Started idle key reaper",
				zap.Duration("interval", interval),
				zap.Duration("maxIdle", maxIdle))
		}
	}

	var extractor utils.Extractor
	if len(cfg.Extractor.Headers) > 0 {
		extractor = utils.NewHTTPHeadersExtractor(cfg.Extractor.Headers...)
	} else {
		extractor = utils.NewRemoteAddrExtractor()
	}

	api := http.NewServeMux()
	api.HandleFunc("/api/v1/hello", HelloHandler)

	wrappedAPI := middleware.NewHTTPRateLimiterHandler(api, &middleware.Config{
		Extractor:   extractor,
		Limiter:     limiter,
		MaxRequests: cfg.Limiter.Limit(),
		Metrics:     metrics.New(),
	})

	// /metrics bypasses the limiter so scrapes are never throttled
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", wrappedAPI)

	log.Logger().Info("Run a server", zap.String("addr", cfg.Server.Addr))
	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		log.Logger().Fatal("Failed to serve handler", zap.Error(err))
	}
}
