package di

import (
	"fmt"

	"StockLens/internal/domain/models"
	hapi "StockLens/internal/handler/api"
	"StockLens/internal/handler/web"
	"StockLens/internal/handler/ws"
	"StockLens/internal/service/ratelimit"
	"StockLens/internal/service/stockapi"
	"StockLens/internal/usecase"
	"StockLens/pkg/cache"
	"StockLens/pkg/config"
	xhttp "StockLens/pkg/http"
	pkgkafka "StockLens/pkg/kafka"
	"StockLens/pkg/logger"
	"StockLens/pkg/metrics"
	"StockLens/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideCache creates the upstream-response cache: layered memory/Redis
// when Redis is configured, memory-only otherwise, nil when disabled.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	if cfg.Cache.Redis.Enabled {
		rc, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix("stocklens"),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return cache.NewLayeredCache(rc), nil
	}
	return cache.NewMemoryCache(), nil
}

// ProvideSources builds the four upstream providers, cache-wrapped when a
// cache is available.
func ProvideSources(cfg *config.Config, c cache.Service) usecase.Sources {
	news := stockapi.NewHTTPNewsSource(cfg)
	snapshot := stockapi.NewHTTPSnapshotSource(cfg)
	series := stockapi.NewHTTPSeriesSource(cfg)
	recommend := stockapi.NewHTTPRecommender(cfg)

	if c != nil {
		cached := stockapi.NewCachedSources(cfg, c, news, snapshot, series, recommend)
		return usecase.Sources{News: cached, Snapshot: cached, Series: cached, Recommend: cached}
	}
	return usecase.Sources{News: news, Snapshot: snapshot, Series: series, Recommend: recommend}
}

// ProvideLookupService creates the lookup use case.
func ProvideLookupService(cfg *config.Config, sources usecase.Sources, l *logger.Logger, rec *metrics.Recorder) *usecase.LookupService {
	return usecase.NewLookupService(sources, l, rec, models.NormalizePeriod(cfg.Lookup.DefaultPeriod))
}

// ProvideLimiter creates the per-client lookup rate limiter.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideHandler assembles all route handlers.
func ProvideHandler(
	cfg *config.Config,
	l *logger.Logger,
	svc *usecase.LookupService,
	limiter *ratelimit.Limiter,
	rec *metrics.Recorder,
) xhttp.Handler {
	capacity, refill := 0.0, 0.0
	if cfg.RateLimit.Enabled {
		capacity, refill = cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec
	}
	return xhttp.Handlers{
		hapi.NewLookupEchoHandler(l, svc, limiter, capacity, refill),
		web.NewPageHandler(l, svc),
		ws.NewLiveHandler(l, svc, rec),
	}
}

// ProvideDiagnosticsProducer creates the Kafka producer for the log
// collector, or nil when diagnostics shipping is disabled.
func ProvideDiagnosticsProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Diagnostics.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Diagnostics.Brokers),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideApp creates the application.
func ProvideApp(cfg *config.Config, l *logger.Logger, handler xhttp.Handler, producer *pkgkafka.Producer) *server.App {
	return server.New(cfg, l, handler, producer)
}
