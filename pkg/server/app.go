package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StockLens/pkg/config"
	xhttp "StockLens/pkg/http"
	pkgkafka "StockLens/pkg/kafka"
	applogger "StockLens/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	handler    xhttp.Handler
	httpServer *xhttp.Server
	producer   *pkgkafka.Producer
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, log *applogger.Logger, handler xhttp.Handler, producer *pkgkafka.Producer) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		handler:  handler,
		producer: producer,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	// Ship aggregated error logs to the diagnostics topic when configured.
	if a.producer != nil && a.cfg.Diagnostics.Enabled {
		a.log.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   a.cfg.Diagnostics.FlushInterval,
			CountThreshold: a.cfg.Diagnostics.CountThreshold,
			Topic:          a.cfg.Diagnostics.Topic,
			Publisher:      a.producer,
		})
		a.log.Info("diagnostics publisher enabled", applogger.String("topic", a.cfg.Diagnostics.Topic))
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithRequestMetrics(a.log, 2*time.Second),
	)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("stocklens started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("upstream", a.cfg.Upstream.BaseURL),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	// Flush any pending aggregated logs before closing the producer.
	a.log.RemoveCollector()
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.log.Warn("producer close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
