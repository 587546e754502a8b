package usecase

import (
	"context"

	"StockLens/internal/domain/models"
	xlogger "StockLens/pkg/logger"
)

// LookupService creates lookup sessions over a fixed set of providers.
// JSON handlers run one throwaway session per request; the websocket
// handler keeps one session per connection.
type LookupService struct {
	sources       Sources
	log           *xlogger.Logger
	metrics       Metrics
	defaultPeriod models.Period
}

func NewLookupService(sources Sources, log *xlogger.Logger, metrics Metrics, defaultPeriod models.Period) *LookupService {
	if !models.IsValidPeriod(defaultPeriod) {
		defaultPeriod = models.DefaultPeriod()
	}
	return &LookupService{sources: sources, log: log, metrics: metrics, defaultPeriod: defaultPeriod}
}

// NewSession creates a fresh session with empty state.
func (s *LookupService) NewSession() *LookupSession {
	return NewLookupSession(s.sources, s.log, s.metrics)
}

// DefaultPeriod returns the configured default period.
func (s *LookupService) DefaultPeriod() models.Period { return s.defaultPeriod }

// NormalizePeriod maps a raw period key to a valid period, falling back to
// the configured default.
func (s *LookupService) NormalizePeriod(raw string) models.Period {
	if raw == "" {
		return s.defaultPeriod
	}
	p := models.Period(raw)
	if models.IsValidPeriod(p) {
		return p
	}
	return s.defaultPeriod
}

// Lookup runs one full cycle on a throwaway session.
func (s *LookupService) Lookup(ctx context.Context, name, symbol, period string) models.LookupView {
	return s.NewSession().Lookup(ctx, name, symbol, s.NormalizePeriod(period))
}

// Sources exposes the providers for the per-panel proxy endpoints.
func (s *LookupService) Sources() Sources { return s.sources }
