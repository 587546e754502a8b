package stockapi

import (
	"context"
	"fmt"

	"StockLens/internal/domain/models"
	domsvc "StockLens/internal/domain/service"
	"StockLens/pkg/config"
)

type HTTPSeriesSource struct{ base *HTTPServiceBase }

func NewHTTPSeriesSource(cfg *config.Config) *HTTPSeriesSource {
	return &HTTPSeriesSource{base: NewHTTPServiceBase(cfg)}
}

func (s *HTTPSeriesSource) History(ctx context.Context, symbol string, period models.Period) (models.Series, error) {
	var series models.Series
	params := map[string]string{
		"symbol": symbol,
		"period": string(period),
	}
	err := s.base.GetJSONWithRetry(ctx, "/api/get_stock_data", params, &series)
	if err != nil {
		return models.Series{}, fmt.Errorf("get stock data: %w", err)
	}
	return series, nil
}

var _ domsvc.SeriesProvider = (*HTTPSeriesSource)(nil)
