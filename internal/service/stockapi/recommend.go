package stockapi

import (
	"context"
	"fmt"

	"StockLens/internal/domain/models"
	domsvc "StockLens/internal/domain/service"
	"StockLens/pkg/config"
)

type HTTPRecommender struct{ base *HTTPServiceBase }

func NewHTTPRecommender(cfg *config.Config) *HTTPRecommender {
	return &HTTPRecommender{base: NewHTTPServiceBase(cfg)}
}

func (s *HTTPRecommender) Advise(ctx context.Context, symbol string) (models.Recommendation, error) {
	var rec models.Recommendation
	err := s.base.GetJSONWithRetry(ctx, "/api/buy_stock", map[string]string{"symbol": symbol}, &rec)
	if err != nil {
		return models.Recommendation{}, fmt.Errorf("get buy recommendation: %w", err)
	}
	return rec, nil
}

var _ domsvc.Recommender = (*HTTPRecommender)(nil)
