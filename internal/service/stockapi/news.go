package stockapi

import (
	"context"
	"fmt"

	"StockLens/internal/domain/models"
	domsvc "StockLens/internal/domain/service"
	"StockLens/pkg/config"
)

type HTTPNewsSource struct{ base *HTTPServiceBase }

func NewHTTPNewsSource(cfg *config.Config) *HTTPNewsSource {
	return &HTTPNewsSource{base: NewHTTPServiceBase(cfg)}
}

type newsResponse struct {
	Articles []models.NewsArticle `json:"articles"`
}

func (s *HTTPNewsSource) Headlines(ctx context.Context, name string) ([]models.NewsArticle, error) {
	var nr newsResponse
	err := s.base.GetJSONWithRetry(ctx, "/api/news", map[string]string{"name": name}, &nr)
	if err != nil {
		return nil, fmt.Errorf("get news: %w", err)
	}
	return nr.Articles, nil
}

var _ domsvc.NewsProvider = (*HTTPNewsSource)(nil)
