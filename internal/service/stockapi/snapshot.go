package stockapi

import (
	"context"
	"fmt"

	"StockLens/internal/domain/models"
	domsvc "StockLens/internal/domain/service"
	"StockLens/pkg/config"
)

type HTTPSnapshotSource struct{ base *HTTPServiceBase }

func NewHTTPSnapshotSource(cfg *config.Config) *HTTPSnapshotSource {
	return &HTTPSnapshotSource{base: NewHTTPServiceBase(cfg)}
}

func (s *HTTPSnapshotSource) TodayInfo(ctx context.Context, symbol string) (models.Snapshot, error) {
	var snap models.Snapshot
	err := s.base.GetJSONWithRetry(ctx, "/api/today_stock_info", map[string]string{"symbol": symbol}, &snap)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("get today stock info: %w", err)
	}
	return snap, nil
}

var _ domsvc.SnapshotProvider = (*HTTPSnapshotSource)(nil)
