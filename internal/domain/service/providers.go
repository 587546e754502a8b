package service

import (
	"context"

	"StockLens/internal/domain/models"
)

// NewsProvider returns headlines for a company name. An empty slice is a
// valid result and is surfaced to the user as "not found".
type NewsProvider interface {
	Headlines(ctx context.Context, name string) ([]models.NewsArticle, error)
}

// SnapshotProvider returns the latest daily quote for a ticker.
type SnapshotProvider interface {
	TodayInfo(ctx context.Context, symbol string) (models.Snapshot, error)
}

// SeriesProvider returns the historical closing-price series for a ticker
// over the given period.
type SeriesProvider interface {
	History(ctx context.Context, symbol string, period models.Period) (models.Series, error)
}

// Recommender returns the external model's buy verdict for a ticker.
type Recommender interface {
	Advise(ctx context.Context, symbol string) (models.Recommendation, error)
}
