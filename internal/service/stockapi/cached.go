package stockapi

import (
	"context"
	"encoding/json"
	"time"

	"StockLens/internal/domain/models"
	domsvc "StockLens/internal/domain/service"
	"StockLens/pkg/cache"
	"StockLens/pkg/config"
)

// CachedSources wraps the four upstream providers with a short-TTL cache.
// Entries are stored as JSON strings so the same code path works for both
// the memory and Redis layers. Cache failures fall through to the upstream.
type CachedSources struct {
	news      domsvc.NewsProvider
	snapshot  domsvc.SnapshotProvider
	series    domsvc.SeriesProvider
	recommend domsvc.Recommender

	cache cache.Service
	ttl   struct {
		news, snapshot, series, recommend time.Duration
	}
}

func NewCachedSources(
	cfg *config.Config,
	c cache.Service,
	news domsvc.NewsProvider,
	snapshot domsvc.SnapshotProvider,
	series domsvc.SeriesProvider,
	recommend domsvc.Recommender,
) *CachedSources {
	cs := &CachedSources{
		news:      news,
		snapshot:  snapshot,
		series:    series,
		recommend: recommend,
		cache:     c,
	}
	cs.ttl.news = cfg.Cache.TTL.News
	cs.ttl.snapshot = cfg.Cache.TTL.Snapshot
	cs.ttl.series = cfg.Cache.TTL.Series
	cs.ttl.recommend = cfg.Cache.TTL.Recommendation
	return cs
}

func (cs *CachedSources) lookup(ctx context.Context, key string, dest interface{}) bool {
	if cs.cache == nil {
		return false
	}
	var raw string
	if err := cs.cache.Get(ctx, key, &raw); err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

func (cs *CachedSources) store(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if cs.cache == nil || ttl <= 0 {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = cs.cache.Set(ctx, key, string(raw), ttl)
}

func (cs *CachedSources) Headlines(ctx context.Context, name string) ([]models.NewsArticle, error) {
	key := cache.GenerateKey("news", name)
	var cached []models.NewsArticle
	if cs.lookup(ctx, key, &cached) {
		return cached, nil
	}
	arts, err := cs.news.Headlines(ctx, name)
	if err != nil {
		return nil, err
	}
	cs.store(ctx, key, arts, cs.ttl.news)
	return arts, nil
}

func (cs *CachedSources) TodayInfo(ctx context.Context, symbol string) (models.Snapshot, error) {
	key := cache.GenerateKey("snapshot", symbol)
	var cached models.Snapshot
	if cs.lookup(ctx, key, &cached) {
		return cached, nil
	}
	snap, err := cs.snapshot.TodayInfo(ctx, symbol)
	if err != nil {
		return models.Snapshot{}, err
	}
	cs.store(ctx, key, snap, cs.ttl.snapshot)
	return snap, nil
}

func (cs *CachedSources) History(ctx context.Context, symbol string, period models.Period) (models.Series, error) {
	key := cache.GenerateKeyWithParams("series", symbol, period)
	var cached models.Series
	if cs.lookup(ctx, key, &cached) {
		return cached, nil
	}
	series, err := cs.series.History(ctx, symbol, period)
	if err != nil {
		return models.Series{}, err
	}
	cs.store(ctx, key, series, cs.ttl.series)
	return series, nil
}

func (cs *CachedSources) Advise(ctx context.Context, symbol string) (models.Recommendation, error) {
	key := cache.GenerateKey("recommend", symbol)
	var cached models.Recommendation
	if cs.lookup(ctx, key, &cached) {
		return cached, nil
	}
	rec, err := cs.recommend.Advise(ctx, symbol)
	if err != nil {
		return models.Recommendation{}, err
	}
	cs.store(ctx, key, rec, cs.ttl.recommend)
	return rec, nil
}

var (
	_ domsvc.NewsProvider     = (*CachedSources)(nil)
	_ domsvc.SnapshotProvider = (*CachedSources)(nil)
	_ domsvc.SeriesProvider   = (*CachedSources)(nil)
	_ domsvc.Recommender      = (*CachedSources)(nil)
)
