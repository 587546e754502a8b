package stockapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StockLens/internal/domain/models"
	"StockLens/pkg/config"
)

func testConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Upstream.BaseURL = baseURL
	cfg.Upstream.Timeout = 2 * time.Second
	cfg.Upstream.RetryAttempts = 1
	return cfg
}

func TestNewsHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/news" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("name"); got != "Apple" {
			t.Errorf("name param = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"articles":[{"title":"Apple shares rally","url":"https://example.com/a","source":"Reuters"}]}`))
	}))
	defer srv.Close()

	src := NewHTTPNewsSource(testConfig(srv.URL))
	arts, err := src.Headlines(context.Background(), "Apple")
	if err != nil {
		t.Fatal(err)
	}
	if len(arts) != 1 || arts[0].Title != "Apple shares rally" || arts[0].Source != "Reuters" {
		t.Errorf("unexpected articles %+v", arts)
	}
}

func TestNewsEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"articles":[]}`))
	}))
	defer srv.Close()

	src := NewHTTPNewsSource(testConfig(srv.URL))
	arts, err := src.Headlines(context.Background(), "Frobnico")
	if err != nil {
		t.Fatal(err)
	}
	if len(arts) != 0 {
		t.Errorf("expected empty list, got %+v", arts)
	}
}

func TestSnapshotFieldMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/today_stock_info" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("symbol param = %q", got)
		}
		// Upstream keys carry spaces; MarketCap arrives pre-formatted.
		w.Write([]byte(`{"High":105,"Low":98,"Close":101,"Forward PE":24.5,"Market Cap":"2.95e+12"}`))
	}))
	defer srv.Close()

	src := NewHTTPSnapshotSource(testConfig(srv.URL))
	snap, err := src.TodayInfo(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if snap.High != 105 || snap.Low != 98 || snap.Close != 101 {
		t.Errorf("unexpected quote %+v", snap)
	}
	if snap.ForwardPE != 24.5 {
		t.Errorf("forward PE = %v", snap.ForwardPE)
	}
	if snap.MarketCap != "2.95e+12" {
		t.Errorf("market cap = %q", snap.MarketCap)
	}
}

func TestSeriesHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/get_stock_data" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("symbol") != "AAPL" || q.Get("period") != "5y" {
			t.Errorf("params = %v", q)
		}
		w.Write([]byte(`{
			"stock_data":[{"Date":"2024-01-02","Close":101},{"Date":"2024-01-03","Close":103}],
			"percent_change":8.1,
			"closing_cost_range":{"min":98,"max":105}
		}`))
	}))
	defer srv.Close()

	src := NewHTTPSeriesSource(testConfig(srv.URL))
	series, err := src.History(context.Background(), "AAPL", models.Period5Y)
	if err != nil {
		t.Fatal(err)
	}
	if len(series.Points) != 2 || series.Points[1].Close != 103 {
		t.Errorf("unexpected points %+v", series.Points)
	}
	if series.PercentChange == nil || *series.PercentChange != 8.1 {
		t.Errorf("percent change = %v", series.PercentChange)
	}
	if series.Range.Min == nil || *series.Range.Min != 98 || series.Range.Max == nil || *series.Range.Max != 105 {
		t.Errorf("range = %+v", series.Range)
	}
}

func TestSeriesNullDerivedMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"stock_data":[{"Date":"2024-01-02","Close":101}],
			"percent_change":null,
			"closing_cost_range":{"min":null,"max":null}
		}`))
	}))
	defer srv.Close()

	src := NewHTTPSeriesSource(testConfig(srv.URL))
	series, err := src.History(context.Background(), "AAPL", models.Period1D)
	if err != nil {
		t.Fatal(err)
	}
	if series.PercentChange != nil {
		t.Errorf("percent change = %v", *series.PercentChange)
	}
	if series.Range.Min != nil || series.Range.Max != nil {
		t.Errorf("range = %+v", series.Range)
	}
}

func TestRecommenderAdvise(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/buy_stock" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"should_buy_stock":"Yes","buy_stock_precision_score":"97.20%"}`))
	}))
	defer srv.Close()

	src := NewHTTPRecommender(testConfig(srv.URL))
	rec, err := src.Advise(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if rec.ShouldBuy != "Yes" || rec.PrecisionScore != "97.20%" {
		t.Errorf("unexpected recommendation %+v", rec)
	}
}

func TestUpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewHTTPSnapshotSource(testConfig(srv.URL))
	if _, err := src.TodayInfo(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestRetryEventuallySucceeds(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "transient", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"should_buy_stock":"No","buy_stock_precision_score":"55.10%"}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Upstream.RetryAttempts = 3
	src := NewHTTPRecommender(cfg)
	rec, err := src.Advise(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if rec.ShouldBuy != "No" {
		t.Errorf("unexpected recommendation %+v", rec)
	}
	if calls != 2 {
		t.Errorf("expected 2 upstream calls, got %d", calls)
	}
}
