package web

import (
	"testing"

	"StockLens/internal/domain/models"
)

func f64(v float64) *float64 { return &v }

func TestSnapshotLines(t *testing.T) {
	snap := models.Snapshot{High: 105, Low: 98, Close: 101}

	if got := LatestCloseLine(snap); got != "Latest Closing Price: $101" {
		t.Errorf("close line = %q", got)
	}
	if got := RangeLine(snap); got != "24 Hour Range: $98 - $105" {
		t.Errorf("range line = %q", got)
	}
}

func TestSnapshotLinesFractional(t *testing.T) {
	snap := models.Snapshot{High: 105.5, Low: 98.25, Close: 101.07}

	if got := LatestCloseLine(snap); got != "Latest Closing Price: $101.07" {
		t.Errorf("close line = %q", got)
	}
	if got := RangeLine(snap); got != "24 Hour Range: $98.25 - $105.5" {
		t.Errorf("range line = %q", got)
	}
}

func TestPercentChangeLine(t *testing.T) {
	cases := []struct {
		change *float64
		want   string
	}{
		{nil, ""},
		{f64(12.34), "+12.34%"},
		{f64(-3.5), "-3.50%"},
		{f64(0), "+0.00%"},
	}
	for _, tc := range cases {
		got := PercentChangeLine(models.Series{PercentChange: tc.change})
		if got != tc.want {
			t.Errorf("PercentChangeLine(%v) = %q, want %q", tc.change, got, tc.want)
		}
	}
}

func TestSeriesRangeLine(t *testing.T) {
	if got := SeriesRangeLine(models.Series{}); got != "" {
		t.Errorf("empty range rendered %q", got)
	}
	s := models.Series{Range: models.ClosingRange{Min: f64(98), Max: f64(105)}}
	if got := SeriesRangeLine(s); got != "$98 - $105" {
		t.Errorf("range rendered %q", got)
	}
	// One bound missing is still incomplete.
	s = models.Series{Range: models.ClosingRange{Min: f64(98)}}
	if got := SeriesRangeLine(s); got != "" {
		t.Errorf("half range rendered %q", got)
	}
}

func TestPeriodLabels(t *testing.T) {
	cases := map[models.Period]string{
		models.Period1D:  "1 Day",
		models.Period1W:  "1 Week",
		models.Period1Mo: "1 Month",
		models.Period3Mo: "3 Months",
		models.Period6Mo: "6 Months",
		models.Period1Y:  "1 Year",
		models.Period2Y:  "2 Years",
		models.Period5Y:  "5 Years",
	}
	for p, want := range cases {
		if got := p.Label(); got != want {
			t.Errorf("Label(%q) = %q, want %q", p, got, want)
		}
	}
	if got := models.Period("bogus").Label(); got != "" {
		t.Errorf("unknown period labeled %q", got)
	}
}

func TestBuildPageData(t *testing.T) {
	view := models.LookupView{
		Query:   models.Query{CompanyName: "Apple", TickerSymbol: "AAPL", Period: models.Period5Y},
		Visible: true,
		News:    []models.NewsArticle{{Title: "t", URL: "u", Source: "s"}},
		Snapshot: &models.Snapshot{
			High: 105, Low: 98, Close: 101,
			ForwardPE: 24.5, MarketCap: "2.95e+12",
		},
		Series: &models.Series{
			Points:        []models.PricePoint{{Date: "2024-01-02", Close: 101}},
			PercentChange: f64(8.1),
			Range:         models.ClosingRange{Min: f64(98), Max: f64(105)},
		},
		Recommendation: models.Recommendation{ShouldBuy: "Yes", PrecisionScore: "97.20%"},
	}

	data := BuildPageData(view)

	if !data.Visible || !data.HasSnapshot || !data.HasSeries {
		t.Fatalf("flags = %v/%v/%v", data.Visible, data.HasSnapshot, data.HasSeries)
	}
	if data.PeriodLabel != "5 Years" {
		t.Errorf("period label = %q", data.PeriodLabel)
	}
	if data.MarketCap != "2.95e+12" {
		t.Errorf("market cap = %q", data.MarketCap)
	}
	if data.ChartSrc != "/chart?period=5y&symbol=AAPL" {
		t.Errorf("chart src = %q", data.ChartSrc)
	}
	if len(data.Periods) != 8 {
		t.Fatalf("expected 8 period choices, got %d", len(data.Periods))
	}
	var active int
	for _, p := range data.Periods {
		if p.Active {
			active++
			if p.Key != "5y" {
				t.Errorf("active period = %q", p.Key)
			}
		}
		if p.Label == "" {
			t.Errorf("period %q has no label", p.Key)
		}
	}
	if active != 1 {
		t.Errorf("expected exactly one active period, got %d", active)
	}
}

func TestBuildPageDataHiddenView(t *testing.T) {
	data := BuildPageData(models.LookupView{Error: "Please enter both a company name and ticker symbol"})
	if data.Visible || data.HasSnapshot || data.HasSeries {
		t.Error("hidden view should carry no panel data")
	}
	if data.Error == "" {
		t.Error("banner should survive projection")
	}
}
