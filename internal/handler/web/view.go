package web

import (
	"fmt"
	"net/url"

	"StockLens/internal/domain/models"
	"StockLens/pkg/util"
)

// PeriodChoice is one period button on the page.
type PeriodChoice struct {
	Key    string
	Label  string
	Active bool
	Href   string
}

// PageData is everything the lookup template renders. All display strings
// are derived here so the template stays logic-free.
type PageData struct {
	Title   string
	Query   models.Query
	Visible bool
	Error   string

	News []models.NewsArticle

	HasSnapshot     bool
	LatestCloseLine string
	RangeLine       string
	ForwardPE       string
	MarketCap       string

	Recommendation models.Recommendation

	HasSeries     bool
	PeriodLabel   string
	PercentChange string
	SeriesRange   string
	ChartSrc      string

	Periods []PeriodChoice
}

var periodOrder = []models.Period{
	models.Period1D, models.Period1W, models.Period1Mo, models.Period3Mo,
	models.Period6Mo, models.Period1Y, models.Period2Y, models.Period5Y,
}

// BuildPageData projects the assembled lookup view into template data.
func BuildPageData(view models.LookupView) PageData {
	data := PageData{
		Title:          "StockLens",
		Query:          view.Query,
		Visible:        view.Visible,
		Error:          view.Error,
		News:           view.News,
		Recommendation: view.Recommendation,
		PeriodLabel:    view.Query.Period.Label(),
	}

	if view.Snapshot != nil {
		data.HasSnapshot = true
		data.LatestCloseLine = LatestCloseLine(*view.Snapshot)
		data.RangeLine = RangeLine(*view.Snapshot)
		data.ForwardPE = util.FormatPrice(view.Snapshot.ForwardPE)
		data.MarketCap = view.Snapshot.MarketCap
	}

	if view.Series != nil {
		data.HasSeries = true
		data.PercentChange = PercentChangeLine(*view.Series)
		data.SeriesRange = SeriesRangeLine(*view.Series)
		data.ChartSrc = chartHref(view.Query)
	}

	for _, p := range periodOrder {
		data.Periods = append(data.Periods, PeriodChoice{
			Key:    string(p),
			Label:  p.Label(),
			Active: p == view.Query.Period,
			Href:   lookupHref(view.Query, p),
		})
	}

	return data
}

// LatestCloseLine derives the closing-price display line from a snapshot.
func LatestCloseLine(s models.Snapshot) string {
	return "Latest Closing Price: $" + util.FormatPrice(s.Close)
}

// RangeLine derives the daily range display line from a snapshot.
func RangeLine(s models.Snapshot) string {
	return fmt.Sprintf("24 Hour Range: $%s - $%s", util.FormatPrice(s.Low), util.FormatPrice(s.High))
}

// PercentChangeLine renders the period change, signed, or "" when the
// upstream had too little history.
func PercentChangeLine(s models.Series) string {
	if s.PercentChange == nil {
		return ""
	}
	return fmt.Sprintf("%+.2f%%", *s.PercentChange)
}

// SeriesRangeLine renders the period closing-price range, or "" when the
// bounds are absent.
func SeriesRangeLine(s models.Series) string {
	if s.Range.Min == nil || s.Range.Max == nil {
		return ""
	}
	return fmt.Sprintf("$%s - $%s", util.FormatPrice(*s.Range.Min), util.FormatPrice(*s.Range.Max))
}

func lookupHref(q models.Query, p models.Period) string {
	v := url.Values{}
	v.Set("name", q.CompanyName)
	v.Set("symbol", q.TickerSymbol)
	v.Set("period", string(p))
	return "/lookup?" + v.Encode()
}

func chartHref(q models.Query) string {
	v := url.Values{}
	v.Set("symbol", q.TickerSymbol)
	v.Set("period", string(q.Period))
	return "/chart?" + v.Encode()
}
