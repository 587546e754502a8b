package models

// Query is a single lookup request as entered by the user. Exactly one
// query is active per session at a time.
type Query struct {
	CompanyName  string `json:"company_name"`
	TickerSymbol string `json:"ticker_symbol"`
	Period       Period `json:"period"`
}

// NewsArticle is one headline from the news source.
type NewsArticle struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

// Snapshot is the latest daily quote for a ticker. MarketCap arrives
// pre-formatted from the upstream (scientific notation string).
type Snapshot struct {
	High      float64 `json:"High"`
	Low       float64 `json:"Low"`
	Close     float64 `json:"Close"`
	ForwardPE float64 `json:"Forward PE"`
	MarketCap string  `json:"Market Cap"`
}

// PricePoint is one closing price in the historical series.
type PricePoint struct {
	Date  string  `json:"Date"`
	Close float64 `json:"Close"`
}

// ClosingRange is the min/max closing price over the requested period.
// Values are nil when the upstream had too little history for the period.
type ClosingRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Series is the historical price series for one symbol and period,
// together with the derived change metrics the upstream computes.
type Series struct {
	Points        []PricePoint `json:"stock_data"`
	PercentChange *float64     `json:"percent_change"`
	Range         ClosingRange `json:"closing_cost_range"`
}

// LoadingSentinel is shown in the recommendation panel until its fetch
// settles.
const LoadingSentinel = "Loading..."

// Recommendation is the buy/don't-buy verdict with its reported precision.
// Both fields hold LoadingSentinel until the fetch resolves.
type Recommendation struct {
	ShouldBuy      string `json:"should_buy_stock"`
	PrecisionScore string `json:"buy_stock_precision_score"`
}

// PendingRecommendation returns the loading-sentinel recommendation.
func PendingRecommendation() Recommendation {
	return Recommendation{ShouldBuy: LoadingSentinel, PrecisionScore: LoadingSentinel}
}

// LookupView is the assembled view model for one lookup cycle. Slots that
// have not settled yet carry their zero value (nil for news/snapshot/series,
// the loading sentinel for the recommendation).
type LookupView struct {
	Query          Query          `json:"query"`
	Visible        bool           `json:"visible"`
	News           []NewsArticle  `json:"news"`
	Snapshot       *Snapshot      `json:"snapshot"`
	Series         *Series        `json:"series"`
	Recommendation Recommendation `json:"recommendation"`
	Error          string         `json:"error,omitempty"`
}
