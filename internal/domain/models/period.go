package models

// Period is a historical-range window for the price series.
type Period string

const (
	Period1D  Period = "1d"
	Period1W  Period = "1w"
	Period1Mo Period = "1mo"
	Period3Mo Period = "3mo"
	Period6Mo Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
	Period5Y  Period = "5y"
)

var periodLabels = map[Period]string{
	Period1D:  "1 Day",
	Period1W:  "1 Week",
	Period1Mo: "1 Month",
	Period3Mo: "3 Months",
	Period6Mo: "6 Months",
	Period1Y:  "1 Year",
	Period2Y:  "2 Years",
	Period5Y:  "5 Years",
}

// IsValidPeriod returns true if p is a supported period.
func IsValidPeriod(p Period) bool {
	_, ok := periodLabels[p]
	return ok
}

// DefaultPeriod returns the default period.
func DefaultPeriod() Period { return Period1Y }

// NormalizePeriod converts a raw string to a valid period (or default).
func NormalizePeriod(s string) Period {
	if s == "" {
		return DefaultPeriod()
	}
	p := Period(s)
	if IsValidPeriod(p) {
		return p
	}
	return DefaultPeriod()
}

// Label returns the display label for the period. Unknown periods render
// nothing rather than a raw key.
func (p Period) Label() string {
	return periodLabels[p]
}
