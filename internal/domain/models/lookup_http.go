package models

// Requests for the lookup HTTP endpoints. Defined in domain for consistency
// and reuse.

// LookupRequest carries the user's free-text input. Both fields are
// deliberately unconstrained here: partial input is validated by the
// session (it annotates rather than rejects), and only the both-empty case
// aborts. Period falls back to the default on unknown keys.
type LookupRequest struct {
	Name   string `query:"name" json:"name"`
	Symbol string `query:"symbol" json:"symbol"`
	Period string `query:"period" json:"period" default:"1y" validate:"omitempty,oneof=1d 1w 1mo 3mo 6mo 1y 2y 5y"`
}

type NewsRequest struct {
	Name string `query:"name" json:"name" validate:"required"`
}

type SnapshotRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
}

type SeriesRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	Period string `query:"period" json:"period" default:"1y" validate:"omitempty,oneof=1d 1w 1mo 3mo 6mo 1y 2y 5y"`
}

type RecommendationRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
}
