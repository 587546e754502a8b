package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"StockLens/internal/domain/models"
	domsvc "StockLens/internal/domain/service"
	xlogger "StockLens/pkg/logger"
)

// Source identifies one slot of the lookup view. Each upstream fetch writes
// only its own slot; the validation slot is written synchronously at submit.
type Source string

const (
	SourceValidation     Source = "validation"
	SourceNews           Source = "news"
	SourceSnapshot       Source = "snapshot"
	SourceSeries         Source = "series"
	SourceRecommendation Source = "recommendation"
)

// bannerOrder fixes the order error fragments are assembled into the banner,
// independent of fetch completion order.
var bannerOrder = []Source{SourceValidation, SourceNews, SourceSnapshot, SourceSeries, SourceRecommendation}

// User-facing error fragments.
const (
	MsgMissingBoth     = "Please enter both a company name and ticker symbol"
	MsgMissingName     = "Please enter a company name"
	MsgMissingSymbol   = "Please enter a ticker symbol"
	MsgCompanyNotFound = "Company name not found"
	MsgInvalidSymbol   = "Invalid ticker symbol"
)

// ErrMissingInput is returned when both input fields are empty; no upstream
// requests are issued in that case.
var ErrMissingInput = errors.New("missing company and ticker")

// Metrics records lookup and fetch outcomes. Implemented by pkg/metrics.
type Metrics interface {
	RecordLookup(outcome string)
	RecordFetch(source, outcome string)
	RecordFetchLatency(source string, seconds float64)
}

// Sources bundles the four upstream providers a session fans out to.
type Sources struct {
	News      domsvc.NewsProvider
	Snapshot  domsvc.SnapshotProvider
	Series    domsvc.SeriesProvider
	Recommend domsvc.Recommender
}

// PanelUpdate is emitted to subscribers every time a slot settles. View is
// the full assembled view at that moment so consumers never need to merge.
type PanelUpdate struct {
	Epoch  uint64            `json:"epoch"`
	Source Source            `json:"source"`
	View   models.LookupView `json:"view"`
}

// LookupSession owns the view state for one user session: the active query,
// the four result slots, the per-source error slots, and the visibility
// flag. Starting a lookup bumps the session epoch; resolutions carrying a
// stale epoch are discarded, so the last issued query always wins even when
// responses arrive out of order.
type LookupSession struct {
	sources Sources
	log     *xlogger.Logger
	metrics Metrics

	mu             sync.Mutex
	epoch          uint64
	query          models.Query
	visible        bool
	news           []models.NewsArticle
	snapshot       *models.Snapshot
	series         *models.Series
	recommendation models.Recommendation
	errs           map[Source]string
	subs           map[chan PanelUpdate]struct{}
}

func NewLookupSession(sources Sources, log *xlogger.Logger, metrics Metrics) *LookupSession {
	return &LookupSession{
		sources:        sources,
		log:            log,
		metrics:        metrics,
		recommendation: models.PendingRecommendation(),
		errs:           make(map[Source]string),
		subs:           make(map[chan PanelUpdate]struct{}),
	}
}

// StartLookup validates input and fans out the four upstream fetches. It
// returns the epoch of the new cycle and a channel closed once all four
// fetches have settled. Both fields empty aborts with ErrMissingInput and
// zero requests; one missing field annotates the validation slot but still
// proceeds with the value that is present.
func (s *LookupSession) StartLookup(ctx context.Context, name, symbol string, period models.Period) (uint64, <-chan struct{}, error) {
	return s.start(ctx, name, symbol, period, true)
}

// SwitchPeriod repeats the last query with a new period. Input is not
// re-validated: a period switch before any successful submit fetches with
// whatever values the session holds.
func (s *LookupSession) SwitchPeriod(ctx context.Context, period models.Period) (uint64, <-chan struct{}, error) {
	s.mu.Lock()
	q := s.query
	s.mu.Unlock()
	return s.start(ctx, q.CompanyName, q.TickerSymbol, period, false)
}

// Lookup runs one full cycle synchronously and returns the assembled view.
func (s *LookupSession) Lookup(ctx context.Context, name, symbol string, period models.Period) models.LookupView {
	_, done, err := s.StartLookup(ctx, name, symbol, period)
	if err == nil {
		select {
		case <-done:
		case <-ctx.Done():
		}
	}
	return s.View()
}

func (s *LookupSession) start(ctx context.Context, name, symbol string, period models.Period, validate bool) (uint64, <-chan struct{}, error) {
	name = strings.TrimSpace(name)
	symbol = strings.TrimSpace(symbol)
	if !models.IsValidPeriod(period) {
		period = models.DefaultPeriod()
	}

	s.mu.Lock()
	if validate && name == "" && symbol == "" {
		s.errs = map[Source]string{SourceValidation: MsgMissingBoth}
		s.mu.Unlock()
		if s.metrics != nil {
			s.metrics.RecordLookup("rejected")
		}
		done := make(chan struct{})
		close(done)
		return 0, done, ErrMissingInput
	}

	s.epoch++
	epoch := s.epoch
	q := models.Query{CompanyName: name, TickerSymbol: symbol, Period: period}
	s.query = q
	s.visible = true
	s.news = nil
	s.snapshot = nil
	s.series = nil
	s.recommendation = models.PendingRecommendation()
	s.errs = make(map[Source]string)
	if validate {
		if name == "" {
			s.errs[SourceValidation] = MsgMissingName
		} else if symbol == "" {
			s.errs[SourceValidation] = MsgMissingSymbol
		}
	}
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordLookup("started")
	}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		start := time.Now()
		arts, err := s.sources.News.Headlines(ctx, q.CompanyName)
		s.applyNews(epoch, q, arts, err, time.Since(start))
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		snap, err := s.sources.Snapshot.TodayInfo(ctx, q.TickerSymbol)
		s.applySnapshot(epoch, q, snap, err, time.Since(start))
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		series, err := s.sources.Series.History(ctx, q.TickerSymbol, q.Period)
		s.applySeries(epoch, q, series, err, time.Since(start))
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		rec, err := s.sources.Recommend.Advise(ctx, q.TickerSymbol)
		s.applyRecommendation(epoch, q, rec, err, time.Since(start))
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	return epoch, done, nil
}

func (s *LookupSession) applyNews(epoch uint64, q models.Query, arts []models.NewsArticle, err error, elapsed time.Duration) {
	if err != nil && s.log != nil {
		s.log.Warn("news fetch failed",
			xlogger.String("name", q.CompanyName),
			xlogger.Error(err),
		)
	}

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		s.observeFetch(SourceNews, "stale", elapsed)
		return
	}
	switch {
	case err != nil, len(arts) == 0:
		// Network failure and zero articles surface identically.
		s.news = []models.NewsArticle{}
		s.errs[SourceNews] = MsgCompanyNotFound
	default:
		s.news = arts
	}
	s.broadcastLocked(epoch, SourceNews)
	s.mu.Unlock()

	s.observeFetch(SourceNews, outcome(err), elapsed)
}

func (s *LookupSession) applySnapshot(epoch uint64, q models.Query, snap models.Snapshot, err error, elapsed time.Duration) {
	if err != nil && s.log != nil {
		s.log.Warn("snapshot fetch failed",
			xlogger.String("symbol", q.TickerSymbol),
			xlogger.Error(err),
		)
	}

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		s.observeFetch(SourceSnapshot, "stale", elapsed)
		return
	}
	if err != nil {
		s.errs[SourceSnapshot] = MsgInvalidSymbol
	} else {
		v := snap
		s.snapshot = &v
	}
	s.broadcastLocked(epoch, SourceSnapshot)
	s.mu.Unlock()

	s.observeFetch(SourceSnapshot, outcome(err), elapsed)
}

func (s *LookupSession) applySeries(epoch uint64, q models.Query, series models.Series, err error, elapsed time.Duration) {
	if err != nil && s.log != nil {
		s.log.Warn("series fetch failed",
			xlogger.String("symbol", q.TickerSymbol),
			xlogger.String("period", string(q.Period)),
			xlogger.Error(err),
		)
	}

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		s.observeFetch(SourceSeries, "stale", elapsed)
		return
	}
	if err != nil {
		s.errs[SourceSeries] = MsgInvalidSymbol
	} else {
		v := series
		s.series = &v
	}
	s.broadcastLocked(epoch, SourceSeries)
	s.mu.Unlock()

	s.observeFetch(SourceSeries, outcome(err), elapsed)
}

func (s *LookupSession) applyRecommendation(epoch uint64, q models.Query, rec models.Recommendation, err error, elapsed time.Duration) {
	if err != nil && s.log != nil {
		s.log.Warn("recommendation fetch failed",
			xlogger.String("symbol", q.TickerSymbol),
			xlogger.Error(err),
		)
	}

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		s.observeFetch(SourceRecommendation, "stale", elapsed)
		return
	}
	if err != nil {
		s.recommendation = models.Recommendation{}
		s.errs[SourceRecommendation] = MsgInvalidSymbol
	} else {
		s.recommendation = rec
	}
	s.broadcastLocked(epoch, SourceRecommendation)
	s.mu.Unlock()

	s.observeFetch(SourceRecommendation, outcome(err), elapsed)
}

// View returns a copy of the current view with the banner assembled from
// the error slots in fixed source order. Duplicate fragments (the three
// ticker-keyed sources share one failure category) appear once.
func (s *LookupSession) View() models.LookupView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Subscribe registers a listener for panel updates. The returned cancel
// func must be called to release the subscription.
func (s *LookupSession) Subscribe() (<-chan PanelUpdate, func()) {
	ch := make(chan PanelUpdate, 16)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *LookupSession) viewLocked() models.LookupView {
	view := models.LookupView{
		Query:          s.query,
		Visible:        s.visible,
		News:           s.news,
		Recommendation: s.recommendation,
		Error:          s.bannerLocked(),
	}
	if s.snapshot != nil {
		v := *s.snapshot
		view.Snapshot = &v
	}
	if s.series != nil {
		v := *s.series
		view.Series = &v
	}
	return view
}

func (s *LookupSession) bannerLocked() string {
	var parts []string
	seen := make(map[string]bool)
	for _, src := range bannerOrder {
		msg := s.errs[src]
		if msg == "" || seen[msg] {
			continue
		}
		seen[msg] = true
		parts = append(parts, msg)
	}
	return strings.Join(parts, ". ")
}

func (s *LookupSession) broadcastLocked(epoch uint64, src Source) {
	if len(s.subs) == 0 {
		return
	}
	update := PanelUpdate{Epoch: epoch, Source: src, View: s.viewLocked()}
	for ch := range s.subs {
		select {
		case ch <- update:
		default:
			// Slow subscriber; drop rather than block the apply path.
		}
	}
}

func (s *LookupSession) observeFetch(src Source, outcome string, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordFetch(string(src), outcome)
	s.metrics.RecordFetchLatency(string(src), elapsed.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
