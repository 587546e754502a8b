package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"StockLens/internal/domain/models"
)

type stubSources struct {
	mu sync.Mutex

	newsCalls      []string
	snapshotCalls  []string
	seriesCalls    [][2]string
	recommendCalls []string

	newsFn      func(name string) ([]models.NewsArticle, error)
	snapshotFn  func(symbol string) (models.Snapshot, error)
	seriesFn    func(symbol string, period models.Period) (models.Series, error)
	recommendFn func(symbol string) (models.Recommendation, error)
}

func (s *stubSources) Headlines(_ context.Context, name string) ([]models.NewsArticle, error) {
	s.mu.Lock()
	s.newsCalls = append(s.newsCalls, name)
	fn := s.newsFn
	s.mu.Unlock()
	if fn != nil {
		return fn(name)
	}
	return []models.NewsArticle{{Title: "t", URL: "u", Source: "s"}}, nil
}

func (s *stubSources) TodayInfo(_ context.Context, symbol string) (models.Snapshot, error) {
	s.mu.Lock()
	s.snapshotCalls = append(s.snapshotCalls, symbol)
	fn := s.snapshotFn
	s.mu.Unlock()
	if fn != nil {
		return fn(symbol)
	}
	return models.Snapshot{High: 105, Low: 98, Close: 101}, nil
}

func (s *stubSources) History(_ context.Context, symbol string, period models.Period) (models.Series, error) {
	s.mu.Lock()
	s.seriesCalls = append(s.seriesCalls, [2]string{symbol, string(period)})
	fn := s.seriesFn
	s.mu.Unlock()
	if fn != nil {
		return fn(symbol, period)
	}
	return models.Series{Points: []models.PricePoint{{Date: "2024-01-02", Close: 101}}}, nil
}

func (s *stubSources) Advise(_ context.Context, symbol string) (models.Recommendation, error) {
	s.mu.Lock()
	s.recommendCalls = append(s.recommendCalls, symbol)
	fn := s.recommendFn
	s.mu.Unlock()
	if fn != nil {
		return fn(symbol)
	}
	return models.Recommendation{ShouldBuy: "Yes", PrecisionScore: "60.00%"}, nil
}

func (s *stubSources) calls() (news, snapshot, series, recommend int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.newsCalls), len(s.snapshotCalls), len(s.seriesCalls), len(s.recommendCalls)
}

func newTestSession(stub *stubSources) *LookupSession {
	return NewLookupSession(Sources{News: stub, Snapshot: stub, Series: stub, Recommend: stub}, nil, nil)
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lookup did not settle")
	}
}

func TestLookupBothEmpty(t *testing.T) {
	stub := &stubSources{}
	s := newTestSession(stub)

	_, _, err := s.StartLookup(context.Background(), "", "", models.Period1Y)
	if err != ErrMissingInput {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}

	view := s.View()
	if view.Error != MsgMissingBoth {
		t.Errorf("unexpected banner: %q", view.Error)
	}
	if view.Visible {
		t.Error("view should not become visible on rejected submit")
	}
	if n, sn, se, r := stub.calls(); n+sn+se+r != 0 {
		t.Errorf("expected zero fetches, got %d/%d/%d/%d", n, sn, se, r)
	}
}

func TestLookupTickerOnlyStillFetches(t *testing.T) {
	stub := &stubSources{
		newsFn: func(string) ([]models.NewsArticle, error) {
			return nil, context.DeadlineExceeded
		},
	}
	s := newTestSession(stub)

	_, done, err := s.StartLookup(context.Background(), "", "AAPL", models.Period1Y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitDone(t, done)

	if n, sn, se, r := stub.calls(); n != 1 || sn != 1 || se != 1 || r != 1 {
		t.Fatalf("expected all four fetches, got %d/%d/%d/%d", n, sn, se, r)
	}

	view := s.View()
	if !view.Visible {
		t.Error("view should be visible after an attempted lookup")
	}
	if !strings.Contains(view.Error, MsgMissingName) {
		t.Errorf("banner %q missing validation fragment", view.Error)
	}
	// News failed too; the validation fragment must survive alongside it.
	if !strings.Contains(view.Error, MsgCompanyNotFound) {
		t.Errorf("banner %q missing news fragment", view.Error)
	}
	if view.Snapshot == nil {
		t.Error("snapshot should have resolved despite news failure")
	}
}

func TestNewsZeroArticlesIsNotFound(t *testing.T) {
	stub := &stubSources{
		newsFn: func(string) ([]models.NewsArticle, error) {
			return []models.NewsArticle{}, nil
		},
	}
	s := newTestSession(stub)

	view := s.Lookup(context.Background(), "Frobnico", "FRBN", models.Period1Y)
	if !strings.Contains(view.Error, MsgCompanyNotFound) {
		t.Errorf("banner %q missing not-found fragment", view.Error)
	}
	if view.Snapshot == nil || view.Series == nil {
		t.Error("ticker-keyed panels should still resolve")
	}
}

func TestInvalidTickerAppearsOnce(t *testing.T) {
	fail := context.DeadlineExceeded
	stub := &stubSources{
		snapshotFn:  func(string) (models.Snapshot, error) { return models.Snapshot{}, fail },
		seriesFn:    func(string, models.Period) (models.Series, error) { return models.Series{}, fail },
		recommendFn: func(string) (models.Recommendation, error) { return models.Recommendation{}, fail },
	}
	s := newTestSession(stub)

	view := s.Lookup(context.Background(), "Apple", "NOPE", models.Period1Y)
	if got := strings.Count(view.Error, MsgInvalidSymbol); got != 1 {
		t.Errorf("expected one invalid-ticker fragment, got %d in %q", got, view.Error)
	}
	if view.News == nil {
		t.Error("news should have resolved despite ticker failures")
	}
}

func TestStaleSeriesResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var call int
	var mu sync.Mutex
	stub := &stubSources{}
	stub.seriesFn = func(_ string, period models.Period) (models.Series, error) {
		mu.Lock()
		call++
		n := call
		mu.Unlock()
		if n == 1 {
			close(started)
			<-release
			return models.Series{Points: []models.PricePoint{{Date: "stale", Close: 1}}}, nil
		}
		return models.Series{Points: []models.PricePoint{{Date: "fresh", Close: 2}}}, nil
	}
	s := newTestSession(stub)

	_, done1, err := s.StartLookup(context.Background(), "Apple", "AAPL", models.Period1Y)
	if err != nil {
		t.Fatal(err)
	}
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first series fetch never started")
	}

	_, done2, err := s.StartLookup(context.Background(), "Apple", "AAPL", models.Period5Y)
	if err != nil {
		t.Fatal(err)
	}
	waitDone(t, done2)

	close(release)
	waitDone(t, done1)

	view := s.View()
	if view.Series == nil || len(view.Series.Points) == 0 {
		t.Fatal("series missing")
	}
	if view.Series.Points[0].Date != "fresh" {
		t.Errorf("stale response won: %q", view.Series.Points[0].Date)
	}
	if view.Query.Period != models.Period5Y {
		t.Errorf("unexpected active period %q", view.Query.Period)
	}
}

func TestRecommendationLoadingSentinel(t *testing.T) {
	release := make(chan struct{})
	stub := &stubSources{
		recommendFn: func(string) (models.Recommendation, error) {
			<-release
			return models.Recommendation{ShouldBuy: "No", PrecisionScore: "55.10%"}, nil
		},
	}
	s := newTestSession(stub)

	_, done, err := s.StartLookup(context.Background(), "Apple", "AAPL", models.Period1Y)
	if err != nil {
		t.Fatal(err)
	}

	if got := s.View().Recommendation; got != models.PendingRecommendation() {
		t.Errorf("expected loading sentinel, got %+v", got)
	}

	close(release)
	waitDone(t, done)

	got := s.View().Recommendation
	if got.ShouldBuy != "No" || got.PrecisionScore != "55.10%" {
		t.Errorf("unexpected recommendation %+v", got)
	}
}

func TestSwitchPeriodRepeatsLastQuery(t *testing.T) {
	stub := &stubSources{}
	s := newTestSession(stub)

	s.Lookup(context.Background(), "Apple", "AAPL", models.Period1Y)

	_, done, err := s.SwitchPeriod(context.Background(), models.Period5Y)
	if err != nil {
		t.Fatal(err)
	}
	waitDone(t, done)

	stub.mu.Lock()
	defer stub.mu.Unlock()
	if len(stub.seriesCalls) != 2 {
		t.Fatalf("expected 2 series fetches, got %d", len(stub.seriesCalls))
	}
	if got := stub.seriesCalls[1]; got[0] != "AAPL" || got[1] != "5y" {
		t.Errorf("unexpected series fetch %v", got)
	}
	// Period switch re-issues every fetch, not just the series.
	if len(stub.newsCalls) != 2 || len(stub.snapshotCalls) != 2 || len(stub.recommendCalls) != 2 {
		t.Errorf("expected all fetches re-issued, got %d/%d/%d",
			len(stub.newsCalls), len(stub.snapshotCalls), len(stub.recommendCalls))
	}
}

func TestSwitchPeriodSkipsValidation(t *testing.T) {
	stub := &stubSources{}
	s := newTestSession(stub)

	// No query was ever submitted; the switch still fans out with empty
	// values and no validation fragments.
	_, done, err := s.SwitchPeriod(context.Background(), models.Period1Mo)
	if err != nil {
		t.Fatal(err)
	}
	waitDone(t, done)

	if n, sn, se, r := stub.calls(); n != 1 || sn != 1 || se != 1 || r != 1 {
		t.Fatalf("expected all four fetches, got %d/%d/%d/%d", n, sn, se, r)
	}
	view := s.View()
	if strings.Contains(view.Error, MsgMissingName) || strings.Contains(view.Error, MsgMissingBoth) {
		t.Errorf("period switch should not re-validate, banner %q", view.Error)
	}
}

func TestUnknownPeriodFallsBackToDefault(t *testing.T) {
	stub := &stubSources{}
	s := newTestSession(stub)

	view := s.Lookup(context.Background(), "Apple", "AAPL", models.Period("bogus"))
	if view.Query.Period != models.DefaultPeriod() {
		t.Errorf("expected default period, got %q", view.Query.Period)
	}
}

func TestSubscribeReceivesPanelUpdates(t *testing.T) {
	stub := &stubSources{}
	s := newTestSession(stub)

	updates, cancel := s.Subscribe()
	defer cancel()

	_, done, err := s.StartLookup(context.Background(), "Apple", "AAPL", models.Period1Y)
	if err != nil {
		t.Fatal(err)
	}
	waitDone(t, done)

	seen := make(map[Source]bool)
	for i := 0; i < 4; i++ {
		select {
		case u := <-updates:
			seen[u.Source] = true
			if !u.View.Visible {
				t.Error("pushed view should be visible")
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("missing panel updates, saw %v", seen)
		}
	}
	for _, src := range []Source{SourceNews, SourceSnapshot, SourceSeries, SourceRecommendation} {
		if !seen[src] {
			t.Errorf("no update for %s", src)
		}
	}
}

func TestNewLookupClearsPriorBanner(t *testing.T) {
	stub := &stubSources{
		newsFn: func(name string) ([]models.NewsArticle, error) {
			if name == "Unknown" {
				return nil, nil
			}
			return []models.NewsArticle{{Title: "t"}}, nil
		},
	}
	s := newTestSession(stub)

	view := s.Lookup(context.Background(), "Unknown", "AAPL", models.Period1Y)
	if view.Error == "" {
		t.Fatal("expected banner on first cycle")
	}

	view = s.Lookup(context.Background(), "Apple", "AAPL", models.Period1Y)
	if view.Error != "" {
		t.Errorf("banner should clear on new lookup, got %q", view.Error)
	}
}
