package usecases

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vicwinsj/holidaze/internal/domain/venue"
)

var searchToday = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func baseCollection() []venue.Venue {
	return []venue.Venue{
		{ID: "v1", Name: "Fjord Cabin", Price: 500, MaxGuests: 4, Meta: venue.Meta{Wifi: true},
			Location: venue.Location{City: "Oslo", Country: "Norway"}},
		{ID: "v2", Name: "Harbour Loft", Price: 1500, MaxGuests: 2, Meta: venue.Meta{Wifi: true},
			Location: venue.Location{City: "Bergen", Country: "Norway"}},
		{ID: "v3", Name: "Budget Room", Price: 400, MaxGuests: 6,
			Location: venue.Location{City: "Oslo", Country: "Norway"}},
	}
}

func newTestSearch(f *fakeCatalog) *SearchVenues {
	s := NewSearchVenues(f, nil, nil)
	s.now = func() time.Time { return searchToday }
	return s
}

func venueIDs(vs []venue.Venue) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.ID)
	}
	return out
}

func TestSearchLocalPath(t *testing.T) {
	f := &fakeCatalog{listVenues: baseCollection()}
	s := newTestSearch(f)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	got, err := s.Apply(context.Background(), venue.Criteria{Wifi: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !reflect.DeepEqual(venueIDs(got), []string{"v1", "v2"}) {
		t.Fatalf("got %v", venueIDs(got))
	}
	if _, search, _, _ := f.counts(); search != 0 {
		t.Fatal("no free text means no remote search")
	}
	if !reflect.DeepEqual(venueIDs(s.Results()), []string{"v1", "v2"}) {
		t.Fatalf("results snapshot not installed: %v", venueIDs(s.Results()))
	}
}

func TestSearchRemotePathNarrowsByRemainingFacets(t *testing.T) {
	f := &fakeCatalog{listVenues: baseCollection()}
	f.searchFunc = func(ctx context.Context, query string) ([]venue.Venue, error) {
		if query != "oslo" {
			t.Fatalf("unexpected query %q", query)
		}
		all := baseCollection()
		return []venue.Venue{all[0], all[2]}, nil // the two Oslo venues
	}
	s := newTestSearch(f)

	got, err := s.Apply(context.Background(), venue.Criteria{SearchText: " oslo ", Wifi: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !reflect.DeepEqual(venueIDs(got), []string{"v1"}) {
		t.Fatalf("remote base should be narrowed by wifi facet, got %v", venueIDs(got))
	}
	if _, search, _, _ := f.counts(); search != 1 {
		t.Fatalf("expected one remote search, got %d", search)
	}
}

func TestSearchStaleResponseDiscarded(t *testing.T) {
	all := baseCollection()
	waiting := map[string]chan struct{}{
		"oslo":   make(chan struct{}),
		"bergen": make(chan struct{}),
	}
	arrived := map[string]chan struct{}{
		"oslo":   make(chan struct{}),
		"bergen": make(chan struct{}),
	}
	f := &fakeCatalog{}
	f.searchFunc = func(ctx context.Context, query string) ([]venue.Venue, error) {
		close(arrived[query])
		<-waiting[query]
		switch query {
		case "oslo":
			return []venue.Venue{all[0], all[2]}, nil
		default:
			return []venue.Venue{all[1]}, nil
		}
	}
	s := newTestSearch(f)

	osloDone := make(chan error, 1)
	go func() {
		_, err := s.Apply(context.Background(), venue.Criteria{SearchText: "oslo"})
		osloDone <- err
	}()
	<-arrived["oslo"]

	bergenDone := make(chan error, 1)
	go func() {
		_, err := s.Apply(context.Background(), venue.Criteria{SearchText: "bergen"})
		bergenDone <- err
	}()
	<-arrived["bergen"]

	// bergen returns first, then the stale oslo response arrives
	close(waiting["bergen"])
	if err := <-bergenDone; err != nil {
		t.Fatalf("bergen apply: %v", err)
	}
	close(waiting["oslo"])
	if err := <-osloDone; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("stale oslo response should be discarded, got %v", err)
	}

	if !reflect.DeepEqual(venueIDs(s.Results()), []string{"v2"}) {
		t.Fatalf("bergen result set was overwritten: %v", venueIDs(s.Results()))
	}
}

func TestSearchRemoteFailureKeepsLocalState(t *testing.T) {
	f := &fakeCatalog{listVenues: baseCollection()}
	s := newTestSearch(f)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := s.Apply(context.Background(), venue.Criteria{}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	before := venueIDs(s.Results())

	f.mu.Lock()
	f.searchFunc = func(ctx context.Context, query string) ([]venue.Venue, error) {
		return nil, errors.New("search index unreachable")
	}
	f.mu.Unlock()

	_, err := s.Apply(context.Background(), venue.Criteria{SearchText: "oslo"})
	var se *SearchError
	if !errors.As(err, &se) {
		t.Fatalf("expected SearchError, got %v", err)
	}
	if se.Query != "oslo" {
		t.Fatalf("SearchError should carry the query, got %q", se.Query)
	}
	if !reflect.DeepEqual(venueIDs(s.Results()), before) {
		t.Fatal("remote failure must not corrupt the held result set")
	}
}

func TestSearchCriteriaSnapshot(t *testing.T) {
	f := &fakeCatalog{listVenues: baseCollection()}
	s := newTestSearch(f)
	_ = s.Refresh(context.Background())

	c := venue.Criteria{Guests: 4}
	if _, err := s.Apply(context.Background(), c); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := s.Criteria(); got.Guests != 4 {
		t.Fatalf("criteria snapshot not installed: %+v", got)
	}
}
