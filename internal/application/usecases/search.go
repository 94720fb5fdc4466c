package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vicwinsj/holidaze/internal/domain/venue"
	"github.com/vicwinsj/holidaze/internal/obs"
)

// ErrSuperseded is returned when a search response arrives after newer
// criteria were applied. The response is discarded; the caller's view of
// the result set is whatever the latest criteria produced.
var ErrSuperseded = errors.New("search superseded by newer criteria")

// SearchError wraps a remote free-text search failure. It never corrupts
// the locally held result set, and the orchestrator never silently falls
// back to unfiltered results.
type SearchError struct {
	Query string
	Err   error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("remote search %q: %v", e.Query, e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// SearchVenues arbitrates between the two query paths: without free text
// the filter pipeline runs over the last-known local collection; with free
// text the remote search provides the base set and the remaining facets
// narrow it locally.
//
// Every Apply restarts the pipeline from scratch under a fresh generation.
// A response belonging to an older generation is discarded on arrival;
// this is logical cancellation only, the transport request itself is not
// aborted.
type SearchVenues struct {
	catalog venue.Catalog
	log     *slog.Logger
	metrics *obs.Metrics
	now     func() time.Time

	mu       sync.Mutex
	gen      uint64
	base     []venue.Venue
	results  []venue.Venue
	criteria venue.Criteria
}

func NewSearchVenues(catalog venue.Catalog, log *slog.Logger, metrics *obs.Metrics) *SearchVenues {
	if log == nil {
		log = slog.Default()
	}
	return &SearchVenues{
		catalog: catalog,
		log:     log,
		metrics: metrics,
		now:     time.Now,
	}
}

// Refresh reloads the base collection used by the local filter path.
func (s *SearchVenues) Refresh(ctx context.Context) error {
	vs, err := s.catalog.List(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.base = vs
	s.mu.Unlock()
	return nil
}

// Apply installs criteria as the current snapshot and recomputes the
// result set. The returned slice is also stored for Results, unless a
// newer Apply superseded this one while its remote search was in flight.
func (s *SearchVenues) Apply(ctx context.Context, c venue.Criteria) ([]venue.Venue, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.criteria = c
	base := s.base
	s.mu.Unlock()

	if !c.HasText() {
		s.metrics.IncSearch("local")
		return s.install(gen, venue.Filter(base, c, s.now()))
	}

	s.metrics.IncSearch("remote")
	found, err := s.catalog.Search(ctx, c.Query())
	if err != nil {
		s.log.Warn("remote search failed", "query", c.Query(), "err", err)
		return nil, &SearchError{Query: c.Query(), Err: err}
	}

	// The remote result is the new base set; the text facet is already
	// satisfied server-side, so only the remaining facets apply.
	rest := c
	rest.SearchText = ""
	return s.install(gen, venue.Filter(found, rest, s.now()))
}

func (s *SearchVenues) install(gen uint64, out []venue.Venue) ([]venue.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.metrics.IncStaleSearchDrop()
		s.log.Debug("discarding stale search response", "gen", gen, "current", s.gen)
		return nil, ErrSuperseded
	}
	s.results = out
	return out, nil
}

// Results returns the snapshot produced by the most recent non-superseded
// Apply.
func (s *SearchVenues) Results() []venue.Venue {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]venue.Venue, len(s.results))
	copy(out, s.results)
	return out
}

// Criteria returns the latest applied criteria snapshot.
func (s *SearchVenues) Criteria() venue.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}
