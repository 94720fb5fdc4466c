package usecases

import (
	"context"
	"sync"

	"github.com/vicwinsj/holidaze/internal/domain/venue"
)

// fakeCatalog lets each test script the remote catalog's behavior and
// observe how often the workflow touched the network.
type fakeCatalog struct {
	mu sync.Mutex

	listVenues []venue.Venue
	venues     map[string]venue.Venue

	searchFunc func(ctx context.Context, query string) ([]venue.Venue, error)
	createFunc func(ctx context.Context, req venue.ReservationRequest) (venue.Booking, error)

	listCalls   int
	searchCalls int
	getCalls    int
	createCalls int
}

func (f *fakeCatalog) List(ctx context.Context) ([]venue.Venue, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	return f.listVenues, nil
}

func (f *fakeCatalog) Search(ctx context.Context, query string) ([]venue.Venue, error) {
	f.mu.Lock()
	f.searchCalls++
	fn := f.searchFunc
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, query)
	}
	return nil, nil
}

func (f *fakeCatalog) Get(ctx context.Context, id string) (venue.Venue, error) {
	f.mu.Lock()
	f.getCalls++
	v, ok := f.venues[id]
	f.mu.Unlock()
	if !ok {
		return venue.Venue{}, venue.ErrNotFound
	}
	return v, nil
}

func (f *fakeCatalog) CreateBooking(ctx context.Context, req venue.ReservationRequest) (venue.Booking, error) {
	f.mu.Lock()
	f.createCalls++
	fn := f.createFunc
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return venue.Booking{ID: "new", DateFrom: req.DateFrom, DateTo: req.DateTo, Guests: req.Guests}, nil
}

func (f *fakeCatalog) counts() (list, search, get, create int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.searchCalls, f.getCalls, f.createCalls
}
