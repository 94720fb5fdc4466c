package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vicwinsj/holidaze/internal/domain/venue"
)

var reserveToday = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func bookedVenue() venue.Venue {
	return venue.Venue{
		ID: "v1", Name: "Fjord Cabin", MaxGuests: 4, Price: 500,
		Bookings: []venue.Booking{
			{ID: "b1", DateFrom: date(2026, 6, 10), DateTo: date(2026, 6, 15), Guests: 2},
		},
	}
}

func newTestReserve(catalog venue.Catalog) *Reserve {
	r := NewReserve(catalog, nil, nil)
	r.now = func() time.Time { return reserveToday }
	return r
}

func TestReserveRejectsZeroNightRange(t *testing.T) {
	f := &fakeCatalog{venues: map[string]venue.Venue{"v1": bookedVenue()}}
	r := newTestReserve(f)

	out, err := r.Execute(context.Background(), bookedVenue(), venue.ReservationRequest{
		VenueID: "v1", DateFrom: date(2026, 6, 20), DateTo: date(2026, 6, 20), Guests: 2,
	})
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if out.State != StateDraft {
		t.Fatalf("validation failure should return to draft, got %v", out.State)
	}
	if _, _, _, create := f.counts(); create != 0 {
		t.Fatal("validation failure must not reach the network")
	}
}

func TestReserveRejectsOverCapacity(t *testing.T) {
	f := &fakeCatalog{venues: map[string]venue.Venue{"v1": bookedVenue()}}
	r := newTestReserve(f)

	_, err := r.Execute(context.Background(), bookedVenue(), venue.ReservationRequest{
		VenueID: "v1", DateFrom: date(2026, 6, 20), DateTo: date(2026, 6, 22), Guests: 5,
	})
	if !errors.Is(err, ErrOverCapacity) {
		t.Fatalf("expected ErrOverCapacity, got %v", err)
	}
	if _, _, _, create := f.counts(); create != 0 {
		t.Fatal("validation failure must not reach the network")
	}
}

func TestReserveRejectsUnavailableRange(t *testing.T) {
	f := &fakeCatalog{venues: map[string]venue.Venue{"v1": bookedVenue()}}
	r := newTestReserve(f)

	// interior of the existing Jun 10-15 booking
	_, err := r.Execute(context.Background(), bookedVenue(), venue.ReservationRequest{
		VenueID: "v1", DateFrom: date(2026, 6, 12), DateTo: date(2026, 6, 14), Guests: 2,
	})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestReserveBackToBackConfirmsAndReconciles(t *testing.T) {
	refreshed := bookedVenue()
	refreshed.Bookings = append(refreshed.Bookings, venue.Booking{
		ID: "b2", DateFrom: date(2026, 6, 15), DateTo: date(2026, 6, 17), Guests: 2,
	})
	f := &fakeCatalog{venues: map[string]venue.Venue{"v1": refreshed}}
	r := newTestReserve(f)

	// starts exactly where the existing booking ends
	out, err := r.Execute(context.Background(), bookedVenue(), venue.ReservationRequest{
		VenueID: "v1", DateFrom: date(2026, 6, 15), DateTo: date(2026, 6, 17), Guests: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.State != StateConfirmed {
		t.Fatalf("expected confirmed, got %v", out.State)
	}
	if len(out.Venue.Bookings) != 2 {
		t.Fatalf("reconciled venue should carry the server's booking list, got %d bookings", len(out.Venue.Bookings))
	}
	if _, _, get, create := f.counts(); create != 1 || get != 1 {
		t.Fatalf("expected one submit and one reconcile fetch, got create=%d get=%d", create, get)
	}
}

func TestReserveRejectsSecondSubmitLocally(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	f := &fakeCatalog{venues: map[string]venue.Venue{"v1": bookedVenue()}}
	f.createFunc = func(ctx context.Context, req venue.ReservationRequest) (venue.Booking, error) {
		close(started)
		<-release
		return venue.Booking{ID: "new"}, nil
	}
	r := newTestReserve(f)

	req := venue.ReservationRequest{
		VenueID: "v1", DateFrom: date(2026, 6, 20), DateTo: date(2026, 6, 22), Guests: 2,
	}

	done := make(chan error, 1)
	go func() {
		_, err := r.Execute(context.Background(), bookedVenue(), req)
		done <- err
	}()
	<-started

	out, err := r.Execute(context.Background(), bookedVenue(), req)
	if !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}
	if out.State != StateDraft {
		t.Fatalf("duplicate submit should stay in draft, got %v", out.State)
	}
	if _, _, _, create := f.counts(); create != 1 {
		t.Fatalf("second submit must not reach the server, got %d create calls", create)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit should succeed, got %v", err)
	}
}

func TestReserveSurfacesServerConflict(t *testing.T) {
	f := &fakeCatalog{venues: map[string]venue.Venue{"v1": bookedVenue()}}
	f.createFunc = func(ctx context.Context, req venue.ReservationRequest) (venue.Booking, error) {
		return venue.Booking{}, fmt.Errorf("%w: slot taken", venue.ErrConflict)
	}
	r := newTestReserve(f)

	out, err := r.Execute(context.Background(), bookedVenue(), venue.ReservationRequest{
		VenueID: "v1", DateFrom: date(2026, 6, 20), DateTo: date(2026, 6, 22), Guests: 2,
	})
	if !errors.Is(err, venue.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if out.State != StateFailed {
		t.Fatalf("expected failed, got %v", out.State)
	}
}

func TestReserveFailsWhenReconcileFetchFails(t *testing.T) {
	f := &fakeCatalog{venues: map[string]venue.Venue{}} // Get will return ErrNotFound
	r := newTestReserve(f)

	v := bookedVenue()
	out, err := r.Execute(context.Background(), v, venue.ReservationRequest{
		VenueID: "v1", DateFrom: date(2026, 6, 20), DateTo: date(2026, 6, 22), Guests: 2,
	})
	if err == nil {
		t.Fatal("expected reconcile error")
	}
	if out.State != StateFailed {
		t.Fatalf("expected failed, got %v", out.State)
	}
	if out.Booking.ID == "" {
		t.Fatal("outcome should carry the accepted booking even when reconcile fails")
	}
}

func TestReserveVenueMismatch(t *testing.T) {
	f := &fakeCatalog{venues: map[string]venue.Venue{"v1": bookedVenue()}}
	r := newTestReserve(f)

	_, err := r.Execute(context.Background(), bookedVenue(), venue.ReservationRequest{
		VenueID: "other", DateFrom: date(2026, 6, 20), DateTo: date(2026, 6, 22), Guests: 2,
	})
	if err == nil {
		t.Fatal("expected mismatch error")
	}
}
