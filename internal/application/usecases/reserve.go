package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vicwinsj/holidaze/internal/domain/availability"
	"github.com/vicwinsj/holidaze/internal/domain/venue"
	"github.com/vicwinsj/holidaze/internal/obs"
)

// Local validation error kinds. These are recoverable in place: the caller
// edits the selection and retries without any re-fetch.
var (
	ErrInvalidRange   = errors.New("stay must be at least one night")
	ErrOverCapacity   = errors.New("guest count exceeds venue capacity")
	ErrUnavailable    = errors.New("selected dates are not available")
	ErrSubmitInFlight = errors.New("a reservation for this venue is already submitting")
)

// ReservationState tracks where a submission attempt ended up.
type ReservationState int

const (
	StateDraft ReservationState = iota
	StateValidating
	StateSubmitting
	StateReconciling
	StateConfirmed
	StateFailed
)

func (s ReservationState) String() string {
	switch s {
	case StateDraft:
		return "draft"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateReconciling:
		return "reconciling"
	case StateConfirmed:
		return "confirmed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one submission attempt. On confirmation Venue
// holds the reconciled state fetched after the booking was accepted.
type Outcome struct {
	State   ReservationState
	Booking venue.Booking
	Venue   venue.Venue
}

// Reserve runs the reservation workflow: validate against the locally held
// venue, submit to the catalog, then reconcile by re-fetching the venue so
// the updated booking list comes from the server rather than a speculative
// local append.
type Reserve struct {
	catalog venue.Catalog
	log     *slog.Logger
	metrics *obs.Metrics
	now     func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewReserve(catalog venue.Catalog, log *slog.Logger, metrics *obs.Metrics) *Reserve {
	if log == nil {
		log = slog.Default()
	}
	return &Reserve{
		catalog:  catalog,
		log:      log,
		metrics:  metrics,
		now:      time.Now,
		inflight: make(map[string]struct{}),
	}
}

// Validate checks a draft selection against the venue's constraints and
// availability without touching the network. A zero-night range is always
// rejected regardless of availability.
func (u *Reserve) Validate(v venue.Venue, req venue.ReservationRequest, today time.Time) error {
	r := req.Range()
	if !r.From.Before(r.To) {
		return ErrInvalidRange
	}
	if req.Guests > v.MaxGuests {
		return fmt.Errorf("%w: %d guests, venue sleeps %d", ErrOverCapacity, req.Guests, v.MaxGuests)
	}
	resolved := availability.Resolve(v.BookedRanges(), today)
	if !resolved.IsRangeAvailable(r) {
		return ErrUnavailable
	}
	return nil
}

// Execute runs the full flow for one attempt. Exactly one attempt may be
// in flight per venue: a concurrent second submit is rejected locally with
// ErrSubmitInFlight before any network call, guarding against double-click
// duplicates. Validation failures return the attempt to draft, also
// without a network call.
func (u *Reserve) Execute(ctx context.Context, v venue.Venue, req venue.ReservationRequest) (Outcome, error) {
	if req.VenueID == "" {
		req.VenueID = v.ID
	}
	if req.VenueID != v.ID {
		return Outcome{State: StateDraft}, fmt.Errorf("request venue %q does not match venue %q", req.VenueID, v.ID)
	}

	if !u.begin(v.ID) {
		return Outcome{State: StateDraft}, ErrSubmitInFlight
	}
	defer u.end(v.ID)

	if err := u.Validate(v, req, u.now()); err != nil {
		return Outcome{State: StateDraft}, err
	}

	booking, err := u.catalog.CreateBooking(ctx, req)
	if err != nil {
		u.metrics.IncReservation("failed")
		u.log.Warn("booking submission failed", "venue", v.ID, "err", err)
		return Outcome{State: StateFailed}, err
	}

	// Reconcile: another client may have booked concurrently, so the
	// refreshed venue is the sole source of truth for the booking list.
	fresh, err := u.catalog.Get(ctx, v.ID)
	if err != nil {
		u.metrics.IncReservation("failed")
		return Outcome{State: StateFailed, Booking: booking}, fmt.Errorf("reconcile venue %s: %w", v.ID, err)
	}

	u.metrics.IncReservation("confirmed")
	u.log.Info("reservation confirmed", "venue", v.ID, "booking", booking.ID,
		"from", booking.DateFrom.Format("2006-01-02"), "to", booking.DateTo.Format("2006-01-02"))
	return Outcome{State: StateConfirmed, Booking: booking, Venue: fresh}, nil
}

func (u *Reserve) begin(venueID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, busy := u.inflight[venueID]; busy {
		return false
	}
	u.inflight[venueID] = struct{}{}
	return true
}

func (u *Reserve) end(venueID string) {
	u.mu.Lock()
	delete(u.inflight, venueID)
	u.mu.Unlock()
}
