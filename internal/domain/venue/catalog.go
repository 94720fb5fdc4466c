package venue

import "context"

// Catalog is the remote venue store. The domain only reads and writes
// through this interface; the HTTP implementation lives in
// internal/infrastructure.
type Catalog interface {
	// List returns the full venue collection, each venue carrying its
	// booking list so date filtering can run over the result.
	List(ctx context.Context) ([]Venue, error)

	// Search runs a server-side free-text query over name and description.
	// Results carry bookings, same as List.
	Search(ctx context.Context, query string) ([]Venue, error)

	// Get returns a single venue including its booking list.
	Get(ctx context.Context, id string) (Venue, error)

	// CreateBooking submits a reservation. The returned booking is the
	// server's record; callers must re-fetch the venue for the
	// authoritative updated booking list rather than appending it locally.
	CreateBooking(ctx context.Context, req ReservationRequest) (Booking, error)
}
