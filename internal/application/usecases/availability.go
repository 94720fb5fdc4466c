package usecases

import (
	"context"
	"time"

	"github.com/vicwinsj/holidaze/internal/domain/availability"
	"github.com/vicwinsj/holidaze/internal/domain/venue"
)

// GetAvailability fetches a venue and derives the date ranges a calendar
// should treat as blocked: every existing booking plus all past dates.
type GetAvailability struct {
	Catalog venue.Catalog

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

func (u GetAvailability) Execute(ctx context.Context, id string) ([]availability.DateRange, error) {
	v, err := u.Catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now
	if u.Now != nil {
		now = u.Now
	}
	resolved := availability.Resolve(v.BookedRanges(), now())
	return resolved.DisabledRanges(), nil
}
