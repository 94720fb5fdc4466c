package venue

import (
	"time"

	"github.com/vicwinsj/holidaze/internal/domain/availability"
)

// Media is one image attached to a venue listing.
type Media struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Meta holds the amenity flags a venue advertises.
type Meta struct {
	Wifi      bool `json:"wifi"`
	Parking   bool `json:"parking"`
	Breakfast bool `json:"breakfast"`
	Pets      bool `json:"pets"`
}

// Location is the venue's address. City and country participate in
// free-text matching; the rest is display-only.
type Location struct {
	Address   string `json:"address,omitempty"`
	City      string `json:"city"`
	Zip       string `json:"zip,omitempty"`
	Country   string `json:"country"`
	Continent string `json:"continent,omitempty"`
}

// Customer identifies who placed a booking.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Booking is one reserved stay at a venue. Bookings are immutable here:
// they are created by the catalog's reservation endpoint and only ever read
// back to compute availability.
type Booking struct {
	ID       string    `json:"id"`
	DateFrom time.Time `json:"dateFrom"`
	DateTo   time.Time `json:"dateTo"`
	Guests   int       `json:"guests"`
	Customer Customer  `json:"customer"`
}

// Range returns the booking's stay as a whole-day blocked range.
func (b Booking) Range() availability.DateRange {
	return availability.DateRange{
		From: availability.Day(b.DateFrom),
		To:   availability.Day(b.DateTo),
	}
}

// Venue is one lodging listing as served by the catalog. Venues are owned
// by value by whichever component fetched them; updates arrive by replacing
// the whole object after a server round-trip, never by mutating a shared
// reference.
type Venue struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Media       []Media   `json:"media,omitempty"`
	Price       float64   `json:"price"`
	MaxGuests   int       `json:"maxGuests"`
	Rating      float64   `json:"rating"`
	Meta        Meta      `json:"meta"`
	Location    Location  `json:"location"`
	Bookings    []Booking `json:"bookings,omitempty"`
}

// BookedRanges maps the venue's booking list to blocked date ranges,
// normalized to day granularity.
func (v Venue) BookedRanges() []availability.DateRange {
	out := make([]availability.DateRange, 0, len(v.Bookings))
	for _, b := range v.Bookings {
		out = append(out, b.Range())
	}
	return out
}

// ReservationRequest is the transient payload for one submission attempt.
type ReservationRequest struct {
	VenueID  string    `json:"venueId"`
	DateFrom time.Time `json:"dateFrom"`
	DateTo   time.Time `json:"dateTo"`
	Guests   int       `json:"guests"`
}

// Range returns the requested stay normalized to day granularity.
func (r ReservationRequest) Range() availability.DateRange {
	return availability.DateRange{
		From: availability.Day(r.DateFrom),
		To:   availability.Day(r.DateTo),
	}
}
