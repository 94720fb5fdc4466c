package venue

import (
	"math"
	"strings"
	"time"

	"github.com/vicwinsj/holidaze/internal/domain/availability"
)

// PriceBand is an inclusive [Min, Max] nightly price constraint.
type PriceBand struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultPriceBand is the permissive sentinel band that matches any price.
func DefaultPriceBand() PriceBand {
	return PriceBand{Min: 0, Max: math.MaxFloat64}
}

func (b PriceBand) contains(price float64) bool {
	return price >= b.Min && price <= b.Max
}

// Criteria is one snapshot of every search facet. The zero value matches
// everything. Snapshots are replaced wholesale on each edit, never mutated
// field by field from outside.
//
// Guests and Rating treat values <= 1 as "no constraint". That mirrors the
// upstream UI, whose permissive default for both sliders is 1, which means
// "show only one-star venues" cannot be expressed distinctly from "no
// rating filter". Kept as-is rather than silently fixed, since the correct
// behavior is unspecified upstream.
type Criteria struct {
	SearchText string
	Price      *PriceBand
	Guests     int
	Wifi       bool
	Parking    bool
	Breakfast  bool
	Pets       bool
	Rating     int
	Dates      *availability.DateRange
}

// HasText reports whether the free-text facet is active. Whitespace-only
// text imposes no constraint.
func (c Criteria) HasText() bool {
	return strings.TrimSpace(c.SearchText) != ""
}

// Query returns the trimmed free-text query.
func (c Criteria) Query() string {
	return strings.TrimSpace(c.SearchText)
}

// Filter returns the venues matching every active facet, preserving input
// order. Facets combine as a pure conjunction: each active facet must pass,
// inactive facets pass everything. The input slice is never mutated and
// with a zero Criteria the result is the input collection unchanged.
func Filter(venues []Venue, c Criteria, today time.Time) []Venue {
	out := make([]Venue, 0, len(venues))
	for _, v := range venues {
		if Matches(v, c, today) {
			out = append(out, v)
		}
	}
	return out
}

// Matches reports whether a single venue passes every active facet.
func Matches(v Venue, c Criteria, today time.Time) bool {
	if c.HasText() && !matchesText(v, c.Query()) {
		return false
	}
	if c.Guests > 1 && v.MaxGuests < c.Guests {
		return false
	}
	if c.Wifi && !v.Meta.Wifi {
		return false
	}
	if c.Parking && !v.Meta.Parking {
		return false
	}
	if c.Breakfast && !v.Meta.Breakfast {
		return false
	}
	if c.Pets && !v.Meta.Pets {
		return false
	}
	if c.Rating > 1 && v.Rating < float64(c.Rating) {
		return false
	}
	if c.Price != nil && !c.Price.contains(v.Price) {
		return false
	}
	if c.Dates != nil {
		resolved := availability.Resolve(v.BookedRanges(), today)
		if !resolved.IsRangeAvailable(*c.Dates) {
			return false
		}
	}
	return true
}

func matchesText(v Venue, query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{v.Name, v.Location.City, v.Location.Country, v.Description} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
