package web

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/vicwinsj/holidaze/internal/domain/availability"
	"github.com/vicwinsj/holidaze/internal/domain/venue"
)

// criteriaFromQuery builds one criteria snapshot from the search endpoint's
// query string. Absent parameters leave their facet unconstrained.
func criteriaFromQuery(q url.Values) (venue.Criteria, error) {
	c := venue.Criteria{SearchText: q.Get("q")}

	if v := q.Get("guests"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return venue.Criteria{}, fmt.Errorf("invalid guests %q", v)
		}
		c.Guests = n
	}
	if v := q.Get("rating"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return venue.Criteria{}, fmt.Errorf("invalid rating %q", v)
		}
		c.Rating = n
	}

	c.Wifi = q.Get("wifi") == "true"
	c.Parking = q.Get("parking") == "true"
	c.Breakfast = q.Get("breakfast") == "true"
	c.Pets = q.Get("pets") == "true"

	minStr, maxStr := q.Get("priceMin"), q.Get("priceMax")
	if minStr != "" || maxStr != "" {
		band := venue.PriceBand{Min: 0, Max: math.MaxFloat64}
		if minStr != "" {
			f, err := strconv.ParseFloat(minStr, 64)
			if err != nil || f < 0 {
				return venue.Criteria{}, fmt.Errorf("invalid priceMin %q", minStr)
			}
			band.Min = f
		}
		if maxStr != "" {
			f, err := strconv.ParseFloat(maxStr, 64)
			if err != nil || f < 0 {
				return venue.Criteria{}, fmt.Errorf("invalid priceMax %q", maxStr)
			}
			band.Max = f
		}
		if band.Min > band.Max {
			return venue.Criteria{}, fmt.Errorf("priceMin exceeds priceMax")
		}
		c.Price = &band
	}

	fromStr, toStr := q.Get("dateFrom"), q.Get("dateTo")
	if fromStr != "" || toStr != "" {
		if fromStr == "" || toStr == "" {
			return venue.Criteria{}, fmt.Errorf("dateFrom and dateTo must be given together")
		}
		from, err := parseDay(fromStr)
		if err != nil {
			return venue.Criteria{}, fmt.Errorf("dateFrom: %w", err)
		}
		to, err := parseDay(toStr)
		if err != nil {
			return venue.Criteria{}, fmt.Errorf("dateTo: %w", err)
		}
		if !from.Before(to) {
			return venue.Criteria{}, fmt.Errorf("dateFrom must be before dateTo")
		}
		c.Dates = &availability.DateRange{From: from, To: to}
	}

	return c, nil
}

// parseDay accepts YYYY-MM-DD or RFC 3339 and normalizes to midnight UTC.
func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return availability.Day(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return availability.Day(t), nil
}
