package web

import (
	"net/url"
	"testing"
	"time"
)

func TestCriteriaFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set("q", "oslo")
	q.Set("guests", "3")
	q.Set("rating", "4")
	q.Set("wifi", "true")
	q.Set("priceMin", "100")
	q.Set("priceMax", "900")
	q.Set("dateFrom", "2026-06-15")
	q.Set("dateTo", "2026-06-17")

	c, err := criteriaFromQuery(q)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.SearchText != "oslo" || c.Guests != 3 || c.Rating != 4 || !c.Wifi || c.Parking {
		t.Fatalf("unexpected criteria: %+v", c)
	}
	if c.Price == nil || c.Price.Min != 100 || c.Price.Max != 900 {
		t.Fatalf("unexpected price band: %+v", c.Price)
	}
	if c.Dates == nil || !c.Dates.From.Equal(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected dates: %+v", c.Dates)
	}
}

func TestCriteriaFromQueryEmptyIsUnconstrained(t *testing.T) {
	c, err := criteriaFromQuery(url.Values{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.HasText() || c.Price != nil || c.Dates != nil || c.Guests != 0 || c.Rating != 0 {
		t.Fatalf("expected zero criteria, got %+v", c)
	}
}

func TestCriteriaFromQueryRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		set  map[string]string
	}{
		{"bad guests", map[string]string{"guests": "many"}},
		{"negative rating", map[string]string{"rating": "-1"}},
		{"bad priceMin", map[string]string{"priceMin": "cheap"}},
		{"inverted band", map[string]string{"priceMin": "900", "priceMax": "100"}},
		{"lonely dateFrom", map[string]string{"dateFrom": "2026-06-15"}},
		{"inverted dates", map[string]string{"dateFrom": "2026-06-17", "dateTo": "2026-06-15"}},
		{"zero-night dates", map[string]string{"dateFrom": "2026-06-15", "dateTo": "2026-06-15"}},
		{"bad date", map[string]string{"dateFrom": "June 15th", "dateTo": "2026-06-17"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := url.Values{}
			for k, v := range tc.set {
				q.Set(k, v)
			}
			if _, err := criteriaFromQuery(q); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseDayAcceptsRFC3339(t *testing.T) {
	got, err := parseDay("2026-06-15T14:30:00Z")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !got.Equal(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected midnight UTC, got %v", got)
	}
}
