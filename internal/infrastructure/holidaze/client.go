// Package holidaze implements the venue.Catalog interface against the
// Holidaze REST catalog.
package holidaze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vicwinsj/holidaze/internal/domain/venue"
	"github.com/vicwinsj/holidaze/internal/obs"
)

const defaultTimeout = 10 * time.Second

// Client talks JSON over HTTPS to the catalog. All responses arrive in a
// {"data": ...} envelope; errors in an {"errors": [{"message": ...}]} one.
type Client struct {
	hc      *http.Client
	baseURL string
	apiKey  string
	metrics *obs.Metrics
}

// New returns a client rooted at baseURL. apiKey may be empty for catalogs
// that do not require one; metrics may be nil.
func New(baseURL, apiKey string, timeout time.Duration, metrics *obs.Metrics) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		hc:      &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		metrics: metrics,
	}
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (e envelope) message() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Message
}

// List and Search both request embedded bookings: the date-range facet
// filters on each venue's booking list, so a collection without bookings
// would make that facet pass venues that are already booked.
func (c *Client) List(ctx context.Context) ([]venue.Venue, error) {
	params := url.Values{"_bookings": {"true"}}
	status, body, err := c.do(ctx, http.MethodGet, "/holidaze/venues", params, nil)
	if err != nil {
		c.metrics.IncCatalogError("list")
		return nil, fmt.Errorf("%w: list venues: %v", venue.ErrNetwork, err)
	}
	return c.decodeVenues("list", status, body)
}

func (c *Client) Search(ctx context.Context, query string) ([]venue.Venue, error) {
	params := url.Values{"q": {query}, "_bookings": {"true"}}
	status, body, err := c.do(ctx, http.MethodGet, "/holidaze/venues/search", params, nil)
	if err != nil {
		c.metrics.IncCatalogError("search")
		return nil, fmt.Errorf("%w: search venues: %v", venue.ErrNetwork, err)
	}
	return c.decodeVenues("search", status, body)
}

func (c *Client) Get(ctx context.Context, id string) (venue.Venue, error) {
	params := url.Values{"_bookings": {"true"}}
	status, body, err := c.do(ctx, http.MethodGet, "/holidaze/venues/"+url.PathEscape(id), params, nil)
	if err != nil {
		c.metrics.IncCatalogError("get")
		return venue.Venue{}, fmt.Errorf("%w: get venue %s: %v", venue.ErrNetwork, id, err)
	}

	var env envelope
	if jerr := json.Unmarshal(body, &env); jerr != nil && status < 400 {
		c.metrics.IncCatalogError("get")
		return venue.Venue{}, fmt.Errorf("%w: decode venue %s: %v", venue.ErrNetwork, id, jerr)
	}
	if err := c.statusError("get", status, env); err != nil {
		return venue.Venue{}, err
	}

	var v venue.Venue
	if err := json.Unmarshal(env.Data, &v); err != nil {
		c.metrics.IncCatalogError("get")
		return venue.Venue{}, fmt.Errorf("%w: decode venue %s: %v", venue.ErrNetwork, id, err)
	}
	return v, nil
}

func (c *Client) CreateBooking(ctx context.Context, req venue.ReservationRequest) (venue.Booking, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return venue.Booking{}, fmt.Errorf("encode booking: %w", err)
	}
	status, body, err := c.do(ctx, http.MethodPost, "/holidaze/bookings", nil, payload)
	if err != nil {
		c.metrics.IncCatalogError("book")
		return venue.Booking{}, fmt.Errorf("%w: create booking: %v", venue.ErrNetwork, err)
	}

	var env envelope
	if jerr := json.Unmarshal(body, &env); jerr != nil && status < 400 {
		c.metrics.IncCatalogError("book")
		return venue.Booking{}, fmt.Errorf("%w: decode booking: %v", venue.ErrNetwork, jerr)
	}
	if err := c.statusError("book", status, env); err != nil {
		return venue.Booking{}, err
	}

	var b venue.Booking
	if err := json.Unmarshal(env.Data, &b); err != nil {
		c.metrics.IncCatalogError("book")
		return venue.Booking{}, fmt.Errorf("%w: decode booking: %v", venue.ErrNetwork, err)
	}
	return b, nil
}

func (c *Client) decodeVenues(op string, status int, body []byte) ([]venue.Venue, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil && status < 400 {
		c.metrics.IncCatalogError(op)
		return nil, fmt.Errorf("%w: decode venues: %v", venue.ErrNetwork, err)
	}
	if err := c.statusError(op, status, env); err != nil {
		return nil, err
	}
	var vs []venue.Venue
	if err := json.Unmarshal(env.Data, &vs); err != nil {
		c.metrics.IncCatalogError(op)
		return nil, fmt.Errorf("%w: decode venues: %v", venue.ErrNetwork, err)
	}
	return vs, nil
}

// statusError maps HTTP status codes to the catalog error kinds callers
// match on. 409 is a booking race, 400/422 a payload problem, 404 an
// unknown venue; everything else >= 400 counts as a transport-level
// failure.
func (c *Client) statusError(op string, status int, env envelope) error {
	if status < 400 {
		return nil
	}
	c.metrics.IncCatalogError(op)
	msg := env.message()
	if msg == "" {
		msg = http.StatusText(status)
	}
	switch {
	case status == http.StatusConflict:
		return fmt.Errorf("%w: %s (status=%d)", venue.ErrConflict, msg, status)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s (status=%d)", venue.ErrNotFound, msg, status)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s (status=%d)", venue.ErrValidation, msg, status)
	default:
		return fmt.Errorf("%w: %s (status=%d)", venue.ErrNetwork, msg, status)
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) (int, []byte, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("accept", "application/json")
	if body != nil {
		req.Header.Set("content-type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	start := time.Now()
	res, err := c.hc.Do(req)
	c.metrics.ObserveCatalogLatency(strings.ToLower(method)+" "+path, time.Since(start).Seconds())
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, b, nil
}

var _ venue.Catalog = (*Client)(nil)
