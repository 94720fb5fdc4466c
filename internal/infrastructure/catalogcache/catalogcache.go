// Package catalogcache wraps a venue.Catalog with a TTL'd read-through
// cache so repeated listing and detail reads do not hammer the remote
// catalog.
package catalogcache

import (
	"context"
	"time"

	"github.com/karlseguin/ccache/v3"

	"github.com/vicwinsj/holidaze/internal/domain/venue"
	"github.com/vicwinsj/holidaze/internal/obs"
)

const collectionKey = "venues:all"

// Catalog caches List and Get. Search always goes remote: free-text results
// depend on server-side matching and are not reused across queries.
// CreateBooking passes through and drops the affected entries, so the
// post-submit reconciliation fetch always sees fresh state.
type Catalog struct {
	next    venue.Catalog
	ttl     time.Duration
	lists   *ccache.Cache[[]venue.Venue]
	venues  *ccache.Cache[venue.Venue]
	metrics *obs.Metrics
}

func New(next venue.Catalog, ttl time.Duration, maxItems int64, metrics *obs.Metrics) *Catalog {
	if maxItems <= 0 {
		maxItems = 1000
	}
	return &Catalog{
		next:    next,
		ttl:     ttl,
		lists:   ccache.New(ccache.Configure[[]venue.Venue]().MaxSize(8)),
		venues:  ccache.New(ccache.Configure[venue.Venue]().MaxSize(maxItems)),
		metrics: metrics,
	}
}

func (c *Catalog) List(ctx context.Context) ([]venue.Venue, error) {
	if item := c.lists.Get(collectionKey); item != nil && !item.Expired() {
		c.metrics.IncCacheHit()
		return item.Value(), nil
	}
	vs, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	c.lists.Set(collectionKey, vs, c.ttl)
	return vs, nil
}

func (c *Catalog) Search(ctx context.Context, query string) ([]venue.Venue, error) {
	return c.next.Search(ctx, query)
}

func (c *Catalog) Get(ctx context.Context, id string) (venue.Venue, error) {
	if item := c.venues.Get(venueKey(id)); item != nil && !item.Expired() {
		c.metrics.IncCacheHit()
		return item.Value(), nil
	}
	v, err := c.next.Get(ctx, id)
	if err != nil {
		return venue.Venue{}, err
	}
	c.venues.Set(venueKey(id), v, c.ttl)
	return v, nil
}

func (c *Catalog) CreateBooking(ctx context.Context, req venue.ReservationRequest) (venue.Booking, error) {
	b, err := c.next.CreateBooking(ctx, req)
	if err != nil {
		return venue.Booking{}, err
	}
	c.Invalidate(req.VenueID)
	return b, nil
}

// Invalidate drops the cached entry for one venue plus the collection
// listing that embeds it.
func (c *Catalog) Invalidate(id string) {
	c.venues.Delete(venueKey(id))
	c.lists.Delete(collectionKey)
}

func venueKey(id string) string {
	return "venue:" + id
}

var _ venue.Catalog = (*Catalog)(nil)
