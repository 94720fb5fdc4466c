package cmd

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vicwinsj/holidaze/internal/config"
	"github.com/vicwinsj/holidaze/internal/domain/venue"
	"github.com/vicwinsj/holidaze/internal/infrastructure/catalogcache"
	"github.com/vicwinsj/holidaze/internal/infrastructure/holidaze"
	"github.com/vicwinsj/holidaze/internal/obs"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

// newCatalog builds the remote client wrapped in the read-through cache.
func newCatalog(cfg config.Config, metrics *obs.Metrics) venue.Catalog {
	client := holidaze.New(cfg.CatalogBaseURL, cfg.CatalogAPIKey, cfg.CatalogTimeout, metrics)
	return catalogcache.New(client, cfg.CacheTTL, cfg.CacheMaxItems, metrics)
}

func newMetrics() *obs.Metrics {
	return obs.NewMetrics(prometheus.NewRegistry())
}
