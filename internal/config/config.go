package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr string

	CatalogBaseURL string
	CatalogAPIKey  string
	CatalogTimeout time.Duration

	CacheTTL      time.Duration
	CacheMaxItems int64
}

func FromEnv() (Config, error) {
	cfg := Config{
		ListenAddr:     getenv("LISTEN_ADDR", ":8080"),
		CatalogBaseURL: getenv("CATALOG_BASE_URL", "https://v2.api.noroff.dev"),
		CatalogAPIKey:  os.Getenv("CATALOG_API_KEY"),
	}

	timeoutSec, err := strconv.Atoi(getenv("CATALOG_TIMEOUT_SECONDS", "10"))
	if err != nil || timeoutSec < 1 {
		return Config{}, fmt.Errorf("invalid CATALOG_TIMEOUT_SECONDS")
	}
	cfg.CatalogTimeout = time.Duration(timeoutSec) * time.Second

	ttlSec, err := strconv.Atoi(getenv("CACHE_TTL_SECONDS", "60"))
	if err != nil || ttlSec < 1 {
		return Config{}, fmt.Errorf("invalid CACHE_TTL_SECONDS")
	}
	cfg.CacheTTL = time.Duration(ttlSec) * time.Second

	maxItems, err := strconv.ParseInt(getenv("CACHE_MAX_ITEMS", "1000"), 10, 64)
	if err != nil || maxItems < 1 {
		return Config{}, fmt.Errorf("invalid CACHE_MAX_ITEMS")
	}
	cfg.CacheMaxItems = maxItems

	return cfg, nil
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
