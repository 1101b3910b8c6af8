package services

import (
	"context"
	"github.com/maxaizer/hh-sync/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"time"
)

type remoteSource interface {
	FetchEmployer(ctx context.Context, id string) (*models.RawEmployer, bool)
	FetchListings(ctx context.Context, employerID string) []models.RawListing
}

// CachedSource memoizes successful fetches between scheduled runs.
// Failed employer fetches are not cached.
type CachedSource struct {
	source remoteSource
	cache  *gocache.Cache
}

func NewCachedSource(source remoteSource, ttl time.Duration) *CachedSource {
	return &CachedSource{source: source, cache: gocache.New(ttl, 2*ttl)}
}

func (c *CachedSource) FetchEmployer(ctx context.Context, id string) (*models.RawEmployer, bool) {
	key := "employer:" + id
	if cached, found := c.cache.Get(key); found {
		return cached.(*models.RawEmployer), true
	}

	employer, ok := c.source.FetchEmployer(ctx, id)
	if ok {
		c.store(key, employer)
	}
	return employer, ok
}

func (c *CachedSource) FetchListings(ctx context.Context, employerID string) []models.RawListing {
	key := "listings:" + employerID
	if cached, found := c.cache.Get(key); found {
		return cached.([]models.RawListing)
	}

	listings := c.source.FetchListings(ctx, employerID)
	if len(listings) > 0 {
		c.store(key, listings)
	}
	return listings
}

func (c *CachedSource) store(key string, value any) {
	if err := c.cache.Add(key, value, gocache.DefaultExpiration); err != nil {
		log.Debugf("failed to cache %s: %v", key, err)
	}
}
