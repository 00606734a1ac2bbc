package services

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/doanpham16112005-crypto/EC312-sub000/internal/models"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/observability"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/storage"
)

// CatalogSnapshot is an immutable view of the active catalog at fetch time.
type CatalogSnapshot struct {
	Products    []*models.Product
	PhoneModels []*models.PhoneModel
	FetchedAt   time.Time
}

// CatalogCache serves catalog reads, refreshing from the store when the
// snapshot is older than the TTL. A failed refresh falls back to the last
// known-good snapshot; the error only surfaces when no snapshot exists yet.
type CatalogCache struct {
	store storage.Store
	ttl   time.Duration

	mu       sync.Mutex
	snapshot *CatalogSnapshot
}

// NewCatalogCache creates a catalog cache over the given store.
func NewCatalogCache(store storage.Store, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		store: store,
		ttl:   ttl,
	}
}

// GetProducts returns the current product snapshot.
func (c *CatalogCache) GetProducts() ([]*models.Product, error) {
	snap, err := c.current()
	if err != nil {
		return nil, err
	}
	return snap.Products, nil
}

// GetPhoneModels returns the current phone model snapshot.
func (c *CatalogCache) GetPhoneModels() ([]*models.PhoneModel, error) {
	snap, err := c.current()
	if err != nil {
		return nil, err
	}
	return snap.PhoneModels, nil
}

// ModelsByBrand groups the current phone models by brand. This is a derived
// view computed per call, not cached separately.
func (c *CatalogCache) ModelsByBrand() (map[string][]*models.PhoneModel, error) {
	phoneModels, err := c.GetPhoneModels()
	if err != nil {
		return nil, err
	}
	byBrand := make(map[string][]*models.PhoneModel)
	for _, pm := range phoneModels {
		byBrand[pm.Brand] = append(byBrand[pm.Brand], pm)
	}
	return byBrand, nil
}

// Brands returns the sorted list of device brands currently in the catalog.
func (c *CatalogCache) Brands() ([]string, error) {
	byBrand, err := c.ModelsByBrand()
	if err != nil {
		return nil, err
	}
	brands := make([]string, 0, len(byBrand))
	for brand := range byBrand {
		brands = append(brands, brand)
	}
	sort.Strings(brands)
	return brands, nil
}

// Invalidate forces the next read to refetch regardless of snapshot age.
// Callers must invalidate after any write that affects displayed data,
// e.g. the stock decrement of an order commit.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot != nil {
		c.snapshot.FetchedAt = time.Time{}
	}
}

// current returns a fresh-enough snapshot, refreshing synchronously when
// stale. Refreshes are serialized by the mutex; a caller that waited out
// another refresh re-checks freshness and skips the duplicate fetch.
func (c *CatalogCache) current() (*CatalogSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && time.Since(c.snapshot.FetchedAt) < c.ttl {
		return c.snapshot, nil
	}

	products, err := c.store.GetActiveProducts()
	if err == nil {
		var phoneModels []*models.PhoneModel
		phoneModels, err = c.store.GetActivePhoneModels()
		if err == nil {
			c.snapshot = &CatalogSnapshot{
				Products:    products,
				PhoneModels: phoneModels,
				FetchedAt:   time.Now(),
			}
			observability.CatalogRefreshes.WithLabelValues("ok").Inc()
			return c.snapshot, nil
		}
	}

	if c.snapshot != nil {
		log.Printf("⚠️  Catalog refresh failed, serving stale snapshot: %v", err)
		observability.CatalogRefreshes.WithLabelValues("stale").Inc()
		return c.snapshot, nil
	}

	observability.CatalogRefreshes.WithLabelValues("error").Inc()
	return nil, fmt.Errorf("catalog unavailable: %w", err)
}
