// Package services holds the in-memory asset collection that the handlers
// read from. The AAS backend is the source of truth; the collection is a
// snapshot refreshed wholesale after every mutation.
package services

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/greentwin/aas-cockpit/internal/backend"
	"github.com/greentwin/aas-cockpit/internal/models"
)

// Collection caches the full asset list. Refresh replaces the snapshot
// wholesale; concurrent refreshes race and the last writer wins, which is
// fine because each snapshot is a complete fetch.
type Collection struct {
	backend *backend.Client
	log     zerolog.Logger

	mu      sync.RWMutex
	records []models.AASData
	loaded  bool
	lastErr error
}

// NewCollection creates an empty collection. The first Records/Filter call
// triggers the initial load.
func NewCollection(client *backend.Client, log zerolog.Logger) *Collection {
	return &Collection{
		backend: client,
		log:     log.With().Str("component", "collection").Logger(),
	}
}

// Refresh fetches the full list from the backend and swaps the snapshot.
// On error the previous snapshot stays in place and the error is remembered
// for LastError.
func (c *Collection) Refresh(ctx context.Context) error {
	records, err := c.backend.FetchAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = true
	c.lastErr = err
	if err != nil {
		c.log.Error().Err(err).Msg("refresh failed, keeping previous snapshot")
		return err
	}
	data := make([]models.AASData, 0, len(records))
	for _, r := range records {
		data = append(data, *models.NewAASData(r))
	}
	c.records = data
	c.log.Debug().Int("count", len(data)).Msg("collection refreshed")
	return nil
}

// Records returns the current snapshot, loading it on first use. A failed
// first load stays an error until a refresh succeeds; once a snapshot
// exists, later refresh failures keep serving it.
func (c *Collection) Records(ctx context.Context) ([]models.AASData, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.records == nil && c.lastErr != nil {
		return nil, c.lastErr
	}
	out := make([]models.AASData, len(c.records))
	copy(out, c.records)
	return out, nil
}

// Filter returns the records whose assetID contains the query,
// case-insensitively. An empty query returns everything.
func (c *Collection) Filter(ctx context.Context, query string) ([]models.AASData, error) {
	records, err := c.Records(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return records, nil
	}
	matched := records[:0:0]
	for _, d := range records {
		if strings.Contains(strings.ToLower(d.AssetID()), query) {
			matched = append(matched, d)
		}
	}
	return matched, nil
}

// AssetIDs returns the assetID of every record in the current snapshot.
func (c *Collection) AssetIDs(ctx context.Context) ([]string, error) {
	records, err := c.Records(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(records))
	for _, d := range records {
		ids = append(ids, d.AssetID())
	}
	return ids, nil
}

// Contains reports whether any record in the snapshot has the given assetID.
func (c *Collection) Contains(ctx context.Context, assetID string) (bool, error) {
	records, err := c.Records(ctx)
	if err != nil {
		return false, err
	}
	for _, d := range records {
		if d.AssetID() == assetID {
			return true, nil
		}
	}
	return false, nil
}

// LastError returns the error of the most recent refresh, if any.
func (c *Collection) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

func (c *Collection) ensureLoaded(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}
	return c.Refresh(ctx)
}
