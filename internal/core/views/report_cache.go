package views

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/events"
	lru "github.com/hashicorp/golang-lru/v2"
)

// View names a derived read model.
type View string

const (
	ViewAlerts    View = "alerts"
	ViewVariance  View = "variance"
	ViewDashboard View = "dashboard"
	ViewAudit     View = "audit"
)

// Key identifies one cached view of one tenant. Period is the month key or
// day the view was computed for.
type Key struct {
	OwnerID string
	View    View
	Period  string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.OwnerID, k.View, k.Period)
}

// ReportCache memoizes derived views. Any change event for a tenant drops
// every view of that tenant and bumps its generation. A view is only stored
// if the generation it was loaded under is still current, so a build that
// overlaps a write never lands in the cache.
type ReportCache struct {
	entries     *lru.Cache[Key, any]
	logger      *slog.Logger
	unsubscribe func()

	mu          sync.Mutex
	generations map[string]uint64
}

// NewReportCache creates a cache holding at most size views. When bus is
// non-nil the cache subscribes to it for invalidation.
func NewReportCache(size int, bus *events.Bus, logger *slog.Logger) (*ReportCache, error) {
	entries, err := lru.New[Key, any](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create report cache: %w", err)
	}
	c := &ReportCache{entries: entries, logger: logger, generations: make(map[string]uint64)}
	if bus != nil {
		c.unsubscribe = bus.Subscribe(events.Filter{}, c.handle)
	}
	return c, nil
}

func (c *ReportCache) handle(_ context.Context, ev events.Event) {
	if n := c.InvalidateOwner(ev.OwnerID); n > 0 && c.logger != nil {
		c.logger.Debug("Invalidated cached views",
			slog.String("owner_id", ev.OwnerID),
			slog.String("entity", string(ev.Entity)),
			slog.Int("count", n))
	}
}

func (c *ReportCache) Get(key Key) (any, bool) {
	return c.entries.Get(key)
}

// Lookup is Get plus the tenant generation to hand back to AddIfCurrent on a miss.
func (c *ReportCache) Lookup(key Key) (any, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries.Get(key)
	return v, c.generations[key.OwnerID], ok
}

func (c *ReportCache) Add(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Add(key, value)
}

// AddIfCurrent stores value unless the tenant was invalidated after generation
// was read. It reports whether the value was stored.
func (c *ReportCache) AddIfCurrent(key Key, value any, generation uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[key.OwnerID] != generation {
		return false
	}
	c.entries.Add(key, value)
	return true
}

// InvalidateOwner removes every view of ownerID and returns how many were dropped.
func (c *ReportCache) InvalidateOwner(ownerID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[ownerID]++
	removed := 0
	for _, key := range c.entries.Keys() {
		if key.OwnerID == ownerID && c.entries.Remove(key) {
			removed++
		}
	}
	return removed
}

func (c *ReportCache) Len() int {
	return c.entries.Len()
}

// Close detaches the cache from the bus.
func (c *ReportCache) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}
