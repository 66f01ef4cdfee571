// Package cache keeps filtered search results for a short TTL, keyed by a
// rounded request fingerprint.
package cache

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/stpnv0/EventRadar/internal/domain"
)

const (
	DefaultTTL        = 5 * time.Minute
	DefaultMaxEntries = 1000
)

// Entry is immutable once stored; Put replaces the whole value.
type Entry struct {
	Key       string
	Timestamp time.Time
	Events    []domain.Event
	Request   domain.SearchRequest
	Query     string
	// FetchSize is the provider limit used to build Events; Complete means
	// the provider returned fewer rows than that, so nothing was cut off.
	FetchSize int
	Complete  bool
}

// Covers reports whether the entry holds enough rows for a request that
// would fetch fetchSize rows.
func (e Entry) Covers(fetchSize int) bool {
	return e.Complete || e.FetchSize >= fetchSize
}

type Cache struct {
	mu         sync.RWMutex
	items      map[string]Entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

type Option func(*Cache)

func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithMaxEntries(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

func New(ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		items:      make(map[string]Entry),
		ttl:        ttl,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns a live entry. An expired entry is removed and reported as a miss.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return Entry{}, false
	}
	if !c.expired(e, c.now()) {
		return e, true
	}

	c.mu.Lock()
	if cur, ok := c.items[key]; ok && c.expired(cur, c.now()) {
		delete(c.items, key)
	}
	c.mu.Unlock()
	return Entry{}, false
}

// Put stores e under key, stamping it with the current time. Events are copied
// so later changes by the caller cannot leak into the cache.
func (c *Cache) Put(key string, e Entry) {
	e.Key = key
	e.Timestamp = c.now()
	e.Events = slices.Clone(e.Events)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxEntries {
		c.sweepLocked(e.Timestamp)
		if len(c.items) >= c.maxEntries {
			c.evictOldestLocked()
		}
	}
	c.items[key] = e
}

// Sweep drops every expired entry and returns how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked(c.now())
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) expired(e Entry, now time.Time) bool {
	return now.Sub(e.Timestamp) > c.ttl
}

func (c *Cache) sweepLocked(now time.Time) int {
	removed := 0
	for k, e := range c.items {
		if c.expired(e, now) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

func (c *Cache) evictOldestLocked() {
	var (
		oldestKey string
		oldest    time.Time
	)
	for k, e := range c.items {
		if oldestKey == "" || e.Timestamp.Before(oldest) {
			oldestKey, oldest = k, e.Timestamp
		}
	}
	delete(c.items, oldestKey)
}

// Fingerprint derives the cache key of a normalized request. Coordinates are
// rounded to 2 decimals (about 1 km), so nearby searches share an entry.
// Page, limit and excluded ids are not part of the key.
func Fingerprint(req domain.SearchRequest) string {
	var b strings.Builder

	if origin := req.Origin(); origin != nil {
		fmt.Fprintf(&b, "geo:%.2f,%.2f", round2(origin.Lat), round2(origin.Lon))
	} else {
		b.WriteString("loc:" + strings.ToLower(strings.TrimSpace(req.LocationName)))
	}
	fmt.Fprintf(&b, "|r:%g", req.RadiusMiles)

	cats := make([]string, 0, len(req.Categories))
	for _, c := range req.Categories {
		cats = append(cats, strings.ToLower(strings.TrimSpace(c)))
	}
	slices.Sort(cats)
	cats = slices.Compact(cats)
	b.WriteString("|c:" + strings.Join(cats, ","))

	b.WriteString("|k:" + strings.ToLower(strings.TrimSpace(req.Keyword)))
	b.WriteString("|s:" + string(req.PartySubcategory))
	b.WriteString("|d:" + day(req.From) + ".." + day(req.To))

	return b.String()
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // no "-0.00"
	}
	return r
}

func day(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
