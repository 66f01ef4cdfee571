package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stpnv0/EventRadar/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestCache(ttl time.Duration) (*Cache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
	return New(ttl, WithClock(clock.Now)), clock
}

func f64(v float64) *float64 { return &v }

func TestCache_GetAfterPut(t *testing.T) {
	c, _ := newTestCache(DefaultTTL)
	events := []domain.Event{{ID: "p_1"}, {ID: "p_2"}}

	c.Put("k", Entry{Events: events, FetchSize: 40})
	got, ok := c.Get("k")

	require.True(t, ok)
	assert.Equal(t, events, got.Events)
	assert.Equal(t, "k", got.Key)
	assert.Equal(t, 40, got.FetchSize)
}

func TestCache_PutCopiesEvents(t *testing.T) {
	c, _ := newTestCache(DefaultTTL)
	events := []domain.Event{{ID: "p_1"}}

	c.Put("k", Entry{Events: events})
	events[0].ID = "mutated"

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "p_1", got.Events[0].ID)
}

func TestCache_Miss(t *testing.T) {
	c, _ := newTestCache(DefaultTTL)

	_, ok := c.Get("absent")

	assert.False(t, ok)
}

func TestCache_ExpiresOnLookup(t *testing.T) {
	c, clock := newTestCache(5 * time.Minute)
	c.Put("k", Entry{Events: []domain.Event{{ID: "p_1"}}})

	clock.Advance(5 * time.Minute)
	_, ok := c.Get("k")
	assert.True(t, ok, "exactly TTL old is still valid")

	clock.Advance(time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_Sweep(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.Put("old", Entry{})
	clock.Advance(50 * time.Second)
	c.Put("fresh", Entry{})
	clock.Advance(20 * time.Second)

	removed := c.Sweep()

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("fresh")
	assert.True(t, ok)
}

func TestCache_MaxEntriesEvictsOldest(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
	c := New(time.Hour, WithClock(clock.Now), WithMaxEntries(2))

	c.Put("a", Entry{})
	clock.Advance(time.Second)
	c.Put("b", Entry{})
	clock.Advance(time.Second)
	c.Put("c", Entry{})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			for j := 0; j < 100; j++ {
				c.Put(key, Entry{Events: []domain.Event{{ID: key}}})
				if e, ok := c.Get(key); ok {
					assert.Equal(t, key, e.Events[0].ID)
				}
				c.Sweep()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 4, c.Len())
}

func TestEntry_Covers(t *testing.T) {
	assert.True(t, Entry{FetchSize: 200}.Covers(120))
	assert.False(t, Entry{FetchSize: 100}.Covers(120))
	assert.True(t, Entry{FetchSize: 100, Complete: true}.Covers(500))
}

func TestFingerprint(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	norm := func(r domain.SearchRequest) domain.SearchRequest {
		out, err := r.Normalize(now)
		require.NoError(t, err)
		return out
	}

	base := norm(domain.SearchRequest{
		Latitude: f64(40.7128), Longitude: f64(-74.0060), RadiusMiles: 10,
		Categories: []string{"party", "music"}, Keyword: "Techno",
	})

	t.Run("nearby coordinates share a key", func(t *testing.T) {
		near := base
		near.Latitude, near.Longitude = f64(40.7149), f64(-74.0051)
		assert.Equal(t, Fingerprint(base), Fingerprint(near))
	})

	t.Run("category order and keyword case do not matter", func(t *testing.T) {
		other := base
		other.Categories = []string{"music", "party"}
		other.Keyword = "techno"
		assert.Equal(t, Fingerprint(base), Fingerprint(other))
	})

	t.Run("paging fields are not part of the key", func(t *testing.T) {
		other := base
		other.Page, other.Limit, other.ExcludeIDs = 3, 20, []string{"p_1"}
		assert.Equal(t, Fingerprint(base), Fingerprint(other))
	})

	t.Run("distinct filters differ", func(t *testing.T) {
		variants := []func(*domain.SearchRequest){
			func(r *domain.SearchRequest) { r.RadiusMiles = 20 },
			func(r *domain.SearchRequest) { r.Latitude = f64(40.80) },
			func(r *domain.SearchRequest) { r.Keyword = "house" },
			func(r *domain.SearchRequest) { r.Categories = []string{"party"} },
			func(r *domain.SearchRequest) { r.PartySubcategory = domain.SubcategoryRooftop },
			func(r *domain.SearchRequest) { r.To = r.To.AddDate(0, 0, 7) },
		}
		for i, mutate := range variants {
			other := base
			mutate(&other)
			assert.NotEqual(t, Fingerprint(base), Fingerprint(other), "variant %d", i)
		}
	})

	t.Run("location name used without coordinates", func(t *testing.T) {
		a := norm(domain.SearchRequest{LocationName: "Austin, TX"})
		b := norm(domain.SearchRequest{LocationName: "austin, tx"})
		c := norm(domain.SearchRequest{LocationName: "Dallas, TX"})
		assert.Equal(t, Fingerprint(a), Fingerprint(b))
		assert.NotEqual(t, Fingerprint(a), Fingerprint(c))
	})
}
