package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stpnv0/EventRadar/internal/cache"
	"github.com/stpnv0/EventRadar/internal/domain"
	"github.com/stpnv0/EventRadar/internal/metrics"
	"github.com/stpnv0/EventRadar/internal/provider"
	"github.com/stpnv0/EventRadar/internal/service/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"
	"github.com/wb-go/wbf/retry"
)

var now = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

func f64(v float64) *float64 { return &v }

func newRetriever(t *testing.T, name string) *mocks.MockRetriever {
	r := mocks.NewMockRetriever(t)
	r.EXPECT().Name().Return(name).Maybe()
	r.EXPECT().FetchSize(mock.Anything).Return(200).Maybe()
	return r
}

func newSearchService(t *testing.T, r *mocks.MockRetriever, opts ...SearchOption) (*SearchService, *cache.Cache) {
	t.Helper()
	c := cache.New(cache.DefaultTTL, cache.WithClock(clock))
	opts = append([]SearchOption{WithClock(clock), WithMetrics(metrics.New())}, opts...)
	return NewSearchService(r, c, newTestLogger(t), opts...), c
}

func rawAt(id, name string, lat, lon float64) domain.RawEvent {
	return domain.RawEvent{
		EventID:      id,
		Name:         name,
		StartTimeUTC: now.Add(48 * time.Hour).Format("2006-01-02 15:04:05"),
		Venue:        &domain.RawVenue{Name: "Venue " + id, Latitude: f64(lat), Longitude: f64(lon)},
	}
}

func scenarioRequest() domain.SearchRequest {
	return domain.SearchRequest{
		Latitude:    f64(40.7128),
		Longitude:   f64(-74.0060),
		RadiusMiles: 10,
		Categories:  []string{"party"},
	}
}

func TestSearch_ScenarioA_PartyEventNearby(t *testing.T) {
	r := newRetriever(t, "rapid")
	r.EXPECT().Search(mock.Anything, mock.Anything).Return(domain.SearchResult{
		Events:    []domain.RawEvent{rawAt("1", "Friday Night Club Bash", 40.70, -74.00)},
		Query:     "party events near 40.712800,-74.006000",
		FetchSize: 200,
		Attempts:  1,
	}, nil).Once()
	svc, _ := newSearchService(t, r)

	resp := svc.Search(context.Background(), scenarioRequest())

	require.Len(t, resp.Events, 1)
	e := resp.Events[0]
	assert.Equal(t, "rapid_1", e.ID)
	assert.True(t, e.IsPartyEvent)
	assert.Equal(t, domain.CategoryParty, e.Category)
	assert.Equal(t, domain.SubcategoryNightclub, e.PartySubcategory)

	stat := resp.SourceStats["rapid"]
	assert.Equal(t, 1, stat.Count)
	assert.Nil(t, stat.Error)
	assert.Equal(t, 1, resp.Meta.TotalEvents)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, domain.DefaultLimit, resp.Meta.Limit)
	assert.False(t, resp.Meta.HasMore)
	assert.False(t, resp.Meta.Cached)
	assert.Equal(t, "party events near 40.712800,-74.006000", resp.Meta.QueryUsed)
}

func TestSearch_ScenarioB_FarEventExcluded(t *testing.T) {
	r := newRetriever(t, "rapid")
	r.EXPECT().Search(mock.Anything, mock.Anything).Return(domain.SearchResult{
		Events:    []domain.RawEvent{rawAt("1", "Friday Night Club Bash", 41.4356, -74.0060)},
		FetchSize: 200,
	}, nil).Once()
	svc, _ := newSearchService(t, r)

	resp := svc.Search(context.Background(), scenarioRequest())

	assert.Empty(t, resp.Events)
	assert.Equal(t, 0, resp.SourceStats["rapid"].Count)
	assert.Nil(t, resp.SourceStats["rapid"].Error, "zero matches is not a failure")
}

func TestSearch_ScenarioC_IrrecoverableRecordDropped(t *testing.T) {
	r := newRetriever(t, "p")
	r.EXPECT().Search(mock.Anything, mock.Anything).Return(domain.SearchResult{
		Events: []domain.RawEvent{
			{Description: "no id, no name"},
			{EventID: "2", Name: "Open mic"},
		},
		FetchSize: 200,
	}, nil).Once()
	svc, _ := newSearchService(t, r)

	resp := svc.Search(context.Background(), domain.SearchRequest{LocationName: "Austin"})

	require.Len(t, resp.Events, 1)
	assert.Equal(t, "p_2", resp.Events[0].ID)
}

func TestSearch_CountsUndecodableAndIrrecoverableRecords(t *testing.T) {
	r := newRetriever(t, "p")
	r.EXPECT().Search(mock.Anything, mock.Anything).Return(domain.SearchResult{
		Events: []domain.RawEvent{
			{Description: "no id, no name"},
			{EventID: "2", Name: "Open mic"},
		},
		FetchSize: 200,
		Dropped:   2,
	}, nil).Once()
	m := metrics.New()
	svc, _ := newSearchService(t, r, WithMetrics(m))

	resp := svc.Search(context.Background(), domain.SearchRequest{LocationName: "Austin"})

	require.Len(t, resp.Events, 1)
	assert.Nil(t, resp.SourceStats["p"].Error)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `event_radar_raw_records_dropped_total{provider="p"} 3`)
}

func TestSearch_ScenarioD_PrimaryAndFallbackFail(t *testing.T) {
	var primaryCalls atomic.Int32
	primarySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		primaryCalls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer primarySrv.Close()
	fallbackSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer fallbackSrv.Close()

	client := provider.NewClient(provider.Config{
		Name:    "rapid",
		BaseURL: primarySrv.URL,
		APIKey:  "k",
		Retry:   retry.Strategy{Attempts: 3, Delay: time.Millisecond, Backoff: 2},
	}, newTestLogger(t))
	fallback := provider.NewFallbackClient("backup", fallbackSrv.URL, time.Second, nil)

	notifier := mocks.NewMockOutageNotifier(t)
	notified := make(chan domain.Outage, 1)
	notifier.EXPECT().NotifyOutage(mock.Anything, mock.Anything).
		Run(func(_ context.Context, o domain.Outage) { notified <- o }).Once()

	svc := NewSearchService(client, cache.New(cache.DefaultTTL), newTestLogger(t),
		WithClock(clock), WithFallback(fallback), WithOutageNotifier(notifier))

	resp := svc.Search(context.Background(), scenarioRequest())

	assert.Equal(t, int32(3), primaryCalls.Load())
	assert.NotNil(t, resp.Events)
	assert.Empty(t, resp.Events)
	require.NotNil(t, resp.SourceStats["rapid"].Error)
	assert.Contains(t, *resp.SourceStats["rapid"].Error, "HTTP 500")
	assert.Contains(t, *resp.SourceStats["rapid"].Error, "HTTP 502")
	assert.False(t, resp.Meta.Fallback)

	select {
	case o := <-notified:
		assert.Equal(t, "rapid", o.Provider)
		assert.Equal(t, "backup", o.Fallback)
	case <-time.After(time.Second):
		t.Fatal("outage notifier not called")
	}
}

func TestSearch_ScenarioE_ExcludeIDs(t *testing.T) {
	r := newRetriever(t, "p")
	r.EXPECT().Search(mock.Anything, mock.Anything).Return(domain.SearchResult{
		Events:    []domain.RawEvent{{EventID: "1", Name: "first"}, {EventID: "2", Name: "second"}},
		FetchSize: 200,
	}, nil).Once()
	svc, _ := newSearchService(t, r)

	resp := svc.Search(context.Background(), domain.SearchRequest{ExcludeIDs: []string{"p_1"}})

	require.Len(t, resp.Events, 1)
	assert.Equal(t, "p_2", resp.Events[0].ID)
	assert.Equal(t, 1, resp.Meta.TotalEvents)
}

func TestSearch_CacheHit(t *testing.T) {
	r := newRetriever(t, "p")
	r.EXPECT().Search(mock.Anything, mock.Anything).Return(domain.SearchResult{
		Events:    []domain.RawEvent{{EventID: "1", Name: "first"}, {EventID: "2", Name: "second"}},
		Query:     "events",
		FetchSize: 200,
	}, nil).Once()
	svc, c := newSearchService(t, r)

	first := svc.Search(context.Background(), domain.SearchRequest{})
	second := svc.Search(context.Background(), domain.SearchRequest{ExcludeIDs: []string{"p_1"}})

	assert.False(t, first.Meta.Cached)
	assert.True(t, second.Meta.Cached)
	assert.Equal(t, "events", second.Meta.QueryUsed)
	require.Len(t, second.Events, 1, "exclusion applies to cached results")
	assert.Equal(t, "p_2", second.Events[0].ID)
	assert.Equal(t, 1, c.Len())
}

func TestSearch_CacheEntryTooSmallRefetches(t *testing.T) {
	r := mocks.NewMockRetriever(t)
	r.EXPECT().Name().Return("p").Maybe()
	r.EXPECT().FetchSize(mock.Anything).RunAndReturn(func(req domain.SearchRequest) int {
		return provider.FetchSize(req, 2, 500)
	}).Maybe()

	raws := make([]domain.RawEvent, 30)
	for i := range raws {
		raws[i] = domain.RawEvent{EventID: fmt.Sprint(i), Name: "e"}
	}
	// a full window: the provider may have more rows
	r.EXPECT().Search(mock.Anything, mock.Anything).Return(domain.SearchResult{Events: raws, FetchSize: 30}, nil).Once()
	r.EXPECT().Search(mock.Anything, mock.Anything).Return(domain.SearchResult{Events: raws, FetchSize: 40}, nil).Once()
	svc, _ := newSearchService(t, r)

	page1 := svc.Search(context.Background(), domain.SearchRequest{Limit: 10, Page: 1})
	page2 := svc.Search(context.Background(), domain.SearchRequest{Limit: 10, Page: 2})

	assert.False(t, page1.Meta.Cached)
	assert.False(t, page2.Meta.Cached, "page 2 needs 40 rows, the entry has 30")
	assert.True(t, page1.Meta.HasMore)
	require.Len(t, page2.Events, 10)
	assert.Equal(t, "p_10", page2.Events[0].ID)
}

func TestSearch_PagesFromCacheCoverResult(t *testing.T) {
	r := newRetriever(t, "p")
	raws := make([]domain.RawEvent, 5)
	for i := range raws {
		raws[i] = domain.RawEvent{
			EventID:      fmt.Sprint(i),
			Name:         "event",
			StartTimeUTC: now.Add(time.Duration(5-i) * time.Hour).Format(time.RFC3339),
		}
	}
	r.EXPECT().Search(mock.Anything, mock.Anything).Return(domain.SearchResult{Events: raws, FetchSize: 200}, nil).Once()
	svc, _ := newSearchService(t, r)

	var ids []string
	for page := 1; page <= 3; page++ {
		resp := svc.Search(context.Background(), domain.SearchRequest{Page: page, Limit: 2})
		assert.LessOrEqual(t, len(resp.Events), 2)
		assert.Equal(t, 5, resp.Meta.TotalEvents)
		assert.Equal(t, page < 3, resp.Meta.HasMore)
		for _, e := range resp.Events {
			ids = append(ids, e.ID)
		}
	}
	assert.Equal(t, []string{"p_4", "p_3", "p_2", "p_1", "p_0"}, ids, "sorted by date ascending")
}

func TestSearch_ValidationError(t *testing.T) {
	r := newRetriever(t, "p")
	fallback := mocks.NewMockFallback(t)
	svc, c := newSearchService(t, r, WithFallback(fallback))

	resp := svc.Search(context.Background(), domain.SearchRequest{Latitude: f64(91), Longitude: f64(0)})

	assert.Empty(t, resp.Events)
	require.NotNil(t, resp.SourceStats["p"].Error)
	assert.Contains(t, *resp.SourceStats["p"].Error, "validation")
	assert.Equal(t, 0, c.Len())
}

func TestSearch_FallbackSuccess(t *testing.T) {
	r := newRetriever(t, "p")
	r.EXPECT().Search(mock.Anything, mock.Anything).
		Return(domain.SearchResult{Query: "events"}, fmt.Errorf("search: %w", domain.ErrAuth)).Once()

	fallback := mocks.NewMockFallback(t)
	fallback.EXPECT().Name().Return("backup").Maybe()
	fallback.EXPECT().Search(mock.Anything, mock.MatchedBy(func(req domain.SearchRequest) bool {
		return req.Page == 1 && req.Limit == domain.DefaultLimit
	})).Return(domain.SearchResponse{
		Events: []domain.Event{
			{ID: "fb_1", Title: "Mismatched", Category: domain.CategoryParty, IsPartyEvent: false},
			{ID: "fb_2", Title: "Excluded"},
			{ID: "fb_3", Title: "Bad coords", Coordinates: &domain.Coordinates{Lon: 200, Lat: 10}},
		},
		Meta: domain.SearchMeta{TotalEvents: 3, QueryUsed: "backup query"},
	}, nil).Once()

	svc, c := newSearchService(t, r, WithFallback(fallback))

	resp := svc.Search(context.Background(), domain.SearchRequest{ExcludeIDs: []string{"fb_2"}})

	require.Len(t, resp.Events, 2)
	assert.True(t, resp.Meta.Fallback)
	assert.Equal(t, "backup query", resp.Meta.QueryUsed)
	assert.True(t, resp.Events[0].IsPartyEvent, "party fields reconciled")
	assert.Equal(t, domain.SubcategoryGeneral, resp.Events[0].PartySubcategory)
	assert.Nil(t, resp.Events[1].Coordinates)
	require.NotNil(t, resp.SourceStats["p"].Error)
	assert.Equal(t, 2, resp.SourceStats["backup"].Count)
	assert.Equal(t, 0, c.Len(), "fallback results are not cached")
}

func TestSearch_ConfigErrorStillTriesFallback(t *testing.T) {
	r := newRetriever(t, "p")
	r.EXPECT().Search(mock.Anything, mock.Anything).Return(domain.SearchResult{}, domain.ErrConfig).Once()

	fallback := mocks.NewMockFallback(t)
	fallback.EXPECT().Name().Return("backup").Maybe()
	fallback.EXPECT().Search(mock.Anything, mock.Anything).Return(domain.SearchResponse{}, nil).Once()

	svc, _ := newSearchService(t, r, WithFallback(fallback))
	resp := svc.Search(context.Background(), domain.SearchRequest{})

	assert.True(t, resp.Meta.Fallback)
	assert.NotNil(t, resp.Events)
}

func TestSearch_CancelledSkipsFallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := newRetriever(t, "p")
	r.EXPECT().Search(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, domain.SearchRequest) (domain.SearchResult, error) {
			cancel()
			return domain.SearchResult{}, context.Canceled
		}).Once()
	fallback := mocks.NewMockFallback(t)

	svc, c := newSearchService(t, r, WithFallback(fallback))
	resp := svc.Search(ctx, domain.SearchRequest{})

	require.NotNil(t, resp.SourceStats["p"].Error)
	assert.Equal(t, 0, c.Len())
}

func TestSearch_PersistsToStore(t *testing.T) {
	r := newRetriever(t, "p")
	r.EXPECT().Search(mock.Anything, mock.Anything).Return(domain.SearchResult{
		Events: []domain.RawEvent{{EventID: "1", Name: "Rooftop party"}}, FetchSize: 200,
	}, nil).Once()

	store := mocks.NewMockEventStore(t)
	saved := make(chan []domain.Event, 1)
	store.EXPECT().SaveBatch(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, events []domain.Event) error {
			saved <- events
			return errors.New("db down")
		}).Once()

	svc, _ := newSearchService(t, r, WithStore(store))
	resp := svc.Search(context.Background(), domain.SearchRequest{})
	require.Len(t, resp.Events, 1)

	select {
	case events := <-saved:
		require.Len(t, events, 1)
		assert.Equal(t, "p_1", events[0].ID)
	case <-time.After(time.Second):
		t.Fatal("store not called")
	}
}
