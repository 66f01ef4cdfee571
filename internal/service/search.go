package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stpnv0/EventRadar/internal/cache"
	"github.com/stpnv0/EventRadar/internal/classifier"
	"github.com/stpnv0/EventRadar/internal/domain"
	"github.com/stpnv0/EventRadar/internal/filter"
	"github.com/stpnv0/EventRadar/internal/metrics"
	"github.com/stpnv0/EventRadar/internal/normalizer"
	"github.com/stpnv0/EventRadar/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

// SearchService runs the search pipeline: cache, provider fetch,
// normalization, classification, filtering, sorting and pagination.
type SearchService struct {
	retriever  ports.Retriever
	fallback   ports.Fallback
	store      ports.EventStore
	notifier   ports.OutageNotifier
	cache      *cache.Cache
	normalizer *normalizer.Normalizer
	metrics    *metrics.Metrics
	logger     logger.Logger
	now        func() time.Time
}

type SearchOption func(*SearchService)

// WithFallback sets the backend used when the primary provider fails.
func WithFallback(f ports.Fallback) SearchOption {
	return func(s *SearchService) { s.fallback = f }
}

// WithStore enables best-effort persistence of fetched events.
func WithStore(store ports.EventStore) SearchOption {
	return func(s *SearchService) { s.store = store }
}

func WithOutageNotifier(n ports.OutageNotifier) SearchOption {
	return func(s *SearchService) { s.notifier = n }
}

func WithMetrics(m *metrics.Metrics) SearchOption {
	return func(s *SearchService) { s.metrics = m }
}

func WithClock(now func() time.Time) SearchOption {
	return func(s *SearchService) { s.now = now }
}

func NewSearchService(
	retriever ports.Retriever,
	results *cache.Cache,
	logger logger.Logger,
	opts ...SearchOption,
) *SearchService {
	s := &SearchService{
		retriever:  retriever,
		cache:      results,
		normalizer: normalizer.New(retriever.Name()),
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search never fails: every problem is reported through
// SourceStats[provider].Error on an otherwise well-formed response.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) domain.SearchResponse {
	started := s.now()
	source := s.retriever.Name()

	resp := domain.SearchResponse{
		Events:      []domain.Event{},
		SourceStats: map[string]domain.SourceStat{source: {}},
		Meta: domain.SearchMeta{
			Timestamp: started.UTC(),
			Page:      req.Page,
			Limit:     req.Limit,
		},
	}

	norm, err := req.Normalize(started)
	if err != nil {
		s.logger.Debug("search rejected", logger.String("error", err.Error()))
		annotate(&resp, source, 0, err)
		return s.finish(resp, metrics.OutcomeInvalid, started)
	}
	resp.Meta.Page, resp.Meta.Limit = norm.Page, norm.Limit

	key := cache.Fingerprint(norm)
	if entry, ok := s.cache.Get(key); ok && entry.Covers(s.retriever.FetchSize(norm)) {
		resp.Meta.Cached = true
		resp.Meta.QueryUsed = entry.Query
		s.respond(&resp, source, entry.Events, norm)
		return s.finish(resp, metrics.OutcomeCached, started)
	}

	res, err := s.retriever.Search(ctx, norm)
	s.metrics.ProviderCall(source, err)
	resp.Meta.QueryUsed = res.Query
	if err != nil {
		return s.searchFallback(ctx, resp, norm, err, started)
	}

	events, errs := s.normalizer.NormalizeAll(res.Events, func(e *domain.Event, raw domain.RawEvent) {
		classifier.Annotate(e, raw.VenueHints())
	})
	if dropped := res.Dropped + len(errs); dropped > 0 {
		s.metrics.RawDropped(source, dropped)
		for _, e := range errs {
			s.logger.Debug("raw record dropped",
				logger.String("provider", source),
				logger.String("error", e.Error()),
			)
		}
	}

	filtered := filter.Apply(events, norm, started)
	filter.SortByDate(filtered)

	s.cache.Put(key, cache.Entry{
		Events:    filtered,
		Request:   norm,
		Query:     res.Query,
		FetchSize: res.FetchSize,
		Complete:  res.Complete(),
	})
	if s.store != nil && len(filtered) > 0 {
		go s.persist(context.WithoutCancel(ctx), filtered)
	}

	s.logger.Info("search served",
		logger.String("provider", source),
		logger.String("query", res.Query),
		logger.Int("fetched", len(res.Events)),
		logger.Int("undecodable", res.Dropped),
		logger.Int("kept", len(filtered)),
		logger.Int("attempts", res.Attempts),
	)

	s.respond(&resp, source, filtered, norm)
	return s.finish(resp, metrics.OutcomePrimary, started)
}

// searchFallback handles a failed primary fetch.
func (s *SearchService) searchFallback(
	ctx context.Context,
	resp domain.SearchResponse,
	req domain.SearchRequest,
	primaryErr error,
	started time.Time,
) domain.SearchResponse {
	source := s.retriever.Name()

	s.logger.Warn("primary provider failed",
		logger.String("provider", source),
		logger.String("error", primaryErr.Error()),
	)

	if ctx.Err() != nil || s.fallback == nil {
		annotate(&resp, source, 0, primaryErr)
		return s.finish(resp, metrics.OutcomeFailed, started)
	}

	fb, err := s.fallback.Search(ctx, req)
	s.metrics.ProviderCall(s.fallback.Name(), err)
	if err != nil {
		joined := errors.Join(primaryErr, fmt.Errorf("fallback %s: %w", s.fallback.Name(), err))
		s.logger.Error("fallback failed",
			logger.String("fallback", s.fallback.Name()),
			logger.String("error", err.Error()),
		)
		annotate(&resp, source, 0, joined)

		if s.notifier != nil {
			go s.notifier.NotifyOutage(context.WithoutCancel(ctx), domain.Outage{
				Provider:    source,
				Fallback:    s.fallback.Name(),
				Query:       resp.Meta.QueryUsed,
				PrimaryErr:  primaryErr.Error(),
				FallbackErr: err.Error(),
				At:          started.UTC(),
			})
		}
		return s.finish(resp, metrics.OutcomeFailed, started)
	}

	// The fallback answers with canonical events already paged; only repair
	// invariants and honour exclusions.
	events := make([]domain.Event, 0, len(fb.Events))
	for _, e := range fb.Events {
		e.EnforceInvariants()
		events = append(events, e)
	}
	events = filter.Exclude(events, req.ExcludeIDs)

	resp.Events = events
	resp.Meta.Fallback = true
	resp.Meta.TotalEvents = len(events)
	resp.Meta.HasMore = fb.Meta.HasMore
	if fb.Meta.TotalEvents > len(events) {
		resp.Meta.TotalEvents = fb.Meta.TotalEvents
	}
	if fb.Meta.QueryUsed != "" {
		resp.Meta.QueryUsed = fb.Meta.QueryUsed
	}

	annotate(&resp, source, 0, primaryErr)
	resp.SourceStats[s.fallback.Name()] = domain.SourceStat{Count: len(events)}
	return s.finish(resp, metrics.OutcomeFallback, started)
}

// respond applies exclusion and pagination to a filtered, sorted list.
func (s *SearchService) respond(resp *domain.SearchResponse, source string, events []domain.Event, req domain.SearchRequest) {
	remaining := filter.Exclude(events, req.ExcludeIDs)
	page := filter.Paginate(remaining, req.Page, req.Limit)

	resp.Events = page.Events
	resp.Meta.TotalEvents = page.Total
	resp.Meta.HasMore = page.HasMore
	annotate(resp, source, page.Total, nil)
}

func (s *SearchService) finish(resp domain.SearchResponse, outcome string, started time.Time) domain.SearchResponse {
	took := s.now().Sub(started)
	resp.Meta.ExecutionTimeMs = took.Milliseconds()
	s.metrics.ObserveSearch(outcome, took)
	return resp
}

func (s *SearchService) persist(ctx context.Context, events []domain.Event) {
	if err := s.store.SaveBatch(ctx, events); err != nil {
		s.logger.Warn("failed to persist events",
			logger.Int("count", len(events)),
			logger.String("error", err.Error()),
		)
	}
}

func annotate(resp *domain.SearchResponse, source string, count int, err error) {
	stat := domain.SourceStat{Count: count}
	if err != nil {
		msg := err.Error()
		stat.Error = &msg
	}
	resp.SourceStats[source] = stat
}
