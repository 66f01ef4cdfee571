package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stpnv0/EventRadar/internal/classifier"
	"github.com/stpnv0/EventRadar/internal/domain"
	"github.com/stpnv0/EventRadar/internal/metrics"
	"github.com/stpnv0/EventRadar/internal/normalizer"
	"github.com/stpnv0/EventRadar/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

type EventService struct {
	retriever  ports.Retriever
	store      ports.EventStore
	normalizer *normalizer.Normalizer
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewEventService builds the details pipeline. store and m may be nil.
func NewEventService(retriever ports.Retriever, store ports.EventStore, m *metrics.Metrics, logger logger.Logger) *EventService {
	return &EventService{
		retriever:  retriever,
		store:      store,
		normalizer: normalizer.New(retriever.Name()),
		metrics:    m,
		logger:     logger,
	}
}

// GetEvent resolves one event by id: the local store first, then the
// provider's details endpoint.
func (s *EventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrValidation)
	}

	if s.store != nil {
		e, err := s.store.GetByID(ctx, id)
		switch {
		case err == nil:
			e.EnforceInvariants()
			return e, nil
		case !errors.Is(err, domain.ErrEventNotFound):
			s.logger.Warn("event store lookup failed",
				logger.String("event_id", id),
				logger.String("error", err.Error()),
			)
		}
	}

	raw, err := s.retriever.Details(ctx, s.normalizer.ProviderID(id))
	s.metrics.ProviderCall(s.retriever.Name(), err)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch event details: %w", err)
	}

	e, err := s.normalizer.Normalize(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEventNotFound, err)
	}
	classifier.Annotate(&e, raw.VenueHints())

	return &e, nil
}
