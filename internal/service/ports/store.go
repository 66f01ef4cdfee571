package ports

import (
	"context"

	"github.com/stpnv0/EventRadar/internal/domain"
)

type EventStore interface {
	SaveBatch(ctx context.Context, events []domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
}
