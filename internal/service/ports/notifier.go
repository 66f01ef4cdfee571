package ports

import (
	"context"

	"github.com/stpnv0/EventRadar/internal/domain"
)

type OutageNotifier interface {
	NotifyOutage(ctx context.Context, outage domain.Outage)
}
