package ports

import (
	"context"

	"github.com/stpnv0/EventRadar/internal/domain"
)

type Retriever interface {
	Name() string
	FetchSize(req domain.SearchRequest) int
	Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error)
	Details(ctx context.Context, providerID string) (*domain.RawEvent, error)
}

type Fallback interface {
	Name() string
	Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResponse, error)
}
