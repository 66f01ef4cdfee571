package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/stpnv0/EventRadar/internal/domain"
)

// FallbackClient forwards a search to the secondary backend, which answers
// in the same shape as this service.
type FallbackClient struct {
	name    string
	url     string
	headers map[string]string
	http    *http.Client
}

func NewFallbackClient(name, url string, timeout time.Duration, headers map[string]string) *FallbackClient {
	return &FallbackClient{
		name:    name,
		url:     url,
		headers: headers,
		http:    NewHTTPClient(timeout),
	}
}

func (f *FallbackClient) Name() string { return f.name }

// Search is a single attempt; the primary path already spent the retries.
func (f *FallbackClient) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResponse, error) {
	if f.url == "" {
		return domain.SearchResponse{}, fmt.Errorf("%w: fallback backend not configured", domain.ErrConfig)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return domain.SearchResponse{}, fmt.Errorf("marshal fallback request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return domain.SearchResponse{}, fmt.Errorf("%w: build fallback request: %v", domain.ErrConfig, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range f.headers {
		httpReq.Header.Set(k, v)
	}

	var resp domain.SearchResponse
	if err := doJSON(f.http, httpReq, &resp); err != nil {
		return domain.SearchResponse{}, fmt.Errorf("%s: %w", f.name, err)
	}
	return resp, nil
}
