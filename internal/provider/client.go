// Package provider talks to the external events API and to the fallback
// search backend.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/stpnv0/EventRadar/internal/domain"
	"github.com/wb-go/wbf/logger"
	"github.com/wb-go/wbf/retry"
)

const maxBodyBytes = 8 << 20

type Config struct {
	Name        string
	BaseURL     string
	SearchPath  string
	DetailsPath string
	APIKey      string
	Host        string
	KeyHeader   string
	HostHeader  string
	Sort        string
	Timeout     time.Duration
	OverFetch   int
	MaxFetch    int
	Retry       retry.Strategy
}

// StatusError is a non-2xx answer from an upstream.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Body)
}

// Unwrap classifies the status: 401/403 are auth failures, everything else
// is worth retrying.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden {
		return domain.ErrAuth
	}
	return domain.ErrTransientProvider
}

// Retryable reports whether another attempt may succeed.
func Retryable(err error) bool {
	return errors.Is(err, domain.ErrTransientProvider)
}

type Client struct {
	cfg   Config
	http  *http.Client
	log   logger.Logger
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(c *Client) { c.sleep = sleep }
}

func NewClient(cfg Config, log logger.Logger, opts ...Option) *Client {
	if cfg.KeyHeader == "" {
		cfg.KeyHeader = "X-RapidAPI-Key"
	}
	if cfg.HostHeader == "" {
		cfg.HostHeader = "X-RapidAPI-Host"
	}
	if cfg.Retry.Attempts <= 0 {
		cfg.Retry = retry.Strategy{Attempts: 3, Delay: time.Second, Backoff: 2}
	}
	c := &Client{
		cfg:   cfg,
		http:  NewHTTPClient(cfg.Timeout),
		log:   log,
		now:   time.Now,
		sleep: sleepCtx,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return c.cfg.Name }

func (c *Client) FetchSize(req domain.SearchRequest) int {
	return FetchSize(req, c.cfg.OverFetch, c.cfg.MaxFetch)
}

// searchEnvelope keeps records raw so one mistyped record cannot fail the
// whole page.
type searchEnvelope struct {
	Data []json.RawMessage `json:"data"`
}

// Search runs one logical provider search for a normalized request.
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
	res := domain.SearchResult{
		Query:     BuildQuery(req),
		FetchSize: c.FetchSize(req),
	}
	if err := c.checkConfig(); err != nil {
		return res, err
	}

	q := url.Values{}
	q.Set("query", res.Query)
	q.Set("date", DateBucket(req, c.now()))
	q.Set("is_virtual", "false")
	q.Set("start", "0")
	q.Set("limit", strconv.Itoa(res.FetchSize))
	if c.cfg.Sort != "" {
		q.Set("sort", c.cfg.Sort)
	}

	var env searchEnvelope
	attempts, err := c.getJSON(ctx, "search", c.cfg.SearchPath, q, &env)
	res.Attempts = attempts
	if err != nil {
		return res, err
	}
	res.Events, res.Dropped = c.decodeRecords(env.Data)
	return res, nil
}

// decodeRecords decodes each record on its own, skipping the ones that do not
// fit the raw event shape.
func (c *Client) decodeRecords(data []json.RawMessage) ([]domain.RawEvent, int) {
	events := make([]domain.RawEvent, 0, len(data))
	dropped := 0
	for i, msg := range data {
		var raw domain.RawEvent
		if err := json.Unmarshal(msg, &raw); err != nil {
			dropped++
			c.log.Debug("undecodable provider record dropped",
				logger.String("provider", c.cfg.Name),
				logger.Int("index", i),
				logger.String("error", err.Error()),
			)
			continue
		}
		events = append(events, raw)
	}
	return events, dropped
}

// Details fetches a single record by its provider id.
func (c *Client) Details(ctx context.Context, providerID string) (*domain.RawEvent, error) {
	if err := c.checkConfig(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(providerID) == "" {
		return nil, fmt.Errorf("%w: empty event id", domain.ErrValidation)
	}

	q := url.Values{}
	q.Set("event_id", providerID)

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if _, err := c.getJSON(ctx, "details", c.cfg.DetailsPath, q, &env, http.StatusNotFound); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return decodeDetails(env.Data)
}

// decodeDetails accepts either a single object or a list under "data".
func decodeDetails(data json.RawMessage) (*domain.RawEvent, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil, domain.ErrEventNotFound
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []json.RawMessage
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
		}
		if len(list) == 0 {
			return nil, domain.ErrEventNotFound
		}
		data = list[0]
	}
	var raw domain.RawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	return &raw, nil
}

func (c *Client) checkConfig() error {
	if c.cfg.APIKey == "" {
		return fmt.Errorf("%w: provider %s has no API key", domain.ErrConfig, c.cfg.Name)
	}
	if c.cfg.BaseURL == "" {
		return fmt.Errorf("%w: provider %s has no base url", domain.ErrConfig, c.cfg.Name)
	}
	return nil
}

// getJSON performs a GET with bounded retries. Status codes listed in final
// are returned without retrying. It returns the number of attempts made.
func (c *Client) getJSON(ctx context.Context, op, path string, q url.Values, dest any, final ...int) (int, error) {
	u := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	attempts := max(int(c.cfg.Retry.Attempts), 1)
	delay := c.cfg.Retry.Delay

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, delay); err != nil {
				return attempt - 1, err
			}
			delay = time.Duration(float64(delay) * float64(c.cfg.Retry.Backoff))
		}

		err := c.once(ctx, u, dest)
		if err == nil {
			return attempt, nil
		}
		lastErr = err

		var se *StatusError
		if errors.As(err, &se) && slices.Contains(final, se.Code) {
			return attempt, err
		}
		if !Retryable(err) || ctx.Err() != nil {
			return attempt, err
		}

		c.log.Warn("provider call failed",
			logger.String("provider", c.cfg.Name),
			logger.String("op", op),
			logger.Int("attempt", attempt),
			logger.Int("max_attempts", attempts),
			logger.String("error", err.Error()),
		)
	}

	return attempts, fmt.Errorf("%s %s: giving up after %d attempts: %w", c.cfg.Name, op, attempts, lastErr)
}

func (c *Client) once(ctx context.Context, u string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrConfig, err)
	}
	req.Header.Set(c.cfg.KeyHeader, c.cfg.APIKey)
	if c.cfg.Host != "" {
		req.Header.Set(c.cfg.HostHeader, c.cfg.Host)
	}
	req.Header.Set("Accept", "application/json")

	return doJSON(c.http, req, dest)
}

// doJSON executes req and decodes a 2xx JSON body into dest.
func doJSON(hc *http.Client, req *http.Request, dest any) error {
	resp, err := hc.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", domain.ErrTransientProvider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", domain.ErrTransientProvider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(body)
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		return &StatusError{Code: resp.StatusCode, Body: snippet}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NewHTTPClient returns a client with bounded dial and handshake times.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}
