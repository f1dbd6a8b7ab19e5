// Package fetch is the HTTP client shared by every upstream source. It adds a
// fixed-delay bounded retry loop with a per-attempt timeout and a TTL cache
// of raw response bodies.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"

	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/logger"
)

type Config struct {
	// Name labels logs and metrics, usually the adapter name
	Name    string
	BaseURL string
	Headers map[string]string
	// Query is sent with every request but is not part of the cache key
	Query map[string]string

	TTL            time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	AttemptTimeout time.Duration

	// Transport overrides the HTTP transport, mainly for tests
	Transport http.RoundTripper
	// Now overrides the cache clock
	Now func() time.Time
}

type entry struct {
	body    []byte
	expires time.Time
}

// Client is safe for concurrent use. Its cache is private to the client.
type Client struct {
	cfg  Config
	http *resty.Client
	log  *log.Logger

	mu    sync.Mutex
	cache map[string]entry
}

func New(cfg Config) *Client {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = constants.DefaultAttemptTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	hc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", constants.AppName+"/"+constants.Version)
	if len(cfg.Headers) > 0 {
		hc.SetHeaders(cfg.Headers)
	}
	if len(cfg.Query) > 0 {
		hc.SetQueryParams(cfg.Query)
	}
	if cfg.Transport != nil {
		hc.SetTransport(cfg.Transport)
	}
	l := logger.Component("fetch").With("adapter", cfg.Name)
	hc.SetLogger(l)

	return &Client{cfg: cfg, http: hc, log: l, cache: make(map[string]entry)}
}

func (c *Client) Name() string {
	return c.cfg.Name
}

// Get fetches endpoint with params and decodes the JSON body into out.
// Cached bodies younger than the TTL are used without a network call.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string, out any) error {
	key := cacheKey(endpoint, params)

	if body, ok := c.lookup(key); ok {
		cacheHitsTotal.WithLabelValues(c.cfg.Name).Inc()
		c.log.Debug("Upstream cache hit", "key", key)
		return c.decode(body, out)
	}

	body, err := c.fetch(ctx, endpoint, params)
	if err != nil {
		return err
	}
	if err := c.decode(body, out); err != nil {
		return err
	}
	c.store(key, body)
	return nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	attempt := 0
	op := func() ([]byte, error) {
		attempt++
		if err := ctx.Err(); err != nil {
			return nil, backoff.Permanent(err)
		}

		body, err := c.attempt(ctx, endpoint, params)
		if err == nil {
			upstreamRequestsTotal.WithLabelValues(c.cfg.Name, outcomeOK).Inc()
			return body, nil
		}
		if IsPermanent(err) {
			upstreamRequestsTotal.WithLabelValues(c.cfg.Name, outcomePermanent).Inc()
			return nil, backoff.Permanent(err)
		}
		upstreamRequestsTotal.WithLabelValues(c.cfg.Name, outcomeRetryable).Inc()
		return nil, err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.cfg.RetryDelay), uint64(c.cfg.MaxRetries)),
		ctx,
	)
	notify := func(err error, wait time.Duration) {
		c.log.Debug("Upstream attempt failed", "endpoint", endpoint, "attempt", attempt, "retry_in", wait, "error", err)
	}

	body, err := backoff.RetryNotifyWithData[[]byte](op, policy, notify)
	if err != nil {
		c.log.Warn("Upstream request failed", "endpoint", endpoint, "attempts", attempt, "error", err)
		return nil, err
	}
	return body, nil
}

// attempt performs a single request under its own timeout
func (c *Client) attempt(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.AttemptTimeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(attemptCtx).
		SetQueryParams(params).
		Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", c.cfg.Name, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &StatusError{Adapter: c.cfg.Name, StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return resp.Body(), nil
}

func (c *Client) decode(body []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		upstreamRequestsTotal.WithLabelValues(c.cfg.Name, outcomeMalformed).Inc()
		return fmt.Errorf("%w: %s: %v", ErrMalformedPayload, c.cfg.Name, err)
	}
	return nil
}

func (c *Client) lookup(key string) ([]byte, bool) {
	if c.cfg.TTL <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.cache[key]
	if !ok {
		return nil, false
	}
	if !c.cfg.Now().Before(e.expires) {
		delete(c.cache, key)
		return nil, false
	}
	return e.body, true
}

func (c *Client) store(key string, body []byte) {
	if c.cfg.TTL <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = entry{body: body, expires: c.cfg.Now().Add(c.cfg.TTL)}
}

// Sweep removes expired cache entries and returns how many were dropped
func (c *Client) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.cfg.Now()
	dropped := 0
	for k, e := range c.cache {
		if !now.Before(e.expires) {
			delete(c.cache, k)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of cached responses, expired or not
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// cacheKey is the endpoint plus params in sorted order
func cacheKey(endpoint string, params map[string]string) string {
	if len(params) == 0 {
		return endpoint
	}
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	return endpoint + "?" + values.Encode()
}
