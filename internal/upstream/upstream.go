// Package upstream calls third-party JSON services behind a circuit breaker.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/tartampluch/go-folio/internal/config"
)

// Recorder receives the outcome of every call. metrics.Collector implements it.
type Recorder interface {
	ObserveUpstream(upstream, outcome string)
}

// StatusError reports a non-2xx answer.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", config.ErrUpstreamStatus, e.Status)
}

// Client performs requests against one upstream service.
type Client struct {
	HTTP *http.Client

	name     string
	breaker  *gobreaker.CircuitBreaker
	recorder Recorder
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.HTTP = h }
}

// WithRecorder reports call outcomes to r.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// New creates a client named after the upstream it talks to. The name labels logs
// and metrics.
func New(name string, opts ...Option) *Client {
	c := &Client{
		HTTP: &http.Client{Timeout: config.HTTPTimeout},
		name: name,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: config.BreakerMaxRequests,
		Interval:    config.BreakerInterval,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.BreakerMinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= config.BreakerFailRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn(config.MsgBreakerState,
				config.LogKeyComponent, config.CompFetcher,
				config.LogKeyBreaker, name,
				config.LogKeyFrom, from.String(),
				config.LogKeyTo, to.String(),
			)
		},
		// A caller giving up is not a sign of an unhealthy upstream.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return c
}

// State exposes the breaker state, mostly for tests and health output.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

// GetJSON issues a GET with query and decodes the JSON answer into out.
func (c *Client) GetJSON(ctx context.Context, target string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, target, query, nil, out)
}

// PostJSON sends body as JSON. out may be nil when the answer is not JSON.
func (c *Client) PostJSON(ctx context.Context, target string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, target, nil, payload, out)
}

func (c *Client) do(ctx context.Context, method, target string, query url.Values, payload []byte, out any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.roundTrip(ctx, method, target, query, payload, out)
	})

	switch {
	case err == nil:
		c.observe(config.OutcomeOK)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		slog.Warn(config.MsgBreakerReject,
			config.LogKeyComponent, config.CompFetcher,
			config.LogKeyBreaker, c.name,
			config.LogKeyError, err,
		)
		c.observe(config.OutcomeRejected)
	default:
		c.observe(config.OutcomeError)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, target string, query url.Values, payload []byte, out any) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	// Query strings may carry keys, keep them out of the logs.
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyBreaker, c.name),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)
	log.Debug(config.MsgUpstreamCall, slog.String(config.LogKeyMethod, method))

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, "application/json")
	if payload != nil {
		req.Header.Set(config.HeaderContentType, "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrUpstreamRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn(config.MsgUpstreamStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	limited := io.LimitReader(resp.Body, config.MaxHTTPResponseSize)
	if out == nil {
		_, _ = io.Copy(io.Discard, limited)
		return nil
	}
	if err := json.NewDecoder(limited).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", config.ErrUpstreamDecode, err)
	}
	return nil
}

func (c *Client) observe(outcome string) {
	if c.recorder != nil {
		c.recorder.ObserveUpstream(c.name, outcome)
	}
}
