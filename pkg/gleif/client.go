// Package gleif implements the identifier-registry collaborator against
// the GLEIF lei-records API. Lookups are rate limited client-side and
// transient failures are retried with exponential backoff inside the
// per-lookup deadline; a circuit breaker stops outbound calls after
// repeated failed lookups. Every failure mode except an affirmative
// not-found degrades to a neutral outcome, per the lei.Registry
// contract.
package gleif

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/big"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/regberg-labs/micapress/pkg/lei"
)

const (
	// DefaultBaseURL is the public GLEIF API host.
	DefaultBaseURL = "https://api.gleif.org"

	defaultTimeout  = 4 * time.Second
	defaultAttempts = 3
	lookupPath      = "/api/v1/lei-records/"

	// The public API allows 60 requests per minute; stay under it.
	defaultRate  = rate.Limit(1)
	defaultBurst = 5
)

// Config configures the registry client.
type Config struct {
	// BaseURL overrides the GLEIF host, mainly for tests.
	BaseURL string
	// APIToken is an optional bearer credential.
	APIToken string
	// Timeout bounds one lookup end to end, retries included. Default 4s.
	Timeout time.Duration
	// MaxAttempts bounds tries per lookup on transient failures. Default 3.
	MaxAttempts int
	// RequestsPerSecond and Burst tune the client-side limiter.
	RequestsPerSecond rate.Limit
	Burst             int
	// Logger receives lookup diagnostics. Default slog.Default().
	Logger *slog.Logger
}

// Client calls the GLEIF lei-records endpoint. It implements
// lei.Registry.
type Client struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	breaker *breaker
	logger  *slog.Logger
}

var _ lei.Registry = (*Client)(nil)

// NewClient creates a registry client with bounded timeout, retries and
// client-side rate limiting.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = defaultAttempts
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = defaultRate
	}
	if cfg.Burst == 0 {
		cfg.Burst = defaultBurst
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		breaker: newBreaker(),
		logger:  logger.With("component", "gleif"),
	}
}

// leiRecord mirrors the JSON:API payload subset the outcome needs.
type leiRecord struct {
	Data struct {
		Attributes struct {
			Entity struct {
				LegalName struct {
					Name string `json:"name"`
				} `json:"legalName"`
				Status       string `json:"status"`
				LegalAddress struct {
					Country string `json:"country"`
				} `json:"legalAddress"`
			} `json:"entity"`
			Registration struct {
				Status string `json:"status"`
			} `json:"registration"`
		} `json:"attributes"`
	} `json:"data"`
}

// Lookup implements lei.Registry. One lookup is bounded by the
// configured timeout across all attempts; transport errors, 429 and 5xx
// are retried with backoff, everything else is answered on the first
// response. Only an HTTP 404 produces a negative outcome; exhausted
// retries, unexpected statuses and malformed payloads all come back
// unconfirmed.
func (c *Client) Lookup(ctx context.Context, code string) lei.RegistryOutcome {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if !c.breaker.allow() {
		c.logger.WarnContext(ctx, "registry circuit open, skipping lookup", "lei", code)
		return lei.RegistryOutcome{Status: lei.RegistryUnconfirmed}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		c.logger.WarnContext(ctx, "registry lookup rate limited past deadline", "lei", code)
		return lei.RegistryOutcome{Status: lei.RegistryUnconfirmed}
	}

	url := c.cfg.BaseURL + lookupPath + code
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return lei.RegistryOutcome{Status: lei.RegistryUnconfirmed}
	}
	req.Header.Set("Accept", "application/vnd.api+json")
	if c.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	}

	resp := c.attempt(ctx, req, code)
	if resp == nil {
		c.breaker.failure()
		c.logger.WarnContext(ctx, "registry unavailable", "lei", code, "attempts", c.cfg.MaxAttempts)
		return lei.RegistryOutcome{Status: lei.RegistryUnconfirmed}
	}
	defer resp.Body.Close()

	// The registry answered; transport is healthy regardless of what
	// the answer says about the record.
	c.breaker.success()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.logger.DebugContext(ctx, "registry has no record", "lei", code)
		return lei.RegistryOutcome{Status: lei.RegistryNotFound}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.WarnContext(ctx, "registry returned unexpected status",
			"lei", code, "status", resp.StatusCode)
		return lei.RegistryOutcome{Status: lei.RegistryUnconfirmed}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return lei.RegistryOutcome{Status: lei.RegistryUnconfirmed}
	}
	var record leiRecord
	if err := json.Unmarshal(body, &record); err != nil {
		c.logger.WarnContext(ctx, "registry payload unparseable", "lei", code, "error", err)
		return lei.RegistryOutcome{Status: lei.RegistryUnconfirmed}
	}

	attrs := record.Data.Attributes
	return lei.RegistryOutcome{
		Status:             lei.RegistryConfirmed,
		LegalName:          attrs.Entity.LegalName.Name,
		EntityStatus:       attrs.Entity.Status,
		RegistrationStatus: attrs.Registration.Status,
		Country:            attrs.Entity.LegalAddress.Country,
	}
}

// attempt runs the bounded retry loop and returns the first definitive
// response, or nil when every attempt failed or the deadline expired.
// Retried response bodies are drained so connections get reused.
func (c *Client) attempt(ctx context.Context, req *http.Request, code string) *http.Response {
	for i := 0; i < c.cfg.MaxAttempts; i++ {
		if i > 0 && !waitBackoff(ctx, backoffDelay(i-1)) {
			return nil
		}

		resp, err := c.client.Do(req)
		if err != nil {
			c.logger.DebugContext(ctx, "registry attempt failed",
				"lei", code, "attempt", i+1, "error", err)
			continue
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			c.logger.DebugContext(ctx, "registry attempt failed",
				"lei", code, "attempt", i+1, "status", resp.StatusCode)
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			continue
		}
		return resp
	}
	return nil
}

// backoffDelay grows 100ms, 200ms, 400ms... with up to 100ms of jitter.
func backoffDelay(attempt int) time.Duration {
	d := time.Duration(math.Pow(2, float64(attempt))) * 100 * time.Millisecond
	if n, err := rand.Int(rand.Reader, big.NewInt(100)); err == nil {
		d += time.Duration(n.Int64()) * time.Millisecond
	}
	return d
}

// waitBackoff sleeps for d unless the lookup deadline expires first.
func waitBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// String describes the client configuration for diagnostics.
func (c *Client) String() string {
	return fmt.Sprintf("gleif registry %s (timeout %s)", c.cfg.BaseURL, c.cfg.Timeout)
}
