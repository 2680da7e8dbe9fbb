package gleif

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/regberg-labs/micapress/pkg/lei"
)

const recordPayload = `{
	"data": {
		"attributes": {
			"entity": {
				"legalName": {"name": "Example Labs GmbH"},
				"status": "ACTIVE",
				"legalAddress": {"country": "DE"}
			},
			"registration": {"status": "ISSUED"}
		}
	}
}`

func TestLookupConfirmed(t *testing.T) {
	var gotPath, gotAccept, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/vnd.api+json")
		_, _ = w.Write([]byte(recordPayload))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, APIToken: "sekrit"})
	outcome := client.Lookup(context.Background(), "529900T8BM49AURSDO55")

	require.Equal(t, lei.RegistryConfirmed, outcome.Status)
	require.Equal(t, "Example Labs GmbH", outcome.LegalName)
	require.Equal(t, "ACTIVE", outcome.EntityStatus)
	require.Equal(t, "ISSUED", outcome.RegistrationStatus)
	require.Equal(t, "DE", outcome.Country)

	require.Equal(t, "/api/v1/lei-records/529900T8BM49AURSDO55", gotPath)
	require.Equal(t, "application/vnd.api+json", gotAccept)
	require.Equal(t, "Bearer sekrit", gotAuth)
}

func TestLookupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"status":"404"}]}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	outcome := client.Lookup(context.Background(), "529900MISSING0000095")
	require.Equal(t, lei.RegistryNotFound, outcome.Status)
}

func TestLookupServerErrorIsNeutral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	outcome := client.Lookup(context.Background(), "529900T8BM49AURSDO55")
	require.Equal(t, lei.RegistryUnconfirmed, outcome.Status)
}

func TestLookupMalformedPayloadIsNeutral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	outcome := client.Lookup(context.Background(), "529900T8BM49AURSDO55")
	require.Equal(t, lei.RegistryUnconfirmed, outcome.Status)
}

func TestLookupTimeoutIsNeutral(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})

	start := time.Now()
	outcome := client.Lookup(context.Background(), "529900T8BM49AURSDO55")
	require.Equal(t, lei.RegistryUnconfirmed, outcome.Status)
	require.Less(t, time.Since(start), time.Second, "lookup must give up at the timeout")
}

func TestLookupUnreachableHostIsNeutral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(Config{BaseURL: srv.URL, Timeout: 100 * time.Millisecond})
	outcome := client.Lookup(context.Background(), "529900T8BM49AURSDO55")
	require.Equal(t, lei.RegistryUnconfirmed, outcome.Status)
}

func TestLookupRateLimitedPastDeadlineIsNeutral(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(recordPayload))
	}))
	defer srv.Close()

	client := NewClient(Config{
		BaseURL:           srv.URL,
		Timeout:           50 * time.Millisecond,
		RequestsPerSecond: rate.Limit(0.01),
		Burst:             1,
	})

	first := client.Lookup(context.Background(), "529900T8BM49AURSDO55")
	require.Equal(t, lei.RegistryConfirmed, first.Status)

	// Burst spent; the next permit is ~100s away, far past the deadline.
	second := client.Lookup(context.Background(), "529900T8BM49AURSDO55")
	require.Equal(t, lei.RegistryUnconfirmed, second.Status)
	require.Equal(t, 1, hits)
}

func TestLookupRetriesTransientFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 3 {
			http.Error(w, "try later", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(recordPayload))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	outcome := client.Lookup(context.Background(), "529900T8BM49AURSDO55")
	require.Equal(t, lei.RegistryConfirmed, outcome.Status)
	require.Equal(t, 3, hits)
}

func TestLookupDoesNotRetryNotFound(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, `{"errors":[{"status":"404"}]}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	outcome := client.Lookup(context.Background(), "529900MISSING0000095")
	require.Equal(t, lei.RegistryNotFound, outcome.Status)
	require.Equal(t, 1, hits)
}

func TestLookupOpenBreakerShortCircuits(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(Config{
		BaseURL:           srv.URL,
		MaxAttempts:       1,
		RequestsPerSecond: rate.Limit(1000),
		Burst:             100,
	})

	for i := 0; i < breakerThreshold; i++ {
		outcome := client.Lookup(context.Background(), "529900T8BM49AURSDO55")
		require.Equal(t, lei.RegistryUnconfirmed, outcome.Status)
	}
	require.Equal(t, breakerThreshold, hits)

	// Open now: lookups degrade without reaching the server.
	outcome := client.Lookup(context.Background(), "529900T8BM49AURSDO55")
	require.Equal(t, lei.RegistryUnconfirmed, outcome.Status)
	require.Equal(t, breakerThreshold, hits)
}

func TestLookupHalfOpenProbeClosesBreaker(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits <= breakerThreshold {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(recordPayload))
	}))
	defer srv.Close()

	client := NewClient(Config{
		BaseURL:           srv.URL,
		MaxAttempts:       1,
		RequestsPerSecond: rate.Limit(1000),
		Burst:             100,
	})

	for i := 0; i < breakerThreshold; i++ {
		client.Lookup(context.Background(), "529900T8BM49AURSDO55")
	}

	client.breaker.mu.Lock()
	client.breaker.cooldown = time.Millisecond
	client.breaker.mu.Unlock()
	time.Sleep(5 * time.Millisecond)

	// The probe succeeds and closes the breaker again.
	outcome := client.Lookup(context.Background(), "529900T8BM49AURSDO55")
	require.Equal(t, lei.RegistryConfirmed, outcome.Status)

	outcome = client.Lookup(context.Background(), "529900T8BM49AURSDO55")
	require.Equal(t, lei.RegistryConfirmed, outcome.Status)
	require.Equal(t, breakerThreshold+2, hits)
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{})
	require.Contains(t, client.String(), DefaultBaseURL)
	require.Contains(t, client.String(), "4s")
	require.Equal(t, defaultAttempts, client.cfg.MaxAttempts)
}
