package admin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"backend-roamio/internal/logging"
	"backend-roamio/internal/metrics"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
)

const breakerName = "identity-provider"

var ErrNoAPIKey = errors.New("identity provider API key not configured")

// IdentityUser is the subset of a provider user record the dashboard reads.
type IdentityUser struct {
	ID        string    `json:"id"`
	CreatedAt Timestamp `json:"created_at"`
}

// Timestamp accepts epoch seconds, epoch milliseconds or an RFC 3339 string.
type Timestamp struct {
	time.Time
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
		ts.Time = t.UTC()
		return nil
	}
	n, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	if n > 1e12 {
		ts.Time = time.UnixMilli(int64(n)).UTC()
		return nil
	}
	ts.Time = time.Unix(int64(n), 0).UTC()
	return nil
}

// IdentityClient lists users from the hosted identity provider behind a
// circuit breaker.
type IdentityClient struct {
	url    string
	apiKey string
	http   *http.Client
	cb     *gobreaker.CircuitBreaker[[]IdentityUser]
}

func NewIdentityClient(url, apiKey string, httpClient *http.Client) *IdentityClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	metrics.SetBreakerState(breakerName, 0)
	cb := gobreaker.NewCircuitBreaker[[]IdentityUser](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.SetBreakerState(name, stateValue(to))
		},
	})
	return &IdentityClient{url: url, apiKey: apiKey, http: httpClient, cb: cb}
}

func (c *IdentityClient) Users(ctx context.Context) ([]IdentityUser, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	users, err := c.cb.Execute(func() ([]IdentityUser, error) {
		return c.fetch(ctx)
	})
	metrics.RecordIdentity(err)
	return users, err
}

func (c *IdentityClient) fetch(ctx context.Context) ([]IdentityUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("identity provider: status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var users []IdentityUser
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("identity provider: decode users: %w", err)
	}
	return users, nil
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
