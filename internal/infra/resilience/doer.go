package resilience

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker open")

// Settings configures a breaker-guarded HTTP client.
type Settings struct {
	Name string

	// Timeout bounds every outbound call.
	Timeout time.Duration

	// MaxFailures consecutive failures open the breaker.
	MaxFailures uint32

	// Cooldown is how long the breaker stays open before probing.
	Cooldown time.Duration
}

// Doer executes HTTP requests through a circuit breaker. Requests are never retried.
type Doer struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewDoer builds a Doer with the given settings.
func NewDoer(s Settings) *Doer {
	if s.Timeout <= 0 {
		s.Timeout = 10 * time.Second
	}
	if s.MaxFailures == 0 {
		s.MaxFailures = 5
	}
	if s.Cooldown <= 0 {
		s.Cooldown = 30 * time.Second
	}
	maxFailures := s.MaxFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	})
	return &Doer{
		client:  &http.Client{Timeout: s.Timeout},
		breaker: breaker,
	}
}

// Do sends req. Server errors count against the breaker and are returned as
// errors; other responses are handed back for the caller to inspect.
func (d *Doer) Do(req *http.Request) (*http.Response, error) {
	result, err := d.breaker.Execute(func() (interface{}, error) {
		resp, err := d.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			defer resp.Body.Close()
			return nil, StatusError(resp)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %s: %v", ErrCircuitOpen, d.breaker.Name(), err)
		}
		return nil, err
	}
	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

// StatusError builds an error from a non-success response, including a
// bounded body snippet.
func StatusError(resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return fmt.Errorf("request error: status=%d body=%s", resp.StatusCode, string(payload))
}
