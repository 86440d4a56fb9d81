// Package resilience keeps session persistence available when a storage
// backend fails.
//
// [CircuitBreaker] is a three-state breaker (closed, open, half-open) that
// stops hammering a backend that keeps failing. [FallbackGroup] chains
// backends of one type behind per-backend breakers so a broken primary is
// bypassed in favour of the next healthy one. [StoreFallback] applies the
// chain to the session history store, letting a database-backed primary
// degrade to a local file without losing a finished assessment.
//
// All types are safe for concurrent use.
package resilience

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrCircuitOpen is returned by [CircuitBreaker.Execute] while the breaker
// is open and its quiet period has not elapsed.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is the operating mode of a [CircuitBreaker].
type State int

const (
	// StateClosed forwards every call.
	StateClosed State = iota

	// StateOpen rejects every call with [ErrCircuitOpen] until the quiet
	// period elapses.
	StateOpen

	// StateHalfOpen lets a bounded number of probe calls through to test
	// whether the backend has recovered.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig tunes a [CircuitBreaker]. Zero fields take the
// documented defaults.
type CircuitBreakerConfig struct {
	// Name labels the protected backend in log messages.
	Name string

	// MaxFailures is how many consecutive failures trip the breaker while
	// closed. Default: 5.
	MaxFailures int

	// ResetTimeout is the quiet period after tripping before probe calls
	// are allowed. Default: 30s.
	ResetTimeout time.Duration

	// HalfOpenMax bounds the probe calls allowed while half-open.
	// Default: 3.
	HalfOpenMax int
}

// CircuitBreaker guards calls against a backend that may be down. It trips
// after MaxFailures consecutive failures, rejects calls for ResetTimeout,
// then probes the backend with up to HalfOpenMax calls before closing
// again.
type CircuitBreaker struct {
	name         string
	maxFailures  int
	resetTimeout time.Duration
	halfOpenMax  int

	mu         sync.Mutex
	state      State
	failures   int
	reopenAt   time.Time
	probes     int
	probeFails int
}

// NewCircuitBreaker creates a breaker from cfg, filling in defaults for
// zero fields.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = 30 * time.Second
	}
	if cfg.HalfOpenMax <= 0 {
		cfg.HalfOpenMax = 3
	}
	return &CircuitBreaker{
		name:         cfg.Name,
		maxFailures:  cfg.MaxFailures,
		resetTimeout: cfg.ResetTimeout,
		halfOpenMax:  cfg.HalfOpenMax,
	}
}

// Execute runs fn unless the breaker rejects the call. While open it
// returns [ErrCircuitOpen] without touching the backend; while half-open
// only the probe budget is let through.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	probe, err := cb.admit()
	if err != nil {
		return err
	}

	err = fn()
	cb.observe(err, probe)
	return err
}

// admit decides whether a call may proceed and whether it counts as a
// half-open probe.
func (cb *CircuitBreaker) admit() (probe bool, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if time.Now().Before(cb.reopenAt) {
			return false, ErrCircuitOpen
		}
		cb.state = StateHalfOpen
		cb.probes = 0
		cb.probeFails = 0
		slog.Info("probing backend after quiet period", "backend", cb.name)

	case StateHalfOpen:
		if cb.probes >= cb.halfOpenMax {
			return false, ErrCircuitOpen
		}
	}

	if cb.state == StateHalfOpen {
		cb.probes++
		return true, nil
	}
	return false, nil
}

// observe records the outcome of an admitted call.
func (cb *CircuitBreaker) observe(err error, probe bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		if probe {
			if cb.probes-cb.probeFails >= cb.halfOpenMax {
				cb.state = StateClosed
				cb.failures = 0
				slog.Info("backend recovered, circuit closed", "backend", cb.name)
			}
			return
		}
		cb.failures = 0
		return
	}

	if probe {
		// One failed probe is enough evidence the backend is still down.
		cb.probeFails++
		cb.trip()
		return
	}

	cb.failures++
	if cb.failures >= cb.maxFailures {
		cb.trip()
	}
}

// trip opens the breaker and starts the quiet period. Must be called with
// cb.mu held.
func (cb *CircuitBreaker) trip() {
	cb.state = StateOpen
	cb.failures = cb.maxFailures
	cb.reopenAt = time.Now().Add(cb.resetTimeout)
	slog.Warn("backend circuit opened", "backend", cb.name)
}

// State reports the breaker's mode. An open breaker whose quiet period has
// elapsed reports half-open; the transition itself happens on the next
// Execute.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen && !time.Now().Before(cb.reopenAt) {
		return StateHalfOpen
	}
	return cb.state
}

// Reset forces the breaker closed and clears all counters.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.state = StateClosed
	cb.failures = 0
	cb.probes = 0
	cb.probeFails = 0
	slog.Info("backend circuit manually reset", "backend", cb.name)
}
