// Package resilience provides the circuit breaker guarding calls to the
// public geocoding and routing services. Neither runs under an SLA, so a
// burst of failures trips the circuit and sheds load until the service
// recovers.
package resilience

import (
	"errors"
	"sync"
	"time"

	"github.com/andrescamacho/haulplan/internal/domain/shared"
)

// State is the circuit position.
type State int

const (
	// StateClosed passes every call through.
	StateClosed State = iota
	// StateOpen fails every call fast until the cooldown elapses.
	StateOpen
	// StateHalfOpen lets calls probe the upstream after the cooldown.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// ErrOpen is returned while the circuit is open.
var ErrOpen = errors.New("circuit breaker open")

// CircuitBreaker trips after a run of consecutive failures and recovers
// through a half-open probe. Safe for concurrent use.
type CircuitBreaker struct {
	maxFailures int
	cooldown    time.Duration
	clock       shared.Clock

	mu          sync.Mutex
	state       State
	failures    int
	lastFailure time.Time
}

// NewCircuitBreaker creates a closed breaker. A nil clock means system time.
func NewCircuitBreaker(maxFailures int, cooldown time.Duration, clock shared.Clock) *CircuitBreaker {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CircuitBreaker{
		maxFailures: maxFailures,
		cooldown:    cooldown,
		clock:       clock,
	}
}

// Do runs fn under the breaker. While the circuit is open, calls return
// ErrOpen without reaching the upstream; once the cooldown has elapsed the
// next call probes it, closing the circuit on success and reopening it on
// failure. fn runs outside the breaker's lock, so slow upstream calls do
// not serialize behind each other.
func (cb *CircuitBreaker) Do(fn func() error) error {
	if err := cb.allow(); err != nil {
		return err
	}

	err := fn()
	cb.record(err)
	return err
}

// State reports the current circuit position.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if cb.clock.Now().Sub(cb.lastFailure) < cb.cooldown {
			return ErrOpen
		}
		cb.state = StateHalfOpen
	}
	return nil
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		cb.failures = 0
		cb.state = StateClosed
		return
	}

	cb.failures++
	cb.lastFailure = cb.clock.Now()
	if cb.state == StateHalfOpen || cb.failures >= cb.maxFailures {
		cb.state = StateOpen
	}
}
