package infra

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Breaker guarding the SMTP relay. While open, mail jobs fail fast and take
// the worker's retry/DLQ path instead of piling up on a dead server.

// CBState is one of closed, open or half-open.
type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// ErrCircuitOpen is returned by Execute without calling fn.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreakerConfig struct {
	Name             string        // used in logs, "smtp" when empty
	FailureThreshold int           // consecutive failures that trip the breaker
	SuccessThreshold int           // consecutive half-open successes that close it
	OpenTimeout      time.Duration // cool-down before a trial call is allowed
}

// DefaultCBConfig returns the breaker settings used for the mailer.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{Name: "smtp", FailureThreshold: 5, SuccessThreshold: 2, OpenTimeout: 30 * time.Second}
}

type CircuitBreaker struct {
	cfg CircuitBreakerConfig
	now func() time.Time

	mu       sync.Mutex
	state    CBState
	failures int
	trials   int // successful half-open calls
	inFlight bool
	openedAt time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// State reports the current state, moving open to half-open once the
// cool-down has elapsed.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.tick()
	return cb.state
}

// Execute runs fn unless the breaker is open. In half-open only one call
// runs at a time; concurrent callers are rejected.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	cb.tick()
	if cb.state == CBOpen || (cb.state == CBHalfOpen && cb.inFlight) {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	probing := cb.state == CBHalfOpen
	cb.inFlight = probing
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if probing {
		cb.inFlight = false
	}
	if err != nil {
		cb.failed()
	} else {
		cb.succeeded()
	}
	return err
}

// tick, failed, succeeded and transition expect cb.mu to be held.
func (cb *CircuitBreaker) tick() {
	if cb.state == CBOpen && cb.now().Sub(cb.openedAt) >= cb.cfg.OpenTimeout {
		cb.transition(CBHalfOpen)
	}
}

func (cb *CircuitBreaker) failed() {
	cb.failures++
	if cb.state == CBHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
		cb.openedAt = cb.now()
		cb.transition(CBOpen)
	}
}

func (cb *CircuitBreaker) succeeded() {
	if cb.state != CBHalfOpen {
		cb.failures = 0
		return
	}
	cb.trials++
	if cb.trials >= cb.cfg.SuccessThreshold {
		cb.transition(CBClosed)
	}
}

func (cb *CircuitBreaker) transition(to CBState) {
	if cb.state == to {
		return
	}
	log.Warn().Str("breaker", cb.cfg.Name).Str("from", cb.state.String()).Str("to", to.String()).Msg("circuit breaker state change")
	cb.state = to
	cb.failures = 0
	cb.trials = 0
}
