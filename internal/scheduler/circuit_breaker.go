package scheduler

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// CircuitState represents the state of the circuit breaker
type CircuitState int

const (
	// CircuitClosed means rebuilds run normally
	CircuitClosed CircuitState = iota
	// CircuitHalfOpen means one trial rebuild is allowed after cooldown
	CircuitHalfOpen
	// CircuitOpen means rebuilds are paused
	CircuitOpen
)

// String returns string representation of circuit state
func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "CLOSED"
	case CircuitHalfOpen:
		return "HALF_OPEN"
	case CircuitOpen:
		return "OPEN"
	default:
		return "UNKNOWN"
	}
}

// CircuitBreakerConfig defines circuit breaker thresholds
type CircuitBreakerConfig struct {
	MaxFailureCount   int
	FailureTimeWindow time.Duration
	CooldownPeriod    time.Duration
}

// CircuitBreaker pauses scheduled rebuilds after repeated failures
type CircuitBreaker struct {
	config          CircuitBreakerConfig
	state           CircuitState
	failureCount    int
	lastFailureTime time.Time
	openedAt        time.Time
	now             func() time.Time
	mu              sync.Mutex
	logger          *logrus.Entry
}

// NewCircuitBreaker creates a circuit breaker. MaxFailureCount <= 0 disables it.
func NewCircuitBreaker(config CircuitBreakerConfig, logger *logrus.Logger) *CircuitBreaker {
	if logger == nil {
		logger = logrus.New()
	}
	return &CircuitBreaker{
		config: config,
		state:  CircuitClosed,
		now:    time.Now,
		logger: logger.WithField("component", "circuit_breaker"),
	}
}

// Allow reports whether a job may run now. An open circuit moves to half-open
// once the cooldown has elapsed.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitOpen && cb.now().Sub(cb.openedAt) >= cb.config.CooldownPeriod {
		cb.state = CircuitHalfOpen
		cb.logger.Info("Circuit breaker entering half-open state after cooldown")
	}
	return cb.state != CircuitOpen
}

// RecordFailure increments failure count and opens circuit if threshold exceeded
func (cb *CircuitBreaker) RecordFailure(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.config.MaxFailureCount <= 0 {
		return
	}

	now := cb.now()
	if cb.config.FailureTimeWindow > 0 && now.Sub(cb.lastFailureTime) > cb.config.FailureTimeWindow {
		cb.failureCount = 0
	}
	cb.failureCount++
	cb.lastFailureTime = now

	cb.logger.WithFields(logrus.Fields{
		"failure_count": cb.failureCount,
		"max_allowed":   cb.config.MaxFailureCount,
		"error":         err.Error(),
	}).Warn("Failure recorded")

	// A failed half-open trial reopens immediately.
	if cb.state == CircuitHalfOpen || cb.failureCount >= cb.config.MaxFailureCount {
		cb.open(now)
	}
}

// RecordSuccess closes the circuit and resets the failure count
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != CircuitClosed {
		cb.logger.WithField("old_state", cb.state.String()).Info("Circuit breaker closed")
	}
	cb.state = CircuitClosed
	cb.failureCount = 0
}

// State returns current circuit state
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Reset manually resets circuit breaker to closed state
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.state = CircuitClosed
	cb.failureCount = 0
}

func (cb *CircuitBreaker) open(now time.Time) {
	oldState := cb.state
	cb.state = CircuitOpen
	cb.openedAt = now

	cb.logger.WithFields(logrus.Fields{
		"old_state":       oldState.String(),
		"new_state":       cb.state.String(),
		"failure_count":   cb.failureCount,
		"cooldown_period": cb.config.CooldownPeriod,
	}).Error("Rebuilds paused")
}
