package retry

import (
	"errors"
	"sync"
	"time"
)

// ErrBreakerOpen is returned while the breaker is refusing calls.
var ErrBreakerOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// Breaker is a minimal circuit breaker: after FailureThreshold consecutive
// failures it opens for Cooldown, then lets a single probe call through.
// Concurrent callers arriving during the probe are refused.
type Breaker struct {
	mu               sync.Mutex
	failureThreshold int
	cooldown         time.Duration
	failures         int
	lastFailure      time.Time
	state            State
	probing          bool

	now func() time.Time // overridable in tests
}

func NewBreaker(failureThreshold int, cooldown time.Duration) *Breaker {
	return &Breaker{
		failureThreshold: failureThreshold,
		cooldown:         cooldown,
		state:            StateClosed,
		now:              time.Now,
	}
}

func NewDefaultBreaker() *Breaker {
	return NewBreaker(3, 60*time.Second)
}

func (b *Breaker) Call(op Operation) error {
	probe := false
	b.mu.Lock()
	if b.state == StateOpen {
		if b.now().Sub(b.lastFailure) > b.cooldown {
			b.state = StateHalfOpen
		} else {
			b.mu.Unlock()
			return ErrBreakerOpen
		}
	}
	if b.state == StateHalfOpen {
		if b.probing {
			b.mu.Unlock()
			return ErrBreakerOpen
		}
		b.probing = true
		probe = true
	}
	b.mu.Unlock()

	err := op()

	b.mu.Lock()
	defer b.mu.Unlock()

	if probe {
		b.probing = false
	}

	if err != nil {
		b.failures++
		b.lastFailure = b.now()
		if b.state == StateHalfOpen || b.failures >= b.failureThreshold {
			b.state = StateOpen
		}
		return err
	}

	if b.state == StateHalfOpen {
		b.state = StateClosed
	}
	b.failures = 0
	return nil
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
