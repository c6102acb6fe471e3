package circuit

import (
	"errors"
	"sync"
	"time"

	"github.com/TemirB/order-pipeline/internal/config"
)

var ErrOpen = errors.New("circuit open")

type State int

const (
	Closed   State = iota // Ok, normal behavior
	Open                  // Open the breaker, do not allow requests until the timeout passes
	HalfOpen              // Half-open state, with trial requests
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

type Option func(*Breaker)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Breaker) { b.now = now }
}

// WithStateChange registers a hook called after every transition, outside the lock.
func WithStateChange(fn func(name string, from, to State)) Option {
	return func(b *Breaker) { b.onChange = fn }
}

// Ticket is handed out by Allow and must be passed back with the outcome.
// It carries the generation the call was admitted in.
type Ticket struct {
	gen uint64
}

// Breaker implements the Circuit Breaker over a count-based sliding window.
// In Closed state the last 'windowSize' outcomes are kept; once at least 'minCalls'
// are recorded and the failure rate reaches 'failureRate' percent, the circuit opens.
// In Open state it blocks all requests for 'openTimeout'.
// In HalfOpen state it allows exactly 'maxHalfOpen' trial requests and decides on
// their failure rate whether to close or to open again.
// Requires explicit Success()/Failure() calls with the Ticket from Allow. Every
// transition starts a new generation; outcomes of calls admitted in an older
// generation are ignored.
type Breaker struct {
	mu    sync.Mutex
	name  string
	state State
	gen   uint64

	window      []bool // ring of outcomes, true means failure
	next        int
	filled      int
	failures    int
	minCalls    int
	failureRate float64

	openTimeout time.Duration
	lastChange  time.Time

	maxHalfOpen  int
	trialAllowed int
	trialDone    int
	trialFailed  int

	now      func() time.Time
	onChange func(name string, from, to State)
}

type transition struct {
	from, to State
	changed  bool
}

func New(name string, cfg config.Breaker, opts ...Option) *Breaker {
	size := int(cfg.WindowSize)
	if size < 1 {
		size = 1
	}
	minCalls := int(cfg.MinCalls)
	if minCalls < 1 {
		minCalls = 1
	}
	if minCalls > size {
		minCalls = size
	}
	maxHalfOpen := int(cfg.MaxHalfOpen)
	if maxHalfOpen < 1 {
		maxHalfOpen = 1
	}

	b := &Breaker{
		name:        name,
		state:       Closed,
		window:      make([]bool, size),
		minCalls:    minCalls,
		failureRate: cfg.FailureRate,
		openTimeout: cfg.OpenTimeout,
		maxHalfOpen: maxHalfOpen,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.lastChange = b.now()
	return b
}

func (b *Breaker) Name() string { return b.name }

// Allow checks if a request is permitted.
// Returns ErrOpen if circuit is open or the half-open trial budget is spent.
// Automatically transitions Open→HalfOpen after timeout.
func (b *Breaker) Allow() (Ticket, error) {
	b.mu.Lock()
	var tr transition
	err := func() error {
		switch b.state {
		case Open:
			if b.now().Sub(b.lastChange) < b.openTimeout {
				return ErrOpen
			}
			tr = b.transitionTo(HalfOpen)
			b.trialAllowed = 1
			return nil
		case HalfOpen:
			if b.trialAllowed >= b.maxHalfOpen {
				return ErrOpen
			}
			b.trialAllowed++
			return nil
		default: // Closed
			return nil
		}
	}()
	t := Ticket{gen: b.gen}
	b.mu.Unlock()

	b.notify(tr)
	return t, err
}

// Success reports a successful operation.
func (b *Breaker) Success(t Ticket) { b.record(t, false) }

// Failure reports a failed operation.
func (b *Breaker) Failure(t Ticket) { b.record(t, true) }

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) record(t Ticket, failed bool) {
	b.mu.Lock()
	if t.gen != b.gen {
		b.mu.Unlock()
		return
	}
	var tr transition
	switch b.state {
	case Closed:
		b.push(failed)
		if b.filled >= b.minCalls && rate(b.failures, b.filled) >= b.failureRate {
			tr = b.transitionTo(Open)
		}
	case HalfOpen:
		b.trialDone++
		if failed {
			b.trialFailed++
		}
		if b.trialDone >= b.maxHalfOpen {
			if rate(b.trialFailed, b.trialDone) >= b.failureRate {
				tr = b.transitionTo(Open)
			} else {
				tr = b.transitionTo(Closed)
			}
		}
	case Open:
		// No call is admitted while open.
	}
	b.mu.Unlock()

	b.notify(tr)
}

func (b *Breaker) push(failed bool) {
	if b.filled == len(b.window) {
		if b.window[b.next] {
			b.failures--
		}
	} else {
		b.filled++
	}
	b.window[b.next] = failed
	if failed {
		b.failures++
	}
	b.next = (b.next + 1) % len(b.window)
}

func (b *Breaker) transitionTo(next State) transition {
	tr := transition{from: b.state, to: next, changed: b.state != next}
	b.state = next
	b.gen++
	b.lastChange = b.now()

	b.trialAllowed = 0
	b.trialDone = 0
	b.trialFailed = 0
	if next == Closed {
		for i := range b.window {
			b.window[i] = false
		}
		b.next, b.filled, b.failures = 0, 0, 0
	}
	return tr
}

func (b *Breaker) notify(tr transition) {
	if tr.changed && b.onChange != nil {
		b.onChange(b.name, tr.from, tr.to)
	}
}

func rate(failed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(failed) * 100 / float64(total)
}
