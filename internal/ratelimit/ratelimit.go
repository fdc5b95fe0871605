package ratelimit

import (
	"sync"
	"time"
)

// Limits are the fixed request quotas of one supplier integration.
type Limits struct {
	PerDay    int
	PerMinute int
}

// HotelRunnerLimits are the HotelRunner API contract quotas per account.
var HotelRunnerLimits = Limits{PerDay: 250, PerMinute: 5}

// Limiter enforces daily and per-minute quotas per supplier account.
// Counters reset lazily when the UTC day or the epoch minute changes.
type Limiter struct {
	mu       sync.Mutex
	accounts map[string]*counters
	limits   Limits
	now      func() time.Time
}

type counters struct {
	today       int
	thisMinute  int
	day         string
	epochMinute int64
}

// Usage is a snapshot of an account's counters.
type Usage struct {
	Today      int
	ThisMinute int
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New creates a new Limiter.
func New(limits Limits, opts ...Option) *Limiter {
	l := &Limiter{
		accounts: make(map[string]*counters),
		limits:   limits,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Limits returns the configured quotas.
func (l *Limiter) Limits() Limits {
	return l.limits
}

// Allow reports whether one more call for accountID fits both quotas and,
// if so, counts it. A denied call is not counted.
func (l *Limiter) Allow(accountID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c := l.current(accountID)

	if c.today >= l.limits.PerDay || c.thisMinute >= l.limits.PerMinute {
		return false
	}

	c.today++
	c.thisMinute++
	return true
}

// Usage returns the current counters for accountID.
func (l *Limiter) Usage(accountID string) Usage {
	l.mu.Lock()
	defer l.mu.Unlock()

	c := l.current(accountID)
	return Usage{Today: c.today, ThisMinute: c.thisMinute}
}

// current returns the account counters after applying pending resets.
// Caller must hold l.mu.
func (l *Limiter) current(accountID string) *counters {
	now := l.now().UTC()
	day := now.Format("2006-01-02")
	minute := now.Unix() / 60

	c, ok := l.accounts[accountID]
	if !ok {
		c = &counters{day: day, epochMinute: minute}
		l.accounts[accountID] = c
	}

	if c.day != day {
		c.today = 0
		c.day = day
	}
	if c.epochMinute != minute {
		c.thisMinute = 0
		c.epochMinute = minute
	}
	return c
}
