package ratelimit_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alex-user-go/eywa/internal/ratelimit"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}
}

func TestLimiter_Allow(t *testing.T) {
	tests := []struct {
		name       string
		limits     ratelimit.Limits
		key        string
		calls      int
		wantPassed int
	}{
		{
			name:       "all requests within limit",
			limits:     ratelimit.Limits{PerDay: 100, PerMinute: 5},
			key:        "hr1",
			calls:      5,
			wantPassed: 5,
		},
		{
			name:       "minute limit",
			limits:     ratelimit.HotelRunnerLimits,
			key:        "hr2",
			calls:      6,
			wantPassed: 5,
		},
		{
			name:       "daily limit below minute limit",
			limits:     ratelimit.Limits{PerDay: 2, PerMinute: 5},
			key:        "hr3",
			calls:      5,
			wantPassed: 2,
		},
		{
			name:       "zero limit blocks all",
			limits:     ratelimit.Limits{},
			key:        "hr4",
			calls:      3,
			wantPassed: 0,
		},
		{
			name:       "empty key",
			limits:     ratelimit.Limits{PerDay: 10, PerMinute: 2},
			key:        "",
			calls:      3,
			wantPassed: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newClock()
			l := ratelimit.New(tt.limits, ratelimit.WithClock(clock.Now))

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if l.Allow(tt.key) {
					passed++
				}
			}

			assert.Equal(t, tt.wantPassed, passed)
		})
	}
}

func TestLimiter_MinuteWindowResets(t *testing.T) {
	clock := newClock()
	l := ratelimit.New(ratelimit.HotelRunnerLimits, ratelimit.WithClock(clock.Now))

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow("hr"), "call %d", i+1)
	}
	assert.False(t, l.Allow("hr"), "6th call in the same minute")

	// Denied calls are not counted.
	assert.Equal(t, ratelimit.Usage{Today: 5, ThisMinute: 5}, l.Usage("hr"))

	clock.Advance(time.Minute)
	assert.True(t, l.Allow("hr"))
	assert.Equal(t, ratelimit.Usage{Today: 6, ThisMinute: 1}, l.Usage("hr"))
}

func TestLimiter_MinuteBoundaryIsEpochAligned(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 15, 10, 0, 59, 0, time.UTC)}
	l := ratelimit.New(ratelimit.HotelRunnerLimits, ratelimit.WithClock(clock.Now))

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow("hr"))
	}
	assert.False(t, l.Allow("hr"))

	clock.Advance(time.Second)
	assert.True(t, l.Allow("hr"), "new epoch minute starts a fresh window")
}

func TestLimiter_DailyLimit(t *testing.T) {
	clock := newClock()
	l := ratelimit.New(ratelimit.HotelRunnerLimits, ratelimit.WithClock(clock.Now))

	passed := 0
	for i := 0; i < 300; i++ {
		if i > 0 && i%5 == 0 {
			clock.Advance(time.Minute)
		}
		if l.Allow("hr") {
			passed++
		}
	}
	assert.Equal(t, 250, passed)

	clock.Advance(time.Minute)
	assert.False(t, l.Allow("hr"), "251st call of the day")

	// Next UTC day.
	clock.Advance(24 * time.Hour)
	assert.True(t, l.Allow("hr"))
	assert.Equal(t, 1, l.Usage("hr").Today)
}

func TestLimiter_AccountsAreIndependent(t *testing.T) {
	clock := newClock()
	l := ratelimit.New(ratelimit.HotelRunnerLimits, ratelimit.WithClock(clock.Now))

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow("a"))
	}
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
}

func TestLimiter_Concurrent(t *testing.T) {
	clock := newClock()
	l := ratelimit.New(ratelimit.Limits{PerDay: 250, PerMinute: 100}, ratelimit.WithClock(clock.Now))

	var (
		wg      sync.WaitGroup
		allowed atomic.Int64
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared") {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), allowed.Load())
}
