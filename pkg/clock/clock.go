// Package clock abstracts wall-clock reads and one-shot timers so the
// scheduler can be driven deterministically in tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Clock provides the current time and one-shot deferred execution.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func())
}

// Real delegates to the time package.
type Real struct{}

func NewReal() *Real { return &Real{} }

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

type fakeTimer struct {
	at time.Time
	f  func()
}

// Fake is a manually advanced clock. Advance runs due timers in order on the
// calling goroutine, one at a time, matching the cooperative single-runner
// model of the scheduler.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	timers []fakeTimer
}

func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Fake) AfterFunc(d time.Duration, f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timers = append(c.timers, fakeTimer{at: c.now.Add(d), f: f})
}

// Set jumps the clock to t without firing timers.
func (c *Fake) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d, firing every timer whose due time
// is reached, in due-time order.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	deadline := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		sort.SliceStable(c.timers, func(i, j int) bool {
			return c.timers[i].at.Before(c.timers[j].at)
		})

		var next fakeTimer
		found := false
		for i := range c.timers {
			if !c.timers[i].at.After(deadline) {
				next = c.timers[i]
				c.timers = append(c.timers[:i], c.timers[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			c.now = deadline
			c.mu.Unlock()
			return
		}
		if next.at.After(c.now) {
			c.now = next.at
		}
		c.mu.Unlock()

		next.f()
	}
}
