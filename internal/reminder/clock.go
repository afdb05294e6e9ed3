package reminder

import (
	"fmt"
	"sync"
	"time"
)

// Clock supplies the current civil time in the service's zone.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// ZoneClock reads the wall clock and converts it to a fixed zone.
type ZoneClock struct {
	loc *time.Location
}

// NewZoneClock loads the named IANA zone.
func NewZoneClock(name string) (*ZoneClock, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", name, err)
	}
	return &ZoneClock{loc: loc}, nil
}

func (c *ZoneClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *ZoneClock) Location() *time.Location {
	return c.loc
}

// FixedClock returns a settable instant instead of the wall clock.
type FixedClock struct {
	mu sync.Mutex
	t  time.Time
}

// NewFixedClock creates a clock stopped at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FixedClock) Location() *time.Location {
	return c.Now().Location()
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}
