package engine

import (
	"math/rand"
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FakeClock is deterministic and test-friendly.
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{t: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// Roller is the random source for critical and loot rolls. *rand.Rand satisfies it.
type Roller interface {
	Float64() float64
	Intn(n int) int
}

// NewRoller returns a seeded Roller. The same seed replays the same rolls.
func NewRoller(seed int64) Roller {
	return rand.New(rand.NewSource(seed))
}

const dateLayout = "2006-01-02"

// LocalDate formats t as a calendar date in t's own location.
func LocalDate(t time.Time) string {
	return t.Format(dateLayout)
}

// dayBounds returns the start of t's calendar day and the start of the next one.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
