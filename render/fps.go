package render

import (
	"sync"
	"time"
)

// FPSCounter reports how many frames were painted per second, refreshed
// once a second.
type FPSCounter struct {
	locker      sync.Mutex
	count       int
	windowStart time.Time
	fps         float64
}

func NewFPSCounter() *FPSCounter {
	return &FPSCounter{}
}

func (c *FPSCounter) Observe(now time.Time) {
	c.locker.Lock()
	defer c.locker.Unlock()
	if c.windowStart.IsZero() {
		c.windowStart = now
	}
	c.count++
	if elapsed := now.Sub(c.windowStart); elapsed >= time.Second {
		c.fps = float64(c.count) / elapsed.Seconds()
		c.count = 0
		c.windowStart = now
	}
}

func (c *FPSCounter) FPS() float64 {
	c.locker.Lock()
	defer c.locker.Unlock()
	return c.fps
}
