package indicator

import (
	"time"

	"go.uber.org/atomic"
)

// Latency smooths durations and remembers the latest smoothed value, so
// it can be read without competing with the writer.
type Latency struct {
	average MovingAverage[int64]
	last    atomic.Duration
}

func NewLatency(window int) *Latency {
	return &Latency{
		average: NewMAMADefault[int64](window),
	}
}

func (l *Latency) Observe(d time.Duration) time.Duration {
	smoothed := time.Duration(l.average.Update(int64(d)))
	l.last.Store(smoothed)
	return smoothed
}

func (l *Latency) Last() time.Duration {
	return l.last.Load()
}
