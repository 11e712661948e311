// loop.go implements the consumer side tick loop.

// Package render drives a painter from a frame slot once per tick.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/xaionaro-go/edgeviewer/frameslot"
	"github.com/xaionaro-go/edgeviewer/helpers/closuresignaler"
	"github.com/xaionaro-go/edgeviewer/logger"
)

// Painter consumes a frame. It is called with the slot locked, so the
// snapshot buffer is safe to read for the duration of the call and must
// not be retained.
type Painter interface {
	Paint(ctx context.Context, snap frameslot.Snapshot) error
}

type Loop struct {
	*closuresignaler.ClosureSignaler
	Acquirer frameslot.Acquirer
	Painter  Painter
	Interval time.Duration
	FPS      *FPSCounter

	painted        bool
	lastGeneration uint64
	lastEmpty      bool
}

func NewLoop(
	acquirer frameslot.Acquirer,
	painter Painter,
	interval time.Duration,
) *Loop {
	return &Loop{
		ClosureSignaler: closuresignaler.New(),
		Acquirer:        acquirer,
		Painter:         painter,
		Interval:        interval,
		FPS:             NewFPSCounter(),
	}
}

func (l *Loop) String() string {
	return fmt.Sprintf("RenderLoop(%v)", l.Interval)
}

// Tick paints the current frame if it differs from the last painted one.
// Tick is not safe for concurrent use; Serve calls it from one goroutine.
func (l *Loop) Tick(ctx context.Context) (bool, error) {
	var (
		painted bool
		err     error
	)
	l.Acquirer.View(ctx, func(snap frameslot.Snapshot) {
		if l.painted && snap.Generation == l.lastGeneration && snap.IsEmpty() == l.lastEmpty {
			return
		}
		err = l.Painter.Paint(ctx, snap)
		if err != nil {
			return
		}
		painted = true
		l.painted = true
		l.lastGeneration = snap.Generation
		l.lastEmpty = snap.IsEmpty()
	})
	if err != nil {
		return false, fmt.Errorf("unable to paint: %w", err)
	}
	if painted {
		l.FPS.Observe(time.Now())
	}
	return painted, nil
}

// Serve ticks until the context is done or the loop is closed.
func (l *Loop) Serve(ctx context.Context) error {
	logger.Debugf(ctx, "Serve")
	defer func() { logger.Debugf(ctx, "/Serve") }()

	t := time.NewTicker(l.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.CloseChan():
			return nil
		case <-t.C:
			if _, err := l.Tick(ctx); err != nil {
				logger.Errorf(ctx, "%v", err)
			}
		}
	}
}
