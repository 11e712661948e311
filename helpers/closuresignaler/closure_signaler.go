// closure_signaler.go provides a close-once signal for long-running loops.

// Package closuresignaler provides a close-once signal for long-running loops.
package closuresignaler

import (
	"context"
	"sync"

	"github.com/xaionaro-go/edgeviewer/logger"
)

type ClosureSignaler struct {
	closeOnce sync.Once
	c         chan struct{}
}

func New() *ClosureSignaler {
	return &ClosureSignaler{
		c: make(chan struct{}),
	}
}

func (c *ClosureSignaler) CloseChan() <-chan struct{} {
	return c.c
}

// Close signals the closure; it returns true only for the call that
// actually closed the channel.
func (c *ClosureSignaler) Close(ctx context.Context) bool {
	logger.Debugf(ctx, "Close")
	defer func() { logger.Debugf(ctx, "/Close") }()
	closed := false
	c.closeOnce.Do(func() {
		close(c.c)
		closed = true
	})
	return closed
}

func (c *ClosureSignaler) IsClosed() bool {
	select {
	case <-c.c:
		return true
	default:
		return false
	}
}
