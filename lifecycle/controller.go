// controller.go maps host lifecycle signals onto frame buffer ownership.

// Package lifecycle translates the host application's init/pause/resume/
// destroy signals into their effect on a frame slot.
//
// Only destroy touches the buffer. The other signals are tracked for
// observability; the host is authoritative, so an unexpected order is
// logged and accepted.
package lifecycle

import (
	"context"

	"github.com/xaionaro-go/edgeviewer/frameslot"
	"github.com/xaionaro-go/edgeviewer/logger"
	"github.com/xaionaro-go/xsync"
)

type Controller struct {
	locker xsync.Mutex
	slot   frameslot.Teardowner
	state  State
}

func NewController(slot frameslot.Teardowner) *Controller {
	return &Controller{
		slot:  slot,
		state: StateCreated,
	}
}

func (c *Controller) State(ctx context.Context) State {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &c.locker, func() State {
		return c.state
	})
}

// Init allocates nothing: the slot starts empty and is populated by the
// first publish.
func (c *Controller) Init(ctx context.Context) {
	logger.Debugf(ctx, "Init")
	defer func() { logger.Debugf(ctx, "/Init") }()
	c.transit(ctx, StateInitialized, StateCreated, StateDestroyed)
}

func (c *Controller) Resume(ctx context.Context) {
	logger.Debugf(ctx, "Resume")
	defer func() { logger.Debugf(ctx, "/Resume") }()
	c.transit(ctx, StateResumed, StateInitialized, StatePaused)
}

func (c *Controller) Pause(ctx context.Context) {
	logger.Debugf(ctx, "Pause")
	defer func() { logger.Debugf(ctx, "/Pause") }()
	c.transit(ctx, StatePaused, StateResumed)
}

// Teardown releases the slot's buffer. Calling it again is a no-op.
func (c *Controller) Teardown(ctx context.Context) {
	logger.Debugf(ctx, "Teardown")
	defer func() { logger.Debugf(ctx, "/Teardown") }()
	c.locker.Do(ctx, func() {
		released := c.slot.Teardown(ctx)
		logger.Debugf(ctx, "state %s -> %s; buffer released: %v", c.state, StateDestroyed, released)
		c.state = StateDestroyed
	})
}

func (c *Controller) transit(
	ctx context.Context,
	to State,
	expectedFrom ...State,
) {
	c.locker.Do(ctx, func() {
		from := c.state
		if !isOneOf(from, expectedFrom) {
			logger.Warnf(ctx, "unexpected lifecycle transition %s -> %s", from, to)
		} else {
			logger.Debugf(ctx, "state %s -> %s", from, to)
		}
		c.state = to
	})
}

func isOneOf(s State, set []State) bool {
	for _, item := range set {
		if s == item {
			return true
		}
	}
	return false
}
