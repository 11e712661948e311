package frameslot

import (
	"context"
)

// Publisher is the producer side of a Slot.
type Publisher interface {
	Publish(ctx context.Context, mask []byte, width, height int) error
}

// Acquirer is the consumer side of a Slot.
type Acquirer interface {
	Acquire(ctx context.Context) Snapshot
	View(ctx context.Context, callback func(Snapshot))
}

// Teardowner releases the frame buffer; it must be safe to call repeatedly.
type Teardowner interface {
	Teardown(ctx context.Context) bool
}

var (
	_ Publisher  = (*Slot)(nil)
	_ Acquirer   = (*Slot)(nil)
	_ Teardowner = (*Slot)(nil)
)
