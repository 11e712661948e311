// slot.go implements the single-frame hand-off between a producer and a consumer.

// Package frameslot implements a one-frame mailbox shared by a producer
// goroutine publishing edge masks and a render goroutine painting them.
//
// Only the latest frame is kept: a publish overwrites whatever was there,
// whether or not it was ever acquired. Every access to the buffer, its
// descriptor and its validity happens under a single lock, and a publish
// holds that lock for the whole expand-and-install sequence, so a consumer
// never observes a torn frame.
package frameslot

import (
	"context"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/xaionaro-go/edgeviewer/logger"
	"github.com/xaionaro-go/edgeviewer/pixel"
	"github.com/xaionaro-go/edgeviewer/types"
	"github.com/xaionaro-go/xsync"
)

type Slot struct {
	locker     xsync.Mutex
	allocator  Allocator
	buffer     []byte
	descriptor Descriptor
	valid      bool
	generation uint64
}

// New returns an empty Slot. A nil allocator means an unlimited HeapAllocator.
func New(allocator Allocator) *Slot {
	if allocator == nil {
		allocator = NewHeapAllocator(0)
	}
	return &Slot{
		allocator: allocator,
	}
}

func validateMask(mask []byte, width, height int) error {
	if width <= 0 || height <= 0 || uint64(width) > math.MaxUint32 || uint64(height) > math.MaxUint32 {
		return types.ErrInvalidFrame{Width: width, Height: height, Length: len(mask)}
	}
	expected := width * height
	if len(mask) != expected {
		return types.ErrInvalidFrame{Width: width, Height: height, Length: len(mask), Expected: expected}
	}
	return nil
}

// Publish expands the single-channel mask into RGBA and installs it as the
// current frame.
//
// A malformed mask returns types.ErrInvalidFrame and a failed resize returns
// types.ErrAllocationFailure; in both cases the Slot is left as it was.
func (s *Slot) Publish(
	ctx context.Context,
	mask []byte,
	width, height int,
) error {
	if err := validateMask(mask, width, height); err != nil {
		return err
	}
	return xsync.DoA4R1(xsync.WithNoLogging(ctx, true), &s.locker, s.publishLocked, ctx, mask, width, height)
}

func (s *Slot) publishLocked(
	ctx context.Context,
	mask []byte,
	width, height int,
) error {
	desc := Descriptor{Width: uint32(width), Height: uint32(height)}
	if s.buffer == nil || desc != s.descriptor {
		if err := s.resizeLocked(ctx, desc); err != nil {
			return err
		}
	}

	pixel.ExpandGrayToRGBA(s.buffer, mask)
	s.valid = true
	s.generation++
	assert(ctx, len(s.buffer) == s.descriptor.RGBASize(), len(s.buffer), s.descriptor)
	logger.Tracef(ctx, "published frame #%d (%s)", s.generation, s.descriptor)
	return nil
}

// resizeLocked replaces the buffer. The new buffer is obtained before the old
// one is released, so a failure leaves the previous frame displayable.
func (s *Slot) resizeLocked(
	ctx context.Context,
	desc Descriptor,
) error {
	size := desc.RGBASize()
	buf, err := s.allocator.Allocate(size)
	if err != nil {
		err = types.ErrAllocationFailure{Size: size, Err: err}
		logger.Errorf(ctx, "unable to resize the frame slot from %s to %s: %v", s.descriptor, desc, err)
		return err
	}
	assert(ctx, len(buf) == size, len(buf), size)

	if s.buffer != nil {
		s.allocator.Release(s.buffer)
	}
	logger.Debugf(ctx, "frame slot resized from %s to %s (%s)", s.descriptor, desc, humanize.IBytes(uint64(size)))
	s.buffer = buf
	s.descriptor = desc
	return nil
}

// Acquire returns the current frame, or the empty Snapshot if nothing was
// published since creation or the last Teardown.
func (s *Slot) Acquire(ctx context.Context) Snapshot {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &s.locker, s.snapshotLocked)
}

// View calls callback with the current frame while holding the lock, so the
// snapshot can be copied or uploaded without racing a Publish or Teardown.
//
// callback must not call back into the Slot.
func (s *Slot) View(
	ctx context.Context,
	callback func(Snapshot),
) {
	s.locker.Do(xsync.WithNoLogging(ctx, true), func() {
		callback(s.snapshotLocked())
	})
}

func (s *Slot) snapshotLocked() Snapshot {
	if !s.valid {
		return Snapshot{}
	}
	return Snapshot{
		Buffer:     s.buffer,
		Descriptor: s.descriptor,
		Generation: s.generation,
	}
}

// Descriptor returns the resolution of the current frame; zero if empty.
func (s *Slot) Descriptor(ctx context.Context) Descriptor {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &s.locker, func() Descriptor {
		return s.descriptor
	})
}

// Generation returns the number of successful publishes so far. It is not
// reset by Teardown.
func (s *Slot) Generation(ctx context.Context) uint64 {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &s.locker, func() uint64 {
		return s.generation
	})
}

// Status returns the current descriptor and generation read under one lock.
func (s *Slot) Status(ctx context.Context) (Descriptor, uint64) {
	return xsync.DoR2(xsync.WithNoLogging(ctx, true), &s.locker, func() (Descriptor, uint64) {
		return s.descriptor, s.generation
	})
}

// Teardown releases the buffer and returns the Slot to the empty state.
// It returns false if there was nothing to release, which makes repeated
// calls harmless. The Slot stays usable: a later Publish repopulates it.
func (s *Slot) Teardown(ctx context.Context) bool {
	return xsync.DoA1R1(ctx, &s.locker, s.teardownLocked, ctx)
}

func (s *Slot) teardownLocked(ctx context.Context) bool {
	if s.buffer == nil {
		logger.Debugf(ctx, "frame slot is already empty")
		return false
	}
	logger.Debugf(ctx, "releasing the %s frame buffer", s.descriptor)
	s.allocator.Release(s.buffer)
	s.buffer = nil
	s.descriptor = Descriptor{}
	s.valid = false
	return true
}
