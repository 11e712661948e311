package frameslot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/edgeviewer/logger"
	"github.com/xaionaro-go/edgeviewer/types"
)

func testCtx(t *testing.T) context.Context {
	l := logrus.Default().WithLevel(logger.LevelDebug)
	ctx := logger.CtxWithLogger(context.Background(), l)
	t.Cleanup(func() { belt.Flush(ctx) })
	return ctx
}

func filledMask(width, height int, v byte) []byte {
	return bytes.Repeat([]byte{v}, width*height)
}

func TestPublishAcquire(t *testing.T) {
	ctx := testCtx(t)

	for _, res := range []struct{ w, h int }{{1, 1}, {2, 2}, {3, 7}, {64, 48}, {1280, 720}} {
		t.Run(fmt.Sprintf("%dx%d", res.w, res.h), func(t *testing.T) {
			s := New(nil)
			require.NoError(t, s.Publish(ctx, filledMask(res.w, res.h, 42), res.w, res.h))

			snap := s.Acquire(ctx)
			require.False(t, snap.IsEmpty())
			require.Equal(t, res.w*res.h*4, snap.Len())
			require.Equal(t, Descriptor{Width: uint32(res.w), Height: uint32(res.h)}, snap.Descriptor)
			require.Equal(t, []byte{42, 42, 42, 255}, snap.Buffer[:4])
		})
	}
}

func TestPublishScenario2x2(t *testing.T) {
	ctx := testCtx(t)
	s := New(nil)

	require.NoError(t, s.Publish(ctx, []byte{0, 255, 0, 255}, 2, 2))

	snap := s.Acquire(ctx)
	require.Equal(t, []byte{
		0, 0, 0, 255,
		255, 255, 255, 255,
		0, 0, 0, 255,
		255, 255, 255, 255,
	}, snap.Buffer)
	require.Equal(t, uint32(2), s.Descriptor(ctx).Width)
	require.Equal(t, uint32(2), s.Descriptor(ctx).Height)

	img := snap.Image()
	require.Equal(t, 8, img.Stride)
	require.Equal(t, uint8(255), img.RGBAAt(1, 0).R)
	require.Equal(t, uint8(0), img.RGBAAt(0, 1).R)
}

func TestAcquireBeforePublish(t *testing.T) {
	ctx := testCtx(t)
	s := New(nil)

	snap := s.Acquire(ctx)
	require.True(t, snap.IsEmpty())
	require.Equal(t, Snapshot{}, snap)
	require.Nil(t, snap.Image())
	require.Zero(t, s.Descriptor(ctx).Width)
	require.Zero(t, s.Descriptor(ctx).Height)
	require.Zero(t, s.Generation(ctx))
}

func TestAcquireIsIdempotent(t *testing.T) {
	ctx := testCtx(t)
	s := New(nil)
	require.NoError(t, s.Publish(ctx, []byte{1, 2, 3, 4, 5, 6}, 3, 2))

	first := s.Acquire(ctx).Clone()
	for range 10 {
		snap := s.Acquire(ctx)
		require.Equal(t, first.Descriptor, snap.Descriptor)
		require.Equal(t, first.Generation, snap.Generation)
		require.Equal(t, first.Buffer, snap.Buffer)
	}
}

func TestPublishResize(t *testing.T) {
	ctx := testCtx(t)
	alloc := NewHeapAllocator(0)
	s := New(alloc)

	require.NoError(t, s.Publish(ctx, filledMask(4, 4, 1), 4, 4))
	require.Equal(t, AllocatorStats{Allocations: 1, LiveBytes: 64}, alloc.GetStats())

	// same dimensions reuse the allocation
	require.NoError(t, s.Publish(ctx, filledMask(4, 4, 2), 4, 4))
	require.Equal(t, AllocatorStats{Allocations: 1, LiveBytes: 64}, alloc.GetStats())

	require.NoError(t, s.Publish(ctx, filledMask(8, 2, 3), 8, 2))
	require.Equal(t, AllocatorStats{Allocations: 2, Releases: 1, LiveBytes: 64}, alloc.GetStats())

	require.NoError(t, s.Publish(ctx, filledMask(5, 3, 4), 5, 3))
	require.Equal(t, AllocatorStats{Allocations: 3, Releases: 2, LiveBytes: 60}, alloc.GetStats())

	snap := s.Acquire(ctx)
	require.Equal(t, Descriptor{Width: 5, Height: 3}, snap.Descriptor)
	require.Equal(t, 60, snap.Len())
	require.Equal(t, uint64(4), snap.Generation)
}

func TestPublishInvalid(t *testing.T) {
	ctx := testCtx(t)

	tests := []struct {
		name   string
		mask   []byte
		width  int
		height int
	}{
		{"short_mask", make([]byte, 3), 2, 2},
		{"long_mask", make([]byte, 5), 2, 2},
		{"zero_width", make([]byte, 0), 0, 2},
		{"zero_height", make([]byte, 0), 2, 0},
		{"negative_width", make([]byte, 4), -2, -2},
		{"nil_mask", nil, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := NewHeapAllocator(0)
			s := New(alloc)
			require.NoError(t, s.Publish(ctx, []byte{7}, 1, 1))
			before := s.Acquire(ctx).Clone()

			err := s.Publish(ctx, tt.mask, tt.width, tt.height)
			var errInvalid types.ErrInvalidFrame
			require.True(t, errors.As(err, &errInvalid), "%v", err)

			after := s.Acquire(ctx)
			require.Equal(t, before.Descriptor, after.Descriptor)
			require.Equal(t, before.Generation, after.Generation)
			require.Equal(t, before.Buffer, after.Buffer)
			require.Equal(t, uint64(1), alloc.GetStats().Allocations)
		})
	}
}

func TestPublishAllocationFailure(t *testing.T) {
	ctx := testCtx(t)
	alloc := NewHeapAllocator(2 * 2 * 4)
	s := New(alloc)

	t.Run("on_empty_slot", func(t *testing.T) {
		err := s.Publish(ctx, filledMask(3, 3, 1), 3, 3)
		var errAlloc types.ErrAllocationFailure
		require.True(t, errors.As(err, &errAlloc), "%v", err)
		require.Equal(t, 36, errAlloc.Size)
		require.True(t, s.Acquire(ctx).IsEmpty())
	})

	t.Run("keeps_previous_frame", func(t *testing.T) {
		require.NoError(t, s.Publish(ctx, []byte{10, 20, 30, 40}, 2, 2))
		before := s.Acquire(ctx).Clone()

		err := s.Publish(ctx, filledMask(3, 3, 1), 3, 3)
		var errAlloc types.ErrAllocationFailure
		require.True(t, errors.As(err, &errAlloc), "%v", err)

		after := s.Acquire(ctx)
		require.Equal(t, before, after.Clone())
		require.Equal(t, AllocatorStats{Allocations: 1, LiveBytes: 16}, alloc.GetStats())
	})
}

func TestTeardown(t *testing.T) {
	ctx := testCtx(t)
	alloc := NewHeapAllocator(0)
	s := New(alloc)

	require.False(t, s.Teardown(ctx), "teardown of a never-published slot")

	require.NoError(t, s.Publish(ctx, []byte{0, 255, 0, 255}, 2, 2))
	require.True(t, s.Teardown(ctx))
	require.False(t, s.Teardown(ctx))
	require.Equal(t, AllocatorStats{Allocations: 1, Releases: 1}, alloc.GetStats())

	snap := s.Acquire(ctx)
	require.True(t, snap.IsEmpty())
	require.Equal(t, Descriptor{}, snap.Descriptor)
	require.Equal(t, Descriptor{}, s.Descriptor(ctx))
	desc, generation := s.Status(ctx)
	require.Equal(t, Descriptor{}, desc)
	require.Equal(t, uint64(1), generation, "teardown keeps the generation")

	require.NoError(t, s.Publish(ctx, []byte{9, 9, 9}, 3, 1))
	snap = s.Acquire(ctx)
	require.Equal(t, Descriptor{Width: 3, Height: 1}, snap.Descriptor)
	require.Equal(t, []byte{9, 9, 9, 255}, snap.Buffer[:4])
	require.Equal(t, uint64(2), snap.Generation)
	require.Equal(t, AllocatorStats{Allocations: 2, Releases: 1, LiveBytes: 12}, alloc.GetStats())
}

func TestConcurrentPublishAcquire(t *testing.T) {
	ctx := testCtx(t)
	s := New(nil)

	resolutions := []struct {
		w, h  int
		value byte
	}{
		{2, 2, 10},
		{16, 9, 20},
		{32, 32, 30},
		{7, 3, 40},
	}
	valueFor := map[Descriptor]byte{}
	for _, r := range resolutions {
		valueFor[Descriptor{Width: uint32(r.w), Height: uint32(r.h)}] = r.value
	}

	const iterations = 2000
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range iterations {
			r := resolutions[i%len(resolutions)]
			if err := s.Publish(ctx, filledMask(r.w, r.h, r.value), r.w, r.h); err != nil {
				panic(err)
			}
			if i%500 == 499 {
				s.Teardown(ctx)
			}
		}
	}()

	errCh := make(chan error, 4)
	for range 2 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range iterations {
				snap := s.Acquire(ctx)
				if snap.Len() != snap.Descriptor.RGBASize() {
					errCh <- fmt.Errorf("acquired %d bytes for %s", snap.Len(), snap.Descriptor)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for range iterations {
				var err error
				s.View(ctx, func(snap Snapshot) {
					if snap.IsEmpty() {
						return
					}
					if snap.Len() != snap.Descriptor.RGBASize() {
						err = fmt.Errorf("viewed %d bytes for %s", snap.Len(), snap.Descriptor)
						return
					}
					v := valueFor[snap.Descriptor]
					for i := 0; i < len(snap.Buffer); i += 4 {
						if snap.Buffer[i] != v || snap.Buffer[i+3] != 255 {
							err = fmt.Errorf("torn frame %s at byte %d: %d != %d", snap.Descriptor, i, snap.Buffer[i], v)
							return
						}
					}
				})
				if err != nil {
					errCh <- err
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}
}
