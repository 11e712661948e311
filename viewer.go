// viewer.go implements the boundary between the host application, the
// camera producer and the renderer.

// Package edgeviewer hands edge-highlighted camera frames from a processing
// goroutine to a render goroutine through a single-frame slot.
//
// The producer calls Ingest for every camera frame; the renderer calls
// GetBuffer/GetWidth/GetHeight (or Slot().View) once per tick; the host
// forwards its lifecycle signals to Init/OnResume/OnPause/Destroy.
package edgeviewer

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/go-ng/xatomic"
	"github.com/xaionaro-go/edgeviewer/edge"
	"github.com/xaionaro-go/edgeviewer/frameslot"
	"github.com/xaionaro-go/edgeviewer/indicator"
	"github.com/xaionaro-go/edgeviewer/lifecycle"
	"github.com/xaionaro-go/edgeviewer/logger"
	"github.com/xaionaro-go/edgeviewer/nv21"
	"github.com/xaionaro-go/edgeviewer/types"
	"github.com/xaionaro-go/xcontext"
)

type Statistics = types.Statistics

type Viewer struct {
	slot      *frameslot.Slot
	lifecycle *lifecycle.Controller
	detector  *edge.Detector

	ingested  *types.CountersItem
	published *types.CountersItem
	dropped   types.DropCounters
	latency   *indicator.Latency
}

func New(
	ctx context.Context,
	cfg Config,
) *Viewer {
	cfg = cfg.withDefaults()
	slot := frameslot.New(cfg.Allocator)
	v := &Viewer{
		slot:      slot,
		lifecycle: lifecycle.NewController(slot),
		ingested:  types.NewCountersItem(),
		published: types.NewCountersItem(),
		dropped:   types.NewDropCounters(),
		latency:   indicator.NewLatency(cfg.LatencyWindow),
	}
	v.SetDetector(ctx, cfg.Detector)
	return v
}

func (v *Viewer) String() string {
	return fmt.Sprintf("Viewer(%s)", v.Detector())
}

func (v *Viewer) Detector() edge.Detector {
	return *xatomic.LoadPointer(&v.detector)
}

// SetDetector replaces the edge pipeline; frames already inside Ingest
// finish with the previous one.
func (v *Viewer) SetDetector(ctx context.Context, detector edge.Detector) {
	if detector == nil {
		detector = DefaultConfig().Detector
	}
	logger.Debugf(ctx, "SetDetector(ctx, %s)", detector)
	xatomic.StorePointer(&v.detector, &detector)
}

// Slot gives the renderer direct access to snapshots, including the locked
// View for copying a frame out.
func (v *Viewer) Slot() *frameslot.Slot {
	return v.slot
}

func (v *Viewer) Lifecycle() *lifecycle.Controller {
	return v.lifecycle
}

// Ingest runs the edge pipeline on an NV21 frame and publishes the result.
//
// It never fails: a frame that cannot be processed is logged, counted and
// dropped, and the previous frame stays displayed. The return value tells
// whether the frame was published.
func (v *Viewer) Ingest(
	ctx context.Context,
	raw []byte,
	width, height int,
) bool {
	startedAt := time.Now()
	v.ingested.Increment(uint64(len(raw)))

	frame := nv21.Frame{Data: raw, Width: width, Height: height}
	err := frame.Validate()
	var mask []byte
	if err == nil {
		mask, err = v.detect(ctx, frame)
	}
	if err == nil && len(mask) != width*height {
		err = types.ErrConversionFailure{
			Err: fmt.Errorf("the detector returned %d bytes for a %dx%d frame", len(mask), width, height),
		}
	}
	if err == nil {
		err = v.slot.Publish(ctx, mask, width, height)
	}
	if err != nil {
		v.drop(ctx, err, len(raw))
		return false
	}

	v.published.Increment(uint64(width * height * types.BytesPerPixel))
	latency := v.latency.Observe(time.Since(startedAt))
	logger.Tracef(ctx, "ingested a %dx%d frame; smoothed latency: %v", width, height, latency)
	return true
}

func (v *Viewer) detect(
	ctx context.Context,
	frame nv21.Frame,
) (_ret []byte, _err error) {
	detector := v.Detector()
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		logger.Errorf(ctx, "got panic in %s: %v:\n%s\n", detector, r, debug.Stack())
		_ret, _err = nil, types.ErrConversionFailure{Err: fmt.Errorf("%s panicked: %v", detector, r)}
	}()
	return detector.Detect(ctx, frame)
}

func (v *Viewer) drop(
	ctx context.Context,
	err error,
	size int,
) {
	var (
		errInvalid types.ErrInvalidFrame
		errAlloc   types.ErrAllocationFailure
	)
	switch {
	case errors.As(err, &errInvalid):
		v.dropped.InvalidFrame.Increment(uint64(size))
		logger.Warnf(ctx, "dropping the frame: %v", err)
	case errors.As(err, &errAlloc):
		v.dropped.AllocationFailure.Increment(uint64(size))
		logger.Warnf(ctx, "dropping the frame, the previous one stays displayed: %v", err)
	default:
		v.dropped.ConversionFailure.Increment(uint64(size))
		logger.Warnf(ctx, "dropping the frame: %v", err)
	}
}

// GetBuffer returns the current RGBA frame and its length in bytes, or
// (nil, 0) if there is none.
//
// The buffer is borrowed: it may be overwritten by the next Ingest and is
// released by Destroy. Copy it before the render tick ends, or use
// Slot().View to work on it under the lock.
func (v *Viewer) GetBuffer(ctx context.Context) ([]byte, int) {
	snap := v.slot.Acquire(ctx)
	return snap.Buffer, snap.Len()
}

func (v *Viewer) GetWidth(ctx context.Context) int {
	return int(v.slot.Descriptor(ctx).Width)
}

func (v *Viewer) GetHeight(ctx context.Context) int {
	return int(v.slot.Descriptor(ctx).Height)
}

func (v *Viewer) Init(ctx context.Context) {
	v.lifecycle.Init(ctx)
}

func (v *Viewer) OnResume(ctx context.Context) {
	v.lifecycle.Resume(ctx)
}

func (v *Viewer) OnPause(ctx context.Context) {
	v.lifecycle.Pause(ctx)
}

// Destroy releases the frame buffer. It is safe to call more than once, and
// a later Ingest repopulates the viewer.
func (v *Viewer) Destroy(ctx context.Context) {
	// the host commonly signals destruction after canceling its context,
	// the buffer must be released regardless
	v.lifecycle.Teardown(xcontext.DetachDone(ctx))
}

func (v *Viewer) GetStats(ctx context.Context) *Statistics {
	resolution, generation := v.slot.Status(ctx)
	return &Statistics{
		Ingested:          v.ingested.ToStats(),
		Published:         v.published.ToStats(),
		Dropped:           v.dropped.ToStats(),
		Resolution:        resolution,
		Generation:        generation,
		ProcessingLatency: v.latency.Last(),
	}
}
