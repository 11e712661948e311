// detector.go defines the edge pipeline boundary.

// Package edge turns raw NV21 camera frames into single-channel edge masks.
//
// The numeric behavior of the detectors is not a contract: callers rely only
// on the mask having one byte per pixel of the input frame.
package edge

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/edgeviewer/nv21"
)

// Detector produces a width*height mask for a frame, or fails with
// types.ErrInvalidFrame (malformed input) or types.ErrConversionFailure.
//
// The returned mask may share memory with the frame; it is only read until
// the frame is published.
type Detector interface {
	fmt.Stringer
	Detect(ctx context.Context, frame nv21.Frame) ([]byte, error)
}

// Func adapts a function to Detector.
type Func func(ctx context.Context, frame nv21.Frame) ([]byte, error)

var _ Detector = (Func)(nil)

func (fn Func) Detect(ctx context.Context, frame nv21.Frame) ([]byte, error) {
	return fn(ctx, frame)
}

func (fn Func) String() string {
	return "Func"
}

// Luma publishes the intensity plane as is; a grayscale preview.
type Luma struct{}

var _ Detector = Luma{}

func (Luma) Detect(ctx context.Context, frame nv21.Frame) ([]byte, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}
	return frame.Luma().Pix, nil
}

func (Luma) String() string {
	return "Luma"
}
