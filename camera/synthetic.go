// synthetic.go generates NV21 frames for demos and tests.

// Package camera provides frame sources feeding the viewer.
package camera

import (
	"context"
	"fmt"
	"time"

	"github.com/xaionaro-go/edgeviewer/logger"
	"github.com/xaionaro-go/edgeviewer/nv21"
	"github.com/xaionaro-go/edgeviewer/types"
)

// DefaultResolution is the preview size requested from a real camera.
var DefaultResolution = types.Resolution{Width: 1280, Height: 720}

// Sink receives every generated frame. The frame buffer is not reused by
// the source, the sink may keep it.
type Sink func(ctx context.Context, raw []byte, width, height int)

// Synthetic draws a bright square sliding over a dark horizontal gradient,
// which yields a stable set of edges that move between frames.
type Synthetic struct {
	Resolution types.Resolution
}

func NewSynthetic(res types.Resolution) *Synthetic {
	return &Synthetic{Resolution: res}
}

func (s *Synthetic) String() string {
	return fmt.Sprintf("Synthetic(%s)", s.Resolution)
}

const (
	squareLuma    = 235
	gradientMax   = 64
	neutralChroma = 128
)

// Frame renders frame number n.
func (s *Synthetic) Frame(n uint64) []byte {
	w, h := int(s.Resolution.Width), int(s.Resolution.Height)
	raw := make([]byte, nv21.Size(w, h))

	side := max(h/4, 1)
	travel := max(w-side, 1)
	left := int(n*4) % travel
	top := (h - side) / 2

	for y := 0; y < h; y++ {
		row := raw[y*w : (y+1)*w]
		inRows := y >= top && y < top+side
		for x := range row {
			if inRows && x >= left && x < left+side {
				row[x] = squareLuma
				continue
			}
			row[x] = byte(x * gradientMax / w)
		}
	}
	for i := w * h; i < len(raw); i++ {
		raw[i] = neutralChroma
	}
	return raw
}

// Serve generates a frame every interval until the context is done.
func (s *Synthetic) Serve(
	ctx context.Context,
	interval time.Duration,
	sink Sink,
) error {
	logger.Debugf(ctx, "Serve: %s every %v", s.Resolution, interval)
	defer func() { logger.Debugf(ctx, "/Serve") }()

	t := time.NewTicker(interval)
	defer t.Stop()
	w, h := int(s.Resolution.Width), int(s.Resolution.Height)
	for n := uint64(0); ; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			sink(ctx, s.Frame(n), w, h)
		}
	}
}
