package render

import (
	"context"
	"image"

	"github.com/xaionaro-go/edgeviewer/frameslot"
	"github.com/xaionaro-go/edgeviewer/types"
	"github.com/xaionaro-go/xsync"
)

// Texture is a reference Painter that behaves like a GPU texture: the
// storage is reallocated when the frame dimensions change and updated in
// place otherwise. An empty snapshot clears nothing but is counted.
type Texture struct {
	locker     xsync.Mutex
	pix        []byte
	resolution types.Resolution
	stats      TextureStats
}

type TextureStats struct {
	Allocations uint64
	Updates     uint64
	EmptyFrames uint64
}

var _ Painter = (*Texture)(nil)

func NewTexture() *Texture {
	return &Texture{}
}

func (t *Texture) Paint(
	ctx context.Context,
	snap frameslot.Snapshot,
) error {
	t.locker.Do(xsync.WithNoLogging(ctx, true), func() {
		if snap.IsEmpty() {
			t.stats.EmptyFrames++
			return
		}
		if snap.Descriptor != t.resolution {
			t.pix = make([]byte, snap.Len())
			t.resolution = snap.Descriptor
			t.stats.Allocations++
		} else {
			t.stats.Updates++
		}
		copy(t.pix, snap.Buffer)
	})
	return nil
}

// Image returns a copy of the texture content, nil if nothing was painted.
func (t *Texture) Image(ctx context.Context) *image.RGBA {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &t.locker, func() *image.RGBA {
		if t.pix == nil {
			return nil
		}
		return &image.RGBA{
			Pix:    append([]byte(nil), t.pix...),
			Stride: int(t.resolution.Width) * types.BytesPerPixel,
			Rect:   image.Rect(0, 0, int(t.resolution.Width), int(t.resolution.Height)),
		}
	})
}

func (t *Texture) GetStats(ctx context.Context) TextureStats {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &t.locker, func() TextureStats {
		return t.stats
	})
}
