package edge

import (
	"context"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/xaionaro-go/edgeviewer/nv21"
	"github.com/xaionaro-go/edgeviewer/types"
	"go.uber.org/atomic"
)

type BildConfig struct {
	// BlurRadius of the gaussian smoothing before edge extraction; zero disables it.
	BlurRadius float64

	// Threshold on the Sobel magnitude above which a pixel is an edge.
	Threshold uint8
}

func DefaultBildConfig() BildConfig {
	return BildConfig{
		BlurRadius: 1.5,
		Threshold:  96,
	}
}

// Bild is a pure-Go detector: gaussian blur, Sobel, binary threshold.
//
// The parameters may be changed while frames are being processed.
type Bild struct {
	BlurRadius atomic.Float64
	Threshold  atomic.Uint32
}

var _ Detector = (*Bild)(nil)

func NewBild(cfg BildConfig) *Bild {
	d := &Bild{}
	d.BlurRadius.Store(cfg.BlurRadius)
	d.Threshold.Store(uint32(cfg.Threshold))
	return d
}

func (d *Bild) String() string {
	return fmt.Sprintf("Bild(blur:%v, threshold:%d)", d.BlurRadius.Load(), d.Threshold.Load())
}

func (d *Bild) Detect(
	ctx context.Context,
	frame nv21.Frame,
) ([]byte, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, types.ErrConversionFailure{Err: err}
	}

	var src image.Image = frame.Luma()
	if radius := d.BlurRadius.Load(); radius > 0 {
		src = blur.Gaussian(src, radius)
	}
	edges := effect.Sobel(src)
	mask := segment.Threshold(edges, uint8(d.Threshold.Load()))

	if len(mask.Pix) != frame.Width*frame.Height {
		return nil, types.ErrConversionFailure{
			Err: fmt.Errorf("got a mask of %d bytes for a %dx%d frame", len(mask.Pix), frame.Width, frame.Height),
		}
	}
	return mask.Pix, nil
}
