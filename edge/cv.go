//go:build with_cv
// +build with_cv

package edge

import (
	"context"
	"fmt"
	"image"

	"github.com/xaionaro-go/edgeviewer/nv21"
	"github.com/xaionaro-go/edgeviewer/types"
	"gocv.io/x/gocv"
)

type CVConfig struct {
	KernelSize    int
	Sigma         float64
	LowThreshold  float32
	HighThreshold float32
}

func DefaultCVConfig() CVConfig {
	return CVConfig{
		KernelSize:    5,
		Sigma:         1.5,
		LowThreshold:  50,
		HighThreshold: 150,
	}
}

// CV is an OpenCV detector: gaussian blur followed by Canny.
type CV struct {
	Config CVConfig
}

var _ Detector = (*CV)(nil)

func NewCV(cfg CVConfig) *CV {
	return &CV{Config: cfg}
}

func (d *CV) String() string {
	return fmt.Sprintf("CV(kernel:%d, canny:%v..%v)", d.Config.KernelSize, d.Config.LowThreshold, d.Config.HighThreshold)
}

func (d *CV) Detect(
	ctx context.Context,
	frame nv21.Frame,
) ([]byte, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}

	// NV21 to gray is the luma plane, no color conversion needed.
	gray, err := gocv.NewMatFromBytes(frame.Height, frame.Width, gocv.MatTypeCV8UC1, frame.Luma().Pix)
	if err != nil {
		return nil, types.ErrConversionFailure{Err: fmt.Errorf("unable to wrap the luma plane: %w", err)}
	}
	defer gray.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	k := d.Config.KernelSize
	gocv.GaussianBlur(gray, &blurred, image.Pt(k, k), d.Config.Sigma, d.Config.Sigma, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, d.Config.LowThreshold, d.Config.HighThreshold)
	if edges.Empty() {
		return nil, types.ErrConversionFailure{Err: fmt.Errorf("canny produced an empty matrix")}
	}

	mask := edges.ToBytes()
	if len(mask) != frame.Width*frame.Height {
		return nil, types.ErrConversionFailure{
			Err: fmt.Errorf("got a mask of %d bytes for a %dx%d frame", len(mask), frame.Width, frame.Height),
		}
	}
	return mask, nil
}
