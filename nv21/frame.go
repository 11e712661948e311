// frame.go describes the camera-native NV21 layout.

// Package nv21 handles camera frames in the NV21 layout: a full-resolution
// luma plane followed by a half-resolution plane of interleaved V/U samples.
package nv21

import (
	"image"
	"math"
	"math/bits"

	"github.com/xaionaro-go/edgeviewer/types"
)

type Frame struct {
	Data   []byte
	Width  int
	Height int
}

// Size returns the minimal length of an NV21 buffer of the given dimensions.
// Odd dimensions round the chroma plane up. It returns -1 if the dimensions
// are negative, do not fit in uint32, or the length does not fit in int.
func Size(width, height int) int {
	if width < 0 || height < 0 || uint64(width) > math.MaxUint32 || uint64(height) > math.MaxUint32 {
		return -1
	}
	w, h := uint64(width), uint64(height)
	lumaHi, lumaLo := bits.Mul64(w, h)
	chromaHi, chromaLo := bits.Mul64((w+1)/2, 2*((h+1)/2))
	total, carry := bits.Add64(lumaLo, chromaLo, 0)
	if lumaHi|chromaHi|carry != 0 || total > math.MaxInt {
		return -1
	}
	return int(total)
}

// Validate returns types.ErrInvalidFrame if the dimensions are not positive
// or Data is too short for them. Trailing padding is accepted.
func (f Frame) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return types.ErrInvalidFrame{Width: f.Width, Height: f.Height, Length: len(f.Data)}
	}
	expected := Size(f.Width, f.Height)
	if expected < 0 || len(f.Data) < expected {
		return types.ErrInvalidFrame{Width: f.Width, Height: f.Height, Length: len(f.Data), Expected: expected}
	}
	return nil
}

// Luma returns the intensity plane as an image sharing Data.
func (f Frame) Luma() *image.Gray {
	return &image.Gray{
		Pix:    f.Data[:f.Width*f.Height],
		Stride: f.Width,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

// FromPlanes packs the three planes of a YUV_420_888 image into NV21. The
// chroma planes are expected to be already interleaved by the camera (pixel
// stride 2), so V followed by U yields the VU ordering of NV21.
func FromPlanes(y, u, v []byte) []byte {
	out := make([]byte, 0, len(y)+len(u)+len(v))
	out = append(out, y...)
	out = append(out, v...)
	out = append(out, u...)
	return out
}
