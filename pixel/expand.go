// expand.go converts single-channel intensity images into packed RGBA.

// Package pixel provides the gray to RGBA expansion used before a frame is
// handed to a renderer.
package pixel

import (
	"image"

	"github.com/xaionaro-go/edgeviewer/types"
)

const opaque = 0xff

// ExpandGrayToRGBA writes (p, p, p, 255) into dst for every byte p of src.
//
// dst must be at least 4*len(src) bytes long.
func ExpandGrayToRGBA(dst, src []byte) {
	dst = dst[:len(src)*types.BytesPerPixel]
	for i, p := range src {
		j := i * types.BytesPerPixel
		dst[j+0] = p
		dst[j+1] = p
		dst[j+2] = p
		dst[j+3] = opaque
	}
}

// GrayToRGBA is ExpandGrayToRGBA into a freshly allocated buffer.
func GrayToRGBA(src []byte) []byte {
	dst := make([]byte, len(src)*types.BytesPerPixel)
	ExpandGrayToRGBA(dst, src)
	return dst
}

// GrayImageToRGBA expands img row by row, honouring its stride.
func GrayImageToRGBA(img *image.Gray) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	width := bounds.Dx()
	for y := 0; y < bounds.Dy(); y++ {
		srcOffset := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		ExpandGrayToRGBA(
			dst.Pix[y*dst.Stride:],
			img.Pix[srcOffset:srcOffset+width],
		)
	}
	return dst
}
