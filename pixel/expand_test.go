package pixel

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandGrayToRGBA(t *testing.T) {
	t.Run("2x2", func(t *testing.T) {
		out := GrayToRGBA([]byte{0, 255, 0, 255})
		require.Equal(t, []byte{
			0, 0, 0, 255,
			255, 255, 255, 255,
			0, 0, 0, 255,
			255, 255, 255, 255,
		}, out)
	})

	t.Run("every_value", func(t *testing.T) {
		src := make([]byte, 256)
		for i := range src {
			src[i] = byte(i)
		}
		dst := make([]byte, len(src)*4)
		ExpandGrayToRGBA(dst, src)
		for i, p := range src {
			require.Equal(t, []byte{p, p, p, 255}, dst[4*i:4*i+4], "pixel %d", i)
		}
	})

	t.Run("empty", func(t *testing.T) {
		require.Empty(t, GrayToRGBA(nil))
	})

	t.Run("dst_too_short", func(t *testing.T) {
		require.Panics(t, func() {
			ExpandGrayToRGBA(make([]byte, 7), []byte{1, 2})
		})
	})

	t.Run("longer_dst_is_untouched_past_the_end", func(t *testing.T) {
		dst := []byte{9, 9, 9, 9, 9}
		ExpandGrayToRGBA(dst, []byte{7})
		require.Equal(t, []byte{7, 7, 7, 255, 9}, dst)
	})
}

func TestGrayImageToRGBA(t *testing.T) {
	full := image.NewGray(image.Rect(0, 0, 4, 3))
	for i := range full.Pix {
		full.Pix[i] = byte(i * 10)
	}
	sub := full.SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)

	out := GrayImageToRGBA(sub)
	require.Equal(t, image.Rect(0, 0, 2, 2), out.Bounds())
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			p := full.GrayAt(x+1, y+1).Y
			c := out.RGBAAt(x, y)
			require.Equal(t, [4]uint8{p, p, p, 255}, [4]uint8{c.R, c.G, c.B, c.A})
		}
	}
}
