package nv21

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/edgeviewer/types"
)

func TestSize(t *testing.T) {
	require.Equal(t, 6, Size(2, 2))
	require.Equal(t, 1280*720*3/2, Size(1280, 720))
	require.Equal(t, 9+2*2*2, Size(3, 3))
	require.Equal(t, 3+2*2*1, Size(3, 1))
	require.Equal(t, -1, Size(-1, 2))

	huge := uint64(1) << 32
	require.Equal(t, -1, Size(int(huge), 1))
	require.Equal(t, -1, Size(int(huge), int(huge)))
	maxInt := int(^uint(0) >> 1)
	require.Equal(t, -1, Size(maxInt/2, 4))
}

func TestValidate(t *testing.T) {
	huge := uint64(1) << 32
	tests := []struct {
		name  string
		frame Frame
		valid bool
	}{
		{"exact", Frame{Data: make([]byte, 6), Width: 2, Height: 2}, true},
		{"padded", Frame{Data: make([]byte, 8), Width: 2, Height: 2}, true},
		{"short", Frame{Data: make([]byte, 5), Width: 2, Height: 2}, false},
		{"luma_only", Frame{Data: make([]byte, 4), Width: 2, Height: 2}, false},
		{"zero", Frame{Data: make([]byte, 6), Width: 0, Height: 2}, false},
		{"negative", Frame{Data: make([]byte, 6), Width: 2, Height: -2}, false},
		{"overflow", Frame{Width: int(^uint(0) >> 2), Height: 4}, false},
		{"beyond_uint32", Frame{Width: int(huge), Height: int(huge)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.frame.Validate()
			if tt.valid {
				require.NoError(t, err)
				return
			}
			var errInvalid types.ErrInvalidFrame
			require.True(t, errors.As(err, &errInvalid), "%v", err)
		})
	}
}

func TestLuma(t *testing.T) {
	f := Frame{Data: []byte{1, 2, 3, 4, 5, 6, 100, 200, 100, 200}, Width: 3, Height: 2}
	require.NoError(t, f.Validate())
	luma := f.Luma()
	require.Equal(t, 3, luma.Bounds().Dx())
	require.Equal(t, 2, luma.Bounds().Dy())
	require.Equal(t, uint8(6), luma.GrayAt(2, 1).Y)
	require.Len(t, luma.Pix, 6)
}

func TestFromPlanes(t *testing.T) {
	out := FromPlanes([]byte{1, 2, 3, 4}, []byte{'u'}, []byte{'v'})
	require.Equal(t, []byte{1, 2, 3, 4, 'v', 'u'}, out)
}
