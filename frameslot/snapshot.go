package frameslot

import (
	"image"

	"github.com/xaionaro-go/edgeviewer/types"
)

// Descriptor is the resolution of the frame held by a Slot; zero if none.
type Descriptor = types.Resolution

// Snapshot is what a consumer gets from a Slot: a borrowed view of the
// current buffer. The zero value is the empty sentinel.
//
// Buffer stays valid only until the next Publish or Teardown on the same
// Slot. Use Clone (or Slot.View) to keep the pixels longer.
type Snapshot struct {
	Buffer     []byte
	Descriptor Descriptor
	Generation uint64
}

func (s Snapshot) IsEmpty() bool {
	return s.Buffer == nil
}

// Len is the length of Buffer in bytes.
func (s Snapshot) Len() int {
	return len(s.Buffer)
}

// Image wraps Buffer into an *image.RGBA without copying.
func (s Snapshot) Image() *image.RGBA {
	if s.IsEmpty() {
		return nil
	}
	return &image.RGBA{
		Pix:    s.Buffer,
		Stride: int(s.Descriptor.Width) * types.BytesPerPixel,
		Rect:   image.Rect(0, 0, int(s.Descriptor.Width), int(s.Descriptor.Height)),
	}
}

// Clone returns a snapshot that owns a copy of the pixels.
func (s Snapshot) Clone() Snapshot {
	if s.IsEmpty() {
		return Snapshot{}
	}
	s.Buffer = append([]byte(nil), s.Buffer...)
	return s
}
