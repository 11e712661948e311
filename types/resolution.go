package types

import (
	"fmt"
)

// BytesPerPixel is the size of one packed RGBA pixel.
const BytesPerPixel = 4

// Resolution is the width and height of a frame in pixels.
//
// The zero value means "no frame".
type Resolution struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

func (r *Resolution) Parse(s string) error {
	var res Resolution
	_, err := fmt.Sscanf(s, "%dx%d", &res.Width, &res.Height)
	if err != nil {
		return fmt.Errorf("unable to parse resolution '%s': %w", s, err)
	}
	if res.Width == 0 || res.Height == 0 {
		return fmt.Errorf("resolution '%s' has a zero dimension", s)
	}
	*r = res
	return nil
}

// Set implements pflag.Value.
func (r *Resolution) Set(s string) error {
	return r.Parse(s)
}

// Type implements pflag.Value.
func (r *Resolution) Type() string {
	return "resolution"
}

func (r Resolution) IsZero() bool {
	return r.Width == 0 && r.Height == 0
}

// Pixels returns Width*Height.
func (r Resolution) Pixels() int {
	return int(r.Width) * int(r.Height)
}

// RGBASize returns the size in bytes of a packed RGBA buffer of this resolution.
func (r Resolution) RGBASize() int {
	return r.Pixels() * BytesPerPixel
}
