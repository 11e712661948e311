package edge

import (
	"fmt"
)

// ByName returns a detector with default parameters: "bild", "luma", or
// "cv" if built with the with_cv tag.
func ByName(name string) (Detector, error) {
	switch name {
	case "bild":
		return NewBild(DefaultBildConfig()), nil
	case "luma":
		return Luma{}, nil
	case "cv":
		if d := newCVDetector(); d != nil {
			return d, nil
		}
		return nil, fmt.Errorf("detector 'cv' requires building with the 'with_cv' tag")
	default:
		return nil, fmt.Errorf("unknown detector '%s'", name)
	}
}
