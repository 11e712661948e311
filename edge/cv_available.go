//go:build with_cv
// +build with_cv

package edge

// CVAvailable reports whether the OpenCV detector is compiled in.
const CVAvailable = true

func newCVDetector() Detector {
	return NewCV(DefaultCVConfig())
}
