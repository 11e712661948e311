//go:build !with_cv
// +build !with_cv

package edge

// CVAvailable reports whether the OpenCV detector is compiled in.
const CVAvailable = false

func newCVDetector() Detector {
	return nil
}
