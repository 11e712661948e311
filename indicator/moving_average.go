// Package indicator smooths noisy measurements such as per-frame processing time.
package indicator

import (
	"golang.org/x/exp/constraints"
)

type MovingAverage[T constraints.Integer | constraints.Float] interface {
	Update(v T) T
	Valid() bool
}
