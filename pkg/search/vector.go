package search

import (
	"github.com/viterin/vek/vek32"
)

// Normalize scales v to unit Euclidean length in place. A zero vector is
// left untouched rather than divided by zero.
func Normalize(v []float32) {
	norm := vek32.Norm(v)
	if norm == 0 {
		return
	}
	vek32.DivNumber_Inplace(v, norm)
}

// IsNormalized reports whether v has unit norm within tol.
func IsNormalized(v []float32, tol float32) bool {
	norm := vek32.Norm(v)
	return norm > 1-tol && norm < 1+tol
}
