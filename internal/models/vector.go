package models

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyVector is returned when an encoder produces no values.
var ErrEmptyVector = errors.New("encoder returned an empty vector")

// Vector is an embedding as a plain ordered sequence of float32 values.
type Vector []float32

// NewVector copies raw encoder output into a Vector. Non-finite values are
// rejected because they cannot be represented in JSON.
func NewVector(raw []float32) (Vector, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyVector
	}
	v := make(Vector, len(raw))
	for i, x := range raw {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("non-finite value %v at index %d", x, i)
		}
		v[i] = x
	}
	return v, nil
}

// Len returns the number of dimensions.
func (v Vector) Len() int {
	return len(v)
}
