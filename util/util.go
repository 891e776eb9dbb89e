package util

import (
	"errors"
	"os"

	"golang.org/x/exp/constraints"
)

var ErrDegenerateRange = errors.New("input range has zero width")

// MapRange linearly maps value from [inMin, inMax] onto [outMin, outMax].
// The result is not clamped, values outside the input range extrapolate.
func MapRange[A constraints.Float](value, inMin, inMax, outMin, outMax A) (A, error) {
	if inMax == inMin {
		return 0, ErrDegenerateRange
	}
	return (value-inMin)*(outMax-outMin)/(inMax-inMin) + outMin, nil
}

func Clamp[A constraints.Ordered](v, lo, hi A) A {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// EnsureDir creates dir if it is missing. An empty dir means the
// current working directory and is left alone.
func EnsureDir(dir string) error {
	if dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0777)
}
