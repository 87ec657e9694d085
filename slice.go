// SPDX-License-Identifier: Apache-2.0

package region

import "fmt"

const growThreshold = 256

// AllocateSlice creates a slice of type T with a given length and capacity,
// using the provided Arena for memory allocation.
// If the arena is nil, it returns a slice using Go's built-in make function.
func AllocateSlice[T any](a Arena, len, cap int) ([]T, error) {
	if len < 0 || len > cap {
		return nil, fmt.Errorf("%w: length %d with capacity %d", ErrInvalidSize, len, cap)
	}
	if a == nil {
		return make([]T, len, cap), nil
	}
	s, err := AllocateArray[T](a, cap)
	if err != nil {
		return nil, err
	}
	return s[:len], nil
}

// SliceAppend appends elements to a slice of type T using a provided Arena
// for memory allocation if needed. The previous backing array is abandoned in the
// arena when the slice has to grow.
func SliceAppend[T any](a Arena, s []T, data ...T) ([]T, error) {
	if a == nil {
		return append(s, data...), nil
	}
	s, err := growSlice(a, s, len(data))
	if err != nil {
		return nil, err
	}
	return append(s, data...), nil
}

// GrowCapacity returns the capacity a slice of capacity current grows to in order to
// hold needed elements: doubling while small, then 25% steps.
func GrowCapacity(current, needed int) int {
	if current <= 0 {
		return needed
	}
	for needed > current {
		if current < growThreshold {
			current *= 2
		} else {
			current += current / 4
		}
	}
	return current
}

func growSlice[T any](a Arena, s []T, dataLen int) ([]T, error) {
	newCap := GrowCapacity(cap(s), len(s)+dataLen)
	if newCap == cap(s) {
		return s, nil
	}
	s2, err := AllocateSlice[T](a, len(s), newCap)
	if err != nil {
		return nil, err
	}
	copy(s2, s)
	return s2, nil
}
