package utils

import (
	"golang.org/x/exp/constraints"
)

// Generates a sequence of n elements given a generation function
func Iota[T any](n int, gen func(int) T) []T {
	values := make([]T, n)

	for i := range values {
		values[i] = gen(i)
	}

	return values
}

// Returns the smallest value of a non empty sequence
func Min[T constraints.Ordered](input []T) T {
	result := input[0]

	for _, value := range input[1:] {
		if value < result {
			result = value
		}
	}

	return result
}

// Returns the biggest value of a non empty sequence
func Max[T constraints.Ordered](input []T) T {
	result := input[0]

	for _, value := range input[1:] {
		if value > result {
			result = value
		}
	}

	return result
}
