// Package perm enumerates permutations of small index sets.
//
// graphbash uses it to brute-force goal orderings when verifying the
// best-first ordering search; the count grows as n!, so callers keep n small.
package perm

import "slices"

// Seq returns [0, 1, ..., n-1]. For n <= 0 it returns an empty slice.
func Seq(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n!. For n <= 1 it returns 1.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// Each calls fn with every permutation of [0, n) using Heap's algorithm.
// The slice passed to fn is reused between calls; clone it to keep it.
// Enumeration stops early when fn returns false.
//
// n = 0 yields a single empty permutation.
func Each(n int, fn func(p []int) bool) {
	p := Seq(n)
	if !fn(p) {
		return
	}

	state := make([]int, n)
	for i := 0; i < n; {
		if state[i] < i {
			if i%2 == 0 {
				p[0], p[i] = p[i], p[0]
			} else {
				p[state[i]], p[i] = p[i], p[state[i]]
			}
			if !fn(p) {
				return
			}
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
}

// Generate returns up to limit permutations of [0, n); limit <= 0 means all
// n! of them. Every returned slice is a separate allocation.
func Generate(n, limit int) [][]int {
	capacity := limit
	if capacity <= 0 || n <= 12 {
		capacity = Factorial(min(n, 12))
	}
	result := make([][]int, 0, capacity)
	Each(n, func(p []int) bool {
		result = append(result, slices.Clone(p))
		return limit <= 0 || len(result) < limit
	})
	return result
}
