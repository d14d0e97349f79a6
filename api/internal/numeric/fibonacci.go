// Package numeric holds the pure integer routines behind the bfhl operations.
package numeric

import "math/big"

// Fibonacci returns the first n terms of 0, 1, 1, 2, 3, ...
// The result is never nil; n <= 0 yields an empty slice.
func Fibonacci(n int) []*big.Int {
	if n <= 0 {
		return []*big.Int{}
	}
	series := make([]*big.Int, n)
	series[0] = big.NewInt(0)
	if n == 1 {
		return series
	}
	series[1] = big.NewInt(1)
	for i := 2; i < n; i++ {
		series[i] = new(big.Int).Add(series[i-1], series[i-2])
	}
	return series
}
