package numeric

// IsPrime tests n by trial division over 6k±1 candidates.
func IsPrime(n int64) bool {
	if n <= 1 {
		return false
	}
	if n <= 3 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	for i := int64(5); i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// FilterPrimes keeps the primes of arr in their original order.
func FilterPrimes(arr []int64) []int64 {
	out := make([]int64, 0, len(arr))
	for _, n := range arr {
		if IsPrime(n) {
			out = append(out, n)
		}
	}
	return out
}
