package common

// CyclicIncrement returns the index after v in a ring of length n.
// n must be positive and v must be in [0, n).
func CyclicIncrement(v, n int) int {
	if v+1 < n {
		return v + 1
	}
	return 0
}

// CyclicDecrement returns the index before v in a ring of length n.
// n must be positive and v must be in [0, n).
func CyclicDecrement(v, n int) int {
	if v == 0 {
		return n - 1
	}
	return v - 1
}
