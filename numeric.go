package slump

import "golang.org/x/exp/constraints"

// signed covers the types that can be negated.
type signed interface {
	constraints.Signed | constraints.Float
}

func abs[T signed](n T) T {
	if n < 0 {
		return -n
	}
	return n
}

func sign[T signed](n T) T {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func clamp[T constraints.Ordered](n, lo, hi T) T {
	return max(lo, min(n, hi))
}

// isqrt returns the integer square root of n rounded to nearest. It stays in
// the integer domain so lengths are identical on every platform.
func isqrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	// Find the highest power of four not above n
	bit := int64(1) << 62
	for bit > n {
		bit >>= 2
	}
	var res int64
	for bit != 0 {
		if n >= res+bit {
			n -= res + bit
			res = (res >> 1) + bit
		} else {
			res >>= 1
		}
		bit >>= 2
	}
	// n now holds the remainder n0 - res*res
	if n > res {
		res++
	}
	return res
}
