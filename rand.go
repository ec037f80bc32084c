package slump

import "math/rand"

// newStream returns the single pseudo-random stream for one generation. Every
// random decision of a level is drawn from it in a fixed call order, which is
// what makes a seed reproduce the same level.
func newStream(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// roll returns a number in [0,n), or 0 without consuming a draw when n < 1.
func (g *Generator) roll(n int) int {
	if n < 1 {
		return 0
	}
	return g.rng.Intn(n)
}

// rollpercent reports true with probability p percent.
func (g *Generator) rollpercent(p int) bool {
	return g.roll(100) < p
}

// between returns a number in [lo,hi].
func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.roll(hi-lo+1)
}

// pick32 returns a multiple of 32 in [lo,hi]; lo and hi should be multiples of 32.
func (g *Generator) pick32(lo, hi int) int {
	return lo + 32*g.roll((hi-lo)/32+1)
}

// shuffle permutes n elements with swap, drawing in index order.
func (g *Generator) shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := g.roll(i + 1)
		swap(i, j)
	}
}
