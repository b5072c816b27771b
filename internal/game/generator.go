package game

import (
	"math/rand"
	"sync"
	"time"
)

const (
	// OptionCount is the number of options presented for every problem.
	OptionCount = 5
	// SolutionPairs is the number of disjoint pairs that must sum to the target.
	SolutionPairs = 2

	maxTargetDraws     = 10
	maxAssemblies      = 16
	maxDistractorDraws = 64
)

// Generator builds balance problems. It is safe for concurrent use; the
// random source is guarded by a mutex so a seeded generator stays
// reproducible for a given call sequence.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed, or with the current
// time when seed is zero.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewGeneratorWithRand(rand.New(rand.NewSource(seed)))
}

func NewGeneratorWithRand(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate draws a target from r and returns five options holding exactly
// two pairs of positions that sum to it.
//
// When no target in r admits two pairs after the re-draw budget is spent,
// the pairs are built from the target without checking r, so option values
// may fall outside the range. Such problems are flagged with Fallback.
// Ranges beyond MaxValue or MaxSpan are clamped first, see Range.Bounded.
func (g *Generator) Generate(r Range) Problem {
	g.mu.Lock()
	defer g.mu.Unlock()

	r = r.Bounded()

	target := g.between(r.Min, r.Max)
	lo, n := pairSpan(target, r)
	for attempt := 0; n < SolutionPairs && attempt < maxTargetDraws; attempt++ {
		target = g.between(r.Min, r.Max)
		lo, n = pairSpan(target, r)
	}

	fallback := n < SolutionPairs
	var first, second Pair
	if fallback {
		first, second = g.fallbackPairs(target, r)
	}

	var options []int
	for i := 0; i < maxAssemblies; i++ {
		if !fallback {
			a, b := g.choosePairs(n)
			first, second = pairAt(target, lo+a), pairAt(target, lo+b)
		}
		options = g.assemble(target, first, second, r)
		if CountSolutionPairs(options, target) == SolutionPairs {
			break
		}
	}

	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return Problem{Target: target, Options: options, Fallback: fallback}
}

// ValidPairs lists every unordered pair inside r summing to target. A pair
// of equal addends such as (5, 5) is included. r is bounded first.
func ValidPairs(target int, r Range) []Pair {
	r = r.Bounded()
	lo, n := pairSpan(target, r)

	var pairs []Pair
	for k := 0; k < n; k++ {
		pairs = append(pairs, pairAt(target, lo+k))
	}
	return pairs
}

// pairSpan returns the smallest addend of the first in-range pair summing to
// target and the number of such pairs. The smaller addends of all pairs are
// consecutive: a runs from max(Min, target-Max) to min(target/2, target-Min, Max).
// r must be bounded.
func pairSpan(target int, r Range) (lo, n int) {
	if target < 2*r.Min || target > 2*r.Max {
		return 0, 0
	}
	lo = max(r.Min, target-r.Max)
	hi := min(floorHalf(target), target-r.Min, r.Max)
	if hi < lo {
		return lo, 0
	}
	return lo, hi - lo + 1
}

func pairAt(target, a int) Pair {
	return Pair{A: a, B: target - a}
}

func floorHalf(n int) int {
	if n < 0 {
		return -((-n + 1) / 2)
	}
	return n / 2
}

// CountSolutionPairs returns the number of option positions i < j whose
// values sum to target.
func CountSolutionPairs(options []int, target int) int {
	pairs := 0
	for i := range options {
		for j := i + 1; j < len(options); j++ {
			if options[i]+options[j] == target {
				pairs++
			}
		}
	}
	return pairs
}

func (g *Generator) assemble(target int, first, second Pair, r Range) []int {
	options := make([]int, 0, OptionCount)
	options = append(options, first.A, first.B, second.A, second.B)
	for len(options) < OptionCount {
		options = append(options, g.distractor(target, options, r))
	}
	return options
}

// choosePairs picks two distinct indexes in [0, n) uniformly.
func (g *Generator) choosePairs(n int) (int, int) {
	i := g.rng.Intn(n)
	j := g.rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return i, j
}

// distractor returns a value that is not an option yet and whose complement
// is not an option either. Values come from r while r still has one left,
// then from just above r.Max.
func (g *Generator) distractor(target int, options []int, r Range) int {
	for i := 0; i < maxDistractorDraws; i++ {
		n := g.between(r.Min, r.Max)
		if admissible(n, target, options) {
			return n
		}
	}

	var candidates []int
	for n := r.Min; n <= r.Max; n++ {
		if admissible(n, target, options) {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) > 0 {
		return candidates[g.rng.Intn(len(candidates))]
	}

	for n := r.Max + 1; ; n++ {
		if admissible(n, target, options) {
			return n
		}
	}
}

func admissible(n, target int, options []int) bool {
	for _, o := range options {
		if o == n || o == target-n {
			return false
		}
	}
	return true
}

// fallbackPairs builds two distinct pairs summing to target from addends
// drawn between r.Min and target-r.Min. The span is widened to four values
// so two distinct pairs always exist.
func (g *Generator) fallbackPairs(target int, r Range) (Pair, Pair) {
	lo, hi := r.Min, target-r.Min
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi-lo < 3 {
		hi = lo + 3
	}

	first := g.between(lo, hi)
	second := g.between(lo, hi)
	for second == first || second == target-first {
		second = g.between(lo, hi)
	}

	return newPair(first, target-first), newPair(second, target-second)
}

func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func newPair(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}
