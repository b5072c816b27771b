package game

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_BasicAddition(t *testing.T) {
	r := NewRange(1, 10)

	for seed := int64(1); seed <= 200; seed++ {
		p := NewGenerator(seed).Generate(r)

		require.Len(t, p.Options, OptionCount, "seed %d", seed)
		assert.Equal(t, SolutionPairs, CountSolutionPairs(p.Options, p.Target), "seed %d: options %v target %d", seed, p.Options, p.Target)
		if p.Fallback {
			continue
		}
		assert.True(t, r.Contains(p.Target), "seed %d: target %d", seed, p.Target)
		for _, o := range p.Options {
			assert.True(t, r.Contains(o), "seed %d: option %d outside %s", seed, o, r)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := NewGenerator(42)
	b := NewGeneratorWithRand(rand.New(rand.NewSource(42)))

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Generate(NewRange(1, 10)), b.Generate(NewRange(1, 10)))
	}
}

func TestGenerate_DegenerateRange(t *testing.T) {
	tests := []struct {
		name string
		r    Range
	}{
		{"single value", NewRange(5, 5)},
		{"zero", NewRange(0, 0)},
		{"single large value", NewRange(100, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Problem
			require.NotPanics(t, func() {
				p = NewGenerator(7).Generate(tt.r)
			})
			assert.True(t, p.Fallback)
			assert.Equal(t, tt.r.Min, p.Target)
			assert.Len(t, p.Options, OptionCount)
			assert.Equal(t, SolutionPairs, CountSolutionPairs(p.Options, p.Target), "options %v", p.Options)
		})
	}
}

func TestGenerate_NarrowRangeCompletesPadding(t *testing.T) {
	// [1, 3] admits two pairs only for target 4 and then holds no free
	// distractor, so padding must leave the range.
	for seed := int64(1); seed <= 50; seed++ {
		p := NewGenerator(seed).Generate(NewRange(1, 3))

		require.Len(t, p.Options, OptionCount, "seed %d", seed)
		assert.Equal(t, SolutionPairs, CountSolutionPairs(p.Options, p.Target), "seed %d: options %v target %d", seed, p.Options, p.Target)
	}
}

func TestGenerate_NoThirdPair(t *testing.T) {
	ranges := []Range{
		NewRange(1, 10),
		NewRange(5, 20),
		NewRange(10, 30),
		NewRange(2, 6),
	}

	for _, r := range ranges {
		g := NewGenerator(1234)
		for i := 0; i < 300; i++ {
			p := g.Generate(r)
			if got := CountSolutionPairs(p.Options, p.Target); got != SolutionPairs {
				t.Fatalf("range %s: %d solution pairs in %v for target %d", r, got, p.Options, p.Target)
			}
		}
	}
}

func TestGenerate_WideRange(t *testing.T) {
	tests := []struct {
		name string
		r    Range
	}{
		{"two billion wide", NewRange(0, 2_000_000_000)},
		{"whole int domain", NewRange(math.MinInt, math.MaxInt)},
		{"max int edge", NewRange(math.MaxInt-10, math.MaxInt)},
		{"min int edge", NewRange(math.MinInt, math.MinInt+10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bounded := tt.r.Bounded()
			assert.LessOrEqual(t, bounded.Max-bounded.Min, MaxSpan-1)

			var p Problem
			require.NotPanics(t, func() {
				p = NewGenerator(11).Generate(tt.r)
			})
			require.Len(t, p.Options, OptionCount)
			assert.Equal(t, SolutionPairs, CountSolutionPairs(p.Options, p.Target), "options %v target %d", p.Options, p.Target)
			if !p.Fallback {
				assert.True(t, bounded.Contains(p.Target))
			}
		})
	}
}

func TestRange_Validate(t *testing.T) {
	assert.NoError(t, NewRange(1, 10).Validate())
	assert.NoError(t, NewRange(-MaxValue, -MaxValue+MaxSpan-1).Validate())
	assert.Error(t, NewRange(10, 1).Validate())
	assert.Error(t, NewRange(0, MaxSpan).Validate())
	assert.Error(t, NewRange(0, 2_000_000_000).Validate())
	assert.Error(t, NewRange(MaxValue, MaxValue+1).Validate())
}

func TestGenerate_ReversedRange(t *testing.T) {
	p := NewGenerator(3).Generate(NewRange(10, 1))

	assert.Len(t, p.Options, OptionCount)
	assert.Equal(t, SolutionPairs, CountSolutionPairs(p.Options, p.Target))
}

func TestGenerate_Concurrent(t *testing.T) {
	g := NewGenerator(99)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				p := g.Generate(NewRange(1, 10))
				assert.Len(t, p.Options, OptionCount)
			}
		}()
	}
	wg.Wait()
}

func TestValidPairs(t *testing.T) {
	tests := []struct {
		name   string
		target int
		r      Range
		want   []Pair
	}{
		{"equal addends included", 10, NewRange(1, 10), []Pair{{1, 9}, {2, 8}, {3, 7}, {4, 6}, {5, 5}}},
		{"one pair", 3, NewRange(1, 10), []Pair{{1, 2}}},
		{"none", 1, NewRange(1, 10), nil},
		{"upper edge", 20, NewRange(1, 10), []Pair{{10, 10}}},
		{"shifted range", 12, NewRange(5, 20), []Pair{{5, 7}, {6, 6}}},
		{"negative target", -3, NewRange(-5, 5), []Pair{{-5, 2}, {-4, 1}, {-3, 0}, {-2, -1}}},
		{"target beyond range", math.MaxInt, NewRange(1, 10), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPairs(tt.target, tt.r))
		})
	}
}

func TestCountSolutionPairs(t *testing.T) {
	tests := []struct {
		name    string
		options []int
		target  int
		want    int
	}{
		{"two pairs and distractor", []int{1, 9, 3, 7, 4}, 10, 2},
		{"double addend pair", []int{5, 5, 2, 8, 1}, 10, 2},
		{"single half is no pair", []int{5, 2, 8, 1, 3}, 10, 1},
		{"unpaired distractor", []int{1, 9, 3, 7, 6}, 10, 2},
		{"three pairs", []int{1, 9, 3, 7, 4, 6}, 10, 3},
		{"shared addend counts per position", []int{2, 8, 8, 3, 4}, 10, 2},
		{"repeated complement forms third pair", []int{1, 9, 3, 7, 9}, 10, 3},
		{"three equal halves", []int{5, 5, 5, 1, 2}, 10, 3},
		{"empty", nil, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountSolutionPairs(tt.options, tt.target))
		})
	}
}

func TestRange_JSON(t *testing.T) {
	var r Range
	require.NoError(t, r.UnmarshalJSON([]byte("[5, 20]")))
	assert.Equal(t, NewRange(5, 20), r)

	data, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, "[5,20]", string(data))

	assert.Error(t, r.UnmarshalJSON([]byte("[1]")))
	assert.Error(t, r.UnmarshalJSON([]byte(`{"min":1}`)))
}
