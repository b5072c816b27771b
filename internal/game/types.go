package game

import (
	"encoding/json"
	"fmt"
)

// Range is a closed integer interval [Min, Max]. It is encoded as a two
// element JSON array, e.g. [1, 10].
type Range struct {
	Min int
	Max int
}

func NewRange(min, max int) Range {
	return Range{Min: min, Max: max}
}

// Normalize returns the range with Min <= Max.
func (r Range) Normalize() Range {
	if r.Min > r.Max {
		return Range{Min: r.Max, Max: r.Min}
	}
	return r
}

const (
	// MaxValue bounds the magnitude of range ends the generator accepts.
	MaxValue = 1 << 29
	// MaxSpan bounds the number of integers in a range the generator accepts.
	MaxSpan = 1 << 16
)

// Bounded returns the normalized range clamped to [-MaxValue, MaxValue] and
// cut to at most MaxSpan integers, keeping Min.
func (r Range) Bounded() Range {
	r = r.Normalize()
	r.Min = clamp(r.Min, -MaxValue, MaxValue)
	r.Max = clamp(r.Max, -MaxValue, MaxValue)
	if r.Max-r.Min >= MaxSpan {
		r.Max = r.Min + MaxSpan - 1
	}
	return r
}

// Validate reports whether the generator can use r without clamping it.
func (r Range) Validate() error {
	switch {
	case r.Min > r.Max:
		return fmt.Errorf("range %s: min exceeds max", r)
	case r.Min < -MaxValue || r.Max > MaxValue:
		return fmt.Errorf("range %s: bounds must lie within [%d, %d]", r, -MaxValue, MaxValue)
	case r.Max-r.Min >= MaxSpan:
		return fmt.Errorf("range %s: spans more than %d values", r, MaxSpan)
	}
	return nil
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}

func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Min, r.Max})
}

func (r *Range) UnmarshalJSON(data []byte) error {
	var bounds []int
	if err := json.Unmarshal(data, &bounds); err != nil {
		return fmt.Errorf("range must be an array of two integers: %w", err)
	}
	if len(bounds) != 2 {
		return fmt.Errorf("range must have exactly 2 bounds, got %d", len(bounds))
	}
	r.Min, r.Max = bounds[0], bounds[1]
	return nil
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Min, r.Max)
}

// Pair is an unordered pair of addends, stored with A <= B.
type Pair struct {
	A int
	B int
}

// Problem is a single balance puzzle: pick two options that sum to Target.
type Problem struct {
	Target  int
	Options []int

	// Fallback reports that the target range could not supply two in-range
	// pairs and the pairs were built directly from the target.
	Fallback bool
}
