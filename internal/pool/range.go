package pool

import (
	"fmt"
	"math"

	"github.com/petuhovskiy/soundpool/internal/wrand"
)

// Range is a closed interval [Min, Max] of non-negative values.
type Range struct {
	Min float64
	Max float64
}

// Unit is the neutral volume and pitch range.
var Unit = Range{Min: 1, Max: 1}

// NewRange clamps both bounds to zero and orders them.
func NewRange(lo, hi float64) Range {
	r := Range{Min: clampLow(lo), Max: clampLow(hi)}
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	return r
}

// SetMin moves the lower bound. Max is raised if it would end up below Min.
func (r *Range) SetMin(v float64) {
	r.Min = clampLow(v)
	if r.Max < r.Min {
		r.Max = r.Min
	}
}

// SetMax moves the upper bound. Min is lowered if it would end up above Max.
func (r *Range) SetMax(v float64) {
	r.Max = clampLow(v)
	if r.Min > r.Max {
		r.Min = r.Max
	}
}

func (r Range) Contains(v float64) bool {
	return r.Min <= v && v <= r.Max
}

// Random returns a uniform value in [Min, Max].
func (r Range) Random(rnd wrand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	v := r.Min + rnd.Float64()*(r.Max-r.Min)
	return math.Min(v, r.Max)
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

func clampLow(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
