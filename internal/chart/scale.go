package chart

import (
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// Linear maps a continuous domain onto [lo, lo+extent] pixels.
type Linear struct {
	rng gochart.ContinuousRange
	lo  float64
}

// NewLinear builds a linear scale from [min, max] onto [lo, hi].
func NewLinear(min, max float64, lo, hi int) Linear {
	return Linear{
		rng: gochart.ContinuousRange{Min: min, Max: max, Domain: hi - lo},
		lo:  float64(lo),
	}
}

// Map translates v into pixel space. A degenerate domain (min == max) maps
// every value to the middle of the range.
func (l Linear) Map(v float64) float64 {
	if l.rng.Max == l.rng.Min {
		return l.lo + float64(l.rng.Domain)/2
	}
	return l.lo + float64(l.rng.Translate(v))
}

// Domain returns the scale's input bounds.
func (l Linear) Domain() (float64, float64) {
	return l.rng.Min, l.rng.Max
}

// Band splits a pixel range into equal bands, one per category, with inner
// and outer padding expressed as a fraction of the step.
type Band struct {
	keys      []string
	index     map[string]int
	start     float64
	step      float64
	bandwidth float64
}

// NewBand builds a centered band scale over [lo, hi].
func NewBand(keys []string, lo, hi, padding float64) Band {
	b := Band{
		keys:  append([]string(nil), keys...),
		index: make(map[string]int, len(keys)),
	}
	for i, k := range keys {
		b.index[k] = i
	}

	n := float64(len(keys))
	b.step = (hi - lo) / math.Max(1, n-padding+2*padding)
	b.start = lo + (hi-lo-b.step*(n-padding))/2
	b.bandwidth = b.step * (1 - padding)
	return b
}

// Pos returns the left edge of key's band and false for an unknown key.
func (b Band) Pos(key string) (float64, bool) {
	i, ok := b.index[key]
	if !ok {
		return 0, false
	}
	return b.start + b.step*float64(i), true
}

// Bandwidth is the width of a single band.
func (b Band) Bandwidth() float64 {
	return b.bandwidth
}

// Keys returns the band categories in order.
func (b Band) Keys() []string {
	return append([]string(nil), b.keys...)
}

// niceTicks returns n+1 evenly spaced integer tick values over [0, max].
func niceTicks(max, n int) []int {
	if max <= 0 {
		return []int{0}
	}
	if max < n {
		n = max
	}
	out := make([]int, 0, n+1)
	seen := make(map[int]bool, n+1)
	for i := 0; i <= n; i++ {
		v := int(math.Round(float64(max) * float64(i) / float64(n)))
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
