// Package indicator holds the pure numeric transforms of the engine.
// Every function returns a Series aligned index-for-index with its input, so
// values at the same index across series always describe the same candle.
package indicator

// Series is an indicator output with an explicit warmup region. Indices
// before the first defined one are "not yet computable", never zero, never
// a defaulted number. Consumers must go through At/Last and check ok.
type Series struct {
	vals  []float64
	first int // first defined index; len(vals) means fully undefined
}

func newSeries(n, first int) Series {
	if first > n {
		first = n
	}
	return Series{vals: make([]float64, n), first: first}
}

func (s Series) Len() int { return len(s.vals) }

// FirstDefined returns the first index holding a computed value.
func (s Series) FirstDefined() int { return s.first }

// At returns the value at i, ok=false inside the warmup region or out of
// bounds.
func (s Series) At(i int) (float64, bool) {
	if i < s.first || i >= len(s.vals) {
		return 0, false
	}
	return s.vals[i], true
}

// Last returns the value at the final index.
func (s Series) Last() (float64, bool) {
	return s.At(len(s.vals) - 1)
}

func (s Series) set(i int, v float64) { s.vals[i] = v }
