package indicator

// EMA seeds with the simple average of the first period closes at index
// period-1, then applies the standard recurrence with k = 2/(period+1).
func EMA(closes []float64, period int) Series {
	if period <= 1 {
		period = 1
	}
	s := newSeries(len(closes), period-1)
	if len(closes) < period {
		return Series{vals: make([]float64, len(closes)), first: len(closes)}
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += closes[i]
	}
	s.set(period-1, sum/float64(period))

	k := 2.0 / (float64(period) + 1)
	for i := period; i < len(closes); i++ {
		prev, _ := s.At(i - 1)
		s.set(i, closes[i]*k+prev*(1-k))
	}
	return s
}

// SMA is a plain rolling mean, undefined before the window fills.
func SMA(xs []float64, period int) Series {
	if period <= 1 {
		period = 1
	}
	s := newSeries(len(xs), period-1)
	if len(xs) < period {
		return Series{vals: make([]float64, len(xs)), first: len(xs)}
	}
	sum := 0.0
	for i, v := range xs {
		sum += v
		if i >= period {
			sum -= xs[i-period]
		}
		if i >= period-1 {
			s.set(i, sum/float64(period))
		}
	}
	return s
}
