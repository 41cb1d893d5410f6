package indicator

// RSI uses Wilder's method: the seed averages gains/losses over the first
// `period` deltas (so the first defined index is `period`), then smooths with
// alpha = 1/period. When the average loss is exactly zero the value is 100,
// the degenerate all-up case, not a division fallback.
func RSI(closes []float64, period int) Series {
	if period <= 0 {
		period = 14
	}
	n := len(closes)
	s := newSeries(n, period)
	if n < period+1 {
		return Series{vals: make([]float64, n), first: n}
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			avgGain += d
		} else {
			avgLoss += -d
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	s.set(period, rsiValue(avgGain, avgLoss))

	for i := period + 1; i < n; i++ {
		d := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if d > 0 {
			gain = d
		} else {
			loss = -d
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		s.set(i, rsiValue(avgGain, avgLoss))
	}
	return s
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}
