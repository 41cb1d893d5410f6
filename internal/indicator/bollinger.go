package indicator

import "math"

// Bands bundles the Bollinger series. Bandwidth is (upper-lower)/sma so
// compression is comparable across instruments regardless of price scale.
type Bands struct {
	SMA       Series
	Upper     Series
	Lower     Series
	Bandwidth Series
}

// Bollinger computes rolling mean and population standard deviation over a
// trailing window of `period` closes.
func Bollinger(closes []float64, period int, mult float64) Bands {
	n := len(closes)
	if period <= 1 {
		period = 2
	}
	b := Bands{
		SMA:       newSeries(n, period-1),
		Upper:     newSeries(n, period-1),
		Lower:     newSeries(n, period-1),
		Bandwidth: newSeries(n, period-1),
	}
	if n < period {
		empty := Series{vals: make([]float64, n), first: n}
		return Bands{SMA: empty, Upper: empty, Lower: empty, Bandwidth: empty}
	}

	for i := period - 1; i < n; i++ {
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += closes[j]
		}
		mean := sum / float64(period)

		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := closes[j] - mean
			variance += d * d
		}
		std := math.Sqrt(variance / float64(period))

		upper := mean + mult*std
		lower := mean - mult*std
		b.SMA.set(i, mean)
		b.Upper.set(i, upper)
		b.Lower.set(i, lower)
		if mean != 0 {
			b.Bandwidth.set(i, (upper-lower)/mean)
		}
	}
	return b
}
