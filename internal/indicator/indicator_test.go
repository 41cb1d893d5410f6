package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
)

func mkCandles(rows [][4]float64) []models.Candle {
	// rows: open, high, low, close; volume fixed
	out := make([]models.Candle, len(rows))
	ts := time.Unix(1700000000, 0)
	for i, r := range rows {
		out[i] = models.Candle{
			Ts: ts.Add(time.Duration(i) * time.Minute),
			Open: r[0], High: r[1], Low: r[2], Close: r[3],
			Volume: 1000,
		}
	}
	return out
}

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEMASeedAndRecurrence(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6}
	s := EMA(closes, 3)

	if s.Len() != len(closes) {
		t.Fatalf("length mismatch: %d vs %d", s.Len(), len(closes))
	}
	for i := 0; i < 2; i++ {
		if _, ok := s.At(i); ok {
			t.Fatalf("index %d should be undefined during warmup", i)
		}
	}
	seed, ok := s.At(2)
	if !ok || !almost(seed, 2) {
		t.Fatalf("seed should be SMA(1,2,3)=2, got %v ok=%v", seed, ok)
	}
	// k = 2/(3+1) = 0.5
	want := 2.0
	for i := 3; i < len(closes); i++ {
		want = closes[i]*0.5 + want*0.5
		got, ok := s.At(i)
		if !ok || !almost(got, want) {
			t.Fatalf("ema[%d]: got %v want %v", i, got, want)
		}
	}
}

func TestEMATooShort(t *testing.T) {
	s := EMA([]float64{1, 2}, 5)
	if s.Len() != 2 {
		t.Fatalf("length must match input even when too short")
	}
	if _, ok := s.Last(); ok {
		t.Fatalf("no value should be defined for input shorter than period")
	}
}

func TestATRWilder(t *testing.T) {
	cs := mkCandles([][4]float64{
		{10, 12, 9, 11},  // no TR (no prev close)
		{11, 13, 10, 12}, // tr = max(3, |13-11|, |10-11|) = 3
		{12, 14, 11, 13}, // tr = max(3, 2, 1) = 3
		{13, 16, 12, 15}, // tr = max(4, 3, 1) = 4
		{15, 17, 14, 16}, // tr = max(3, 2, 1) = 3
	})
	s := ATR(cs, 3)

	if s.Len() != len(cs) {
		t.Fatalf("length mismatch")
	}
	for i := 0; i < 3; i++ {
		if _, ok := s.At(i); ok {
			t.Fatalf("atr[%d] should be undefined", i)
		}
	}
	seed, ok := s.At(3)
	if !ok || !almost(seed, (3+3+4)/3.0) {
		t.Fatalf("atr seed: got %v want %v", seed, (3+3+4)/3.0)
	}
	next, ok := s.At(4)
	want := (seed*2 + 3) / 3
	if !ok || !almost(next, want) {
		t.Fatalf("atr smoothing: got %v want %v", next, want)
	}
}

func TestRSIAllUpIs100(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	s := RSI(closes, 14)
	v, ok := s.Last()
	if !ok || v != 100 {
		t.Fatalf("monotonic up series must give RSI=100, got %v ok=%v", v, ok)
	}
}

func TestRSIWarmupUndefined(t *testing.T) {
	closes := []float64{1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 1, 2}
	s := RSI(closes, 14)
	if s.Len() != len(closes) {
		t.Fatalf("length mismatch")
	}
	for i := 0; i < 14; i++ {
		if _, ok := s.At(i); ok {
			t.Fatalf("rsi[%d] should be undefined before 14 deltas", i)
		}
	}
	if _, ok := s.At(14); !ok {
		t.Fatalf("rsi[14] should be defined")
	}
}

func TestBollingerBandwidth(t *testing.T) {
	closes := []float64{2, 4, 6, 8}
	b := Bollinger(closes, 3, 2)

	if _, ok := b.SMA.At(1); ok {
		t.Fatalf("bollinger defined before window fills")
	}
	mean, _ := b.SMA.At(2) // (2+4+6)/3 = 4
	if !almost(mean, 4) {
		t.Fatalf("sma: got %v want 4", mean)
	}
	// population std of {2,4,6} = sqrt(8/3)
	std := math.Sqrt(8.0 / 3.0)
	up, _ := b.Upper.At(2)
	lo, _ := b.Lower.At(2)
	if !almost(up, 4+2*std) || !almost(lo, 4-2*std) {
		t.Fatalf("bands: got %v/%v", up, lo)
	}
	bw, _ := b.Bandwidth.At(2)
	if !almost(bw, (up-lo)/4) {
		t.Fatalf("bandwidth must be (upper-lower)/sma")
	}
}

func TestVolumeSMA(t *testing.T) {
	cs := mkCandles([][4]float64{{1, 2, 1, 2}, {1, 2, 1, 2}, {1, 2, 1, 2}})
	cs[0].Volume, cs[1].Volume, cs[2].Volume = 100, 200, 300
	s := VolumeSMA(cs, 2)
	if _, ok := s.At(0); ok {
		t.Fatalf("volume sma defined before window fills")
	}
	v, _ := s.At(2)
	if !almost(v, 250) {
		t.Fatalf("volume sma: got %v want 250", v)
	}
}

func TestCandleVelocity(t *testing.T) {
	cs := mkCandles([][4]float64{
		{10, 14, 10, 13}, // body 3 / range 4 = 0.75
		{10, 10, 10, 10}, // degenerate bar: zero, not NaN
	})
	s := CandleVelocity(cs)
	v, ok := s.At(0)
	if !ok || !almost(v, 0.75) {
		t.Fatalf("velocity: got %v want 0.75", v)
	}
	v, ok = s.At(1)
	if !ok || v != 0 {
		t.Fatalf("zero-range bar must yield 0, got %v", v)
	}
}

func TestAlignmentAcrossSeries(t *testing.T) {
	// All series over the same input must report the same length so indices
	// stay comparable, the primary off-by-one trap.
	n := 250
	rows := make([][4]float64, n)
	for i := range rows {
		p := 100 + math.Sin(float64(i)/7)*3
		rows[i] = [4]float64{p, p + 1, p - 1, p + 0.5}
	}
	cs := mkCandles(rows)
	closes := Closes(cs)

	series := []Series{
		EMA(closes, 9), EMA(closes, 20), EMA(closes, 200),
		ATR(cs, 14), RSI(closes, 14),
		VolumeSMA(cs, 20), CandleVelocity(cs),
	}
	b := Bollinger(closes, 20, 2)
	series = append(series, b.SMA, b.Upper, b.Lower, b.Bandwidth)
	vel := CandleVelocity(cs)
	series = append(series, VelocityAverage(vel))

	for i, s := range series {
		if s.Len() != n {
			t.Fatalf("series %d: length %d, want %d", i, s.Len(), n)
		}
		if fd := s.FirstDefined(); fd > 0 {
			if _, ok := s.At(fd - 1); ok {
				t.Fatalf("series %d: warmup index %d unexpectedly defined", i, fd-1)
			}
			if _, ok := s.At(fd); !ok {
				t.Fatalf("series %d: first defined index %d not defined", i, fd)
			}
		}
	}
}
