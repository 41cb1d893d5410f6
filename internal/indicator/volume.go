package indicator

import "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"

// VolumeSMA is the rolling mean of candle volumes.
func VolumeSMA(candles []models.Candle, period int) Series {
	vols := make([]float64, len(candles))
	for i, c := range candles {
		vols[i] = c.Volume
	}
	return SMA(vols, period)
}

// Closes extracts the close column, oldest first.
func Closes(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}
