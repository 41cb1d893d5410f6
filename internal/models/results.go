package models

// Bias is the per-timeframe trend direction, EMA20 vs EMA200.
type Bias string

const (
	BiasBullish Bias = "bullish"
	BiasBearish Bias = "bearish"
)

type CompressionResult struct {
	Compressed       bool
	CompressionCount int
	Lookback         int
	ATRAtEvaluation  float64
	Reason           Reason
}

type VelocityResult struct {
	Spike           bool
	VelocityRatio   float64
	VolumeRatio     float64
	CurrentVelocity float64
	AvgVelocity     float64
	Reason          Reason
}

type BreakoutResult struct {
	Signal     Direction
	RangeHigh  float64
	RangeLow   float64
	ClosePrice float64
	RSI        float64
	Reason     Reason
}

type DivergenceResult struct {
	Detected bool
	Type     Reason // ReasonDivergenceBullish / ReasonDivergenceBearish / ReasonDivergenceNone
	Lookback int
}
