package models

// RiskParameters are process-wide sizing settings, immutable per run.
type RiskParameters struct {
	RiskFraction float64 // e.g. 0.02 => 2% of equity per trade
	PointValue   float64 // P&L per point per lot
	LotStep      float64 // minimum volume increment, e.g. 0.01
	TakeProfitRR float64 // reward:risk multiple for TP1, e.g. 1.5
	TrailEMA     int     // fast EMA period the TP2 rule trails, e.g. 9
}

// TrailRule is the TP2 reference: trail on the fast EMA, starting from its
// value at the signal index. Re-evaluated every monitoring cycle, not a
// fixed price.
type TrailRule struct {
	EMAPeriod     int
	ValueAtSignal float64
}

// SizedOrder is the engine's final product for one signal. It is a value the
// execution gateway acts on; the engine itself never submits.
type SizedOrder struct {
	Instrument      string
	Direction       Direction
	Volume          float64
	EntryPrice      float64
	StopLoss        float64
	TakeProfit1     float64
	TakeProfit2Rule TrailRule
	RiskAmount      float64
	Label           string
}

// OrderRequest is what crosses the wire to the execution gateway.
type OrderRequest struct {
	Instrument string    `json:"instrument"`
	Direction  Direction `json:"direction"`
	Volume     float64   `json:"volume"`
	StopLoss   float64   `json:"stopLoss"`
	TakeProfit float64   `json:"takeProfit"`
	Label      string    `json:"label"`
}
