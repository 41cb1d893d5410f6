package models

// Direction of a detected breakout / held position.
type Direction string

const (
	DirectionNone  Direction = ""
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// Reason is a machine-readable code for a detector/sizing/monitor outcome.
// Rendering to text happens only at the notifier / HTTP boundary; tests and
// the journal assert on codes and parameters, not on strings.
type Reason string

const (
	ReasonCompressionFound     Reason = "COMPRESSION_FOUND"
	ReasonCompressionAbsent    Reason = "COMPRESSION_ABSENT"
	ReasonVelocitySpike        Reason = "VELOCITY_SPIKE"
	ReasonVelocityNoSpike      Reason = "VELOCITY_NO_SPIKE"
	ReasonVolumeNotConfirmed   Reason = "VOLUME_NOT_CONFIRMED"
	ReasonBreakoutLong         Reason = "BREAKOUT_LONG"
	ReasonBreakoutShort        Reason = "BREAKOUT_SHORT"
	ReasonInsideRange          Reason = "INSIDE_RANGE"
	ReasonMomentumNotConfirmed Reason = "MOMENTUM_NOT_CONFIRMED"
	ReasonAmbiguousBreakout    Reason = "AMBIGUOUS_BREAKOUT"
	ReasonNotEvaluated         Reason = "NOT_EVALUATED"

	ReasonDivergenceBullish Reason = "DIVERGENCE_BULLISH"
	ReasonDivergenceBearish Reason = "DIVERGENCE_BEARISH"
	ReasonDivergenceNone    Reason = "DIVERGENCE_NONE"

	ReasonSoftStopHit Reason = "SOFT_STOP_HIT"
	ReasonPnlOK       Reason = "PNL_OK"

	ReasonOrderSubmitted Reason = "ORDER_SUBMITTED"
)

// RationaleEvent is one replayable step of a decision trail.
type RationaleEvent struct {
	Stage  string             `json:"stage"`
	Code   Reason             `json:"code"`
	Params map[string]float64 `json:"params,omitempty"`
}

// Signal fires only when compression, velocity spike and breakout all agree.
// Hints are taken from the breakout candle; sizing resolves the final entry
// from a live quote.
type Signal struct {
	Instrument     string
	Direction      Direction
	EntryPriceHint float64
	StopLossHint   float64
	SnapshotIndex  int // current entry-timeframe index the signal was built at
}
