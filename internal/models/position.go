package models

import "time"

// Position is a read-only view of a broker-owned position. The broker is the
// source of truth; the engine only reads and recommends.
type Position struct {
	ID         string
	Instrument string
	Direction  Direction
	EntryPrice float64
	Volume     float64
	OpenTime   time.Time
}

// MonitorAction is the per-cycle recommendation for one open position.
type MonitorAction string

const (
	ActionHold  MonitorAction = "HOLD"
	ActionWarn  MonitorAction = "WARN"
	ActionClose MonitorAction = "CLOSE"
)

type MonitorDecision struct {
	PositionID string
	Action     MonitorAction
	Pnl        float64
	PnlPercent float64
	Reason     Reason
}
