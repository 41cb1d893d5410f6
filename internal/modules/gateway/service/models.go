package service

import (
	"time"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
)

type statusPayload struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	OrderID string `json:"order_id,omitempty"`
}

type equityPayload struct {
	Code     int     `json:"code"`
	Msg      string  `json:"msg"`
	Equity   float64 `json:"equity"`
	Currency string  `json:"currency"`
}

type positionRow struct {
	ID         string  `json:"id"`
	Instrument string  `json:"instrument"`
	Direction  string  `json:"direction"`
	EntryPrice float64 `json:"entry_price"`
	Volume     float64 `json:"volume"`
	OpenTimeMs int64   `json:"open_time"`
}

type positionsPayload struct {
	Code      int           `json:"code"`
	Msg       string        `json:"msg"`
	Positions []positionRow `json:"positions"`
}

type closeRequest struct {
	PositionID string `json:"position_id"`
	Reason     string `json:"reason,omitempty"`
}

func (r positionRow) toPosition() models.Position {
	return models.Position{
		ID:         r.ID,
		Instrument: r.Instrument,
		Direction:  models.Direction(r.Direction),
		EntryPrice: r.EntryPrice,
		Volume:     r.Volume,
		OpenTime:   time.UnixMilli(r.OpenTimeMs),
	}
}
