package service

import (
	"time"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
)

// Wire shapes of the market-data feed. Prices arrive as numbers, timestamps
// as unix milliseconds.
type candleRow struct {
	Ts     int64   `json:"ts"`
	Open   float64 `json:"o"`
	High   float64 `json:"h"`
	Low    float64 `json:"l"`
	Close  float64 `json:"c"`
	Volume float64 `json:"v"`
}

type candlesPayload struct {
	Code    int         `json:"code"`
	Msg     string      `json:"msg"`
	Candles []candleRow `json:"candles"`
}

type quotePayload struct {
	Code       int     `json:"code"`
	Msg        string  `json:"msg"`
	Instrument string  `json:"instrument"`
	Bid        float64 `json:"bid"`
	Ask        float64 `json:"ask"`
}

func (r candleRow) toCandle() models.Candle {
	return models.Candle{
		Ts:     time.UnixMilli(r.Ts),
		Open:   r.Open,
		High:   r.High,
		Low:    r.Low,
		Close:  r.Close,
		Volume: r.Volume,
	}
}

// wsFrame is one streamed message. Closed candles carry confirm=1; forming
// candles are dropped.
type wsFrame struct {
	Event      string    `json:"event,omitempty"`
	Instrument string    `json:"instrument"`
	Timeframe  string    `json:"timeframe"`
	Confirm    int       `json:"confirm"`
	Candle     candleRow `json:"candle"`
}

// StreamTick is a closed candle delivered over the websocket feed.
type StreamTick struct {
	Instrument string
	Timeframe  string
	Candle     models.Candle
}
