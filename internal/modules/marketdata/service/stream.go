package service

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/helper"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/pkg/logger"
)

// Stream delivers closed candles over a websocket. The read loop reconnects
// forever with a flat one second backoff; the channel closes only when the
// context is cancelled.
type Stream struct {
	cfg    Config
	dialer *websocket.Dialer
}

func NewStream(cfg Config) *Stream {
	return &Stream{
		cfg:    cfg,
		dialer: &websocket.Dialer{},
	}
}

// Subscribe streams closed candles for a set of instruments on one timeframe.
func (s *Stream) Subscribe(ctx context.Context, instruments []string, timeframe string) <-chan StreamTick {
	timeframe = helper.NormTimeframe(timeframe)
	ch := make(chan StreamTick)

	go func() {
		defer close(ch)
		if len(instruments) == 0 || s.cfg.WSURL == "" {
			return
		}

		for {
			if err := s.runOnce(ctx, instruments, timeframe, ch); err != nil {
				logger.Error("candle stream %s: %v", timeframe, err)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
		}
	}()

	return ch
}

func (s *Stream) runOnce(ctx context.Context, instruments []string, timeframe string, out chan<- StreamTick) error {
	conn, _, err := s.dialer.DialContext(ctx, s.cfg.WSURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	sub := map[string]interface{}{
		"op":          "subscribe",
		"channel":     "candles",
		"timeframe":   timeframe,
		"instruments": instruments,
	}
	if err := conn.WriteJSON(sub); err != nil {
		return err
	}

	// Keepalive ping, the feed drops idle connections.
	stopPing := make(chan struct{})
	defer close(stopPing)
	go func() {
		t := time.NewTicker(20 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stopPing:
				return
			case <-t.C:
				_ = conn.WriteJSON(map[string]string{"op": "ping"})
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var frame wsFrame
		if err := sonic.Unmarshal(msg, &frame); err != nil {
			continue
		}
		if frame.Event != "" || frame.Timeframe != timeframe {
			continue
		}
		if frame.Confirm != 1 {
			continue // forming candle, wait for the close
		}

		tick := StreamTick{
			Instrument: frame.Instrument,
			Timeframe:  frame.Timeframe,
			Candle:     frame.Candle.toCandle(),
		}
		select {
		case out <- tick:
		case <-ctx.Done():
			return nil
		}
	}
}
