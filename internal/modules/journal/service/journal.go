package service

import (
	"context"
	"time"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
)

// Entry is one persisted step of a decision trail. Entries are append-only;
// nothing in the engine ever reads them back to decide.
type Entry struct {
	Ts         time.Time
	Instrument string
	Stage      string
	Code       models.Reason
	Params     map[string]float64
}

// Store persists rationale entries. A store failure must never block a
// trading cycle; callers log and move on.
type Store interface {
	Record(ctx context.Context, entries []Entry) error
	Recent(ctx context.Context, instrument string, limit int) ([]Entry, error)
}

// FromRationale stamps a detector trail into journal entries.
func FromRationale(instrument string, ts time.Time, events []models.RationaleEvent) []Entry {
	out := make([]Entry, 0, len(events))
	for _, ev := range events {
		out = append(out, Entry{
			Ts:         ts,
			Instrument: instrument,
			Stage:      ev.Stage,
			Code:       ev.Code,
			Params:     ev.Params,
		})
	}
	return out
}
