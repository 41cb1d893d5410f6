package service

import (
	"context"
	"testing"
	"time"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
)

func TestFromRationale(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	events := []models.RationaleEvent{
		{Stage: "compression", Code: models.ReasonCompressionFound, Params: map[string]float64{"count": 3}},
		{Stage: "velocity", Code: models.ReasonVolumeNotConfirmed},
	}

	entries := FromRationale("US30", ts, events)
	if len(entries) != 2 {
		t.Fatalf("len: %d", len(entries))
	}
	if entries[0].Instrument != "US30" || !entries[0].Ts.Equal(ts) {
		t.Fatalf("entry 0: %+v", entries[0])
	}
	if entries[1].Code != models.ReasonVolumeNotConfirmed {
		t.Fatalf("entry 1: %+v", entries[1])
	}
}

func TestMemStoreRecentNewestFirst(t *testing.T) {
	s := NewMemStore(10)
	ctx := context.Background()
	base := time.Unix(1700000000, 0)

	for i := 0; i < 5; i++ {
		err := s.Record(ctx, []Entry{{
			Ts:         base.Add(time.Duration(i) * time.Minute),
			Instrument: "US30",
			Stage:      "compression",
			Code:       models.ReasonCompressionFound,
		}})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	_ = s.Record(ctx, []Entry{{Ts: base, Instrument: "EURUSD", Stage: "compression", Code: models.ReasonCompressionAbsent}})

	got, err := s.Recent(ctx, "US30", 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len: %d", len(got))
	}
	if !got[0].Ts.After(got[1].Ts) || !got[1].Ts.After(got[2].Ts) {
		t.Fatalf("want newest first, got %v %v %v", got[0].Ts, got[1].Ts, got[2].Ts)
	}
}

func TestMemStoreBounded(t *testing.T) {
	s := NewMemStore(3)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_ = s.Record(ctx, []Entry{{Instrument: "US30", Stage: "s", Code: models.ReasonPnlOK}})
	}
	got, err := s.Recent(ctx, "US30", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ring must cap entries, got %d", len(got))
	}
}
