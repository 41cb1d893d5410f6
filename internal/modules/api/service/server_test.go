package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
	enginesvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/engine/service"
	journalsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/journal/service"
	structsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/structure/service"
)

type fakeAnalyzer struct {
	analysis *enginesvc.Analysis
	err      error
}

func (f *fakeAnalyzer) Analyze(context.Context, string) (*enginesvc.Analysis, error) {
	return f.analysis, f.err
}

type fakeMonitor struct {
	decisions []models.MonitorDecision
}

func (f *fakeMonitor) Monitor(context.Context, string, []models.Position) ([]models.MonitorDecision, error) {
	return f.decisions, nil
}

type fakePositions struct{ positions []models.Position }

func (f *fakePositions) Positions(context.Context) ([]models.Position, error) {
	return f.positions, nil
}

type fakeRunners struct{}

func (fakeRunners) Running() []string { return []string{"US30"} }

func newTestServer(analyzer enginesvc.Analyzer) *Server {
	state := NewState()
	state.SetReady(true)
	return NewServer(
		analyzer,
		&fakeMonitor{decisions: []models.MonitorDecision{
			{PositionID: "p1", Action: models.ActionHold, Reason: models.ReasonPnlOK},
		}},
		&fakePositions{},
		journalsvc.NewMemStore(10),
		fakeRunners{},
		state,
	)
}

func doGet(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(&fakeAnalyzer{})
	w := doGet(t, s, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ready":true`) {
		t.Fatalf("body: %s", w.Body.String())
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	s := newTestServer(&fakeAnalyzer{analysis: &enginesvc.Analysis{
		Instrument: "US30",
		Snapshot:   &structsvc.Snapshot{EntryBias: models.BiasBullish, ContextBias: models.BiasBullish},
		Signal:     &models.Signal{Instrument: "US30", Direction: models.DirectionLong},
		Rationale: []models.RationaleEvent{
			{Stage: "breakout", Code: models.ReasonBreakoutLong},
		},
	}})

	w := doGet(t, s, "/api/v1/analyze/US30")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d, body %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "BREAKOUT_LONG") || !strings.Contains(body, `"signal"`) {
		t.Fatalf("body: %s", body)
	}
}

func TestAnalyzeErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errors.Wrap(models.ErrInsufficientHistory, "entry"), http.StatusUnprocessableEntity},
		{errors.Wrap(models.ErrUpstreamUnavailable, "feed"), http.StatusServiceUnavailable},
		{errors.Wrap(models.ErrMalformedCandle, "bad bar"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		s := newTestServer(&fakeAnalyzer{err: tc.err})
		w := doGet(t, s, "/api/v1/analyze/US30")
		if w.Code != tc.want {
			t.Fatalf("%v: status %d, want %d", tc.err, w.Code, tc.want)
		}
	}
}

func TestMonitorEndpoint(t *testing.T) {
	s := newTestServer(&fakeAnalyzer{})
	w := doGet(t, s, "/api/v1/monitor/US30")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "PNL_OK") {
		t.Fatalf("body: %s", w.Body.String())
	}
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(&fakeAnalyzer{})
	w := doGet(t, s, "/api/v1/status")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "US30") {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
}
