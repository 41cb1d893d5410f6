package service

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
	enginesvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/engine/service"
	journalsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/journal/service"
)

type PositionSource interface {
	Positions(ctx context.Context) ([]models.Position, error)
}

type Runners interface {
	Running() []string
}

// Server is the read-only HTTP facade. Every endpoint recomputes from live
// data; nothing here mutates broker state.
type Server struct {
	analyzer  enginesvc.Analyzer
	monitor   enginesvc.Monitor
	positions PositionSource
	journal   journalsvc.Store
	runners   Runners
	state     *State

	engine *gin.Engine
}

func NewServer(
	analyzer enginesvc.Analyzer,
	monitor enginesvc.Monitor,
	positions PositionSource,
	journal journalsvc.Store,
	runners Runners,
	state *State,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		analyzer:  analyzer,
		monitor:   monitor,
		positions: positions,
		journal:   journal,
		runners:   runners,
		state:     state,
		engine:    gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.handleHealth)

	v1 := s.engine.Group("/api/v1")
	v1.GET("/status", s.handleStatus)
	v1.GET("/analyze/:instrument", s.handleAnalyze)
	v1.GET("/monitor/:instrument", s.handleMonitor)
	v1.GET("/journal/:instrument", s.handleJournal)
}

func (s *Server) handleHealth(c *gin.Context) {
	status := http.StatusOK
	if !s.state.Ready() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"ready":     s.state.Ready(),
		"uptimeSec": int64(s.state.Uptime().Seconds()),
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	resp := gin.H{
		"running": s.runners.Running(),
	}
	if t := s.state.LastCycle(); !t.IsZero() {
		resp["lastCycleUnix"] = t.Unix()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleAnalyze(c *gin.Context) {
	instrument := c.Param("instrument")

	analysis, err := s.analyzer.Analyze(c.Request.Context(), instrument)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"instrument":  analysis.Instrument,
		"entryBias":   analysis.Snapshot.EntryBias,
		"contextBias": analysis.Snapshot.ContextBias,
		"compression": analysis.Compression,
		"velocity":    analysis.Velocity,
		"breakout":    analysis.Breakout,
		"divergence":  analysis.Divergence,
		"rationale":   analysis.Rationale,
	}
	if analysis.Signal != nil {
		resp["signal"] = analysis.Signal
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleMonitor(c *gin.Context) {
	instrument := c.Param("instrument")

	positions, err := s.positions.Positions(c.Request.Context())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	decisions, err := s.monitor.Monitor(c.Request.Context(), instrument, positions)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"instrument": instrument,
		"decisions":  decisions,
	})
}

func (s *Server) handleJournal(c *gin.Context) {
	instrument := c.Param("instrument")

	entries, err := s.journal.Recent(c.Request.Context(), instrument, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"instrument": instrument,
		"entries":    entries,
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInsufficientHistory):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrMalformedCandle):
		return http.StatusBadGateway
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
