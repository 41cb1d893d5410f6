package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
	detsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/detector/service"
	risksvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/risk/service"
	structsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/structure/service"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/notify"
)

// fixture is a recorded market scenario: both candle series plus the account
// state at the moment of the decision.
type fixture struct {
	Instrument string       `yaml:"instrument"`
	Equity     float64      `yaml:"equity"`
	Quote      quoteFixture `yaml:"quote"`

	EntryCandles   []candleFixture `yaml:"entry_candles"`
	ContextCandles []candleFixture `yaml:"context_candles"`
}

type quoteFixture struct {
	Bid float64 `yaml:"bid"`
	Ask float64 `yaml:"ask"`
}

type candleFixture struct {
	Ts     int64   `yaml:"ts"` // unix milliseconds
	Open   float64 `yaml:"o"`
	High   float64 `yaml:"h"`
	Low    float64 `yaml:"l"`
	Close  float64 `yaml:"c"`
	Volume float64 `yaml:"v"`
}

func loadFixture(path string) (*fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read fixture")
	}
	var f fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrap(err, "parse fixture")
	}
	if f.Instrument == "" {
		return nil, errors.New("fixture has no instrument")
	}
	return &f, nil
}

func toCandles(rows []candleFixture) []models.Candle {
	out := make([]models.Candle, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Candle{
			Ts:     time.UnixMilli(r.Ts),
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		})
	}
	return out
}

// replay runs one full decision pass over a recorded scenario and prints what
// the live engine would have done.
func replay(f *fixture) error {
	snap, err := structsvc.NewAnalyzer().Build(toCandles(f.EntryCandles), toCandles(f.ContextCandles))
	if err != nil {
		return errors.Wrap(err, "build structure")
	}

	detector := detsvc.NewDetector(detsvc.DefaultParams())
	out, err := detector.Detect(f.Instrument, snap)
	if err != nil {
		return errors.Wrap(err, "detect")
	}

	fmt.Printf("entry bias %s, context bias %s\n", snap.EntryBias, snap.ContextBias)
	fmt.Println(notify.RationaleMessage(f.Instrument, out.Rationale))

	if out.Signal == nil {
		fmt.Println("no signal")
		return nil
	}

	trailEMA, ok := snap.EMA9.At(out.Signal.SnapshotIndex)
	if !ok {
		return errors.New("EMA9 undefined at signal index")
	}

	sizer := risksvc.NewSizer(models.RiskParameters{
		RiskFraction: 0.02,
		PointValue:   1,
		LotStep:      0.01,
		TakeProfitRR: 1.5,
		TrailEMA:     9,
	})
	order, err := sizer.Size(*out.Signal, f.Equity, models.Quote{
		Instrument: f.Instrument,
		Bid:        f.Quote.Bid,
		Ask:        f.Quote.Ask,
	}, trailEMA)
	if err != nil {
		return errors.Wrap(err, "size")
	}

	fmt.Println(notify.OrderMessage(order))
	return nil
}

func main() {
	path := flag.String("fixture", "", "path to a yaml scenario fixture")
	flag.Parse()

	if *path == "" {
		log.Fatal("usage: replay -fixture scenario.yaml")
	}
	f, err := loadFixture(*path)
	if err != nil {
		log.Fatal(err)
	}
	if err := replay(f); err != nil {
		log.Fatal(err)
	}
}
