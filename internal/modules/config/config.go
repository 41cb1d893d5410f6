package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
	detsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/detector/service"
)

const configFilePathENV = "CONFIG_FILE"

type Config struct {
	Service struct {
		Name string `mapstructure:"name"`
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"service"`

	Account     string   `mapstructure:"account"`
	Instruments []string `mapstructure:"instruments"`

	Timeframes struct {
		Entry   string `mapstructure:"entry"`
		Context string `mapstructure:"context"`
	} `mapstructure:"timeframes"`

	History struct {
		EntryBars   int `mapstructure:"entry_bars"`
		ContextBars int `mapstructure:"context_bars"`
	} `mapstructure:"history"`

	Detector struct {
		CompressionLookback int     `mapstructure:"compression_lookback"`
		CompressionMinCount int     `mapstructure:"compression_min_count"`
		CompressionATRFrac  float64 `mapstructure:"compression_atr_frac"`
		VelocityRatioMin    float64 `mapstructure:"velocity_ratio_min"`
		VolumeRatioMin      float64 `mapstructure:"volume_ratio_min"`
		RSILongMin          float64 `mapstructure:"rsi_long_min"`
		RSIShortMax         float64 `mapstructure:"rsi_short_max"`
		DivergenceLookback  int     `mapstructure:"divergence_lookback"`
	} `mapstructure:"detector"`

	Risk struct {
		Fraction     float64 `mapstructure:"fraction"`
		PointValue   float64 `mapstructure:"point_value"`
		LotStep      float64 `mapstructure:"lot_step"`
		TakeProfitRR float64 `mapstructure:"take_profit_rr"`
		TrailEMA     int     `mapstructure:"trail_ema"`
		SoftStopPct  float64 `mapstructure:"soft_stop_pct"`
	} `mapstructure:"risk"`

	MarketData struct {
		BaseURL        string        `mapstructure:"base_url"`
		WSURL          string        `mapstructure:"ws_url"`
		APIKey         string        `mapstructure:"api_key"`
		QuoteTimeout   time.Duration `mapstructure:"quote_timeout"`
		CandlesTimeout time.Duration `mapstructure:"candles_timeout"`
	} `mapstructure:"market_data"`

	Gateway struct {
		BaseURL      string        `mapstructure:"base_url"`
		APIKey       string        `mapstructure:"api_key"`
		APISecret    string        `mapstructure:"api_secret"`
		OrderTimeout time.Duration `mapstructure:"order_timeout"`
		QueryTimeout time.Duration `mapstructure:"query_timeout"`
	} `mapstructure:"gateway"`

	Runner struct {
		PollInterval time.Duration `mapstructure:"poll_interval"`
		UseStream    bool          `mapstructure:"use_stream"`
	} `mapstructure:"runner"`

	Journal struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"journal"`

	Telegram struct {
		Token  string `mapstructure:"token"`
		ChatID int64  `mapstructure:"chat_id"`
	} `mapstructure:"telegram"`

	Jaeger struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"jaeger"`
}

func NewConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("service.name", "strategy-engine")
	v.SetDefault("service.host", "0.0.0.0")
	v.SetDefault("service.port", 8080)

	v.SetDefault("account", "DEFAULT")
	v.SetDefault("instruments", []string{"US30"})
	v.SetDefault("timeframes.entry", "15m")
	v.SetDefault("timeframes.context", "4h")
	v.SetDefault("history.entry_bars", 300)
	v.SetDefault("history.context_bars", 210)

	v.SetDefault("detector.compression_lookback", 5)
	v.SetDefault("detector.compression_min_count", 3)
	v.SetDefault("detector.compression_atr_frac", 0.5)
	v.SetDefault("detector.velocity_ratio_min", 2.5)
	v.SetDefault("detector.volume_ratio_min", 1.5)
	v.SetDefault("detector.rsi_long_min", 55)
	v.SetDefault("detector.rsi_short_max", 45)
	v.SetDefault("detector.divergence_lookback", 10)

	v.SetDefault("risk.fraction", 0.02)
	v.SetDefault("risk.point_value", 1.0)
	v.SetDefault("risk.lot_step", 0.01)
	v.SetDefault("risk.take_profit_rr", 1.5)
	v.SetDefault("risk.trail_ema", 9)
	v.SetDefault("risk.soft_stop_pct", -2.0)

	v.SetDefault("market_data.quote_timeout", 5*time.Second)
	v.SetDefault("market_data.candles_timeout", 15*time.Second)
	v.SetDefault("gateway.order_timeout", 10*time.Second)
	v.SetDefault("gateway.query_timeout", 30*time.Second)

	v.SetDefault("runner.poll_interval", time.Minute)
	v.SetDefault("runner.use_stream", false)

	v.SetDefault("jaeger.host", "localhost")
	v.SetDefault("jaeger.port", 6831)

	fileName := os.Getenv(configFilePathENV)
	if fileName == "" {
		fileName = "values_local.yaml"
	}
	v.SetConfigFile("configs/" + fileName)
	if err := v.ReadInConfig(); err != nil {
		// Defaults plus env are a valid deployment; only a present-but-broken
		// file is fatal.
		if _, ok := err.(*os.PathError); !ok && !errors.As(err, new(viper.ConfigFileNotFoundError)) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	v.SetEnvPrefix("ENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &cfg, nil
}

// DetectorParams maps the detector section onto the detector's own settings
// type.
func (c *Config) DetectorParams() detsvc.Params {
	return detsvc.Params{
		CompressionLookback: c.Detector.CompressionLookback,
		CompressionMinCount: c.Detector.CompressionMinCount,
		CompressionATRFrac:  c.Detector.CompressionATRFrac,
		VelocityRatioMin:    c.Detector.VelocityRatioMin,
		VolumeRatioMin:      c.Detector.VolumeRatioMin,
		RSILongMin:          c.Detector.RSILongMin,
		RSIShortMax:         c.Detector.RSIShortMax,
		DivergenceLookback:  c.Detector.DivergenceLookback,
	}
}

func (c *Config) RiskParameters() models.RiskParameters {
	return models.RiskParameters{
		RiskFraction: c.Risk.Fraction,
		PointValue:   c.Risk.PointValue,
		LotStep:      c.Risk.LotStep,
		TakeProfitRR: c.Risk.TakeProfitRR,
		TrailEMA:     c.Risk.TrailEMA,
	}
}
