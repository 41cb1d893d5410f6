package helper

import (
	"strings"
	"time"
)

// NormTimeframe maps the loose spellings that show up in configs and feeds
// onto the canonical lowercase form the engine uses everywhere.
func NormTimeframe(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	s = strings.TrimPrefix(s, "candle")
	switch s {
	case "60m", "1h":
		return "1h"
	case "240m", "4h":
		return "4h"
	default:
		return s
	}
}

// TimeframeDuration returns the bar length, 0 for unknown timeframes.
func TimeframeDuration(tf string) time.Duration {
	switch NormTimeframe(tf) {
	case "1m":
		return time.Minute
	case "5m":
		return 5 * time.Minute
	case "15m":
		return 15 * time.Minute
	case "30m":
		return 30 * time.Minute
	case "1h":
		return time.Hour
	case "4h":
		return 4 * time.Hour
	case "1d":
		return 24 * time.Hour
	}
	return 0
}
