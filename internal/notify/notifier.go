package notify

import (
	"fmt"
	"log"
	"sort"
	"strings"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
)

type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
}

// Telegram is a passive notifier: it pushes messages out, it never drives
// decisions.
type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{bot: b, chatID: chatID}, nil
}

func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	_, _ = t.bot.Send(tgbot.NewMessage(t.chatID, msg))
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }

// Stdout is the no-token fallback, it logs everything.
type Stdout struct{}

func NewStdout() *Stdout                           { return &Stdout{} }
func (s *Stdout) Send(msg string)                  { log.Println(msg) }
func (s *Stdout) Sendf(format string, args ...any) { log.Printf(format, args...) }

// OrderMessage renders a sized order for humans. Reason codes stay codes all
// the way through the engine; text exists only here.
func OrderMessage(order models.SizedOrder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s vol=%.2f\n", order.Direction, order.Instrument, order.Volume)
	fmt.Fprintf(&b, "entry %.5f / stop %.5f / tp1 %.5f\n", order.EntryPrice, order.StopLoss, order.TakeProfit1)
	fmt.Fprintf(&b, "tp2: trail EMA%d from %.5f\n", order.TakeProfit2Rule.EMAPeriod, order.TakeProfit2Rule.ValueAtSignal)
	fmt.Fprintf(&b, "risk %.2f (%s)", order.RiskAmount, order.Label)
	return b.String()
}

func DecisionMessage(instrument string, dec models.MonitorDecision) string {
	return fmt.Sprintf("%s position %s: %s (%s), pnl %.2f (%.2f%%)",
		instrument, dec.PositionID, dec.Action, reasonText(dec.Reason), dec.Pnl, dec.PnlPercent)
}

func RationaleMessage(instrument string, events []models.RationaleEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s decision trail:\n", instrument)
	for _, ev := range events {
		fmt.Fprintf(&b, "- %s: %s", ev.Stage, reasonText(ev.Code))
		if len(ev.Params) > 0 {
			b.WriteString(" (")
			first := true
			for _, k := range sortedKeys(ev.Params) {
				if !first {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "%s=%.3f", k, ev.Params[k])
				first = false
			}
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func reasonText(r models.Reason) string {
	switch r {
	case models.ReasonCompressionFound:
		return "compression found"
	case models.ReasonCompressionAbsent:
		return "no compression"
	case models.ReasonVelocitySpike:
		return "velocity spike"
	case models.ReasonVelocityNoSpike:
		return "no velocity spike"
	case models.ReasonVolumeNotConfirmed:
		return "volume not confirmed"
	case models.ReasonBreakoutLong:
		return "long breakout"
	case models.ReasonBreakoutShort:
		return "short breakout"
	case models.ReasonInsideRange:
		return "close inside range"
	case models.ReasonMomentumNotConfirmed:
		return "momentum not confirmed"
	case models.ReasonAmbiguousBreakout:
		return "ambiguous breakout"
	case models.ReasonNotEvaluated:
		return "not evaluated"
	case models.ReasonDivergenceBullish:
		return "bullish divergence"
	case models.ReasonDivergenceBearish:
		return "bearish divergence"
	case models.ReasonDivergenceNone:
		return "no divergence"
	case models.ReasonSoftStopHit:
		return "soft stop hit"
	case models.ReasonPnlOK:
		return "pnl within limits"
	case models.ReasonOrderSubmitted:
		return "order submitted"
	}
	return string(r)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
