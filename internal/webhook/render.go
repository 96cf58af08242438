package webhook

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smallkid/line-ledger-bot/internal/models"
)

const serviceUnavailableText = "記帳服務連線失敗，請稍後再試 🥲"
const invalidExpressionText = "這筆帳的算式看不懂，請檢查後再試一次 🙈"

// formatAmount rounds to two decimals for display and trims trailing
// zeros. Rounding happens only here; stored and summed values stay
// unrounded.
func formatAmount(v float64) string {
	s := decimal.NewFromFloat(v).Round(2).StringFixed(2)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

// RenderReply maps an outcome to outbound messages. OutcomeIgnored
// yields nil: ordinary chat never gets a reply.
func RenderReply(out models.Outcome) []Message {
	switch out.Kind {
	case models.OutcomeError:
		return renderError(out.Err)
	case models.OutcomeBalance:
		return []Message{TextMessage(balanceText(out.Balance))}
	case models.OutcomeApplied:
		return []Message{transactionFlex(out.Applied)}
	case models.OutcomeReport:
		return renderReport(out.Report)
	default:
		return nil
	}
}

func renderError(kind models.ErrorKind) []Message {
	switch kind {
	case models.ErrorStoreUnavailable:
		return []Message{TextMessage(serviceUnavailableText)}
	default:
		return []Message{TextMessage(invalidExpressionText)}
	}
}

func balanceText(balance float64) string {
	rounded := decimal.NewFromFloat(balance).Round(2)
	switch {
	case rounded.IsPositive():
		return fmt.Sprintf("目前小朋友欠 %s 元", formatAmount(balance))
	case rounded.IsNegative():
		return fmt.Sprintf("目前欠小朋友 %s 元", formatAmount(-balance))
	default:
		return "目前互不相欠 ✨"
	}
}

// transactionFlex builds the confirmation card for a recorded command.
func transactionFlex(a *models.Applied) Message {
	return FlexMessage("記帳成功", map[string]any{
		"type": "bubble",
		"body": map[string]any{
			"type":    "box",
			"layout":  "vertical",
			"spacing": "md",
			"contents": []map[string]any{
				{"type": "text", "text": "記帳成功", "weight": "bold", "size": "lg"},
				{"type": "text", "text": "本次：" + a.Expression, "size": "sm"},
				{"type": "text", "text": "備註：" + a.Memo, "size": "sm", "wrap": true},
				{"type": "text", "text": fmt.Sprintf("目前總額：%s 元", formatAmount(a.Balance)), "size": "md", "weight": "bold"},
			},
		},
	})
}

func renderReport(r *models.Report) []Message {
	if r.Count == 0 {
		return []Message{TextMessage(fmt.Sprintf("%s 本月尚無紀錄", r.Window))}
	}

	rows := make([]map[string]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		sign := "+"
		amount := row.Amount
		if amount < 0 {
			sign = "-"
			amount = -amount
		}
		rows = append(rows, map[string]any{
			"type":    "box",
			"layout":  "horizontal",
			"spacing": "sm",
			"contents": []map[string]any{
				{"type": "text", "text": sign + formatAmount(amount), "size": "sm", "flex": 2},
				{"type": "text", "text": row.Memo, "size": "sm", "flex": 5, "wrap": true},
				{"type": "text", "text": row.Time, "size": "xs", "flex": 3, "align": "end", "color": "#999999"},
			},
		})
	}

	card := FlexMessage("本月記帳報表", map[string]any{
		"type": "bubble",
		"body": map[string]any{
			"type":    "box",
			"layout":  "vertical",
			"spacing": "md",
			"contents": []map[string]any{
				{"type": "text", "text": "📘 近 10 筆記帳紀錄", "weight": "bold", "size": "lg"},
				{"type": "text", "text": r.Window + " 本月", "size": "sm", "color": "#666666"},
				{"type": "separator", "margin": "md"},
				{"type": "box", "layout": "vertical", "spacing": "sm", "contents": rows},
				{"type": "separator", "margin": "md"},
				{"type": "text", "text": fmt.Sprintf("本月累積：%s 元", formatAmount(r.Total)), "size": "sm", "weight": "bold"},
			},
		},
	})

	summary := fmt.Sprintf("📘 %s 本月總結\n筆數：%d 筆\n總累積：%s 元",
		r.Window, r.Count, formatAmount(r.Total))

	return []Message{card, TextMessage(summary)}
}
