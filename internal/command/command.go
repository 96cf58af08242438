// Package command decides whether an inbound message is a ledger
// command and, if so, splits it into a signed arithmetic expression and
// a trailing memo. Ordinary chat vastly outnumbers commands, so the
// detection policy errs toward silence: anything that does not start
// with a sign, or carries no digit, is simply not a transaction.
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smallkid/line-ledger-bot/internal/expr"
	"github.com/smallkid/line-ledger-bot/internal/models"
	"github.com/smallkid/line-ledger-bot/internal/textutil"
)

// ErrNotTransaction marks text that is ordinary chat. Callers absorb it
// silently and never reply.
var ErrNotTransaction = errors.New("not a transaction")

// Keyword is a routed non-transaction command.
type Keyword int

const (
	KeywordNone Keyword = iota
	KeywordBalance
	KeywordReport
)

var (
	balanceWords = map[string]bool{"餘額": true, "balance": true}
	reportWords  = map[string]bool{"報表": true, "report": true, "excel": true}
)

// Route matches the balance and report keyword sets. ASCII alternatives
// are case-insensitive; matching runs on normalized, trimmed text.
func Route(text string) Keyword {
	s := strings.ToLower(strings.TrimSpace(textutil.Normalize(text)))
	switch {
	case balanceWords[s]:
		return KeywordBalance
	case reportWords[s]:
		return KeywordReport
	default:
		return KeywordNone
	}
}

// Transaction is a parsed ledger command.
type Transaction struct {
	Delta      float64
	Memo       string
	Expression string // the consumed expression, trimmed
}

// allowed characters inside the expression prefix. A space is allowed
// so "+100 * 2 lunch" still evaluates; consumption stops at the first
// character outside this set.
func isExprChar(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == '.' || r == '+' || r == '-' || r == '*' || r == '/' || r == '(' || r == ')' || r == ' ':
		return true
	}
	return false
}

// Parse normalizes text and parses it as a ledger command.
//
// A message is a command only if its first character after trimming is
// + or -; otherwise ErrNotTransaction. The longest prefix of expression
// characters is consumed and evaluated; a prefix without a single digit
// (a lone "+", "--", ...) is also ErrNotTransaction. Evaluator failures
// propagate so near-miss commands can be reported rather than
// swallowed. Everything after the prefix becomes the memo, defaulting
// to models.DefaultMemo.
func Parse(text string) (*Transaction, error) {
	s := textutil.Normalize(strings.TrimSpace(text))
	if s == "" || (s[0] != '+' && s[0] != '-') {
		return nil, ErrNotTransaction
	}

	end := len(s)
	for i, r := range s {
		if !isExprChar(r) {
			end = i
			break
		}
	}
	exprStr := strings.TrimSpace(s[:end])

	if exprStr == "" || !strings.ContainsAny(exprStr, "0123456789") {
		return nil, fmt.Errorf("%w: no digits in expression", ErrNotTransaction)
	}

	delta, err := expr.Eval(exprStr)
	if err != nil {
		return nil, err
	}

	memo := strings.TrimSpace(s[end:])
	if memo == "" {
		memo = models.DefaultMemo
	}

	return &Transaction{Delta: delta, Memo: memo, Expression: exprStr}, nil
}
