package textutil

import "strings"

const (
	fullwidthSpace = 0x3000 // ideographic space
	fullwidthLow   = 0xFF01 // ！
	fullwidthHigh  = 0xFF5E // ～
	widthOffset    = 0xFEE0
)

// Normalize folds full-width digits, signs and punctuation to their
// half-width equivalents so that ＋１００ parses the same as +100.
// Characters outside the full-width block pass through unchanged.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == fullwidthSpace:
			b.WriteRune(' ')
		case r >= fullwidthLow && r <= fullwidthHigh:
			b.WriteRune(r - widthOffset)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
