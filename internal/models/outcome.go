package models

// OutcomeKind tags the result of handling one inbound message.
type OutcomeKind int

const (
	// OutcomeIgnored means the text was ordinary chat. The caller must
	// not reply at all.
	OutcomeIgnored OutcomeKind = iota
	OutcomeError
	OutcomeApplied
	OutcomeBalance
	OutcomeReport
)

// ErrorKind classifies user-visible failures.
type ErrorKind int

const (
	ErrorInvalidExpression ErrorKind = iota
	ErrorDisallowedOperation
	ErrorStoreUnavailable
)

// Applied describes a transaction that was recorded.
type Applied struct {
	Delta      float64
	Expression string // the expression as consumed, for echoing back
	Memo       string
	Previous   float64 // balance before this record
	Balance    float64 // balance after this record
}

// ReportRow is one line of a windowed report, newest first.
type ReportRow struct {
	Time   string // display form, e.g. 11/26 14:23
	Amount float64
	Memo   string
}

// Report is the windowed view over one context.
type Report struct {
	Window string // e.g. 2025-11
	Rows   []ReportRow
	Count  int     // all matching records in the window, not just the listed rows
	Total  float64 // summed unrounded over all matching records
}

// Outcome is the tagged result handed to the presentation layer.
// Exactly the field selected by Kind is meaningful.
type Outcome struct {
	Kind    OutcomeKind
	Err     ErrorKind
	Applied *Applied
	Balance float64
	Report  *Report
}
