package models

// PrivateContext is the context id stored for private-chat records.
// Rows written by older deployments may carry an empty string instead;
// readers must treat both values as the private sentinel.
const PrivateContext = "Private"

// TimestampLayout is the persisted timestamp format. It is fixed and
// lexicographically sortable within a year, which is what makes
// prefix-based month filtering valid.
const TimestampLayout = "2006-01-02 15:04:05"

// DefaultMemo replaces an absent memo so downstream renderers can
// assume memos are never empty.
const DefaultMemo = "無備註"

// Record is the immutable row appended to the record store. The store
// is sheet-like legacy data, so Amount travels as a string and readers
// parse it per row; a malformed historic value must not poison an
// aggregate.
type Record struct {
	ID        string `json:"id"`
	Seq       int64  `json:"seq"` // monotonic append sequence, assigned by the store
	Timestamp string `json:"timestamp"`
	UserID    string `json:"userId"`
	ContextID string `json:"contextId"`
	Amount    string `json:"amount"`
	Memo      string `json:"memo"`
	RawText   string `json:"rawText"`
}

// IsPrivate reports whether the record belongs to a private-chat
// ledger, accepting the legacy empty-string sentinel.
func (r *Record) IsPrivate() bool {
	return r.ContextID == PrivateContext || r.ContextID == ""
}
