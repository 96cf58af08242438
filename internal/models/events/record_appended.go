package events

import "time"

// RecordAppended is published after a ledger record has been durably
// appended.
type RecordAppended struct {
	RecordID   string    `json:"record_id"`
	UserID     string    `json:"user_id"`
	ContextID  string    `json:"context_id"`
	Amount     float64   `json:"amount"`
	Memo       string    `json:"memo"`
	OccurredAt time.Time `json:"occurred_at"`
}
