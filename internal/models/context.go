package models

// Scope separates private one-to-one ledgers from shared group ledgers.
type Scope int

const (
	ScopePrivate Scope = iota
	ScopeGroup
)

// LedgerContext is the derived, non-persisted view that isolates one
// ledger from another. It is computed fresh from each inbound event and
// never cached.
type LedgerContext struct {
	Scope  Scope
	ID     string // group or room id; PrivateContext for private chats
	UserID string // the querying/sending user
}

// Conversation is the kind of chat an inbound event came from, as the
// chat platform reports it.
type Conversation string

const (
	ConversationUser  Conversation = "user"
	ConversationGroup Conversation = "group"
	ConversationRoom  Conversation = "room"
)

// InboundEvent is the normalized message the transport layer hands to
// the core.
type InboundEvent struct {
	Text           string
	SenderID       string
	Kind           Conversation
	ConversationID string // empty for one-to-one chats
}
