package ledger

import "github.com/smallkid/line-ledger-bot/internal/models"

// Resolve derives the ledger context for an inbound event. Group and
// room conversations map to a group-scoped ledger keyed by the
// conversation id; everything else is the sender's private ledger,
// keyed by the fixed sentinel. Contexts are computed fresh per event
// and never cached.
func Resolve(ev models.InboundEvent) models.LedgerContext {
	switch ev.Kind {
	case models.ConversationGroup, models.ConversationRoom:
		return models.LedgerContext{
			Scope:  models.ScopeGroup,
			ID:     ev.ConversationID,
			UserID: ev.SenderID,
		}
	default:
		return models.LedgerContext{
			Scope:  models.ScopePrivate,
			ID:     models.PrivateContext,
			UserID: ev.SenderID,
		}
	}
}
