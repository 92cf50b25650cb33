// Package activity persists per-(chat, user) last-activity timestamps and
// answers "who has been silent since T" queries for the removal workflow.
package activity

import (
	"context"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Record is the last known activity of one user in one chat.
// There is at most one record per (chat_id, user_id) pair; writes replace
// the previous record.
type Record struct {
	ChatID     int64     `bson:"chat_id"`
	UserID     int64     `bson:"user_id"`
	Username   string    `bson:"username,omitempty"`
	FirstName  string    `bson:"first_name,omitempty"`
	LastActive time.Time `bson:"last_active"`
}

// Store is the activity bookkeeping contract.
//
// Record is best-effort: failures are logged by the implementation and never
// surfaced, since losing a single activity update is non-fatal. Inactive
// degrades to an empty slice on query failure so callers treat it as
// "nothing to do".
type Store interface {
	Record(ctx context.Context, chatID, userID int64, username, firstName string)
	Inactive(ctx context.Context, chatID int64, before time.Time) []Record
	Close(ctx context.Context) error
}

// normalizeName brings Telegram-supplied names to NFC form so that the same
// user does not produce visually identical but byte-different values.
func normalizeName(s string) string {
	if s == "" {
		return s
	}
	return norm.NFC.String(s)
}
