package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecipientKind selects the startup confirmation wording for a chat.
type RecipientKind string

const (
	RecipientDirect RecipientKind = "direct" // one person
	RecipientGroup  RecipientKind = "group"  // group chat
)

// Recipient is a configured chat together with the reminder text meant for it.
type Recipient struct {
	ChatID  int64
	Kind    RecipientKind
	Message string
}

// ReminderJob is one (time, recipient, text) unit fired exactly once.
type ReminderJob struct {
	ID        uuid.UUID
	FireAt    time.Time
	Recipient Recipient
	Text      string
}

// DeliveryKind tells startup confirmations apart from scheduled reminders.
type DeliveryKind string

const (
	KindStartup  DeliveryKind = "startup"
	KindReminder DeliveryKind = "reminder"
)

// Outcome is the result of a single best-effort send.
// Err is nil when Sent is true.
type Outcome struct {
	Sent bool
	Err  error
	At   time.Time
}

// Status returns "sent" or "failed".
func (o Outcome) Status() string {
	if o.Sent {
		return StatusSent
	}
	return StatusFailed
}

const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Delivery is a journal row describing one send attempt.
type Delivery struct {
	JobID  uuid.UUID // uuid.Nil for startup confirmations
	ChatID int64
	Kind   DeliveryKind
	Status string
	Error  string
	At     time.Time // UTC
}
