package domain

import "time"

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// Notification is one outbox row. Engines append rows as part of a
// transition; delivery happens later in a scheduled job and never
// blocks or reverses the transition that produced the row.
type Notification struct {
	ID             int64              `json:"id"`
	RecipientEmail string             `json:"recipient_email"`
	RecipientName  string             `json:"recipient_name"`
	Subject        string             `json:"subject"`
	Body           string             `json:"body"`
	RentalID       *int64             `json:"rental_id,omitempty"`
	Status         NotificationStatus `json:"status"`
	FailureReason  string             `json:"failure_reason,omitempty"`
	CreatedOn      time.Time          `json:"created_on"`
	SentOn         *time.Time         `json:"sent_on,omitempty"`
}
