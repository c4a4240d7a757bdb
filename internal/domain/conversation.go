package domain

import "time"

// Conversation is one user turn with its classification metadata. Rows are
// immutable after insert; each one owns at most one query or grievance record.
type Conversation struct {
	ID            int64
	UserID        string
	Phone         string
	QueryText     string
	ResponseText  string
	PrimaryIntent string
	IntentTags    []IntentScore
	Entities      EntityBag
	Category      Category
	Routing       string
	CreatedAt     time.Time
}
