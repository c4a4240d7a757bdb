package domain

import "time"

// QueryStatus enumerates lifecycle states for informational query records.
type QueryStatus string

const (
	QueryStatusPending  QueryStatus = "pending"
	QueryStatusResolved QueryStatus = "resolved"
)

// GrievanceStatus enumerates lifecycle states for grievance records.
type GrievanceStatus string

const (
	GrievanceStatusOpen       GrievanceStatus = "open"
	GrievanceStatusInProgress GrievanceStatus = "in_progress"
	GrievanceStatusResolved   GrievanceStatus = "resolved"
	GrievanceStatusClosed     GrievanceStatus = "closed"
)

// QueryRecord is an informational interaction, resolved at creation time.
type QueryRecord struct {
	ID             int64
	ConversationID int64
	UserID         string
	Phone          string
	Type           string
	Department     string
	Description    string
	Entities       EntityBag
	Status         QueryStatus
	CreatedAt      time.Time
}

// GrievanceRecord is a problem requiring resolution action. CustomerName is
// populated only on joined reads for the reporting surfaces.
type GrievanceRecord struct {
	ID             int64
	ConversationID int64
	UserID         string
	Phone          string
	Type           string
	Department     string
	Description    string
	Entities       EntityBag
	Severity       Severity
	Status         GrievanceStatus
	CreatedAt      time.Time
	ResolvedAt     *time.Time
	CustomerName   string
}

// QueryStats aggregates query record counts by status.
type QueryStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Resolved int64 `json:"resolved"`
}

// GrievanceStats aggregates grievance record counts by status.
type GrievanceStats struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
}

// DepartmentCount is one row of the per-department grievance aggregation.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}
