package dto

import (
	"time"

	"github.com/spec-kit/telecom-triage/internal/domain"
)

// QueryRecordResponse is one informational record row.
type QueryRecordResponse struct {
	ID             int64              `json:"id"`
	ConversationID int64              `json:"conversation_id"`
	Phone          string             `json:"phone"`
	Type           string             `json:"type"`
	Department     string             `json:"department"`
	Description    string             `json:"description"`
	Entities       domain.EntityBag   `json:"entities"`
	Status         domain.QueryStatus `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
}

// NewQueryRecordResponse maps a domain record.
func NewQueryRecordResponse(record domain.QueryRecord) QueryRecordResponse {
	return QueryRecordResponse{
		ID:             record.ID,
		ConversationID: record.ConversationID,
		Phone:          record.Phone,
		Type:           record.Type,
		Department:     record.Department,
		Description:    record.Description,
		Entities:       record.Entities,
		Status:         record.Status,
		CreatedAt:      record.CreatedAt,
	}
}

// GrievanceRecordResponse is one grievance row with the customer name joined
// in for the reporting surfaces.
type GrievanceRecordResponse struct {
	ID             int64                  `json:"id"`
	ConversationID int64                  `json:"conversation_id"`
	Phone          string                 `json:"phone"`
	CustomerName   string                 `json:"customer_name,omitempty"`
	Type           string                 `json:"type"`
	Department     string                 `json:"department"`
	Description    string                 `json:"description"`
	Entities       domain.EntityBag       `json:"entities"`
	Severity       domain.Severity        `json:"severity"`
	Status         domain.GrievanceStatus `json:"status"`
	CreatedAt      time.Time              `json:"created_at"`
	ResolvedAt     *time.Time             `json:"resolved_at,omitempty"`
}

// NewGrievanceRecordResponse maps a domain record.
func NewGrievanceRecordResponse(record domain.GrievanceRecord) GrievanceRecordResponse {
	return GrievanceRecordResponse{
		ID:             record.ID,
		ConversationID: record.ConversationID,
		Phone:          record.Phone,
		CustomerName:   record.CustomerName,
		Type:           record.Type,
		Department:     record.Department,
		Description:    record.Description,
		Entities:       record.Entities,
		Severity:       record.Severity,
		Status:         record.Status,
		CreatedAt:      record.CreatedAt,
		ResolvedAt:     record.ResolvedAt,
	}
}

// UpdateStatusRequest payload for the PATCH status endpoints.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
