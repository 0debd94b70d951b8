// Package events defines the visit request events published to the
// message broker and the publishers that deliver them.
package events

import "time"

const (
	TypeVisitRequestCreated = "visit_request.created"
	TypeVisitRequestUpdated = "visit_request.updated"
)

// VisitRequestEvent carries enough of the request for a consumer to notify
// the customer or the assigned agent without reading the database.
type VisitRequestEvent struct {
	Type             string    `json:"type"`
	RequestID        uint      `json:"request_id"`
	PropertyID       uint      `json:"property_id"`
	PropertyTitle    string    `json:"property_title,omitempty"`
	UserID           uint      `json:"user_id"`
	Status           string    `json:"status"`
	PreviousStatus   string    `json:"previous_status,omitempty"`
	AssignedAgencyID *uint     `json:"assigned_agency_id,omitempty"`
	PreferredDate    time.Time `json:"preferred_date"`
	OccurredAt       time.Time `json:"occurred_at"`
}
