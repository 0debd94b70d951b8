package dto

import "time"

type CreateVisitRequest struct {
	PropertyID    Number  `json:"propertyId"`
	PreferredDate string  `json:"preferredDate"`
	Notes         *string `json:"notes"`
}

type UpdateVisitRequest struct {
	Status           *string    `json:"status"`
	AssignedAgencyID OptionalID `json:"assignedAgencyId"`
	Notes            *string    `json:"notes"`
}

// VisitRequestView is the row shape of the staff request list.
type VisitRequestView struct {
	ID               uint      `json:"id"`
	PropertyID       uint      `json:"property_id"`
	PropertyTitle    string    `json:"property_title"`
	UserID           uint      `json:"user_id"`
	UserName         string    `json:"user_name"`
	UserEmail        string    `json:"user_email"`
	PreferredDate    time.Time `json:"preferred_date"`
	Notes            *string   `json:"notes"`
	Status           string    `json:"status"`
	AssignedAgencyID *uint     `json:"assigned_agency_id"`
	CreatedAt        time.Time `json:"created_at"`
}

type VisitRequestDetail struct {
	VisitRequestView
	UserPicture    string           `json:"user_picture"`
	Property       *PropertySummary `json:"property,omitempty"`
	AssignedAgency *EmployeeProfile `json:"assigned_agency,omitempty"`
}
