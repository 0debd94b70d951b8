package models

import (
	"errors"
	"time"
)

var ErrUnknownVisitStatus = errors.New("unknown visit request status")

type VisitStatus string

const (
	VisitStatusPending   VisitStatus = "pending"
	VisitStatusAssigned  VisitStatus = "assigned"
	VisitStatusCompleted VisitStatus = "completed"
	VisitStatusCancelled VisitStatus = "cancelled"
)

// visitTransitions lists the states reachable from each non-terminal state.
var visitTransitions = map[VisitStatus][]VisitStatus{
	VisitStatusPending:  {VisitStatusAssigned, VisitStatusCancelled},
	VisitStatusAssigned: {VisitStatusCompleted, VisitStatusCancelled},
}

func ParseVisitStatus(s string) (VisitStatus, error) {
	switch st := VisitStatus(s); st {
	case VisitStatusPending, VisitStatusAssigned, VisitStatusCompleted, VisitStatusCancelled:
		return st, nil
	}
	return "", ErrUnknownVisitStatus
}

// IsTerminal reports whether no further transition is possible.
func (s VisitStatus) IsTerminal() bool {
	return s == VisitStatusCompleted || s == VisitStatusCancelled
}

// CanTransitionTo reports whether s may move to next. Staying in the same
// state is always allowed so notes and assignee can be edited.
func (s VisitStatus) CanTransitionTo(next VisitStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range visitTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type VisitRequest struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	PropertyID       uint        `gorm:"not null;index" json:"property_id"`
	UserID           uint        `gorm:"not null;index" json:"user_id"`
	PreferredDate    time.Time   `gorm:"not null" json:"preferred_date"`
	Notes            *string     `gorm:"type:text" json:"notes"`
	Status           VisitStatus `gorm:"size:20;not null;index" json:"status"`
	AssignedAgencyID *uint       `gorm:"index" json:"assigned_agency_id"`
	CreatedAt        time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`

	Property       *Property `gorm:"foreignKey:PropertyID" json:"-"`
	User           *User     `gorm:"foreignKey:UserID" json:"-"`
	AssignedAgency *Employee `gorm:"foreignKey:AssignedAgencyID" json:"-"`
}

func (VisitRequest) TableName() string {
	return "visit_requests"
}
