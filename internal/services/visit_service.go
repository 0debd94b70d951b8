package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Sophavisnuka/real-estate-agency/internal/dto"
	"github.com/Sophavisnuka/real-estate-agency/internal/events"
	"github.com/Sophavisnuka/real-estate-agency/internal/models"
	"gorm.io/gorm"
)

var (
	ErrVisitRequestNotFound = errors.New("visit request not found")
	ErrInvalidVisitRequest  = errors.New("propertyId must be a positive integer")
	ErrInvalidPreferredDate = errors.New("preferredDate must be an RFC3339 timestamp")
	ErrPreferredDateInPast  = errors.New("preferredDate must be in the future")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrAssigneeRequired     = errors.New("an assigned request needs an assignedAgencyId")
)

// datetime-local inputs post minutes without a zone; they are read as UTC.
var preferredDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

const visitViewColumns = "vr.id, vr.property_id, p.title AS property_title, vr.user_id, " +
	"u.name AS user_name, u.email AS user_email, vr.preferred_date, vr.notes, vr.status, " +
	"vr.assigned_agency_id, vr.created_at"

type VisitService struct {
	db        *gorm.DB
	publisher events.Publisher
	now       func() time.Time
}

func NewVisitService(db *gorm.DB, publisher events.Publisher) *VisitService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &VisitService{db: db, publisher: publisher, now: time.Now}
}

// Create records a pending visit request for userID.
func (s *VisitService) Create(ctx context.Context, userID uint, req *dto.CreateVisitRequest) (*models.VisitRequest, error) {
	if req.PropertyID <= 0 || req.PropertyID != dto.Number(req.PropertyID.Int()) {
		return nil, ErrInvalidVisitRequest
	}
	preferred, err := parsePreferredDate(req.PreferredDate)
	if err != nil {
		return nil, err
	}
	if !preferred.After(s.now()) {
		return nil, ErrPreferredDateInPast
	}

	var property models.Property
	err = s.db.WithContext(ctx).Select("id", "title").First(&property, uint(req.PropertyID.Int())).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}

	visit := models.VisitRequest{
		PropertyID:    property.ID,
		UserID:        userID,
		PreferredDate: preferred.UTC(),
		Notes:         trimNotes(req.Notes),
		Status:        models.VisitStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&visit).Error; err != nil {
		return nil, fmt.Errorf("failed to create visit request: %w", err)
	}

	s.publish(ctx, events.TypeVisitRequestCreated, &visit, property.Title, "")
	return &visit, nil
}

// List returns every request joined with its property and requester, newest
// first. An empty status lists all of them.
func (s *VisitService) List(ctx context.Context, status string) ([]dto.VisitRequestView, error) {
	q := s.viewQuery(ctx)
	if status != "" {
		st, err := models.ParseVisitStatus(status)
		if err != nil {
			return nil, ErrInvalidStatus
		}
		q = q.Where("vr.status = ?", st)
	}

	rows := []dto.VisitRequestView{}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *VisitService) ListForUser(ctx context.Context, userID uint) ([]dto.VisitRequestView, error) {
	rows := []dto.VisitRequestView{}
	if err := s.viewQuery(ctx).Where("vr.user_id = ?", userID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *VisitService) viewQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("visit_requests AS vr").
		Select(visitViewColumns).
		Joins("JOIN properties p ON p.id = vr.property_id").
		Joins("JOIN users u ON u.id = vr.user_id").
		Order("vr.created_at DESC")
}

func (s *VisitService) Get(ctx context.Context, id uint) (*dto.VisitRequestDetail, error) {
	var visit models.VisitRequest
	err := s.db.WithContext(ctx).
		Preload("Property").
		Preload("User").
		Preload("AssignedAgency").
		First(&visit, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVisitRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return toVisitDetail(&visit), nil
}

// Update changes status, assignee and notes. The status is validated before
// the database is touched; the transition is checked against the stored
// state inside the transaction.
func (s *VisitService) Update(ctx context.Context, id uint, req *dto.UpdateVisitRequest) (*dto.VisitRequestDetail, error) {
	var next models.VisitStatus
	if req.Status != nil {
		st, err := models.ParseVisitStatus(strings.TrimSpace(*req.Status))
		if err != nil {
			return nil, ErrInvalidStatus
		}
		next = st
	}

	var (
		visit    models.VisitRequest
		previous models.VisitStatus
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&visit, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVisitRequestNotFound
			}
			return err
		}
		previous = visit.Status
		if next == "" {
			next = visit.Status
		}
		if !visit.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, visit.Status, next)
		}

		assignee := visit.AssignedAgencyID
		if req.AssignedAgencyID.Set {
			assignee = req.AssignedAgencyID.Value
		}
		if assignee != nil && req.AssignedAgencyID.Set {
			var count int64
			if err := tx.Model(&models.Employee{}).Where("id = ?", *assignee).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrEmployeeNotFound
			}
		}
		if next == models.VisitStatusAssigned && assignee == nil {
			return ErrAssigneeRequired
		}

		updates := map[string]any{
			"status":             next,
			"assigned_agency_id": assignee,
		}
		if req.Notes != nil {
			updates["notes"] = trimNotes(req.Notes)
		}
		if err := tx.Model(&visit).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update visit request: %w", err)
		}

		visit.Status = next
		visit.AssignedAgencyID = assignee
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeVisitRequestUpdated, &visit, "", previous)
	return s.Get(ctx, id)
}

func (s *VisitService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.VisitRequest{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVisitRequestNotFound
	}
	return nil
}

// publish never fails the caller; the request is already committed.
func (s *VisitService) publish(ctx context.Context, typ string, v *models.VisitRequest, title string, previous models.VisitStatus) {
	event := events.VisitRequestEvent{
		Type:             typ,
		RequestID:        v.ID,
		PropertyID:       v.PropertyID,
		PropertyTitle:    title,
		UserID:           v.UserID,
		Status:           string(v.Status),
		AssignedAgencyID: v.AssignedAgencyID,
		PreferredDate:    v.PreferredDate,
		OccurredAt:       s.now().UTC(),
	}
	if previous != v.Status {
		event.PreviousStatus = string(previous)
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.Error("failed to publish visit request event",
			"error", err,
			"type", typ,
			"request_id", v.ID,
		)
	}
}

func parsePreferredDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range preferredDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidPreferredDate
}

func trimNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	n := strings.TrimSpace(*notes)
	if n == "" {
		return nil
	}
	return &n
}

func toVisitDetail(v *models.VisitRequest) *dto.VisitRequestDetail {
	d := &dto.VisitRequestDetail{
		VisitRequestView: dto.VisitRequestView{
			ID:               v.ID,
			PropertyID:       v.PropertyID,
			UserID:           v.UserID,
			PreferredDate:    v.PreferredDate,
			Notes:            v.Notes,
			Status:           string(v.Status),
			AssignedAgencyID: v.AssignedAgencyID,
			CreatedAt:        v.CreatedAt,
		},
	}
	if p := v.Property; p != nil {
		d.PropertyTitle = p.Title
		d.Property = &dto.PropertySummary{
			ID:           p.ID,
			Thumbnail:    p.Thumbnail,
			Title:        p.Title,
			PropertyType: p.PropertyType,
			Bedrooms:     p.Bedrooms,
			Bathrooms:    p.Bathrooms,
			Price:        p.Price,
			Size:         p.Size,
			Address:      p.Address,
			City:         p.City,
			Province:     p.Province,
			Status:       string(p.Status),
			ListedDate:   p.ListedDate,
		}
	}
	if u := v.User; u != nil {
		d.UserName = u.Name
		d.UserEmail = u.Email
		d.UserPicture = u.Picture
	}
	if a := v.AssignedAgency; a != nil {
		d.AssignedAgency = &dto.EmployeeProfile{
			ID:        a.ID,
			FirstName: a.FirstName,
			LastName:  a.LastName,
			Profile:   a.Profile,
		}
	}
	return d
}
