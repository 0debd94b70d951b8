package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sophavisnuka/real-estate-agency/internal/cache"
	"github.com/Sophavisnuka/real-estate-agency/internal/dto"
	"github.com/Sophavisnuka/real-estate-agency/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidEmployee  = errors.New("firstName and lastName are required")
	ErrInvalidDate      = errors.New("dates must be YYYY-MM-DD or RFC3339")
)

type EmployeeService struct {
	db    *gorm.DB
	cache cache.Cache
	ttl   time.Duration
}

func NewEmployeeService(db *gorm.DB, c cache.Cache, ttl time.Duration) *EmployeeService {
	if c == nil {
		c = cache.Noop{}
	}
	return &EmployeeService{db: db, cache: c, ttl: ttl}
}

func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	return cached(ctx, s.cache, cache.KeyAllEmployees, s.ttl, func() ([]models.Employee, error) {
		employees := []models.Employee{}
		err := s.db.WithContext(ctx).Order("id ASC").Find(&employees).Error
		return employees, err
	})
}

func (s *EmployeeService) Get(ctx context.Context, id uint) (*models.Employee, error) {
	return cached(ctx, s.cache, cache.EmployeeKey(id), s.ttl, func() (*models.Employee, error) {
		var e models.Employee
		if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEmployeeNotFound
			}
			return nil, err
		}
		return &e, nil
	})
}

// Profile returns only the public card of an employee.
func (s *EmployeeService) Profile(ctx context.Context, id uint) (*dto.EmployeeProfile, error) {
	var p dto.EmployeeProfile
	res := s.db.WithContext(ctx).Model(&models.Employee{}).Where("id = ?", id).Limit(1).Find(&p)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrEmployeeNotFound
	}
	return &p, nil
}

func (s *EmployeeService) Create(ctx context.Context, req *dto.EmployeeRequest) (*models.Employee, error) {
	e, err := employeeFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	invalidate(ctx, s.cache, cache.KeyAllEmployees)
	return e, nil
}

func (s *EmployeeService) Update(ctx context.Context, id uint, req *dto.EmployeeRequest) (*models.Employee, error) {
	next, err := employeeFromRequest(req)
	if err != nil {
		return nil, err
	}

	var e models.Employee
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&e).Updates(map[string]any{
		"first_name":    next.FirstName,
		"last_name":     next.LastName,
		"email":         next.Email,
		"phone":         next.Phone,
		"date_of_birth": next.DateOfBirth,
		"hire_date":     next.HireDate,
		"job_title":     next.JobTitle,
		"department":    next.Department,
		"salary":        next.Salary,
		"profile":       next.Profile,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	next.ID, next.CreatedAt, next.UpdatedAt = e.ID, e.CreatedAt, e.UpdatedAt
	invalidate(ctx, s.cache, cache.KeyAllEmployees, cache.EmployeeKey(id))
	return next, nil
}

// Delete removes the employee along with their credentials. Requests
// assigned to them lose the assignee, and those still in the assigned state
// return to pending.
func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	resetStatus := gorm.Expr("CASE WHEN status = ? THEN ? ELSE status END",
		models.VisitStatusAssigned, models.VisitStatusPending)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&models.EmployeeAuth{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.VisitRequest{}).
			Where("assigned_agency_id = ?", id).
			Updates(map[string]any{"assigned_agency_id": nil, "status": resetStatus}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Employee{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrEmployeeNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidate(ctx, s.cache, cache.KeyAllEmployees, cache.EmployeeKey(id))
	return nil
}

func employeeFromRequest(req *dto.EmployeeRequest) (*models.Employee, error) {
	first, last := strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName)
	if first == "" || last == "" {
		return nil, ErrInvalidEmployee
	}

	dob, err := parseDate(req.DOB)
	if err != nil {
		return nil, err
	}
	hired, err := parseDate(req.HireDate)
	if err != nil {
		return nil, err
	}

	return &models.Employee{
		FirstName:   first,
		LastName:    last,
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.PhoneNumber),
		DateOfBirth: dob,
		HireDate:    hired,
		JobTitle:    req.JobTitle,
		Department:  req.Department,
		Salary:      req.Salary.Float(),
		Profile:     req.Profile,
	}, nil
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, ErrInvalidDate
}
