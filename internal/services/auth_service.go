package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Sophavisnuka/real-estate-agency/internal/config"
	"github.com/Sophavisnuka/real-estate-agency/internal/dto"
	"github.com/Sophavisnuka/real-estate-agency/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Token kinds carried in the "typ" claim. A token of one kind is never
// accepted where the other is expected.
const (
	TokenTypeStaff = "staff"
	TokenTypeUser  = "user"
)

var (
	ErrUsernameTaken      = errors.New("username already registered")
	ErrCredentialsMissing = errors.New("username and password are required")
	ErrStaffNotFound      = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidEmployeeID  = errors.New("id must be a positive integer")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	verifier IdentityVerifier
	now      func() time.Time
}

func NewAuthService(db *gorm.DB, cfg *config.Config, verifier IdentityVerifier) *AuthService {
	return &AuthService{
		db:       db,
		cfg:      cfg,
		verifier: verifier,
		now:      time.Now,
	}
}

// RegisterStaff creates credentials for an existing employee and returns a
// staff access token.
func (s *AuthService) RegisterStaff(ctx context.Context, req *dto.RegisterRequest) (string, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return "", ErrCredentialsMissing
	}
	if req.EmployeeID <= 0 || req.EmployeeID != dto.Number(req.EmployeeID.Int()) {
		return "", ErrInvalidEmployeeID
	}
	employeeID := uint(req.EmployeeID.Int())

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	auth := models.EmployeeAuth{
		EmployeeID:   employeeID,
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Employee{}).Where("id = ?", employeeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrEmployeeNotFound
		}

		if err := tx.Model(&models.EmployeeAuth{}).
			Where("username = ? OR employee_id = ?", username, employeeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}

		if err := tx.Create(&auth).Error; err != nil {
			return fmt.Errorf("failed to create credentials: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return s.StaffToken(&auth)
}

func (s *AuthService) LoginStaff(ctx context.Context, req *dto.LoginRequest) (string, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return "", ErrCredentialsMissing
	}

	var auth models.EmployeeAuth
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&auth).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrStaffNotFound
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(auth.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.StaffToken(&auth)
}

// GoogleLogin verifies the Google ID token and signs the caller in, creating
// the user on first sign-in.
func (s *AuthService) GoogleLogin(ctx context.Context, req *dto.GoogleLoginRequest) (*dto.GoogleLoginResponse, error) {
	if strings.TrimSpace(req.Token) == "" {
		return nil, fmt.Errorf("%w: token is required", ErrIdentityTokenInvalid)
	}
	if s.verifier == nil {
		return nil, errors.New("google sign-in is not configured")
	}

	identity, err := s.verifier.Verify(ctx, req.Token)
	if err != nil {
		slog.Warn("google token verification failed", "error", err)
		return nil, err
	}

	user := models.User{
		GoogleID: identity.Subject,
		Name:     identity.Name,
		Email:    identity.Email,
		Picture:  identity.Picture,
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "google_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "picture", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	token, err := s.UserToken(&user)
	if err != nil {
		return nil, err
	}

	return &dto.GoogleLoginResponse{
		Success: true,
		Token:   token,
		User: dto.UserResponse{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			Picture: user.Picture,
		},
	}, nil
}

func (s *AuthService) StaffToken(auth *models.EmployeeAuth) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"id":       auth.EmployeeID,
		"username": auth.Username,
		"role":     auth.Role,
		"typ":      TokenTypeStaff,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) UserToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", user.ID),
		"email": user.Email,
		"name":  user.Name,
		"typ":   TokenTypeUser,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.UserTokenExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.UserJWTSecret))
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*dto.UserResponse, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, Picture: user.Picture}, nil
}
