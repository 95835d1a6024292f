package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hangar/internal/apperr"
)

// Service is the credential service: it creates user rows and checks
// passwords against their stored hashes. The store handle is injected at
// startup; there is no package-level database state.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Register creates a new user row. The username check is a case-sensitive
// exact match; the unique index on username catches the remaining
// check-then-insert race and is reported the same way.
func (s *Service) Register(ctx context.Context, username, password string, role Role) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", apperr.ErrValidation)
	}
	if role == "" {
		role = RoleUser
	}
	if role != RoleUser && role != RoleAdmin {
		return fmt.Errorf("%w: role must be %q or %q", apperr.ErrValidation, RoleUser, RoleAdmin)
	}

	var existing User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return apperr.ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	u := User{Username: username, PasswordHash: hash, Role: role}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return apperr.ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// Authenticate returns the user only when both the username exists and the
// password verifies. Both failure modes collapse into ErrBadCredentials so
// the response cannot reveal whether the username was taken.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := CheckPassword(u.PasswordHash, password); err != nil {
		return nil, apperr.ErrBadCredentials
	}
	return &u, nil
}

// Get looks a user up by id.
func (s *Service) Get(ctx context.Context, id uint) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
