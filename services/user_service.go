package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"room-booking/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserService holds the admin-side user mutators.
type UserService struct {
	DB         *gorm.DB
	BcryptCost int
}

func NewUserService(db *gorm.DB, bcryptCost int) *UserService {
	return &UserService{DB: db, BcryptCost: bcryptCost}
}

// lockUser confirms the user row exists inside tx. On MySQL it also takes a
// row lock of the given strength ("SHARE" or "UPDATE").
func lockUser(tx *gorm.DB, userID uint, strength string) error {
	q := tx.Select("id")
	if tx.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: strength})
	}
	var user models.User
	if err := q.First(&user, userID).Error; err != nil {
		if classify(err) == outcomeNotFound {
			return NotFound("user")
		}
		return fmt.Errorf("load user %d: %w", userID, err)
	}
	return nil
}

func (s *UserService) List(ctx context.Context) ([]models.PublicUser, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// Create hashes the password and inserts the user. Role defaults to "user".
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (models.PublicUser, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return models.PublicUser{}, MissingFields("username, email and password are required")
	}

	role := models.RoleUser
	if raw := strings.TrimSpace(in.Role); raw != "" {
		r, ok := models.ParseRole(raw)
		if !ok {
			return models.PublicUser{}, ErrInvalidRole
		}
		role = r
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.BcryptCost)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:       username,
		Email:          email,
		PasswordDigest: string(hash),
		Role:           role,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).
			Where("username = ? OR email = ?", username, email).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateIdentity
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		var appErr *AppError
		if errors.As(err, &appErr) {
			return models.PublicUser{}, appErr
		}
		if classify(err) == outcomeDuplicate {
			return models.PublicUser{}, ErrDuplicateIdentity
		}
		return models.PublicUser{}, fmt.Errorf("create user: %w", err)
	}
	return user.Public(), nil
}

// UpdateRole changes another user's role. Admins cannot change their own.
func (s *UserService) UpdateRole(ctx context.Context, callerID, userID uint, rawRole string) (models.PublicUser, error) {
	role, ok := models.ParseRole(strings.TrimSpace(rawRole))
	if !ok {
		return models.PublicUser{}, ErrInvalidRole
	}
	if callerID == userID {
		return models.PublicUser{}, ErrSelfDemoteForbidden
	}

	var user models.User
	db := s.DB.WithContext(ctx)
	if err := db.First(&user, userID).Error; err != nil {
		if classify(err) == outcomeNotFound {
			return models.PublicUser{}, NotFound("user")
		}
		return models.PublicUser{}, fmt.Errorf("load user %d: %w", userID, err)
	}
	if err := db.Model(&user).Update("role", role).Error; err != nil {
		return models.PublicUser{}, fmt.Errorf("update role of user %d: %w", userID, err)
	}
	user.Role = role
	return user.Public(), nil
}

// Delete removes a user and that user's bookings. The bookings go first in
// the same transaction so nothing is orphaned whatever the FK configuration.
func (s *UserService) Delete(ctx context.Context, callerID, userID uint) error {
	if callerID == userID {
		return ErrSelfDeleteForbidden
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// taken before the bookings go so a concurrent booking insert waits on the user
		if err := lockUser(tx, userID, "UPDATE"); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Booking{}).Error; err != nil {
			return fmt.Errorf("delete bookings of user %d: %w", userID, err)
		}
		res := tx.Delete(&models.User{}, userID)
		if res.Error != nil {
			return fmt.Errorf("delete user %d: %w", userID, res.Error)
		}
		if res.RowsAffected == 0 {
			return NotFound("user")
		}
		return nil
	})
}
