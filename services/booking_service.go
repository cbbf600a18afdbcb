package services

import (
	"context"
	"fmt"
	"time"

	"room-booking/models"

	"gorm.io/gorm"
)

// BookingService validates and writes reservations.
type BookingService struct {
	DB       *gorm.DB
	Settings *SettingsService

	now func() time.Time
}

func NewBookingService(db *gorm.DB, settings *SettingsService) *BookingService {
	return &BookingService{DB: db, Settings: settings, now: time.Now}
}

// bookingViews selects bookings joined with room and owner display fields.
func bookingViews(db *gorm.DB) *gorm.DB {
	return db.Table("bookings").
		Select("bookings.id, bookings.room_id, bookings.user_id, bookings.start_time, bookings.end_time, bookings.created_at, " +
			"rooms.room_number, rooms.room_name, users.username").
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Joins("JOIN users ON users.id = bookings.user_id")
}

func (s *BookingService) view(ctx context.Context, id uint) (models.BookingView, error) {
	var out []models.BookingView
	if err := bookingViews(s.DB.WithContext(ctx)).Where("bookings.id = ?", id).Scan(&out).Error; err != nil {
		return models.BookingView{}, fmt.Errorf("load booking %d: %w", id, err)
	}
	if len(out) == 0 {
		return models.BookingView{}, NotFound("booking")
	}
	return out[0], nil
}

// Create runs the validation sequence and then, in one transaction, checks
// for an overlapping booking of the same room and inserts the new one.
// Concurrent overlapping requests serialize on the room: at most one commits.
func (s *BookingService) Create(ctx context.Context, in BookingInput) (models.BookingView, error) {
	if err := checkRequest(in, s.now()); err != nil {
		return models.BookingView{}, err
	}

	limits, err := s.Settings.Limits(ctx)
	if err != nil {
		return models.BookingView{}, err
	}
	if err := checkPolicy(in.Start, in.End, limits); err != nil {
		return models.BookingView{}, err
	}

	booking := models.Booking{
		RoomID:    in.RoomID,
		UserID:    in.UserID,
		StartTime: normalizeInstant(in.Start),
		EndTime:   normalizeInstant(in.End),
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockRoom(tx, booking.RoomID); err != nil {
			return err
		}
		// the token may outlive the account
		if err := lockUser(tx, booking.UserID, "SHARE"); err != nil {
			return err
		}

		var conflicts int64
		if err := tx.Model(&models.Booking{}).
			Where("room_id = ?", booking.RoomID).
			Where(overlapPredicate, booking.EndTime, booking.StartTime).
			Count(&conflicts).Error; err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if conflicts > 0 {
			return ErrSlotConflict
		}

		if err := tx.Create(&booking).Error; err != nil {
			if classify(err) == outcomeMissingParent {
				return NotFound("user")
			}
			return fmt.Errorf("insert booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.BookingView{}, err
	}

	return s.view(ctx, booking.ID)
}

// ListForUser returns the caller's bookings ordered by start time.
func (s *BookingService) ListForUser(ctx context.Context, userID uint) ([]models.BookingView, error) {
	out := []models.BookingView{}
	if err := bookingViews(s.DB.WithContext(ctx)).
		Where("bookings.user_id = ?", userID).
		Order("bookings.start_time ASC, bookings.id ASC").
		Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("list bookings of user %d: %w", userID, err)
	}
	return out, nil
}

// ListAll is the admin listing of every booking.
func (s *BookingService) ListAll(ctx context.Context) ([]models.BookingView, error) {
	out := []models.BookingView{}
	if err := bookingViews(s.DB.WithContext(ctx)).
		Order("bookings.start_time ASC, bookings.id ASC").
		Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return out, nil
}

// DeleteOwn cancels a booking owned by userID. A booking owned by someone
// else is reported as not found.
func (s *BookingService) DeleteOwn(ctx context.Context, userID, bookingID uint) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", bookingID, userID).
		Delete(&models.Booking{})
	if res.Error != nil {
		return fmt.Errorf("delete booking %d: %w", bookingID, res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound("booking")
	}
	return nil
}

// DeleteAny cancels any booking without an ownership check.
func (s *BookingService) DeleteAny(ctx context.Context, bookingID uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Booking{}, bookingID)
	if res.Error != nil {
		return fmt.Errorf("delete booking %d: %w", bookingID, res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound("booking")
	}
	return nil
}
