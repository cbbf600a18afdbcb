package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"room-booking/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	minCapacity = 1
	maxCapacity = 100
)

type CreateRoomInput struct {
	RoomNumber string `json:"room_number"`
	RoomName   string `json:"room_name"`
	Capacity   *int   `json:"capacity"`
}

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// lockRoom loads the room inside tx, taking a row lock on dialects that have
// one. Booking creation and room deletion both lock the room first so they
// serialize per room. SQLite already serializes writers.
func lockRoom(tx *gorm.DB, roomID uint) (models.Room, error) {
	q := tx
	if tx.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var room models.Room
	if err := q.First(&room, roomID).Error; err != nil {
		if classify(err) == outcomeNotFound {
			return room, NotFound("room")
		}
		return room, fmt.Errorf("load room %d: %w", roomID, err)
	}
	return room, nil
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.WithContext(ctx).Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (models.Room, error) {
	var room models.Room
	err := s.DB.WithContext(ctx).First(&room, id).Error
	switch classify(err) {
	case outcomeOK:
		return room, nil
	case outcomeNotFound:
		return room, NotFound("room")
	default:
		return room, fmt.Errorf("load room %d: %w", id, err)
	}
}

func (s *RoomService) Create(ctx context.Context, in CreateRoomInput) (models.Room, error) {
	number := strings.TrimSpace(in.RoomNumber)
	name := strings.TrimSpace(in.RoomName)
	if number == "" || name == "" || in.Capacity == nil {
		return models.Room{}, MissingFields("room_number, room_name and capacity are required")
	}
	if *in.Capacity < minCapacity || *in.Capacity > maxCapacity {
		return models.Room{}, ErrInvalidCapacity
	}

	room := models.Room{RoomNumber: number, RoomName: name, Capacity: *in.Capacity}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Room{}).Where("room_number = ?", number).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateRoom
		}
		return tx.Create(&room).Error
	})
	if err != nil {
		var appErr *AppError
		if errors.As(err, &appErr) {
			return models.Room{}, appErr
		}
		if classify(err) == outcomeDuplicate {
			return models.Room{}, ErrDuplicateRoom
		}
		return models.Room{}, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}

// Delete refuses while any booking references the room.
func (s *RoomService) Delete(ctx context.Context, roomID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockRoom(tx, roomID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.Booking{}).Where("room_id = ?", roomID).Count(&count).Error; err != nil {
			return fmt.Errorf("count bookings of room %d: %w", roomID, err)
		}
		if count > 0 {
			return RoomInUse(count)
		}
		if err := tx.Delete(&models.Room{}, roomID).Error; err != nil {
			return fmt.Errorf("delete room %d: %w", roomID, err)
		}
		return nil
	})
}
