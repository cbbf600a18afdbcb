package services

import (
	"context"
	"fmt"
	"time"

	"room-booking/models"

	"gorm.io/gorm"
)

const (
	StatusAvailable       = "available"
	StatusPartiallyBooked = "partially_booked"
)

// CalendarFilter narrows the calendar listing. Nil fields are unbounded.
type CalendarFilter struct {
	StartDate *time.Time
	EndDate   *time.Time // inclusive
	RoomID    *uint
}

// RoomDay is one room's bookings and status on a single date.
type RoomDay struct {
	models.Room
	Status        string               `json:"status"`
	BookingCount  int                  `json:"booking_count"`
	BookedMinutes int                  `json:"booked_minutes"`
	Bookings      []models.BookingView `json:"bookings"`
}

// CalendarService answers the read-only calendar and availability queries.
type CalendarService struct {
	DB    *gorm.DB
	Rooms *RoomService
}

func NewCalendarService(db *gorm.DB, rooms *RoomService) *CalendarService {
	return &CalendarService{DB: db, Rooms: rooms}
}

func (s *CalendarService) bookings(ctx context.Context, f *filter) ([]models.BookingView, error) {
	out := []models.BookingView{}
	q := f.apply(bookingViews(s.DB.WithContext(ctx)))
	if err := q.Order("bookings.start_time ASC, bookings.id ASC").Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	return out, nil
}

// Bookings lists bookings starting within the optional date range, optionally
// for one room.
func (s *CalendarService) Bookings(ctx context.Context, cf CalendarFilter) ([]models.BookingView, error) {
	f := &filter{}
	if cf.StartDate != nil {
		from, _ := dayBounds(*cf.StartDate)
		f.add("bookings.start_time >= ?", from)
	}
	if cf.EndDate != nil {
		_, until := dayBounds(*cf.EndDate)
		f.add("bookings.start_time < ?", until)
	}
	f.addIf(cf.RoomID != nil, "bookings.room_id = ?", derefUint(cf.RoomID))
	return s.bookings(ctx, f)
}

// RoomAvailability lists one room's bookings on a date.
func (s *CalendarService) RoomAvailability(ctx context.Context, roomID uint, date time.Time) ([]models.BookingView, error) {
	if _, err := s.Rooms.Get(ctx, roomID); err != nil {
		return nil, err
	}
	from, until := dayBounds(date)
	f := (&filter{}).
		add("bookings.room_id = ?", roomID).
		add("bookings.start_time >= ?", from).
		add("bookings.start_time < ?", until)
	return s.bookings(ctx, f)
}

// Availability reports every room, ordered by room number, with its bookings
// on the given date.
func (s *CalendarService) Availability(ctx context.Context, date time.Time) ([]RoomDay, error) {
	rooms, err := s.Rooms.List(ctx)
	if err != nil {
		return nil, err
	}

	from, until := dayBounds(date)
	f := (&filter{}).
		add("bookings.start_time >= ?", from).
		add("bookings.start_time < ?", until)
	bookings, err := s.bookings(ctx, f)
	if err != nil {
		return nil, err
	}

	byRoom := make(map[uint][]models.BookingView, len(rooms))
	for _, b := range bookings {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	out := make([]RoomDay, 0, len(rooms))
	for _, room := range rooms {
		day := RoomDay{Room: room, Status: StatusAvailable, Bookings: []models.BookingView{}}
		if list := byRoom[room.ID]; len(list) > 0 {
			day.Bookings = list
			day.Status = StatusPartiallyBooked
		}
		day.BookingCount = len(day.Bookings)
		for _, b := range day.Bookings {
			day.BookedMinutes += b.DurationMinutes()
		}
		out = append(out, day)
	}
	return out, nil
}

func derefUint(p *uint) uint {
	if p == nil {
		return 0
	}
	return *p
}
