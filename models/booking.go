package models

import "time"

// Booking reserves one room for one user over [StartTime, EndTime).
// Rows are never updated; cancel and recreate is the only edit path.
type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"column:room_id;not null;index:idx_bookings_room_start,priority:1" json:"room_id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	StartTime time.Time `gorm:"column:start_time;not null;index:idx_bookings_room_start,priority:2" json:"start_time"`
	EndTime   time.Time `gorm:"column:end_time;not null" json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingView is a booking joined with the display fields of its room and owner.
type BookingView struct {
	ID         uint      `json:"id"`
	RoomID     uint      `json:"room_id"`
	UserID     uint      `json:"user_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	CreatedAt  time.Time `json:"created_at"`
	RoomNumber string    `json:"room_number"`
	RoomName   string    `json:"room_name"`
	Username   string    `json:"username"`
}

// DurationMinutes is the whole-minute length of the booking.
func (b BookingView) DurationMinutes() int {
	return int(b.EndTime.Sub(b.StartTime).Minutes())
}
