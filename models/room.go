package models

import "time"

type Room struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RoomNumber string    `gorm:"column:room_number;uniqueIndex;size:50;not null" json:"room_number"`
	RoomName   string    `gorm:"column:room_name;size:255;not null" json:"room_name"`
	Capacity   int       `gorm:"not null" json:"capacity"`
	CreatedAt  time.Time `json:"created_at"`

	Bookings []Booking `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
}
