package models

import "time"

const (
	SettingMinDuration = "min_booking_duration"
	SettingMaxDuration = "max_booking_duration"

	DefaultMinDuration = 15
	DefaultMaxDuration = 240

	MinDurationDescription = "Minimum booking duration in minutes"
	MaxDurationDescription = "Maximum booking duration in minutes"
)

// BookingSetting is one key of the booking policy table. Values are minutes.
type BookingSetting struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SettingKey   string    `gorm:"column:setting_key;uniqueIndex;size:100;not null" json:"setting_key"`
	SettingValue int       `gorm:"column:setting_value;not null" json:"setting_value"`
	Description  string    `gorm:"size:255" json:"description"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (BookingSetting) TableName() string { return "booking_settings" }
