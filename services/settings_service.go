package services

import (
	"context"
	"fmt"

	"room-booking/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	minDurationLow  = 5
	minDurationHigh = 120
	maxDurationLow  = 30
	maxDurationHigh = 1440
)

// Limits are the policy bounds, in minutes, that every booking must satisfy.
type Limits struct {
	Min int `json:"min_booking_duration"`
	Max int `json:"max_booking_duration"`
}

type SettingValue struct {
	Value       int    `json:"value"`
	Description string `json:"description"`
}

// Settings is the full admin view of the policy table.
type Settings struct {
	MinBookingDuration SettingValue `json:"min_booking_duration"`
	MaxBookingDuration SettingValue `json:"max_booking_duration"`
}

// SettingsUpdate carries the fields an admin wants to change; nil means keep.
type SettingsUpdate struct {
	MinBookingDuration *int `json:"min_booking_duration"`
	MaxBookingDuration *int `json:"max_booking_duration"`
}

type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

func defaultSettings() Settings {
	return Settings{
		MinBookingDuration: SettingValue{Value: models.DefaultMinDuration, Description: models.MinDurationDescription},
		MaxBookingDuration: SettingValue{Value: models.DefaultMaxDuration, Description: models.MaxDurationDescription},
	}
}

func (s *SettingsService) load(tx *gorm.DB) (Settings, error) {
	out := defaultSettings()

	var rows []models.BookingSetting
	if err := tx.Where("setting_key IN ?", []string{models.SettingMinDuration, models.SettingMaxDuration}).
		Find(&rows).Error; err != nil {
		return out, fmt.Errorf("load booking settings: %w", err)
	}
	for _, row := range rows {
		v := SettingValue{Value: row.SettingValue, Description: row.Description}
		switch row.SettingKey {
		case models.SettingMinDuration:
			out.MinBookingDuration = v
		case models.SettingMaxDuration:
			out.MaxBookingDuration = v
		}
	}
	return out, nil
}

// Get returns both settings with descriptions; missing rows fall back to defaults.
func (s *SettingsService) Get(ctx context.Context) (Settings, error) {
	return s.load(s.DB.WithContext(ctx))
}

// Limits returns only the numeric bounds used by booking validation.
func (s *SettingsService) Limits(ctx context.Context) (Limits, error) {
	st, err := s.Get(ctx)
	if err != nil {
		return Limits{}, err
	}
	return Limits{Min: st.MinBookingDuration.Value, Max: st.MaxBookingDuration.Value}, nil
}

func validateSettingsUpdate(u SettingsUpdate) error {
	if u.MinBookingDuration == nil && u.MaxBookingDuration == nil {
		return MissingFields("min_booking_duration or max_booking_duration is required")
	}
	if v := u.MinBookingDuration; v != nil && (*v < minDurationLow || *v > minDurationHigh) {
		return InvalidSettings(fmt.Sprintf("min_booking_duration must be between %d and %d minutes", minDurationLow, minDurationHigh))
	}
	if v := u.MaxBookingDuration; v != nil && (*v < maxDurationLow || *v > maxDurationHigh) {
		return InvalidSettings(fmt.Sprintf("max_booking_duration must be between %d and %d minutes", maxDurationLow, maxDurationHigh))
	}
	if u.MinBookingDuration != nil && u.MaxBookingDuration != nil && *u.MinBookingDuration >= *u.MaxBookingDuration {
		return InvalidSettings("min_booking_duration must be less than max_booking_duration")
	}
	return nil
}

// Update persists only the supplied fields and returns the refreshed snapshot.
func (s *SettingsService) Update(ctx context.Context, u SettingsUpdate) (Settings, error) {
	if err := validateSettingsUpdate(u); err != nil {
		return Settings{}, err
	}

	var out Settings
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if v := u.MinBookingDuration; v != nil {
			if err := upsertSetting(tx, models.SettingMinDuration, *v, models.MinDurationDescription); err != nil {
				return err
			}
		}
		if v := u.MaxBookingDuration; v != nil {
			if err := upsertSetting(tx, models.SettingMaxDuration, *v, models.MaxDurationDescription); err != nil {
				return err
			}
		}
		var err error
		out, err = s.load(tx)
		return err
	})
	if err != nil {
		return Settings{}, err
	}
	return out, nil
}

// upsertSetting writes the value by key, keeping an existing description.
func upsertSetting(tx *gorm.DB, key string, value int, description string) error {
	row := models.BookingSetting{SettingKey: key, SettingValue: value, Description: description}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	return nil
}
