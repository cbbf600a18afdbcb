package services

import (
	"context"
	"testing"

	"room-booking/models"
)

func TestSettingsDefaults(t *testing.T) {
	f := newFixture(t)

	got, err := f.settings.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.MinBookingDuration.Value != models.DefaultMinDuration || got.MaxBookingDuration.Value != models.DefaultMaxDuration {
		t.Fatalf("defaults = %d/%d, want %d/%d", got.MinBookingDuration.Value, got.MaxBookingDuration.Value,
			models.DefaultMinDuration, models.DefaultMaxDuration)
	}
	if got.MinBookingDuration.Description == "" || got.MaxBookingDuration.Description == "" {
		t.Fatalf("descriptions missing: %+v", got)
	}
}

func TestSettingsUpdateValidation(t *testing.T) {
	cases := []struct {
		name     string
		min, max *int
		want     Kind
	}{
		{"nothing supplied", nil, nil, KindMissingFields},
		{"min below range", intPtr(4), nil, KindInvalidSettings},
		{"min above range", intPtr(121), nil, KindInvalidSettings},
		{"max below range", nil, intPtr(29), KindInvalidSettings},
		{"max above range", nil, intPtr(1441), KindInvalidSettings},
		{"min equals max", intPtr(60), intPtr(60), KindInvalidSettings},
		{"min above max", intPtr(90), intPtr(60), KindInvalidSettings},
	}

	f := newFixture(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.settings.Update(context.Background(), SettingsUpdate{MinBookingDuration: tc.min, MaxBookingDuration: tc.max})
			assertKind(t, err, tc.want)
		})
	}

	limits, err := f.settings.Limits(context.Background())
	if err != nil {
		t.Fatalf("limits: %v", err)
	}
	if limits.Min != models.DefaultMinDuration || limits.Max != models.DefaultMaxDuration {
		t.Fatalf("rejected updates changed limits to %+v", limits)
	}
}

func TestSettingsPartialUpdateKeepsOtherValue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.settings.Update(ctx, SettingsUpdate{MinBookingDuration: intPtr(30)})
	if err != nil {
		t.Fatalf("update min: %v", err)
	}
	if got.MinBookingDuration.Value != 30 || got.MaxBookingDuration.Value != models.DefaultMaxDuration {
		t.Fatalf("after min update: %+v", got)
	}

	got, err = f.settings.Update(ctx, SettingsUpdate{MaxBookingDuration: intPtr(480)})
	if err != nil {
		t.Fatalf("update max: %v", err)
	}
	if got.MinBookingDuration.Value != 30 || got.MaxBookingDuration.Value != 480 {
		t.Fatalf("after max update: %+v", got)
	}
	if got.MaxBookingDuration.Description != models.MaxDurationDescription {
		t.Fatalf("description = %q", got.MaxBookingDuration.Description)
	}

	var count int64
	if err := f.db.Model(&models.BookingSetting{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("settings rows = %d, want 2", count)
	}
}

func TestSettingsFallBackToDefaultsWhenRowsMissing(t *testing.T) {
	f := newFixture(t)
	if err := f.db.Where("1 = 1").Delete(&models.BookingSetting{}).Error; err != nil {
		t.Fatalf("clear settings: %v", err)
	}

	limits, err := f.settings.Limits(context.Background())
	if err != nil {
		t.Fatalf("limits: %v", err)
	}
	if limits.Min != models.DefaultMinDuration || limits.Max != models.DefaultMaxDuration {
		t.Fatalf("limits = %+v, want defaults", limits)
	}

	got, err := f.settings.Update(context.Background(), SettingsUpdate{MinBookingDuration: intPtr(10)})
	if err != nil {
		t.Fatalf("upsert into empty table: %v", err)
	}
	if got.MinBookingDuration.Value != 10 {
		t.Fatalf("min = %d, want 10", got.MinBookingDuration.Value)
	}
}
