package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"room-booking/config"
	"room-booking/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// fixed clock: every booking test books on testDay, which is after testNow
var (
	testNow = time.Date(2030, time.January, 1, 8, 0, 0, 0, time.Local)
	testDay = time.Date(2030, time.January, 2, 0, 0, 0, 0, time.Local)
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openTestDB(t, fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", dbSeq.Add(1)))
}

// openTestDB opens, migrates and seeds a database at dsn.
func openTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	db, err := config.OpenDatabase(config.DatabaseConfig{Driver: "sqlite", DSN: dsn, LogLevel: "silent"})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := config.SeedDatabase(db, bcrypt.MinCost, false); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

type fixture struct {
	db       *gorm.DB
	settings *SettingsService
	users    *UserService
	rooms    *RoomService
	bookings *BookingService
	calendar *CalendarService
	auth     *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(t, newTestDB(t))
}

func newFixtureOn(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	f := &fixture{db: db}
	f.settings = NewSettingsService(db)
	f.users = NewUserService(db, bcrypt.MinCost)
	f.rooms = NewRoomService(db)
	f.bookings = NewBookingService(db, f.settings)
	f.bookings.now = func() time.Time { return testNow }
	f.calendar = NewCalendarService(db, f.rooms)
	f.auth = NewAuthService(db, []byte("test-secret"), time.Hour, f.users)
	f.auth.now = func() time.Time { return testNow }
	return f
}

func (f *fixture) admin(t *testing.T) models.User {
	t.Helper()
	var admin models.User
	if err := f.db.Where("username = ?", "admin").First(&admin).Error; err != nil {
		t.Fatalf("load seeded admin: %v", err)
	}
	return admin
}

func (f *fixture) mustUser(t *testing.T, name string) models.PublicUser {
	t.Helper()
	u, err := f.users.Create(context.Background(), CreateUserInput{
		Username: name,
		Email:    name + "@example.com",
		Password: "secret-" + name,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func (f *fixture) mustRoom(t *testing.T, number string) models.Room {
	t.Helper()
	capacity := 6
	r, err := f.rooms.Create(context.Background(), CreateRoomInput{
		RoomNumber: number,
		RoomName:   "Room " + number,
		Capacity:   &capacity,
	})
	if err != nil {
		t.Fatalf("create room %s: %v", number, err)
	}
	return r
}

func (f *fixture) mustBook(t *testing.T, roomID, userID uint, start, end time.Time) models.BookingView {
	t.Helper()
	b, err := f.bookings.Create(context.Background(), BookingInput{RoomID: roomID, UserID: userID, Start: start, End: end})
	if err != nil {
		t.Fatalf("book %s-%s: %v", start.Format("15:04"), end.Format("15:04"), err)
	}
	return b
}

// at returns hh:mm local time on testDay.
func at(hh, mm int) time.Time {
	return testDay.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
}

func assertKind(t *testing.T, err error, want Kind) *AppError {
	t.Helper()
	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected %s error, got %v", want, err)
	}
	if appErr.Kind != want {
		t.Fatalf("expected %s error, got %s (%s)", want, appErr.Kind, appErr.Message)
	}
	return appErr
}

func intPtr(v int) *int { return &v }
