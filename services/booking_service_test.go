package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"room-booking/models"
)

func TestCreateBookingSucceedsAndIsRetrievable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.mustRoom(t, "101")
	user := f.mustUser(t, "alice")

	got := f.mustBook(t, room.ID, user.ID, at(10, 0), at(11, 0))
	if got.ID == 0 || got.RoomNumber != "101" || got.Username != "alice" {
		t.Fatalf("unexpected booking view: %+v", got)
	}
	if !got.StartTime.Equal(at(10, 0)) || !got.EndTime.Equal(at(11, 0)) {
		t.Fatalf("stored interval %s-%s, want 10:00-11:00", got.StartTime, got.EndTime)
	}
	if got.DurationMinutes() != 60 {
		t.Fatalf("duration = %d, want 60", got.DurationMinutes())
	}

	mine, err := f.bookings.ListForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != got.ID {
		t.Fatalf("ListForUser = %+v, want the new booking", mine)
	}

	day, err := f.calendar.RoomAvailability(ctx, room.ID, testDay)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if len(day) != 1 || day[0].ID != got.ID {
		t.Fatalf("RoomAvailability = %+v, want the new booking", day)
	}
}

func TestCreateBookingOverlap(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		conflict   bool
	}{
		{"touching before", at(9, 0), at(10, 0), false},
		{"touching after", at(11, 0), at(12, 0), false},
		{"overlaps start", at(9, 30), at(10, 30), true},
		{"overlaps end", at(10, 30), at(11, 30), true},
		{"inside", at(10, 15), at(10, 45), true},
		{"encloses", at(9, 0), at(12, 0), true},
		{"identical", at(10, 0), at(11, 0), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			room := f.mustRoom(t, "101")
			owner := f.mustUser(t, "owner")
			other := f.mustUser(t, "other")
			f.mustBook(t, room.ID, owner.ID, at(10, 0), at(11, 0))

			_, err := f.bookings.Create(context.Background(), BookingInput{
				RoomID: room.ID, UserID: other.ID, Start: tc.start, End: tc.end,
			})
			if tc.conflict {
				if !errors.Is(err, ErrSlotConflict) {
					t.Fatalf("expected SlotConflict, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected success, got %v", err)
			}
		})
	}
}

func TestCreateBookingOtherRoomDoesNotConflict(t *testing.T) {
	f := newFixture(t)
	a := f.mustRoom(t, "101")
	b := f.mustRoom(t, "102")
	user := f.mustUser(t, "alice")

	f.mustBook(t, a.ID, user.ID, at(10, 0), at(11, 0))
	f.mustBook(t, b.ID, user.ID, at(10, 0), at(11, 0))
}

func TestCreateBookingRepeatedConflict(t *testing.T) {
	f := newFixture(t)
	room := f.mustRoom(t, "101")
	user := f.mustUser(t, "alice")
	in := BookingInput{RoomID: room.ID, UserID: user.ID, Start: at(14, 0), End: at(15, 0)}

	if _, err := f.bookings.Create(context.Background(), in); err != nil {
		t.Fatalf("first create: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := f.bookings.Create(context.Background(), in); !errors.Is(err, ErrSlotConflict) {
			t.Fatalf("attempt %d: expected SlotConflict, got %v", i+2, err)
		}
	}

	all, err := f.bookings.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("stored %d bookings, want 1", len(all))
	}
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)
	room := f.mustRoom(t, "101")
	user := f.mustUser(t, "alice")
	nextDay := testDay.AddDate(0, 0, 1)

	cases := []struct {
		name string
		in   BookingInput
		want Kind
	}{
		{"missing room", BookingInput{UserID: user.ID, Start: at(10, 0), End: at(11, 0)}, KindMissingFields},
		{"missing start", BookingInput{RoomID: room.ID, UserID: user.ID, End: at(11, 0)}, KindMissingFields},
		{"start equals end", BookingInput{RoomID: room.ID, UserID: user.ID, Start: at(10, 0), End: at(10, 0)}, KindInvalidInterval},
		{"end before start", BookingInput{RoomID: room.ID, UserID: user.ID, Start: at(11, 0), End: at(10, 0)}, KindInvalidInterval},
		{"in the past", BookingInput{RoomID: room.ID, UserID: user.ID, Start: testNow.Add(-time.Hour), End: testNow}, KindPastBooking},
		{"past wins over too short", BookingInput{RoomID: room.ID, UserID: user.ID, Start: testNow.Add(-time.Hour), End: testNow.Add(-55 * time.Minute)}, KindPastBooking},
		{"too short", BookingInput{RoomID: room.ID, UserID: user.ID, Start: at(10, 0), End: at(10, 10)}, KindTooShort},
		{"too long", BookingInput{RoomID: room.ID, UserID: user.ID, Start: at(8, 0), End: at(13, 0)}, KindTooLong},
		{"crosses midnight", BookingInput{RoomID: room.ID, UserID: user.ID, Start: at(23, 0), End: nextDay.Add(time.Hour)}, KindCrossesDay},
		{"unknown room", BookingInput{RoomID: room.ID + 100, UserID: user.ID, Start: at(10, 0), End: at(11, 0)}, KindNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.bookings.Create(context.Background(), tc.in)
			assertKind(t, err, tc.want)
		})
	}

	all, err := f.bookings.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("rejected requests stored %d bookings", len(all))
	}
}

func TestCreateBookingHonorsUpdatedDurationPolicy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.mustRoom(t, "101")
	user := f.mustUser(t, "alice")

	if _, err := f.settings.Update(ctx, SettingsUpdate{MinBookingDuration: intPtr(20), MaxBookingDuration: intPtr(200)}); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	f.mustBook(t, room.ID, user.ID, at(7, 0), at(7, 20))

	_, err := f.bookings.Create(ctx, BookingInput{RoomID: room.ID, UserID: user.ID, Start: at(8, 0), End: at(8, 19)})
	short := assertKind(t, err, KindTooShort)
	if short.Fields["min_duration"] != 20 {
		t.Fatalf("min_duration = %v, want 20", short.Fields["min_duration"])
	}

	f.mustBook(t, room.ID, user.ID, at(9, 0), at(12, 20))

	_, err = f.bookings.Create(ctx, BookingInput{RoomID: room.ID, UserID: user.ID, Start: at(13, 0), End: at(16, 21)})
	long := assertKind(t, err, KindTooLong)
	if long.Fields["max_duration"] != 200 {
		t.Fatalf("max_duration = %v, want 200", long.Fields["max_duration"])
	}
}

func TestCreateBookingTruncatesToSeconds(t *testing.T) {
	f := newFixture(t)
	room := f.mustRoom(t, "101")
	user := f.mustUser(t, "alice")

	got := f.mustBook(t, room.ID, user.ID, at(10, 0).Add(300*time.Millisecond), at(11, 0).Add(700*time.Millisecond))
	if !got.StartTime.Equal(at(10, 0)) || !got.EndTime.Equal(at(11, 0)) {
		t.Fatalf("stored %s-%s, want whole seconds", got.StartTime, got.EndTime)
	}
}

func TestConcurrentOverlappingCreatesYieldOneBooking(t *testing.T) {
	f := newFixture(t)
	room := f.mustRoom(t, "101")
	user := f.mustUser(t, "alice")

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// every request overlaps 10:00-10:30
			start := at(10, 0).Add(time.Duration(i%3) * 5 * time.Minute)
			_, err := f.bookings.Create(context.Background(), BookingInput{
				RoomID: room.ID, UserID: user.ID, Start: start, End: start.Add(30 * time.Minute),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotConflict):
				conflicts++
			default:
				t.Errorf("worker %d: unexpected error %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if successes != 1 || conflicts != workers-1 {
		t.Fatalf("successes=%d conflicts=%d, want 1 and %d", successes, conflicts, workers-1)
	}
}

func TestDeleteBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.mustRoom(t, "101")
	alice := f.mustUser(t, "alice")
	bob := f.mustUser(t, "bob")

	first := f.mustBook(t, room.ID, alice.ID, at(9, 0), at(10, 0))
	second := f.mustBook(t, room.ID, alice.ID, at(11, 0), at(12, 0))

	assertKind(t, f.bookings.DeleteOwn(ctx, bob.ID, first.ID), KindNotFound)

	if err := f.bookings.DeleteOwn(ctx, alice.ID, first.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	assertKind(t, f.bookings.DeleteOwn(ctx, alice.ID, first.ID), KindNotFound)

	if err := f.bookings.DeleteAny(ctx, second.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	assertKind(t, f.bookings.DeleteAny(ctx, second.ID), KindNotFound)

	mine, err := f.bookings.ListForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 0 {
		t.Fatalf("remaining bookings: %+v", mine)
	}

	// the freed slot can be booked again
	f.mustBook(t, room.ID, bob.ID, at(9, 0), at(10, 0))
}

func TestCreateBookingForDeletedUser(t *testing.T) {
	cases := []struct {
		name string
		dsn  string
	}{
		{"default dsn", "file:deleted_user_%d?mode=memory&cache=shared"},
		// the service check must hold even where the store enforces no FKs
		{"foreign keys off", "file:deleted_user_%d?mode=memory&cache=shared&_pragma=foreign_keys(0)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixtureOn(t, openTestDB(t, fmt.Sprintf(tc.dsn, dbSeq.Add(1))))
			ctx := context.Background()
			room := f.mustRoom(t, "101")
			gone := f.mustUser(t, "gone")

			if err := f.users.Delete(ctx, f.admin(t).ID, gone.ID); err != nil {
				t.Fatalf("delete user: %v", err)
			}

			_, err := f.bookings.Create(ctx, BookingInput{RoomID: room.ID, UserID: gone.ID, Start: at(10, 0), End: at(11, 0)})
			notFound := assertKind(t, err, KindNotFound)
			if notFound.Message != "user not found" {
				t.Fatalf("message = %q, want user not found", notFound.Message)
			}

			var orphans int64
			if err := f.db.Model(&models.Booking{}).Where("user_id = ?", gone.ID).Count(&orphans).Error; err != nil {
				t.Fatalf("count: %v", err)
			}
			if orphans != 0 {
				t.Fatalf("stored %d bookings for a deleted user", orphans)
			}
		})
	}
}
