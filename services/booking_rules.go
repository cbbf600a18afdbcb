package services

import "time"

// BookingInput is a proposed reservation. UserID comes from the verified token.
type BookingInput struct {
	RoomID uint
	UserID uint
	Start  time.Time
	End    time.Time
}

// checkRequest applies the rules that need no stored state, first failure wins:
// presence, ordering, not in the past.
func checkRequest(in BookingInput, now time.Time) error {
	if in.RoomID == 0 || in.Start.IsZero() || in.End.IsZero() {
		return MissingFields("room_id, start_time and end_time are required")
	}
	if !in.Start.Before(in.End) {
		return ErrInvalidInterval
	}
	if in.Start.Before(now) {
		return ErrPastBooking
	}
	return nil
}

// checkPolicy applies the duration bounds and the same-day rule.
func checkPolicy(start, end time.Time, limits Limits) error {
	minutes := end.Sub(start).Minutes()
	if minutes < float64(limits.Min) {
		return TooShort(limits.Min)
	}
	if minutes > float64(limits.Max) {
		return TooLong(limits.Max)
	}
	if !sameDay(start, end) {
		return ErrCrossesDay
	}
	return nil
}

// sameDay compares the date components each instant carries in its own zone.
// No zone conversion happens here.
func sameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}

// overlapPredicate matches stored bookings [start_time, end_time) that
// intersect a proposed [start, end): start_time < end AND start < end_time.
// Touching ends do not overlap. Bind as (end, start).
const overlapPredicate = "start_time < ? AND end_time > ?"

// normalizeInstant gives every stored instant the same zone and precision so
// the storage layer compares like with like.
func normalizeInstant(t time.Time) time.Time {
	return t.Truncate(time.Second).In(time.Local)
}

// dayBounds returns [midnight, next midnight) of the given date in the local zone.
func dayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 0, 1)
}
