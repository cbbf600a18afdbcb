package services

import (
	"fmt"
	"net/http"
)

// Kind names one entry of the error taxonomy returned to API callers.
type Kind string

const (
	KindUnauthenticated     Kind = "Unauthenticated"
	KindInvalidToken        Kind = "InvalidToken"
	KindForbidden           Kind = "Forbidden"
	KindInvalidCredentials  Kind = "InvalidCredentials"
	KindMissingFields       Kind = "MissingFields"
	KindInvalidInput        Kind = "InvalidInput"
	KindInvalidInterval     Kind = "InvalidInterval"
	KindPastBooking         Kind = "PastBooking"
	KindTooShort            Kind = "TooShort"
	KindTooLong             Kind = "TooLong"
	KindCrossesDay          Kind = "CrossesDay"
	KindSlotConflict        Kind = "SlotConflict"
	KindDuplicateIdentity   Kind = "DuplicateIdentity"
	KindDuplicateRoom       Kind = "DuplicateRoom"
	KindInvalidRole         Kind = "InvalidRole"
	KindInvalidCapacity     Kind = "InvalidCapacity"
	KindInvalidSettings     Kind = "InvalidSettings"
	KindSelfDeleteForbidden Kind = "SelfDeleteForbidden"
	KindSelfDemoteForbidden Kind = "SelfDemoteForbidden"
	KindRoomInUse           Kind = "RoomInUse"
	KindNotFound            Kind = "NotFound"
	KindTooManyRequests     Kind = "TooManyRequests"
	KindInternal            Kind = "InternalError"
)

var kindStatus = map[Kind]int{
	KindUnauthenticated:     http.StatusUnauthorized,
	KindInvalidToken:        http.StatusForbidden,
	KindForbidden:           http.StatusForbidden,
	KindInvalidCredentials:  http.StatusUnauthorized,
	KindMissingFields:       http.StatusBadRequest,
	KindInvalidInput:        http.StatusBadRequest,
	KindInvalidInterval:     http.StatusBadRequest,
	KindPastBooking:         http.StatusBadRequest,
	KindTooShort:            http.StatusBadRequest,
	KindTooLong:             http.StatusBadRequest,
	KindCrossesDay:          http.StatusBadRequest,
	KindSlotConflict:        http.StatusConflict,
	KindDuplicateIdentity:   http.StatusConflict,
	KindDuplicateRoom:       http.StatusConflict,
	KindInvalidRole:         http.StatusBadRequest,
	KindInvalidCapacity:     http.StatusBadRequest,
	KindInvalidSettings:     http.StatusBadRequest,
	KindSelfDeleteForbidden: http.StatusBadRequest,
	KindSelfDemoteForbidden: http.StatusBadRequest,
	KindRoomInUse:           http.StatusBadRequest,
	KindNotFound:            http.StatusNotFound,
	KindTooManyRequests:     http.StatusTooManyRequests,
	KindInternal:            http.StatusInternalServerError,
}

// AppError is the only error type that crosses the HTTP boundary with its
// message intact. Fields carries extra, kind-specific values for the payload.
type AppError struct {
	Kind    Kind
	Message string
	Fields  map[string]any
}

func (e *AppError) Error() string { return string(e.Kind) + ": " + e.Message }

// Status is the HTTP status code for the error's kind.
func (e *AppError) Status() int {
	if s, ok := kindStatus[e.Kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Is lets errors.Is match on kind alone, e.g. errors.Is(err, ErrSlotConflict).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

var (
	ErrUnauthenticated     = newError(KindUnauthenticated, "authentication required")
	ErrInvalidToken        = newError(KindInvalidToken, "invalid or expired token")
	ErrForbidden           = newError(KindForbidden, "admin access required")
	ErrInvalidCredentials  = newError(KindInvalidCredentials, "invalid username or password")
	ErrInvalidInterval     = newError(KindInvalidInterval, "start time must be before end time")
	ErrPastBooking         = newError(KindPastBooking, "cannot create a booking in the past")
	ErrCrossesDay          = newError(KindCrossesDay, "booking must start and end on the same day")
	ErrSlotConflict        = newError(KindSlotConflict, "room is already booked for this time slot")
	ErrDuplicateIdentity   = newError(KindDuplicateIdentity, "username or email already exists")
	ErrDuplicateRoom       = newError(KindDuplicateRoom, "room number already exists")
	ErrInvalidRole         = newError(KindInvalidRole, "role must be 'user' or 'admin'")
	ErrInvalidCapacity     = newError(KindInvalidCapacity, "capacity must be between 1 and 100")
	ErrSelfDeleteForbidden = newError(KindSelfDeleteForbidden, "cannot delete your own account")
	ErrSelfDemoteForbidden = newError(KindSelfDemoteForbidden, "cannot change your own role")
	ErrTooManyRequests     = newError(KindTooManyRequests, "too many requests, try again later")
	ErrInternal            = newError(KindInternal, "internal server error")

	// Kind-only sentinels for errors.Is on errors that carry a custom message.
	ErrMissingFields   = newError(KindMissingFields, "")
	ErrInvalidInput    = newError(KindInvalidInput, "")
	ErrTooShort        = newError(KindTooShort, "")
	ErrTooLong         = newError(KindTooLong, "")
	ErrInvalidSettings = newError(KindInvalidSettings, "")
	ErrRoomInUse       = newError(KindRoomInUse, "")
	ErrNotFound        = newError(KindNotFound, "")
)

func MissingFields(msg string) *AppError { return newError(KindMissingFields, msg) }

func InvalidInput(msg string) *AppError { return newError(KindInvalidInput, msg) }

func InvalidSettings(msg string) *AppError { return newError(KindInvalidSettings, msg) }

func NotFound(what string) *AppError { return newError(KindNotFound, what+" not found") }

func TooShort(min int) *AppError {
	return &AppError{
		Kind:    KindTooShort,
		Message: fmt.Sprintf("booking must be at least %d minutes", min),
		Fields:  map[string]any{"min_duration": min},
	}
}

func TooLong(max int) *AppError {
	return &AppError{
		Kind:    KindTooLong,
		Message: fmt.Sprintf("booking cannot exceed %d minutes", max),
		Fields:  map[string]any{"max_duration": max},
	}
}

func RoomInUse(count int64) *AppError {
	return &AppError{
		Kind:    KindRoomInUse,
		Message: fmt.Sprintf("cannot delete room: %d booking(s) still reference it", count),
		Fields:  map[string]any{"booking_count": count},
	}
}
