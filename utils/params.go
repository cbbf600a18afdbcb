package utils

import (
	"strconv"
	"strings"
	"time"

	"room-booking/services"

	"github.com/gin-gonic/gin"
)

const DateLayout = "2006-01-02"

// naive layouts are read in the server's local zone
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParamID reads a positive integer path parameter.
func ParamID(c *gin.Context, name string) (uint, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, services.InvalidInput("invalid " + name)
	}
	return uint(id), nil
}

// ParseDate parses YYYY-MM-DD as a local calendar date.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, services.InvalidInput("date must be formatted as YYYY-MM-DD")
	}
	return t, nil
}

// RequiredDateQuery reads a mandatory date query parameter.
func RequiredDateQuery(c *gin.Context, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, services.MissingFields(name + " is required")
	}
	return ParseDate(raw)
}

// OptionalDateQuery reads a date query parameter; absent means nil.
func OptionalDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	t, err := ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// OptionalIDQuery reads a positive integer query parameter; absent means nil.
func OptionalIDQuery(c *gin.Context, name string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, services.InvalidInput("invalid " + name)
	}
	v := uint(id)
	return &v, nil
}

// ParseInstant accepts RFC 3339 or a naive local date-time. The value keeps
// the zone it was written in.
func ParseInstant(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, services.InvalidInput("time must be RFC 3339 or YYYY-MM-DDTHH:MM[:SS]")
}
