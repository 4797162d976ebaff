package timezone

import (
	"os"
	"time"
)

// DefaultTimezone applies when a business has no (or an invalid) timezone.
// Overridable for deployments outside Peru.
var DefaultTimezone = defaultTimezone()

func defaultTimezone() string {
	if tz := os.Getenv("DEFAULT_TIMEZONE"); tz != "" {
		if _, err := time.LoadLocation(tz); err == nil {
			return tz
		}
	}
	return "America/Lima"
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
