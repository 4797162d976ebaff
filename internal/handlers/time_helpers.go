package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/macgonzales94/Felicita/internal/models"
	"github.com/macgonzales94/Felicita/internal/timezone"
)

// resolves the official timezone of the business
func locationFromBusiness(business *models.Business) *time.Location {
	if business != nil && business.Timezone != "" {
		if loc, err := time.LoadLocation(business.Timezone); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(timezone.DefaultTimezone)
	return loc
}

func parseDateInBusiness(business *models.Business, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromBusiness(business),
	)
}

// validClockRange accepts two "HH:MM" values with start strictly before end.
func validClockRange(start, end string) bool {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return false
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return false
	}
	return s.Before(e)
}

func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
