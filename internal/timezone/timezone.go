package timezone

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

const (
	DefaultTimezone = "Asia/Shanghai"
	DateLayout      = "2006-01-02"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to the default clinic zone and then
// to UTC when the zone database is unavailable.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Clock interprets calendar dates in the clinic's zone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(tz string) Clock {
	return Clock{loc: Location(tz), now: time.Now}
}

// WithNow returns a copy of c that reads the current time from now.
func (c Clock) WithNow(now func() time.Time) Clock {
	c.now = now
	return c
}

func (c Clock) Location() *time.Location {
	return c.loc
}

func (c Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Parse accepts a calendar date (midnight in the clinic zone) or an RFC3339
// timestamp.
func (c Clock) Parse(v string) (time.Time, bool, error) {
	v = strings.TrimSpace(v)
	if t, err := time.ParseInLocation(DateLayout, v, c.loc); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, false, nil
	}
	return time.Time{}, false, httperr.ErrBusiness("invalid_date")
}

// Range returns the half-open interval [start, end) for query values. A bare
// end date covers that whole day.
func (c Clock) Range(startRaw, endRaw string) (time.Time, time.Time, error) {
	if startRaw == "" || endRaw == "" {
		return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_date_range")
	}

	start, _, err := c.Parse(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, dateOnly, err := c.Parse(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if dateOnly {
		end = end.AddDate(0, 0, 1)
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_date_range")
	}
	return start, end, nil
}
