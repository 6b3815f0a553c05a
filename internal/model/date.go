package model

import (
	"errors"
	"time"
)

// DateLayout is the calendar-day key used by stock, orders and daily revenue.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")

// DateKey returns the business day of t in loc.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// NormalizeDate validates a YYYY-MM-DD string and returns it in canonical form.
func NormalizeDate(s string) (string, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", ErrInvalidDate
	}
	return d.Format(DateLayout), nil
}
