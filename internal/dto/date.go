package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/GregMSThompson/finance-dashboard/internal/errs"
)

const dateLayout = "2006-01-02"

// Date accepts either a calendar date ("2024-01-31") or an RFC 3339
// timestamp and encodes back as RFC 3339.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errs.NewValidationError("dates must be strings")
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ParseDate parses a query or body date. Calendar dates are read as UTC
// midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, errs.NewValidationError("invalid date: " + s)
}

// ParseEndDate parses the upper bound of a date range. A calendar date
// covers the whole day, so it resolves to the last instant before the
// next UTC midnight; a timestamp is kept as given.
func ParseEndDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.AddDate(0, 0, 1).Add(-time.Microsecond), nil
	}
	return ParseDate(s)
}

// Ptr returns the date as a *time.Time, nil for a nil Date.
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
