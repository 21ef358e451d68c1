package entity

import (
	"errors"
	"time"
)

// DateLayout is the wire format for stay dates. Only the calendar date matters;
// all values are normalized to midnight UTC.
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvertedRange   = errors.New("date range end precedes start")
	ErrIncompleteRange = errors.New("both from and to dates are required")
)

// DateRange is an inclusive [From, To] span of stay dates.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange builds a validated range from already-parsed times.
func NewDateRange(from, to time.Time) (DateRange, error) {
	from = normalize(from)
	to = normalize(to)
	if to.Before(from) {
		return DateRange{}, ErrInvertedRange
	}
	return DateRange{From: from, To: to}, nil
}

// ParseDateRange builds a validated range from wire-format date strings.
// An empty pair is not a range; supplying only one side is an error.
func ParseDateRange(fromStr, toStr string) (DateRange, error) {
	if fromStr == "" || toStr == "" {
		return DateRange{}, ErrIncompleteRange
	}
	from, err := time.Parse(DateLayout, fromStr)
	if err != nil {
		return DateRange{}, ErrInvalidDate
	}
	to, err := time.Parse(DateLayout, toStr)
	if err != nil {
		return DateRange{}, ErrInvalidDate
	}
	return NewDateRange(from, to)
}

// Contains reports whether r fully covers other, boundaries inclusive.
// A listing only qualifies for a search when the requested stay lies wholly
// within the listing's declared window.
func (r DateRange) Contains(other DateRange) bool {
	return !r.From.After(other.From) && !r.To.Before(other.To)
}

// IsZero reports whether the range was never set.
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

func normalize(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
