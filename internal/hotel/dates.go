package hotel

import (
	"strings"
	"time"
)

// DateLayout is the wire format of check-in and check-out dates.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// MaxNights is the longest stay accepted for search, availability and booking.
const MaxNights = 365

// ParseDate parses a YYYY-MM-DD date, also accepting a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, Errorf(CodeInvalidDates, "invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Nights counts the nights between check-in and check-out.
// Any part of a day past a 24h boundary counts as another night.
// A stay that is empty or reversed is an INVALID_DATES error.
func Nights(checkIn, checkOut time.Time) (int, error) {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0, NewError(CodeInvalidDates, "Check-out date must be after check-in date")
	}
	n := int(d / day)
	if d%day != 0 {
		n++
	}
	return n, nil
}

// NightsBetween parses both dates and counts the nights between them.
func NightsBetween(checkIn, checkOut string) (int, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return 0, err
	}
	return Nights(in, out)
}

// Stay builds the DateRange of a validated stay of at most MaxNights.
func Stay(checkIn, checkOut string) (DateRange, error) {
	nights, err := NightsBetween(checkIn, checkOut)
	if err != nil {
		return DateRange{}, err
	}
	if nights > MaxNights {
		return DateRange{}, Errorf(CodeInvalidDates, "Stay cannot exceed %d nights", MaxNights)
	}
	return DateRange{CheckIn: checkIn, CheckOut: checkOut, Nights: nights}, nil
}
