package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date format, expected DD/MM")

var dateTokenPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

// Weekday names indexed by time.Weekday, all lowercase. Configured
// working-day sets are matched against these case-insensitively.
var weekdayNames = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// ParseDateToken splits a DD/MM token and checks it names a real calendar
// day in the given year
func ParseDateToken(date string, year int) (day, month int, err error) {
	if !dateTokenPattern.MatchString(date) {
		return 0, 0, ErrInvalidDate
	}

	parts := strings.Split(date, "/")
	day, _ = strconv.Atoi(parts[0])
	month, _ = strconv.Atoi(parts[1])

	if month < 1 || month > 12 || day < 1 {
		return 0, 0, ErrInvalidDate
	}

	// time.Date normalizes overflow (31/04 becomes 01/05), so round-trip
	// to catch days past the end of the month
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if int(d.Month()) != month || d.Day() != day {
		return 0, 0, ErrInvalidDate
	}

	return day, month, nil
}

// WeekdayOf resolves a DD/MM token against the given reference year. The
// same token can resolve to a different weekday in a different year, which
// is intrinsic to the year-less date model; callers decide the year.
func WeekdayOf(date string, year int) (string, error) {
	day, month, err := ParseDateToken(date, year)
	if err != nil {
		return "", err
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return weekdayNames[d.Weekday()], nil
}

// IsWorkingDay reports whether the date's weekday appears in workingDays,
// comparing names case-insensitively
func IsWorkingDay(date string, workingDays []string, year int) (bool, error) {
	weekday, err := WeekdayOf(date, year)
	if err != nil {
		return false, err
	}

	for _, day := range workingDays {
		if strings.EqualFold(day, weekday) {
			return true, nil
		}
	}
	return false, nil
}

// ToStoreKey converts a DD/MM token to the sortable MM-DD key used as a
// hierarchical path segment
func ToStoreKey(date string) (string, error) {
	if !dateTokenPattern.MatchString(date) {
		return "", ErrInvalidDate
	}
	parts := strings.Split(date, "/")
	return fmt.Sprintf("%s-%s", parts[1], parts[0]), nil
}

// FromStoreKey converts an MM-DD key back to the DD/MM display token
func FromStoreKey(key string) (string, error) {
	parts := strings.Split(key, "-")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return "", ErrInvalidDate
	}
	return fmt.Sprintf("%s/%s", parts[1], parts[0]), nil
}
