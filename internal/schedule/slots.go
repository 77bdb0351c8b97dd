package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultSlotInterval is the slot grid spacing in minutes
const DefaultSlotInterval = 30

var (
	ErrInvalidTime     = errors.New("invalid time format, expected HH:MM")
	ErrInvalidInterval = errors.New("slot interval must be positive")
)

// ParseClock parses an HH:MM string into minutes since midnight
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, ErrInvalidTime
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, ErrInvalidTime
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, ErrInvalidTime
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrInvalidTime
	}

	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as zero-padded HH:MM
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// GenerateTimeSlots returns the ordered HH:MM slots covering [start, end)
// at the given interval. A start at or past the end yields an empty set
// rather than an error.
func GenerateTimeSlots(start, end string, intervalMinutes int) ([]string, error) {
	if intervalMinutes <= 0 {
		return nil, ErrInvalidInterval
	}

	startMin, err := ParseClock(start)
	if err != nil {
		return nil, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return nil, err
	}

	slots := []string{}
	for current := startMin; current < endMin; current += intervalMinutes {
		slots = append(slots, FormatClock(current))
	}

	return slots, nil
}
