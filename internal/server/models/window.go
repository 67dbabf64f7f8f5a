package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ShiftWindow is a shift's time-of-day window in minutes since midnight,
// half-open: the shift covers [Start, End). Overnight-wrapping windows
// (start >= end) are rejected at construction, which keeps the same-day
// overlap check sound.
type ShiftWindow struct {
	Start int
	End   int
}

var ErrInvalidWindow = errors.New("invalid shift window")

// NewShiftWindow validates and builds a window from start/end minutes.
func NewShiftWindow(start, end int) (ShiftWindow, error) {
	if start < 0 || end > 24*60 || start >= end {
		return ShiftWindow{}, fmt.Errorf("%w: start=%d end=%d", ErrInvalidWindow, start, end)
	}
	return ShiftWindow{Start: start, End: end}, nil
}

// ParseClock converts an "HH:MM" clock string to minutes since midnight.
// The whole string must be consumed; trailing text is rejected.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("bad clock value %q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("bad clock value %q: %w", s, err)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("bad clock value %q: %w", s, err)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("bad clock value %q", s)
	}
	return h*60 + m, nil
}

// ParseWindow builds a window from "HH:MM" start/end clock strings.
func ParseWindow(start, end string) (ShiftWindow, error) {
	s, err := ParseClock(start)
	if err != nil {
		return ShiftWindow{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return ShiftWindow{}, err
	}
	return NewShiftWindow(s, e)
}

// Overlaps reports whether two half-open windows intersect. Windows that
// touch exactly at a boundary (a.End == b.Start) do not overlap, which
// permits back-to-back shifts.
func (w ShiftWindow) Overlaps(other ShiftWindow) bool {
	return w.Start < other.End && other.Start < w.End
}

func (w ShiftWindow) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", w.Start/60, w.Start%60, w.End/60, w.End%60)
}
