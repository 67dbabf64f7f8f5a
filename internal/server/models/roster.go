// Package models holds the domain types owned by the roster engine.
package models

import "time"

// RefKind distinguishes the three master-data record kinds the engine
// references but does not own.
type RefKind string

const (
	RefEmployee RefKind = "employee"
	RefMachine  RefKind = "machine"
	RefShift    RefKind = "shift"
)

// Slot is the (date, shift, machine) cell a single employee may occupy.
type Slot struct {
	Date      time.Time
	ShiftID   string
	MachineID string
}

// RosterEntry is a committed assignment of one employee to one slot.
// EmployeeID, MachineID, ShiftID and Date are immutable after creation;
// moving an entry is modeled as unassign-then-assign.
type RosterEntry struct {
	ID         string
	EmployeeID string
	MachineID  string
	ShiftID    string
	Date       time.Time
	Notes      string
	CreatedAt  time.Time
}

// Slot returns the slot the entry occupies.
func (e *RosterEntry) Slot() Slot {
	return Slot{Date: e.Date, ShiftID: e.ShiftID, MachineID: e.MachineID}
}

// NormalizeDate strips the time-of-day component, anchoring the calendar
// date at UTC midnight. All dates inside the engine are normalized.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD wire date into a normalized date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(t), nil
}

// FormatDate renders a normalized date in the YYYY-MM-DD wire form.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DaysBetween returns the number of calendar days in [start, end],
// inclusive on both ends, or 0 if end precedes start.
func DaysBetween(start, end time.Time) int {
	start, end = NormalizeDate(start), NormalizeDate(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
