package models

import "time"

// GridCell pairs one (machine, shift, date) slot with its entry, or nil
// when the slot is open.
type GridCell struct {
	Slot  Slot
	Entry *RosterEntry
}

// WeekGrid is the 7-day scheduling grid the UI renders. Cells are ordered
// by (date, shift, machine) ascending so rows and columns come out
// deterministic.
type WeekGrid struct {
	WeekStart time.Time
	Days      int
	Cells     []GridCell
}

// UtilizationStats summarizes slot usage over a date range.
// TotalSlots = active machines × active shifts × days in range.
type UtilizationStats struct {
	TotalSlots     int
	AssignedSlots  int
	AssignmentRate float64
}
