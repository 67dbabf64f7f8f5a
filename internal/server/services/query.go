package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mzaikin/rosterd/internal/server/models"
	"github.com/mzaikin/rosterd/internal/server/registry"
	"github.com/mzaikin/rosterd/internal/server/repositories/roster"
)

// QueryService answers read-side questions over the roster. It never
// mutates state and takes no lock: writes are invariant-checked before
// commit, so every read observes a consistent roster.
type QueryService struct {
	repo     roster.Repository
	registry registry.Registry
}

func NewQueryService(repo roster.Repository, reg registry.Registry) *QueryService {
	return &QueryService{repo: repo, registry: reg}
}

// Range returns all entries with start <= date <= end, ordered by
// (date, shift, machine).
func (q *QueryService) Range(ctx context.Context, start, end time.Time) ([]*models.RosterEntry, error) {
	return q.repo.FindInRange(ctx, models.NormalizeDate(start), models.NormalizeDate(end))
}

// ScheduleForEmployee returns one employee's entries in the range.
func (q *QueryService) ScheduleForEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]*models.RosterEntry, error) {
	entries, err := q.Range(ctx, start, end)
	if err != nil {
		return nil, err
	}
	var result []*models.RosterEntry
	for _, e := range entries {
		if e.EmployeeID == employeeID {
			result = append(result, e)
		}
	}
	return result, nil
}

// WeeklyGrid returns the 7-day grid starting at weekStart: one cell per
// (date, active shift, active machine), each paired with its entry or nil.
// No week-start convention is imposed; the caller picks the start date.
func (q *QueryService) WeeklyGrid(ctx context.Context, weekStart time.Time) (*models.WeekGrid, error) {
	const days = 7
	weekStart = models.NormalizeDate(weekStart)
	weekEnd := weekStart.AddDate(0, 0, days-1)

	machines, shifts, err := q.activeSets(ctx)
	if err != nil {
		return nil, err
	}

	occupied, err := q.occupiedIndex(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	grid := &models.WeekGrid{WeekStart: weekStart, Days: days}
	for day := 0; day < days; day++ {
		date := weekStart.AddDate(0, 0, day)
		for _, shiftID := range shifts {
			for _, machineID := range machines {
				slot := models.Slot{Date: date, ShiftID: shiftID, MachineID: machineID}
				grid.Cells = append(grid.Cells, models.GridCell{
					Slot:  slot,
					Entry: occupied[slotIndexKey(slot)],
				})
			}
		}
	}
	return grid, nil
}

// UnassignedSlots lists the open slots in the range: the cartesian product
// of machines × shifts × dates, minus occupied slots. Empty machine or
// shift sets default to all active records.
func (q *QueryService) UnassignedSlots(ctx context.Context, start, end time.Time, machineIDs, shiftIDs []string) ([]models.Slot, error) {
	start, end = models.NormalizeDate(start), models.NormalizeDate(end)

	if len(machineIDs) == 0 || len(shiftIDs) == 0 {
		machines, shifts, err := q.activeSets(ctx)
		if err != nil {
			return nil, err
		}
		if len(machineIDs) == 0 {
			machineIDs = machines
		}
		if len(shiftIDs) == 0 {
			shiftIDs = shifts
		}
	}

	occupied, err := q.occupiedIndex(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var open []models.Slot
	for day := 0; day < models.DaysBetween(start, end); day++ {
		date := start.AddDate(0, 0, day)
		for _, shiftID := range shiftIDs {
			for _, machineID := range machineIDs {
				slot := models.Slot{Date: date, ShiftID: shiftID, MachineID: machineID}
				if occupied[slotIndexKey(slot)] == nil {
					open = append(open, slot)
				}
			}
		}
	}
	return open, nil
}

// UtilizationStats summarizes slot usage:
// total = active machines × active shifts × days in range.
func (q *QueryService) UtilizationStats(ctx context.Context, start, end time.Time) (*models.UtilizationStats, error) {
	machines, shifts, err := q.activeSets(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := q.Range(ctx, start, end)
	if err != nil {
		return nil, err
	}

	stats := &models.UtilizationStats{
		TotalSlots:    len(machines) * len(shifts) * models.DaysBetween(start, end),
		AssignedSlots: len(entries),
	}
	if stats.TotalSlots > 0 {
		stats.AssignmentRate = float64(stats.AssignedSlots) / float64(stats.TotalSlots)
	}
	return stats, nil
}

func (q *QueryService) activeSets(ctx context.Context) (machines, shifts []string, err error) {
	machines, err = q.registry.ActiveIDs(ctx, models.RefMachine)
	if err != nil {
		return nil, nil, fmt.Errorf("list machines: %w", err)
	}
	shifts, err = q.registry.ActiveIDs(ctx, models.RefShift)
	if err != nil {
		return nil, nil, fmt.Errorf("list shifts: %w", err)
	}
	return machines, shifts, nil
}

func (q *QueryService) occupiedIndex(ctx context.Context, start, end time.Time) (map[string]*models.RosterEntry, error) {
	entries, err := q.repo.FindInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	index := make(map[string]*models.RosterEntry, len(entries))
	for _, e := range entries {
		index[slotIndexKey(e.Slot())] = e
	}
	return index, nil
}

func slotIndexKey(slot models.Slot) string {
	return models.FormatDate(slot.Date) + "|" + slot.ShiftID + "|" + slot.MachineID
}
