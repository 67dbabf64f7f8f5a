package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mzaikin/rosterd/internal/common"
	"github.com/mzaikin/rosterd/internal/server/models"
	"github.com/mzaikin/rosterd/internal/server/registry"
	"github.com/mzaikin/rosterd/internal/server/repositories/roster"
)

// ConflictChecker evaluates whether a proposed assignment may become a new
// roster entry. It only reads; committing is the assignment service's job,
// which holds the write lock across check and insert.
type ConflictChecker struct {
	repo     roster.Repository
	registry registry.Registry
}

func NewConflictChecker(repo roster.Repository, reg registry.Registry) *ConflictChecker {
	return &ConflictChecker{repo: repo, registry: reg}
}

// Check runs the slot-occupancy check and the employee-overlap check for
// the proposed assignment. window is the proposed shift's resolved window.
//
// Returns common.ErrSlotOccupied, a *common.DoubleBookedError naming the
// conflicting entry, or nil when the assignment is clear.
func (c *ConflictChecker) Check(ctx context.Context, req AssignRequest, window models.ShiftWindow) error {
	slot := models.Slot{Date: req.Date, ShiftID: req.ShiftID, MachineID: req.MachineID}
	_, err := c.repo.FindBySlot(ctx, slot)
	if err == nil {
		return common.ErrSlotOccupied
	}
	if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("slot check: %w", err)
	}

	existing, err := c.repo.FindByEmployeeAndDate(ctx, req.EmployeeID, req.Date)
	if err != nil {
		return fmt.Errorf("overlap check: %w", err)
	}

	for _, entry := range existing {
		other, err := c.registry.ShiftWindow(ctx, entry.ShiftID)
		if err != nil {
			return fmt.Errorf("resolve shift %s: %w", entry.ShiftID, err)
		}
		if window.Overlaps(other) {
			return &common.DoubleBookedError{
				EmployeeID:         req.EmployeeID,
				ConflictingEntryID: entry.ID,
			}
		}
	}

	return nil
}
