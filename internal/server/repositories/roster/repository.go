// Package roster provides the roster store: persistence for the engine's
// only owned entity, the RosterEntry, with the indexed lookups the
// invariant checks need.
package roster

import (
	"context"
	"time"

	"github.com/mzaikin/rosterd/internal/server/models"
)

type Repository interface {
	// Insert adds a new entry. Returns common.ErrSlotOccupied when the
	// entry's (date, shift, machine) slot already holds one.
	Insert(ctx context.Context, entry *models.RosterEntry) error

	// Remove deletes an entry by id and returns it. Returns
	// common.ErrNotFound when no entry has that id.
	Remove(ctx context.Context, id string) (*models.RosterEntry, error)

	// FindBySlot returns the entry occupying the slot, or
	// common.ErrNotFound when the slot is free.
	FindBySlot(ctx context.Context, slot models.Slot) (*models.RosterEntry, error)

	// FindByEmployeeAndDate returns the employee's entries on the date.
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]*models.RosterEntry, error)

	// FindInRange returns entries with start <= date <= end, ordered by
	// (date, shift_id, machine_id) ascending.
	FindInRange(ctx context.Context, start, end time.Time) ([]*models.RosterEntry, error)
}
