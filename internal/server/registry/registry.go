// Package registry is the engine-side client of the identity registry, the
// external owner of employee, machine and shift master data. The engine
// reads activity flags and shift windows; it never writes these records.
package registry

import (
	"context"

	"github.com/mzaikin/rosterd/internal/server/models"
)

type Registry interface {
	// IsActive reports whether the record of the given kind exists and is
	// active. Unknown ids report false, not an error.
	IsActive(ctx context.Context, kind models.RefKind, id string) (bool, error)

	// ShiftWindow resolves a shift's time-of-day window. Returns
	// common.ErrNotFound for an unknown shift.
	ShiftWindow(ctx context.Context, shiftID string) (models.ShiftWindow, error)

	// ActiveIDs lists the ids of all active records of the given kind,
	// sorted ascending.
	ActiveIDs(ctx context.Context, kind models.RefKind) ([]string, error)
}
