package roster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzaikin/rosterd/internal/common"
	"github.com/mzaikin/rosterd/internal/server/models"
)

func date(s string) time.Time {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func entry(id, emp, machine, shift, day string) *models.RosterEntry {
	return &models.RosterEntry{
		ID:         id,
		EmployeeID: emp,
		MachineID:  machine,
		ShiftID:    shift,
		Date:       date(day),
		CreatedAt:  time.Now().UTC(),
	}
}

func TestInMemory_InsertAndSlotUniqueness(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, entry("e1", "7", "3", "1", "2024-06-10")))

	// same slot, different employee
	err := repo.Insert(ctx, entry("e2", "9", "3", "1", "2024-06-10"))
	assert.ErrorIs(t, err, common.ErrSlotOccupied)

	// other slot is fine
	require.NoError(t, repo.Insert(ctx, entry("e3", "9", "5", "1", "2024-06-10")))
}

func TestInMemory_FindBySlot(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, entry("e1", "7", "3", "1", "2024-06-10")))

	got, err := repo.FindBySlot(ctx, models.Slot{Date: date("2024-06-10"), ShiftID: "1", MachineID: "3"})
	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)

	_, err = repo.FindBySlot(ctx, models.Slot{Date: date("2024-06-11"), ShiftID: "1", MachineID: "3"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestInMemory_RemoveRestoresIndices(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	e := entry("e1", "7", "3", "1", "2024-06-10")
	require.NoError(t, repo.Insert(ctx, e))

	removed, err := repo.Remove(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "e1", removed.ID)

	// slot and employee indices are back to the pre-insert state
	_, err = repo.FindBySlot(ctx, e.Slot())
	assert.ErrorIs(t, err, common.ErrNotFound)

	byEmp, err := repo.FindByEmployeeAndDate(ctx, "7", date("2024-06-10"))
	require.NoError(t, err)
	assert.Empty(t, byEmp)

	// the same slot can be assigned again
	require.NoError(t, repo.Insert(ctx, entry("e2", "9", "3", "1", "2024-06-10")))
}

func TestInMemory_RemoveUnknown(t *testing.T) {
	repo := NewInMemoryRepository()

	_, err := repo.Remove(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestInMemory_FindByEmployeeAndDate(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, entry("e1", "7", "3", "1", "2024-06-10")))
	require.NoError(t, repo.Insert(ctx, entry("e2", "7", "5", "3", "2024-06-10")))
	require.NoError(t, repo.Insert(ctx, entry("e3", "7", "3", "1", "2024-06-11")))
	require.NoError(t, repo.Insert(ctx, entry("e4", "9", "5", "1", "2024-06-10")))

	got, err := repo.FindByEmployeeAndDate(ctx, "7", date("2024-06-10"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, "e2", got[1].ID)
}

func TestInMemory_FindInRangeOrdering(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	// inserted out of order on purpose
	require.NoError(t, repo.Insert(ctx, entry("e1", "7", "5", "2", "2024-06-12")))
	require.NoError(t, repo.Insert(ctx, entry("e2", "9", "3", "1", "2024-06-10")))
	require.NoError(t, repo.Insert(ctx, entry("e3", "7", "5", "1", "2024-06-10")))
	require.NoError(t, repo.Insert(ctx, entry("e4", "9", "3", "2", "2024-06-10")))
	require.NoError(t, repo.Insert(ctx, entry("e5", "7", "3", "1", "2024-06-20")))

	got, err := repo.FindInRange(ctx, date("2024-06-10"), date("2024-06-16"))
	require.NoError(t, err)

	var ids []string
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	// (date, shift_id, machine_id) ascending; e5 is outside the range
	assert.Equal(t, []string{"e2", "e3", "e4", "e1"}, ids)
}
