package roster

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mzaikin/rosterd/internal/common"
	"github.com/mzaikin/rosterd/internal/server/models"
)

type slotKey struct {
	date      string
	shiftID   string
	machineID string
}

type empDateKey struct {
	employeeID string
	date       string
}

// InMemoryRepository keeps the roster in indexed maps. Lookups by slot and
// by employee+date stay O(1); only FindInRange walks the whole set.
type InMemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*models.RosterEntry
	bySlot map[slotKey]string
	byEmp  map[empDateKey]map[string]struct{}
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:   make(map[string]*models.RosterEntry),
		bySlot: make(map[slotKey]string),
		byEmp:  make(map[empDateKey]map[string]struct{}),
	}
}

func keyForSlot(slot models.Slot) slotKey {
	return slotKey{
		date:      models.FormatDate(slot.Date),
		shiftID:   slot.ShiftID,
		machineID: slot.MachineID,
	}
}

func (r *InMemoryRepository) Insert(ctx context.Context, entry *models.RosterEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sk := keyForSlot(entry.Slot())
	if _, ok := r.bySlot[sk]; ok {
		return common.ErrSlotOccupied
	}

	stored := *entry
	r.byID[stored.ID] = &stored
	r.bySlot[sk] = stored.ID

	ek := empDateKey{employeeID: stored.EmployeeID, date: sk.date}
	if r.byEmp[ek] == nil {
		r.byEmp[ek] = make(map[string]struct{})
	}
	r.byEmp[ek][stored.ID] = struct{}{}

	return nil
}

func (r *InMemoryRepository) Remove(ctx context.Context, id string) (*models.RosterEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}

	sk := keyForSlot(entry.Slot())
	delete(r.byID, id)
	delete(r.bySlot, sk)

	ek := empDateKey{employeeID: entry.EmployeeID, date: sk.date}
	delete(r.byEmp[ek], id)
	if len(r.byEmp[ek]) == 0 {
		delete(r.byEmp, ek)
	}

	return entry, nil
}

func (r *InMemoryRepository) FindBySlot(ctx context.Context, slot models.Slot) (*models.RosterEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySlot[keyForSlot(slot)]
	if !ok {
		return nil, common.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *InMemoryRepository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]*models.RosterEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ek := empDateKey{employeeID: employeeID, date: models.FormatDate(date)}
	var result []*models.RosterEntry
	for id := range r.byEmp[ek] {
		result = append(result, r.byID[id])
	}
	sortEntries(result)
	return result, nil
}

func (r *InMemoryRepository) FindInRange(ctx context.Context, start, end time.Time) ([]*models.RosterEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	start, end = models.NormalizeDate(start), models.NormalizeDate(end)
	var result []*models.RosterEntry
	for _, entry := range r.byID {
		if entry.Date.Before(start) || entry.Date.After(end) {
			continue
		}
		result = append(result, entry)
	}
	sortEntries(result)
	return result, nil
}

// sortEntries orders by (date, shift_id, machine_id) ascending, the order
// the weekly grid expects.
func sortEntries(entries []*models.RosterEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.ShiftID != b.ShiftID {
			return a.ShiftID < b.ShiftID
		}
		return a.MachineID < b.MachineID
	})
}
