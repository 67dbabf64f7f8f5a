package registry

import (
	"context"
	"sort"
	"sync"

	"github.com/mzaikin/rosterd/internal/common"
	"github.com/mzaikin/rosterd/internal/server/models"
)

type shiftRecord struct {
	window models.ShiftWindow
	active bool
}

// InMemory is a seedable registry used by tests and embedded deployments.
type InMemory struct {
	mu        sync.RWMutex
	employees map[string]bool
	machines  map[string]bool
	shifts    map[string]shiftRecord
}

func NewInMemory() *InMemory {
	return &InMemory{
		employees: make(map[string]bool),
		machines:  make(map[string]bool),
		shifts:    make(map[string]shiftRecord),
	}
}

func (r *InMemory) SeedEmployee(id string, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[id] = active
}

func (r *InMemory) SeedMachine(id string, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.machines[id] = active
}

func (r *InMemory) SeedShift(id string, window models.ShiftWindow, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shifts[id] = shiftRecord{window: window, active: active}
}

func (r *InMemory) IsActive(ctx context.Context, kind models.RefKind, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	switch kind {
	case models.RefEmployee:
		return r.employees[id], nil
	case models.RefMachine:
		return r.machines[id], nil
	case models.RefShift:
		return r.shifts[id].active, nil
	}
	return false, nil
}

func (r *InMemory) ShiftWindow(ctx context.Context, shiftID string) (models.ShiftWindow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.shifts[shiftID]
	if !ok {
		return models.ShiftWindow{}, common.ErrNotFound
	}
	return rec.window, nil
}

func (r *InMemory) ActiveIDs(ctx context.Context, kind models.RefKind) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	switch kind {
	case models.RefEmployee:
		for id, active := range r.employees {
			if active {
				ids = append(ids, id)
			}
		}
	case models.RefMachine:
		for id, active := range r.machines {
			if active {
				ids = append(ids, id)
			}
		}
	case models.RefShift:
		for id, rec := range r.shifts {
			if rec.active {
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}
