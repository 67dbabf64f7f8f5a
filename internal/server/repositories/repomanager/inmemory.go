package repomanager

import (
	"context"
	"database/sql"

	"github.com/mzaikin/rosterd/internal/server/registry"
	"github.com/mzaikin/rosterd/internal/server/repositories/roster"
)

// InMemoryRepositoryManager backs the engine with process-local maps.
// The registry is exposed concretely so callers can seed master data.
type InMemoryRepositoryManager struct {
	roster   roster.Repository
	registry *registry.InMemory
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Roster() roster.Repository {
	return m.roster
}

func (m *InMemoryRepositoryManager) Registry() registry.Registry {
	return m.registry
}

// SeedableRegistry exposes the in-memory registry for seeding.
func (m *InMemoryRepositoryManager) SeedableRegistry() *registry.InMemory {
	return m.registry
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		roster:   roster.NewInMemoryRepository(),
		registry: registry.NewInMemory(),
	}
}
