// Package repomanager selects and wires the storage backend: Postgres for
// durable deployments, in-memory for tests and embedded use.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/mzaikin/rosterd/internal/server/registry"
	"github.com/mzaikin/rosterd/internal/server/repositories/roster"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Roster() roster.Repository
	Registry() registry.Registry
}
