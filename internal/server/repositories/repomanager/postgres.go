package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mzaikin/rosterd/internal/server/migrations"
	"github.com/mzaikin/rosterd/internal/server/registry"
	"github.com/mzaikin/rosterd/internal/server/repositories/roster"
)

type PostgresRepositoryManager struct {
	db       *sql.DB
	roster   roster.Repository
	registry registry.Registry
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Roster() roster.Repository {
	return m.roster
}

func (m *PostgresRepositoryManager) Registry() registry.Registry {
	return m.registry
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:       db,
		roster:   roster.NewPostgresRepository(db),
		registry: registry.NewPostgres(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
