package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mzaikin/rosterd/internal/common"
	"github.com/mzaikin/rosterd/internal/dbx"
	"github.com/mzaikin/rosterd/internal/server/models"
)

// Postgres reads the master tables the identity service maintains
// (employees, machines, shifts).
type Postgres struct {
	db dbx.DBTX
}

func NewPostgres(db dbx.DBTX) *Postgres {
	return &Postgres{db: db}
}

func tableFor(kind models.RefKind) (string, bool) {
	switch kind {
	case models.RefEmployee:
		return "employees", true
	case models.RefMachine:
		return "machines", true
	case models.RefShift:
		return "shifts", true
	}
	return "", false
}

func (r *Postgres) IsActive(ctx context.Context, kind models.RefKind, id string) (bool, error) {
	table, ok := tableFor(kind)
	if !ok {
		return false, fmt.Errorf("unknown reference kind: %s", kind)
	}

	var active bool
	query := fmt.Sprintf(`SELECT active FROM %s WHERE id = $1`, table)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return active, nil
}

func (r *Postgres) ShiftWindow(ctx context.Context, shiftID string) (models.ShiftWindow, error) {
	var start, end int
	query := `SELECT start_min, end_min FROM shifts WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, shiftID).Scan(&start, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ShiftWindow{}, common.ErrNotFound
	}
	if err != nil {
		return models.ShiftWindow{}, fmt.Errorf("db error: %w", err)
	}
	return models.NewShiftWindow(start, end)
}

func (r *Postgres) ActiveIDs(ctx context.Context, kind models.RefKind) ([]string, error) {
	table, ok := tableFor(kind)
	if !ok {
		return nil, fmt.Errorf("unknown reference kind: %s", kind)
	}

	query := fmt.Sprintf(`SELECT id FROM %s WHERE active ORDER BY id`, table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
