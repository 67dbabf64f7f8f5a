package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mzaikin/rosterd/internal/common"
	"github.com/mzaikin/rosterd/internal/dbx"
	"github.com/mzaikin/rosterd/internal/server/models"
)

// uniqueViolation is the Postgres error code raised by the slot index.
const uniqueViolation = "23505"

// PostgresRepository implements the roster store over Postgres. Slot
// uniqueness is backed by a unique index on (date, shift_id, machine_id),
// so a racing insert surfaces as ErrSlotOccupied even without the service
// mutex.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, entry *models.RosterEntry) error {
	query := `
		INSERT INTO roster_entries (id, employee_id, machine_id, shift_id, date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.EmployeeID, entry.MachineID, entry.ShiftID, entry.Date, entry.Notes, entry.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrSlotOccupied
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Remove(ctx context.Context, id string) (*models.RosterEntry, error) {
	var removed *models.RosterEntry

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		entry, err := findByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM roster_entries WHERE id = $1`, id); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		removed = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *PostgresRepository) FindBySlot(ctx context.Context, slot models.Slot) (*models.RosterEntry, error) {
	query := selectColumns + ` WHERE date = $1 AND shift_id = $2 AND machine_id = $3`
	row := r.db.QueryRowContext(ctx, query, slot.Date, slot.ShiftID, slot.MachineID)
	return scanEntry(row)
}

func (r *PostgresRepository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]*models.RosterEntry, error) {
	query := selectColumns + ` WHERE employee_id = $1 AND date = $2 ORDER BY shift_id, machine_id`
	return r.selectEntries(ctx, query, employeeID, date)
}

func (r *PostgresRepository) FindInRange(ctx context.Context, start, end time.Time) ([]*models.RosterEntry, error) {
	query := selectColumns + ` WHERE date BETWEEN $1 AND $2 ORDER BY date, shift_id, machine_id`
	return r.selectEntries(ctx, query, start, end)
}

const selectColumns = `SELECT id, employee_id, machine_id, shift_id, date, notes, created_at FROM roster_entries`

func findByID(ctx context.Context, q dbx.DBTX, id string) (*models.RosterEntry, error) {
	row := q.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id)
	return scanEntry(row)
}

func scanEntry(row *sql.Row) (*models.RosterEntry, error) {
	var e models.RosterEntry
	err := row.Scan(&e.ID, &e.EmployeeID, &e.MachineID, &e.ShiftID, &e.Date, &e.Notes, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	e.Date = models.NormalizeDate(e.Date)
	return &e, nil
}

func (r *PostgresRepository) selectEntries(ctx context.Context, query string, args ...any) ([]*models.RosterEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.RosterEntry
	for rows.Next() {
		var e models.RosterEntry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.MachineID, &e.ShiftID, &e.Date, &e.Notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Date = models.NormalizeDate(e.Date)
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
