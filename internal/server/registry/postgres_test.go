package registry

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mzaikin/rosterd/internal/common"
	"github.com/mzaikin/rosterd/internal/server/models"
)

func newPostgresWithMock(t *testing.T) (*Postgres, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgres(db), mock, db
}

func TestPostgresIsActive(t *testing.T) {
	r, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT active FROM employees WHERE id = \$1`).
		WithArgs("7").
		WillReturnRows(sqlmock.NewRows([]string{"active"}).AddRow(true))

	active, err := r.IsActive(context.Background(), models.RefEmployee, "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !active {
		t.Fatal("want active")
	}
}

func TestPostgresIsActive_UnknownIDIsInactive(t *testing.T) {
	r, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT active FROM machines WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"active"}))

	active, err := r.IsActive(context.Background(), models.RefMachine, "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active {
		t.Fatal("unknown id must not be active")
	}
}

func TestPostgresIsActive_UnknownKind(t *testing.T) {
	r, _, db := newPostgresWithMock(t)
	defer db.Close()

	if _, err := r.IsActive(context.Background(), models.RefKind("widget"), "1"); err == nil {
		t.Fatal("want error for unknown kind")
	}
}

func TestPostgresShiftWindow(t *testing.T) {
	r, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT start_min, end_min FROM shifts WHERE id = \$1`).
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows([]string{"start_min", "end_min"}).AddRow(480, 960))

	w, err := r.ShiftWindow(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Start != 480 || w.End != 960 {
		t.Fatalf("unexpected window: %+v", w)
	}
}

func TestPostgresShiftWindow_NotFound(t *testing.T) {
	r, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT start_min, end_min FROM shifts WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"start_min", "end_min"}))

	_, err := r.ShiftWindow(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPostgresActiveIDs(t *testing.T) {
	r, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM shifts WHERE active ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("1").AddRow("2"))

	ids, err := r.ActiveIDs(context.Background(), models.RefShift)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "1" || ids[1] != "2" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}
