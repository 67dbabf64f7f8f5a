// Package services implements the roster engine's mutation and query
// surfaces on top of the store and the identity registry.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mzaikin/rosterd/internal/common"
	"github.com/mzaikin/rosterd/internal/logging"
	"github.com/mzaikin/rosterd/internal/server/audit"
	"github.com/mzaikin/rosterd/internal/server/auth"
	"github.com/mzaikin/rosterd/internal/server/models"
	"github.com/mzaikin/rosterd/internal/server/registry"
	"github.com/mzaikin/rosterd/internal/server/repositories/roster"
)

// AssignRequest is the typed form of one slot assignment. Dates are parsed
// at the transport boundary; nothing stringly-typed gets this far.
type AssignRequest struct {
	EmployeeID string
	MachineID  string
	ShiftID    string
	Date       time.Time
	Notes      string
}

// AssignmentService is the sole mutation surface over the roster store.
// A single mutex spans the conflict check and the write, so two concurrent
// Assign calls cannot both pass the checks and commit.
type AssignmentService struct {
	mu       sync.Mutex
	repo     roster.Repository
	registry registry.Registry
	checker  *ConflictChecker
	audit    audit.Sink
	logger   logging.Logger
}

func NewAssignmentService(repo roster.Repository, reg registry.Registry, sink audit.Sink, logger logging.Logger) *AssignmentService {
	return &AssignmentService{
		repo:     repo,
		registry: reg,
		checker:  NewConflictChecker(repo, reg),
		audit:    sink,
		logger:   logger.With("module", "assignment"),
	}
}

// Assign validates the referenced records, runs the conflict checks and
// commits a new entry. On any failure the store is unchanged.
//
// Errors: *common.ReferenceError (wrapping ErrInactiveOrUnknownReference),
// common.ErrSlotOccupied, *common.DoubleBookedError (wrapping
// ErrEmployeeDoubleBooked).
func (s *AssignmentService) Assign(ctx context.Context, req AssignRequest) (*models.RosterEntry, error) {
	req.Date = models.NormalizeDate(req.Date)

	if err := s.validateReferences(ctx, req); err != nil {
		return nil, err
	}

	window, err := s.registry.ShiftWindow(ctx, req.ShiftID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, &common.ReferenceError{Kind: string(models.RefShift), ID: req.ShiftID}
		}
		return nil, fmt.Errorf("resolve shift window: %w", err)
	}

	entry, err := s.commit(ctx, req, window)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, audit.ActionAssign, entry)
	return entry, nil
}

// commit holds the write lock for the check-then-insert pair and nothing
// else; the audit sink runs after the lock is released.
func (s *AssignmentService) commit(ctx context.Context, req AssignRequest, window models.ShiftWindow) (*models.RosterEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checker.Check(ctx, req, window); err != nil {
		return nil, err
	}

	entry := &models.RosterEntry{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		MachineID:  req.MachineID,
		ShiftID:    req.ShiftID,
		Date:       req.Date,
		Notes:      req.Notes,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Unassign removes an entry by id. Returns common.ErrNotFound when the
// entry is already gone (e.g. a concurrent unassign).
func (s *AssignmentService) Unassign(ctx context.Context, id string) (*models.RosterEntry, error) {
	s.mu.Lock()
	entry, err := s.repo.Remove(ctx, id)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, audit.ActionUnassign, entry)
	return entry, nil
}

func (s *AssignmentService) validateReferences(ctx context.Context, req AssignRequest) error {
	refs := []struct {
		kind models.RefKind
		id   string
	}{
		{models.RefEmployee, req.EmployeeID},
		{models.RefMachine, req.MachineID},
		{models.RefShift, req.ShiftID},
	}

	for _, ref := range refs {
		active, err := s.registry.IsActive(ctx, ref.kind, ref.id)
		if err != nil {
			return fmt.Errorf("registry lookup for %s %s: %w", ref.kind, ref.id, err)
		}
		if !active {
			return &common.ReferenceError{Kind: string(ref.kind), ID: ref.id}
		}
	}
	return nil
}

// recordAudit emits the mutation's audit event. Sink failures are logged
// and swallowed: the mutation is already committed and must not be
// reported as failed.
func (s *AssignmentService) recordAudit(ctx context.Context, action audit.Action, entry *models.RosterEntry) {
	event := audit.NewEvent(action, entry, auth.SubjectFromContext(ctx))
	if err := s.audit.Record(ctx, event); err != nil {
		s.logger.Error(ctx, "audit record failed", "event_id", event.ID, "error", err.Error())
	}
}
