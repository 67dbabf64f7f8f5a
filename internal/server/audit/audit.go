// Package audit records who changed the roster, when, and how. Every
// committed Assign/Unassign emits exactly one event; recording failures are
// surfaced to the caller's logger but never fail the mutation.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mzaikin/rosterd/internal/logging"
	"github.com/mzaikin/rosterd/internal/server/models"
)

type Action string

const (
	ActionAssign   Action = "assign"
	ActionUnassign Action = "unassign"
)

type Event struct {
	ID         string    `json:"id"`
	Action     Action    `json:"action"`
	EntryID    string    `json:"entry_id"`
	EmployeeID string    `json:"employee_id"`
	MachineID  string    `json:"machine_id"`
	ShiftID    string    `json:"shift_id"`
	Date       string    `json:"date"`
	Actor      string    `json:"actor,omitempty"`
	At         time.Time `json:"at"`
}

// NewEvent builds an event for a committed mutation. Actor is the
// authenticated subject, empty when the API runs open.
func NewEvent(action Action, entry *models.RosterEntry, actor string) Event {
	return Event{
		ID:         uuid.NewString(),
		Action:     action,
		EntryID:    entry.ID,
		EmployeeID: entry.EmployeeID,
		MachineID:  entry.MachineID,
		ShiftID:    entry.ShiftID,
		Date:       models.FormatDate(entry.Date),
		Actor:      actor,
		At:         time.Now().UTC(),
	}
}

// Sink receives audit events.
type Sink interface {
	Record(ctx context.Context, event Event) error
}

// LogSink writes events to the structured log.
type LogSink struct {
	logger logging.Logger
}

func NewLogSink(l logging.Logger) *LogSink {
	return &LogSink{logger: l.With("module", "audit")}
}

func (s *LogSink) Record(ctx context.Context, event Event) error {
	s.logger.Info(ctx, "roster mutation",
		"event_id", event.ID,
		"action", string(event.Action),
		"entry_id", event.EntryID,
		"employee_id", event.EmployeeID,
		"machine_id", event.MachineID,
		"shift_id", event.ShiftID,
		"date", event.Date,
		"actor", event.Actor,
	)
	return nil
}

// MultiSink fans one event out to several sinks, returning the first error.
type MultiSink []Sink

func (m MultiSink) Record(ctx context.Context, event Event) error {
	var firstErr error
	for _, s := range m {
		if err := s.Record(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
