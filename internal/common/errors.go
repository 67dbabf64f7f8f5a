// Package common defines shared sentinel errors used across the roster
// engine's layers. Callers should use errors.Is to match the sentinels and
// errors.As to extract the detail types.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Conflict errors returned by the assignment path.
	ErrSlotOccupied         = errors.New("slot occupied")
	ErrEmployeeDoubleBooked = errors.New("employee double booked")

	// Reference validation errors.
	ErrInactiveOrUnknownReference = errors.New("inactive or unknown reference")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)

// DoubleBookedError reports an employee-overlap conflict. It unwraps to
// ErrEmployeeDoubleBooked and names the entry the proposed assignment
// collides with, so the caller can highlight it in the grid.
type DoubleBookedError struct {
	EmployeeID         string
	ConflictingEntryID string
}

func (e *DoubleBookedError) Error() string {
	return fmt.Sprintf("employee %s double booked: conflicts with entry %s", e.EmployeeID, e.ConflictingEntryID)
}

func (e *DoubleBookedError) Unwrap() error { return ErrEmployeeDoubleBooked }

// ReferenceError reports which referenced master record failed validation.
// It unwraps to ErrInactiveOrUnknownReference.
type ReferenceError struct {
	Kind string // "employee", "machine" or "shift"
	ID   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %s is inactive or unknown", e.Kind, e.ID)
}

func (e *ReferenceError) Unwrap() error { return ErrInactiveOrUnknownReference }
