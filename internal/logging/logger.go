// Package logging defines the structured logger the roster server threads
// through its services, transport and audit sinks. The default backend is
// slog; the interface keeps the rest of the code backend-agnostic.
package logging

import "context"

// Logger is a context-aware, structured logger. Variadic args are key-value
// pairs:
//
//	log.Info(ctx, "request", "method", r.Method, "status", status)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)

	Warn(ctx context.Context, msg string, args ...any)

	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value
	// pairs; components use it to tag their module name.
	With(args ...any) Logger
}
