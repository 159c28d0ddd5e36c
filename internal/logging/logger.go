// Package logging defines the context-aware structured logger used by the
// client: the request gateway, the state controllers and the REPL.
package logging

import "context"

// Logger is a structured logger. Variadic args are key/value pairs:
//
//	log.Warn(ctx, "token refresh failed", "status", 401)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries the given pairs.
	With(args ...any) Logger
}
