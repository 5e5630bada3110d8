// Package host defines the small set of interfaces a hosting application
// implements to plug into the dispatch framework: the caller context and
// the opaque services handle it carries. Everything in this package is an
// external collaborator contract (see spec.md §6) — the framework never
// provides a concrete implementation, only consumes one.
package host

import "context"

// Caller identifies the party that triggered an execution and carries the
// sink the framework replies through. Implementations are supplied by the
// hosting application (a console REPL, a chat bot adapter, a test harness).
type Caller interface {
	// Identifier returns a stable, display-friendly name for the caller.
	Identifier() string

	// Respond delivers a message or structured payload back to the caller.
	// May itself perform I/O and therefore accepts a context for cancellation.
	Respond(ctx context.Context, payload any) error
}

// Services is the opaque dependency-resolution handle threaded through
// parsers, conditions, and command bodies. The framework never inspects
// its contents; it is defined by whatever dependency-injection container
// the host uses.
type Services any
