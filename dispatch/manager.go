// Package dispatch is the root Manager / Execute API described in
// spec.md §9: it freezes a builder.Builder's Catalog on first use (the
// Parser Registry is not frozen), runs the pipeline for each call, and
// delivers the
// resulting Result to a chain of ResultHandlers.
package dispatch

import (
	"context"

	"github.com/cmdforge/cmdforge/argsource"
	"github.com/cmdforge/cmdforge/builder"
	"github.com/cmdforge/cmdforge/catalog"
	"github.com/cmdforge/cmdforge/host"
	"github.com/cmdforge/cmdforge/pipeline"
)

// Mode selects how Execute delivers its result (spec.md §5 "Modes").
type Mode int

const (
	// Await blocks the caller until the Result Handler chain returns.
	Await Mode = iota
	// Discard spawns the pipeline on a goroutine and returns immediately;
	// result delivery still occurs once it completes.
	Discard
)

// Manager is the frozen, read-only view of a Builder's Catalog (whose
// parameters already hold their resolved parsers), plus the configured
// Result Handler chain (spec.md §4.7).
// Manager is safe for concurrent use once built — spec.md §5 "The Catalog
// and Parser Registry are read-only after startup and safely shared
// across invocations without locking."
type Manager struct {
	catalog  *catalog.Catalog
	comparer argsource.Comparer
	handlers []ResultHandler
	opts     pipeline.Options
}

// Options configures a Manager at construction.
type Options struct {
	pipeline.Options
	Handlers []ResultHandler
}

// New builds a Manager from a Builder's current Catalog. The Builder
// should not be used to register further commands after this call —
// Manager freezes the Catalog on the first Execute* call regardless, per
// spec.md §5 option (a), but sharing a Builder across goroutines after
// New is not supported.
func New(b *builder.Builder, opts Options) *Manager {
	return &Manager{
		catalog:  b.Catalog(),
		comparer: b.Catalog().Comparer(),
		handlers: opts.Handlers,
		opts:     opts.Options,
	}
}

// freeze flips the Catalog's frozen flag on first call, so that
// registration and execution genuinely cannot overlap (spec.md §5):
// once frozen, Catalog.Register rejects every further call, whether it
// comes through this Manager's Builder or a reference some other caller
// kept. Idempotent.
func (m *Manager) freeze() { m.catalog.Freeze() }

// Frozen reports whether this Manager's Catalog has served at least one
// Execute* call.
func (m *Manager) Frozen() bool { return m.catalog.Frozen() }

// Execute runs the pipeline over a positional argument sequence.
func (m *Manager) Execute(ctx context.Context, caller host.Caller, args []any, services host.Services) pipeline.Result {
	return m.run(ctx, caller, argsource.New(args, m.comparer), services, Await)
}

// ExecuteNamed runs the pipeline over a key/value argument sequence.
func (m *Manager) ExecuteNamed(ctx context.Context, caller host.Caller, pairs []argsource.KV, services host.Services) pipeline.Result {
	return m.run(ctx, caller, argsource.NewFromPairs(pairs, m.comparer), services, Await)
}

// ExecuteString runs the pipeline over a pre-tokenized string.
func (m *Manager) ExecuteString(ctx context.Context, caller host.Caller, tokens []string, services host.Services) pipeline.Result {
	return m.run(ctx, caller, argsource.NewFromTokens(tokens, m.comparer), services, Await)
}

// ExecuteStringAsync runs ExecuteString in Discard mode: the call returns
// immediately on a background goroutine and the eventual Result still
// reaches the handler chain (spec.md §5 "Discard... the caller returns
// immediately; result delivery still occurs").
func (m *Manager) ExecuteStringAsync(ctx context.Context, caller host.Caller, tokens []string, services host.Services) {
	go m.run(ctx, caller, argsource.NewFromTokens(tokens, m.comparer), services, Discard)
}

func (m *Manager) run(ctx context.Context, caller host.Caller, src *argsource.Source, services host.Services, mode Mode) pipeline.Result {
	m.freeze()
	result := pipeline.Run(ctx, caller, m.catalog, src, services, m.opts)
	m.deliver(caller, result, services)
	return result
}

// deliver walks the handler chain in registration order; the first
// handler that returns true terminates the chain (spec.md §4.7 "the
// first that accepts a result terminates the chain").
func (m *Manager) deliver(caller host.Caller, result pipeline.Result, services host.Services) {
	for _, h := range m.handlers {
		if h(caller, result, services) {
			return
		}
	}
}
