// Package scope wires up the demo host's shared dependencies: it sets the
// process-wide logger, styling and pager settings, and carries the logger
// and a styler in a single value threaded through the dispatch pipeline
// as host.Services. It is grounded on
// footprint-tools-cli/internal/app/factory.go's Options/New/Close wiring,
// generalized from a fixed set of footprint-domain collaborators (git,
// repo, store, hooks) to the handful any demo command might want.
package scope

import (
	"github.com/cmdforge/cmdforge/internal/hostconfig"
	"github.com/cmdforge/cmdforge/internal/log"
	"github.com/cmdforge/cmdforge/internal/ui/pager"
	"github.com/cmdforge/cmdforge/internal/ui/style"
)

// Options configures the Scope a New call produces.
type Options struct {
	LogEnabled    bool
	StyleEnabled  bool
	PagerDisabled bool
	PagerOverride string
}

// DefaultOptions derives Options from the host config file, the same way
// the teacher's app.DefaultOptions reads "enable_log" from its config.
func DefaultOptions() Options {
	logEnabled, _ := hostconfig.Get("enable_log")
	return Options{
		LogEnabled:   logEnabled == "true",
		StyleEnabled: true,
	}
}

// Scope is the services handle command bodies, parsers, and conditions
// receive as host.Services. Callers type-assert it back: the dispatch
// framework itself never inspects it.
type Scope struct {
	Logger *log.Logger
	Styler *style.Styler
}

// New creates a Scope with all dependencies wired up, initializing the
// process-global logger and styler as a side effect (both are singletons
// in the teacher's own packages).
func New(opts Options) (*Scope, error) {
	var logger *log.Logger
	if opts.LogEnabled {
		logPath, err := hostconfig.LogFilePath()
		if err == nil {
			if err := log.Init(logPath, log.LevelDebug); err == nil {
				logger = log.GetLogger()
			}
		}
	}

	style.Init(opts.StyleEnabled)

	if opts.PagerDisabled {
		pager.Disable()
	}
	if opts.PagerOverride != "" {
		pager.SetOverride(opts.PagerOverride)
	}

	return &Scope{
		Logger: logger,
		Styler: style.NewStyler(),
	}, nil
}

// NewForTesting creates a Scope suitable for command/pipeline tests: no
// logging, no styling, pager disabled.
func NewForTesting() *Scope {
	style.Init(false)
	pager.Disable()
	return &Scope{
		Styler: &style.Styler{},
	}
}

// Close releases Scope resources (currently just the logger's file
// handle, mirroring the teacher's app.Close).
func (s *Scope) Close() error {
	if s.Logger != nil {
		return s.Logger.Close()
	}
	return nil
}
