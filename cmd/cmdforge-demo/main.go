package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/cmdforge/cmdforge/argsource"
	"github.com/cmdforge/cmdforge/builder"
	"github.com/cmdforge/cmdforge/cmd/cmdforge-demo/browser"
	"github.com/cmdforge/cmdforge/dispatch"
	"github.com/cmdforge/cmdforge/internal/hostconfig"
	"github.com/cmdforge/cmdforge/internal/scope"
	"github.com/cmdforge/cmdforge/internal/ui/pager"
	"github.com/cmdforge/cmdforge/pipeline"
)

// nameComparer reads the "name_comparer" host-config key (spec.md §6
// Options "name_comparer") and resolves it to an argsource.Comparer.
// Unlike remainder_separator, this setting is fixed once at startup
// rather than threaded per Execute call — see DESIGN.md.
func nameComparer() argsource.Comparer {
	v, _ := hostconfig.Get("name_comparer")
	if v == "ordinal" {
		return argsource.Ordinal
	}
	return argsource.OrdinalIgnoreCase
}

// main wires a Builder, registers the demo commands, and dispatches a
// single invocation from os.Args — the same shape as
// footprint-tools-cli/cmd/fp/main.go's flag/command split, generalized
// from a fixed footprint command tree to whatever registerDemoCommands
// declares.
func main() {
	flags := pflag.NewFlagSet("cmdforge-demo", pflag.ContinueOnError)
	noColor := flags.Bool("no-color", false, "disable styled output")
	noPager := flags.Bool("no-pager", false, "disable paging long output")
	pagerOverride := flags.String("pager", "", "override the pager command")
	interactive := flags.Bool("interactive", false, "launch the interactive catalog browser")
	caller := flags.String("as", "guest", "caller identity presented to conditions")
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	enableColor := term.IsTerminal(int(os.Stdout.Fd())) && !*noColor

	sc, err := scope.New(scope.Options{
		LogEnabled:    true,
		StyleEnabled:  enableColor,
		PagerDisabled: *noPager,
		PagerOverride: *pagerOverride,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer sc.Close()

	b := builder.New(nameComparer())
	registerPrimitiveParsers(b)
	if err := registerDemoCommands(b); err != nil {
		fmt.Fprintln(os.Stderr, "registration failed:", err)
		os.Exit(1)
	}

	remainderSeparator, _ := hostconfig.Get("remainder_separator")

	ctx := context.Background()
	manager := dispatch.New(b, dispatch.Options{
		Options: pipeline.Options{
			RemainderSeparator: remainderSeparator,
		},
		Handlers: []dispatch.ResultHandler{dispatch.DefaultHandler(ctx)},
	})

	if *interactive {
		if err := browser.Run(b.Catalog()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	tokens := flags.Args()
	if len(tokens) == 0 {
		pager.Show(dispatch.RenderHelp(b.Catalog().Root()))
		return
	}

	result := manager.Execute(ctx, &cliCaller{name: *caller}, toAnyArgs(tokens), sc)
	if result.Err != nil {
		os.Exit(1)
	}
}

func toAnyArgs(tokens []string) []any {
	out := make([]any, len(tokens))
	for i, t := range tokens {
		out[i] = t
	}
	return out
}

// cliCaller is the host.Caller for a single command-line invocation: the
// identity is whatever --as presented, and replies go straight to stdout
// through pager.Println, without paging.
type cliCaller struct {
	name string
}

func (c *cliCaller) Identifier() string { return c.name }

func (c *cliCaller) Respond(_ context.Context, payload any) error {
	pager.Println(payload)
	return nil
}
