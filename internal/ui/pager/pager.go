// Package pager renders long demo-host output (e.g. a full catalog
// listing) through an external pager, the same precedence chain
// footprint-tools-cli's internal/ui package uses for its own pager.
//
// SECURITY NOTE: the pager intentionally executes a command named by
// --pager or the settings file — standard behavior for CLI tools (git,
// man) and requires local configuration access to exploit.
package pager

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/cmdforge/cmdforge/internal/hostconfig"
	"golang.org/x/term"
)

var (
	disabled bool
	override string
	quiet    bool
	mu       sync.RWMutex
)

// Disable turns off paging globally (--no-pager).
func Disable() {
	mu.Lock()
	disabled = true
	mu.Unlock()
}

// SetOverride sets a per-invocation pager command (--pager=<cmd>).
func SetOverride(cmd string) {
	mu.Lock()
	override = cmd
	mu.Unlock()
}

// EnableQuiet suppresses non-essential output.
func EnableQuiet() {
	mu.Lock()
	quiet = true
	mu.Unlock()
}

// IsQuiet reports whether quiet mode is active.
func IsQuiet() bool {
	mu.RLock()
	defer mu.RUnlock()
	return quiet
}

// Printf prints to stdout unless EnableQuiet() was called.
func Printf(format string, args ...any) {
	if IsQuiet() {
		return
	}
	fmt.Printf(format, args...)
}

// Println prints a line to stdout unless EnableQuiet() was called.
func Println(args ...any) {
	if IsQuiet() {
		return
	}
	fmt.Println(args...)
}

func isBypass(cmd string) bool { return cmd == "cat" }

func isDisabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return disabled
}

func getOverride() string {
	mu.RLock()
	defer mu.RUnlock()
	return override
}

// Show displays content through a pager if appropriate, in this
// precedence order:
//  1. Disable() was called → direct output.
//  2. stdout is not a TTY → direct output.
//  3. SetOverride() → that pager, "cat" bypasses.
//  4. the "pager" host setting, when set to something other than its
//     default → that pager, "cat" bypasses.
//  5. $PAGER → that pager, "cat" bypasses.
//  6. default: "less -FRSX".
func Show(content string) {
	if isDisabled() {
		fmt.Print(content)
		return
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(content)
		return
	}

	if o := getOverride(); o != "" {
		run(o, content)
		return
	}
	// Get always yields a value for "pager" (its default at worst), so
	// only a value other than that default counts as configured here.
	if configured, ok := hostconfig.Get("pager"); ok && configured != "" && configured != hostconfig.Defaults["pager"]() {
		run(configured, content)
		return
	}
	if env := os.Getenv("PAGER"); env != "" {
		run(env, content)
		return
	}
	runParts("less", []string{"-FRSX"}, content)
}

func run(pagerCmd, content string) {
	if isBypass(pagerCmd) {
		fmt.Print(content)
		return
	}
	parts := strings.Fields(pagerCmd)
	if len(parts) == 0 {
		fmt.Print(content)
		return
	}
	runParts(parts[0], parts[1:], content)
}

func runParts(name string, args []string, content string) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Print(content)
	}
}
