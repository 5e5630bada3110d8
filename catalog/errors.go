package catalog

import "fmt"

// DuplicateAliasError is a build-time error (spec.md §7 BuildError) raised
// when two siblings under the same Group share an alias under the
// configured comparer.
type DuplicateAliasError struct {
	Group string
	Alias string
}

func (e *DuplicateAliasError) Error() string {
	return fmt.Sprintf("catalog: duplicate alias %q under group %q", e.Alias, e.Group)
}

// InvalidCommandShapeError is a build-time error raised when a Command
// violates one of spec.md §3's shape invariants.
type InvalidCommandShapeError struct {
	Command string
	Reason  string
}

func (e *InvalidCommandShapeError) Error() string {
	return fmt.Sprintf("catalog: invalid command %q: %s", e.Command, e.Reason)
}

// FrozenCatalogError is raised by Register once the Catalog has frozen
// (spec.md §5: "registration and execution must not overlap"). Once a
// Manager has served its first Execute* call the Catalog never accepts
// another registration, by any caller.
type FrozenCatalogError struct {
	Node string
}

func (e *FrozenCatalogError) Error() string {
	return fmt.Sprintf("catalog: cannot register %q: catalog is frozen", e.Node)
}
