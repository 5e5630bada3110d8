package builder

import "fmt"

// Kind categorizes a BuildError the way footprint-tools-cli's
// internal/usage.Error tags user-facing errors by kind rather than by bare
// string.
type Kind int

const (
	KindUnknown Kind = iota
	KindDuplicateAlias
	KindInvalidShape
	KindUnsupportedType
	KindMissingInvoker
	KindCatalogFrozen
)

// BuildError is the structured registration-time error spec.md §7 calls
// out as the single variant outside the pipeline's Result union.
type BuildError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BuildError) Unwrap() error { return e.Cause }

func wrap(kind Kind, message string, cause error) *BuildError {
	return &BuildError{Kind: kind, Message: message, Cause: cause}
}
