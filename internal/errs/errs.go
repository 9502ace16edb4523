// Package errs defines the typed error kinds the matcher pipeline can raise.
// Every kind shares one small struct implementing error (Error), in the
// style of the teacher's vcf.ParseError, generalized with a Kind() accessor
// so callers can map a kind to a CLI exit code without a type switch.
package errs

import "fmt"

// Kind identifies one of the error categories from the matcher's error
// handling design.
type Kind string

const (
	KindMalformedCatalog      Kind = "MalformedCatalog"
	KindMalformedVariant      Kind = "MalformedVariant"
	KindAmbiguousLocus        Kind = "AmbiguousLocus"
	KindNoCoverage            Kind = "NoCoverage"
	KindExcessivePermutations Kind = "ExcessivePermutations"
	KindCatalogConflict       Kind = "CatalogConflict"
	KindOutsideCallCollision  Kind = "OutsideCallCollision"
)

// Error is a typed, kinded error carrying enough context (gene, position,
// message) to be both kind-comparable and human-readable.
type Error struct {
	ErrKind  Kind
	Gene     string
	Position int64 // 0 when not position-specific
	Message  string
}

func (e *Error) Error() string {
	if e.Position != 0 {
		return fmt.Sprintf("%s: gene %s position %d: %s", e.ErrKind, e.Gene, e.Position, e.Message)
	}
	if e.Gene != "" {
		return fmt.Sprintf("%s: gene %s: %s", e.ErrKind, e.Gene, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.ErrKind, e.Message)
}

// Kind returns the error's category.
func (e *Error) Kind() Kind { return e.ErrKind }

// Is supports errors.Is(err, &Error{ErrKind: K}) to test kind membership
// without caring about gene/position/message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.ErrKind == e.ErrKind
}

func newErr(kind Kind, gene string, pos int64, format string, args ...any) *Error {
	return &Error{ErrKind: kind, Gene: gene, Position: pos, Message: fmt.Sprintf(format, args...)}
}

// MalformedCatalog reports a definition invariant violation. Fatal for the
// whole run.
func MalformedCatalog(gene, format string, args ...any) *Error {
	return newErr(KindMalformedCatalog, gene, 0, format, args...)
}

// MalformedVariant reports an unparseable sample record. Fatal for the
// gene, non-fatal for the run.
func MalformedVariant(gene string, pos int64, format string, args ...any) *Error {
	return newErr(KindMalformedVariant, gene, pos, format, args...)
}

// AmbiguousLocus reports two sample records disagreeing at one position.
func AmbiguousLocus(gene string, pos int64, format string, args ...any) *Error {
	return newErr(KindAmbiguousLocus, gene, pos, format, args...)
}

// NoCoverage reports that no catalog position has sample data for a gene.
func NoCoverage(gene string) *Error {
	return newErr(KindNoCoverage, gene, 0, "no catalog position has sample data")
}

// ExcessivePermutations reports the permutation cap was exceeded.
func ExcessivePermutations(gene string, count, cap int) *Error {
	return newErr(KindExcessivePermutations, gene, 0, "%d permutations exceeds cap of %d", count, cap)
}

// CatalogConflict reports two combination components disagreeing on a
// specified literal during a merge.
func CatalogConflict(gene string, pos int64, format string, args ...any) *Error {
	return newErr(KindCatalogConflict, gene, pos, format, args...)
}

// OutsideCallCollision reports that both in-sample and outside calls cover
// the same gene. This is raised by the collaborator layer, never by the
// matcher itself.
func OutsideCallCollision(gene string) *Error {
	return newErr(KindOutsideCallCollision, gene, 0, "both in-sample and outside calls cover this gene")
}
