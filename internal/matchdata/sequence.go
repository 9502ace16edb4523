// Package matchdata implements the Match Data Builder: restricting a
// gene's catalog to the positions a sample actually covers, propagating
// homozygous calls, and deriving every haploid permutation the sample is
// consistent with.
package matchdata

import "strings"

// Wildcard stands in for a position whose genotype call is missing (a
// no-call at an asserted position, not a position absent from the sample
// entirely). It compares equal to any literal during matching. No real
// catalog allele code is ever literally "*".
const Wildcard = "*"

// Sequence is one concrete haploid sequence: one literal (or Wildcard) per
// kept position, in kept-position order. Represented as a slice rather
// than a single string because catalog alleles may be multi-base
// (insertions/deletions), so a one-rune-per-position encoding would be
// lossy; Key() gives the canonical, order-preserving string the spec's "one
// string per permutation" language refers to.
type Sequence struct {
	Literals []string
}

// Key returns the canonical join of the sequence's literals, usable as a
// deterministic map key and sort key.
func (s Sequence) Key() string {
	return strings.Join(s.Literals, "\x1f")
}

// At returns the literal at position i.
func (s Sequence) At(i int) string {
	return s.Literals[i]
}

// Len returns the number of kept positions in the sequence.
func (s Sequence) Len() int {
	return len(s.Literals)
}
