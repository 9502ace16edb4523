// Package iupac expands single-letter IUPAC nucleotide ambiguity codes into
// their literal base sets.
package iupac

import "sort"

// codes maps each ambiguity code to the literal bases it represents.
// Plain A/C/G/T map to themselves so callers never need a special case for
// unambiguous codes.
var codes = map[string][]string{
	"A": {"A"},
	"C": {"C"},
	"G": {"G"},
	"T": {"T"},
	"R": {"A", "G"},
	"Y": {"C", "T"},
	"S": {"G", "C"},
	"W": {"A", "T"},
	"K": {"G", "T"},
	"M": {"A", "C"},
	"B": {"C", "G", "T"},
	"D": {"A", "G", "T"},
	"H": {"A", "C", "T"},
	"V": {"A", "C", "G"},
	"N": {"A", "C", "G", "T"},
}

// Expand returns the sorted set of literal bases a code represents.
// A code that is not a recognized single-letter ambiguity symbol (e.g. a
// multi-base literal allele such as an indel) expands to itself.
func Expand(code string) []string {
	if lits, ok := codes[code]; ok {
		out := make([]string, len(lits))
		copy(out, lits)
		return out
	}
	return []string{code}
}

// IsAmbiguous reports whether code denotes more than one literal base.
func IsAmbiguous(code string) bool {
	return len(Expand(code)) > 1
}

// Sorted returns a deterministically ordered copy of lits.
func Sorted(lits []string) []string {
	out := make([]string, len(lits))
	copy(out, lits)
	sort.Strings(out)
	return out
}
