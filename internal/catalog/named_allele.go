package catalog

import (
	"sort"
	"strings"

	"github.com/msilver727/pharmcat/internal/errs"
	"github.com/msilver727/pharmcat/internal/iupac"
)

// Unspecified is the allele-code sentinel meaning "this position is
// irrelevant to this named allele".
const Unspecified = ""

// NamedAllele is a named allele definition for a single gene: an allele
// code vector aligned 1:1 with the gene's ordered VariantLocus list, plus
// the bookkeeping fields spec.md §3 requires.
//
// A NamedAllele is uninitialized until Initialize binds it to a gene's
// locus vector. Initialize is idempotent and deterministic: calling it
// twice against the same vector reproduces identical literalSets,
// MissingPositions and Score (the round-trip testable property).
type NamedAllele struct {
	ID              string
	Name            string
	Gene            string
	AlleleCodes     []string // len == len(gene locus vector); "" = unspecified
	Reference       bool
	NumCombinations int
	NumPartials     int

	Score            int
	MissingPositions map[int]bool // indices into AlleleCodes that are unspecified

	literalSets [][]string // per position: nil (unspecified) or expanded literal set
	initialized bool
}

// Initialized reports whether Initialize has been called successfully.
func (n *NamedAllele) Initialized() bool { return n.initialized }

// Initialize binds the allele to loci, expanding IUPAC ambiguity codes,
// recording missing (unspecified) positions and computing the base score
// (count of specified positions). scoreOverride, when non-nil, forces the
// score instead (used for off-reference partials, which always score 0).
func (n *NamedAllele) Initialize(loci []*VariantLocus, scoreOverride *int) error {
	if len(n.AlleleCodes) != len(loci) {
		return errs.MalformedCatalog(n.Gene, "named allele %q has %d codes but gene has %d loci", n.Name, len(n.AlleleCodes), len(loci))
	}

	literalSets := make([][]string, len(n.AlleleCodes))
	missing := make(map[int]bool)
	specified := 0

	for i, code := range n.AlleleCodes {
		if code == Unspecified {
			missing[i] = true
			continue
		}
		specified++
		literalSets[i] = iupac.Sorted(iupac.Expand(code))
	}

	n.literalSets = literalSets
	n.MissingPositions = missing
	if scoreOverride != nil {
		n.Score = *scoreOverride
	} else {
		n.Score = specified
	}
	n.initialized = true
	return nil
}

// LiteralsAt returns the expanded literal set for position i, or nil if the
// allele does not specify that position.
func (n *NamedAllele) LiteralsAt(i int) []string {
	if i < 0 || i >= len(n.literalSets) {
		return nil
	}
	return n.literalSets[i]
}

// IsSpecifiedAt reports whether the allele constrains position i.
func (n *NamedAllele) IsSpecifiedAt(i int) bool {
	return !n.MissingPositions[i]
}

// NumPositions returns the length of the bound locus vector.
func (n *NamedAllele) NumPositions() int { return len(n.AlleleCodes) }

// Permutations materializes the full set of literal haploid sequences this
// allele's specified positions admit, as canonical join keys (unit
// separator between positions, skipping unspecified positions). It is used
// for the round-trip testable property and diagnostics; the Core Matcher
// itself compares positionally against literalSets rather than against
// this materialized set, to avoid a second combinatorial expansion.
func (n *NamedAllele) Permutations() []string {
	var positions []int
	for i := range n.AlleleCodes {
		if !n.MissingPositions[i] {
			positions = append(positions, i)
		}
	}

	perms := []string{""}
	for _, pos := range positions {
		lits := n.literalSets[pos]
		next := make([]string, 0, len(perms)*len(lits))
		for _, p := range perms {
			for _, lit := range lits {
				if p == "" {
					next = append(next, lit)
				} else {
					next = append(next, p+"\x1f"+lit)
				}
			}
		}
		perms = next
	}

	sort.Strings(perms)
	return perms
}

// String renders a compact "id:name" label for logs.
func (n *NamedAllele) String() string {
	var b strings.Builder
	b.WriteString(n.ID)
	if n.Name != "" && n.Name != n.ID {
		b.WriteString(":")
		b.WriteString(n.Name)
	}
	return b.String()
}
