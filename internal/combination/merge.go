// Package combination implements the Combination Synthesizer: merging
// disjoint-position named alleles into CombinationMatch candidates when no
// straight haplotype match explains a sample permutation, and synthesizing
// off-reference partial alleles when nothing explains it at all.
package combination

import (
	"sort"
	"strings"

	"github.com/msilver727/pharmcat/internal/errs"
	"github.com/msilver727/pharmcat/internal/matchdata"
)

// componentSeparator joins component names/identifiers in a synthesized
// combination's display name and ID, per spec.md §4.5.
const componentSeparator = " + "

// Mergeable reports whether two haplotypes specify no common kept
// position — the precondition for combining them into one CombinationMatch.
func Mergeable(a, b *matchdata.Haplotype) bool {
	n := a.NumPositions()
	if b.NumPositions() != n {
		return false
	}
	for i := 0; i < n; i++ {
		if a.IsSpecifiedAt(i) && b.IsSpecifiedAt(i) {
			return false
		}
	}
	return true
}

// Merge synthesizes a CombinationMatch haplotype from two or more
// components whose constrained positions are pairwise disjoint. It
// recomputes the merged allele-code vector position by position, taking
// each from its unique contributor, and rejects the merge with
// CatalogConflict if any position is claimed by more than one component —
// the mergeability invariant from spec.md §4.5, which should only ever be
// violated by a malformed catalog since callers are expected to have
// already filtered to Mergeable pairs before accumulating a component set.
func Merge(gene string, components []*matchdata.Haplotype) (*matchdata.Haplotype, error) {
	if len(components) < 2 {
		panic("combination.Merge requires at least two components")
	}

	// Canonicalize component order by ID so the same set of components
	// always produces the same synthesized name and ID, regardless of the
	// order the Combination Synthesizer happened to discover them in.
	components = append([]*matchdata.Haplotype(nil), components...)
	sort.Slice(components, func(i, j int) bool { return components[i].ID < components[j].ID })

	n := components[0].NumPositions()
	literalSets := make([][]string, n)
	missing := make(map[int]bool)
	score := 0

	for i := 0; i < n; i++ {
		var owner *matchdata.Haplotype
		for _, c := range components {
			if !c.IsSpecifiedAt(i) {
				continue
			}
			if owner != nil {
				return nil, errs.CatalogConflict(gene, 0, "position %d claimed by both %s and %s during combination merge", i, owner.Name, c.Name)
			}
			owner = c
		}
		if owner == nil {
			missing[i] = true
			continue
		}
		literalSets[i] = owner.LiteralsAt(i)
	}

	for _, c := range components {
		score += c.Score
	}

	names := make([]string, len(components))
	ids := make([]string, len(components))
	for i, c := range components {
		names[i] = c.Name
		ids[i] = c.ID
	}

	merged := matchdata.NewSynthesized(
		strings.Join(ids, componentSeparator),
		strings.Join(names, componentSeparator),
		gene,
		literalSets,
		missing,
		score,
		components,
		false,
	)
	return merged, nil
}

// Compare orders CombinationMatch haplotypes by component-list
// lexicographic order, per spec.md §4.5's Comparison rule.
func Compare(a, b *matchdata.Haplotype) int {
	an := componentIDs(a)
	bn := componentIDs(b)
	for i := 0; i < len(an) && i < len(bn); i++ {
		if an[i] != bn[i] {
			if an[i] < bn[i] {
				return -1
			}
			return 1
		}
	}
	if len(an) != len(bn) {
		if len(an) < len(bn) {
			return -1
		}
		return 1
	}
	return 0
}

func componentIDs(h *matchdata.Haplotype) []string {
	if len(h.Components) == 0 {
		return []string{h.ID}
	}
	ids := make([]string, len(h.Components))
	for i, c := range h.Components {
		ids[i] = c.ID
	}
	sort.Strings(ids)
	return ids
}
