// Package matcher implements the Core Matcher: enumerating every
// HaplotypeMatch a gene's named alleles admit against a sample's
// permutations, pairing them into candidate diplotypes, and ranking the
// result by spec.md §4.4's scoring discipline.
package matcher

import (
	"sort"

	"github.com/msilver727/pharmcat/internal/matchdata"
)

// HaplotypeMatch is one named allele (possibly a synthesized combination or
// off-reference partial, supplied by internal/combination) that explains at
// least one of the sample's permutations.
type HaplotypeMatch struct {
	Haplotype *matchdata.Haplotype
	Explained []matchdata.Sequence // the sample permutations this haplotype matches
}

// Name returns the display name of the matched haplotype.
func (m HaplotypeMatch) Name() string { return m.Haplotype.Name }

// MatchHaplotypes returns one HaplotypeMatch per haplotype in md.Haplotypes
// that explains at least one sample permutation (spec.md §4.4's first
// step), in md.Haplotypes order.
func MatchHaplotypes(md *matchdata.MatchData) []HaplotypeMatch {
	var out []HaplotypeMatch
	for _, h := range md.Haplotypes {
		explained := md.Explain(h)
		if len(explained) == 0 {
			continue
		}
		out = append(out, HaplotypeMatch{Haplotype: h, Explained: explained})
	}
	return out
}

// Diplotype is an unordered (or ordered, for phased samples) pair of
// haplotype matches proposed as the explanation for both of the sample's
// chromosomes at a gene.
type Diplotype struct {
	Left  HaplotypeMatch
	Right HaplotypeMatch
	Score int
}

// Enumerate forms every pair of HaplotypeMatches whose haplotypes jointly
// reconstitute the sample's genotype calls (matchdata.Reconstitutes),
// per spec.md §4.4's diplotype enumeration rule. For phased samples, (Left,
// Right) and (Right, Left) are distinct candidates when the pair only
// reconstitutes in one order; for unphased samples a pair is emitted once
// regardless of which order reconstitutes.
func Enumerate(md *matchdata.MatchData) []Diplotype {
	return enumerateFrom(md, MatchHaplotypes(md))
}

// EnumerateWithCombinations runs the same pairing and ranking as Enumerate,
// but also considers synthesized combination and off-reference-partial
// haplotypes supplied by internal/combination alongside the gene's plain
// catalog alleles.
func EnumerateWithCombinations(md *matchdata.MatchData, synthesized []*matchdata.Haplotype) []Diplotype {
	matches := MatchHaplotypes(md)
	for _, h := range synthesized {
		explained := md.Explain(h)
		if len(explained) == 0 {
			continue
		}
		matches = append(matches, HaplotypeMatch{Haplotype: h, Explained: explained})
	}
	return enumerateFrom(md, matches)
}

func enumerateFrom(md *matchdata.MatchData, matches []HaplotypeMatch) []Diplotype {
	// Chromosome order only carries information when some kept position is
	// genuinely heterozygous; an all-homozygous sample is effectively
	// phased (see matchdata.Build) but has no ordering to report, so
	// treating it as ordered here would double-count every symmetric pair.
	ordered := md.Phased && hasHeterozygous(md)
	var out []Diplotype

	for i := 0; i < len(matches); i++ {
		for j := i; j < len(matches); j++ {
			h1, h2 := matches[i], matches[j]
			direct := md.Reconstitutes(h1.Haplotype, h2.Haplotype)
			var swapped bool
			if i != j {
				swapped = md.Reconstitutes(h2.Haplotype, h1.Haplotype)
			}
			if !direct && !swapped {
				continue
			}

			if ordered {
				if direct {
					out = append(out, newDiplotype(h1, h2))
				}
				if swapped && i != j {
					out = append(out, newDiplotype(h2, h1))
				}
				continue
			}

			// Unphased: a pair that reconstitutes in either order is the
			// same candidate; emit it once in catalog order.
			out = append(out, newDiplotype(h1, h2))
		}
	}

	sort.SliceStable(out, func(a, b int) bool { return Compare(out[a], out[b]) < 0 })
	return out
}

func hasHeterozygous(md *matchdata.MatchData) bool {
	for _, g := range md.Genotypes {
		if g.Heterozygous() {
			return true
		}
	}
	return false
}

func newDiplotype(left, right HaplotypeMatch) Diplotype {
	return Diplotype{Left: left, Right: right, Score: left.Haplotype.Score + right.Haplotype.Score}
}

// Compare imposes the total order from spec.md §4.4: higher score first;
// ties broken lexicographically over the ordered pair of allele names
// (reference-earlier on an equal prefix); off-reference partials sort
// last regardless of score.
func Compare(a, b Diplotype) int {
	if aOff, bOff := isOffReference(a), isOffReference(b); aOff != bOff {
		if aOff {
			return 1
		}
		return -1
	}

	if a.Score != b.Score {
		if a.Score > b.Score {
			return -1
		}
		return 1
	}

	if c := compareSide(a.Left, b.Left); c != 0 {
		return c
	}
	return compareSide(a.Right, b.Right)
}

func compareSide(a, b HaplotypeMatch) int {
	an, bn := a.Name(), b.Name()
	if an == bn {
		if a.Haplotype.Reference != b.Haplotype.Reference {
			if a.Haplotype.Reference {
				return -1
			}
			return 1
		}
		return 0
	}
	if an < bn {
		return -1
	}
	return 1
}

func isOffReference(d Diplotype) bool {
	return d.Left.Haplotype.OffReference || d.Right.Haplotype.OffReference
}

// TopMatch filters a ranked diplotype list down to the maximum-score tier
// (spec.md §4.4's default output mode). Off-reference partials, which
// always carry score 0, are included only if they are the sole tier
// present.
func TopMatch(ranked []Diplotype) []Diplotype {
	if len(ranked) == 0 {
		return nil
	}
	top := ranked[0].Score
	offRef := isOffReference(ranked[0])
	var out []Diplotype
	for _, d := range ranked {
		if d.Score != top || isOffReference(d) != offRef {
			break
		}
		out = append(out, d)
	}
	return out
}
