package combination

import (
	"fmt"
	"strings"

	"github.com/msilver727/pharmcat/internal/catalog"
	"github.com/msilver727/pharmcat/internal/matchdata"
)

// OffReferenceMarker prefixes the synthesized name of every off-reference
// partial, so Compare (and matcher.Compare, via Haplotype.OffReference) can
// identify and sort them last regardless of their forced-zero score.
const OffReferenceMarker = "off-ref"

// OffReferencePartial synthesizes the CombinationMatch spec.md §4.5
// describes for a permutation no cataloged named allele explains: the
// reference allele's shape everywhere the permutation agrees with it, plus
// an HGVS-style label at every position where it doesn't. Score is forced
// to 0 and the result is flagged OffReference so it always sorts last.
func OffReferencePartial(gene string, kept []*catalog.VariantLocus, perm matchdata.Sequence) *matchdata.Haplotype {
	n := perm.Len()
	literalSets := make([][]string, n)
	missing := make(map[int]bool)
	var labels []string

	for i := 0; i < n; i++ {
		lit := perm.At(i)
		if lit == matchdata.Wildcard {
			missing[i] = true
			continue
		}
		literalSets[i] = []string{lit}
		if lit != kept[i].Ref {
			labels = append(labels, hgvsLabel(kept[i], lit))
		}
	}

	name := OffReferenceMarker
	if len(labels) > 0 {
		name = OffReferenceMarker + ":" + strings.Join(labels, ",")
	}

	return matchdata.NewSynthesized(name, name, gene, literalSets, missing, 0, nil, true)
}

// hgvsLabel renders an HGVS-like genomic substitution label, e.g.
// "g.94781859C>T", for one offending (position, allele).
func hgvsLabel(locus *catalog.VariantLocus, alt string) string {
	return fmt.Sprintf("g.%d%s>%s", locus.Position, locus.Ref, alt)
}
