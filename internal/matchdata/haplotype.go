package matchdata

import "github.com/msilver727/pharmcat/internal/catalog"

// Haplotype is the dense, kept-position projection of a candidate named
// allele, ready to be matched against a sample's permutations. It is
// produced two ways: restricting a catalog.NamedAllele down to a gene's
// kept positions (see Restrict), or synthesizing a merge of several
// Haplotypes into a CombinationMatch candidate (see internal/combination).
//
// Both cases share this one representation, per spec.md §9's "polymorphism
// over BaseMatch": a HaplotypeMatch and a CombinationMatch differ only in
// whether Components is empty, not in the shape of the allele they carry.
type Haplotype struct {
	ID           string
	Name         string
	Gene         string
	Reference    bool
	Score        int
	OffReference bool
	Components   []*Haplotype // nil for a plain restricted allele; len>=2 for a synthesized combination

	literalSets [][]string // per kept-position index; nil entry = unspecified
	missing     map[int]bool
}

// LiteralsAt returns the expanded literal set this haplotype asserts at
// kept-position index i, or nil if the position is unspecified.
func (h *Haplotype) LiteralsAt(i int) []string {
	if h.missing[i] {
		return nil
	}
	if i < 0 || i >= len(h.literalSets) {
		return nil
	}
	return h.literalSets[i]
}

// IsSpecifiedAt reports whether the haplotype constrains kept-position i.
func (h *Haplotype) IsSpecifiedAt(i int) bool {
	return !h.missing[i] && i >= 0 && i < len(h.literalSets) && h.literalSets[i] != nil
}

// MissingPositions returns the set of kept-position indices this haplotype
// does not assert.
func (h *Haplotype) MissingPositions() map[int]bool {
	return h.missing
}

// NumPositions returns the number of kept positions this haplotype is
// projected against.
func (h *Haplotype) NumPositions() int {
	return len(h.literalSets)
}

// Restrict projects a catalog.NamedAllele onto the kept-position index set
// (indices into the gene's full locus vector, in kept order), producing a
// Haplotype whose score counts only kept, specified positions — spec.md
// §4.3 step 2.
func Restrict(na *catalog.NamedAllele, keptFullIndices []int) *Haplotype {
	literalSets := make([][]string, len(keptFullIndices))
	missing := make(map[int]bool)
	score := 0

	for j, fullIdx := range keptFullIndices {
		if !na.IsSpecifiedAt(fullIdx) {
			missing[j] = true
			continue
		}
		literalSets[j] = na.LiteralsAt(fullIdx)
		score++
	}

	return &Haplotype{
		ID:          na.ID,
		Name:        na.Name,
		Gene:        na.Gene,
		Reference:   na.Reference,
		Score:       score,
		literalSets: literalSets,
		missing:     missing,
	}
}

// NewSynthesized builds a Haplotype directly from precomputed literal sets,
// used by internal/combination to construct merged and off-reference
// partial haplotypes without going through a catalog.NamedAllele.
func NewSynthesized(id, name, gene string, literalSets [][]string, missing map[int]bool, score int, components []*Haplotype, offReference bool) *Haplotype {
	return &Haplotype{
		ID:           id,
		Name:         name,
		Gene:         gene,
		Score:        score,
		Components:   components,
		OffReference: offReference,
		literalSets:  literalSets,
		missing:      missing,
	}
}
