package matchdata

import "github.com/msilver727/pharmcat/internal/catalog"

// PositionGenotype is the sample's genotype call at one kept position,
// retained alongside the derived Permutations set so diplotype enumeration
// can validate that a candidate pair of haploid sequences jointly
// reconstitutes the original call (spec.md §4.4), not merely that each
// side independently belongs to the permutation set.
type PositionGenotype struct {
	Locus      *catalog.VariantLocus
	Allele1    string
	Allele2    string
	Phased     bool
	IsMissing  bool
	Homozygous bool // Allele1 == Allele2, meaningless when IsMissing
}

// Mismatch reports whether either observed allele differs from the
// locus's reference allele (used by the Result Assembler's variant
// reports).
func (g PositionGenotype) Mismatch() bool {
	if g.IsMissing {
		return false
	}
	return g.Allele1 != g.Locus.Ref || g.Allele2 != g.Locus.Ref
}

// Heterozygous reports whether the two observed alleles differ.
func (g PositionGenotype) Heterozygous() bool {
	return !g.IsMissing && !g.Homozygous
}
