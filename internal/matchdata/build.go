package matchdata

import (
	"sort"

	"github.com/msilver727/pharmcat/internal/catalog"
	"github.com/msilver727/pharmcat/internal/errs"
	"github.com/msilver727/pharmcat/internal/iupac"
	"github.com/msilver727/pharmcat/internal/sample"
)

// DefaultPermutationCap is the default hard ceiling on the number of
// distinct haploid permutations a single gene's sample may generate,
// per spec.md §5 (2^20).
const DefaultPermutationCap = 1 << 20

// MatchData is the per-gene working set the Core Matcher operates on:
// the sample's coverage of the gene's catalog positions, the restricted
// named alleles, and every haploid permutation the sample admits.
type MatchData struct {
	Gene            string
	KeptLoci        []*catalog.VariantLocus
	GeneMissingLoci []*catalog.VariantLocus
	Genotypes       []PositionGenotype // aligned with KeptLoci
	Haplotypes      []*Haplotype       // one per catalog named allele, restricted
	ReferenceID     string
	Permutations    []Sequence // deduplicated, deterministically ordered
	Phased          bool       // true if explicitly phased or effectively phased (all-homozygous)
}

// Build restricts gene to the positions alleles actually covers, propagates
// homozygous calls, and enumerates every haploid permutation the sample is
// consistent with, per spec.md §4.3.
func Build(gene *catalog.GeneDefinition, alleles []sample.SampleAllele, permutationCap int) (*MatchData, error) {
	if permutationCap <= 0 {
		permutationCap = DefaultPermutationCap
	}

	byKey := make(map[string]sample.SampleAllele, len(alleles))
	for _, a := range alleles {
		byKey[(&catalog.VariantLocus{Chrom: a.Chrom, Position: a.Position}).Key()] = a
	}

	var keptIdx []int
	var keptLoci []*catalog.VariantLocus
	var geneMissing []*catalog.VariantLocus
	for i, locus := range gene.Loci {
		if _, ok := byKey[locus.Key()]; ok {
			keptIdx = append(keptIdx, i)
			keptLoci = append(keptLoci, locus)
		} else {
			geneMissing = append(geneMissing, locus)
		}
	}

	if len(keptLoci) == 0 {
		return nil, errs.NoCoverage(gene.Gene)
	}

	genotypes := make([]PositionGenotype, len(keptLoci))
	for i, locus := range keptLoci {
		sa := byKey[locus.Key()]
		genotypes[i] = PositionGenotype{
			Locus:      locus,
			Allele1:    sa.Allele1,
			Allele2:    sa.Allele2,
			Phased:     sa.Phased,
			IsMissing:  sa.IsMissing,
			Homozygous: !sa.IsMissing && sa.Allele1 == sa.Allele2,
		}
	}

	perms, err := permute(gene.Gene, genotypes, permutationCap)
	if err != nil {
		return nil, err
	}

	haplotypes := make([]*Haplotype, len(gene.Alleles))
	var referenceID string
	for i, na := range gene.Alleles {
		h := Restrict(na, keptIdx)
		haplotypes[i] = h
		if na.Reference {
			referenceID = na.ID
		}
	}

	return &MatchData{
		Gene:            gene.Gene,
		KeptLoci:        keptLoci,
		GeneMissingLoci: geneMissing,
		Genotypes:       genotypes,
		Haplotypes:      haplotypes,
		ReferenceID:     referenceID,
		Permutations:    perms,
		Phased:          effectivelyPhased(genotypes),
	}, nil
}

// effectivelyPhased implements spec.md's explicit resolution of the
// "effectively phased" open question: a sample with no heterozygous
// positions carries no phase ambiguity at all, so it is treated as phased
// regardless of the input phased flag on individual records. Otherwise the
// sample is phased only if every heterozygous position was explicitly
// phased (a sample cannot be "partially phased": one unphased het position
// makes the whole gene unphased, since diplotype enumeration pairs
// permutations across all positions jointly).
func effectivelyPhased(genotypes []PositionGenotype) bool {
	for _, g := range genotypes {
		if g.Heterozygous() && !g.Phased {
			return false
		}
	}
	return true
}

// permute generates the deduplicated set of candidate haploid sequences a
// single chromosome could show, consistent with the sample's genotypes.
// A missing position contributes a single Wildcard slot (matches anything
// later). A homozygous position's literal set is its IUPAC expansion,
// shared rather than cross-multiplied (spec.md's homozygous propagation).
// A heterozygous position contributes the union of both observed alleles'
// IUPAC expansions, since a single chromosome could plausibly carry either.
// (Which pairings are jointly valid for a diplotype is re-checked
// positionally by Reconstitutes, not decided here.)
func permute(gene string, genotypes []PositionGenotype, cap int) ([]Sequence, error) {
	options := make([][]string, len(genotypes))
	for i, g := range genotypes {
		switch {
		case g.IsMissing:
			options[i] = []string{Wildcard}
		case g.Homozygous:
			options[i] = iupac.Sorted(iupac.Expand(g.Allele1))
		default:
			lits := append(iupac.Expand(g.Allele1), iupac.Expand(g.Allele2)...)
			options[i] = iupac.Sorted(dedupe(lits))
		}
	}

	total := 1
	for _, opts := range options {
		total *= len(opts)
		if total > cap {
			return nil, errs.ExcessivePermutations(gene, total, cap)
		}
	}

	seqs := make([]Sequence, 0, total)
	current := make([]string, len(options))
	var build func(pos int)
	build = func(pos int) {
		if pos == len(options) {
			lits := make([]string, len(current))
			copy(lits, current)
			seqs = append(seqs, Sequence{Literals: lits})
			return
		}
		for _, lit := range options[pos] {
			current[pos] = lit
			build(pos + 1)
		}
	}
	build(0)

	sort.Slice(seqs, func(i, j int) bool { return seqs[i].Key() < seqs[j].Key() })
	return seqs, nil
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0:0]
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
