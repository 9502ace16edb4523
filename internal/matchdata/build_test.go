package matchdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msilver727/pharmcat/internal/catalog"
	"github.com/msilver727/pharmcat/internal/errs"
	"github.com/msilver727/pharmcat/internal/sample"
)

func testGene(t *testing.T) *catalog.GeneDefinition {
	t.Helper()
	loci := []*catalog.VariantLocus{
		{Chrom: "10", Position: 100, Ref: "A", Alts: []string{"G"}},
		{Chrom: "10", Position: 200, Ref: "C", Alts: []string{"T"}},
	}
	g := &catalog.GeneDefinition{
		Gene: "TEST",
		Loci: loci,
		Alleles: []*catalog.NamedAllele{
			{ID: "*1", Name: "*1", AlleleCodes: []string{"A", "C"}, Reference: true},
			{ID: "*2", Name: "*2", AlleleCodes: []string{"G", "C"}},
		},
	}
	require.NoError(t, g.Initialize())
	return g
}

func TestBuild_NoCoverageWhenNoLocusHasSampleData(t *testing.T) {
	g := testGene(t)
	_, err := Build(g, nil, 0)
	require.Error(t, err)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.KindNoCoverage, e.Kind())
}

func TestBuild_AllHomozygousReferenceYieldsSinglePermutation(t *testing.T) {
	g := testGene(t)
	alleles := []sample.SampleAllele{
		{Chrom: "10", Position: 100, Allele1: "A", Allele2: "A", Phased: false},
		{Chrom: "10", Position: 200, Allele1: "C", Allele2: "C", Phased: false},
	}
	md, err := Build(g, alleles, 0)
	require.NoError(t, err)
	require.Len(t, md.Permutations, 1)
	assert.Equal(t, []string{"A", "C"}, md.Permutations[0].Literals)
	assert.True(t, md.Phased, "all-homozygous sample is effectively phased")
}

func TestBuild_IUPACAtSinglePositionExpandsWithoutDoubling(t *testing.T) {
	g := testGene(t)
	// Homozygous call "R" (A/G ambiguity code) at position 1, ref/ref at
	// position 2: should yield exactly 2 permutations (one per expanded
	// base), not 4 (which cross-multiplying the homozygous call against
	// itself would produce).
	alleles := []sample.SampleAllele{
		{Chrom: "10", Position: 100, Allele1: "R", Allele2: "R", Phased: false},
		{Chrom: "10", Position: 200, Allele1: "C", Allele2: "C", Phased: false},
	}
	md, err := Build(g, alleles, 0)
	require.NoError(t, err)
	require.Len(t, md.Permutations, 2)
	keys := []string{md.Permutations[0].Key(), md.Permutations[1].Key()}
	assert.ElementsMatch(t, []string{"A\x1fC", "G\x1fC"}, keys)
}

func TestBuild_MissingPositionContributesWildcard(t *testing.T) {
	g := testGene(t)
	alleles := []sample.SampleAllele{
		{Chrom: "10", Position: 100, Allele1: "A", Allele2: "A"},
		{Chrom: "10", Position: 200, IsMissing: true},
	}
	md, err := Build(g, alleles, 0)
	require.NoError(t, err)
	require.Len(t, md.Permutations, 1)
	assert.Equal(t, Wildcard, md.Permutations[0].At(1))
}

func TestBuild_ExcessivePermutationsCap(t *testing.T) {
	g := testGene(t)
	alleles := []sample.SampleAllele{
		{Chrom: "10", Position: 100, Allele1: "A", Allele2: "G"},
		{Chrom: "10", Position: 200, Allele1: "C", Allele2: "T"},
	}
	_, err := Build(g, alleles, 2)
	require.Error(t, err)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.KindExcessivePermutations, e.Kind())
}

func TestBuild_GeneMissingLociTracksUncoveredPositions(t *testing.T) {
	g := testGene(t)
	alleles := []sample.SampleAllele{
		{Chrom: "10", Position: 100, Allele1: "A", Allele2: "A"},
	}
	md, err := Build(g, alleles, 0)
	require.NoError(t, err)
	require.Len(t, md.GeneMissingLoci, 1)
	assert.Equal(t, int64(200), md.GeneMissingLoci[0].Position)
}

func TestBuild_UnphasedHeterozygousIsNotEffectivelyPhased(t *testing.T) {
	g := testGene(t)
	alleles := []sample.SampleAllele{
		{Chrom: "10", Position: 100, Allele1: "A", Allele2: "G", Phased: false},
		{Chrom: "10", Position: 200, Allele1: "C", Allele2: "C"},
	}
	md, err := Build(g, alleles, 0)
	require.NoError(t, err)
	assert.False(t, md.Phased)
}

func TestBuild_PhasedHeterozygousIsPhased(t *testing.T) {
	g := testGene(t)
	alleles := []sample.SampleAllele{
		{Chrom: "10", Position: 100, Allele1: "A", Allele2: "G", Phased: true},
		{Chrom: "10", Position: 200, Allele1: "C", Allele2: "C"},
	}
	md, err := Build(g, alleles, 0)
	require.NoError(t, err)
	assert.True(t, md.Phased)
}

func TestBuild_RestrictsEveryNamedAllele(t *testing.T) {
	g := testGene(t)
	alleles := []sample.SampleAllele{
		{Chrom: "10", Position: 100, Allele1: "A", Allele2: "G", Phased: true},
		{Chrom: "10", Position: 200, Allele1: "C", Allele2: "C"},
	}
	md, err := Build(g, alleles, 0)
	require.NoError(t, err)
	require.Len(t, md.Haplotypes, 2)
	assert.Equal(t, "*1", md.ReferenceID)
}
