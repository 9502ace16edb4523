package combination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msilver727/pharmcat/internal/catalog"
	"github.com/msilver727/pharmcat/internal/matchdata"
	"github.com/msilver727/pharmcat/internal/sample"
)

// ugt1a1Like models two disjoint-position markers (*80, *28) that, merged,
// explain a permutation neither explains alone.
func ugt1a1Like(t *testing.T) (*catalog.GeneDefinition, []*catalog.VariantLocus) {
	t.Helper()
	loci := []*catalog.VariantLocus{
		{Chrom: "2", Position: 234668879, Ref: "T", Alts: []string{"C"}}, // *80 marker
		{Chrom: "2", Position: 234669144, Ref: "A", Alts: []string{"TA"}}, // *28 marker
	}
	g := &catalog.GeneDefinition{
		Gene: "UGT1A1",
		Loci: loci,
		Alleles: []*catalog.NamedAllele{
			{ID: "*1", Name: "*1", AlleleCodes: []string{"T", "A"}, Reference: true},
			{ID: "*80", Name: "*80", AlleleCodes: []string{"C", catalog.Unspecified}},
			{ID: "*28", Name: "*28", AlleleCodes: []string{catalog.Unspecified, "TA"}},
		},
	}
	require.NoError(t, g.Initialize())
	return g, loci
}

func TestSynthesize_PhasedCombinationMergesDisjointMarkers(t *testing.T) {
	g, loci := ugt1a1Like(t)
	alleles := []sample.SampleAllele{
		{Chrom: "2", Position: 234668879, Allele1: "C", Allele2: "T", Phased: true},
		{Chrom: "2", Position: 234669144, Allele1: "TA", Allele2: "A", Phased: true},
	}
	md, err := matchdata.Build(g, alleles, 0)
	require.NoError(t, err)

	synthesized, err := Synthesize(g.Gene, loci, md)
	require.NoError(t, err)

	// The permutation carrying both markers gets the real (*80 + *28)
	// combination. The two cross-permutations that mix one marker with the
	// other position's reference base are each already consistent with a
	// single catalog allele (*80 or *28), so no off-reference partial is
	// synthesized for them; the reference permutation is fully explained
	// by *1.
	var combo *matchdata.Haplotype
	offRefCount := 0
	for _, h := range synthesized {
		if h.OffReference {
			offRefCount++
			continue
		}
		combo = h
	}
	require.NotNil(t, combo, "expected one real combination among the synthesized haplotypes")
	assert.Equal(t, "*28 + *80", combo.Name)
	assert.Equal(t, 2, combo.Score)
	assert.Equal(t, 0, offRefCount)
}

func TestOffReferencePartial_LabelsEveryOffendingPosition(t *testing.T) {
	loci := []*catalog.VariantLocus{
		{Chrom: "6", Position: 18143955, Ref: "A", Alts: []string{"G"}},
	}
	perm := matchdata.Sequence{Literals: []string{"G"}}

	h := OffReferencePartial("TPMT", loci, perm)
	assert.True(t, h.OffReference)
	assert.Equal(t, 0, h.Score)
	assert.Equal(t, "off-ref:g.18143955A>G", h.Name)
}

func TestMergeable_RejectsOverlappingPositions(t *testing.T) {
	na1 := &catalog.NamedAllele{ID: "*80", AlleleCodes: []string{"C", catalog.Unspecified}, Gene: "UGT1A1"}
	na2 := &catalog.NamedAllele{ID: "*37", AlleleCodes: []string{"C", "TA"}, Gene: "UGT1A1"}
	loci := []*catalog.VariantLocus{
		{Chrom: "2", Position: 1, Ref: "T", Alts: []string{"C"}},
		{Chrom: "2", Position: 2, Ref: "A", Alts: []string{"TA"}},
	}
	require.NoError(t, na1.Initialize(loci, nil))
	require.NoError(t, na2.Initialize(loci, nil))

	h1 := matchdata.Restrict(na1, []int{0, 1})
	h2 := matchdata.Restrict(na2, []int{0, 1})
	assert.False(t, Mergeable(h1, h2), "both specify position 0")
}

func TestMerge_CatalogConflictOnOverlap(t *testing.T) {
	na1 := &catalog.NamedAllele{ID: "*80", AlleleCodes: []string{"C", "A"}, Gene: "UGT1A1"}
	na2 := &catalog.NamedAllele{ID: "*37", AlleleCodes: []string{"C", "TA"}, Gene: "UGT1A1"}
	loci := []*catalog.VariantLocus{
		{Chrom: "2", Position: 1, Ref: "T", Alts: []string{"C"}},
		{Chrom: "2", Position: 2, Ref: "A", Alts: []string{"TA"}},
	}
	require.NoError(t, na1.Initialize(loci, nil))
	require.NoError(t, na2.Initialize(loci, nil))

	h1 := matchdata.Restrict(na1, []int{0, 1})
	h2 := matchdata.Restrict(na2, []int{0, 1})

	_, err := Merge("UGT1A1", []*matchdata.Haplotype{h1, h2})
	require.Error(t, err)
}
