package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneDefinition_InitializeRequiresExactlyOneReference(t *testing.T) {
	loci := testLoci()

	noRef := &GeneDefinition{
		Gene: "TEST",
		Loci: loci,
		Alleles: []*NamedAllele{
			{ID: "*1", AlleleCodes: []string{"A", "C", "G"}},
		},
	}
	require.Error(t, noRef.Initialize())

	twoRef := &GeneDefinition{
		Gene: "TEST",
		Loci: loci,
		Alleles: []*NamedAllele{
			{ID: "*1", AlleleCodes: []string{"A", "C", "G"}, Reference: true},
			{ID: "*2", AlleleCodes: []string{"G", "C", "G"}, Reference: true},
		},
	}
	require.Error(t, twoRef.Initialize())

	ok := &GeneDefinition{
		Gene: "TEST",
		Loci: loci,
		Alleles: []*NamedAllele{
			{ID: "*1", AlleleCodes: []string{"A", "C", "G"}, Reference: true},
			{ID: "*2", AlleleCodes: []string{"G", "C", "G"}},
		},
	}
	require.NoError(t, ok.Initialize())
	assert.Equal(t, "*1", ok.Reference().ID)
	assert.Equal(t, "TEST", ok.Alleles[0].Gene)
}

func TestGeneDefinition_LocusIndex(t *testing.T) {
	g := &GeneDefinition{Gene: "TEST", Loci: testLoci()}
	assert.Equal(t, 1, g.LocusIndex("10:200"))
	assert.Equal(t, -1, g.LocusIndex("10:999"))
}
