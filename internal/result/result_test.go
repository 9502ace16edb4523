package result

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msilver727/pharmcat/internal/catalog"
	"github.com/msilver727/pharmcat/internal/sample"
)

func testGene(t *testing.T) *catalog.GeneDefinition {
	t.Helper()
	loci := []*catalog.VariantLocus{
		{Chrom: "10", Position: 100, Ref: "A", Alts: []string{"G"}, RSID: "rs1"},
		{Chrom: "10", Position: 200, Ref: "C", Alts: []string{"T"}, RSID: "rs2"},
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

func TestAssemble_NoCoverageMarksGeneNotCalled(t *testing.T) {
	g := testGene(t)
	r, err := Assemble(g, nil, Options{})
	require.NoError(t, err)
	assert.False(t, r.Called)
	assert.Equal(t, StateNotCalled, r.State)
}

func TestAssemble_StraightMatchProducesDiplotypeView(t *testing.T) {
	g := testGene(t)
	alleles := []sample.SampleAllele{
		{Chrom: "10", Position: 100, Allele1: "A", Allele2: "A"},
		{Chrom: "10", Position: 200, Allele1: "C", Allele2: "C"},
	}
	r, err := Assemble(g, alleles, Options{})
	require.NoError(t, err)
	require.True(t, r.Called)
	require.Len(t, r.Diplotypes, 1)
	assert.Equal(t, "*1", r.Diplotypes[0].Left.ID)
	assert.Equal(t, "*1", r.Diplotypes[0].Right.ID)
	assert.Equal(t, StateStraight, r.State)
}

func TestAssemble_ReportsMissingLocusAsWarning(t *testing.T) {
	g := testGene(t)
	alleles := []sample.SampleAllele{
		{Chrom: "10", Position: 100, Allele1: "A", Allele2: "A"},
	}
	r, err := Assemble(g, alleles, Options{})
	require.NoError(t, err)
	require.Len(t, r.VariantReports, 2)
	assert.Contains(t, r.Warnings[0], "missing from sample")
}

func TestRunGenes_PreservesInputOrderRegardlessOfCompletion(t *testing.T) {
	g := testGene(t)
	alleles := []sample.SampleAllele{
		{Chrom: "10", Position: 100, Allele1: "A", Allele2: "A"},
		{Chrom: "10", Position: 200, Allele1: "C", Allele2: "C"},
	}
	tasks := []GeneTask{
		{Seq: 0, Gene: g, Alleles: alleles},
		{Seq: 1, Gene: g, Alleles: nil},
		{Seq: 2, Gene: g, Alleles: alleles},
	}
	out, err := RunGenes(context.Background(), tasks, 4, Options{})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.True(t, out[0].Called)
	assert.False(t, out[1].Called)
	assert.True(t, out[2].Called)
}
