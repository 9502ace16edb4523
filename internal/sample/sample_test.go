package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msilver727/pharmcat/internal/catalog"
)

func loci() []*catalog.VariantLocus {
	return []*catalog.VariantLocus{
		{Chrom: "10", Position: 100, Ref: "G", Alts: []string{"A"}, RSID: "rs1"},
		{Chrom: "10", Position: 200, Ref: "C", Alts: []string{"T"}, RSID: "rs2"},
	}
}

func TestReader_UnphasedHeterozygous(t *testing.T) {
	r := NewReader()
	out, err := r.Read("TEST", loci(), []SampleRecord{
		{Chrom: "10", Position: 100, Ref: "G", Alts: []string{"A"}, GT: "0/1"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.False(t, out[0].Phased)
	assert.ElementsMatch(t, []string{"G", "A"}, []string{out[0].Allele1, out[0].Allele2})
}

func TestReader_PhasedHomozygous(t *testing.T) {
	r := NewReader()
	out, err := r.Read("TEST", loci(), []SampleRecord{
		{Chrom: "10", Position: 100, Ref: "G", Alts: []string{"A"}, GT: "0|0"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Phased)
	assert.Equal(t, "G", out[0].Allele1)
	assert.Equal(t, "G", out[0].Allele2)
}

func TestReader_MissingGenotype(t *testing.T) {
	r := NewReader()
	out, err := r.Read("TEST", loci(), []SampleRecord{
		{Chrom: "10", Position: 100, Ref: "G", Alts: []string{"A"}, GT: "./."},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].IsMissing)
}

func TestReader_SkipsLociWithoutRecords(t *testing.T) {
	r := NewReader()
	out, err := r.Read("TEST", loci(), []SampleRecord{
		{Chrom: "10", Position: 100, Ref: "G", Alts: []string{"A"}, GT: "0/0"},
	})
	require.NoError(t, err)
	assert.Len(t, out, 1) // position 200 absent entirely, not emitted
}

func TestReader_AmbiguousLocusOnConflictingDuplicates(t *testing.T) {
	r := NewReader()
	_, err := r.Read("TEST", loci(), []SampleRecord{
		{Chrom: "10", Position: 100, Ref: "G", Alts: []string{"A"}, GT: "0/0"},
		{Chrom: "10", Position: 100, Ref: "G", Alts: []string{"A"}, GT: "1/1"},
	})
	require.Error(t, err)
}

func TestReader_MalformedGenotype(t *testing.T) {
	r := NewReader()
	_, err := r.Read("TEST", loci(), []SampleRecord{
		{Chrom: "10", Position: 100, Ref: "G", Alts: []string{"A"}, GT: "0/1/1"},
	})
	require.Error(t, err)
}

func TestReader_GenotypeIndexOutOfRange(t *testing.T) {
	r := NewReader()
	_, err := r.Read("TEST", loci(), []SampleRecord{
		{Chrom: "10", Position: 100, Ref: "G", Alts: []string{"A"}, GT: "0/2"},
	})
	require.Error(t, err)
}
