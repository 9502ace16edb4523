package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDir_LoadsAndInitializesGenes(t *testing.T) {
	genes, err := LoadDir(context.Background(), "testdata")
	require.NoError(t, err)
	require.Len(t, genes, 1)

	g := genes[0]
	assert.Equal(t, "CYP2C19", g.Gene)
	assert.Len(t, g.Loci, 2)
	assert.Len(t, g.Alleles, 3)
	require.NotNil(t, g.Reference())
	assert.Equal(t, "*1", g.Reference().ID)

	for _, a := range g.Alleles {
		assert.True(t, a.Initialized())
	}
}

func TestLoadDir_RejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BAD.json"), []byte("{not json"), 0o644))

	_, err := LoadDir(context.Background(), dir)
	require.Error(t, err)
}

func TestLoadDir_RejectsMismatchedAlleleCodeLength(t *testing.T) {
	dir := t.TempDir()
	bad := `{
		"gene": "BAD",
		"loci": [{"chrom":"1","position":1,"ref":"A","alts":["G"],"rsid":"rs1"}],
		"alleles": [
			{"id":"*1","alleleCodes":["A"],"reference":true},
			{"id":"*2","alleleCodes":["A","G"]}
		]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BAD.json"), []byte(bad), 0o644))

	_, err := LoadDir(context.Background(), dir)
	require.Error(t, err)
}
