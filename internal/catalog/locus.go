// Package catalog holds the in-memory representation of a pharmacogene
// allele catalog: ordered reference positions (VariantLocus) and the named
// alleles (NamedAllele) defined against them, grouped per gene
// (GeneDefinition).
package catalog

import "fmt"

// VariantLocus is a single catalog-defined genomic position relevant to a
// gene. It is immutable for the lifetime of a loaded catalog.
type VariantLocus struct {
	Chrom    string
	Position int64
	Ref      string
	Alts     []string
	RSID     string
}

// Key returns the (chromosome, position) identity used to match a locus
// against sample data.
func (l *VariantLocus) Key() string {
	return fmt.Sprintf("%s:%d", l.Chrom, l.Position)
}

// String renders the locus as "chrom:pos" for logs and error messages.
func (l *VariantLocus) String() string {
	return l.Key()
}
