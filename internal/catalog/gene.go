package catalog

import "github.com/msilver727/pharmcat/internal/errs"

// GeneDefinition is a gene symbol, its ordered VariantLocus vector and the
// set of NamedAlleles defined against it. Exactly one NamedAllele is
// designated the reference.
type GeneDefinition struct {
	Gene    string
	Loci    []*VariantLocus
	Alleles []*NamedAllele
}

// Reference returns the gene's reference NamedAllele, or nil if none is
// marked (a MalformedCatalog condition the caller should have rejected at
// load time).
func (g *GeneDefinition) Reference() *NamedAllele {
	for _, a := range g.Alleles {
		if a.Reference {
			return a
		}
	}
	return nil
}

// LocusIndex returns the position of a locus with the given key in g.Loci,
// or -1 if absent.
func (g *GeneDefinition) LocusIndex(key string) int {
	for i, l := range g.Loci {
		if l.Key() == key {
			return i
		}
	}
	return -1
}

// Initialize validates the gene definition and initializes every allele
// against the gene's locus vector. It is fatal (MalformedCatalog) for the
// whole run if any allele fails to initialize or if no allele is marked
// reference.
func (g *GeneDefinition) Initialize() error {
	refCount := 0
	for _, a := range g.Alleles {
		a.Gene = g.Gene
		if err := a.Initialize(g.Loci, nil); err != nil {
			return err
		}
		if a.Reference {
			refCount++
		}
	}
	if refCount == 0 {
		return errs.MalformedCatalog(g.Gene, "no allele designated reference")
	}
	if refCount > 1 {
		return errs.MalformedCatalog(g.Gene, "%d alleles designated reference, want exactly 1", refCount)
	}
	return nil
}
