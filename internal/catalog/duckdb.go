package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// LoadDuckDB loads a catalog from a DuckDB database with three tables:
//
//	loci(gene, chrom, position, ref, alts, rsid, locus_order)
//	named_alleles(gene, id, name, reference, num_combinations, num_partials)
//	named_allele_codes(gene, allele_id, locus_order, code)
//
// This repurposes the teacher's internal/duckdb caching approach (there,
// caching per-variant VEP annotations) into a queryable catalog store: the
// Definition Model's "opaque catalog source" instantiated as a real
// embedded analytical database instead of flat JSON files.
func LoadDuckDB(ctx context.Context, path string) ([]*GeneDefinition, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb catalog: %w", err)
	}
	defer db.Close()

	genes := make(map[string]*GeneDefinition)

	lociRows, err := db.QueryContext(ctx, `
		SELECT gene, chrom, position, ref, alts, rsid
		FROM loci ORDER BY gene, locus_order`)
	if err != nil {
		return nil, fmt.Errorf("query loci: %w", err)
	}
	defer lociRows.Close()

	for lociRows.Next() {
		var gene, chrom, ref, rsid, alts string
		var position int64
		if err := lociRows.Scan(&gene, &chrom, &position, &ref, &alts, &rsid); err != nil {
			return nil, fmt.Errorf("scan locus row: %w", err)
		}
		g := geneFor(genes, gene)
		g.Loci = append(g.Loci, &VariantLocus{
			Chrom:    chrom,
			Position: position,
			Ref:      ref,
			Alts:     splitNonEmpty(alts, ","),
			RSID:     rsid,
		})
	}
	if err := lociRows.Err(); err != nil {
		return nil, err
	}

	alleleRows, err := db.QueryContext(ctx, `
		SELECT gene, id, name, reference, num_combinations, num_partials
		FROM named_alleles ORDER BY gene, id`)
	if err != nil {
		return nil, fmt.Errorf("query named_alleles: %w", err)
	}
	defer alleleRows.Close()

	for alleleRows.Next() {
		var gene, id, name string
		var reference bool
		var numCombinations, numPartials int
		if err := alleleRows.Scan(&gene, &id, &name, &reference, &numCombinations, &numPartials); err != nil {
			return nil, fmt.Errorf("scan named_allele row: %w", err)
		}
		g := geneFor(genes, gene)
		if numCombinations < 1 {
			numCombinations = 1
		}
		g.Alleles = append(g.Alleles, &NamedAllele{
			ID:              id,
			Name:            name,
			Gene:            gene,
			Reference:       reference,
			NumCombinations: numCombinations,
			NumPartials:     numPartials,
			AlleleCodes:     make([]string, len(g.Loci)), // resized below once all loci are known
		})
	}
	if err := alleleRows.Err(); err != nil {
		return nil, err
	}

	codeRows, err := db.QueryContext(ctx, `
		SELECT gene, allele_id, locus_order, code
		FROM named_allele_codes ORDER BY gene, allele_id, locus_order`)
	if err != nil {
		return nil, fmt.Errorf("query named_allele_codes: %w", err)
	}
	defer codeRows.Close()

	for codeRows.Next() {
		var gene, alleleID, code string
		var locusOrder int
		if err := codeRows.Scan(&gene, &alleleID, &locusOrder, &code); err != nil {
			return nil, fmt.Errorf("scan named_allele_codes row: %w", err)
		}
		g := genes[gene]
		if g == nil {
			return nil, fmt.Errorf("named_allele_codes references unknown gene %q", gene)
		}
		allele := alleleByID(g, alleleID)
		if allele == nil {
			return nil, fmt.Errorf("named_allele_codes references unknown allele %q in gene %q", alleleID, gene)
		}
		if locusOrder < 0 || locusOrder >= len(allele.AlleleCodes) {
			return nil, fmt.Errorf("named_allele_codes locus_order %d out of range for gene %q", locusOrder, gene)
		}
		allele.AlleleCodes[locusOrder] = code
	}
	if err := codeRows.Err(); err != nil {
		return nil, err
	}

	out := make([]*GeneDefinition, 0, len(genes))
	for _, g := range genes {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Gene < out[j].Gene })

	for _, g := range out {
		if err := g.Initialize(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func geneFor(genes map[string]*GeneDefinition, name string) *GeneDefinition {
	g, ok := genes[name]
	if !ok {
		g = &GeneDefinition{Gene: name}
		genes[name] = g
	}
	return g
}

func alleleByID(g *GeneDefinition, id string) *NamedAllele {
	for _, a := range g.Alleles {
		if a.ID == id {
			if len(a.AlleleCodes) != len(g.Loci) {
				a.AlleleCodes = make([]string, len(g.Loci))
			}
			return a
		}
	}
	return nil
}

func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, sep)
}
