package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/msilver727/pharmcat/internal/errs"
)

// geneFile is the authored-JSON shape of a single gene's catalog entry.
// Loading the catalog from this authored form is a core non-goal, but
// every deployment needs a concrete reader for it.
type geneFile struct {
	Gene string `json:"gene"`
	Loci []struct {
		Chrom    string   `json:"chrom"`
		Position int64    `json:"position"`
		Ref      string   `json:"ref"`
		Alts     []string `json:"alts"`
		RSID     string   `json:"rsid"`
	} `json:"loci"`
	Alleles []struct {
		ID              string   `json:"id"`
		Name            string   `json:"name"`
		AlleleCodes     []string `json:"alleleCodes"`
		Reference       bool     `json:"reference"`
		NumCombinations int      `json:"numCombinations"`
		NumPartials     int      `json:"numPartials"`
	} `json:"alleles"`
}

// LoadDir loads one GeneDefinition per "<gene>.json" file in dir, loading
// files concurrently (bounded by GOMAXPROCS) and initializing every gene
// before returning. A malformed file is fatal for the whole run, per
// spec.md §7's "catalog errors detected at load are fatal".
func LoadDir(ctx context.Context, dir string) ([]*GeneDefinition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	genes := make([]*GeneDefinition, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			gene, err := loadGeneFile(path)
			if err != nil {
				return err
			}
			genes[i] = gene
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, gene := range genes {
		if err := gene.Initialize(); err != nil {
			return nil, err
		}
	}
	return genes, nil
}

func loadGeneFile(path string) (*GeneDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", path, err)
	}

	var gf geneFile
	if err := json.Unmarshal(data, &gf); err != nil {
		return nil, errs.MalformedCatalog(filepath.Base(path), "invalid JSON: %v", err)
	}
	if gf.Gene == "" {
		return nil, errs.MalformedCatalog(filepath.Base(path), "missing gene symbol")
	}

	gene := &GeneDefinition{Gene: gf.Gene}
	for _, l := range gf.Loci {
		gene.Loci = append(gene.Loci, &VariantLocus{
			Chrom:    l.Chrom,
			Position: l.Position,
			Ref:      l.Ref,
			Alts:     l.Alts,
			RSID:     l.RSID,
		})
	}
	for _, a := range gf.Alleles {
		numCombinations := a.NumCombinations
		if numCombinations < 1 {
			numCombinations = 1
		}
		gene.Alleles = append(gene.Alleles, &NamedAllele{
			ID:              a.ID,
			Name:            a.Name,
			Gene:            gf.Gene,
			AlleleCodes:     a.AlleleCodes,
			Reference:       a.Reference,
			NumCombinations: numCombinations,
			NumPartials:     a.NumPartials,
		})
	}
	return gene, nil
}
