package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msilver727/pharmcat/internal/catalog"
	"github.com/msilver727/pharmcat/internal/outsidecall"
	"github.com/msilver727/pharmcat/internal/report"
	"github.com/msilver727/pharmcat/internal/result"
	"github.com/msilver727/pharmcat/internal/sample"
	"github.com/msilver727/pharmcat/internal/variantio"
)

func newMatchCmd() *cobra.Command {
	var (
		catalogPath    string
		samplePath     string
		outsideFile    string
		outputPath     string
		allMatches     bool
		noCombine      bool
		permutationCap int
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match a sample's variant calls against the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if samplePath == "" {
				return fmt.Errorf("--sample is required")
			}
			return runMatch(cmd.Context(), matchArgs{
				catalogPath:    catalogPath,
				samplePath:     samplePath,
				outsideFile:    outsideFile,
				outputPath:     outputPath,
				allMatches:     allMatches,
				noCombine:      noCombine,
				permutationCap: permutationCap,
			})
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog source: a directory of per-gene JSON files, or a DuckDB database path (overrides config)")
	cmd.Flags().StringVar(&samplePath, "sample", "", "sample variant TSV ('-' for stdin)")
	cmd.Flags().StringVar(&outsideFile, "outside-calls", "", "TSV of gene\\tdiplotype outside calls to check for collisions with in-sample calls")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&allMatches, "all-matches", false, "report every enumerated diplotype, not just the top score tier")
	cmd.Flags().BoolVar(&noCombine, "no-combinations", false, "disable the combination synthesizer fallback")
	cmd.Flags().IntVar(&permutationCap, "permutation-cap", 0, "permutation cap per gene (overrides config)")

	return cmd
}

type matchArgs struct {
	catalogPath    string
	samplePath     string
	outsideFile    string
	outputPath     string
	allMatches     bool
	noCombine      bool
	permutationCap int
}

func runMatch(ctx context.Context, a matchArgs) error {
	genes, err := loadCatalog(ctx, a.catalogPath)
	if err != nil {
		return err
	}

	reader, err := variantio.NewTSVReader(a.samplePath)
	if err != nil {
		return err
	}
	defer reader.Close()

	records, err := reader.ReadAll()
	if err != nil {
		return err
	}

	var outsideCalls []outsidecall.Call
	if a.outsideFile != "" {
		f, err := os.Open(a.outsideFile)
		if err != nil {
			return fmt.Errorf("open outside calls file: %w", err)
		}
		defer f.Close()
		outsideCalls, err = outsidecall.ParseTSV(f)
		if err != nil {
			return err
		}
	}

	permutationCap := a.permutationCap
	if permutationCap == 0 {
		permutationCap = cfg.Match.PermutationCap
	}

	opts := result.Options{
		PermutationCap:  permutationCap,
		AllMatches:      a.allMatches || cfg.Match.AllMatches,
		UseCombinations: cfg.Match.UseCombinations && !a.noCombine,
	}

	sampleReader := sample.NewReader()
	tasks := make([]result.GeneTask, len(genes))
	for i, gene := range genes {
		alleles, err := sampleReader.Read(gene.Gene, gene.Loci, records)
		tasks[i] = result.GeneTask{Seq: i, Gene: gene, Alleles: alleles, Err: err}
	}

	results, err := result.RunGenes(ctx, tasks, cfg.Match.Workers, opts)
	if err != nil {
		return err
	}

	// Outside calls never change matcher output: a gene the sample covers
	// is matched and emitted regardless of an outside call naming it. A
	// collision between the two is a run-fatal error surfaced alongside
	// that output, not in place of it.
	calledGenes := make(map[string]bool, len(results))
	for _, r := range results {
		if r.Called {
			calledGenes[r.Gene] = true
		}
	}
	collisions := outsidecall.CheckCollisions(outsideCalls, calledGenes)

	out := io.Writer(os.Stdout)
	if a.outputPath != "" {
		f, err := os.Create(a.outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := report.Write(out, results); err != nil {
		return err
	}

	if len(collisions) > 0 {
		return errors.Join(collisions...)
	}
	return nil
}

// loadCatalog resolves a catalog source, falling back to config when path
// is empty (config.Catalog.DuckDB takes precedence over config.Catalog.Dir).
// A path that exists and is not a directory selects the DuckDB loader;
// anything else is treated as a JSON directory.
func loadCatalog(ctx context.Context, path string) ([]*catalog.GeneDefinition, error) {
	if path == "" {
		if cfg.Catalog.DuckDB != "" {
			return catalog.LoadDuckDB(ctx, cfg.Catalog.DuckDB)
		}
		if cfg.Catalog.Dir != "" {
			return catalog.LoadDir(ctx, cfg.Catalog.Dir)
		}
		return nil, fmt.Errorf("no catalog source configured: set --catalog, or catalog.dir/catalog.duckdb in config")
	}

	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		return catalog.LoadDuckDB(ctx, path)
	}
	return catalog.LoadDir(ctx, path)
}
