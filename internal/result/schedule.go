package result

import (
	"context"
	"runtime"
	"sync"

	"github.com/msilver727/pharmcat/internal/catalog"
	"github.com/msilver727/pharmcat/internal/sample"
)

// GeneTask is one gene's matcher pass, numbered so RunGenes can reassemble
// results in input order regardless of which worker finishes first. Err, if
// set, is a failure that befell the gene before Assemble could run (e.g. a
// malformed sample record) — the worker turns it into a not-called Result
// without calling Assemble.
type GeneTask struct {
	Seq     int
	Gene    *catalog.GeneDefinition
	Alleles []sample.SampleAllele
	Err     error
}

// geneResult is the internal wire type a worker sends back; RunGenes never
// exposes the sequence number to callers.
type geneResult struct {
	Seq    int
	Result *Result
	Err    error
}

// RunGenes runs one Assemble pass per task on a bounded worker pool — genes
// are embarrassingly parallel, spec.md's concurrency model notes, since a
// gene's matcher pass never touches another gene's data. Results are
// reassembled in task order before being returned, so the output is a
// deterministic function of (catalog, sample) regardless of how many
// workers ran or in what order they finished — spec.md §6's ordering
// guarantee. If workers is 0, runtime.NumCPU() is used.
//
// Per spec.md §7's propagation policy, a single gene's error (excessive
// permutations, a malformed sample record) never aborts a multi-gene run:
// it is captured into that gene's Result (Called=false, a warning, Err
// set) and the run continues. The one exception is a run over exactly one
// gene, where the error is still the whole run's outcome and is returned
// directly so the CLI can map it to its specific exit code. ctx
// cancellation is checked at the top of each gene's pass and always aborts
// the run, since it reflects the caller giving up, not a per-gene
// condition.
func RunGenes(ctx context.Context, tasks []GeneTask, workers int, opts Options) ([]*Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	single := len(tasks) == 1

	items := make(chan GeneTask, len(tasks))
	for _, t := range tasks {
		items <- t
	}
	close(items)

	results := make(chan geneResult, len(tasks))
	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for task := range items {
				select {
				case <-ctx.Done():
					results <- geneResult{Seq: task.Seq, Err: ctx.Err()}
					continue
				default:
				}

				if task.Err != nil {
					if single {
						results <- geneResult{Seq: task.Seq, Err: task.Err}
						continue
					}
					results <- geneResult{Seq: task.Seq, Result: notCalled(task.Gene.Gene, task.Err)}
					continue
				}

				r, err := Assemble(task.Gene, task.Alleles, opts)
				if err != nil {
					if single {
						results <- geneResult{Seq: task.Seq, Err: err}
						continue
					}
					results <- geneResult{Seq: task.Seq, Result: notCalled(task.Gene.Gene, err)}
					continue
				}
				results <- geneResult{Seq: task.Seq, Result: r}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]*Result, len(tasks))
	var firstErr error
	for r := range results {
		if r.Err != nil && firstErr == nil {
			firstErr = r.Err
		}
		out[r.Seq] = r.Result
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
