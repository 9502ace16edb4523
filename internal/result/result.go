// Package result implements the Result Assembler (spec.md §4.6): packaging
// a gene's ranked diplotype candidates, its MatchData, per-position variant
// reports, and advisory warnings into the structure downstream collaborators
// (phenotype mapping, report emission) consume.
package result

import (
	"fmt"

	"github.com/msilver727/pharmcat/internal/catalog"
	"github.com/msilver727/pharmcat/internal/combination"
	"github.com/msilver727/pharmcat/internal/errs"
	"github.com/msilver727/pharmcat/internal/iupac"
	"github.com/msilver727/pharmcat/internal/matchdata"
	"github.com/msilver727/pharmcat/internal/matcher"
	"github.com/msilver727/pharmcat/internal/sample"
)

// Options controls Assemble's behavior across genes.
type Options struct {
	PermutationCap  int  // 0 uses matchdata.DefaultPermutationCap
	AllMatches      bool // false (default) keeps only the top-score tier
	UseCombinations bool // try the Combination Synthesizer when no straight diplotype matches
}

// Side is one half of a diplotype candidate: a plain named-allele
// identifier, or a combination/off-reference descriptor carrying its
// component identifiers.
type Side struct {
	ID           string
	Name         string
	Components   []string // nil for a plain haplotype match
	OffReference bool
}

// DiplotypeView is one ranked diplotype candidate in the shape spec.md §6
// describes for emission: two sides and a score.
type DiplotypeView struct {
	Left  Side
	Right Side
	Score int
}

// VariantReport is the per-position summary spec.md §4.6 calls for: whether
// the position was missing from the sample, whether the observed call
// mismatches the reference, a het/hom/missing classification, and the
// locus's external identifier.
type VariantReport struct {
	Locus    *catalog.VariantLocus
	Missing  bool
	Mismatch bool
	Zygosity string // "homozygous", "heterozygous", "missing"
	DbSNPID  string
}

const (
	ZygosityHomozygous   = "homozygous"
	ZygosityHeterozygous = "heterozygous"
	ZygosityMissing      = "missing"
)

// State names the per-gene matcher pass's terminal state, spec.md's state
// machine: NotCalled (no coverage, or a per-gene error), Straight (the
// result comes from the straight pass; it is empty when nothing matched and
// UseCombinations is off), or Combining (no straight diplotype matched and
// the Combination Synthesizer ran, whether or not it found a candidate).
type State string

const (
	StateNotCalled State = "NotCalled"
	StateStraight  State = "Straight"
	StateCombining State = "Combining"
)

// Result is one gene's complete matcher-pass output.
type Result struct {
	Gene           string
	Called         bool
	Phased         bool
	State          State
	Diplotypes     []DiplotypeView
	MatchData      *matchdata.MatchData
	VariantReports []VariantReport
	Warnings       []string
	Err            error
}

// Assemble runs the full per-gene pipeline: Match Data Builder, Core
// Matcher, and (when no straight diplotype matches and the caller opts in)
// the Combination Synthesizer, then packages VariantReports and warnings.
// A NoCoverage condition is non-fatal: Assemble returns a Result with
// Called=false and State=NotCalled rather than propagating the error.
func Assemble(gene *catalog.GeneDefinition, alleles []sample.SampleAllele, opts Options) (*Result, error) {
	md, err := matchdata.Build(gene, alleles, opts.PermutationCap)
	if err != nil {
		if e, ok := err.(*errs.Error); ok && e.Kind() == errs.KindNoCoverage {
			return &Result{Gene: gene.Gene, Called: false, State: StateNotCalled}, nil
		}
		return nil, err
	}

	ranked := matcher.Enumerate(md)
	state := StateStraight

	if len(ranked) == 0 && opts.UseCombinations {
		synthesized, serr := combination.Synthesize(gene.Gene, md.KeptLoci, md)
		if serr != nil {
			return nil, serr
		}
		ranked = matcher.EnumerateWithCombinations(md, synthesized)
		state = StateCombining
	}

	if !opts.AllMatches {
		ranked = matcher.TopMatch(ranked)
	}

	views := make([]DiplotypeView, len(ranked))
	for i, d := range ranked {
		views[i] = DiplotypeView{Left: sideOf(d.Left.Haplotype), Right: sideOf(d.Right.Haplotype), Score: d.Score}
	}

	reports, warnings := variantReports(md)

	return &Result{
		Gene:           gene.Gene,
		Called:         len(views) > 0,
		Phased:         md.Phased,
		State:          state,
		Diplotypes:     views,
		MatchData:      md,
		VariantReports: reports,
		Warnings:       warnings,
	}, nil
}

// notCalled packages a per-gene error (ExcessivePermutations,
// MalformedVariant, or any other failure that befell a single gene) as a
// not-called Result carrying the error and an advisory warning, per
// spec.md §7's propagation policy: a per-gene error does not abort the run.
func notCalled(gene string, err error) *Result {
	return &Result{
		Gene:     gene,
		Called:   false,
		State:    StateNotCalled,
		Warnings: []string{err.Error()},
		Err:      err,
	}
}

func sideOf(h *matchdata.Haplotype) Side {
	var components []string
	for _, c := range h.Components {
		components = append(components, c.ID)
	}
	return Side{ID: h.ID, Name: h.Name, Components: components, OffReference: h.OffReference}
}

func variantReports(md *matchdata.MatchData) ([]VariantReport, []string) {
	var reports []VariantReport
	var warnings []string

	for _, locus := range md.GeneMissingLoci {
		reports = append(reports, VariantReport{Locus: locus, Missing: true, Zygosity: ZygosityMissing, DbSNPID: locus.RSID})
		warnings = append(warnings, fmt.Sprintf("position %s missing from sample", locus.Key()))
	}

	for _, g := range md.Genotypes {
		r := VariantReport{Locus: g.Locus, DbSNPID: g.Locus.RSID}
		switch {
		case g.IsMissing:
			r.Zygosity = ZygosityMissing
			warnings = append(warnings, fmt.Sprintf("genotype missing at %s", g.Locus.Key()))
		case g.Homozygous:
			r.Zygosity = ZygosityHomozygous
			r.Mismatch = g.Mismatch()
		default:
			r.Zygosity = ZygosityHeterozygous
			r.Mismatch = g.Mismatch()
		}
		if !g.IsMissing && (iupac.IsAmbiguous(g.Allele1) || iupac.IsAmbiguous(g.Allele2)) {
			warnings = append(warnings, fmt.Sprintf("ambiguity code expanded at %s", g.Locus.Key()))
		}
		reports = append(reports, r)
	}

	return reports, warnings
}
