// Package sample implements the Variant Reader: turning raw per-position
// genotype records into the SampleAllele values the Match Data Builder
// consumes. It knows nothing about any on-disk sample format; that is the
// job of internal/variantio.
package sample

import (
	"strconv"
	"strings"

	"github.com/msilver727/pharmcat/internal/catalog"
	"github.com/msilver727/pharmcat/internal/errs"
)

// SampleRecord is one raw genotype call at a (chrom, position), as read
// from whatever sample-variant source is in use. GT follows VCF convention:
// allele indices separated by "/" (unphased) or "|" (phased), where 0 is
// Ref and 1..n index into Alts; "." denotes a no-call allele.
type SampleRecord struct {
	Chrom    string
	Position int64
	Ref      string
	Alts     []string
	GT       string
}

func (r SampleRecord) key() string {
	return (&catalog.VariantLocus{Chrom: r.Chrom, Position: r.Position}).Key()
}

// SampleAllele is the two observed alleles at one (chrom, position):
// unordered for unphased samples, ordered for phased ones.
type SampleAllele struct {
	Chrom     string
	Position  int64
	Allele1   string
	Allele2   string
	Phased    bool
	IsMissing bool
}

// Reader turns SampleRecords into SampleAlleles at catalog positions.
type Reader struct{}

// NewReader creates a Variant Reader.
func NewReader() *Reader { return &Reader{} }

// Read produces one SampleAllele per locus for which records contains a
// record, in locus order. Loci with no matching record are simply absent
// from the result (the Match Data Builder treats that as "gene missing").
// Two records at the same position with differing content is AmbiguousLocus;
// a structurally invalid GT is MalformedVariant.
func (r *Reader) Read(gene string, loci []*catalog.VariantLocus, records []SampleRecord) ([]SampleAllele, error) {
	byKey := make(map[string]SampleRecord, len(records))
	for _, rec := range records {
		key := rec.key()
		if existing, ok := byKey[key]; ok {
			if existing.Ref != rec.Ref || existing.GT != rec.GT || strings.Join(existing.Alts, ",") != strings.Join(rec.Alts, ",") {
				return nil, errs.AmbiguousLocus(gene, rec.Position, "conflicting records at %s:%d", rec.Chrom, rec.Position)
			}
			continue
		}
		byKey[key] = rec
	}

	var out []SampleAllele
	for _, locus := range loci {
		rec, ok := byKey[locus.Key()]
		if !ok {
			continue
		}

		sa, err := parseGenotype(gene, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, sa)
	}
	return out, nil
}

func parseGenotype(gene string, rec SampleRecord) (SampleAllele, error) {
	gt := strings.TrimSpace(rec.GT)
	if gt == "" || gt == "." || gt == "./." || gt == ".|." {
		return SampleAllele{Chrom: rec.Chrom, Position: rec.Position, IsMissing: true}, nil
	}

	phased := strings.Contains(gt, "|")
	sep := "/"
	if phased {
		sep = "|"
	}

	parts := strings.Split(gt, sep)
	if len(parts) != 2 {
		return SampleAllele{}, errs.MalformedVariant(gene, rec.Position, "invalid genotype %q: expected two alleles", rec.GT)
	}

	alleles := make([]string, 2)
	missing := false
	for i, p := range parts {
		if p == "." {
			missing = true
			continue
		}
		idx, err := strconv.Atoi(p)
		if err != nil {
			return SampleAllele{}, errs.MalformedVariant(gene, rec.Position, "invalid genotype index %q", p)
		}
		lit, err := alleleAt(gene, rec, idx)
		if err != nil {
			return SampleAllele{}, err
		}
		alleles[i] = lit
	}

	if missing {
		return SampleAllele{Chrom: rec.Chrom, Position: rec.Position, IsMissing: true}, nil
	}

	return SampleAllele{
		Chrom:    rec.Chrom,
		Position: rec.Position,
		Allele1:  alleles[0],
		Allele2:  alleles[1],
		Phased:   phased,
	}, nil
}

func alleleAt(gene string, rec SampleRecord, idx int) (string, error) {
	if idx == 0 {
		return rec.Ref, nil
	}
	altIdx := idx - 1
	if altIdx < 0 || altIdx >= len(rec.Alts) {
		return "", errs.MalformedVariant(gene, rec.Position, "genotype index %d out of range for %d alt alleles", idx, len(rec.Alts))
	}
	return rec.Alts[altIdx], nil
}
