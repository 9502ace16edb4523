// Package report serializes matcher results into the JSON shape spec.md §6
// describes for external consumption.
package report

import (
	"encoding/json"
	"io"

	"github.com/msilver727/pharmcat/internal/result"
)

// sideJSON mirrors result.Side for stable field ordering and naming in the
// emitted document (a combination's components list is omitted, not null,
// when empty).
type sideJSON struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Components   []string `json:"components,omitempty"`
	OffReference bool     `json:"offReference,omitempty"`
}

type diplotypeJSON struct {
	Left  sideJSON `json:"left"`
	Right sideJSON `json:"right"`
	Score int      `json:"score"`
}

type variantJSON struct {
	Position int64  `json:"position"`
	RSID     string `json:"rsid,omitempty"`
	Missing  bool   `json:"missing"`
	Mismatch bool   `json:"mismatch"`
	Zygosity string `json:"zygosity"`
}

type geneJSON struct {
	Gene       string          `json:"gene"`
	Called     bool            `json:"called"`
	Phased     bool            `json:"phased"`
	State      string          `json:"state"`
	Diplotypes []diplotypeJSON `json:"diplotypes"`
	Variants   []variantJSON   `json:"variants"`
	Warnings   []string        `json:"warnings"`
}

// Write serializes a set of per-gene Results as a JSON array, one object
// per gene, in the order given.
func Write(w io.Writer, results []*result.Result) error {
	docs := make([]geneJSON, len(results))
	for i, r := range results {
		docs[i] = toJSON(r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

// MarshalOne encodes a single gene's Result in the same shape Write uses
// per array element, for callers (the HTTP surface) that serve one gene
// per response instead of a batch.
func MarshalOne(r *result.Result) ([]byte, error) {
	return json.Marshal(toJSON(r))
}

func toJSON(r *result.Result) geneJSON {
	diplotypes := make([]diplotypeJSON, len(r.Diplotypes))
	for i, d := range r.Diplotypes {
		diplotypes[i] = diplotypeJSON{
			Left:  sideJSON{ID: d.Left.ID, Name: d.Left.Name, Components: d.Left.Components, OffReference: d.Left.OffReference},
			Right: sideJSON{ID: d.Right.ID, Name: d.Right.Name, Components: d.Right.Components, OffReference: d.Right.OffReference},
			Score: d.Score,
		}
	}

	variants := make([]variantJSON, len(r.VariantReports))
	for i, v := range r.VariantReports {
		variants[i] = variantJSON{
			Position: v.Locus.Position,
			RSID:     v.DbSNPID,
			Missing:  v.Missing,
			Mismatch: v.Mismatch,
			Zygosity: v.Zygosity,
		}
	}

	return geneJSON{
		Gene:       r.Gene,
		Called:     r.Called,
		Phased:     r.Phased,
		State:      string(r.State),
		Diplotypes: diplotypes,
		Variants:   variants,
		Warnings:   r.Warnings,
	}
}
