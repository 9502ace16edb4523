// Package outsidecall implements the outside-call collaborator: parsing
// externally-supplied gene diplotype calls and detecting when they collide
// with a gene the matcher itself covered from in-sample data. This is
// collaborator-layer logic, not part of the matcher core (spec.md §6).
package outsidecall

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/msilver727/pharmcat/internal/errs"
)

// Call is one externally-supplied diplotype call for a gene, bypassing the
// matcher entirely.
type Call struct {
	Gene      string
	Diplotype string // e.g. "*1/*2", opaque to this package
}

// ParseTSV reads a two-column (gene, diplotype) outside-call TSV. Blank
// lines and "#"-prefixed comment lines are skipped, matching the sample
// TSV convention in internal/variantio.
func ParseTSV(r io.Reader) ([]Call, error) {
	scanner := bufio.NewScanner(r)
	var calls []Call
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return nil, fmt.Errorf("outside-call line %d: expected 2 tab-separated fields, got %d", lineNum, len(fields))
		}
		calls = append(calls, Call{Gene: fields[0], Diplotype: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return calls, nil
}

// CheckCollisions reports OutsideCallCollision for every gene present in
// both outside calls and the matcher's own called genes. calledGenes should
// contain only genes the matcher marked Called (spec.md: "both in-sample
// and outside calls cover the same gene").
func CheckCollisions(calls []Call, calledGenes map[string]bool) []error {
	var errsOut []error
	for _, c := range calls {
		if calledGenes[c.Gene] {
			errsOut = append(errsOut, errs.OutsideCallCollision(c.Gene))
		}
	}
	return errsOut
}
