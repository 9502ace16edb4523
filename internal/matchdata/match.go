package matchdata

// Explain returns every permutation in md.Permutations that is compatible
// with h at every kept position h specifies (Wildcard and unspecified
// positions always satisfy). It is the first half of "does this haplotype
// have a straight match": a haplotype matches if Explain is non-empty.
func (md *MatchData) Explain(h *Haplotype) []Sequence {
	var out []Sequence
	for _, seq := range md.Permutations {
		if md.satisfies(h, seq) {
			out = append(out, seq)
		}
	}
	return out
}

func (md *MatchData) satisfies(h *Haplotype, seq Sequence) bool {
	for i := 0; i < len(md.Genotypes); i++ {
		if !h.IsSpecifiedAt(i) {
			continue
		}
		lit := seq.At(i)
		if lit == Wildcard {
			continue
		}
		if !containsLiteral(h.LiteralsAt(i), lit) {
			return false
		}
	}
	return true
}

// Reconstitutes reports whether the pair (h1, h2) jointly reconstitutes the
// sample's original genotype calls at every kept position both haplotypes
// specify, per spec.md §4.4. This is stricter than "each of h1, h2 has a
// straight match independently": two otherwise-valid permutations can each
// explain the SAME observed literal at a heterozygous position without
// together covering both of the position's original alleles, which would
// under-constrain the diplotype. Positions neither haplotype specifies are
// ignored; positions only one specifies are checked against that
// haplotype's own straight match only.
func (md *MatchData) Reconstitutes(h1, h2 *Haplotype) bool {
	for i, g := range md.Genotypes {
		spec1 := h1.IsSpecifiedAt(i)
		spec2 := h2.IsSpecifiedAt(i)
		if !spec1 && !spec2 {
			continue
		}
		if g.IsMissing {
			continue
		}

		if spec1 && !positionSatisfied(h1, i, g.Allele1) && !positionSatisfied(h1, i, g.Allele2) {
			return false
		}
		if spec2 && !positionSatisfied(h2, i, g.Allele1) && !positionSatisfied(h2, i, g.Allele2) {
			return false
		}

		if !spec1 || !spec2 {
			continue
		}

		if g.Homozygous {
			if !positionSatisfied(h1, i, g.Allele1) || !positionSatisfied(h2, i, g.Allele1) {
				return false
			}
			continue
		}

		// Heterozygous and both sides specified: the pair must jointly
		// cover {Allele1, Allele2}, one side each, in either order.
		direct := positionSatisfied(h1, i, g.Allele1) && positionSatisfied(h2, i, g.Allele2)
		swapped := positionSatisfied(h1, i, g.Allele2) && positionSatisfied(h2, i, g.Allele1)
		if !direct && !swapped {
			return false
		}
		if g.Phased && !direct {
			// Phased heterozygous calls fix which chromosome carries which
			// allele; only the direct assignment (h1 <- Allele1, h2 <-
			// Allele2) is valid. Callers are expected to try both orderings
			// of (h1, h2) across the diplotype enumeration, so rejecting
			// the swapped assignment here does not lose coverage.
			return false
		}
	}
	return true
}

func positionSatisfied(h *Haplotype, i int, allele string) bool {
	return containsLiteral(h.LiteralsAt(i), allele)
}

func containsLiteral(lits []string, lit string) bool {
	for _, l := range lits {
		if l == lit {
			return true
		}
	}
	return false
}
