package combination

import (
	"sort"

	"github.com/msilver727/pharmcat/internal/catalog"
	"github.com/msilver727/pharmcat/internal/matchdata"
)

// Synthesize runs the Combination Synthesizer over every sample permutation
// that no single catalog haplotype fully explains, per spec.md §4.5. For
// each such permutation it greedily accumulates disjoint, mutually
// consistent partial matches into the largest CombinationMatch it can (full
// coverage or not), and falls back to an off-reference partial when not
// even one catalog haplotype is consistent with the permutation at all.
//
// The result is a deduplicated set of synthesized haplotypes, ready to be
// merged into the Core Matcher's candidate pool via
// matcher.EnumerateWithCombinations.
func Synthesize(gene string, kept []*catalog.VariantLocus, md *matchdata.MatchData) ([]*matchdata.Haplotype, error) {
	fullyExplained := make(map[string]bool)
	var partialCandidates []*matchdata.Haplotype
	for _, h := range md.Haplotypes {
		if h.Score == 0 || !isFullMatch(h) {
			continue
		}
		for _, seq := range md.Explain(h) {
			fullyExplained[seq.Key()] = true
		}
	}
	partialCandidates = md.Haplotypes

	seen := make(map[string]bool)
	var out []*matchdata.Haplotype

	for _, perm := range md.Permutations {
		if fullyExplained[perm.Key()] {
			continue
		}

		candidates := consistentWith(partialCandidates, md, perm)
		if len(candidates) == 0 {
			partial := OffReferencePartial(gene, kept, perm)
			if !seen[partial.ID] {
				seen[partial.ID] = true
				out = append(out, partial)
			}
			continue
		}

		combos, err := buildCombinations(gene, candidates)
		if err != nil {
			return nil, err
		}
		for _, c := range combos {
			if !seen[c.ID] {
				seen[c.ID] = true
				out = append(out, c)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func isFullMatch(h *matchdata.Haplotype) bool {
	for i := 0; i < h.NumPositions(); i++ {
		if !h.IsSpecifiedAt(i) {
			return false
		}
	}
	return true
}

func consistentWith(haplotypes []*matchdata.Haplotype, md *matchdata.MatchData, perm matchdata.Sequence) []*matchdata.Haplotype {
	var out []*matchdata.Haplotype
	for _, h := range haplotypes {
		if h.Score == 0 {
			continue
		}
		for _, seq := range md.Explain(h) {
			if seq.Key() == perm.Key() {
				out = append(out, h)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// buildCombinations greedily seeds a combination from every candidate in
// turn, growing it with any later candidate whose positions remain
// disjoint, per spec.md §4.5 steps 1-3. Only sets with two or more
// components are genuine CombinationMatches; a lone seed that merges with
// nothing is left for the Core Matcher, which already matches it as a plain
// haplotype.
func buildCombinations(gene string, candidates []*matchdata.Haplotype) ([]*matchdata.Haplotype, error) {
	var out []*matchdata.Haplotype
	for seedIdx, seed := range candidates {
		group := []*matchdata.Haplotype{seed}
		for i, cand := range candidates {
			if i == seedIdx {
				continue
			}
			if mergesWithAll(group, cand) {
				group = append(group, cand)
			}
		}
		if len(group) < 2 {
			continue
		}
		merged, err := Merge(gene, group)
		if err != nil {
			return nil, err
		}
		out = append(out, merged)
	}
	return out, nil
}

func mergesWithAll(group []*matchdata.Haplotype, cand *matchdata.Haplotype) bool {
	for _, g := range group {
		if !Mergeable(g, cand) {
			return false
		}
	}
	return true
}
