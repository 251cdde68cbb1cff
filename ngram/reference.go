package ngram

// RefStats holds the statistics of one segment's reference set.
type RefStats struct {
	// Ngrams holds, for each n-gram, its maximum count over the references.
	Ngrams Counts
	// ClosestLen is the token length of the reference closest in length to
	// the hypothesis. Ties go to the shorter reference.
	ClosestLen int
	// ClosestDiff is |hypLen - ClosestLen|.
	ClosestDiff int
}

// References merges the word n-grams (orders 1..maxOrder) of refs by
// per-key maximum and selects the closest reference length for a hypothesis
// of hypLen tokens. refs must be tokenized already.
func References(hypLen int, refs []string, maxOrder int) RefStats {
	stats := RefStats{Ngrams: make(Counts)}
	for i, ref := range refs {
		tokens := Fields(ref)
		refLen := len(tokens)
		diff := hypLen - refLen
		if diff < 0 {
			diff = -diff
		}

		switch {
		case i == 0 || diff < stats.ClosestDiff:
			stats.ClosestDiff = diff
			stats.ClosestLen = refLen
		case diff == stats.ClosestDiff && refLen < stats.ClosestLen:
			stats.ClosestLen = refLen
		}

		stats.Ngrams.MergeMax(FromTokens(tokens, 1, maxOrder))
	}
	return stats
}
