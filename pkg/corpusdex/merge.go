package corpusdex

// SearchValue is the cache-keyed bundle described in spec.md §3/§4.J: "a
// mapping SearchTerm -> Vec<SearchLineItem>". A client typing incrementally
// holds one of these across keystrokes; when the query gains or changes a
// term, the caller computes that term's line-items with EvaluateTerm and
// folds the result into the cache with MergeSearchValues, instead of
// re-evaluating every term the user already typed.
type SearchValue map[SearchTerm][]SearchLineItem

// MergeSearchValues folds b into a, term by term. Line-items contributed
// under the same term by both a and b are then coalesced by
// mergeLineItems: a coalesced item's score is the sum of both and its
// highlight ranges are their deduplicated union, whichever argument comes
// first. The order of items within a term, the order of a coalesced item's
// highlight ranges and annotations, and the Text and URLSuffix it keeps
// follow argument order (a before b), so merge(a, b) and merge(b, a) hold
// the same items with the same scores but are not equal slice for slice.
func MergeSearchValues(a, b SearchValue) SearchValue {
	out := make(SearchValue, len(a)+len(b))
	for term, items := range a {
		out[term] = append(out[term], items...)
	}
	for term, items := range b {
		out[term] = append(out[term], items...)
	}
	for term, items := range out {
		out[term] = mergeLineItems(items)
	}
	return out
}

// mergeLineItems coalesces SearchLineItems for the same (entry_index,
// content_offset) by summing scores and union-ing (deduplicated)
// highlight_ranges, per spec.md §4.J. Used both by MergeSearchValues across
// cached keystrokes and internally by Search to coalesce excerpt windows
// produced within a single evaluation.
func mergeLineItems(items []SearchLineItem) []SearchLineItem {
	type key struct {
		entry  EntryIndex
		offset int
	}
	index := make(map[key]int)
	var out []SearchLineItem

	for _, item := range items {
		k := key{entry: item.EntryIndex, offset: item.ContentOffset}
		if i, ok := index[k]; ok {
			out[i].Score += item.Score
			out[i].HighlightRanges = dedupRanges(append(out[i].HighlightRanges, item.HighlightRanges...))
			out[i].InternalAnnotations = append(out[i].InternalAnnotations, item.InternalAnnotations...)
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}
	return out
}

func dedupRanges(ranges []HighlightRange) []HighlightRange {
	seen := make(map[HighlightRange]bool, len(ranges))
	out := ranges[:0]
	for _, r := range ranges {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
