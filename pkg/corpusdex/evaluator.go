package corpusdex

import (
	"sort"
	"strings"
)

// Result is one ranked hit returned by Search.
type Result struct {
	Entry                Entry
	Score                float64
	Excerpts             []SearchLineItem
	TitleHighlightRanges []HighlightRange
}

// SearchOutput is the shaped, bounded result of a query, per spec.md §6.
type SearchOutput struct {
	TotalHitCount int
	Results       []Result
	URLPrefix     string
}

// entryAggregate accumulates a query's per-term postings for one entry
// while resolveTerms walks the term list.
type entryAggregate struct {
	score        float64
	postings     []Posting
	matchedExact map[string]bool
}

// resolveTerm implements spec.md §4.I's per-term resolution rules.
func resolveTerm(idx *Index, term SearchTerm) []Posting {
	if term.Exact {
		c, ok := idx.Containers[term.Word]
		if !ok {
			return nil
		}
		return flattenPostings(c)
	}

	var out []Posting

	if c, ok := idx.Containers[term.Word]; ok {
		out = append(out, flattenPostings(c)...)
		for _, alias := range c.Aliases {
			if ac, ok := idx.Containers[alias]; ok {
				out = append(out, flattenPostings(ac)...)
			}
		}
	}

	for key, c := range idx.Containers {
		if key == term.Word || !strings.HasPrefix(key, term.Word) {
			continue
		}
		discount := float64(len(term.Word)) / float64(len(key))
		for _, p := range flattenPostings(c) {
			p.Importance *= discount
			out = append(out, p)
		}
	}

	return out
}

func flattenPostings(c *Container) []Posting {
	var out []Posting
	for _, postings := range c.Entries {
		out = append(out, postings...)
	}
	return out
}

// aggregateTerms groups resolved postings by entry and drops entries that
// fail to match every ExactWord term, per spec.md §4.I. A term contributes
// its single best-scoring posting per entry to that entry's score (so an
// entry matching a term through several occurrences, or through both a
// Title and a Contents posting, isn't rewarded repeat-count over a single
// strong title hit) — every matching posting is still kept for excerpt
// assembly.
func aggregateTerms(idx *Index, terms []SearchTerm) map[EntryIndex]*entryAggregate {
	var exactTerms []string
	for _, t := range terms {
		if t.Exact {
			exactTerms = append(exactTerms, t.Word)
		}
	}

	agg := make(map[EntryIndex]*entryAggregate)
	ensure := func(entryIdx EntryIndex) *entryAggregate {
		a, ok := agg[entryIdx]
		if !ok {
			a = &entryAggregate{matchedExact: make(map[string]bool)}
			agg[entryIdx] = a
		}
		return a
	}

	for _, t := range terms {
		bestPerEntry := make(map[EntryIndex]float64)
		for _, p := range resolveTerm(idx, t) {
			a := ensure(p.EntryIndex)
			a.postings = append(a.postings, p)
			if t.Exact {
				a.matchedExact[t.Word] = true
			}
			if p.Importance > bestPerEntry[p.EntryIndex] {
				bestPerEntry[p.EntryIndex] = p.Importance
			}
		}
		for entryIdx, best := range bestPerEntry {
			agg[entryIdx].score += best
		}
	}

	for entryIdx, a := range agg {
		for _, w := range exactTerms {
			if !a.matchedExact[w] {
				delete(agg, entryIdx)
				break
			}
		}
	}
	return agg
}

// EvaluateTerm is component J's per-term entry point, per spec.md §4.J: it
// resolves term against idx and assembles the content-sourced excerpt
// line-items for every entry it matches. A caller serving incremental
// (keystroke-by-keystroke) search evaluates only the term that just
// changed with EvaluateTerm, then folds the result into its cached
// SearchValue with MergeSearchValues — cheaper than re-running Search
// (which re-evaluates and re-ranks every term) on every keystroke.
func EvaluateTerm(idx *Index, term SearchTerm) []SearchLineItem {
	byEntry := make(map[EntryIndex][]Posting)
	for _, p := range resolveTerm(idx, term) {
		if p.Source != SourceContents {
			continue
		}
		byEntry[p.EntryIndex] = append(byEntry[p.EntryIndex], p)
	}

	var items []SearchLineItem
	for entryIdx, postings := range byEntry {
		entry := idx.Entries[entryIdx]
		items = append(items, assembleExcerpts(entryIdx, entry, postings, int(idx.Settings.ExcerptBuffer), int(idx.Settings.ExcerptsPerResult))...)
	}
	return items
}

// Search is the top-level query entry point described in spec.md §6: parse
// the query, resolve and aggregate terms against idx, rank entries, and
// shape excerpts and highlight ranges for the bounded result set.
func Search(idx *Index, query string) (SearchOutput, error) {
	terms := ParseQuery(query, idx.Settings.MinimumQueryLength)
	if len(terms) == 0 {
		return SearchOutput{URLPrefix: idx.Settings.URLPrefix}, nil
	}

	agg := aggregateTerms(idx, terms)

	type scoredEntry struct {
		entryIdx EntryIndex
		agg      *entryAggregate
	}
	all := make([]scoredEntry, 0, len(agg))
	for entryIdx, a := range agg {
		all = append(all, scoredEntry{entryIdx: entryIdx, agg: a})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].agg.score != all[j].agg.score {
			return all[i].agg.score > all[j].agg.score
		}
		return all[i].entryIdx < all[j].entryIdx
	})

	total := len(all)
	if limit := int(idx.Settings.DisplayedResultsCount); limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	results := make([]Result, 0, len(all))
	for _, s := range all {
		entry := idx.Entries[s.entryIdx]
		bodyHits, titleHits := splitPostingsBySource(s.agg.postings)

		excerpts := assembleExcerpts(s.entryIdx, entry, bodyHits, int(idx.Settings.ExcerptBuffer), int(idx.Settings.ExcerptsPerResult))
		excerpts = mergeLineItems(excerpts)

		results = append(results, Result{
			Entry:                entry,
			Score:                s.agg.score,
			Excerpts:             excerpts,
			TitleHighlightRanges: titleHighlightRanges(entry, titleHits),
		})
	}

	return SearchOutput{
		TotalHitCount: total,
		Results:       results,
		URLPrefix:     idx.Settings.URLPrefix,
	}, nil
}

func splitPostingsBySource(postings []Posting) (body []Posting, title []Posting) {
	for _, p := range postings {
		if p.Source == SourceTitle {
			title = append(title, p)
		} else {
			body = append(body, p)
		}
	}
	return body, title
}

// titleHighlightRanges resolves title-sourced postings (whose WordOffset is
// relative to entry.Title, not entry.Contents) into highlight ranges over
// the title text itself.
func titleHighlightRanges(entry Entry, titleHits []Posting) []HighlightRange {
	if len(titleHits) == 0 {
		return nil
	}

	words := Tokenize(entry.Title)
	lengthAt := make(map[int]int, len(words))
	for _, w := range words {
		lengthAt[w.ByteOffset] = len(w.Word)
	}

	seen := make(map[HighlightRange]bool, len(titleHits))
	var ranges []HighlightRange
	for _, p := range titleHits {
		wordLen, ok := lengthAt[p.WordOffset]
		if !ok {
			continue
		}
		r := HighlightRange{Beginning: p.WordOffset, End: p.WordOffset + wordLen}
		if seen[r] {
			continue
		}
		seen[r] = true
		ranges = append(ranges, r)
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Beginning < ranges[j].Beginning })
	return ranges
}
