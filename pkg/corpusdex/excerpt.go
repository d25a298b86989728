package corpusdex

import "sort"

// HighlightRange is a byte-offset pair into a SearchLineItem's excerpt text
// marking one matched word.
type HighlightRange struct {
	Beginning int
	End       int
}

// SearchLineItem is a query-intermediate: one excerpt and everything needed
// to rank and merge it, per spec.md §3. Line-items are cacheable per
// (index_name, search_term) and merged across terms/keystrokes by matching
// on (EntryIndex, ContentOffset), per spec.md §4.J.
type SearchLineItem struct {
	EntryIndex          EntryIndex
	Text                string
	HighlightRanges     []HighlightRange
	ContentOffset       int
	Score               float64
	Fields              map[string]string
	InternalAnnotations []WordAnnotation
	URLSuffix           string
}

// anchorHit is one matched posting plus the word-list index it resolved to,
// used internally while assembling excerpts for a single entry.
type anchorHit struct {
	posting  Posting
	wordIdx  int
	wordLen  int
}

// assembleExcerpts implements spec.md §4.K: for each hit, find the byte
// window [excerpt_buffer words before, excerpt_buffer words after], coalesce
// overlapping/adjacent windows, and compute highlight ranges relative to
// each window's start. At most maxExcerpts line items are returned, ordered
// by score desc then by word_offset asc. entryIdx is stamped onto every
// returned item so callers can merge line-items across entries (see
// mergeLineItems in merge.go).
func assembleExcerpts(entryIdx EntryIndex, entry Entry, hits []Posting, excerptBuffer int, maxExcerpts int) []SearchLineItem {
	if len(hits) == 0 {
		return nil
	}

	words := Tokenize(entry.Contents)
	offsetIndex := make(map[int]int, len(words))
	for i, w := range words {
		offsetIndex[w.ByteOffset] = i
	}

	anchors := make([]anchorHit, 0, len(hits))
	for _, h := range hits {
		idx, ok := offsetIndex[h.WordOffset]
		if !ok {
			continue
		}
		anchors = append(anchors, anchorHit{posting: h, wordIdx: idx, wordLen: len(words[idx].Word)})
	}
	if len(anchors) == 0 {
		return nil
	}

	sort.Slice(anchors, func(i, j int) bool { return anchors[i].wordIdx < anchors[j].wordIdx })

	type window struct {
		L, R    int
		anchors []anchorHit
	}
	var windows []window
	for _, a := range anchors {
		start := a.wordIdx - excerptBuffer
		if start < 0 {
			start = 0
		}
		end := a.wordIdx + excerptBuffer
		if end >= len(words) {
			end = len(words) - 1
		}
		L := words[start].ByteOffset
		R := words[end].ByteOffset + len(words[end].Word)

		if n := len(windows); n > 0 && L <= windows[n-1].R {
			windows[n-1].R = max(windows[n-1].R, R)
			windows[n-1].anchors = append(windows[n-1].anchors, a)
			continue
		}
		windows = append(windows, window{L: L, R: R, anchors: []anchorHit{a}})
	}

	items := make([]SearchLineItem, 0, len(windows))
	for _, w := range windows {
		var ranges []HighlightRange
		var annotations []WordAnnotation
		var urlSuffix string
		var score float64
		for _, a := range w.anchors {
			beginning := a.posting.WordOffset - w.L
			ranges = append(ranges, HighlightRange{Beginning: beginning, End: beginning + a.wordLen})
			if a.posting.Annotation.HasSRTSuffix {
				annotations = append(annotations, a.posting.Annotation)
				urlSuffix = a.posting.Annotation.SRTURLSuffix
			}
			score += a.posting.Importance
		}

		items = append(items, SearchLineItem{
			EntryIndex:          entryIdx,
			Text:                entry.Contents[w.L:w.R],
			HighlightRanges:     ranges,
			ContentOffset:       w.L,
			Score:               score,
			Fields:              entry.Fields,
			InternalAnnotations: annotations,
			URLSuffix:           urlSuffix,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ContentOffset < items[j].ContentOffset
	})

	if len(items) > maxExcerpts {
		items = items[:maxExcerpts]
	}
	return items
}
