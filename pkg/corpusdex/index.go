package corpusdex

import (
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// EntryIndex is a dense, 0-based ordinal identifying an Entry within an
// Index's Entries slice.
type EntryIndex int

// Entry is a single indexed document. Entries are immutable once built.
type Entry struct {
	Title    string
	URL      string
	Fields   map[string]string
	Contents string

	// ContentHash is an xxhash fingerprint of Contents, precomputed at build
	// time so a caller holding a previous index (a long-running `serve`
	// process, a client-side cache) can tell whether a document actually
	// changed without diffing its full text.
	ContentHash uint64
}

// hashContents returns the xxhash fingerprint used to populate ContentHash.
func hashContents(contents string) uint64 {
	return xxhash.Sum64String(contents)
}

// WordListSource tags where a posting's word came from, used at query time
// to bias scoring.
type WordListSource uint8

const (
	SourceContents WordListSource = iota
	SourceTitle
)

// WordAnnotation is an internal per-word annotation. Only SRT cues carry one
// today.
type WordAnnotation struct {
	HasSRTSuffix bool
	SRTURLSuffix string
}

// Posting is one occurrence of a word in one entry.
type Posting struct {
	EntryIndex EntryIndex
	WordOffset int
	Importance float64
	Source     WordListSource
	Annotation WordAnnotation
}

// bits returns the IEEE-754 bit pattern of Importance, used so postings
// compare and sort deterministically despite carrying a float score.
func (p Posting) bits() uint64 { return math.Float64bits(p.Importance) }

// Equal compares two postings bitwise on their float score, per spec.md §3.
func (p Posting) Equal(other Posting) bool {
	return p.EntryIndex == other.EntryIndex &&
		p.WordOffset == other.WordOffset &&
		p.bits() == other.bits() &&
		p.Source == other.Source
}

// Container is the inverted posting bucket for one surface word.
type Container struct {
	Entries map[EntryIndex][]Posting
	Aliases []string
}

// Index is the top-level aggregate produced by Build and consumed by Search.
type Index struct {
	Entries    []Entry
	Containers map[string]*Container
	Settings   OutputConfig
}

// Validate checks the invariants documented in spec.md §3: every posting's
// EntryIndex is in-bounds, no container is empty, alias chains are a single
// hop, and Settings are within documented ranges.
func (idx *Index) Validate() error {
	for word, c := range idx.Containers {
		if len(c.Entries) == 0 {
			return fmt.Errorf("container %q has no entries", word)
		}
		for entryIdx := range c.Entries {
			if int(entryIdx) < 0 || int(entryIdx) >= len(idx.Entries) {
				return fmt.Errorf("container %q posting references out-of-bounds entry %d", word, entryIdx)
			}
		}
		for _, alias := range c.Aliases {
			target, ok := idx.Containers[alias]
			if !ok {
				return fmt.Errorf("container %q aliases unknown word %q", word, alias)
			}
			_ = target
		}
	}
	// An alias chain must have length exactly one: a container that itself
	// carries aliases must not be the alias target of another container.
	aliasTargets := make(map[string]bool)
	for _, c := range idx.Containers {
		for _, alias := range c.Aliases {
			aliasTargets[alias] = true
		}
	}
	for word, c := range idx.Containers {
		if aliasTargets[word] && len(c.Aliases) > 0 {
			return fmt.Errorf("container %q is both an alias target and an alias source (transitive aliasing)", word)
		}
	}
	if idx.Settings.MinimumQueryLength == 0 {
		return fmt.Errorf("settings: minimum query length must be > 0")
	}
	if idx.Settings.DisplayedResultsCount == 0 {
		return fmt.Errorf("settings: displayed results count must be > 0")
	}
	return nil
}

// sortedPostings returns a copy of postings sorted by (EntryIndex asc,
// WordOffset asc) with exact duplicates removed, per spec.md §5's ordering
// guarantee.
func sortedPostings(postings []Posting) []Posting {
	out := make([]Posting, len(postings))
	copy(out, postings)
	insertionSortPostings(out)
	deduped := out[:0]
	for i, p := range out {
		if i > 0 && p.Equal(out[i-1]) {
			continue
		}
		deduped = append(deduped, p)
	}
	return deduped
}

func insertionSortPostings(postings []Posting) {
	for i := 1; i < len(postings); i++ {
		for j := i; j > 0 && postingLess(postings[j], postings[j-1]); j-- {
			postings[j], postings[j-1] = postings[j-1], postings[j]
		}
	}
}

func postingLess(a, b Posting) bool {
	if a.EntryIndex != b.EntryIndex {
		return a.EntryIndex < b.EntryIndex
	}
	return a.WordOffset < b.WordOffset
}
