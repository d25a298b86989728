package corpusdex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleExcerpts_WindowCoversBuffer(t *testing.T) {
	entry := Entry{Contents: "zero one two three four five six seven eight nine"}
	words := Tokenize(entry.Contents)

	// Anchor on "five" (index 5), buffer of 1 word each side.
	anchor := words[5]
	hits := []Posting{{WordOffset: anchor.ByteOffset, Importance: 128}}

	excerpts := assembleExcerpts(0, entry, hits, 1, 5)
	require.Len(t, excerpts, 1)
	assert.Equal(t, "four five six", excerpts[0].Text)
	require.Len(t, excerpts[0].HighlightRanges, 1)
	hr := excerpts[0].HighlightRanges[0]
	assert.Equal(t, "five", excerpts[0].Text[hr.Beginning:hr.End])
}

func TestAssembleExcerpts_CoalescesOverlappingWindows(t *testing.T) {
	entry := Entry{Contents: "zero one two three four five six seven eight nine"}
	words := Tokenize(entry.Contents)

	hits := []Posting{
		{WordOffset: words[2].ByteOffset, Importance: 128},
		{WordOffset: words[4].ByteOffset, Importance: 128},
	}

	excerpts := assembleExcerpts(0, entry, hits, 1, 5)
	require.Len(t, excerpts, 1, "windows [one,two,three] and [three,four,five] overlap at 'three' and must coalesce")
	assert.Equal(t, "one two three four five", excerpts[0].Text)
	assert.Len(t, excerpts[0].HighlightRanges, 2)
}

func TestAssembleExcerpts_NoHitsReturnsNil(t *testing.T) {
	entry := Entry{Contents: "zero one two"}
	assert.Nil(t, assembleExcerpts(0, entry, nil, 2, 5))
}

func TestAssembleExcerpts_TruncatesToMaxExcerpts(t *testing.T) {
	entry := Entry{Contents: "a b c d e f g h i j k l m n o p q r s t"}
	words := Tokenize(entry.Contents)

	var hits []Posting
	for i := 0; i < len(words); i += 2 {
		hits = append(hits, Posting{WordOffset: words[i].ByteOffset, Importance: 1})
	}

	excerpts := assembleExcerpts(0, entry, hits, 0, 2)
	assert.Len(t, excerpts, 2)
}
