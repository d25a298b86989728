package corpusdex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedPostings_OrdersAndDedupes(t *testing.T) {
	in := []Posting{
		{EntryIndex: 1, WordOffset: 5, Importance: 128},
		{EntryIndex: 0, WordOffset: 9, Importance: 128},
		{EntryIndex: 0, WordOffset: 1, Importance: 128},
		{EntryIndex: 0, WordOffset: 1, Importance: 128}, // exact duplicate
	}

	out := sortedPostings(in)
	require.Len(t, out, 3)
	assert.Equal(t, EntryIndex(0), out[0].EntryIndex)
	assert.Equal(t, 1, out[0].WordOffset)
	assert.Equal(t, EntryIndex(0), out[1].EntryIndex)
	assert.Equal(t, 9, out[1].WordOffset)
	assert.Equal(t, EntryIndex(1), out[2].EntryIndex)
}

func TestPostingEqual_BitwiseOnImportance(t *testing.T) {
	a := Posting{EntryIndex: 0, WordOffset: 0, Importance: 128.0}
	b := Posting{EntryIndex: 0, WordOffset: 0, Importance: 128.0}
	c := Posting{EntryIndex: 0, WordOffset: 0, Importance: 128.0000001}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestIndexValidate_RejectsEmptyContainer(t *testing.T) {
	idx := &Index{
		Entries:    []Entry{{Title: "e0"}},
		Containers: map[string]*Container{"foo": {Entries: map[EntryIndex][]Posting{}}},
		Settings:   DefaultOutputConfig(),
	}
	assert.Error(t, idx.Validate())
}

func TestIndexValidate_RejectsOutOfBoundsEntry(t *testing.T) {
	idx := &Index{
		Entries: []Entry{{Title: "e0"}},
		Containers: map[string]*Container{
			"foo": {Entries: map[EntryIndex][]Posting{5: {{EntryIndex: 5, WordOffset: 0, Importance: 1}}}},
		},
		Settings: DefaultOutputConfig(),
	}
	assert.Error(t, idx.Validate())
}

func TestIndexValidate_RejectsTransitiveAlias(t *testing.T) {
	idx := &Index{
		Entries: []Entry{{Title: "e0"}},
		Containers: map[string]*Container{
			"cat":     {Entries: map[EntryIndex][]Posting{0: {{EntryIndex: 0, WordOffset: 0, Importance: 1}}}, Aliases: []string{"cats"}},
			"cats":    {Entries: map[EntryIndex][]Posting{0: {{EntryIndex: 0, WordOffset: 0, Importance: 1}}}, Aliases: []string{"catlike"}},
			"catlike": {Entries: map[EntryIndex][]Posting{0: {{EntryIndex: 0, WordOffset: 0, Importance: 1}}}},
		},
		Settings: DefaultOutputConfig(),
	}
	assert.Error(t, idx.Validate())
}

func TestIndexValidate_AcceptsSingleHopAlias(t *testing.T) {
	idx := &Index{
		Entries: []Entry{{Title: "e0"}},
		Containers: map[string]*Container{
			"cat":  {Entries: map[EntryIndex][]Posting{0: {{EntryIndex: 0, WordOffset: 0, Importance: 1}}}, Aliases: []string{"cats"}},
			"cats": {Entries: map[EntryIndex][]Posting{0: {{EntryIndex: 0, WordOffset: 0, Importance: 1}}}},
		},
		Settings: DefaultOutputConfig(),
	}
	assert.NoError(t, idx.Validate())
}
