package corpusdex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_LowercasesAndStripsPunctuation(t *testing.T) {
	words := Tokenize("Hello, world!")
	require.Len(t, words, 2)
	assert.Equal(t, "hello", words[0].Word)
	assert.Equal(t, 0, words[0].ByteOffset)
	assert.Equal(t, "world", words[1].Word)
	assert.Equal(t, 7, words[1].ByteOffset)
}

func TestTokenize_DropsWhitespaceOnlySegments(t *testing.T) {
	words := Tokenize("the quick brown fox")
	var surface []string
	for _, w := range words {
		surface = append(surface, w.Word)
	}
	assert.Equal(t, []string{"the", "quick", "brown", "fox"}, surface)
}

func TestTokenize_RestartableOnPrefix(t *testing.T) {
	full := "the quick brown fox jumps"
	words := Tokenize(full)

	for _, w := range words {
		prefixLen := w.ByteOffset + len(w.Word)
		prefixWords := Tokenize(full[:prefixLen])

		require.NotEmpty(t, prefixWords)
		last := prefixWords[len(prefixWords)-1]
		assert.Equal(t, w.Word, last.Word)
		assert.Equal(t, w.ByteOffset, last.ByteOffset)
	}
}

func TestTokenize_EmptyInput(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   \n\t  "))
}
