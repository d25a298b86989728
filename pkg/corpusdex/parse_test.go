package corpusdex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument_DispatchesByFiletype(t *testing.T) {
	tests := []struct {
		name     string
		filetype Filetype
		raw      string
		want     string
	}{
		{"empty filetype is plain", FiletypeUnknown, "hello world", "hello world"},
		{"explicit plain", FiletypePlain, "hello world", "hello world"},
		{"markdown", FiletypeMarkdown, "# Title\n\nbody", "Title\n\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parseDocument(tt.filetype, tt.raw, DefaultSRTConfig())
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.CanonicalText)
		})
	}
}

func TestParseDocument_UnknownFiletypeErrors(t *testing.T) {
	_, err := parseDocument(Filetype("pdf"), "whatever", DefaultSRTConfig())
	assert.Error(t, err)
}

func TestParsePlainText_TokenizesCanonicalText(t *testing.T) {
	doc := parsePlainText("the quick fox")
	assert.Equal(t, "the quick fox", doc.CanonicalText)
	require.Len(t, doc.Words, 3)
	assert.Equal(t, "quick", doc.Words[1].Word)
}
