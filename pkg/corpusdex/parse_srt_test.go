package corpusdex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,000
Hello there

2
00:00:04,500 --> 00:00:06,000
General Kenobi
`

func TestParseSRT_ConcatenatesCuesAndTagsWords(t *testing.T) {
	cfg := DefaultSRTConfig()
	doc, err := parseSRT(sampleSRT, cfg)
	require.NoError(t, err)

	assert.Equal(t, "Hello there General Kenobi", doc.CanonicalText)
	require.Len(t, doc.Words, 4)

	for _, w := range doc.Words[:2] {
		assert.True(t, w.Annotation.HasSRTSuffix)
		assert.Equal(t, "&t=1", w.Annotation.SRTURLSuffix)
	}
	for _, w := range doc.Words[2:] {
		assert.Equal(t, "&t=4.5", w.Annotation.SRTURLSuffix)
	}
}

func TestParseSRT_MinutesSecondsFormat(t *testing.T) {
	cfg := SRTConfig{TimestampLinking: true, TimestampTemplate: "#t={}", TimestampFormat: SRTMinutesSeconds}
	doc, err := parseSRT("1\n00:01:05,000 --> 00:01:07,000\nhi\n", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, doc.Words)
	assert.Equal(t, "#t=1:05", doc.Words[0].Annotation.SRTURLSuffix)
}

func TestParseSRT_InvalidTimestampErrors(t *testing.T) {
	_, err := parseSRT("1\n00:01 --> 00:02\nhi\n", DefaultSRTConfig())
	assert.Error(t, err)
}
