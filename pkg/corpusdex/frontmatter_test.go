package corpusdex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docWithFrontmatter = "---\ntitle: Hello\nsection: guide\n---\nbody text here"

func TestExtractFrontmatter_IgnoreModeReturnsRawUnchanged(t *testing.T) {
	body, fields, err := extractFrontmatter(docWithFrontmatter, FrontmatterIgnore)
	require.NoError(t, err)
	assert.Equal(t, docWithFrontmatter, body)
	assert.Nil(t, fields)
}

func TestExtractFrontmatter_OmitModeStripsWithoutParsing(t *testing.T) {
	body, fields, err := extractFrontmatter(docWithFrontmatter, FrontmatterOmit)
	require.NoError(t, err)
	assert.Equal(t, "body text here", body)
	assert.Nil(t, fields)
}

func TestExtractFrontmatter_ParseModeDecodesYAMLFields(t *testing.T) {
	body, fields, err := extractFrontmatter(docWithFrontmatter, FrontmatterParse)
	require.NoError(t, err)
	assert.Equal(t, "body text here", body)
	assert.Equal(t, "Hello", fields["title"])
	assert.Equal(t, "guide", fields["section"])
}

func TestExtractFrontmatter_NoBlockPresent(t *testing.T) {
	body, fields, err := extractFrontmatter("just body text", FrontmatterParse)
	require.NoError(t, err)
	assert.Equal(t, "just body text", body)
	assert.Nil(t, fields)
}
