package corpusdex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHTML_StripsScriptAndStyle(t *testing.T) {
	doc, err := parseHTML(`<html><body>
		<style>.a { color: red; }</style>
		<p>Hello world</p>
		<script>alert("hi")</script>
	</body></html>`)
	require.NoError(t, err)

	assert.Contains(t, doc.CanonicalText, "Hello world")
	assert.NotContains(t, doc.CanonicalText, "color")
	assert.NotContains(t, doc.CanonicalText, "alert")
}

func TestParseHTML_KeepsImageAltText(t *testing.T) {
	doc, err := parseHTML(`<p>before <img src="x.png" alt="a diagram"> after</p>`)
	require.NoError(t, err)
	assert.True(t, strings.Contains(doc.CanonicalText, "a diagram"))
}

func TestParseHTML_SeparatesBlockElementsWithSpace(t *testing.T) {
	doc, err := parseHTML("<div>one</div><div>two</div>")
	require.NoError(t, err)
	assert.NotContains(t, doc.CanonicalText, "onetwo")
}
