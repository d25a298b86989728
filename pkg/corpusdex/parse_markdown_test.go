package corpusdex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMarkdown_StripsHeadingsAndEmphasis(t *testing.T) {
	doc := parseMarkdown("# Title\n\nSome **bold** and _italic_ text.")
	assert.NotContains(t, doc.CanonicalText, "#")
	assert.NotContains(t, doc.CanonicalText, "**")
	assert.NotContains(t, doc.CanonicalText, "_")
	assert.Contains(t, doc.CanonicalText, "bold")
	assert.Contains(t, doc.CanonicalText, "italic")
}

func TestParseMarkdown_KeepsLinkTextDropsTarget(t *testing.T) {
	doc := parseMarkdown("see [the docs](https://example.com/docs) for more")
	assert.Contains(t, doc.CanonicalText, "the docs")
	assert.NotContains(t, doc.CanonicalText, "example.com")
}

func TestParseMarkdown_DropsFenceMarkersKeepsInlineCode(t *testing.T) {
	doc := parseMarkdown("```go\nfunc main() {}\n```\nUse `fmt.Println` to print.")
	assert.NotContains(t, doc.CanonicalText, "```")
	assert.Contains(t, doc.CanonicalText, "func main")
	assert.Contains(t, doc.CanonicalText, "fmt.Println")
}
