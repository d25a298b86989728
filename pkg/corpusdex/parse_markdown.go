package corpusdex

import (
	"regexp"
	"strings"
)

var (
	mdHeading   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdEmphasis  = regexp.MustCompile(`(\*\*\*|___|\*\*|__|\*|_)`)
	mdLink      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdCodeFence = regexp.MustCompile("(?m)^```.*$")
	mdInlineCode = regexp.MustCompile("`([^`]*)`")
)

// parseMarkdown renders plain text from a Markdown document: headings and
// emphasis markers are stripped, link text is kept and its target dropped,
// other punctuation is kept verbatim per spec.md §4.D. Emphasis stripping
// removes every '*' and '_' character, including ones that are not
// emphasis markers (such as the underscores in snake_case words).
func parseMarkdown(raw string) parsedDocument {
	text := mdCodeFence.ReplaceAllString(raw, "")
	text = mdHeading.ReplaceAllString(text, "")
	text = mdLink.ReplaceAllString(text, "$1")
	text = mdInlineCode.ReplaceAllString(text, "$1")
	text = mdEmphasis.ReplaceAllString(text, "")
	text = collapseBlankLines(text)

	return parsedDocument{
		CanonicalText: text,
		Words:         Tokenize(text),
	}
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	blank := false
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}
