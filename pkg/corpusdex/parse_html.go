package corpusdex

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// parseHTML extracts visible text from raw HTML: script/style bodies are
// excluded, attribute text is excluded except alt on img, and block-level
// elements are separated by a single space in the canonical text.
func parseHTML(raw string) (parsedDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return parsedDocument{}, err
	}

	doc.Find("script, style").Remove()

	var b strings.Builder
	extractVisibleText(doc.Selection.Nodes, &b)

	canonical := collapseSpaces(b.String())
	return parsedDocument{
		CanonicalText: canonical,
		Words:         Tokenize(canonical),
	}, nil
}

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "header": true, "footer": true,
	"table": true, "ul": true, "ol": true, "blockquote": true, "pre": true,
}

func extractVisibleText(nodes []*html.Node, b *strings.Builder) {
	for _, n := range nodes {
		switch n.Type {
		case html.DocumentNode:
			extractVisibleText(childNodes(n), b)
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			if n.Data == "img" {
				if alt := attrValue(n, "alt"); alt != "" {
					b.WriteString(" ")
					b.WriteString(alt)
					b.WriteString(" ")
				}
				continue
			}
			if blockElements[n.Data] {
				b.WriteString(" ")
			}
			extractVisibleText(childNodes(n), b)
			if blockElements[n.Data] {
				b.WriteString(" ")
			}
		}
	}
}

func childNodes(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return children
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func collapseSpaces(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
