package corpusdex

import "fmt"

// parsedDocument is the output of a document parser: the canonical
// searchable/excerptable text, and the annotated word list derived from it.
type parsedDocument struct {
	CanonicalText string
	Words         []AnnotatedWord
}

// parseDocument dispatches to the parser for filetype and returns
// (canonical_text, annotated_words) per spec.md §4.D.
func parseDocument(filetype Filetype, raw string, srt SRTConfig) (parsedDocument, error) {
	switch filetype {
	case FiletypePlain, FiletypeUnknown:
		return parsePlainText(raw), nil
	case FiletypeHTML:
		return parseHTML(raw)
	case FiletypeSRT:
		return parseSRT(raw, srt)
	case FiletypeMarkdown:
		return parseMarkdown(raw), nil
	default:
		return parsedDocument{}, fmt.Errorf("unknown filetype %q", filetype)
	}
}

func parsePlainText(raw string) parsedDocument {
	return parsedDocument{
		CanonicalText: raw,
		Words:         Tokenize(raw),
	}
}
