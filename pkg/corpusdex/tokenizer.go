package corpusdex

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// AnnotatedWord is one token produced by Tokenize: a lowercased,
// punctuation-stripped word, the byte offset of its first character in the
// original (pre-lowercase, pre-strip) text, and an optional annotation.
type AnnotatedWord struct {
	Word       string
	ByteOffset int
	Annotation WordAnnotation
}

// Tokenize splits text on Unicode word boundaries (UAX #29), drops empty and
// whitespace-only tokens, lowercases the rest, and strips surrounding
// punctuation. ByteOffset always points into the original input, even though
// Word has been transformed.
//
// Tokenize is restartable: Tokenize(s[:k]) returns the same tokens (with
// identical offsets) as the prefix of Tokenize(s) whose last token ends at or
// before k, because uax29 segmentation never looks past the boundary it just
// emitted.
func Tokenize(text string) []AnnotatedWord {
	var out []AnnotatedWord

	seg := words.FromString(text)
	offset := 0
	for seg.Next() {
		raw := seg.Value()
		start := offset
		offset += len(raw)

		if !hasWordContent(raw) {
			continue
		}

		stripped, leadingTrimmed := stripSurroundingPunctuation(strings.ToLower(raw))
		if stripped == "" {
			continue
		}

		out = append(out, AnnotatedWord{
			Word:       stripped,
			ByteOffset: start + leadingTrimmed,
		})
	}

	return out
}

// hasWordContent reports whether a uax29 word-boundary segment carries any
// letter or digit; pure whitespace/punctuation segments are dropped.
func hasWordContent(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// stripSurroundingPunctuation removes leading/trailing runes in the Unicode
// P* general categories. It returns the stripped string and the number of
// bytes trimmed from the front, so callers can adjust a byte offset.
func stripSurroundingPunctuation(s string) (string, int) {
	runes := []rune(s)
	start, end := 0, len(runes)
	for start < end && unicode.IsPunct(runes[start]) {
		start++
	}
	for end > start && unicode.IsPunct(runes[end-1]) {
		end--
	}
	leadingBytes := len(string(runes[:start]))
	return string(runes[start:end]), leadingBytes
}
