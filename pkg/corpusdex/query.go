package corpusdex

import "strings"

// SearchTerm is the sum type produced by ParseQuery: either an InexactWord
// (stem/prefix expansion at query time) or an ExactWord (literal surface
// match only).
type SearchTerm struct {
	Word  string
	Exact bool
}

// ParseQuery normalizes query by lowercasing and splitting on whitespace.
// A token wrapped in double quotes becomes an ExactWord; every other token
// becomes an InexactWord. Terms shorter than minimumQueryLength are
// dropped — this is not an error, per spec.md §4.H; a query with no
// remaining terms simply evaluates to zero results.
func ParseQuery(query string, minimumQueryLength uint8) []SearchTerm {
	var terms []SearchTerm

	for _, token := range strings.Fields(strings.ToLower(query)) {
		exact := false
		word := token
		if strings.HasPrefix(word, `"`) && strings.HasSuffix(word, `"`) && len(word) >= 2 {
			exact = true
			word = word[1 : len(word)-1]
		} else {
			word = strings.Trim(word, `"`)
		}

		if word == "" {
			continue
		}
		if len(word) < int(minimumQueryLength) {
			continue
		}

		terms = append(terms, SearchTerm{Word: word, Exact: exact})
	}

	return terms
}
