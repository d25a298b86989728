package corpusdex

import "github.com/surgebase/porter2"

// Stem normalizes word to its stem under algorithm. Stemming is applied only
// at build time (see fillStems in build.go); query-time inexact matching
// uses the container alias map instead, per spec.md §4.C.
func Stem(word string, algorithm StemAlgorithm) string {
	switch algorithm {
	case StemPorter2:
		return porter2.Stem(word)
	case StemNone:
		return word
	default:
		return word
	}
}
