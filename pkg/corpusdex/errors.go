package corpusdex

import (
	"fmt"
	"time"
)

// DocumentProblem enumerates the per-document failure reasons a build can
// encounter. Each is non-fatal by default; see BuildConfig.Output.BreakOnFileError.
type DocumentProblem string

const (
	ProblemUnreadableFile    DocumentProblem = "unreadable_file"
	ProblemWebPageNotFetched DocumentProblem = "web_page_not_fetched"
	ProblemHTTPError         DocumentProblem = "http_error"
	ProblemInvalidContentType DocumentProblem = "invalid_content_type"
	ProblemUnparseableContent DocumentProblem = "unparseable_content"
	ProblemEmptyWordList     DocumentProblem = "empty_word_list"
)

// AttributedDocumentProblem names the document a DocumentProblem happened to.
type AttributedDocumentProblem struct {
	FileIndex int
	Title     string
	Problem   DocumentProblem
	Detail    string
}

func (p AttributedDocumentProblem) Error() string {
	if p.Title != "" {
		return fmt.Sprintf("document %d (%s): %s: %s", p.FileIndex, p.Title, p.Problem, p.Detail)
	}
	return fmt.Sprintf("document %d: %s: %s", p.FileIndex, p.Problem, p.Detail)
}

// BuildWarning wraps a non-fatal AttributedDocumentProblem surfaced to the
// caller alongside a successful (possibly partial) BuildResult.
type BuildWarning struct {
	Problem   AttributedDocumentProblem
	Timestamp time.Time
}

func (w BuildWarning) Error() string { return w.Problem.Error() }

// BuildError is returned in place of a BuildResult when a build fails
// outright: BreakOnFileError is set and a document failed, or zero entries
// were successfully indexed.
type BuildError struct {
	Problems []AttributedDocumentProblem
	Reason   string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build failed (%s): %d document problem(s)", e.Reason, len(e.Problems))
}

// IndexParseErrorKind enumerates envelope/index decode failures.
type IndexParseErrorKind string

const (
	ErrUnknownFile             IndexParseErrorKind = "unknown_file"
	ErrTruncatedEnvelope       IndexParseErrorKind = "truncated_envelope"
	ErrPayloadDecode           IndexParseErrorKind = "payload_decode"
	ErrNotCompiledWithFeature  IndexParseErrorKind = "not_compiled_with_feature"
)

// IndexParseError is returned by decodeEnvelope/DecodeIndex.
type IndexParseError struct {
	Kind       IndexParseErrorKind
	Version    string
	Underlying error
}

func (e *IndexParseError) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("index parse error (%s) for version %q: %v", e.Kind, e.Version, e.Underlying)
	}
	return fmt.Sprintf("index parse error (%s): %v", e.Kind, e.Underlying)
}

func (e *IndexParseError) Unwrap() error { return e.Underlying }

// SearchErrorKind enumerates query-time failures.
type SearchErrorKind string

const (
	ErrMethodNotAvailableForIndex SearchErrorKind = "method_not_available_for_index"
	ErrInvalidQuery               SearchErrorKind = "invalid_query"
)

// SearchError is returned by Search when the query or index cannot be
// evaluated.
type SearchError struct {
	Kind   SearchErrorKind
	Detail string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search error (%s): %s", e.Kind, e.Detail)
}
