// Package corpusdex implements a full-text search engine for small-to-medium
// document corpora: a build pipeline that turns a declarative BuildConfig
// into a single binary index blob, and a query evaluator that turns an index
// and a query string into ranked, excerpted results.
package corpusdex

import "time"

// Filetype selects which document parser handles a source's raw bytes.
type Filetype string

const (
	FiletypeUnknown  Filetype = ""
	FiletypePlain    Filetype = "plaintext"
	FiletypeHTML     Filetype = "html"
	FiletypeSRT      Filetype = "srt"
	FiletypeMarkdown Filetype = "markdown"
)

// StemAlgorithm selects a per-entry stemming algorithm. The empty string and
// "none" both mean no stemming.
type StemAlgorithm string

const (
	StemNone    StemAlgorithm = ""
	StemPorter2 StemAlgorithm = "porter2"
)

// DataSource is the sum type selecting where a document's bytes come from.
type DataSource interface{ isDataSource() }

// ContentsSource carries a document's body inline in the config.
type ContentsSource struct{ Contents string }

// FilePathSource points at a file on the local filesystem.
type FilePathSource struct{ Path string }

// URLSource points at a remote document fetched over HTTP.
type URLSource struct{ URL string }

func (ContentsSource) isDataSource() {}
func (FilePathSource) isDataSource() {}
func (URLSource) isDataSource()      {}

// FrontmatterHandling selects how a leading `---`-delimited block is treated.
type FrontmatterHandling string

const (
	FrontmatterIgnore FrontmatterHandling = "ignore"
	FrontmatterOmit   FrontmatterHandling = "omit"
	FrontmatterParse  FrontmatterHandling = "parse"
)

// SRTTimestampFormat selects how a subtitle cue's start time is rendered.
type SRTTimestampFormat string

const (
	SRTSeconds        SRTTimestampFormat = "seconds"
	SRTMinutesSeconds SRTTimestampFormat = "minutes_seconds"
)

// SRTConfig controls how SRT cues are linked back to their timestamp.
type SRTConfig struct {
	TimestampLinking  bool
	TimestampTemplate string
	TimestampFormat   SRTTimestampFormat
}

// DefaultSRTConfig mirrors the defaults documented in the build config spec.
func DefaultSRTConfig() SRTConfig {
	return SRTConfig{
		TimestampLinking:  true,
		TimestampTemplate: "&t={}",
		TimestampFormat:   SRTSeconds,
	}
}

// InputFile is one document entry in a BuildConfig.
type InputFile struct {
	Source   DataSource
	Filetype Filetype
	Title    string
	URL      string
	Fields   map[string]string
	Stemming StemAlgorithm
}

// OutputConfig compiles into an Index's Settings.
type OutputConfig struct {
	MinimumQueryLength    uint8
	ExcerptBuffer         uint8
	ExcerptsPerResult     uint8
	DisplayedResultsCount uint8
	BreakOnFileError      bool
	URLPrefix             string
}

// DefaultOutputConfig mirrors the defaults documented in spec.md §6.
func DefaultOutputConfig() OutputConfig {
	return OutputConfig{
		MinimumQueryLength:    3,
		ExcerptBuffer:         8,
		ExcerptsPerResult:     5,
		DisplayedResultsCount: 10,
		BreakOnFileError:      false,
		URLPrefix:             "",
	}
}

// BuildConfig is the top-level, validated input to Build.
type BuildConfig struct {
	Files               []InputFile
	FrontmatterHandling FrontmatterHandling
	SRT                 SRTConfig
	Output              OutputConfig
}

// BuildStatistics reports on a completed (or partially completed) build.
type BuildStatistics struct {
	EntriesIndexed int
	EntriesSkipped int
	TotalWords     int
	UniqueWords    int
	BuildDuration  time.Duration
}

// BuildResult is the return value of Build.
type BuildResult struct {
	PrimaryData  []byte
	SidecarData  [][]byte
	Statistics   BuildStatistics
	Warnings     []BuildWarning
}

// ProgressState tags the phase of a single document during a build.
type ProgressState int

const (
	ProgressStartedDocument ProgressState = iota
	ProgressFinished
	ProgressFailed
)

// ProgressReport is delivered to a caller-supplied ProgressFunc between
// documents. Total is the number of files in the build config; Index and
// Title identify the document currently being processed.
type ProgressReport struct {
	Total int
	State ProgressState
	Index int
	Title string
}

// ProgressFunc receives one ProgressReport per document boundary. Reporting
// is suppressed when the corpus has fewer than 1000 documents and no URL
// source is present (see Build).
type ProgressFunc func(ProgressReport)
