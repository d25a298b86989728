package corpusdex

import (
	"context"
	"math"
	"net/http"
	"sort"
	"time"
)

// Scoring constants from spec.md §4.F step 3.
const (
	baseScore  = 128.0
	scoreDecay = 0.0
	floorScore = 0.0
	titleScore = 250.0
)

// progressThreshold is the corpus size below which progress reporting is
// suppressed, per spec.md §5, unless a URL source is present.
const progressThreshold = 1000

// normalizedEntry is the per-document intermediate produced by step 1 of the
// build pipeline.
type normalizedEntry struct {
	Title         string
	URL           string
	Fields        map[string]string
	Contents      string
	Words         []AnnotatedWord
	StemAlgorithm StemAlgorithm
}

// Build drives the pipeline described in spec.md §4.F: parse every document,
// build per-word posting lists, accumulate the stem map, apply stem
// aliasing, compile settings, and serialize the result. The pipeline is
// single-threaded and synchronous, per spec.md §5: a caller wanting
// parallelism partitions cfg.Files across several Build calls and merges
// the resulting indices itself.
func Build(ctx context.Context, cfg BuildConfig, progress ProgressFunc) (BuildResult, error) {
	start := time.Now()

	hasURLSource := false
	for _, f := range cfg.Files {
		if _, ok := f.Source.(URLSource); ok {
			hasURLSource = true
			break
		}
	}
	suppressProgress := len(cfg.Files) < progressThreshold && !hasURLSource

	httpClient := defaultHTTPClient()

	var entries []normalizedEntry
	var warnings []BuildWarning
	var fatalProblems []AttributedDocumentProblem

	for i, file := range cfg.Files {
		if err := ctx.Err(); err != nil {
			return BuildResult{}, err
		}

		report(progress, suppressProgress, ProgressReport{Total: len(cfg.Files), State: ProgressStartedDocument, Index: i, Title: file.Title})

		entry, problem := normalizeEntry(ctx, i, file, cfg, httpClient)
		if problem != nil {
			if cfg.Output.BreakOnFileError {
				fatalProblems = append(fatalProblems, *problem)
				report(progress, suppressProgress, ProgressReport{Total: len(cfg.Files), State: ProgressFailed, Index: i, Title: file.Title})
				return BuildResult{}, &BuildError{Problems: fatalProblems, Reason: "break_on_file_error"}
			}
			warnings = append(warnings, BuildWarning{Problem: *problem, Timestamp: time.Now()})
			report(progress, suppressProgress, ProgressReport{Total: len(cfg.Files), State: ProgressFailed, Index: i, Title: file.Title})
			continue
		}

		entries = append(entries, entry)
		report(progress, suppressProgress, ProgressReport{Total: len(cfg.Files), State: ProgressFinished, Index: i, Title: file.Title})
	}

	if len(entries) == 0 {
		return BuildResult{}, &BuildError{Problems: fatalProblems, Reason: "zero_entries_indexed"}
	}

	stems := fillStems(entries)
	containers, totalWords := buildContainers(entries)
	applyStemAliases(containers, stems)

	idx := &Index{
		Entries:    entriesFromNormalized(entries),
		Containers: containers,
		Settings:   cfg.Output,
	}
	if err := idx.Validate(); err != nil {
		return BuildResult{}, err
	}

	payload, err := EncodeIndex(idx)
	if err != nil {
		return BuildResult{}, err
	}

	stats := BuildStatistics{
		EntriesIndexed: len(entries),
		EntriesSkipped: len(warnings),
		TotalWords:     totalWords,
		UniqueWords:    len(containers),
		BuildDuration:  time.Since(start),
	}

	return BuildResult{
		PrimaryData: payload,
		Statistics:  stats,
		Warnings:    warnings,
	}, nil
}

func report(fn ProgressFunc, suppressed bool, r ProgressReport) {
	if fn == nil || suppressed {
		return
	}
	fn(r)
}

// normalizeEntry resolves a document's source, parses it for its filetype,
// extracts frontmatter, and folds frontmatter fields into file.Fields.
func normalizeEntry(ctx context.Context, index int, file InputFile, cfg BuildConfig, httpClient *http.Client) (normalizedEntry, *AttributedDocumentProblem) {
	raw, filetype, err := readSource(ctx, file, httpClient)
	if err != nil {
		return attributedProblem(index, file, err)
	}

	body, fmFields, err := extractFrontmatter(raw, cfg.FrontmatterHandling)
	if err != nil {
		return attributedProblem(index, file, &AttributedDocumentProblem{
			FileIndex: index, Title: file.Title, Problem: ProblemUnparseableContent, Detail: err.Error(),
		})
	}

	parsed, err := parseDocument(filetype, body, cfg.SRT)
	if err != nil {
		return attributedProblem(index, file, &AttributedDocumentProblem{
			FileIndex: index, Title: file.Title, Problem: ProblemUnparseableContent, Detail: err.Error(),
		})
	}

	if len(parsed.Words) == 0 {
		return attributedProblem(index, file, &AttributedDocumentProblem{
			FileIndex: index, Title: file.Title, Problem: ProblemEmptyWordList, Detail: "no words found in document",
		})
	}

	fields := mergeFields(file.Fields, fmFields)

	return normalizedEntry{
		Title:         file.Title,
		URL:           file.URL,
		Fields:        fields,
		Contents:      parsed.CanonicalText,
		Words:         parsed.Words,
		StemAlgorithm: file.Stemming,
	}, nil
}

func mergeFields(base, frontmatter map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(frontmatter))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range frontmatter {
		out[k] = v
	}
	return out
}

func attributedProblem(index int, file InputFile, err error) (normalizedEntry, *AttributedDocumentProblem) {
	if p, ok := err.(*AttributedDocumentProblem); ok {
		p.FileIndex = index
		p.Title = file.Title
		return normalizedEntry{}, p
	}
	return normalizedEntry{}, &AttributedDocumentProblem{
		FileIndex: index, Title: file.Title, Problem: ProblemUnreadableFile, Detail: err.Error(),
	}
}

// fillStems builds stem -> {surface words} for every entry's tokens under
// its configured stem algorithm, per spec.md §4.F step 2.
func fillStems(entries []normalizedEntry) map[string][]string {
	stems := make(map[string][]string)
	for _, entry := range entries {
		if entry.StemAlgorithm == StemNone {
			continue
		}
		for _, w := range entry.Words {
			stem := Stem(w.Word, entry.StemAlgorithm)
			if !containsString(stems[stem], w.Word) {
				stems[stem] = append(stems[stem], w.Word)
			}
		}
	}
	return stems
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// buildContainers builds the inverted posting buckets, per spec.md §4.F
// step 3.
func buildContainers(entries []normalizedEntry) (map[string]*Container, int) {
	containers := make(map[string]*Container)
	totalWords := 0

	for entryIdx, entry := range entries {
		for i, w := range entry.Words {
			totalWords++
			score := math.Max(baseScore-scoreDecay*float64(i), floorScore)

			pushPosting(containers, w.Word, Posting{
				EntryIndex: EntryIndex(entryIdx),
				WordOffset: w.ByteOffset,
				Importance: score,
				Source:     SourceContents,
				Annotation: w.Annotation,
			})
		}

		for _, tw := range Tokenize(entry.Title) {
			pushPosting(containers, tw.Word, Posting{
				EntryIndex: EntryIndex(entryIdx),
				WordOffset: tw.ByteOffset,
				Importance: titleScore,
				Source:     SourceTitle,
			})
		}
	}

	for _, c := range containers {
		for entryIdx, postings := range c.Entries {
			c.Entries[entryIdx] = sortedPostings(postings)
		}
	}

	return containers, totalWords
}

func pushPosting(containers map[string]*Container, word string, p Posting) {
	c, ok := containers[word]
	if !ok {
		c = &Container{Entries: make(map[EntryIndex][]Posting)}
		containers[word] = c
	}
	c.Entries[p.EntryIndex] = append(c.Entries[p.EntryIndex], p)
}

// applyStemAliases picks the shortest surface word in each stem group as the
// representative container key and records the rest as alternative surface
// forms that resolve to it, per spec.md §3 ("Container... aliases —
// alternative surface forms that resolve to this container") and §4.F step
// 4. A query for the representative word follows its own Aliases list
// (single hop, §4.I) to pull in postings from every other surface form in
// the stem group.
func applyStemAliases(containers map[string]*Container, stems map[string][]string) {
	for _, words := range stems {
		if len(words) < 2 {
			continue
		}
		sorted := append([]string(nil), words...)
		sort.Slice(sorted, func(i, j int) bool {
			if len(sorted[i]) != len(sorted[j]) {
				return len(sorted[i]) < len(sorted[j])
			}
			return sorted[i] < sorted[j]
		})
		representative := sorted[0]
		repContainer, ok := containers[representative]
		if !ok {
			continue
		}
		for _, other := range sorted[1:] {
			if other == representative {
				continue
			}
			if _, ok := containers[other]; !ok {
				continue
			}
			if !containsString(repContainer.Aliases, other) {
				repContainer.Aliases = append(repContainer.Aliases, other)
			}
		}
	}
}

func entriesFromNormalized(entries []normalizedEntry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{
			Title:       e.Title,
			URL:         e.URL,
			Fields:      e.Fields,
			Contents:    e.Contents,
			ContentHash: hashContents(e.Contents),
		}
	}
	return out
}
