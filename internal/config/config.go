// Package config loads a corpusdex BuildConfig from a KDL document, adapted
// from the teacher's internal/config KDL loader: the same node-walking,
// typed-argument-accessor style over github.com/sblinch/kdl-go, pointed at
// this module's input/output schema instead of the teacher's project/index
// schema.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/standardbeagle/corpusdex/pkg/corpusdex"
)

// Load reads and parses a corpusdex KDL config file at path into a
// BuildConfig, pre-populated with spec defaults for any section the
// document omits.
func Load(path string) (corpusdex.BuildConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return corpusdex.BuildConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(string(content))
}

// Parse parses KDL content into a BuildConfig.
func Parse(content string) (corpusdex.BuildConfig, error) {
	cfg := corpusdex.BuildConfig{
		FrontmatterHandling: corpusdex.FrontmatterOmit,
		SRT:                 corpusdex.DefaultSRTConfig(),
		Output:              corpusdex.DefaultOutputConfig(),
	}

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return corpusdex.BuildConfig{}, fmt.Errorf("parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "input":
			if err := parseInput(&cfg, n); err != nil {
				return corpusdex.BuildConfig{}, err
			}
		case "output":
			parseOutput(&cfg.Output, n)
		}
	}

	return cfg, nil
}

func parseInput(cfg *corpusdex.BuildConfig, n *document.Node) error {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "frontmatter_handling":
			if s, ok := firstStringArg(cn); ok {
				cfg.FrontmatterHandling = corpusdex.FrontmatterHandling(s)
			}
		case "srt":
			parseSRT(&cfg.SRT, cn)
		case "file":
			files, err := parseFile(cn)
			if err != nil {
				return err
			}
			cfg.Files = append(cfg.Files, files...)
		}
	}
	return nil
}

// parseFile builds one InputFile per `file` node, except a `path` containing
// a doublestar glob (`*`, `?`, `[`, or `{...}`) expands to one InputFile per
// matching filesystem entry, each inheriting the node's other settings.
func parseFile(n *document.Node) ([]corpusdex.InputFile, error) {
	file := corpusdex.InputFile{Fields: make(map[string]string)}
	var globPath string

	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "path":
			if s, ok := firstStringArg(cn); ok {
				if doublestar.ValidatePattern(s) && containsGlobMeta(s) {
					globPath = s
				} else {
					file.Source = corpusdex.FilePathSource{Path: s}
				}
			}
		case "url":
			if s, ok := firstStringArg(cn); ok {
				file.Source = corpusdex.URLSource{URL: s}
				file.URL = s
			}
		case "contents":
			if s, ok := firstStringArg(cn); ok {
				file.Source = corpusdex.ContentsSource{Contents: s}
			}
		case "filetype":
			if s, ok := firstStringArg(cn); ok {
				file.Filetype = corpusdex.Filetype(s)
			}
		case "title":
			if s, ok := firstStringArg(cn); ok {
				file.Title = s
			}
		case "result_url":
			if s, ok := firstStringArg(cn); ok {
				file.URL = s
			}
		case "stemming":
			if s, ok := firstStringArg(cn); ok {
				file.Stemming = corpusdex.StemAlgorithm(s)
			}
		case "field":
			if len(cn.Arguments) >= 2 {
				k, _ := cn.Arguments[0].Value.(string)
				v, _ := cn.Arguments[1].Value.(string)
				if k != "" {
					file.Fields[k] = v
				}
			}
		}
	}

	if globPath != "" {
		matches, err := doublestar.FilepathGlob(globPath)
		if err != nil {
			return nil, fmt.Errorf("config: invalid glob %q: %w", globPath, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("config: glob %q matched no files", globPath)
		}
		files := make([]corpusdex.InputFile, len(matches))
		for i, m := range matches {
			f := file
			f.Source = corpusdex.FilePathSource{Path: m}
			f.Fields = make(map[string]string, len(file.Fields))
			for k, v := range file.Fields {
				f.Fields[k] = v
			}
			if f.Title == "" {
				f.Title = strings.TrimSuffix(filepath.Base(m), filepath.Ext(m))
			} else if len(matches) > 1 {
				f.Title = f.Title + " " + strconv.Itoa(i+1)
			}
			files[i] = f
		}
		return files, nil
	}

	if file.Source == nil {
		return nil, fmt.Errorf("config: file %q has no source", file.Title)
	}
	return []corpusdex.InputFile{file}, nil
}

// containsGlobMeta reports whether s uses any doublestar glob syntax, so a
// plain literal path (the common case) skips filesystem expansion entirely.
func containsGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[") || strings.Contains(s, "{")
}

func parseSRT(srt *corpusdex.SRTConfig, n *document.Node) {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "timestamp_linking":
			if b, ok := firstBoolArg(cn); ok {
				srt.TimestampLinking = b
			}
		case "timestamp_template":
			if s, ok := firstStringArg(cn); ok {
				srt.TimestampTemplate = s
			}
		case "timestamp_format":
			if s, ok := firstStringArg(cn); ok {
				srt.TimestampFormat = corpusdex.SRTTimestampFormat(s)
			}
		}
	}
}

func parseOutput(out *corpusdex.OutputConfig, n *document.Node) {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "minimum_query_length":
			if v, ok := firstIntArg(cn); ok {
				out.MinimumQueryLength = uint8(v)
			}
		case "excerpt_buffer":
			if v, ok := firstIntArg(cn); ok {
				out.ExcerptBuffer = uint8(v)
			}
		case "excerpts_per_result":
			if v, ok := firstIntArg(cn); ok {
				out.ExcerptsPerResult = uint8(v)
			}
		case "displayed_results_count":
			if v, ok := firstIntArg(cn); ok {
				out.DisplayedResultsCount = uint8(v)
			}
		case "break_on_file_error":
			if b, ok := firstBoolArg(cn); ok {
				out.BreakOnFileError = b
			}
		case "url_prefix":
			if s, ok := firstStringArg(cn); ok {
				out.URLPrefix = s
			}
		}
	}
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}
