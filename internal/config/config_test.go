package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/corpusdex/pkg/corpusdex"
)

func TestParse_FileSourcesAndOutputSettings(t *testing.T) {
	doc := `
input {
    frontmatter_handling "parse"
    srt {
        timestamp_linking true
        timestamp_template "&t={}"
        timestamp_format "seconds"
    }
    file {
        path "./docs/intro.md"
        title "Introduction"
        result_url "/docs/intro"
        stemming "porter2"
        field "section" "guide"
    }
    file {
        url "https://example.com/readme"
        title "Readme"
    }
}
output {
    minimum_query_length 3
    excerpt_buffer 6
    displayed_results_count 20
    break_on_file_error true
    url_prefix "https://example.com"
}
`
	cfg, err := Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, corpusdex.FrontmatterParse, cfg.FrontmatterHandling)
	require.Len(t, cfg.Files, 2)

	first := cfg.Files[0]
	assert.Equal(t, corpusdex.FilePathSource{Path: "./docs/intro.md"}, first.Source)
	assert.Equal(t, "Introduction", first.Title)
	assert.Equal(t, "/docs/intro", first.URL)
	assert.Equal(t, corpusdex.StemPorter2, first.Stemming)
	assert.Equal(t, "guide", first.Fields["section"])

	second := cfg.Files[1]
	assert.Equal(t, corpusdex.URLSource{URL: "https://example.com/readme"}, second.Source)

	assert.Equal(t, uint8(3), cfg.Output.MinimumQueryLength)
	assert.Equal(t, uint8(6), cfg.Output.ExcerptBuffer)
	assert.Equal(t, uint8(20), cfg.Output.DisplayedResultsCount)
	assert.True(t, cfg.Output.BreakOnFileError)
	assert.Equal(t, "https://example.com", cfg.Output.URLPrefix)
}

func TestParse_DefaultsWhenSectionsOmitted(t *testing.T) {
	cfg, err := Parse(`input { file { contents "hello" title "e0" } }`)
	require.NoError(t, err)
	assert.Equal(t, corpusdex.DefaultOutputConfig(), cfg.Output)
}

func TestParse_FileWithoutSourceIsError(t *testing.T) {
	_, err := Parse(`input { file { title "broken" } }`)
	assert.Error(t, err)
}

func TestParse_GlobPathExpandsToOneFilePerMatch(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.md", "b.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("# "+name), 0o644))
	}

	doc := fmt.Sprintf(`input { file { path %q stemming "porter2" } }`, filepath.Join(dir, "*.md"))
	cfg, err := Parse(doc)
	require.NoError(t, err)
	require.Len(t, cfg.Files, 2)

	var titles []string
	for _, f := range cfg.Files {
		assert.Equal(t, corpusdex.StemPorter2, f.Stemming)
		titles = append(titles, f.Title)
	}
	assert.ElementsMatch(t, []string{"a", "b"}, titles)
}

func TestParse_GlobPathWithNoMatchesIsError(t *testing.T) {
	dir := t.TempDir()
	_, err := Parse(fmt.Sprintf(`input { file { path %q } }`, filepath.Join(dir, "*.md")))
	assert.Error(t, err)
}
