// Command corpusdex builds and queries full-text search indexes over a
// small-to-medium document corpus described by a KDL config file.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/corpusdex/internal/config"
	"github.com/standardbeagle/corpusdex/internal/logging"
	"github.com/standardbeagle/corpusdex/internal/version"
	"github.com/standardbeagle/corpusdex/internal/watch"
	"github.com/standardbeagle/corpusdex/pkg/corpusdex"
	"github.com/standardbeagle/corpusdex/pkg/pathutil"
)

func main() {
	app := &cli.App{
		Name:    "corpusdex",
		Usage:   "build and query full-text search indexes",
		Version: version.Info(),
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "enable verbose logging to stderr"},
		},
		Before: func(c *cli.Context) error {
			logging.SetVerbose(c.Bool("verbose"))
			return nil
		},
		Commands: []*cli.Command{
			buildCommand,
			searchCommand,
			serveCommand,
			configCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "corpusdex:", err)
		os.Exit(1)
	}
}

var buildCommand = &cli.Command{
	Name:      "build",
	Usage:     "build an index from a config file",
	ArgsUsage: "<config.kdl>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "index.corpusdex", Usage: "output path for the index envelope"},
	},
	Action: func(c *cli.Context) error {
		if c.Args().Len() != 1 {
			return cli.Exit("usage: corpusdex build <config.kdl>", 1)
		}

		cfg, err := config.Load(c.Args().First())
		if err != nil {
			return err
		}

		result, err := corpusdex.Build(c.Context, cfg, progressPrinter(len(cfg.Files)))
		if err != nil {
			return err
		}

		if err := os.WriteFile(c.String("output"), result.PrimaryData, 0o644); err != nil {
			return err
		}

		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w.Error())
		}
		for _, p := range filePaths(cfg.Files) {
			fmt.Printf("  %s\n", displayPath(p))
		}
		fmt.Printf("indexed %d document(s), %d skipped, %d unique words in %s\n",
			result.Statistics.EntriesIndexed, result.Statistics.EntriesSkipped,
			result.Statistics.UniqueWords, result.Statistics.BuildDuration)
		return nil
	},
}

var searchCommand = &cli.Command{
	Name:      "search",
	Usage:     "query an index",
	ArgsUsage: "<index-file> <query>",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "emit results as JSON"},
	},
	Action: func(c *cli.Context) error {
		if c.Args().Len() != 2 {
			return cli.Exit("usage: corpusdex search <index-file> <query>", 1)
		}

		idx, err := loadIndex(c.Args().Get(0))
		if err != nil {
			return err
		}

		out, err := corpusdex.Search(idx, c.Args().Get(1))
		if err != nil {
			return err
		}

		if c.Bool("json") {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}
		printResults(out)
		return nil
	},
}

var serveCommand = &cli.Command{
	Name:      "serve",
	Usage:     "watch a config's sources and rebuild the index on change",
	ArgsUsage: "<config.kdl>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "index.corpusdex"},
	},
	Action: func(c *cli.Context) error {
		if c.Args().Len() != 1 {
			return cli.Exit("usage: corpusdex serve <config.kdl>", 1)
		}
		configPath := c.Args().First()

		rebuild := func() {
			cfg, err := config.Load(configPath)
			if err != nil {
				fmt.Fprintln(os.Stderr, "reload config:", err)
				return
			}
			result, err := corpusdex.Build(c.Context, cfg, nil)
			if err != nil {
				fmt.Fprintln(os.Stderr, "build failed:", err)
				return
			}
			if err := os.WriteFile(c.String("output"), result.PrimaryData, 0o644); err != nil {
				fmt.Fprintln(os.Stderr, "write index:", err)
				return
			}
			fmt.Printf("rebuilt index: %d document(s)\n", result.Statistics.EntriesIndexed)
		}

		rebuild()

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		paths := filePaths(cfg.Files)
		paths = append(paths, configPath)

		w, err := watch.New(paths, 250*time.Millisecond)
		if err != nil {
			return err
		}
		defer w.Close()

		fmt.Println("watching for changes, ctrl-c to stop:")
		for _, p := range paths {
			fmt.Printf("  %s\n", displayPath(p))
		}
		return w.Run(c.Context, rebuild)
	},
}

var configCommand = &cli.Command{
	Name:  "config",
	Usage: "inspect or scaffold a config file",
	Subcommands: []*cli.Command{
		{
			Name:      "validate",
			ArgsUsage: "<config.kdl>",
			Action: func(c *cli.Context) error {
				if c.Args().Len() != 1 {
					return cli.Exit("usage: corpusdex config validate <config.kdl>", 1)
				}
				cfg, err := config.Load(c.Args().First())
				if err != nil {
					return err
				}
				fmt.Printf("ok: %d file(s) configured\n", len(cfg.Files))
				return nil
			},
		},
		{
			Name:      "show",
			ArgsUsage: "<config.kdl>",
			Action: func(c *cli.Context) error {
				if c.Args().Len() != 1 {
					return cli.Exit("usage: corpusdex config show <config.kdl>", 1)
				}
				cfg, err := config.Load(c.Args().First())
				if err != nil {
					return err
				}
				for _, p := range filePaths(cfg.Files) {
					fmt.Println(displayPath(p))
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			},
		},
		{
			Name:  "init",
			Usage: "write a starter config to stdout",
			Action: func(c *cli.Context) error {
				fmt.Print(starterConfig)
				return nil
			},
		},
	},
}

const starterConfig = `input {
    frontmatter_handling "omit"
    file {
        path "./docs/intro.md"
        title "Introduction"
        stemming "porter2"
    }
}
output {
    minimum_query_length 3
    excerpt_buffer 8
    excerpts_per_result 5
    displayed_results_count 10
    break_on_file_error false
}
`

// displayPath renders a FilePathSource's path relative to the current
// working directory for CLI output, falling back to the path as configured
// if it or the working directory can't be resolved, and to its absolute
// form if it lies outside the working directory.
func displayPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	return pathutil.ToRelative(abs, cwd)
}

func filePaths(files []corpusdex.InputFile) []string {
	var paths []string
	for _, f := range files {
		if p, ok := f.Source.(corpusdex.FilePathSource); ok {
			paths = append(paths, p.Path)
		}
	}
	return paths
}

func loadIndex(path string) (*corpusdex.Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", path, err)
	}
	return corpusdex.DecodeIndex(data)
}

func progressPrinter(total int) corpusdex.ProgressFunc {
	return func(r corpusdex.ProgressReport) {
		switch r.State {
		case corpusdex.ProgressStartedDocument:
			logging.LogBuild("[%d/%d] %s", r.Index+1, total, r.Title)
		case corpusdex.ProgressFailed:
			fmt.Fprintf(os.Stderr, "failed: %s\n", r.Title)
		}
	}
}

func printResults(out corpusdex.SearchOutput) {
	fmt.Printf("%d result(s)\n", out.TotalHitCount)
	for i, r := range out.Results {
		fmt.Printf("%d. %s (score %.1f)\n", i+1, r.Entry.Title, r.Score)
		for _, ex := range r.Excerpts {
			fmt.Printf("   %s\n", ex.Text)
		}
	}
}
