// Package logging provides the CLI's debug/verbose output, adapted from the
// teacher's internal/debug package: a mutex-guarded writer gated by an
// explicit enable flag rather than a build-time ldflag, since corpusdex has
// no MCP-protocol stdio constraint to protect.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	out     io.Writer
	enabled bool
)

// SetVerbose turns verbose logging on or off. Off by default.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = v
	if enabled && out == nil {
		out = os.Stderr
	}
}

// SetOutput redirects verbose output, for example to capture it in a buffer.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

func writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return nil
	}
	return out
}

// Log writes a component-tagged line when verbose logging is enabled.
func Log(component, format string, args ...interface{}) {
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[%s] "+format+"\n", append([]interface{}{component}, args...)...)
}

// LogBuild logs a build-pipeline event.
func LogBuild(format string, args ...interface{}) { Log("build", format, args...) }

// LogSearch logs a query-evaluation event.
func LogSearch(format string, args ...interface{}) { Log("search", format, args...) }

// LogWatch logs a filesystem-watch event.
func LogWatch(format string, args ...interface{}) { Log("watch", format, args...) }
