// Package cli implements the indexflow command-line interface.
//
// The commands read a resource bundle (JSON, YAML or TOML), run it through
// the pipeline and write the result next to the input:
//   - build: the pipeline graph, unpositioned (<bundle>.graph.json)
//   - layout: the positioned and routed graph (<bundle>.layout.json)
//   - render: SVG, DOT, JSON, PDF or PNG artifacts
//   - serve: the HTTP API
//   - cache: manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. Bundle sections dropped while decoding are
// logged as warnings.
//
// # Configuration
//
// --config names a TOML file whose keys mirror the option flags with
// underscores (node_spacing, rank_spacing, lane_step, ...). Flags given
// explicitly on the command line override the file.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/indexflow/pkg/resource"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps that filters at
// level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs e.g. "Built graph (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logIssues reports the sections dropped while decoding a bundle.
func logIssues(l *log.Logger, input string, issues []resource.Issue) {
	for _, is := range issues {
		l.Warn("dropped malformed section", "file", input, "path", is.Path, "err", is.Err)
	}
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
