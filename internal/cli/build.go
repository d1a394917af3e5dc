package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/indexflow/pkg/graph"
	"github.com/matzehuels/indexflow/pkg/pipeline"
	"github.com/matzehuels/indexflow/pkg/resource"
)

// stdoutPath as an output path writes to standard output.
const stdoutPath = "-"

// buildCommand creates the build command: bundle -> pipeline graph.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "build [bundle]",
		Short: "Build the pipeline graph of a resource bundle",
		Long: `Build the pipeline graph of a resource bundle.

The bundle is a JSON, YAML or TOML document with the dataSource, indexer,
skillset, index, aliases and synonymMaps sections. The output is the graph
JSON: every node and edge with its payload, but no positions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Refresh: refresh}
			return c.runBuild(cmd.Context(), args[0], output, noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <bundle>.graph.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite cached results")

	return cmd
}

func (c *CLI) runBuild(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	b, err := c.readBundle(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	g, hit, err := runner.Build(ctx, b, opts)
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}
	prog.done("Built graph")

	path := outputPath(output, input, ".graph.json")
	if err := writeGraph(g, path); err != nil {
		return err
	}
	if path == stdoutPath {
		return nil
	}

	printSuccess("Graph built")
	printFile(path)
	printStats(len(g.Nodes), len(g.Edges), hit)
	printNewline()
	printNextStep("Render", appName+" render "+input)
	return nil
}

// layoutCommand creates the layout command: bundle -> positioned and routed
// graph.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		flags   optionFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [bundle]",
		Short: "Lay out and route the pipeline graph of a resource bundle",
		Long: `Lay out and route the pipeline graph of a resource bundle.

The output is the graph JSON with every node positioned (x, y, width, height,
source and target sides) and every edge carrying its orthogonal polyline and
label point. It is the same document 'render -f json' writes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, c.configPath)
			if err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], output, noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <bundle>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite cached results")
	flags.register(cmd.Flags(), false)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	b, err := c.readBundle(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	g, _, err := runner.Build(ctx, b, opts)
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}
	d, hit, err := runner.Diagram(ctx, g, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done(fmt.Sprintf("Laid out %s (%s)", opts.Direction, opts.Engine))

	path := outputPath(output, input, ".layout.json")
	if err := writeGraph(d, path); err != nil {
		return err
	}
	if path == stdoutPath {
		return nil
	}

	printSuccess("Layout complete")
	printFile(path)
	printStats(len(d.Nodes), len(d.Edges), hit)
	return nil
}

// readBundle decodes a bundle file and logs its dropped sections.
func (c *CLI) readBundle(ctx context.Context, input string) (resource.Bundle, error) {
	b, issues, err := resource.ReadFile(input)
	if err != nil {
		return b, fmt.Errorf("load bundle %s: %w", input, err)
	}
	logIssues(loggerFromContext(ctx), input, issues)
	return b, nil
}

// outputPath returns output, or the input path with its extension replaced
// by suffix.
func outputPath(output, input, suffix string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

func writeGraph(g graph.Graph, path string) error {
	if path == stdoutPath {
		return graph.WriteGraph(g, os.Stdout)
	}
	if err := graph.WriteGraphFile(g, path); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
