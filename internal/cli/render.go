package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/indexflow/pkg/pipeline"
)

// renderCommand creates the render command: bundle -> artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		flags   optionFlags
	)

	cmd := &cobra.Command{
		Use:   "render [bundle]",
		Short: "Render the pipeline diagram of a resource bundle",
		Long: `Render the pipeline diagram of a resource bundle.

With a single format, -o names the output file. With several formats, -o is a
base path and each artifact gets the format's extension, e.g.
'render bundle.yaml -f svg,png -o out/pipeline' writes out/pipeline.svg and
out/pipeline.png. Without -o the bundle's path is the base.

PDF and PNG output needs rsvg-convert on the PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, c.configPath)
			if err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runRender(cmd.Context(), args[0], output, noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (several)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite cached results")
	flags.register(cmd.Flags(), true)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	b, err := c.readBundle(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, b, opts)
	if err != nil {
		return err
	}
	logger.Debug("stage times", "build", res.Stats.BuildTime, "diagram", res.Stats.DiagramTime, "render", res.Stats.RenderTime)

	paths := artifactPaths(output, input, opts.Formats)
	for _, format := range opts.Formats {
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
	}

	printSuccess("Rendered %d artifact(s)", len(opts.Formats))
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.RenderHit)
	return nil
}

// artifactPaths maps each format to its output file.
func artifactPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips the input's extension, or a format extension from output.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

