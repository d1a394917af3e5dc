package cli

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/indexflow/pkg/errors"
	"github.com/matzehuels/indexflow/pkg/layout"
	"github.com/matzehuels/indexflow/pkg/pipeline"
	"github.com/matzehuels/indexflow/pkg/route"
)

// optionFlags holds the pipeline option flags of one command.
type optionFlags struct {
	opts      pipeline.Options
	formats   string
	selection string

	render bool
}

// register adds the layout and routing flags, plus the render flags when
// the command renders.
func (f *optionFlags) register(fs *pflag.FlagSet, render bool) {
	f.render = render
	o := &f.opts

	fs.StringVar(&o.Engine, "engine", layout.EngineLayered, "layout engine: layered (default), graphviz")
	fs.StringVar(&o.Direction, "direction", string(layout.LeftToRight), "left-to-right (LR) or top-to-bottom (TB)")
	fs.Float64Var(&o.NodeSpacing, "node-spacing", layout.DefaultNodeSpacing, "gap between nodes of one rank")
	fs.Float64Var(&o.RankSpacing, "rank-spacing", layout.DefaultRankSpacing, "gap between ranks")
	fs.Float64Var(&o.Margin, "margin", layout.DefaultMargin, "offset of the drawing from the origin")
	fs.Float64Var(&o.Padding, "padding", route.DefaultPadding, "clearance kept between edges and nodes")
	fs.Float64Var(&o.LaneStep, "lane-step", route.DefaultLaneStep, "separation of parallel edges")
	fs.IntVar(&o.MaxAttempts, "max-attempts", route.DefaultMaxAttempts, "candidate paths tried per edge")

	if !render {
		return
	}
	fs.StringVarP(&f.formats, "format", "f", pipeline.DefaultFormat, "output format(s): svg, dot, json, pdf, png (comma-separated)")
	fs.StringVar(&o.Style, "style", pipeline.DefaultStyle, "svg style: canvas (default), nodelink")
	fs.StringVar(&f.selection, "select", "", "node id(s) to highlight (comma-separated)")
	fs.BoolVar(&o.Interactive, "interactive", false, "embed hover styles and click events in the svg")
	fs.BoolVar(&o.Detailed, "detailed", false, "include node details in dot labels")
	fs.Float64Var(&o.Scale, "scale", pipeline.DefaultScale, "png scale factor")
}

// resolve merges the flags over the --config file and validates the result.
// Without a config file the flag values (and their defaults) are used as is;
// with one, only flags set explicitly override it.
func (f *optionFlags) resolve(cmd *cobra.Command, configPath string) (pipeline.Options, error) {
	flagOpts := f.opts
	if f.render {
		flagOpts.Formats = splitList(f.formats)
		flagOpts.Selection = splitList(f.selection)
	}

	opts := flagOpts
	if configPath != "" {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return opts, err
		}
		opts = cfg
		overrideChanged(cmd.Flags(), &opts, flagOpts)
	}
	if !f.render {
		opts.Formats = []string{pipeline.FormatJSON}
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// overrideChanged copies every explicitly set flag from src into dst.
func overrideChanged(fs *pflag.FlagSet, dst *pipeline.Options, src pipeline.Options) {
	fields := map[string]func(){
		"engine":       func() { dst.Engine = src.Engine },
		"direction":    func() { dst.Direction = src.Direction },
		"node-spacing": func() { dst.NodeSpacing = src.NodeSpacing },
		"rank-spacing": func() { dst.RankSpacing = src.RankSpacing },
		"margin":       func() { dst.Margin = src.Margin },
		"padding":      func() { dst.Padding = src.Padding },
		"lane-step":    func() { dst.LaneStep = src.LaneStep },
		"max-attempts": func() { dst.MaxAttempts = src.MaxAttempts },
		"format":       func() { dst.Formats = src.Formats },
		"style":        func() { dst.Style = src.Style },
		"select":       func() { dst.Selection = src.Selection },
		"interactive":  func() { dst.Interactive = src.Interactive },
		"detailed":     func() { dst.Detailed = src.Detailed },
		"scale":        func() { dst.Scale = src.Scale },
	}
	fs.Visit(func(fl *pflag.Flag) {
		if apply, ok := fields[fl.Name]; ok {
			apply()
		}
	})
}

// loadConfig decodes a TOML options file. Unknown keys are rejected so a
// misspelt option does not silently fall back to its default.
func loadConfig(path string) (pipeline.Options, error) {
	var opts pipeline.Options
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return opts, errors.New(errors.ErrCodeInvalidOption, "unknown config key %q in %s", keys[0].String(), path)
	}
	return opts, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
