package pipeline

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/indexflow/pkg/cache"
	"github.com/matzehuels/indexflow/pkg/errors"
	"github.com/matzehuels/indexflow/pkg/layout"
	"github.com/matzehuels/indexflow/pkg/route"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatJSON: true,
	FormatPDF:  true,
	FormatPNG:  true,
}

// SVG styles.
const (
	StyleCanvas   = "canvas"   // routed cards drawn by pkg/render/canvas
	StyleNodelink = "nodelink" // Graphviz-placed boxes, ignores layout
)

// Render defaults.
const (
	DefaultFormat = FormatSVG
	DefaultStyle  = StyleCanvas
	DefaultScale  = 2.0
)

var optionsValidate *validator.Validate

func init() {
	optionsValidate = validator.New()
	_ = optionsValidate.RegisterValidation("direction", func(fl validator.FieldLevel) bool {
		_, err := layout.ParseDirection(fl.Field().String())
		return err == nil
	})
	_ = optionsValidate.RegisterValidation("engine", func(fl validator.FieldLevel) bool {
		return layout.IsEngine(fl.Field().String())
	})
}

// Options configures a pipeline run. Zero values mean "default"; see
// SetDefaults. The toml tags serve the CLI config file, the json tags the
// HTTP API.
type Options struct {
	// Layout
	Engine      string  `toml:"engine" json:"engine,omitempty" validate:"engine"`
	Direction   string  `toml:"direction" json:"direction,omitempty" validate:"direction"`
	NodeSpacing float64 `toml:"node_spacing" json:"node_spacing,omitempty" validate:"gt=0,lte=2000"`
	RankSpacing float64 `toml:"rank_spacing" json:"rank_spacing,omitempty" validate:"gt=0,lte=2000"`
	Margin      float64 `toml:"margin" json:"margin,omitempty" validate:"gte=0,lte=2000"`

	// Routing
	Padding     float64 `toml:"padding" json:"padding,omitempty" validate:"gte=0,lte=500"`
	LaneStep    float64 `toml:"lane_step" json:"lane_step,omitempty" validate:"gt=0,lte=500"`
	MaxAttempts int     `toml:"max_attempts" json:"max_attempts,omitempty" validate:"gte=1,lte=200"`

	// Render
	Formats     []string `toml:"formats" json:"formats,omitempty" validate:"min=1,dive,oneof=svg dot json pdf png"`
	Style       string   `toml:"style" json:"style,omitempty" validate:"oneof=canvas nodelink"`
	Selection   []string `toml:"-" json:"selection,omitempty"`
	Interactive bool     `toml:"interactive" json:"interactive,omitempty"`
	Detailed    bool     `toml:"detailed" json:"detailed,omitempty"` // DOT labels with details
	Scale       float64  `toml:"scale" json:"scale,omitempty" validate:"gt=0,lte=8"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `toml:"-" json:"-"`

	// Sizer overrides intrinsic node sizes. Diagrams computed with a
	// custom sizer are not cached.
	Sizer layout.Sizer `toml:"-" json:"-" validate:"-"`
}

// SetDefaults fills every zero field with its default.
func (o *Options) SetDefaults() {
	if o.Engine == "" {
		o.Engine = layout.EngineLayered
	}
	if o.Direction == "" {
		o.Direction = string(layout.LeftToRight)
	}
	if o.NodeSpacing == 0 {
		o.NodeSpacing = layout.DefaultNodeSpacing
	}
	if o.RankSpacing == 0 {
		o.RankSpacing = layout.DefaultRankSpacing
	}
	if o.Margin == 0 {
		o.Margin = layout.DefaultMargin
	}
	if o.Padding == 0 {
		o.Padding = route.DefaultPadding
	}
	if o.LaneStep == 0 {
		o.LaneStep = route.DefaultLaneStep
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = route.DefaultMaxAttempts
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// Validate applies defaults, normalizes the direction and format names and
// checks every field. The first failing field is reported as
// INVALID_OPTION (INVALID_FORMAT for formats).
func (o *Options) Validate() error {
	o.SetDefaults()
	for i, f := range o.Formats {
		o.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if err := errors.ValidateOutputFormats(o.Formats, ValidFormats); err != nil {
		return err
	}

	if err := optionsValidate.Struct(o); err != nil {
		var fieldErrs validator.ValidationErrors
		if ok := asValidationErrors(err, &fieldErrs); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errors.New(errors.ErrCodeInvalidOption, "invalid %s %v (%s)", optionName(fe.Field()), fe.Value(), ruleText(fe))
		}
		return errors.Wrap(errors.ErrCodeInvalidOption, err, "invalid options")
	}

	d, _ := layout.ParseDirection(o.Direction)
	o.Direction = string(d)
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if ok {
		*target = ve
	}
	return ok
}

// optionName turns a Go field name into the flag spelling, e.g.
// NodeSpacing -> node-spacing.
func optionName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

func ruleText(fe validator.FieldError) string {
	switch fe.Tag() {
	case "engine":
		return fmt.Sprintf("must be one of %v", layout.Engines())
	case "direction":
		return "must be left-to-right or top-to-bottom"
	case "oneof":
		return "must be one of " + fe.Param()
	case "gt":
		return "must be > " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	}
	return fe.Tag()
}

// LayoutOptions returns the layout engine options.
func (o Options) LayoutOptions() layout.Options {
	d, _ := layout.ParseDirection(o.Direction)
	return layout.Options{
		Direction:   d,
		NodeSpacing: o.NodeSpacing,
		RankSpacing: o.RankSpacing,
		Margin:      o.Margin,
		Sizer:       o.sizer(),
	}
}

// RouteOptions returns the routing options. The sizer is the layout's.
func (o Options) RouteOptions() route.Options {
	d, _ := layout.ParseDirection(o.Direction)
	return route.Options{
		Direction:   d,
		Padding:     o.Padding,
		LaneStep:    o.LaneStep,
		MaxAttempts: o.MaxAttempts,
		Sizer:       o.sizer(),
	}
}

func (o Options) sizer() layout.Sizer {
	if o.Sizer != nil {
		return o.Sizer
	}
	return layout.DefaultSizer
}

// DiagramKeyOpts returns the cache key options of the diagram stage.
func (o Options) DiagramKeyOpts() cache.DiagramKeyOpts {
	return cache.DiagramKeyOpts{
		Engine:      o.Engine,
		Direction:   o.Direction,
		NodeSpacing: o.NodeSpacing,
		RankSpacing: o.RankSpacing,
		Margin:      o.Margin,
		Padding:     o.Padding,
		LaneStep:    o.LaneStep,
		MaxAttempts: o.MaxAttempts,
	}
}

// ArtifactKeyOpts returns the cache key options of one artifact.
func (o Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPDF, FormatPNG:
		k.Style = o.Style
		k.Selection = o.Selection
		k.Interactive = o.Interactive
		if o.Style == StyleNodelink && o.Detailed {
			k.Style += "+detailed"
		}
	case FormatDOT:
		if o.Detailed {
			k.Style = "detailed"
		}
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
