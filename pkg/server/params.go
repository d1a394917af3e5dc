package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/indexflow/pkg/errors"
	"github.com/matzehuels/indexflow/pkg/pipeline"
	"github.com/matzehuels/indexflow/pkg/resource"
)

// options starts from the server defaults and applies query overrides:
//
//	engine, direction, style, format (render only), select (comma list),
//	interactive, detailed, node_spacing, rank_spacing, margin, padding,
//	lane_step, max_attempts, scale, refresh
func (s *Server) options(q url.Values) (pipeline.Options, error) {
	o := s.cfg.Defaults
	o.Formats = nil
	o.Selection = nil

	if v := q.Get("engine"); v != "" {
		o.Engine = v
	}
	if v := q.Get("direction"); v != "" {
		o.Direction = v
	}
	if v := q.Get("style"); v != "" {
		o.Style = v
	}
	if v := q.Get("select"); v != "" {
		o.Selection = splitList(v)
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"node_spacing", &o.NodeSpacing},
		{"rank_spacing", &o.RankSpacing},
		{"margin", &o.Margin},
		{"padding", &o.Padding},
		{"lane_step", &o.LaneStep},
		{"scale", &o.Scale},
	}
	for _, f := range floats {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return o, errors.New(errors.ErrCodeInvalidOption, "%s must be a number, got %q", f.name, v)
		}
		*f.dst = n
	}
	if v := q.Get("max_attempts"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return o, errors.New(errors.ErrCodeInvalidOption, "max_attempts must be an integer, got %q", v)
		}
		o.MaxAttempts = n
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"interactive", &o.Interactive},
		{"detailed", &o.Detailed},
		{"refresh", &o.Refresh},
	}
	for _, b := range bools {
		v := q.Get(b.name)
		if v == "" {
			continue
		}
		t, err := strconv.ParseBool(v)
		if err != nil {
			return o, errors.New(errors.ErrCodeInvalidOption, "%s must be a boolean, got %q", b.name, v)
		}
		*b.dst = t
	}
	return o, nil
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

// bundleFormat picks the decoder from the Content-Type. Anything that is
// not YAML or TOML is read as JSON.
func bundleFormat(r *http.Request) resource.Format {
	ct := strings.ToLower(r.Header.Get("Content-Type"))
	switch {
	case strings.Contains(ct, "yaml"):
		return resource.FormatYAML
	case strings.Contains(ct, "toml"):
		return resource.FormatTOML
	}
	return resource.FormatJSON
}

// contentTypes maps render formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatPNG:  "image/png",
}
