package canvas

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/indexflow/pkg/graph"
	"github.com/matzehuels/indexflow/pkg/render/chrome"
)

// Padding around the drawing inside the viewBox.
const framePadding = 20

// Card text metrics. They match the header and line height the layout
// sizes cards with.
const (
	titleBaseline    = 28
	subtitleBaseline = 48
	detailsTop       = 64
	detailLine       = 18
	textInset        = 14
)

const interactionCSS = `
    .node { cursor: pointer; }
    .node .card { transition: stroke-width 0.15s ease; }
    .node:hover .card { stroke-width: 2.5; }
    .edge { fill: none; stroke: #94a3b8; stroke-width: 1.5; }
    .edge-label { font: 11px sans-serif; fill: #475569; }
    .title { font: 600 14px sans-serif; fill: #0f172a; }
    .subtitle { font: 12px sans-serif; fill: #64748b; }
    .detail { font: 11px monospace; fill: #334155; }
    .edit { font: 13px sans-serif; fill: #64748b; }`

// The script reports clicks as DOM events named after chrome.EventType so
// a host page can map them onto chrome.Handlers.
const interactionJS = `
    const emit = (type, id) => document.dispatchEvent(new CustomEvent('indexflow:' + type, { detail: { id } }));
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('click', ev => { ev.stopPropagation(); emit('%s', el.dataset.id); });
      el.addEventListener('dblclick', ev => { ev.stopPropagation(); emit('%s', el.dataset.id); });
    });
    document.querySelector('svg').addEventListener('click', () => emit('%s', ''));`

// Option configures RenderSVG.
type Option func(*renderer)

type renderer struct {
	selection   chrome.Selection
	policy      chrome.Policy
	interactive bool
	maxDetails  int
}

// WithSelection highlights the selected nodes with their ring.
func WithSelection(s chrome.Selection) Option { return func(r *renderer) { r.selection = s } }

// WithPolicy overrides ring colors and the edit affordance.
func WithPolicy(p chrome.Policy) Option { return func(r *renderer) { r.policy = p } }

// WithInteraction embeds the hover style and the click event script.
func WithInteraction() Option { return func(r *renderer) { r.interactive = true } }

// WithMaxDetails caps the detail lines drawn per card. Zero draws all.
func WithMaxDetails(n int) Option { return func(r *renderer) { r.maxDetails = n } }

// RenderSVG draws a laid-out, routed graph. Edges without points are
// skipped.
func RenderSVG(g graph.Graph, opts ...Option) []byte {
	r := renderer{}
	for _, opt := range opts {
		opt(&r)
	}

	b := g.Bounds()
	minX, minY := b.MinX-framePadding, b.MinY-framePadding
	w, h := b.Width()+2*framePadding, b.Height()+2*framePadding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, w, h, w, h)
	buf.WriteString(`  <defs><marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="#94a3b8"/></marker></defs>` + "\n")
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", interactionCSS)

	for _, e := range g.Edges {
		renderEdge(&buf, e)
	}
	for _, v := range chrome.Decorate(g, r.selection, r.policy) {
		r.renderNode(&buf, v)
	}

	if r.interactive {
		fmt.Fprintf(&buf, "  <script>%s\n  </script>\n",
			fmt.Sprintf(interactionJS, chrome.NodeClick, chrome.NodeDoubleClick, chrome.PaneClick))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderEdge(buf *bytes.Buffer, e graph.Edge) {
	if len(e.Points) < 2 {
		return
	}
	var d strings.Builder
	for i, p := range e.Points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&d, "%s %.1f %.1f ", cmd, p.X, p.Y)
	}
	fmt.Fprintf(buf, `  <path class="edge" id="edge-%s" d="%s" marker-end="url(#arrow)"/>`+"\n",
		esc(e.ID), strings.TrimSpace(d.String()))
	if e.Label != "" && e.LabelPoint != nil {
		fmt.Fprintf(buf, `  <text class="edge-label" x="%.1f" y="%.1f" text-anchor="middle" dy="-4">%s</text>`+"\n",
			e.LabelPoint.X, e.LabelPoint.Y, esc(e.Label))
	}
}

func (r renderer) renderNode(buf *bytes.Buffer, v chrome.NodeView) {
	fmt.Fprintf(buf, `  <g class="node node-%s" id="node-%s" data-id="%s" data-kind="%s">`+"\n",
		esc(string(v.Kind)), esc(v.ID), esc(v.ID), esc(string(v.Kind)))

	if v.Selected {
		fmt.Fprintf(buf, `    <rect class="ring" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="12" fill="none" stroke="%s" stroke-width="3"/>`+"\n",
			v.X-4, v.Y-4, v.Width+8, v.Height+8, esc(v.Ring))
	}
	fmt.Fprintf(buf, `    <rect class="card" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="8" fill="white" stroke="%s" stroke-width="1.5"/>`+"\n",
		v.X, v.Y, v.Width, v.Height, esc(v.Ring))

	x := v.X + textInset
	fmt.Fprintf(buf, `    <text class="title" x="%.1f" y="%.1f">%s</text>`+"\n", x, v.Y+titleBaseline, esc(v.Data.Title))
	if v.Data.Subtitle != "" {
		fmt.Fprintf(buf, `    <text class="subtitle" x="%.1f" y="%.1f">%s</text>`+"\n", x, v.Y+subtitleBaseline, esc(v.Data.Subtitle))
	}

	details := v.Data.Details
	if r.maxDetails > 0 && len(details) > r.maxDetails {
		details = append(details[:r.maxDetails:r.maxDetails], fmt.Sprintf("… +%d", len(v.Data.Details)-r.maxDetails))
	}
	for i, line := range details {
		y := v.Y + detailsTop + float64(i+1)*detailLine - 4
		if y > v.Y+v.Height-4 {
			break
		}
		fmt.Fprintf(buf, `    <text class="detail" x="%.1f" y="%.1f">%s</text>`+"\n", x, y, esc(line))
	}

	if v.Editable {
		fmt.Fprintf(buf, `    <text class="edit" x="%.1f" y="%.1f" text-anchor="end">✎</text>`+"\n",
			v.X+v.Width-textInset, v.Y+titleBaseline)
	}
	buf.WriteString("  </g>\n")
}

func esc(s string) string { return html.EscapeString(s) }
