package cache

// Keyer derives cache keys for the three cached stages. Each key hashes the
// content it was computed from, so a changed bundle or option never hits a
// stale entry.
type Keyer interface {
	// GraphKey addresses the graph built from a bundle.
	GraphKey(bundleHash string) string
	// DiagramKey addresses a laid-out and routed graph.
	DiagramKey(graphHash string, opts DiagramKeyOpts) string
	// ArtifactKey addresses a rendered output.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// DiagramKeyOpts are the layout and routing settings that change a diagram.
type DiagramKeyOpts struct {
	Engine      string  `json:"engine"`
	Direction   string  `json:"direction"`
	NodeSpacing float64 `json:"node_spacing"`
	RankSpacing float64 `json:"rank_spacing"`
	Margin      float64 `json:"margin"`
	Padding     float64 `json:"padding"`
	LaneStep    float64 `json:"lane_step"`
	MaxAttempts int     `json:"max_attempts"`
}

// ArtifactKeyOpts are the render settings that change an artifact.
type ArtifactKeyOpts struct {
	Format      string   `json:"format"`
	Style       string   `json:"style,omitempty"`
	Selection   []string `json:"selection,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
}

// DefaultKeyer produces "graph:", "diagram:" and "artifact:" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) GraphKey(bundleHash string) string {
	return hashKey("graph", bundleHash)
}

func (DefaultKeyer) DiagramKey(graphHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", graphHash, opts)
}

func (DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}

var _ Keyer = DefaultKeyer{}
