package server

import (
	"net/http"
	"strconv"

	"github.com/matzehuels/indexflow/pkg/buildinfo"
	"github.com/matzehuels/indexflow/pkg/graph"
	"github.com/matzehuels/indexflow/pkg/pipeline"
	"github.com/matzehuels/indexflow/pkg/resource"
)

// IssuesHeader reports how many bundle sections were dropped as malformed.
const IssuesHeader = "X-Bundle-Issues"

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

// handleGraph: bundle -> graph JSON (unpositioned).
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	b, opts, ok := s.decode(w, r)
	if !ok {
		return
	}
	g, _, err := s.runner.Build(r.Context(), b, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeGraph(w, r, g)
}

// handleLayout: bundle -> laid out and routed graph JSON.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	b, opts, ok := s.decode(w, r)
	if !ok {
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}
	if err := opts.Validate(); err != nil {
		writeError(w, r, err)
		return
	}
	g, _, err := s.runner.Build(r.Context(), b, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	d, _, err := s.runner.Diagram(r.Context(), g, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeGraph(w, r, d)
}

// handleRender: bundle -> one artifact, svg unless ?format= says otherwise.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	b, opts, ok := s.decode(w, r)
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), b, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[opts.Formats[0]])
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[opts.Formats[0]])
}

// decode reads the bundle body and the query options. On failure it has
// already written the error response.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (resource.Bundle, pipeline.Options, bool) {
	opts, err := s.options(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return resource.Bundle{}, opts, false
	}
	b, issues, err := resource.Decode(r.Body, bundleFormat(r))
	if err != nil {
		writeError(w, r, err)
		return resource.Bundle{}, opts, false
	}
	for _, is := range issues {
		s.logger.Warn("dropped bundle section", "issue", is.String(), "request_id", RequestID(r.Context()))
	}
	w.Header().Set(IssuesHeader, strconv.Itoa(len(issues)))
	return b, opts, true
}

func writeGraph(w http.ResponseWriter, r *http.Request, g graph.Graph) {
	data, err := graph.MarshalGraph(g)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func cacheStatus(ci pipeline.CacheInfo) string {
	if ci.RenderHit {
		return "HIT"
	}
	return "MISS"
}
