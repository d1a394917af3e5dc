package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/indexflow/pkg/cache"
	"github.com/matzehuels/indexflow/pkg/graph"
	"github.com/matzehuels/indexflow/pkg/pipeline"
)

const bundleJSON = `{
  "dataSource": {"name": "blob", "type": "azureblob"},
  "indexer": {"name": "docs-indexer"},
  "skillset": {"skills": [
    {"@odata.type": "#Microsoft.Skills.Text.SplitSkill",
     "inputs": [{"name": "text", "source": "/document/content"}],
     "outputs": [{"name": "textItems", "targetName": "pages"}]}
  ]},
  "index": {"name": "docs-index"}
}`

const bundleYAML = `
dataSource:
  name: blob
  type: azureblob
indexer:
  name: docs-indexer
`

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, log.New(io.Discard))
	srv := httptest.NewServer(New(runner, log.New(io.Discard), cfg).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Config{})
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var h healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil || h.Status != "ok" {
		t.Errorf("health = %+v, %v", h, err)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestGraph(t *testing.T) {
	srv := newTestServer(t, Config{})
	resp := post(t, srv.URL+"/v1/graph", "application/json", bundleJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	g, err := graph.ReadGraph(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.Node("skill:0"); !ok {
		t.Error("missing skill node")
	}
	for _, n := range g.Nodes {
		if n.Width != 0 {
			t.Errorf("graph endpoint should not lay out, %s has width %v", n.ID, n.Width)
		}
	}
	if resp.Header.Get(IssuesHeader) != "0" {
		t.Errorf("issues header = %q", resp.Header.Get(IssuesHeader))
	}
}

func TestGraphYAML(t *testing.T) {
	srv := newTestServer(t, Config{})
	resp := post(t, srv.URL+"/v1/graph", "application/yaml", bundleYAML)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	g, err := graph.ReadGraph(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(g.Nodes))
	}
}

func TestGraphReportsIssues(t *testing.T) {
	srv := newTestServer(t, Config{})
	resp := post(t, srv.URL+"/v1/graph", "application/json", `{"dataSource": 42, "index": {"name": "ix"}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get(IssuesHeader); got != "1" {
		t.Errorf("issues header = %q, want 1", got)
	}
}

func TestLayout(t *testing.T) {
	srv := newTestServer(t, Config{})
	resp := post(t, srv.URL+"/v1/layout?direction=TB&node_spacing=80", "application/json", bundleJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	g, err := graph.ReadGraph(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range g.Nodes {
		if n.SourceSide != graph.SideBottom || n.TargetSide != graph.SideTop {
			t.Errorf("%s sides = %s/%s, want bottom/top", n.ID, n.SourceSide, n.TargetSide)
		}
	}
	for _, e := range g.Edges {
		if len(e.Points) == 0 || e.LabelPoint == nil {
			t.Errorf("edge %s not routed", e.ID)
		}
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer(t, Config{})

	tests := []struct {
		query       string
		contentType string
		contains    string
	}{
		{"", "image/svg+xml", "<svg"},
		{"?select=index&interactive=true", "image/svg+xml", "<script>"},
		{"?format=dot", "text/vnd.graphviz; charset=utf-8", "digraph G"},
		{"?format=json", "application/json", `"points"`},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/render"+tt.query, "application/json", bundleJSON)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
		})
	}
}

func TestRenderCacheHeader(t *testing.T) {
	srv := newTestServer(t, Config{})
	first := post(t, srv.URL+"/v1/render?format=dot", "application/json", bundleJSON)
	second := post(t, srv.URL+"/v1/render?format=dot", "application/json", bundleJSON)
	if first.Header.Get("X-Cache") != "MISS" || second.Header.Get("X-Cache") != "HIT" {
		t.Errorf("X-Cache = %s then %s, want MISS then HIT", first.Header.Get("X-Cache"), second.Header.Get("X-Cache"))
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t, Config{MaxBodyBytes: 64})

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"bad direction", "/v1/layout?direction=diagonal", `{}`, http.StatusBadRequest, "INVALID_OPTION"},
		{"bad number", "/v1/layout?margin=wide", `{}`, http.StatusBadRequest, "INVALID_OPTION"},
		{"bad bool", "/v1/render?interactive=maybe", `{}`, http.StatusBadRequest, "INVALID_OPTION"},
		{"bad format", "/v1/render?format=gif", `{}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"not an object", "/v1/graph", `[1, 2]`, http.StatusBadRequest, "INVALID_INPUT"},
		{"too large", "/v1/graph", `{"dataSource": {"name": "` + strings.Repeat("x", 100) + `"}}`, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
		{"unknown route", "/v1/nope", `{}`, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.path, "application/json", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			e := decodeError(t, resp)
			if string(e.Code) != tt.code {
				t.Errorf("code = %s, want %s (%s)", e.Code, tt.code, e.Message)
			}
			if e.RequestID == "" || e.RequestID != resp.Header.Get(RequestIDHeader) {
				t.Errorf("request_id = %q, header = %q", e.RequestID, resp.Header.Get(RequestIDHeader))
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, Config{})
	resp, err := http.Get(srv.URL + "/v1/graph")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestRequestIDPropagates(t *testing.T) {
	srv := newTestServer(t, Config{})
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestDefaultsApply(t *testing.T) {
	srv := newTestServer(t, Config{Defaults: pipeline.Options{Direction: "top-to-bottom"}})
	resp := post(t, srv.URL+"/v1/layout", "application/json", bundleJSON)
	g, err := graph.ReadGraph(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if g.Nodes[0].SourceSide != graph.SideBottom {
		t.Errorf("server default direction not applied: %s", g.Nodes[0].SourceSide)
	}
}
