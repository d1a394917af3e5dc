package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event as a debug line. It implements all three hook
// interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks logs through logger.
func NewLogHooks(logger *log.Logger) *LogHooks { return &LogHooks{logger: logger} }

// Register installs h for pipeline, cache and HTTP events.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnBuild(_ context.Context, nodes, edges int, d time.Duration) {
	h.logger.Debug("built graph", "nodes", nodes, "edges", edges, "took", d)
}

func (h *LogHooks) OnLayout(_ context.Context, engine string, nodes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("layout failed", "engine", engine, "err", err)
		return
	}
	h.logger.Debug("laid out", "engine", engine, "nodes", nodes, "took", d)
}

func (h *LogHooks) OnRoute(_ context.Context, edges, routed int, d time.Duration) {
	h.logger.Debug("routed", "edges", edges, "routed", routed, "took", d)
}

func (h *LogHooks) OnRender(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("rendered", "format", format, "bytes", size, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, stage string) {
	h.logger.Debug("cache hit", "stage", stage)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, stage string) {
	h.logger.Debug("cache miss", "stage", stage)
}

func (h *LogHooks) OnCacheSet(_ context.Context, stage string, size int) {
	h.logger.Debug("cache set", "stage", stage, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("request", "method", method, "route", route, "status", status, "took", d)
}
