package chrome

// EventType names an interaction the render layer reports.
type EventType string

const (
	NodeClick       EventType = "node-click"
	NodeDoubleClick EventType = "node-double-click"
	PaneClick       EventType = "pane-click"
	SelectionChange EventType = "selection-change"
)

// Event is one interaction. NodeID is empty for pane clicks; Selection is
// set for selection changes.
type Event struct {
	Type      EventType
	NodeID    string
	Selection Selection
}

// Handlers are the callbacks a host attaches to the canvas. Nil handlers
// are skipped. The handlers only receive node IDs; what a click means is up
// to the host.
type Handlers struct {
	OnNodeClick       func(id string)
	OnNodeDoubleClick func(id string)
	OnPaneClick       func()
	OnSelectionChange func(Selection)
}

// Dispatch routes ev to its handler and reports whether one ran.
func (h Handlers) Dispatch(ev Event) bool {
	switch ev.Type {
	case NodeClick:
		if h.OnNodeClick != nil {
			h.OnNodeClick(ev.NodeID)
			return true
		}
	case NodeDoubleClick:
		if h.OnNodeDoubleClick != nil {
			h.OnNodeDoubleClick(ev.NodeID)
			return true
		}
	case PaneClick:
		if h.OnPaneClick != nil {
			h.OnPaneClick()
			return true
		}
	case SelectionChange:
		if h.OnSelectionChange != nil {
			h.OnSelectionChange(ev.Selection)
			return true
		}
	}
	return false
}
