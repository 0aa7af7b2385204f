package daemon

import (
	"fmt"
	"os"
	"path/filepath"
)

// MessageType identifies the type of message
type MessageType string

const (
	MsgSubscribe      MessageType = "subscribe"
	MsgUnsubscribe    MessageType = "unsubscribe"
	MsgRender         MessageType = "render"
	MsgInput          MessageType = "input"
	MsgResize         MessageType = "resize"
	MsgViewportUpdate MessageType = "viewport_update"
	MsgPing           MessageType = "ping"
	MsgPong           MessageType = "pong"
)

// Message is the envelope for shell<->renderer traffic, one JSON object per line.
type Message struct {
	Type     MessageType `json:"type"`
	ClientID string      `json:"client_id,omitempty"`
	Payload  interface{} `json:"payload,omitempty"`
}

// Region actions. Targets depend on the action: a menu id, a workspace id,
// a header control, or a page button.
const (
	ActionMenu      = "menu"       // menu tree node (toggle or select decided by the tree)
	ActionMenuInert = "menu_inert" // row inside an offline panel: inside the tree, does nothing
	ActionWorkspace = "workspace"  // workspace switcher entry
	ActionHeader    = "header"     // header control: switcher, language, bell, user menu
	ActionPage      = "page"       // button rendered by a content page
	ActionLogin     = "login"      // login form field or submit
)

// ClickableRegion defines a clickable area in the rendered content
type ClickableRegion struct {
	StartLine int    `json:"start"`     // First line of the region (0-indexed in content)
	EndLine   int    `json:"end"`       // Last line of the region (inclusive)
	StartCol  int    `json:"start_col"` // First column of the region
	EndCol    int    `json:"end_col"`   // Exclusive end column, 0 for full width
	Action    string `json:"action"`
	Target    string `json:"target"`
}

// Contains reports whether the cell (x, line) falls inside the region for a
// frame of the given width.
func (r ClickableRegion) Contains(x, line, width int) bool {
	if line < r.StartLine || line > r.EndLine {
		return false
	}
	endCol := r.EndCol
	if endCol == 0 {
		endCol = width
	}
	return x >= r.StartCol && x < endCol
}

// HitTest returns the first region containing the cell. Regions listed first
// win, so overlays are listed before what they cover.
func HitTest(regions []ClickableRegion, x, line, width int) (ClickableRegion, bool) {
	for _, r := range regions {
		if r.Contains(x, line, width) {
			return r, true
		}
	}
	return ClickableRegion{}, false
}

// RenderPayload contains a pre-rendered frame for a renderer
type RenderPayload struct {
	SequenceNum    uint64            `json:"seq"`             // Monotonic sequence for race detection
	Content        string            `json:"content"`         // Pre-rendered scrollable content
	PinnedContent  string            `json:"pinned_content"`  // Status line pinned to the bottom
	Width          int               `json:"width"`           // Rendered for this width
	Height         int               `json:"height"`          // Rendered for this height
	TotalLines     int               `json:"total_lines"`     // Total lines in content for scroll calc
	PinnedHeight   int               `json:"pinned_height"`   // Height of pinned section
	ViewportOffset int               `json:"viewport_offset"` // Suggested scroll position
	Regions        []ClickableRegion `json:"regions"`         // Clickable regions for hit testing
	PinnedRegions  []ClickableRegion `json:"pinned_regions"`  // Regions in pinned content (Y relative to pinned start)
}

// InputPayload contains input events from a renderer
type InputPayload struct {
	SequenceNum    uint64 `json:"seq"`                       // Render frame this input references
	Type           string `json:"type"`                      // "key" or "action"
	MouseX         int    `json:"mouse_x,omitempty"`         // Mouse X coordinate
	MouseY         int    `json:"mouse_y,omitempty"`         // Mouse Y coordinate
	Button         string `json:"button,omitempty"`          // "left", "right", "middle"
	Action         string `json:"action,omitempty"`          // "press", "release"
	Key            string `json:"key,omitempty"`             // Key string for keyboard events
	ClickedArea    string `json:"clicked_area,omitempty"`    // "content" or "pinned"
	ViewportOffset int    `json:"viewport_offset,omitempty"` // Current viewport offset
	// Semantic action resolved by the renderer from clickable regions. Empty
	// when the press hit nothing, which still matters for click-outside.
	ResolvedAction string `json:"resolved_action,omitempty"`
	ResolvedTarget string `json:"resolved_target,omitempty"`
}

// ResizePayload contains terminal dimensions and capabilities
type ResizePayload struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	ColorProfile string `json:"color_profile,omitempty"` // "Ascii", "ANSI", "ANSI256", "TrueColor"
}

// ViewportUpdatePayload contains scroll position update
type ViewportUpdatePayload struct {
	ViewportOffset int `json:"viewport_offset"`
}

func runtimeDir() string {
	if dir := os.Getenv("PLOUTO_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}

// SocketPath returns the socket path for a shared session
func SocketPath(sessionID string) string {
	if sessionID == "" {
		sessionID = "default"
	}
	return filepath.Join(runtimeDir(), fmt.Sprintf("plouto-%s.sock", sessionID))
}

// PidPath returns the pidfile path for a shared session
func PidPath(sessionID string) string {
	if sessionID == "" {
		sessionID = "default"
	}
	return filepath.Join(runtimeDir(), fmt.Sprintf("plouto-%s.pid", sessionID))
}
