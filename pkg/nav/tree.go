// Package nav is the menu tree renderer. A Tree owns the disclosure state of
// one navigation widget and renders the role-filtered roots either as an
// accordion (sidebar layout) or as dropdown panels under a bar (topbar
// layout).
package nav

import (
	"go.uber.org/zap"

	"github.com/b/plouto/pkg/menu"
)

type Mode int

const (
	Accordion Mode = iota
	Dropdown
)

func (m Mode) String() string {
	if m == Dropdown {
		return "dropdown"
	}
	return "accordion"
}

// Outcome reports what a click did.
type Outcome int

const (
	Ignored Outcome = iota
	Selected
	Toggled
)

func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Toggled:
		return "toggled"
	default:
		return "ignored"
	}
}

// Tree holds per-node disclosure state. Nodes missing from open use their
// default, which is closed except for nested online branches inside a
// dropdown panel.
type Tree struct {
	mode     Mode
	onSelect func(id string)
	logger   *zap.Logger

	roots  menu.Forest
	open   map[string]bool
	active string
	epoch  uint64
	synced bool
}

// New creates a tree. onSelect is the selection callback and is only invoked
// for leaf-action nodes.
func New(mode Mode, onSelect func(id string), logger *zap.Logger) *Tree {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tree{
		mode:     mode,
		onSelect: onSelect,
		logger:   logger.Named("nav"),
		open:     make(map[string]bool),
	}
}

func (t *Tree) Mode() Mode { return t.mode }

// SetMode switches rendering mode and drops all disclosure state.
func (t *Tree) SetMode(m Mode) {
	if m == t.mode {
		return
	}
	t.mode = m
	t.open = make(map[string]bool)
	if m == Accordion {
		t.openActivePath()
	}
}

// Sync observes the navigation state before a render. A new epoch (login or
// workspace switch) drops every disclosure. A new active id auto-opens its
// path in accordion mode and closes every dropdown.
func (t *Tree) Sync(roots menu.Forest, activeID string, epoch uint64) {
	t.roots = roots
	if !t.synced || epoch != t.epoch {
		t.open = make(map[string]bool)
		t.epoch = epoch
		t.active = activeID
		t.synced = true
		if t.mode == Accordion {
			t.openActivePath()
		}
		return
	}
	if activeID == t.active {
		return
	}
	t.active = activeID
	if t.mode == Dropdown {
		t.CloseAll()
		return
	}
	t.openActivePath()
}

func (t *Tree) openActivePath() {
	path := menu.PathTo(t.roots, t.active)
	for _, n := range path {
		if n.Kind() != menu.KindLeaf {
			t.open[n.ID] = true
		}
	}
}

// IsOpen reports the disclosure state of the node with id.
func (t *Tree) IsOpen(id string) bool {
	if v, ok := t.open[id]; ok {
		return v
	}
	return t.defaultOpen(id)
}

func (t *Tree) defaultOpen(id string) bool {
	if t.mode != Dropdown {
		return false
	}
	path := menu.PathTo(t.roots, id)
	if len(path) < 2 {
		return false
	}
	return path[len(path)-1].Kind() == menu.KindBranch && !menu.UnderOffline(t.roots, id)
}

// AnyOpen reports whether a dropdown panel is showing.
func (t *Tree) AnyOpen() bool {
	return t.openRoot() != ""
}

func (t *Tree) openRoot() string {
	for _, r := range t.roots {
		if r.Kind() != menu.KindLeaf && t.IsOpen(r.ID) {
			return r.ID
		}
	}
	return ""
}

// CloseAll collapses every disclosure.
func (t *Tree) CloseAll() {
	t.open = make(map[string]bool)
}

// Outside handles a press outside the tree. Dropdowns close; accordion
// disclosures persist until toggled.
func (t *Tree) Outside() bool {
	if t.mode != Dropdown || !t.AnyOpen() {
		return false
	}
	t.CloseAll()
	t.logger.Debug("dismissed by outside press")
	return true
}

// Click applies the click contract for the node with id: a leaf action is
// selected, a branch or offline node toggles. Nodes inside an offline subtree
// and unknown ids are ignored.
func (t *Tree) Click(id string) Outcome {
	n, ok := menu.FindByID(t.roots, id)
	if !ok {
		t.logger.Warn("click on unknown menu id", zap.String("menu_id", id))
		return Ignored
	}
	if menu.UnderOffline(t.roots, id) {
		return Ignored
	}
	switch n.Kind() {
	case menu.KindLeaf:
		if t.mode == Dropdown {
			t.CloseAll()
		}
		t.logger.Debug("select", zap.String("menu_id", id), zap.String("mode", t.mode.String()))
		if t.onSelect != nil {
			t.onSelect(id)
		}
		return Selected
	default:
		t.toggle(id)
		return Toggled
	}
}

func (t *Tree) toggle(id string) {
	next := !t.IsOpen(id)
	if t.mode == Dropdown && next && t.isRoot(id) {
		// one panel at a time
		t.CloseAll()
	}
	t.open[id] = next
	t.logger.Debug("toggle", zap.String("menu_id", id), zap.Bool("open", next))
}

func (t *Tree) isRoot(id string) bool {
	for _, r := range t.roots {
		if r.ID == id {
			return true
		}
	}
	return false
}
