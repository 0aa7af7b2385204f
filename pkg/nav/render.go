package nav

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/b/plouto/pkg/daemon"
	"github.com/b/plouto/pkg/icons"
	"github.com/b/plouto/pkg/layout"
	"github.com/b/plouto/pkg/menu"
	"github.com/b/plouto/pkg/theme"
)

const (
	maxPanelWidth = 44
	indentStep    = 2
	// RailWidth is the width of a collapsed sidebar.
	RailWidth = 5
)

// Painter carries what rendering needs from the shell.
type Painter struct {
	Styles theme.Styles
	Icons  icons.Set
	T      func(id string, data ...map[string]interface{}) string
}

func (p Painter) tr(id string, data ...map[string]interface{}) string {
	if p.T == nil {
		return id
	}
	return p.T(id, data...)
}

// Render draws the tree as of the last Sync. Every row carries a region:
// ActionMenu for rows that react to clicks and ActionMenuInert for rows that
// belong to the tree but do nothing.
func (t *Tree) Render(p Painter, width int) layout.Block {
	if len(t.roots) == 0 {
		return layout.Text(p.Styles.Muted.Render(layout.Truncate(p.tr("Nav.Empty"), width)))
	}
	if t.mode == Dropdown {
		return t.renderDropdown(p, width)
	}
	var b layout.Block
	t.level(&b, p, t.roots, 0, width)
	return b
}

// RenderRail draws the collapsed sidebar: one icon per root, nothing else.
// Rows keep their ActionMenu regions so a press can expand the sidebar onto
// that root.
func (t *Tree) RenderRail(p Painter) layout.Block {
	var b layout.Block
	for _, r := range t.roots {
		cell := layout.Fit(" "+layout.Truncate(p.Icons.Resolve(r.Icon), RailWidth-2), RailWidth)
		b.AddLink(t.nodeStyle(p, r).Render(cell), daemon.ActionMenu, r.ID)
	}
	return b
}

// level renders nodes and, for open ones, their disclosure.
func (t *Tree) level(b *layout.Block, p Painter, nodes []menu.Node, depth, width int) {
	for _, n := range nodes {
		open := n.Kind() != menu.KindLeaf && t.IsOpen(n.ID)
		b.AddLink(t.row(p, n, depth, open, width), daemon.ActionMenu, n.ID)
		if !open {
			continue
		}
		pad := (depth + 1) * indentStep
		if n.Kind() == menu.KindOffline {
			b.Append(offlinePanel(p, n, width-pad).Indent(pad))
			continue
		}
		t.level(b, p, n.Children, depth+1, width)
	}
}

func (t *Tree) row(p Painter, n menu.Node, depth int, open bool, width int) string {
	marker := "  "
	if n.Kind() != menu.KindLeaf {
		marker = "▸ "
		if open {
			marker = "▾ "
		}
	}
	badge := badgeFor(p, n)
	label := strings.Repeat(" ", depth*indentStep) + marker + p.Icons.Resolve(n.Icon) + " " + n.Title
	avail := width - lipgloss.Width(badge)
	label = layout.Fit(layout.Truncate(label, avail), avail)
	return t.nodeStyle(p, n).Render(label) + badge
}

func (t *Tree) nodeStyle(p Painter, n menu.Node) lipgloss.Style {
	switch {
	case n.ID == t.active:
		return p.Styles.NavActive
	case menu.IsOnActivePath(n, t.active):
		return p.Styles.NavAncestor
	case n.Kind() == menu.KindOffline:
		return p.Styles.Offline
	default:
		return p.Styles.NavItem
	}
}

func badgeFor(p Painter, n menu.Node) string {
	label := n.StatusLabel
	if label == "" && !n.Online {
		label = p.tr("Nav.OfflineBadge")
	}
	if label == "" {
		return ""
	}
	return " " + p.Styles.Badge.Render(" "+label+" ")
}

// offlinePanel lists n and its whole subtree as inert rows.
func offlinePanel(p Painter, n menu.Node, width int) layout.Block {
	var b layout.Block
	title := "! " + p.tr("Nav.FailedToLoad", map[string]interface{}{"Title": n.Title})
	b.AddLink(p.Styles.Offline.Render(layout.Truncate(title, width)), daemon.ActionMenuInert, n.ID)

	marker := p.tr("Nav.OfflineBadge")
	menu.Walk(menu.Forest{n}, func(c menu.Node, depth int) bool {
		text := strings.Repeat(" ", depth*indentStep) + "* " + p.Icons.Resolve(c.Icon) + " " + c.ServiceID
		avail := width - lipgloss.Width(marker) - 1
		line := p.Styles.NavInert.Render(layout.Fit(layout.Truncate(text, avail), avail)) + " " + p.Styles.Muted.Render(marker)
		b.AddLink(line, daemon.ActionMenuInert, c.ID)
		return true
	})

	b.AddLink(p.Styles.Muted.Italic(true).Render(layout.Truncate(p.tr("Nav.OfflineFooter"), width)), daemon.ActionMenuInert, n.ID)
	return b
}

// renderDropdown draws the bar of root buttons and, below it, the panel of
// the open root aligned with its button.
func (t *Tree) renderDropdown(p Painter, width int) layout.Block {
	bar, cols := t.bar(p, width)
	openID := t.openRoot()
	if openID == "" {
		return bar
	}
	var root menu.Node
	for _, r := range t.roots {
		if r.ID == openID {
			root = r
		}
	}

	pw := maxPanelWidth
	if pw > width {
		pw = width
	}
	inner := pw - 4
	if inner < 8 {
		inner = 8
	}

	var body layout.Block
	if root.Kind() == menu.KindOffline {
		body = offlinePanel(p, root, inner)
	} else {
		header := strings.ToUpper(p.tr("Nav.Navigation", map[string]interface{}{"Title": root.Title}))
		body.AddLink(p.Styles.PanelTitle.Render(layout.Truncate(header, inner)), daemon.ActionMenuInert, root.ID)
		t.level(&body, p, root.Children, 0, inner)
	}

	col := cols[openID]
	if col+inner+4 > width {
		col = width - inner - 4
	}
	if col < 0 {
		col = 0
	}
	bar.Append(frame(p, body, inner).Indent(col))
	return bar
}

// bar lays out root buttons, wrapping onto further lines when they do not
// fit, and returns each button's starting column.
func (t *Tree) bar(p Painter, width int) (layout.Block, map[string]int) {
	var b layout.Block
	cols := make(map[string]int)
	var spans []layout.Span
	used := 0

	flush := func() {
		if used < width {
			spans = append(spans, layout.Span{Text: p.Styles.Bar.Render(strings.Repeat(" ", width-used))})
		}
		b.AddRow(spans...)
		spans, used = nil, 0
	}

	for _, r := range t.roots {
		text := t.button(p, r, width)
		w := lipgloss.Width(text)
		if used > 0 && used+1+w > width {
			flush()
		}
		if used > 0 {
			spans = append(spans, layout.Span{Text: p.Styles.Bar.Render(" ")})
			used++
		}
		cols[r.ID] = used
		spans = append(spans, layout.Span{Text: text, Action: daemon.ActionMenu, Target: r.ID})
		used += w
	}
	flush()
	return b, cols
}

func (t *Tree) button(p Painter, r menu.Node, width int) string {
	style := p.Styles.BarItem
	switch {
	case menu.IsOnActivePath(r, t.active):
		style = p.Styles.BarActive
	case r.Kind() != menu.KindLeaf && t.IsOpen(r.ID):
		style = p.Styles.BarAncestor
	}
	style = style.Inherit(p.Styles.Bar)

	label := " " + p.Icons.Resolve(r.Icon) + " " + r.Title
	if r.Kind() != menu.KindLeaf {
		label += " ▾"
	}
	label += " "
	badge := ""
	if r.StatusLabel != "" {
		badge = p.Styles.Badge.Render(" "+r.StatusLabel+" ") + p.Styles.Bar.Render(" ")
	}
	avail := width - lipgloss.Width(badge)
	return style.Render(layout.Truncate(label, avail)) + badge
}

// frame boxes a panel body. The whole box counts as inside the tree, so a
// press on its border or padding does not dismiss it.
func frame(p Painter, body layout.Block, inner int) layout.Block {
	edge := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Styles.Theme.BorderFg))
	return layout.Box(body, inner, edge, daemon.ActionMenuInert)
}
