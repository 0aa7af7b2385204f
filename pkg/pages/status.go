package pages

import (
	"github.com/b/plouto/pkg/layout"
	"github.com/b/plouto/pkg/menu"
	"github.com/b/plouto/pkg/router"
)

// Placeholder stands in for a remote module that is online but not part of
// this shell.
func Placeholder(c Context, n menu.Node) layout.Block {
	w := c.width()
	var b layout.Block
	heading(&b, c, c.Icons.Resolve(n.Icon)+" "+n.Title)
	b.Add("")
	paragraph(&b, c.Styles.Text, c.tr("Page.Placeholder.Body", map[string]interface{}{"Service": n.ServiceID}), w)
	return b
}

// Offline is shown when the active node's service is down.
func Offline(c Context, n menu.Node) layout.Block {
	w := c.width()
	var b layout.Block
	b.Add(c.Styles.Error.Render(layout.Truncate("! "+c.tr("Page.Offline.Title"), w)))
	b.Add("")
	paragraph(&b, c.Styles.Text, c.tr("Page.Offline.Body", map[string]interface{}{
		"Service": n.Title + " (" + n.ServiceID + ")",
	}), w)
	if n.StatusLabel != "" {
		b.Add(c.Styles.Badge.Render(" " + n.StatusLabel + " "))
	}
	b.Add("")
	b.AddRow(button(c.Styles.ButtonPrimary, c.tr("Page.Retry"), TargetReload))
	return b
}

// NotFound is the broken-link demo page.
func NotFound(c Context) layout.Block {
	w := c.width()
	var b layout.Block
	b.Add(c.Styles.Accent.Render("404"))
	b.Add("")
	b.Add(c.Styles.Title.Render(layout.Truncate(c.tr("Page.NotFound.Title"), w)))
	paragraph(&b, c.Styles.Muted, c.tr("Page.NotFound.Body"), w)
	b.Add("")
	b.AddRow(
		button(c.Styles.Button, "← "+c.tr("Page.Back"), TargetGoto+router.BrokenLinkID),
		gap(2),
		button(c.Styles.ButtonPrimary, c.tr("Page.Home"), TargetGoto+"m0"),
	)
	return b
}
