// Package pages renders the content area: the dashboard, the profile, the
// order demo and the status panes the router can select. Pages are pure
// functions of their inputs; clickable parts carry daemon.ActionPage regions
// whose targets are listed below.
package pages

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/b/plouto/pkg/daemon"
	"github.com/b/plouto/pkg/icons"
	"github.com/b/plouto/pkg/layout"
	"github.com/b/plouto/pkg/theme"
)

// Region targets for daemon.ActionPage. Prefixed targets carry an argument
// after the colon.
const (
	TargetGoto         = "goto:"
	TargetTab          = "tab:"
	TargetSetDefault   = "default:"
	TargetSetLayout    = "layout:"
	TargetProfileBack  = "profile_back"
	TargetReload       = "reload"
	TargetOrderAdd     = "order_add"
	TargetOrderRemove  = "order_remove:"
	TargetOrderSave    = "order_save"
	TargetOrderDismiss = "order_dismiss"
	TargetOrderNew     = "order_new"
)

// Context is what every page needs to draw itself.
type Context struct {
	Styles theme.Styles
	Icons  icons.Set
	T      func(id string, data ...map[string]interface{}) string
	Lang   language.Tag
	Width  int
}

func (c Context) tr(id string, data ...map[string]interface{}) string {
	if c.T == nil {
		return id
	}
	return c.T(id, data...)
}

func (c Context) width() int {
	if c.Width < 20 {
		return 20
	}
	return c.Width
}

// money formats an amount with grouping for the context's language.
func (c Context) money(v float64) string {
	tag := c.Lang
	if tag == language.Und {
		tag = language.English
	}
	return message.NewPrinter(tag).Sprintf("$%.2f", v)
}

func button(style lipgloss.Style, label, target string) layout.Span {
	return layout.Span{Text: style.Render("[ " + label + " ]"), Action: daemon.ActionPage, Target: target}
}

func gap(n int) layout.Span {
	return layout.Span{Text: strings.Repeat(" ", n)}
}

// heading is a title line followed by a rule.
func heading(b *layout.Block, c Context, title string) {
	b.Add(c.Styles.Title.Render(layout.Truncate(title, c.width())))
	b.Add(c.Styles.Muted.Render(strings.Repeat("─", min(c.width(), lipgloss.Width(title)+4))))
}

// paragraph wraps text to the page width.
func paragraph(b *layout.Block, style lipgloss.Style, text string, width int) {
	b.Add(strings.Split(style.Width(width).Render(text), "\n")...)
}
