package shell

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/b/plouto/pkg/daemon"
	"github.com/b/plouto/pkg/layout"
	"github.com/b/plouto/pkg/nav"
	"github.com/b/plouto/pkg/pages"
	"github.com/b/plouto/pkg/perf"
	"github.com/b/plouto/pkg/router"
	"github.com/b/plouto/pkg/session"
)

const (
	minSidebarWidth = 16
	headerMenuWidth = 40
	// title plus six notifications
	headerMenuLines = 13
)

// Render generates a frame for a client of the given size.
func (c *Coordinator) Render(width, height int) *daemon.RenderPayload {
	timer := perf.Start("shell.render", zap.Int("width", width), zap.Int("height", height))
	defer timer.Stop()

	c.mu.RLock()
	defer c.mu.RUnlock()

	// Guard dimensions
	if width < 20 {
		width = 80
	}
	if height < 5 {
		height = 24
	}

	snap := c.machine.Snapshot()
	var body layout.Block
	if snap.State != session.Authenticated {
		body.Add("")
		body.Append(pages.Login(c.pageContext(width-4), c.loginView()).Indent(2))
	} else {
		body = c.header(snap, width)
		c.shellBody(&body, snap, width)
	}

	pinned := c.helpLine(snap, width)
	return &daemon.RenderPayload{
		Content:       body.String(),
		PinnedContent: pinned.String(),
		Width:         width,
		Height:        height,
		TotalLines:    body.Height(),
		PinnedHeight:  pinned.Height(),
		Regions:       body.Regions,
	}
}

func (c *Coordinator) painter() nav.Painter {
	return nav.Painter{Styles: c.styles, Icons: c.icons, T: c.t}
}

func (c *Coordinator) pageContext(width int) pages.Context {
	return pages.Context{
		Styles: c.styles,
		Icons:  c.icons,
		T:      c.t,
		Lang:   language.Make(string(c.lang)),
		Width:  width,
	}
}

func (c *Coordinator) loginView() pages.LoginView {
	return pages.LoginView{
		Email:    c.email.View(),
		Password: c.password.View(),
		Busy:     c.loggingIn,
		Spinner:  c.spinnerFrame(),
	}
}

// shellBody places the navigation and the content area for the current
// layout below the header.
func (c *Coordinator) shellBody(body *layout.Block, snap session.Snapshot, width int) {
	if c.railShown() {
		rail := c.tree.RenderRail(c.painter())
		page := c.pageBlock(snap, width-nav.RailWidth-2)
		body.Append(layout.Beside(rail, nav.RailWidth, page.Indent(2)))
		return
	}
	if c.layout() == session.LayoutSidebar {
		sw := c.cfg.UI.SidebarWidth
		if sw > width/2 {
			sw = width / 2
		}
		if sw < minSidebarWidth {
			sw = minSidebarWidth
		}
		tree := c.tree.Render(c.painter(), sw-1)
		page := c.pageBlock(snap, width-sw-2)
		body.Append(layout.Beside(tree, sw, page.Indent(2)))
		return
	}
	body.Append(c.tree.Render(c.painter(), width))
	body.Add("")
	body.Append(c.pageBlock(snap, width-2).Indent(1))
}

func (c *Coordinator) pageBlock(snap session.Snapshot, width int) layout.Block {
	ctx := c.pageContext(width)
	route := router.Resolve(c.machine.Registry(), snap)
	switch route.Page {
	case router.PageDashboard:
		return pages.Dashboard(ctx, c.machine.User(), snap.Workspace)
	case router.PageProfile:
		return pages.Profile(ctx, pages.ProfileView{
			User:      c.machine.User(),
			Workspace: snap.Workspace,
			Tab:       c.profileTab,
			Layout:    c.layout(),
			Activity:  c.machine.Activity().Entries(),
		})
	case router.PageOrderDemo:
		return pages.Order(ctx, pages.ViewOf(c.flow, c.spinnerFrame()))
	case router.PageNotFound:
		return pages.NotFound(ctx)
	case router.PageOffline:
		return pages.Offline(ctx, route.Node)
	default:
		return pages.Placeholder(ctx, route.Node)
	}
}

// header is the top row of controls plus, when one is open, its menu.
func (c *Coordinator) header(snap session.Snapshot, width int) layout.Block {
	s := c.styles
	user := c.machine.User()

	brand := s.Accent.Render("P5") + " " + s.Title.Render(c.t("App.Brand"))
	toggle := ""
	if c.layout() == session.LayoutSidebar {
		toggle = s.Button.Render(" ≡ ")
	}
	ws := s.BarItem.Render(" [" + snap.Workspace.Role.Initial() + "] " + snap.Workspace.Name + " ▾ ")
	if c.headerMenu == HeaderWorkspaces {
		ws = s.BarAncestor.Render(" [" + snap.Workspace.Role.Initial() + "] " + snap.Workspace.Name + " ▾ ")
	}
	lang := s.Button.Render(" " + c.t("Header.Language") + " ")
	bell := s.Button.Render(" " + c.icons.Resolve("Bell"))
	if n := c.inbox.Unread(); n > 0 {
		bell += " " + s.Badge.Render(" "+itoa(n)+" ")
	}
	bell += " "
	avatar := s.Badge.Render(" "+user.Initials()+" ") + s.Button.Render(" ▾")

	left := lipgloss.Width(toggle) + lipgloss.Width(brand) + 2
	right := lipgloss.Width(lang) + lipgloss.Width(bell) + lipgloss.Width(avatar) + 2
	wsW := lipgloss.Width(ws)
	if avail := width - left - right; wsW > avail && avail > 4 {
		ws = s.BarItem.Render(layout.Truncate(" ["+snap.Workspace.Role.Initial()+"] "+snap.Workspace.Name, avail-3) + " ▾ ")
		wsW = lipgloss.Width(ws)
	}
	filler := width - left - wsW - right
	if filler < 1 {
		filler = 1
	}

	cols := map[string]int{
		HeaderWorkspaces:    left,
		HeaderNotifications: left + wsW + filler + lipgloss.Width(lang) + 1,
		HeaderUser:          left + wsW + filler + lipgloss.Width(lang) + lipgloss.Width(bell) + 2,
	}

	var b layout.Block
	b.AddRow(
		layout.Span{Text: toggle, Action: daemon.ActionHeader, Target: HeaderSidebar},
		layout.Span{Text: brand + "  "},
		layout.Span{Text: ws, Action: daemon.ActionHeader, Target: HeaderWorkspaces},
		layout.Span{Text: strings.Repeat(" ", filler)},
		layout.Span{Text: lang, Action: daemon.ActionHeader, Target: HeaderLanguage},
		layout.Span{Text: " "},
		layout.Span{Text: bell, Action: daemon.ActionHeader, Target: HeaderNotifications},
		layout.Span{Text: " "},
		layout.Span{Text: avatar, Action: daemon.ActionHeader, Target: HeaderUser},
	)
	b.Add(s.Muted.Render(strings.Repeat("─", width)))

	if c.headerMenu == "" {
		return b
	}
	inner := headerMenuWidth - 4
	if inner > width-4 {
		inner = width - 4
	}
	panel := c.headerPanel(snap, inner)
	edge := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Theme.BorderFg))
	col := cols[c.headerMenu]
	if col+inner+4 > width {
		col = width - inner - 4
	}
	if col < 0 {
		col = 0
	}
	b.Append(layout.Box(panel, inner, edge, daemon.ActionHeader).Indent(col))
	return b
}

func (c *Coordinator) headerPanel(snap session.Snapshot, width int) layout.Block {
	s := c.styles
	var b layout.Block
	switch c.headerMenu {
	case HeaderWorkspaces:
		b.Add(s.PanelTitle.Render(layout.Truncate(strings.ToUpper(c.t("Header.SwitchContext")), width)))
		for _, ws := range c.machine.User().Workspaces {
			mark := "  "
			style := s.NavItem
			if ws.ID == snap.Workspace.ID {
				mark = "✓ "
				style = s.NavAncestor
			}
			b.AddLink(style.Render(layout.Fit(layout.Truncate(mark+"["+ws.Role.Initial()+"] "+ws.Name, width), width)), daemon.ActionWorkspace, ws.ID)
			b.AddLink(s.Muted.Render(layout.Truncate("    "+ws.CompanyName+" · "+ws.Role.Label(), width)), daemon.ActionWorkspace, ws.ID)
		}
	case HeaderNotifications:
		b.Add(s.PanelTitle.Render(layout.Truncate(strings.ToUpper(c.t("Header.Notifications")), width)))
		items := c.inbox.Items()
		if len(items) == 0 {
			b.Add(s.Muted.Render(layout.Truncate(c.t("Header.NoNotifications"), width)))
		}
		for _, n := range items {
			b.Add(s.Text.Render(layout.Truncate("• "+n.Title, width)))
			b.Add(s.Muted.Render(layout.Truncate("  "+n.Content+" · "+n.Timestamp.Format("Jan 2 15:04"), width)))
		}
		b = b.Clip(headerMenuLines)
	case HeaderUser:
		user := c.machine.User()
		b.Add(s.Title.Render(layout.Truncate(user.Name, width)))
		b.Add(s.Muted.Render(layout.Truncate(user.Email, width)))
		b.Add("")
		b.AddLink(s.NavItem.Render(layout.Truncate(c.t("Header.AccountSettings"), width)), daemon.ActionHeader, HeaderProfile)
		b.AddLink(s.Error.Render(layout.Truncate(c.t("Header.SignOut"), width)), daemon.ActionHeader, HeaderLogout)
	}
	return b
}

func (c *Coordinator) helpLine(snap session.Snapshot, width int) layout.Block {
	h := c.help
	h.Width = width
	var out string
	if snap.State != session.Authenticated {
		out = h.View(loginKeys(c.keys))
	} else {
		out = h.View(c.keys)
	}
	return layout.Text(out)
}

func itoa(n int) string {
	if n > 9 {
		return "9+"
	}
	return strconv.Itoa(n)
}
