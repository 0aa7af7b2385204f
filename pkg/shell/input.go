package shell

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/b/plouto/pkg/daemon"
	"github.com/b/plouto/pkg/pages"
	"github.com/b/plouto/pkg/session"
)

// HandleInput processes input events from renderers.
func (c *Coordinator) HandleInput(clientID string, input *daemon.InputPayload) {
	switch input.Type {
	case "action":
		if input.Action != "" && input.Action != "press" {
			return
		}
		if input.Button != "" && input.Button != "left" {
			return
		}
		c.HandleAction(input.ResolvedAction, input.ResolvedTarget)
	case "key":
		c.HandleKey(KeyMsg(input.Key))
	}
}

// HandleKey applies a key press and reports whether it asks to quit.
func (c *Coordinator) HandleKey(msg tea.KeyMsg) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key.Matches(msg, c.keys.Quit) {
		return true
	}
	if c.machine.State() != session.Authenticated {
		c.loginKey(msg)
		return false
	}

	switch {
	case key.Matches(msg, c.keys.Close):
		c.escape()
	case key.Matches(msg, c.keys.Layout):
		c.setLayout(c.layout().Toggle())
	case key.Matches(msg, c.keys.Sidebar):
		c.toggleSidebar()
	case key.Matches(msg, c.keys.Profile):
		c.tree.Outside()
		c.headerMenu = ""
		c.openProfile()
	case key.Matches(msg, c.keys.Help):
		c.help.ShowAll = !c.help.ShowAll
	}
	c.syncTree()
	return false
}

// escape closes the innermost open thing.
func (c *Coordinator) escape() {
	switch {
	case c.headerMenu != "":
		c.headerMenu = ""
	case c.tree.AnyOpen():
		c.tree.CloseAll()
	case c.machine.Snapshot().ShowProfile:
		c.do("close profile", c.machine.CloseProfile())
	}
}

func (c *Coordinator) loginKey(msg tea.KeyMsg) {
	if c.loggingIn {
		return
	}
	switch {
	case key.Matches(msg, c.keys.Next):
		c.focusField(1 - c.focus)
	case key.Matches(msg, c.keys.Submit):
		c.startLogin()
	case c.focus == 0:
		c.email, _ = c.email.Update(msg)
	default:
		c.password, _ = c.password.Update(msg)
	}
}

func (c *Coordinator) focusField(i int) {
	c.focus = i
	if i == 0 {
		c.email.Focus()
		c.password.Blur()
		return
	}
	c.password.Focus()
	c.email.Blur()
}

// HandleAction applies a press that resolved to action and target. An empty
// action is a press on nothing, which still dismisses open menus.
func (c *Coordinator) HandleAction(action, target string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.machine.State() != session.Authenticated {
		if action == daemon.ActionLogin {
			c.loginAction(target)
		}
		return
	}

	if action != daemon.ActionMenu && action != daemon.ActionMenuInert {
		c.tree.Outside()
	}
	if action != daemon.ActionHeader && action != daemon.ActionWorkspace {
		c.headerMenu = ""
	}

	switch action {
	case daemon.ActionMenu:
		if c.railShown() {
			// a press on the rail expands the sidebar onto that root
			c.collapsed = false
		}
		out := c.tree.Click(target)
		c.logger.Debug("menu click", zap.String("menu_id", target), zap.Stringer("outcome", out))
	case daemon.ActionHeader:
		c.headerAction(target)
	case daemon.ActionWorkspace:
		c.headerMenu = ""
		c.do("switch workspace", c.machine.SwitchWorkspaceByID(target))
	case daemon.ActionPage:
		c.pageAction(target)
	}
	c.syncTree()
}

func (c *Coordinator) loginAction(target string) {
	if c.loggingIn {
		return
	}
	switch target {
	case pages.LoginEmail:
		c.focusField(0)
	case pages.LoginPassword:
		c.focusField(1)
	case pages.LoginSubmit:
		c.startLogin()
	}
}

// startLogin simulates the authentication round trip.
func (c *Coordinator) startLogin() {
	if c.loggingIn {
		return
	}
	c.loggingIn = true
	c.frame = 0
	c.logger.Info("login requested", zap.String("email", c.email.Value()))
	c.cancel = c.after(c.cfg.Login.Delay, func() {
		c.loggingIn = false
		c.cancel = nil
		c.do("login", c.machine.Login())
		c.syncTree()
	})
}

func (c *Coordinator) headerAction(target string) {
	switch target {
	case HeaderWorkspaces, HeaderNotifications, HeaderUser:
		if c.headerMenu == target {
			c.headerMenu = ""
			return
		}
		c.headerMenu = target
		if target == HeaderNotifications {
			c.inbox.MarkAllRead()
		}
	case HeaderSidebar:
		c.headerMenu = ""
		c.toggleSidebar()
	case HeaderLanguage:
		c.headerMenu = ""
		c.lang = c.lang.Toggle()
		c.keys = newKeyMap(c.t)
	case HeaderProfile:
		c.headerMenu = ""
		c.openProfile()
	case HeaderLogout:
		c.headerMenu = ""
		c.do("logout", c.machine.Logout())
		c.resetLoginForm()
	}
}

// toggleSidebar collapses or expands the sidebar. The topbar layout has no
// sidebar, so there it does nothing.
func (c *Coordinator) toggleSidebar() {
	if c.layout() != session.LayoutSidebar {
		return
	}
	c.collapsed = !c.collapsed
	c.logger.Debug("sidebar toggled", zap.Bool("collapsed", c.collapsed))
}

func (c *Coordinator) railShown() bool {
	return c.collapsed && c.layout() == session.LayoutSidebar
}

func (c *Coordinator) openProfile() {
	c.profileTab = pages.Tabs[0]
	c.do("open profile", c.machine.OpenProfile())
}

func (c *Coordinator) setLayout(l session.Layout) {
	c.forced = ""
	c.do("set layout", c.machine.SetPreferredLayout(l))
}

func (c *Coordinator) pageAction(target string) {
	switch target {
	case pages.TargetProfileBack:
		c.do("close profile", c.machine.CloseProfile())
		return
	case pages.TargetReload:
		c.logger.Info("retrying offline service", zap.String("menu_id", c.machine.Snapshot().ActiveMenuID))
		return
	case pages.TargetOrderAdd:
		_, err := c.flow.AddItem()
		c.do("add item", err)
		return
	case pages.TargetOrderSave:
		c.do("submit order", c.flow.Save())
		return
	case pages.TargetOrderDismiss:
		c.flow.Dismiss()
		return
	case pages.TargetOrderNew:
		c.flow.Reset()
		return
	}

	switch {
	case strings.HasPrefix(target, pages.TargetGoto):
		c.do("go to", c.machine.SelectMenu(strings.TrimPrefix(target, pages.TargetGoto)))
	case strings.HasPrefix(target, pages.TargetTab):
		c.profileTab = strings.TrimPrefix(target, pages.TargetTab)
	case strings.HasPrefix(target, pages.TargetSetDefault):
		c.do("set default workspace", c.machine.SetDefaultWorkspace(strings.TrimPrefix(target, pages.TargetSetDefault)))
	case strings.HasPrefix(target, pages.TargetSetLayout):
		l, err := session.ParseLayout(strings.TrimPrefix(target, pages.TargetSetLayout))
		if err != nil {
			c.do("set layout", err)
			return
		}
		c.setLayout(l)
	case strings.HasPrefix(target, pages.TargetOrderRemove):
		c.do("remove item", c.flow.RemoveItem(strings.TrimPrefix(target, pages.TargetOrderRemove)))
	default:
		c.logger.Warn("unknown page target", zap.String("target", target))
	}
}

func (c *Coordinator) do(op string, err error) {
	if err != nil {
		c.logger.Warn(op, zap.Error(err))
	}
}
