package shell

import (
	"os"
	"regexp"
	"sort"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/b/plouto/pkg/config"
	"github.com/b/plouto/pkg/daemon"
	"github.com/b/plouto/pkg/i18n"
	"github.com/b/plouto/pkg/menu"
	"github.com/b/plouto/pkg/nav"
	"github.com/b/plouto/pkg/order"
	"github.com/b/plouto/pkg/pages"
	"github.com/b/plouto/pkg/session"
)

const (
	width  = 120
	height = 40
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string {
	return ansi.ReplaceAllString(s, "")
}

type task struct {
	at       time.Duration
	fn       func()
	canceled bool
}

type manualScheduler struct {
	now   time.Duration
	tasks []*task
}

func (m *manualScheduler) After(d time.Duration, fn func()) func() {
	t := &task{at: m.now + d, fn: fn}
	m.tasks = append(m.tasks, t)
	return func() { t.canceled = true }
}

func (m *manualScheduler) Advance(d time.Duration) {
	m.now += d
	sort.SliceStable(m.tasks, func(i, j int) bool { return m.tasks[i].at < m.tasks[j].at })
	var rest, due []*task
	for _, t := range m.tasks {
		if t.at <= m.now {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	m.tasks = rest
	for _, t := range due {
		if !t.canceled {
			t.fn()
		}
	}
}

type fixture struct {
	c       *Coordinator
	sched   *manualScheduler
	changes int
	logs    *observer.ObservedLogs
}

func newFixture(t *testing.T, roll float64, mutate ...func(*config.Config)) *fixture {
	t.Helper()
	tr, err := i18n.New()
	require.NoError(t, err)
	cfg := config.Default()
	for _, fn := range mutate {
		fn(cfg)
	}
	core, logs := observer.New(zap.DebugLevel)
	f := &fixture{sched: &manualScheduler{}, logs: logs}
	f.c = New(Options{
		Config:     cfg,
		Translator: tr,
		Scheduler:  f.sched,
		Rand:       func() float64 { return roll },
		Now:        func() time.Time { return time.Date(2023, 11, 20, 9, 30, 0, 0, time.UTC) },
		Logger:     zap.New(core),
	})
	f.c.OnChange = func() { f.changes++ }
	return f
}

func loggedIn(t *testing.T, mutate ...func(*config.Config)) *fixture {
	t.Helper()
	f := newFixture(t, 0.1, mutate...)
	f.c.HandleAction(daemon.ActionLogin, pages.LoginSubmit)
	f.sched.Advance(config.Default().Login.Delay)
	require.Equal(t, session.Authenticated, f.c.Snapshot().State)
	return f
}

func (f *fixture) frame() *daemon.RenderPayload {
	return f.c.Render(width, height)
}

// press clicks the first region with action and target through hit testing,
// the way a renderer does.
func (f *fixture) press(t *testing.T, action, target string) {
	t.Helper()
	fr := f.frame()
	for _, r := range fr.Regions {
		if r.Action != action || r.Target != target {
			continue
		}
		hit, ok := daemon.HitTest(fr.Regions, r.StartCol, r.StartLine, fr.Width)
		require.True(t, ok)
		require.Equal(t, target, hit.Target, "region for %s is covered", target)
		f.c.HandleInput("c1", &daemon.InputPayload{
			Type:           "action",
			Action:         "press",
			Button:         "left",
			ResolvedAction: hit.Action,
			ResolvedTarget: hit.Target,
		})
		return
	}
	t.Fatalf("no %s region for %q", action, target)
}

func (f *fixture) hasRegion(action, target string) bool {
	for _, r := range f.frame().Regions {
		if r.Action == action && r.Target == target {
			return true
		}
	}
	return false
}

func (f *fixture) key(k string) bool {
	return f.c.HandleKey(KeyMsg(k))
}

func TestLoginCompletesAfterDelay(t *testing.T) {
	f := newFixture(t, 0.1)
	assert.Contains(t, plain(f.frame().Content), "Sign in to your workspace")

	f.press(t, daemon.ActionLogin, pages.LoginSubmit)
	assert.Equal(t, session.LoggedOut, f.c.Snapshot().State)
	assert.True(t, f.c.Tick())
	assert.Contains(t, plain(f.frame().Content), "Authenticating...")

	f.sched.Advance(1199 * time.Millisecond)
	assert.Equal(t, session.LoggedOut, f.c.Snapshot().State)
	f.sched.Advance(time.Millisecond)

	snap := f.c.Snapshot()
	assert.Equal(t, session.Authenticated, snap.State)
	assert.Equal(t, "ws1", snap.Workspace.ID)
	assert.Equal(t, "m0", snap.ActiveMenuID)
	assert.Equal(t, 1, f.changes)
	assert.False(t, f.c.Tick())
	assert.Contains(t, plain(f.frame().Content), "Welcome back, Alex Rivera")
}

func TestLoginFormTakesKeys(t *testing.T) {
	f := newFixture(t, 0.1)
	f.key("tab")
	assert.Equal(t, 1, f.c.focus)
	f.key("L")
	assert.Equal(t, session.LoggedOut, f.c.Snapshot().State, "letters type into the form")
	assert.Equal(t, demoPassword+"L", f.c.password.Value())

	f.key("enter")
	f.sched.Advance(time.Second * 2)
	assert.Equal(t, session.Authenticated, f.c.Snapshot().State)
}

func TestCtrlCQuits(t *testing.T) {
	f := newFixture(t, 0.1)
	assert.True(t, f.key("ctrl+c"))
	assert.False(t, f.key("q"))
}

func TestDropdownOpensAndDismissesOnOutsidePress(t *testing.T) {
	f := loggedIn(t)
	require.Equal(t, nav.Dropdown, f.c.tree.Mode())

	f.press(t, daemon.ActionMenu, "m3")
	assert.Contains(t, plain(f.frame().Content), "TRACKING NAVIGATION")
	assert.True(t, f.c.tree.IsOpen("m3"))

	f.c.HandleAction("", "")
	assert.False(t, f.c.tree.IsOpen("m3"))
	assert.NotContains(t, plain(f.frame().Content), "TRACKING NAVIGATION")
}

func TestDropdownLeafSelectsAndCloses(t *testing.T) {
	f := loggedIn(t)
	f.press(t, daemon.ActionMenu, "m3")
	f.press(t, daemon.ActionMenu, "m3-1-2")

	assert.Equal(t, "m3-1-2", f.c.Snapshot().ActiveMenuID)
	assert.False(t, f.c.tree.AnyOpen())
	assert.Contains(t, plain(f.frame().Content), "tracking-container")
}

func TestHeaderMenuClosesTreeAndTreeClosesHeader(t *testing.T) {
	f := loggedIn(t)
	f.press(t, daemon.ActionMenu, "m1")
	require.True(t, f.c.tree.IsOpen("m1"))

	f.press(t, daemon.ActionHeader, HeaderUser)
	assert.False(t, f.c.tree.IsOpen("m1"))
	assert.Equal(t, HeaderUser, f.c.headerMenu)

	f.press(t, daemon.ActionMenu, "m3")
	assert.Empty(t, f.c.headerMenu)
	assert.True(t, f.c.tree.IsOpen("m3"))
}

func TestWorkspaceSwitchResetsNavigation(t *testing.T) {
	f := loggedIn(t)
	f.press(t, daemon.ActionPage, pages.TargetGoto+"demo-404")
	epoch := f.c.Snapshot().Epoch

	f.press(t, daemon.ActionHeader, HeaderWorkspaces)
	require.True(t, f.hasRegion(daemon.ActionWorkspace, "ws2"))
	f.press(t, daemon.ActionWorkspace, "ws2")

	snap := f.c.Snapshot()
	assert.Equal(t, "ws2", snap.Workspace.ID)
	assert.Equal(t, "m0", snap.ActiveMenuID)
	assert.Greater(t, snap.Epoch, epoch)
	assert.Empty(t, f.c.headerMenu)
	assert.True(t, f.hasRegion(daemon.ActionMenu, "m4"))
}

func TestDeepLinkSurvivesUntilRoleSwitch(t *testing.T) {
	f := loggedIn(t)
	f.press(t, daemon.ActionPage, pages.TargetGoto+"demo-404")
	f.press(t, daemon.ActionPage, pages.TargetGoto+"m8")
	assert.Equal(t, "m8", f.c.Snapshot().ActiveMenuID)
	assert.Contains(t, plain(f.frame().Content), "Welcome back", "unknown ids render the first root")

	f.c.HandleAction(daemon.ActionHeader, HeaderWorkspaces)
	f.c.HandleAction(daemon.ActionWorkspace, "ws3")
	assert.Equal(t, "m0", f.c.Snapshot().ActiveMenuID)
	assert.False(t, f.hasRegion(daemon.ActionMenu, "m4"))
}

func TestUnresolvedIDWarnsOnce(t *testing.T) {
	f := loggedIn(t)
	f.c.HandleAction(daemon.ActionPage, pages.TargetGoto+"m8")
	f.c.HandleAction("", "")
	assert.Equal(t, 1, f.logs.FilterMessage("active menu id does not resolve, showing first root").Len())
}

func TestUnknownIconKeysAreReported(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	registry := menu.Default()
	registry[0].Icon = "Spaceship"
	New(Options{Registry: registry, Logger: zap.New(core)})

	entries := logs.FilterMessage("unknown icon key, using fallback").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "m0", entries[0].ContextMap()["menu_id"])
}

func TestOfflinePageForStoreChild(t *testing.T) {
	f := loggedIn(t)
	f.c.HandleAction(daemon.ActionPage, pages.TargetGoto+"m4-2")
	out := plain(f.frame().Content)
	assert.Contains(t, out, "Service Temporarily Unavailable")
	assert.True(t, f.hasRegion(daemon.ActionPage, pages.TargetReload))
}

func TestOrderSubmissionSucceeds(t *testing.T) {
	f := loggedIn(t)
	f.press(t, daemon.ActionPage, pages.TargetGoto+"demo-order")
	f.press(t, daemon.ActionPage, pages.TargetOrderAdd)
	require.Len(t, f.c.flow.Items(), 2)
	f.press(t, daemon.ActionPage, pages.TargetOrderSave)
	assert.True(t, f.c.Tick())

	f.sched.Advance(800 * time.Millisecond)
	assert.Equal(t, 1, f.c.flow.Step())
	f.sched.Advance(3700 * time.Millisecond)

	assert.Equal(t, order.StatusSuccess, f.c.flow.Status())
	assert.Regexp(t, `^ORD-2023-\d{5}$`, f.c.flow.OrderNumber())
	assert.Equal(t, 2, f.c.inbox.Unread())
	entries := f.c.machine.Activity().Entries()
	assert.Equal(t, session.ActivityOrder, entries[0].Type)
	assert.True(t, f.hasRegion(daemon.ActionPage, pages.TargetOrderNew))
}

func TestOrderFailureIsDismissable(t *testing.T) {
	f := newFixture(t, 0.95)
	f.c.HandleAction(daemon.ActionLogin, pages.LoginSubmit)
	f.sched.Advance(2 * time.Second)

	f.c.HandleAction(daemon.ActionPage, pages.TargetGoto+"demo-order")
	f.c.HandleAction(daemon.ActionPage, pages.TargetOrderSave)
	f.sched.Advance(5 * time.Second)
	require.Equal(t, order.StatusError, f.c.flow.Status())
	assert.Contains(t, plain(f.frame().Content), "Manifest Collision")

	f.press(t, daemon.ActionPage, pages.TargetOrderDismiss)
	assert.Equal(t, order.StatusIdle, f.c.flow.Status())
	assert.Len(t, f.c.flow.Items(), 1)
}

func TestLeavingOrderPageCancelsSubmission(t *testing.T) {
	f := loggedIn(t)
	f.c.HandleAction(daemon.ActionPage, pages.TargetGoto+"demo-order")
	f.c.HandleAction(daemon.ActionPage, pages.TargetOrderSave)
	f.sched.Advance(800 * time.Millisecond)

	f.c.HandleAction(daemon.ActionPage, pages.TargetGoto+"m0")
	f.sched.Advance(10 * time.Second)

	assert.Equal(t, order.StatusIdle, f.c.flow.Status())
	for _, e := range f.c.machine.Activity().Entries() {
		assert.NotEqual(t, session.ActivityOrder, e.Type)
	}

	f.c.HandleAction(daemon.ActionPage, pages.TargetGoto+"demo-order")
	assert.Contains(t, plain(f.frame().Content), "Submit Order")
}

func TestEscapeClosesInnermostFirst(t *testing.T) {
	f := loggedIn(t)
	f.key("p")
	require.True(t, f.c.Snapshot().ShowProfile)
	f.c.HandleAction(daemon.ActionMenu, "m3")
	require.True(t, f.c.tree.IsOpen("m3"))

	f.key("esc")
	assert.False(t, f.c.tree.AnyOpen())
	assert.True(t, f.c.Snapshot().ShowProfile)
	f.key("esc")
	assert.False(t, f.c.Snapshot().ShowProfile)
}

func TestLayoutToggleSwitchesTreeMode(t *testing.T) {
	f := loggedIn(t)
	f.key("L")
	assert.Equal(t, session.LayoutSidebar, f.c.Layout())
	assert.Equal(t, nav.Accordion, f.c.tree.Mode())

	f.c.HandleAction(daemon.ActionMenu, "m3")
	assert.True(t, f.c.tree.IsOpen("m3"))
	f.c.HandleAction("", "")
	assert.True(t, f.c.tree.IsOpen("m3"), "accordion ignores outside presses")

	for _, r := range f.frame().Regions {
		if r.Action == daemon.ActionMenu {
			assert.Less(t, r.EndCol, width/2, "sidebar rows stay in the left column")
		}
	}
}

func TestConfiguredLayoutWinsUntilToggled(t *testing.T) {
	f := loggedIn(t, func(c *config.Config) { c.UI.Layout = "sidebar" })
	assert.Equal(t, session.LayoutSidebar, f.c.Layout())
	assert.Equal(t, session.LayoutTopbar, f.c.machine.User().PreferredLayout)

	f.c.HandleAction(daemon.ActionPage, pages.TargetSetLayout+"topbar")
	assert.Equal(t, session.LayoutTopbar, f.c.Layout())
	assert.Equal(t, nav.Dropdown, f.c.tree.Mode())
}

func TestApplyConfig(t *testing.T) {
	f := loggedIn(t)
	cfg := config.Default()
	cfg.UI.Layout = "sidebar"
	cfg.UI.Language = "zh"
	f.c.ApplyConfig(cfg)

	assert.Equal(t, nav.Accordion, f.c.tree.Mode())
	assert.Contains(t, plain(f.frame().PinnedContent), "退出")
}

func TestSidebarCollapsesToRail(t *testing.T) {
	f := loggedIn(t)
	require.False(t, f.hasRegion(daemon.ActionHeader, HeaderSidebar), "topbar has no sidebar toggle")
	f.key("b")
	assert.False(t, f.c.collapsed)

	f.key("L")
	require.Equal(t, session.LayoutSidebar, f.c.Layout())
	f.press(t, daemon.ActionHeader, HeaderSidebar)
	require.True(t, f.c.collapsed)
	out := plain(f.frame().Content)
	assert.NotContains(t, out, "Reporting")
	assert.Contains(t, out, "Welcome back, Alex Rivera")

	// a rail press expands the sidebar onto that root
	f.press(t, daemon.ActionMenu, "m3")
	assert.False(t, f.c.collapsed)
	assert.True(t, f.c.tree.IsOpen("m3"))
	assert.Contains(t, plain(f.frame().Content), "Reporting")

	f.key("b")
	assert.True(t, f.c.collapsed)
}

func TestReloadKeepsUserToggles(t *testing.T) {
	f := loggedIn(t, func(c *config.Config) { c.UI.Layout = "sidebar" })
	f.press(t, daemon.ActionHeader, HeaderLanguage)
	f.key("L")
	require.Equal(t, i18n.Chinese, f.c.lang)
	require.Equal(t, session.LayoutTopbar, f.c.Layout())

	cfg := config.Default()
	cfg.UI.Layout = "sidebar"
	cfg.UI.Theme = "daybreak"
	f.c.ApplyConfig(cfg)
	assert.Equal(t, i18n.Chinese, f.c.lang)
	assert.Equal(t, session.LayoutTopbar, f.c.Layout())

	cfg = config.Default()
	cfg.UI.Language = "zh"
	f.c.ApplyConfig(cfg)
	assert.Equal(t, i18n.Chinese, f.c.lang)
	cfg = config.Default()
	f.c.ApplyConfig(cfg)
	assert.Equal(t, i18n.English, f.c.lang)
}

func TestLanguageToggle(t *testing.T) {
	f := loggedIn(t)
	f.press(t, daemon.ActionHeader, HeaderLanguage)
	assert.Equal(t, i18n.Chinese, f.c.lang)
	assert.Contains(t, plain(f.frame().PinnedContent), "布局")
}

func TestNotificationsMarkedReadOnOpen(t *testing.T) {
	f := loggedIn(t)
	require.Equal(t, 1, f.c.inbox.Unread())
	f.press(t, daemon.ActionHeader, HeaderNotifications)
	assert.Zero(t, f.c.inbox.Unread())
	assert.Contains(t, plain(f.frame().Content), "Order #SC-9821 Shipped")

	// The box around the list is part of the menu.
	f.c.HandleAction(daemon.ActionHeader, "")
	assert.Equal(t, HeaderNotifications, f.c.headerMenu)
}

func TestProfileActions(t *testing.T) {
	f := loggedIn(t)
	f.press(t, daemon.ActionHeader, HeaderUser)
	f.press(t, daemon.ActionHeader, HeaderProfile)
	require.True(t, f.c.Snapshot().ShowProfile)

	f.press(t, daemon.ActionPage, pages.TargetTab+"workspaces")
	f.press(t, daemon.ActionPage, pages.TargetSetDefault+"ws2")
	assert.Equal(t, "ws2", f.c.machine.User().DefaultWorkspaceID)

	f.press(t, daemon.ActionPage, pages.TargetProfileBack)
	assert.False(t, f.c.Snapshot().ShowProfile)
	assert.Equal(t, "m0", f.c.Snapshot().ActiveMenuID)
}

func TestLogoutThenLoginUsesNewDefault(t *testing.T) {
	f := loggedIn(t)
	f.c.HandleAction(daemon.ActionPage, pages.TargetSetDefault+"ws3")
	f.press(t, daemon.ActionHeader, HeaderUser)
	f.press(t, daemon.ActionHeader, HeaderLogout)
	assert.Equal(t, session.LoggedOut, f.c.Snapshot().State)
	assert.Contains(t, plain(f.frame().Content), "Sign in")

	f.c.HandleAction(daemon.ActionLogin, pages.LoginSubmit)
	f.sched.Advance(2 * time.Second)
	assert.Equal(t, "ws3", f.c.Snapshot().Workspace.ID)
}

func TestHandleInputIgnoresReleasesAndOtherButtons(t *testing.T) {
	f := loggedIn(t)
	f.c.HandleInput("c1", &daemon.InputPayload{Type: "action", Action: "release", ResolvedAction: daemon.ActionMenu, ResolvedTarget: "m3"})
	f.c.HandleInput("c1", &daemon.InputPayload{Type: "action", Button: "right", ResolvedAction: daemon.ActionMenu, ResolvedTarget: "m3"})
	assert.False(t, f.c.tree.AnyOpen())

	f.c.HandleInput("c1", &daemon.InputPayload{Type: "key", Key: "p"})
	assert.True(t, f.c.Snapshot().ShowProfile)
}

func TestKeyMsg(t *testing.T) {
	assert.Equal(t, "enter", KeyMsg("enter").String())
	assert.Equal(t, "ctrl+c", KeyMsg("ctrl+c").String())
	assert.Equal(t, "x", KeyMsg("x").String())
	assert.Equal(t, " ", KeyMsg(" ").String())
	assert.Equal(t, tea.KeyRunes, KeyMsg("ab").Type)
}

func TestScreenHitsContentAndPinned(t *testing.T) {
	s := NewScreen(40, 4)
	s.SetFrame(&daemon.RenderPayload{
		Content:       "a\nb\nc\nd\ne",
		PinnedContent: "help",
		PinnedHeight:  1,
		Regions: []daemon.ClickableRegion{
			{StartLine: 4, EndLine: 4, Action: daemon.ActionMenu, Target: "e"},
		},
		PinnedRegions: []daemon.ClickableRegion{
			{StartLine: 0, EndLine: 0, EndCol: 4, Action: daemon.ActionPage, Target: "help"},
		},
	})

	_, ok := s.Hit(0, 2)
	assert.False(t, ok)
	hit, ok := s.Hit(1, 3)
	require.True(t, ok)
	assert.Equal(t, "help", hit.Target)
	assert.Equal(t, "pinned", s.Area(3))

	s.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	require.Equal(t, 2, s.Offset())
	hit, ok = s.Hit(0, 2)
	require.True(t, ok)
	assert.Equal(t, "e", hit.Target)
	assert.Contains(t, s.View(), "help")
}

func TestModelRoutesMousePresses(t *testing.T) {
	f := loggedIn(t)
	var m tea.Model = NewModel(f.c)
	m, _ = m.Update(tea.WindowSizeMsg{Width: width, Height: height})

	fr := f.frame()
	var target daemon.ClickableRegion
	for _, r := range fr.Regions {
		if r.Action == daemon.ActionMenu && r.Target == "m3" {
			target = r
		}
	}
	require.Equal(t, "m3", target.Target)
	m, _ = m.Update(tea.MouseMsg{X: target.StartCol, Y: target.StartLine, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, f.c.tree.IsOpen("m3"))
	assert.Contains(t, plain(m.View()), "TRACKING NAVIGATION")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
