// Package shell is the portal coordinator. It owns one session's state (the
// navigation machine, the menu tree, the login form and the order demo),
// renders frames with clickable regions for renderers, and applies the
// semantic input renderers send back.
package shell

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"go.uber.org/zap"

	"github.com/b/plouto/pkg/config"
	"github.com/b/plouto/pkg/i18n"
	"github.com/b/plouto/pkg/icons"
	"github.com/b/plouto/pkg/menu"
	"github.com/b/plouto/pkg/nav"
	"github.com/b/plouto/pkg/order"
	"github.com/b/plouto/pkg/router"
	"github.com/b/plouto/pkg/session"
	"github.com/b/plouto/pkg/theme"
)

// Header controls, used as targets of daemon.ActionHeader regions.
const (
	HeaderWorkspaces    = "workspaces"
	HeaderNotifications = "notifications"
	HeaderUser          = "user"
	HeaderLanguage      = "language"
	HeaderProfile       = "profile"
	HeaderLogout        = "logout"
	HeaderSidebar       = "sidebar"
)

const demoPassword = "plouto-demo"

// Options wires a coordinator to its environment. Zero values pick real
// timers, the mock user and a no-op logger.
type Options struct {
	Config     *config.Config
	Registry   menu.Forest
	User       session.User
	Translator *i18n.Translator
	Scheduler  order.Scheduler
	Rand       func() float64
	Now        func() time.Time
	Logger     *zap.Logger
}

// Coordinator serializes every state change behind mu. Scheduled callbacks
// (login delay, order steps) take the same lock and then call OnChange so the
// owner can push a new frame.
type Coordinator struct {
	mu sync.RWMutex

	cfg    *config.Config
	logger *zap.Logger
	tr     *i18n.Translator
	lang   i18n.Language
	styles theme.Styles
	icons  icons.Set
	forced session.Layout
	// collapsed shrinks the sidebar to an icon rail.
	collapsed bool

	sched order.Scheduler
	rand  func() float64
	now   func() time.Time

	machine *session.Machine
	inbox   *session.Inbox
	tree    *nav.Tree
	flow    *order.Flow

	email     textinput.Model
	password  textinput.Model
	focus     int
	loggingIn bool
	cancel    func()

	spin       spinner.Model
	frame      int
	keys       keyMap
	help       help.Model
	headerMenu string
	profileTab string
	page       router.Page
	warnedID   string

	// OnChange is called after a scheduled callback changed state. It runs
	// without the lock held.
	OnChange func()
}

func New(opts Options) *Coordinator {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := opts.Registry
	if registry == nil {
		registry = menu.Default()
	}
	user := opts.User
	if user.ID == "" {
		user = session.MockUser()
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = order.TimerScheduler{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	c := &Coordinator{
		cfg:     cfg,
		logger:  logger.Named("shell"),
		tr:      opts.Translator,
		sched:   sched,
		rand:    opts.Rand,
		now:     now,
		inbox:   session.NewInbox(session.MockNotifications()...),
		spin:    spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		help:    help.New(),
		page:    router.PageLogin,
		machine: session.NewMachine(registry, user, session.NewActivityLog(now), logger),
	}
	menu.Walk(registry, func(n menu.Node, _ int) bool {
		if n.Icon != "" && !icons.Known(n.Icon) {
			c.logger.Warn("unknown icon key, using fallback", zap.String("menu_id", n.ID), zap.String("icon", n.Icon))
		}
		return true
	})
	c.applyUI(cfg.UI, nil)
	c.tree = nav.New(c.navMode(), c.selectFromTree, logger)
	c.flow = c.newFlow()
	c.resetLoginForm()
	return c
}

// ApplyConfig swaps in a reloaded configuration. Only presentation settings
// take effect on a running session; timings apply to the next login or order.
func (c *Coordinator) ApplyConfig(cfg *config.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.cfg.UI
	c.cfg = cfg
	c.applyUI(cfg.UI, &prev)
	c.syncTree()
	c.logger.Info("config applied",
		zap.String("theme", cfg.UI.Theme),
		zap.String("icons", cfg.UI.Icons),
		zap.String("layout", string(c.layout())))
}

// applyUI installs the presentation settings. On a reload (prev set) the
// language and forced layout are only reapplied when their configured value
// changed, so a reload does not undo the user's own toggles.
func (c *Coordinator) applyUI(ui config.UIConfig, prev *config.UIConfig) {
	t, ok := theme.Get(ui.Theme)
	if !ok {
		c.logger.Warn("unknown theme, using default", zap.String("theme", ui.Theme))
	}
	c.styles = theme.NewStyles(t)
	c.icons = icons.New(ui.Icons)
	if prev == nil || prev.Language != ui.Language {
		c.lang = i18n.Parse(ui.Language)
	}
	if prev == nil || prev.Layout != ui.Layout {
		c.forced = ""
		if l, err := session.ParseLayout(ui.Layout); err == nil {
			c.forced = l
		}
	}
	c.keys = newKeyMap(c.t)
	c.help.Styles.ShortKey = c.styles.Accent
	c.help.Styles.ShortDesc = c.styles.Muted
	c.help.Styles.ShortSeparator = c.styles.Muted
	c.help.Styles.FullKey = c.styles.Accent
	c.help.Styles.FullDesc = c.styles.Muted
	c.help.Styles.FullSeparator = c.styles.Muted
}

// t translates in the session's current language.
func (c *Coordinator) t(id string, data ...map[string]interface{}) string {
	return c.tr.T(c.lang, id, data...)
}

// layout is the effective arrangement: configuration wins over the user's
// preference.
func (c *Coordinator) layout() session.Layout {
	if c.forced != "" {
		return c.forced
	}
	if l := c.machine.User().PreferredLayout; l != "" {
		return l
	}
	return session.LayoutTopbar
}

func (c *Coordinator) navMode() nav.Mode {
	if c.layout() == session.LayoutSidebar {
		return nav.Accordion
	}
	return nav.Dropdown
}

// Snapshot exposes the navigation state.
func (c *Coordinator) Snapshot() session.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.machine.Snapshot()
}

// Layout reports the effective layout.
func (c *Coordinator) Layout() session.Layout {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.layout()
}

// Tick advances the spinner while something is in progress and reports
// whether a new frame is worth drawing.
func (c *Coordinator) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.busy() {
		return false
	}
	c.frame = (c.frame + 1) % len(c.spin.Spinner.Frames)
	return true
}

// TickInterval is how often Tick should be called.
func (c *Coordinator) TickInterval() time.Duration {
	return c.spin.Spinner.FPS
}

func (c *Coordinator) busy() bool {
	return c.loggingIn || c.flow.Status() == order.StatusSaving
}

func (c *Coordinator) spinnerFrame() string {
	return c.spin.Spinner.Frames[c.frame%len(c.spin.Spinner.Frames)]
}

// after schedules fn under the coordinator lock and notifies the owner once
// it ran.
func (c *Coordinator) after(d time.Duration, fn func()) func() {
	return c.sched.After(d, func() {
		c.mu.Lock()
		fn()
		c.mu.Unlock()
		if c.OnChange != nil {
			c.OnChange()
		}
	})
}

func (c *Coordinator) newFlow() *order.Flow {
	cfg := order.Config{
		StepDelay:   c.cfg.Order.StepDelay,
		SettleDelay: c.cfg.Order.SettleDelay,
		SuccessRate: c.cfg.Order.SuccessRate,
	}
	opts := []order.Option{
		order.WithClock(c.now),
		order.OnSettle(c.orderSettled),
	}
	if c.rand != nil {
		opts = append(opts, order.WithRand(c.rand))
	}
	return order.NewFlow(cfg, order.SchedulerFunc(c.after), opts...)
}

func (c *Coordinator) orderSettled(status order.Status, number string) {
	if status == order.StatusSuccess {
		c.machine.Activity().Record(session.ActivityOrder, "Submitted "+number)
		c.inbox.Push(session.Notification{
			ID:        number,
			Title:     "Order " + number + " confirmed",
			Content:   "Freight allocation secured.",
			Type:      session.NotifySuccess,
			Timestamp: c.now(),
		})
	}
	c.logger.Info("order settled", zap.String("status", string(status)), zap.String("number", number))
}

func (c *Coordinator) resetLoginForm() {
	c.email = textinput.New()
	c.email.Prompt = "> "
	c.email.SetValue(c.machine.User().Email)
	c.email.Cursor.SetMode(cursor.CursorStatic)

	c.password = textinput.New()
	c.password.Prompt = "> "
	c.password.EchoMode = textinput.EchoPassword
	c.password.EchoCharacter = '•'
	c.password.SetValue(demoPassword)
	c.password.Cursor.SetMode(cursor.CursorStatic)

	c.focus = 0
	c.email.Focus()
	c.password.Blur()
	c.loggingIn = false
}

// selectFromTree is the tree's selection callback.
func (c *Coordinator) selectFromTree(id string) {
	if err := c.machine.SelectMenu(id); err != nil {
		c.logger.Warn("select menu", zap.String("menu_id", id), zap.Error(err))
	}
}

// syncTree pushes the machine's state into the tree and reacts to page
// changes. Every mutation ends here.
func (c *Coordinator) syncTree() {
	if mode := c.navMode(); mode != c.tree.Mode() {
		c.tree.SetMode(mode)
	}
	snap := c.machine.Snapshot()
	c.tree.Sync(c.machine.VisibleRoots(), snap.ActiveMenuID, snap.Epoch)

	route := router.Resolve(c.machine.Registry(), snap)
	if route.Page != c.page {
		if c.page == router.PageOrderDemo {
			c.flow.Cancel()
			c.flow = c.newFlow()
		}
		c.logger.Debug("page", zap.Stringer("from", c.page), zap.Stringer("to", route.Page))
		c.page = route.Page
	}
	if route.Fallback && snap.ActiveMenuID != c.warnedID {
		c.warnedID = snap.ActiveMenuID
		c.logger.Warn("active menu id does not resolve, showing first root", zap.String("menu_id", snap.ActiveMenuID))
	}
}
