package pages

import (
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/b/plouto/pkg/daemon"
	"github.com/b/plouto/pkg/i18n"
	"github.com/b/plouto/pkg/icons"
	"github.com/b/plouto/pkg/layout"
	"github.com/b/plouto/pkg/menu"
	"github.com/b/plouto/pkg/order"
	"github.com/b/plouto/pkg/session"
	"github.com/b/plouto/pkg/theme"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(b layout.Block) string {
	return ansi.ReplaceAllString(b.String(), "")
}

func ctx(t *testing.T) Context {
	t.Helper()
	tr, err := i18n.New()
	require.NoError(t, err)
	return Context{
		Styles: theme.NewStyles(theme.Themes[theme.Default]),
		Icons:  icons.New("ascii"),
		T:      tr.For(i18n.English),
		Lang:   language.English,
		Width:  100,
	}
}

func targets(b layout.Block) []string {
	var out []string
	for _, r := range b.Regions {
		out = append(out, r.Target)
	}
	return out
}

func TestDashboardLinksToDemos(t *testing.T) {
	u := session.MockUser()
	b := Dashboard(ctx(t), u, u.Workspaces[0])
	out := plain(b)
	assert.Contains(t, out, "Welcome back, Alex Rivera")
	assert.Contains(t, out, "Global Import Ops")
	assert.Contains(t, out, "SH-82910")
	assert.Equal(t, []string{"goto:demo-order", "goto:demo-404"}, targets(b))
	for _, r := range b.Regions {
		assert.Equal(t, daemon.ActionPage, r.Action)
	}
}

func TestNotFoundButtons(t *testing.T) {
	b := NotFound(ctx(t))
	assert.Contains(t, plain(b), "404")
	assert.Equal(t, []string{"goto:m8", "goto:m0"}, targets(b))
}

func TestOfflineAndPlaceholder(t *testing.T) {
	store, ok := menu.FindByID(menu.Default(), "m4")
	require.True(t, ok)
	out := plain(Offline(ctx(t), store))
	assert.Contains(t, out, "Service Temporarily Unavailable")
	assert.Contains(t, out, "store")

	vessel, ok := menu.FindByID(menu.Default(), "m3-1-1")
	require.True(t, ok)
	out = plain(Placeholder(ctx(t), vessel))
	assert.Contains(t, out, "Vessel Live Map")
	assert.Contains(t, out, "tracking-vessel")
}

func TestProfileTabs(t *testing.T) {
	u := session.MockUser()
	log := session.NewActivityLog(func() time.Time { return time.Date(2023, 11, 20, 9, 30, 0, 0, time.UTC) })
	log.Record(session.ActivityLogin, "Logged in")

	v := ProfileView{User: u, Workspace: u.Workspaces[0], Activity: log.Entries()}
	b := Profile(ctx(t), v)
	assert.Contains(t, targets(b), TargetProfileBack)
	for _, tab := range Tabs {
		assert.Contains(t, targets(b), TargetTab+tab)
	}
	assert.Contains(t, plain(b), u.Email)

	v.Tab = "workspaces"
	b = Profile(ctx(t), v)
	assert.Contains(t, targets(b), TargetSetDefault+"ws2")
	assert.NotContains(t, targets(b), TargetSetDefault+"ws1", "the default workspace has no button")

	v.Tab = "settings"
	b = Profile(ctx(t), v)
	assert.Contains(t, targets(b), TargetSetLayout+"sidebar")
	assert.Contains(t, plain(b), "(•) Top Navigation")

	v.Tab = "activity"
	assert.Contains(t, plain(Profile(ctx(t), v)), "09:30:00")
}

func TestOrderStates(t *testing.T) {
	c := ctx(t)
	v := OrderView{Status: order.StatusIdle, Items: order.DefaultItems(), Totals: order.Summarize(order.DefaultItems())}
	b := Order(c, v)
	out := plain(b)
	assert.Contains(t, out, "$1,875.00")
	assert.Contains(t, out, "$2,512.50")
	assert.Equal(t, []string{TargetOrderAdd, TargetOrderSave}, targets(b), "the only item cannot be removed")

	v.Items = append(v.Items, order.Item{ID: "2"})
	assert.Contains(t, targets(Order(c, v)), TargetOrderRemove+"2")

	v.Status, v.Step, v.Spinner = order.StatusSaving, 1, "*"
	out = plain(Order(c, v))
	assert.Contains(t, out, "✓ Validating SKU Integrity...")
	assert.Contains(t, out, "* Calculating Customs Duty...")

	v.Status = order.StatusError
	assert.Contains(t, targets(Order(c, v)), TargetOrderDismiss)

	v.Status, v.Number = order.StatusSuccess, "ORD-2023-00042"
	b = Order(c, v)
	assert.Contains(t, plain(b), "ORD-2023-00042")
	assert.Equal(t, []string{TargetOrderNew}, targets(b))
}

func TestLoginRegions(t *testing.T) {
	b := Login(ctx(t), LoginView{Email: "alex", Password: "•••"})
	assert.Equal(t, []string{LoginEmail, LoginPassword, LoginSubmit}, targets(b))
	for _, r := range b.Regions {
		assert.Equal(t, daemon.ActionLogin, r.Action, "region %s", r.Target)
	}

	b = Login(ctx(t), LoginView{Busy: true, Spinner: "/"})
	assert.Contains(t, plain(b), "Authenticating...")
	assert.NotContains(t, targets(b), LoginSubmit)
}
