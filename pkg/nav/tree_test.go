package nav

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b/plouto/pkg/daemon"
	"github.com/b/plouto/pkg/i18n"
	"github.com/b/plouto/pkg/icons"
	"github.com/b/plouto/pkg/layout"
	"github.com/b/plouto/pkg/menu"
	"github.com/b/plouto/pkg/theme"
)

const width = 100

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(b layout.Block) string {
	return ansi.ReplaceAllString(b.String(), "")
}

func painter(t *testing.T) Painter {
	t.Helper()
	tr, err := i18n.New()
	require.NoError(t, err)
	return Painter{
		Styles: theme.NewStyles(theme.Themes[theme.Default]),
		Icons:  icons.New("ascii"),
		T:      tr.For(i18n.English),
	}
}

// harness is a tree wired to a fake navigation state.
type harness struct {
	tree   *Tree
	roots  menu.Forest
	active string
	epoch  uint64
	calls  []string
}

func newHarness(mode Mode, role menu.Role) *harness {
	h := &harness{roots: menu.FilterRoots(menu.Default(), role), active: "m0", epoch: 1}
	h.tree = New(mode, func(id string) {
		h.calls = append(h.calls, id)
		h.active = id
	}, nil)
	h.sync()
	return h
}

func (h *harness) sync() {
	h.tree.Sync(h.roots, h.active, h.epoch)
}

// press resolves a press at the first region for target through hit testing,
// the way a renderer does, and applies it.
func (h *harness) press(t *testing.T, p Painter, target string) Outcome {
	t.Helper()
	b := h.tree.Render(p, width)
	var found *daemon.ClickableRegion
	for i := range b.Regions {
		if b.Regions[i].Target == target && b.Regions[i].Action != "" {
			found = &b.Regions[i]
			break
		}
	}
	require.NotNil(t, found, "no region for %s", target)
	hit, ok := daemon.HitTest(b.Regions, found.StartCol, found.StartLine, width)
	require.True(t, ok)
	require.Equal(t, target, hit.Target)
	if hit.Action != daemon.ActionMenu {
		return Ignored
	}
	out := h.tree.Click(hit.Target)
	h.sync()
	return out
}

func TestLeafClickSelects(t *testing.T) {
	for _, mode := range []Mode{Accordion, Dropdown} {
		t.Run(mode.String(), func(t *testing.T) {
			h := newHarness(mode, menu.RoleBuyer)
			assert.Equal(t, Selected, h.press(t, painter(t), "m7"))
			assert.Equal(t, []string{"m7"}, h.calls)
			assert.Equal(t, "m7", h.active)
		})
	}
}

func TestBranchAndOfflineClicksOnlyToggle(t *testing.T) {
	for _, mode := range []Mode{Accordion, Dropdown} {
		t.Run(mode.String(), func(t *testing.T) {
			h := newHarness(mode, menu.RoleBuyer)
			for _, id := range []string{"m1", "m4", "m3"} {
				require.Equal(t, Toggled, h.tree.Click(id))
				assert.True(t, h.tree.IsOpen(id))
				require.Equal(t, Toggled, h.tree.Click(id))
				assert.False(t, h.tree.IsOpen(id))
			}
			assert.Empty(t, h.calls)
			assert.Equal(t, "m0", h.active)
		})
	}
}

func TestChildlessOfflineNodeToggles(t *testing.T) {
	roots := menu.Forest{
		{ID: "a", Title: "A", Online: true, Roles: []menu.Role{menu.RoleBuyer}},
		{ID: "b", Title: "B", ServiceID: "svc-b", Roles: []menu.Role{menu.RoleBuyer}},
	}
	var calls []string
	tree := New(Accordion, func(id string) { calls = append(calls, id) }, nil)
	tree.Sync(roots, "a", 1)
	assert.Equal(t, Toggled, tree.Click("b"))
	assert.Empty(t, calls)
	assert.Contains(t, plain(tree.Render(painter(t), width)), "svc-b")
}

func TestTrackingScenarioDropdown(t *testing.T) {
	p := painter(t)
	h := newHarness(Dropdown, menu.RoleBuyer)

	assert.Equal(t, Toggled, h.press(t, p, "m3"))
	assert.Equal(t, "m0", h.active)
	out := plain(h.tree.Render(p, width))
	assert.Contains(t, out, "TRACKING NAVIGATION")
	assert.Contains(t, out, "Vessel Live Map", "nested online branches start expanded")

	assert.Equal(t, Selected, h.press(t, p, "m3-1-1"))
	assert.Equal(t, "m3-1-1", h.active)
	assert.False(t, h.tree.AnyOpen(), "leaf selection closes the dropdown")
	assert.NotContains(t, plain(h.tree.Render(p, width)), "Vessel Live Map")
}

func TestTrackingScenarioAccordion(t *testing.T) {
	p := painter(t)
	h := newHarness(Accordion, menu.RoleBuyer)

	assert.Equal(t, Toggled, h.press(t, p, "m3"))
	assert.Equal(t, Toggled, h.press(t, p, "m3-1"))
	assert.Equal(t, "m0", h.active)

	assert.Equal(t, Selected, h.press(t, p, "m3-1-1"))
	assert.Equal(t, "m3-1-1", h.active)
	assert.True(t, h.tree.IsOpen("m3"))
	assert.True(t, h.tree.IsOpen("m3-1"))
	assert.Contains(t, plain(h.tree.Render(p, width)), "Vessel Live Map")
}

func TestAccordionAutoOpensActivePath(t *testing.T) {
	h := newHarness(Accordion, menu.RoleBuyer)
	h.active = "m3-2-2"
	h.sync()
	assert.True(t, h.tree.IsOpen("m3"))
	assert.True(t, h.tree.IsOpen("m3-2"))
	assert.False(t, h.tree.IsOpen("m3-1"))

	// an explicit collapse sticks until the selection moves
	h.tree.Click("m3")
	h.sync()
	assert.False(t, h.tree.IsOpen("m3"))
}

func TestStoreOfflinePanelIsInert(t *testing.T) {
	for _, mode := range []Mode{Accordion, Dropdown} {
		t.Run(mode.String(), func(t *testing.T) {
			p := painter(t)
			h := newHarness(mode, menu.RoleBuyer)
			require.Equal(t, Toggled, h.press(t, p, "m4"))

			b := h.tree.Render(p, width)
			out := plain(b)
			assert.Contains(t, out, "Failed to load Store")
			for _, svc := range []string{"store", "store-product", "store-catalog", "store-pricing", "store-inventory"} {
				assert.Contains(t, out, svc)
			}

			for _, id := range []string{"m4-1", "m4-1-1", "m4-1-2", "m4-2"} {
				assert.Equal(t, Ignored, h.press(t, p, id))
				assert.Equal(t, Ignored, h.tree.Click(id), "direct clicks under an offline node do nothing")
			}
			assert.Empty(t, h.calls)
			assert.Equal(t, "m0", h.active)
		})
	}
}

func TestDropdownOutsideDismisses(t *testing.T) {
	h := newHarness(Dropdown, menu.RoleBuyer)
	h.tree.Click("m3")
	require.True(t, h.tree.AnyOpen())
	assert.True(t, h.tree.Outside())
	assert.False(t, h.tree.AnyOpen())
	assert.False(t, h.tree.Outside(), "nothing left to close")
}

func TestAccordionIgnoresOutside(t *testing.T) {
	h := newHarness(Accordion, menu.RoleBuyer)
	h.tree.Click("m3")
	assert.False(t, h.tree.Outside())
	assert.True(t, h.tree.IsOpen("m3"))
}

func TestDropdownOpensOnePanelAtATime(t *testing.T) {
	h := newHarness(Dropdown, menu.RoleBuyer)
	h.tree.Click("m3")
	h.tree.Click("m1")
	assert.True(t, h.tree.IsOpen("m1"))
	assert.False(t, h.tree.IsOpen("m3"))
}

func TestDropdownPanelBorderCountsAsInside(t *testing.T) {
	p := painter(t)
	h := newHarness(Dropdown, menu.RoleBuyer)
	h.tree.Click("m3")
	b := h.tree.Render(p, width)

	// the panel's top border sits directly under the bar
	barHeight := 1
	hit, ok := daemon.HitTest(b.Regions, 0, barHeight, width)
	if ok && hit.Action == daemon.ActionMenu {
		t.Fatalf("border resolved to a menu row: %+v", hit)
	}
	var inside bool
	for x := 0; x < width; x++ {
		if r, ok := daemon.HitTest(b.Regions, x, barHeight, width); ok && r.Action == daemon.ActionMenuInert {
			inside = true
			break
		}
	}
	assert.True(t, inside)
}

func TestEpochResetsDisclosure(t *testing.T) {
	for _, mode := range []Mode{Accordion, Dropdown} {
		t.Run(mode.String(), func(t *testing.T) {
			h := newHarness(mode, menu.RoleBuyer)
			h.tree.Click("m1")
			require.True(t, h.tree.IsOpen("m1"))

			// a workspace switch lands on m0 again, only the epoch moves
			h.epoch++
			h.sync()
			assert.False(t, h.tree.IsOpen("m1"))
		})
	}
}

func TestExternalSelectionClosesDropdown(t *testing.T) {
	h := newHarness(Dropdown, menu.RoleBuyer)
	h.tree.Click("m3")
	h.active = "m7"
	h.sync()
	assert.False(t, h.tree.AnyOpen())
}

func TestSetModeResets(t *testing.T) {
	h := newHarness(Dropdown, menu.RoleBuyer)
	h.tree.Click("m3")
	h.active = "m3-1-2"
	h.tree.SetMode(Accordion)
	h.sync()
	assert.Equal(t, Accordion, h.tree.Mode())
	assert.True(t, h.tree.IsOpen("m3-1"))
}

func TestRenderMarksActiveAncestorInBar(t *testing.T) {
	p := painter(t)
	h := newHarness(Dropdown, menu.RoleVendor)
	b := h.tree.Render(p, width)
	out := plain(b)
	assert.Contains(t, out, "Store")
	assert.NotContains(t, out, "System Navigation")
	assert.Equal(t, 1, b.Height())

	var targets []string
	for _, r := range b.Regions {
		targets = append(targets, r.Target)
	}
	assert.Equal(t, []string{"m0", "m1", "m4", "m3", "m7"}, targets)
}

func TestBarWrapsOnNarrowWidths(t *testing.T) {
	p := painter(t)
	h := newHarness(Dropdown, menu.RoleBuyer)
	b := h.tree.Render(p, 30)
	assert.Greater(t, b.Height(), 1)
	for _, l := range b.Lines {
		assert.LessOrEqual(t, lipgloss.Width(l), 30)
	}
}

func TestEmptyRoots(t *testing.T) {
	tree := New(Accordion, nil, nil)
	tree.Sync(menu.Forest{}, "m0", 1)
	out := plain(tree.Render(painter(t), width))
	assert.True(t, strings.Contains(out, "No modules available"))
	assert.Equal(t, Ignored, tree.Click("m0"))
}

func TestRailShowsOneIconPerRoot(t *testing.T) {
	h := newHarness(Accordion, menu.RoleVendor)
	b := h.tree.RenderRail(painter(t))
	require.Len(t, b.Lines, len(h.roots))
	assert.Contains(t, plain(b), "[h]")
	assert.NotContains(t, plain(b), "Home")
	for i, r := range b.Regions {
		assert.Equal(t, daemon.ActionMenu, r.Action)
		assert.Equal(t, h.roots[i].ID, r.Target)
	}
	for _, l := range b.Lines {
		assert.Equal(t, RailWidth, lipgloss.Width(l))
	}
}
