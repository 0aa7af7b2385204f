package theme

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles every renderer shares.
type Styles struct {
	Theme Theme

	Bar         lipgloss.Style
	BarItem     lipgloss.Style
	BarActive   lipgloss.Style
	BarAncestor lipgloss.Style

	NavItem     lipgloss.Style
	NavActive   lipgloss.Style
	NavAncestor lipgloss.Style
	NavInert    lipgloss.Style

	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	Badge      lipgloss.Style
	Offline    lipgloss.Style

	Title   lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style

	Button        lipgloss.Style
	ButtonPrimary lipgloss.Style
}

// NewStyles derives styles from t, fixing any foreground that fails WCAG AA
// against its background.
func NewStyles(t Theme) Styles {
	fg := func(c, bg string) lipgloss.Color {
		return lipgloss.Color(EnsureContrast(c, bg, 4.5))
	}
	return Styles{
		Theme: t,

		Bar:         lipgloss.NewStyle().Background(lipgloss.Color(t.BarBg)).Foreground(fg(t.BarFg, t.BarBg)),
		BarItem:     lipgloss.NewStyle().Foreground(fg(t.BarFg, t.BarBg)),
		BarActive:   lipgloss.NewStyle().Background(lipgloss.Color(t.ActiveBg)).Foreground(fg(t.ActiveFg, t.ActiveBg)).Bold(true),
		BarAncestor: lipgloss.NewStyle().Foreground(fg(t.AncestorFg, t.BarBg)).Bold(true).Underline(true),

		NavItem:     lipgloss.NewStyle().Foreground(fg(t.Fg, t.Bg)),
		NavActive:   lipgloss.NewStyle().Background(lipgloss.Color(t.ActiveBg)).Foreground(fg(t.ActiveFg, t.ActiveBg)).Bold(true),
		NavAncestor: lipgloss.NewStyle().Foreground(fg(t.AncestorFg, t.Bg)).Bold(true),
		NavInert:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)).Faint(true),

		Panel:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(t.BorderFg)).Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().Foreground(fg(t.Muted, t.Bg)).Bold(true),
		Badge:      lipgloss.NewStyle().Background(lipgloss.Color(t.BadgeBg)).Foreground(fg(t.BadgeFg, t.BadgeBg)),
		Offline:    lipgloss.NewStyle().Foreground(fg(t.OfflineFg, t.Bg)),

		Title:   lipgloss.NewStyle().Foreground(fg(t.Fg, t.Bg)).Bold(true),
		Text:    lipgloss.NewStyle().Foreground(fg(t.Fg, t.Bg)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Accent:  lipgloss.NewStyle().Foreground(fg(t.Accent, t.Bg)).Bold(true),
		Success: lipgloss.NewStyle().Foreground(fg(t.SuccessFg, t.Bg)).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(fg(t.ErrorFg, t.Bg)).Bold(true),

		Button:        lipgloss.NewStyle().Foreground(fg(t.Accent, t.Bg)),
		ButtonPrimary: lipgloss.NewStyle().Background(lipgloss.Color(t.ActiveBg)).Foreground(fg(t.ActiveFg, t.ActiveBg)).Bold(true),
	}
}
