// Package theme holds the portal's color palettes and the lipgloss styles
// derived from them.
package theme

import (
	"sort"

	"github.com/muesli/termenv"
)

// Theme is one palette for the shell chrome and pages.
type Theme struct {
	Name        string
	Description string
	Dark        bool

	Bg    string
	Fg    string
	Muted string

	// Top bar and sidebar
	BarBg      string
	BarFg      string
	ActiveBg   string
	ActiveFg   string
	AncestorFg string

	Accent    string
	OfflineFg string
	BadgeBg   string
	BadgeFg   string
	BorderFg  string

	SuccessFg string
	ErrorFg   string
}

var Themes = map[string]Theme{
	"harbor": {
		Name:        "harbor",
		Description: "Deep navy chrome with indigo highlights",
		Dark:        true,
		Bg:          "#0f172a",
		Fg:          "#e2e8f0",
		Muted:       "#94a3b8",
		BarBg:       "#111827",
		BarFg:       "#cbd5e1",
		ActiveBg:    "#4f46e5",
		ActiveFg:    "#ffffff",
		AncestorFg:  "#a5b4fc",
		Accent:      "#818cf8",
		OfflineFg:   "#f59e0b",
		BadgeBg:     "#7f1d1d",
		BadgeFg:     "#fecaca",
		BorderFg:    "#334155",
		SuccessFg:   "#34d399",
		ErrorFg:     "#f87171",
	},
	"daybreak": {
		Name:        "daybreak",
		Description: "Light slate surfaces for bright terminals",
		Dark:        false,
		Bg:          "#f8fafc",
		Fg:          "#0f172a",
		Muted:       "#64748b",
		BarBg:       "#e2e8f0",
		BarFg:       "#334155",
		ActiveBg:    "#eef2ff",
		ActiveFg:    "#4338ca",
		AncestorFg:  "#4f46e5",
		Accent:      "#4f46e5",
		OfflineFg:   "#b45309",
		BadgeBg:     "#fee2e2",
		BadgeFg:     "#b91c1c",
		BorderFg:    "#cbd5e1",
		SuccessFg:   "#047857",
		ErrorFg:     "#b91c1c",
	},
	"mono": {
		Name:        "mono",
		Description: "Grayscale, for low-color terminals",
		Dark:        true,
		Bg:          "#000000",
		Fg:          "#d0d0d0",
		Muted:       "#808080",
		BarBg:       "#1c1c1c",
		BarFg:       "#bcbcbc",
		ActiveBg:    "#d0d0d0",
		ActiveFg:    "#000000",
		AncestorFg:  "#ffffff",
		Accent:      "#ffffff",
		OfflineFg:   "#a8a8a8",
		BadgeBg:     "#444444",
		BadgeFg:     "#ffffff",
		BorderFg:    "#585858",
		SuccessFg:   "#ffffff",
		ErrorFg:     "#ffffff",
	},
}

// Default is used when a configured name is unknown.
const Default = "harbor"

// Get returns the named theme. "auto" picks by terminal background.
func Get(name string) (Theme, bool) {
	if name == "auto" {
		return Auto(), true
	}
	t, ok := Themes[name]
	if !ok {
		return Themes[Default], false
	}
	return t, true
}

// Auto chooses harbor on dark terminals and daybreak on light ones.
func Auto() Theme {
	if termenv.HasDarkBackground() {
		return Themes["harbor"]
	}
	return Themes["daybreak"]
}

// Names lists the built-in themes alphabetically.
func Names() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
