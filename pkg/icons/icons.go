// Package icons maps the registry's symbolic icon keys to terminal glyphs.
package icons

// Fallback is the key used for anything unknown.
const Fallback = "LayoutDashboard"

// Styles lists the supported glyph sets.
var Styles = []string{"nerd", "emoji", "ascii"}

var iconsByStyle = map[string]map[string]string{
	"nerd": {
		"LayoutDashboard": "󰕮",
		"Package":         "󰏗",
		"Truck":           "󰄋",
		"FileText":        "󰈙",
		"Users":           "󰡉",
		"Settings":        "",
		"BarChart3":       "󰄨",
		"Globe":           "󰖟",
		"ShieldCheck":     "󰒃",
		"Database":        "",
		"Box":             "󰆧",
		"Home":            "󰋜",
		"Store":           "󰓜",
		"ShoppingCart":    "󰄐",
		"Layers":          "󰌨",
		"MapPin":          "󰍎",
		"Anchor":          "󰀍",
		"Plane":           "󰀝",
		"Navigation":      "󰆌",
		"Bell":            "󰂚",
	},
	"emoji": {
		"LayoutDashboard": "🧭",
		"Package":         "📦",
		"Truck":           "🚚",
		"FileText":        "📄",
		"Users":           "👥",
		"Settings":        "⚙",
		"BarChart3":       "📊",
		"Globe":           "🌐",
		"ShieldCheck":     "🛡",
		"Database":        "🗄",
		"Box":             "🗃",
		"Home":            "🏠",
		"Store":           "🏬",
		"ShoppingCart":    "🛒",
		"Layers":          "🗂",
		"MapPin":          "📍",
		"Anchor":          "⚓",
		"Plane":           "✈",
		"Navigation":      "🧭",
		"Bell":            "🔔",
	},
	"ascii": {
		"LayoutDashboard": "[#]",
		"Package":         "[p]",
		"Truck":           "[t]",
		"FileText":        "[f]",
		"Users":           "[u]",
		"Settings":        "[*]",
		"BarChart3":       "[%]",
		"Globe":           "[o]",
		"ShieldCheck":     "[v]",
		"Database":        "[d]",
		"Box":             "[b]",
		"Home":            "[h]",
		"Store":           "[s]",
		"ShoppingCart":    "[c]",
		"Layers":          "[=]",
		"MapPin":          "[@]",
		"Anchor":          "[a]",
		"Plane":           "[>]",
		"Navigation":      "[^]",
		"Bell":            "(!)",
	},
}

// Set resolves keys in one style.
type Set struct {
	style string
	table map[string]string
}

// New returns the set for style, falling back to ascii.
func New(style string) Set {
	table, ok := iconsByStyle[style]
	if !ok {
		style = "ascii"
		table = iconsByStyle[style]
	}
	return Set{style: style, table: table}
}

// Style is the effective style name.
func (s Set) Style() string {
	if s.table == nil {
		return "ascii"
	}
	return s.style
}

// Resolve never fails: unknown keys render as the fallback glyph.
func (s Set) Resolve(key string) string {
	table := s.table
	if table == nil {
		table = iconsByStyle["ascii"]
	}
	if glyph, ok := table[key]; ok {
		return glyph
	}
	return table[Fallback]
}

// Known reports whether key has its own glyph.
func Known(key string) bool {
	_, ok := iconsByStyle["ascii"][key]
	return ok
}
