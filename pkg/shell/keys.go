package shell

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Quit    key.Binding
	Close   key.Binding
	Layout  key.Binding
	Sidebar key.Binding
	Profile key.Binding
	Help    key.Binding
	Next    key.Binding
	Submit  key.Binding
}

func newKeyMap(t func(string, ...map[string]interface{}) string) keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", t("Help.Quit"))),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", t("Help.Close"))),
		Layout:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", t("Help.Layout"))),
		Sidebar: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", t("Help.Sidebar"))),
		Profile: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", t("Help.Profile"))),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", t("Help.More"))),
		Next:    key.NewBinding(key.WithKeys("tab", "shift+tab", "up", "down"), key.WithHelp("tab", t("Help.Next"))),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", t("Help.Submit"))),
	}
}

// loginKeys is the help shown on the login form, where letters are typed
// into the fields.
type loginKeys keyMap

func (k loginKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit}
}

func (k loginKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Close, k.Layout, k.Profile, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Close, k.Layout, k.Sidebar, k.Profile},
		{k.Help, k.Quit},
	}
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"esc":       tea.KeyEsc,
	"backspace": tea.KeyBackspace,
	"delete":    tea.KeyDelete,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"ctrl+a":    tea.KeyCtrlA,
	"ctrl+e":    tea.KeyCtrlE,
	"ctrl+u":    tea.KeyCtrlU,
	"ctrl+w":    tea.KeyCtrlW,
	"ctrl+c":    tea.KeyCtrlC,
	" ":         tea.KeySpace,
}

// KeyMsg rebuilds a key event from the string a remote renderer sent, which
// is what tea.KeyMsg.String produced on its side.
func KeyMsg(s string) tea.KeyMsg {
	if t, ok := namedKeys[s]; ok {
		if t == tea.KeySpace {
			return tea.KeyMsg{Type: t, Runes: []rune{' '}}
		}
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
