package shell

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type redrawMsg struct{}

type tickMsg struct{}

// Model runs a coordinator inside one bubbletea program, hit testing mouse
// presses itself instead of going through a daemon.
type Model struct {
	c      *Coordinator
	screen Screen
}

func NewModel(c *Coordinator) Model {
	m := Model{c: c, screen: NewScreen(80, 24)}
	m.refresh()
	return m
}

// Redraw is a Coordinator.OnChange hook that wakes p after scheduled work.
func Redraw(p *tea.Program) func() {
	return func() { p.Send(redrawMsg{}) }
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.c.TickInterval(), func(time.Time) tea.Msg { return tickMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.screen.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if m.c.HandleKey(msg) {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			hit, _ := m.screen.Hit(msg.X, msg.Y)
			m.c.HandleAction(hit.Action, hit.Target)
		} else {
			cmd = m.screen.Update(msg)
		}
	case tickMsg:
		m.c.Tick()
		cmd = m.tick()
	case redrawMsg:
	}
	m.refresh()
	return m, cmd
}

func (m *Model) refresh() {
	w, h := m.screen.Size()
	m.screen.SetFrame(m.c.Render(w, h))
}

func (m Model) View() string {
	return m.screen.View()
}
