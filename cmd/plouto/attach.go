package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/b/plouto/pkg/daemon"
	"github.com/b/plouto/pkg/shell"
)

var errDisconnected = errors.New("disconnected from the shell server")

func newAttachCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "attach",
		Short: "Attach this terminal to a running plouto serve",
		Args:  cobra.NoArgs,
		RunE:  a.attach,
	}
}

// Message types
type renderMsg struct {
	payload *daemon.RenderPayload
}

type disconnectedMsg struct{ err error }

type pingMsg time.Time

// attachModel is a thin renderer: it shows frames from the server and sends
// keys and hit-tested presses back.
type attachModel struct {
	client *daemon.Client
	logger *zap.Logger
	screen shell.Screen
	seq    uint64
	err    error
}

func (a *app) attach(cmd *cobra.Command, _ []string) error {
	clientID := "renderer-" + uuid.NewString()[:8]
	client, err := daemon.Dial(cmd.Context(), a.cfg.Daemon.Session, clientID)
	if err != nil {
		return fmt.Errorf("is plouto serve running? %w", err)
	}
	defer client.Close()

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}
	profile := termenv.NewOutput(os.Stdout).Profile
	if err := client.Subscribe(daemon.ResizePayload{Width: width, Height: height, ColorProfile: profileName(profile)}); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	m := &attachModel{client: client, logger: a.logger.Named("attach"), screen: shell.NewScreen(width, height)}
	m.logger.Debug("subscribed",
		zap.String("client_id", client.ID()),
		zap.String("session", a.cfg.Daemon.Session),
		zap.Int("width", width),
		zap.Int("height", height))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))

	go func() {
		err := client.Receive(func(payload *daemon.RenderPayload) {
			p.Send(renderMsg{payload: payload})
		})
		p.Send(disconnectedMsg{err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(*attachModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

func pingCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return pingMsg(t)
	})
}

func (m *attachModel) Init() tea.Cmd {
	return pingCmd()
}

func (m *attachModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case renderMsg:
		m.seq = msg.payload.SequenceNum
		m.screen.SetFrame(msg.payload)

	case disconnectedMsg:
		m.err = errDisconnected
		if msg.err != nil {
			m.err = fmt.Errorf("%w: %v", errDisconnected, msg.err)
		}
		return m, tea.Quit

	case pingMsg:
		m.send(m.client.Ping())
		return m, pingCmd()

	case tea.WindowSizeMsg:
		m.screen.SetSize(msg.Width, msg.Height)
		m.send(m.client.Resize(daemon.ResizePayload{Width: msg.Width, Height: msg.Height}))

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.send(m.client.Unsubscribe())
			return m, tea.Quit
		}
		m.send(m.client.Input(&daemon.InputPayload{SequenceNum: m.seq, Type: "key", Key: msg.String()}))

	case tea.MouseMsg:
		return m, m.mouse(msg)
	}
	return m, nil
}

func (m *attachModel) mouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		before := m.screen.Offset()
		cmd := m.screen.Update(msg)
		if m.screen.Offset() != before {
			m.send(m.client.Viewport(m.screen.Offset()))
		}
		return cmd
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	// A miss is sent too: the server closes menus on outside presses.
	hit, _ := m.screen.Hit(msg.X, msg.Y)
	m.send(m.client.Input(&daemon.InputPayload{
		SequenceNum:    m.seq,
		Type:           "action",
		MouseX:         msg.X,
		MouseY:         msg.Y,
		Button:         "left",
		Action:         "press",
		ClickedArea:    m.screen.Area(msg.Y),
		ViewportOffset: m.screen.Offset(),
		ResolvedAction: hit.Action,
		ResolvedTarget: hit.Target,
	}))
	return nil
}

func (m *attachModel) send(err error) {
	if err != nil {
		m.logger.Warn("send to server failed", zap.Error(err))
	}
}

func (m *attachModel) View() string {
	if m.screen.Frame() == nil {
		return "connecting..."
	}
	return m.screen.View()
}
