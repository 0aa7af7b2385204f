package shell

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/b/plouto/pkg/daemon"
)

// Screen shows frames in a scrolling viewport with the pinned lines under it
// and maps presses back to the regions of the frame on screen. The
// in-process program and the attach client both draw through it.
type Screen struct {
	vp     viewport.Model
	width  int
	height int
	frame  *daemon.RenderPayload
}

func NewScreen(width, height int) Screen {
	return Screen{vp: viewport.New(width, height), width: width, height: height}
}

func (s *Screen) SetSize(width, height int) {
	s.width, s.height = width, height
	s.layout()
}

func (s *Screen) Size() (int, int) { return s.width, s.height }

// SetFrame replaces the frame on screen, keeping the scroll position where
// the new content allows.
func (s *Screen) SetFrame(f *daemon.RenderPayload) {
	s.frame = f
	s.layout()
}

func (s *Screen) layout() {
	s.vp.Width = s.width
	h := s.height
	if s.frame != nil {
		h -= s.frame.PinnedHeight
		s.vp.SetContent(s.frame.Content)
	}
	if h < 1 {
		h = 1
	}
	s.vp.Height = h
}

// Frame is the frame on screen, nil before the first one arrives.
func (s *Screen) Frame() *daemon.RenderPayload { return s.frame }

// Offset is the scroll position of the content.
func (s *Screen) Offset() int { return s.vp.YOffset }

// Update scrolls on wheel events; everything else is ignored.
func (s *Screen) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(tea.MouseMsg)
	if !ok || (m.Button != tea.MouseButtonWheelUp && m.Button != tea.MouseButtonWheelDown) {
		return nil
	}
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return cmd
}

// Hit resolves a press at screen cell (x, y). Presses on the content are
// offset by the scroll position; presses below it hit the pinned lines.
func (s *Screen) Hit(x, y int) (daemon.ClickableRegion, bool) {
	if s.frame == nil {
		return daemon.ClickableRegion{}, false
	}
	if y < s.vp.Height {
		return daemon.HitTest(s.frame.Regions, x, y+s.vp.YOffset, s.width)
	}
	return daemon.HitTest(s.frame.PinnedRegions, x, y-s.vp.Height, s.width)
}

// Area names the part of the screen at row y, "content" or "pinned".
func (s *Screen) Area(y int) string {
	if y < s.vp.Height {
		return "content"
	}
	return "pinned"
}

func (s *Screen) View() string {
	if s.frame == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(s.vp.View())
	if s.frame.PinnedContent != "" {
		b.WriteString("\n")
		b.WriteString(s.frame.PinnedContent)
	}
	return b.String()
}
