// Package layout composes rendered lines together with the clickable regions
// that belong to them, keeping region coordinates correct as blocks are
// stacked and placed side by side.
package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/b/plouto/pkg/daemon"
)

// Block is a rectangle of rendered lines plus regions relative to its origin.
type Block struct {
	Lines   []string
	Regions []daemon.ClickableRegion
}

// Text turns a rendered string into a block without regions.
func Text(s string) Block {
	if s == "" {
		return Block{}
	}
	return Block{Lines: strings.Split(strings.TrimSuffix(s, "\n"), "\n")}
}

func (b Block) Height() int { return len(b.Lines) }

// Width is the widest line in terminal cells.
func (b Block) Width() int {
	w := 0
	for _, l := range b.Lines {
		if lw := lipgloss.Width(l); lw > w {
			w = lw
		}
	}
	return w
}

func (b Block) String() string {
	return strings.Join(b.Lines, "\n")
}

// Add appends a line without a region.
func (b *Block) Add(lines ...string) {
	b.Lines = append(b.Lines, lines...)
}

// AddLink appends a line that is clickable across its full width.
func (b *Block) AddLink(line, action, target string) {
	b.Regions = append(b.Regions, daemon.ClickableRegion{
		StartLine: len(b.Lines),
		EndLine:   len(b.Lines),
		Action:    action,
		Target:    target,
	})
	b.Lines = append(b.Lines, line)
}

// Span is one clickable piece of a line assembled with Row.
type Span struct {
	Text   string
	Action string
	Target string
}

// AddRow appends a line built from spans; spans with an action get a region
// covering exactly their cells.
func (b *Block) AddRow(spans ...Span) {
	line := len(b.Lines)
	col := 0
	var sb strings.Builder
	for _, s := range spans {
		w := lipgloss.Width(s.Text)
		if s.Action != "" && w > 0 {
			b.Regions = append(b.Regions, daemon.ClickableRegion{
				StartLine: line,
				EndLine:   line,
				StartCol:  col,
				EndCol:    col + w,
				Action:    s.Action,
				Target:    s.Target,
			})
		}
		sb.WriteString(s.Text)
		col += w
	}
	b.Lines = append(b.Lines, sb.String())
}

// Append stacks o below b.
func (b *Block) Append(o Block) {
	dy := len(b.Lines)
	for _, r := range o.Regions {
		r.StartLine += dy
		r.EndLine += dy
		b.Regions = append(b.Regions, r)
	}
	b.Lines = append(b.Lines, o.Lines...)
}

// Indent shifts the block right by n columns. Full-width regions stay full
// width.
func (b Block) Indent(n int) Block {
	if n <= 0 {
		return b
	}
	pad := strings.Repeat(" ", n)
	out := Block{Lines: make([]string, len(b.Lines))}
	for i, l := range b.Lines {
		out.Lines[i] = pad + l
	}
	for _, r := range b.Regions {
		r.StartCol += n
		if r.EndCol != 0 {
			r.EndCol += n
		}
		out.Regions = append(out.Regions, r)
	}
	return out
}

// Beside places right next to left, padding left to leftWidth columns.
// Full-width regions of left are clipped to leftWidth.
func Beside(left Block, leftWidth int, right Block) Block {
	h := left.Height()
	if right.Height() > h {
		h = right.Height()
	}
	out := Block{Lines: make([]string, h)}
	for i := 0; i < h; i++ {
		var l, r string
		if i < len(left.Lines) {
			l = left.Lines[i]
		}
		if i < len(right.Lines) {
			r = right.Lines[i]
		}
		out.Lines[i] = Fit(l, leftWidth) + r
	}
	for _, r := range left.Regions {
		if r.EndCol == 0 || r.EndCol > leftWidth {
			r.EndCol = leftWidth
		}
		out.Regions = append(out.Regions, r)
	}
	for _, r := range right.Regions {
		r.StartCol += leftWidth
		if r.EndCol != 0 {
			r.EndCol += leftWidth
		}
		out.Regions = append(out.Regions, r)
	}
	return out
}

// Fit pads or truncates a possibly styled line to exactly width cells.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w > width {
		s = lipgloss.NewStyle().MaxWidth(width).Render(s)
		w = lipgloss.Width(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// narrow measures ambiguous-width runes as one cell regardless of locale.
var narrow = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Truncate shortens plain text to width cells with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return narrow.Truncate(s, width, "…")
}

// Clip keeps the first n lines, dropping regions that start below them.
func (b Block) Clip(n int) Block {
	if n >= len(b.Lines) {
		return b
	}
	out := Block{Lines: b.Lines[:n]}
	for _, r := range b.Regions {
		if r.StartLine >= n {
			continue
		}
		if r.EndLine >= n {
			r.EndLine = n - 1
		}
		out.Regions = append(out.Regions, r)
	}
	return out
}

// Box draws a rounded border around b with one column of padding, the body
// fitted to inner cells. With fill set, a last region covering the whole box
// catches presses on the border and padding.
func Box(b Block, inner int, edge lipgloss.Style, fill string) Block {
	bd := lipgloss.RoundedBorder()

	var out Block
	out.Add(edge.Render(bd.TopLeft + strings.Repeat(bd.Top, inner+2) + bd.TopRight))
	for _, l := range b.Lines {
		out.Add(edge.Render(bd.Left) + " " + Fit(l, inner) + " " + edge.Render(bd.Right))
	}
	out.Add(edge.Render(bd.BottomLeft + strings.Repeat(bd.Bottom, inner+2) + bd.BottomRight))

	for _, r := range b.Regions {
		if r.EndCol == 0 || r.EndCol > inner {
			r.EndCol = inner
		}
		r.StartLine++
		r.EndLine++
		r.StartCol += 2
		r.EndCol += 2
		out.Regions = append(out.Regions, r)
	}
	if fill != "" {
		out.Regions = append(out.Regions, daemon.ClickableRegion{
			StartLine: 0,
			EndLine:   len(out.Lines) - 1,
			EndCol:    inner + 4,
			Action:    fill,
		})
	}
	return out
}
