// Package render draws Kalah boards and game messages for terminals.
//
// The board layout is fixed: the second player's name, their row read right
// to left, both stores (second on the left, first on the right), the first
// player's row read left to right and finally the first player's name.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/kalah/internal/kalah"
)

// Renderer draws boards with a fixed set of styles
type Renderer struct {
	styles    Styles
	active    kalah.Seat
	highlight bool
}

// New creates a renderer whose colour profile is detected from w
func New(w io.Writer) *Renderer {
	return NewWithRenderer(lipgloss.NewRenderer(w))
}

// Plain creates a renderer that never emits escape codes
func Plain() *Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return NewWithRenderer(r)
}

// NewWithRenderer creates a renderer on an existing lipgloss renderer
func NewWithRenderer(r *lipgloss.Renderer) *Renderer {
	return &Renderer{styles: NewStyles(r)}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() Styles { return r.styles }

// WithActive returns a copy that highlights the name of the seat to move
func (r *Renderer) WithActive(seat kalah.Seat) *Renderer {
	c := *r
	c.active = seat
	c.highlight = true
	return &c
}

// Layout draws the board without styling
func Layout(snap kalah.Snapshot) string {
	return Plain().Board(snap)
}

// Board draws the snapshot in the fixed five line layout
func (r *Renderer) Board(snap kalah.Snapshot) string {
	width := cellWidth(snap)

	top := r.row(reversed(snap.Second.Pits), width)
	bottom := r.row(snap.First.Pits, width)
	rowWidth := lipgloss.Width(bottom)

	left := r.styles.Store.Render(fmt.Sprintf("(%d)", snap.Second.Store))
	right := r.styles.Store.Render(fmt.Sprintf("(%d)", snap.First.Store))
	margin := max(lipgloss.Width(left), lipgloss.Width(right)) + 2
	indent := strings.Repeat(" ", margin)
	gap := margin - lipgloss.Width(left) + rowWidth + 2

	lines := []string{
		indent + center(r.name(snap.Second.Name, kalah.Second), rowWidth),
		indent + top,
		left + strings.Repeat(" ", gap) + right,
		indent + bottom,
		indent + center(r.name(snap.First.Name, kalah.First), rowWidth),
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) name(name string, seat kalah.Seat) string {
	if r.highlight && r.active == seat {
		return r.styles.ActiveName.Render(name)
	}
	return r.styles.Name.Render(name)
}

func (r *Renderer) row(pits []int, width int) string {
	var sb strings.Builder
	bar := r.styles.Border.Render("|")
	sb.WriteString(bar)
	for _, seeds := range pits {
		style := r.styles.Pit
		if seeds == 0 {
			style = r.styles.EmptyPit
		}
		sb.WriteString(" ")
		sb.WriteString(style.Render(fmt.Sprintf("%*d", width, seeds)))
		sb.WriteString(" ")
		sb.WriteString(bar)
	}
	return sb.String()
}

// cellWidth is the number of digits of the fullest pit
func cellWidth(snap kalah.Snapshot) int {
	width := 1
	for _, side := range []kalah.SideSnapshot{snap.First, snap.Second} {
		for _, seeds := range side.Pits {
			width = max(width, len(fmt.Sprint(seeds)))
		}
	}
	return width
}

func reversed(pits []int) []int {
	out := make([]int, len(pits))
	for i, seeds := range pits {
		out[len(pits)-1-i] = seeds
	}
	return out
}

// center pads s on the left so it sits in the middle of width columns
func center(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap/2) + s
}
