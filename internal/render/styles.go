package render

import "github.com/charmbracelet/lipgloss"

// Styles holds every style the board and messages use
type Styles struct {
	Name       lipgloss.Style
	ActiveName lipgloss.Style
	Pit        lipgloss.Style
	EmptyPit   lipgloss.Style
	Store      lipgloss.Style
	Border     lipgloss.Style

	Header  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

// NewStyles creates the styles for the given lipgloss renderer
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Name: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		ActiveName: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Pit: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		EmptyPit: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Store: r.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")).
			Bold(true),
		Border: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}
