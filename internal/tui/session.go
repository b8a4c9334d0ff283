package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/kalah/internal/kalah"
)

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Session connects the engine goroutine to the model: it is the Mover for
// both players and subscribes to the game's events. Everything it tells the
// model goes through Send, so the model is only touched by the program loop.
type Session struct {
	model  *Model
	sender Sender
}

// NewSession creates a session delivering messages through sender
func NewSession(model *Model, sender Sender) *Session {
	return &Session{model: model, sender: sender}
}

// NewProgram creates the bubbletea program for the model and its session
func NewProgram(model *Model, opts ...tea.ProgramOption) (*tea.Program, *Session) {
	program := tea.NewProgram(model, opts...)
	return program, NewSession(model, program)
}

// NextMove shows the prompt and waits for the player to submit input
func (s *Session) NextMove(ctx context.Context, view kalah.View) (string, error) {
	s.sender.Send(promptMsg{view: view})

	select {
	case input := <-s.model.moves:
		return input, nil
	case <-s.model.quit:
		return "", kalah.ErrQuit
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Rejected shows why the input was not accepted
func (s *Session) Rejected(view kalah.View, input string, err error) {
	s.sender.Send(rejectedMsg{input: input, err: err})
}

// OnEvent forwards game events to the model
func (s *Session) OnEvent(event kalah.GameEvent) {
	s.sender.Send(eventMsg{event: event})
}

// Quit asks the program to exit
func (s *Session) Quit() {
	s.sender.Send(QuitMsg{})
}

// Done is closed once the player has quit
func (s *Session) Done() <-chan struct{} {
	return s.model.quit
}
