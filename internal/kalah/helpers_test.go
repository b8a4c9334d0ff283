package kalah

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedMover replays a fixed list of inputs and records rejections.
type scriptedMover struct {
	inputs   []string
	index    int
	rejected []error
}

func (m *scriptedMover) NextMove(ctx context.Context, view View) (string, error) {
	if m.index >= len(m.inputs) {
		return "", ErrQuit
	}
	input := m.inputs[m.index]
	m.index++
	return input, nil
}

func (m *scriptedMover) Rejected(view View, input string, err error) {
	m.rejected = append(m.rejected, err)
}

// lowestPitMover always plays the first non-empty pit of its row.
type lowestPitMover struct{}

func (lowestPitMover) NextMove(ctx context.Context, view View) (string, error) {
	for i, seeds := range view.Board.Side(view.Active).Pits {
		if seeds > 0 {
			return strconv.Itoa(i + 1), nil
		}
	}
	return "", ErrQuit
}

func (lowestPitMover) Rejected(View, string, error) {}

// highestPitMover always plays the last non-empty pit of its row.
type highestPitMover struct{}

func (highestPitMover) NextMove(ctx context.Context, view View) (string, error) {
	pits := view.Board.Side(view.Active).Pits
	for i := len(pits) - 1; i >= 0; i-- {
		if pits[i] > 0 {
			return strconv.Itoa(i + 1), nil
		}
	}
	return "", ErrQuit
}

func (highestPitMover) Rejected(View, string, error) {}

// eventRecorder captures published events.
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) types() []EventType {
	types := make([]EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.EventType()
	}
	return types
}

func mustParse(t *testing.T, notation string) *Board {
	t.Helper()
	b, err := ParseNotation(notation, "Alice", "Bob", DefaultRules())
	require.NoError(t, err)
	return b
}

// setSeeds overwrites one pit's count for building positions by hand.
func setSeeds(b *Board, id PitID, seeds int) {
	b.pits[id].seeds = seeds
}

func clearRow(p *Player) {
	for _, id := range p.pits {
		p.board.Pit(id).TakeAll()
	}
}
