package render

import (
	"fmt"

	"github.com/lox/kalah/internal/kalah"
)

// Describe returns a one line summary of a game event
func Describe(event kalah.GameEvent) string {
	switch e := event.(type) {
	case kalah.GameStartEvent:
		return fmt.Sprintf("Game %s: %s vs %s (%d pits, %d seeds, sweep %s)",
			e.GameID, e.First, e.Second, e.Rules.PitsPerPlayer, e.Rules.SeedsPerPit, e.Rules.Sweep)
	case kalah.TurnEvent:
		return DescribeMove(e.Move, e.Board)
	case kalah.GameEndEvent:
		return Outcome(e.Result, e.Board)
	default:
		return fmt.Sprintf("unknown event %s", event.EventType())
	}
}

// DescribeMove explains where a move's last seed landed
func DescribeMove(m kalah.Move, board kalah.Snapshot) string {
	owner := board.Side(m.LandingOwner).Name

	var landing string
	if m.LandingKind == kalah.Store {
		landing = fmt.Sprintf("%s's store", owner)
	} else {
		landing = fmt.Sprintf("%s's pit %d", owner, m.LandingIndex+1)
	}

	msg := fmt.Sprintf("%s sowed %d from pit %d, last seed in %s", m.Player, m.Sown, m.Pit, landing)
	if m.Captured > 0 {
		msg += fmt.Sprintf(", captured %d", m.Captured)
	}
	if m.ExtraTurn {
		msg += ", extra turn"
	}
	return msg
}

// Outcome announces the result with the final store counts
func Outcome(result kalah.GameResult, board kalah.Snapshot) string {
	first, second := board.First, board.Second
	switch result {
	case kalah.Draw:
		return fmt.Sprintf("Game over: draw, %d to %d", first.Store, second.Store)
	case kalah.FirstPlayerWon:
		return fmt.Sprintf("Game over: %s wins %d to %d", first.Name, first.Store, second.Store)
	case kalah.SecondPlayerWon:
		return fmt.Sprintf("Game over: %s wins %d to %d", second.Name, second.Store, first.Store)
	default:
		return "Game in progress"
	}
}
