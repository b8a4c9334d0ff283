// Package kalah implements the rules engine for two-player Kalah.
//
// A Board owns an arena of pits addressed by PitID. Each Player holds the IDs
// of its ordinary pits and its store; the next and opposite links between pits
// are IDs into the same arena, so the sowing cycle and the mirrored pairs never
// create ownership between pits.
//
// # Basic Usage
//
//	board := kalah.CreateBoard("Alice", "Bob")
//	g := kalah.NewGame(board)
//	pit, err := g.Select("3")
//	if err != nil {
//	    // ErrInvalidPitNumber or ErrEmptyPitSelected, ask again
//	}
//	turn, err := g.PlayTurn(pit)
//
// Game.Play drives a whole game through the Mover interface, asking the active
// player's mover for input, reporting rejected input back to it and stopping
// when one row is empty.
//
// # Events
//
// Every game publishes GameStartEvent, TurnEvent and GameEndEvent on its
// EventBus. Events carry a Snapshot of the board copied at publish time, so
// subscribers may hand them to other goroutines.
package kalah
