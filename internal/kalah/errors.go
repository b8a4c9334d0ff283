package kalah

import "errors"

var (
	// ErrInvalidPitNumber is returned when a selection is not a pit number in
	// [1, pits per player].
	ErrInvalidPitNumber = errors.New("invalid pit number, please select one of your pits")
	// ErrEmptyPitSelected is returned when the selected pit holds no seeds.
	ErrEmptyPitSelected = errors.New("the selected pit is empty, please select another pit")
	// ErrNotYourPit is returned by PlayTurn for a pit outside the active
	// player's row.
	ErrNotYourPit = errors.New("pit does not belong to the active player")
	// ErrGameOver is returned when a turn is played on a finished game.
	ErrGameOver = errors.New("game is over")
	// ErrQuit is returned by a Mover that gives up, and by Game.Play after it.
	ErrQuit = errors.New("player quit")
	// ErrInvalidNotation is returned when a board notation cannot be parsed.
	ErrInvalidNotation = errors.New("invalid board notation")
)
