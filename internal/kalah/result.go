package kalah

import "fmt"

// GameResult is the outcome of a game. The zero value means the game has not
// been finalized yet.
type GameResult int

const (
	InProgress GameResult = iota
	Draw
	FirstPlayerWon
	SecondPlayerWon
)

// String returns the string representation of the result
func (r GameResult) String() string {
	switch r {
	case InProgress:
		return "in_progress"
	case Draw:
		return "draw"
	case FirstPlayerWon:
		return "first_player_won"
	case SecondPlayerWon:
		return "second_player_won"
	default:
		return fmt.Sprintf("GameResult(%d)", int(r))
	}
}

// ParseGameResult parses the String form of a result.
func ParseGameResult(s string) (GameResult, error) {
	for _, r := range []GameResult{InProgress, Draw, FirstPlayerWon, SecondPlayerWon} {
		if r.String() == s {
			return r, nil
		}
	}
	return InProgress, fmt.Errorf("unknown game result %q", s)
}

// Winner returns the winning seat, or false for a draw or unfinished game.
func (r GameResult) Winner() (Seat, bool) {
	switch r {
	case FirstPlayerWon:
		return First, true
	case SecondPlayerWon:
		return Second, true
	default:
		return First, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r GameResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *GameResult) UnmarshalText(text []byte) error {
	result, err := ParseGameResult(string(text))
	if err != nil {
		return err
	}
	*r = result
	return nil
}
