package kalah

import (
	"regexp"
	"strconv"
)

var pitNumberPattern = regexp.MustCompile(`^\d+$`)

// ValidateSelection turns a 1-based pit number typed by the player into the ID
// of one of their ordinary pits.
func ValidateSelection(player *Player, raw string) (PitID, error) {
	if !pitNumberPattern.MatchString(raw) {
		return NoPit, ErrInvalidPitNumber
	}

	number, err := strconv.Atoi(raw)
	if err != nil {
		// only overflow gets here
		return NoPit, ErrInvalidPitNumber
	}
	if number < 1 || number > len(player.pits) {
		return NoPit, ErrInvalidPitNumber
	}

	id := player.pits[number-1]
	if player.board.Pit(id).Empty() {
		return NoPit, ErrEmptyPitSelected
	}
	return id, nil
}
