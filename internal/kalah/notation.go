package kalah

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var notationPattern = regexp.MustCompile(`^\s*<\s*(\d+(\s*,\s*\d+)+)\s*>\s*$`)

// Notation encodes the board as <n,firstStore,secondStore,f1..fn,s1..sn>,
// with both rows listed in their own sowing order.
func (b *Board) Notation() string {
	return b.Snapshot().Notation()
}

// Notation encodes the snapshot the same way as Board.Notation.
func (s Snapshot) Notation() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<%d,%d,%d", len(s.First.Pits), s.First.Store, s.Second.Store)
	for _, seeds := range s.First.Pits {
		fmt.Fprintf(&sb, ",%d", seeds)
	}
	for _, seeds := range s.Second.Pits {
		fmt.Fprintf(&sb, ",%d", seeds)
	}
	sb.WriteString(">")
	return sb.String()
}

// ParseNotation builds a board from the output of Notation. The pit count in
// the notation overrides rules.PitsPerPlayer.
func ParseNotation(s, firstName, secondName string, rules Rules) (*Board, error) {
	match := notationPattern.FindStringSubmatch(s)
	if match == nil {
		return nil, ErrInvalidNotation
	}

	var data []int
	for _, part := range strings.Split(match[1], ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidNotation, err)
		}
		data = append(data, n)
	}

	size := data[0]
	if size == 0 || len(data) != 3+2*size {
		return nil, fmt.Errorf("%w: %d pits need %d values, got %d", ErrInvalidNotation, size, 3+2*size, len(data))
	}

	total := 0
	for _, n := range data[1:] {
		if n > MaxSeeds-total {
			return nil, fmt.Errorf("%w: more than %d seeds on the board", ErrInvalidNotation, MaxSeeds)
		}
		total += n
	}

	rules.PitsPerPlayer = size
	if rules.SeedsPerPit < 1 {
		rules.SeedsPerPit = DefaultSeedsPerPit
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotation, err)
	}

	b := NewBoard(firstName, secondName, rules)
	first, second := b.players[First], b.players[Second]
	b.pits[first.store].seeds = data[1]
	b.pits[second.store].seeds = data[2]
	for i := 0; i < size; i++ {
		b.pits[first.pits[i]].seeds = data[3+i]
		b.pits[second.pits[i]].seeds = data[3+size+i]
	}
	return b, nil
}
