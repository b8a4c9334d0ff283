package kalah

import "fmt"

// Board owns both players and the arena holding every pit.
type Board struct {
	rules   Rules
	pits    []Pit
	players [2]*Player
}

// CreateBoard builds a board with the default rules.
func CreateBoard(firstName, secondName string) *Board {
	return NewBoard(firstName, secondName, DefaultRules())
}

// NewBoard builds a board for the given rules: each player gets their row and
// store, opposite pits are paired across the midline and all pits are threaded
// into one sowing cycle. The rules must be valid.
func NewBoard(firstName, secondName string, rules Rules) *Board {
	if err := rules.Validate(); err != nil {
		panic("kalah: " + err.Error())
	}

	b := &Board{
		rules: rules,
		pits:  make([]Pit, 0, rules.CycleLength()),
	}
	b.players[First] = newPlayer(b, First, firstName)
	b.players[Second] = newPlayer(b, Second, secondName)

	b.connectOppositePits()
	b.formCycle()
	return b
}

func (b *Board) addPit(p Pit) PitID {
	p.id = PitID(len(b.pits))
	p.next = NoPit
	b.pits = append(b.pits, p)
	return p.id
}

// connectOppositePits pairs pit i of the first row with pit n-1-i of the
// second row, in both directions.
func (b *Board) connectOppositePits() {
	first, second := b.players[First], b.players[Second]
	n := len(first.pits)
	for i := 0; i < n; i++ {
		a, o := first.pits[i], second.pits[n-1-i]
		b.pits[a].opposite = o
		b.pits[o].opposite = a
	}
}

// formCycle links each store to the start of the other player's row.
func (b *Board) formCycle() {
	first, second := b.players[First], b.players[Second]
	b.pits[first.store].next = second.pits[0]
	b.pits[second.store].next = first.pits[0]
}

// Rules returns the rules the board was built with.
func (b *Board) Rules() Rules { return b.rules }

// FirstPlayer returns the player who moves first.
func (b *Board) FirstPlayer() *Player { return b.players[First] }

// SecondPlayer returns the other player.
func (b *Board) SecondPlayer() *Player { return b.players[Second] }

// Player returns the player in the given seat.
func (b *Board) Player(seat Seat) *Player { return b.players[seat] }

// Opponent returns the player across the board from p.
func (b *Board) Opponent(p *Player) *Player { return b.players[p.seat.Other()] }

// Pit returns the pit with the given ID. It panics on an unknown ID.
func (b *Board) Pit(id PitID) *Pit {
	pit := b.lookup(id)
	if pit == nil {
		panic(fmt.Sprintf("kalah: unknown pit %d", id))
	}
	return pit
}

func (b *Board) lookup(id PitID) *Pit {
	if id < 0 || int(id) >= len(b.pits) {
		return nil
	}
	return &b.pits[id]
}

// NumPits returns the number of pits in the arena.
func (b *Board) NumPits() int { return len(b.pits) }

// TotalSeeds counts the seeds on the whole board, stores included.
func (b *Board) TotalSeeds() int {
	total := 0
	for i := range b.pits {
		total += b.pits[i].seeds
	}
	return total
}

// IsGameOver reports whether either player's ordinary pits are all empty.
func IsGameOver(b *Board) bool {
	return b.players[First].NoSeedsLeft() || b.players[Second].NoSeedsLeft()
}

// Finalize decides the result by comparing the stores. With SweepRemaining the
// seeds left in each row are first moved into that row's store.
func Finalize(b *Board, policy SweepPolicy) GameResult {
	if policy == SweepRemaining {
		b.players[First].sweep()
		b.players[Second].sweep()
	}

	first := b.players[First].Score()
	second := b.players[Second].Score()
	switch {
	case first == second:
		return Draw
	case first > second:
		return FirstPlayerWon
	default:
		return SecondPlayerWon
	}
}

// SideSnapshot is a copy of one player's side of the board.
type SideSnapshot struct {
	Name  string `json:"name"`
	Pits  []int  `json:"pits"`
	Store int    `json:"store"`
}

// Snapshot is a copy of the seed counts, detached from the board.
type Snapshot struct {
	First  SideSnapshot `json:"first"`
	Second SideSnapshot `json:"second"`
}

// Side returns the snapshot of the given seat.
func (s Snapshot) Side(seat Seat) SideSnapshot {
	if seat == Second {
		return s.Second
	}
	return s.First
}

// Snapshot copies the current seed counts.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		First:  b.sideSnapshot(b.players[First]),
		Second: b.sideSnapshot(b.players[Second]),
	}
}

func (b *Board) sideSnapshot(p *Player) SideSnapshot {
	pits := make([]int, len(p.pits))
	for i, id := range p.pits {
		pits[i] = b.pits[id].seeds
	}
	return SideSnapshot{
		Name:  p.name,
		Pits:  pits,
		Store: b.pits[p.store].seeds,
	}
}
