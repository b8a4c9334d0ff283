package kalah

import "fmt"

// Seat identifies a player on the board. Player identity is the seat, never
// the name, so two players with the same name stay distinct.
type Seat int

const (
	// First is the player who moves first; their row is at the bottom.
	First Seat = iota
	// Second is the player across the board.
	Second
)

// Other returns the opposing seat.
func (s Seat) Other() Seat {
	if s == First {
		return Second
	}
	return First
}

// String returns the string representation of the seat
func (s Seat) String() string {
	switch s {
	case First:
		return "first"
	case Second:
		return "second"
	default:
		return fmt.Sprintf("Seat(%d)", int(s))
	}
}

// ParseSeat parses "first" or "second".
func ParseSeat(s string) (Seat, error) {
	switch s {
	case "first":
		return First, nil
	case "second":
		return Second, nil
	default:
		return First, fmt.Errorf("unknown seat %q", s)
	}
}

// Player owns a row of ordinary pits and a store. The pits live in the
// board's arena; the player only keeps their IDs.
type Player struct {
	name  string
	seat  Seat
	pits  []PitID
	store PitID
	board *Board
}

// newPlayer appends the player's pits to the board arena and chains them in
// sowing order, ending in the store.
func newPlayer(b *Board, seat Seat, name string) *Player {
	p := &Player{
		name:  name,
		seat:  seat,
		pits:  make([]PitID, 0, b.rules.PitsPerPlayer),
		board: b,
	}

	for i := 0; i < b.rules.PitsPerPlayer; i++ {
		id := b.addPit(Pit{
			kind:     Ordinary,
			owner:    seat,
			index:    i,
			seeds:    b.rules.SeedsPerPit,
			opposite: NoPit,
		})
		if i > 0 {
			b.pits[p.pits[i-1]].next = id
		}
		p.pits = append(p.pits, id)
	}

	p.store = b.addPit(Pit{
		kind:     Store,
		owner:    seat,
		index:    -1,
		opposite: NoPit,
	})
	b.pits[p.pits[len(p.pits)-1]].next = p.store

	return p
}

// Name returns the display name.
func (p *Player) Name() string { return p.name }

// Seat returns the player's seat.
func (p *Player) Seat() Seat { return p.seat }

// String returns the player's name
func (p *Player) String() string { return p.name }

// Pits returns the IDs of the ordinary pits in sowing order.
func (p *Player) Pits() []PitID {
	ids := make([]PitID, len(p.pits))
	copy(ids, p.pits)
	return ids
}

// Pit returns the ID of the ordinary pit at the 0-based index.
func (p *Player) Pit(index int) PitID {
	return p.pits[index]
}

// Store returns the ID of the player's store.
func (p *Player) Store() PitID { return p.store }

// Score returns the number of seeds in the player's store.
func (p *Player) Score() int {
	return p.board.Pit(p.store).Seeds()
}

// Owns reports whether the pit is one of the player's ordinary pits.
func (p *Player) Owns(id PitID) bool {
	pit := p.board.lookup(id)
	return pit != nil && pit.kind == Ordinary && pit.owner == p.seat
}

// RemainingSeeds counts the seeds left in the player's ordinary pits.
func (p *Player) RemainingSeeds() int {
	total := 0
	for _, id := range p.pits {
		total += p.board.pits[id].seeds
	}
	return total
}

// NoSeedsLeft reports whether every ordinary pit of the player is empty.
func (p *Player) NoSeedsLeft() bool {
	for _, id := range p.pits {
		if !p.board.pits[id].Empty() {
			return false
		}
	}
	return true
}

// Sow picks up every seed in the selected pit and drops them one at a time
// along the cycle, skipping the opponent's store. It returns the pit that
// received the last seed.
//
// The caller guarantees the pit is the player's own and not empty.
func (p *Player) Sow(selected PitID) PitID {
	current := p.board.Pit(selected)
	seeds := current.TakeAll()

	for seeds > 0 {
		current = p.board.Pit(current.next)
		if current.CanAccept(p.seat) {
			current.Deposit()
			seeds--
		}
	}
	return current.id
}

// CanCapture reports whether a turn ending in the landing pit captures: the
// pit is the player's own ordinary pit, it holds only the seed just sown and
// the opposite pit is not empty.
func (p *Player) CanCapture(landing PitID) bool {
	pit := p.board.Pit(landing)
	if pit.kind != Ordinary || pit.owner != p.seat || pit.seeds != 1 {
		return false
	}
	opposite, ok := pit.Opposite()
	return ok && !p.board.Pit(opposite).Empty()
}

// Capture moves the landing pit's seeds and its opposite's seeds into the
// player's store and returns the number moved. Guard with CanCapture.
func (p *Player) Capture(landing PitID) int {
	pit := p.board.Pit(landing)
	opposite := p.board.Pit(pit.opposite)
	captured := pit.TakeAll() + opposite.TakeAll()
	p.board.Pit(p.store).DepositMany(captured)
	return captured
}

// sweep moves the seeds left in the player's row into their store.
func (p *Player) sweep() int {
	swept := 0
	for _, id := range p.pits {
		swept += p.board.pits[id].TakeAll()
	}
	p.board.Pit(p.store).DepositMany(swept)
	return swept
}

// MarshalText implements encoding.TextMarshaler.
func (s Seat) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Seat) UnmarshalText(text []byte) error {
	seat, err := ParseSeat(string(text))
	if err != nil {
		return err
	}
	*s = seat
	return nil
}
