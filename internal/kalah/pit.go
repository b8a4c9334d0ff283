package kalah

import "fmt"

// PitID addresses a pit in the board's arena.
type PitID int

// NoPit marks a missing link, such as the opposite of a store.
const NoPit PitID = -1

// PitKind distinguishes ordinary pits from stores.
type PitKind uint8

const (
	// Ordinary pits are sown into by both players and picked up by their owner.
	Ordinary PitKind = iota
	// Store pits collect seeds and only accept seeds from their owner.
	Store
)

// String returns the string representation of the pit kind
func (k PitKind) String() string {
	switch k {
	case Ordinary:
		return "ordinary"
	case Store:
		return "store"
	default:
		return fmt.Sprintf("PitKind(%d)", int(k))
	}
}

// Pit is a single seed-holding slot. The next and opposite links are set once
// by NewBoard and never change.
type Pit struct {
	id       PitID
	kind     PitKind
	owner    Seat
	index    int // position in the owner's row, or -1 for a store
	seeds    int
	next     PitID
	opposite PitID
}

// ID returns the pit's arena address.
func (p *Pit) ID() PitID { return p.id }

// Kind returns whether the pit is ordinary or a store.
func (p *Pit) Kind() PitKind { return p.kind }

// Owner returns the seat owning the pit.
func (p *Pit) Owner() Seat { return p.owner }

// Index returns the 0-based position in the owner's row, or -1 for a store.
func (p *Pit) Index() int { return p.index }

// Seeds returns the current seed count.
func (p *Pit) Seeds() int { return p.seeds }

// Next returns the following pit in sowing order.
func (p *Pit) Next() PitID { return p.next }

// Opposite returns the mirrored ordinary pit. Stores have none.
func (p *Pit) Opposite() (PitID, bool) {
	return p.opposite, p.opposite != NoPit
}

// IsStore reports whether the pit is a store.
func (p *Pit) IsStore() bool { return p.kind == Store }

// Empty reports whether the pit holds no seeds.
func (p *Pit) Empty() bool { return p.seeds == 0 }

// CanAccept reports whether the requesting seat may sow a seed into the pit.
// Anyone sows into ordinary pits; stores only take seeds from their owner.
func (p *Pit) CanAccept(requester Seat) bool {
	if p.kind == Store {
		return requester == p.owner
	}
	return true
}

// Deposit adds one seed.
func (p *Pit) Deposit() {
	p.seeds++
}

// DepositMany adds n seeds to a store.
func (p *Pit) DepositMany(n int) {
	if p.kind != Store {
		panic(fmt.Sprintf("kalah: DepositMany on %s pit %d", p.kind, p.id))
	}
	if n < 0 {
		panic(fmt.Sprintf("kalah: negative deposit %d into pit %d", n, p.id))
	}
	p.seeds += n
}

// TakeAll empties an ordinary pit and returns how many seeds it held.
func (p *Pit) TakeAll() int {
	if p.kind != Ordinary {
		panic(fmt.Sprintf("kalah: TakeAll on %s pit %d", p.kind, p.id))
	}
	seeds := p.seeds
	p.seeds = 0
	return seeds
}

// MarshalText implements encoding.TextMarshaler.
func (k PitKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PitKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ordinary":
		*k = Ordinary
	case "store":
		*k = Store
	default:
		return fmt.Errorf("unknown pit kind %q", text)
	}
	return nil
}
