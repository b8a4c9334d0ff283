package kalah

import (
	"fmt"
	"strings"
)

const (
	// DefaultPitsPerPlayer is the number of ordinary pits on each side.
	DefaultPitsPerPlayer = 6
	// DefaultSeedsPerPit is the number of seeds each ordinary pit starts with.
	DefaultSeedsPerPit = 4
	// MaxSeeds bounds the seeds on one board, stores included.
	MaxSeeds = 1 << 20
)

// SweepPolicy decides what happens to seeds left in ordinary pits when the
// game ends.
type SweepPolicy int

const (
	// SweepNone leaves remaining seeds where they are; only stores are compared.
	SweepNone SweepPolicy = iota
	// SweepRemaining moves every player's remaining seeds into their own store
	// before the stores are compared.
	SweepRemaining
)

// String returns the string representation of the policy
func (s SweepPolicy) String() string {
	switch s {
	case SweepNone:
		return "none"
	case SweepRemaining:
		return "remaining"
	default:
		return fmt.Sprintf("SweepPolicy(%d)", int(s))
	}
}

// ParseSweepPolicy parses "none" or "remaining".
func ParseSweepPolicy(s string) (SweepPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SweepNone, nil
	case "remaining", "sweep":
		return SweepRemaining, nil
	default:
		return SweepNone, fmt.Errorf("unknown sweep policy %q", s)
	}
}

// Rules holds the board dimensions and the end-of-game policy.
type Rules struct {
	PitsPerPlayer int
	SeedsPerPit   int
	Sweep         SweepPolicy
}

// DefaultRules returns the standard six pits of four seeds without a sweep.
func DefaultRules() Rules {
	return Rules{
		PitsPerPlayer: DefaultPitsPerPlayer,
		SeedsPerPit:   DefaultSeedsPerPit,
		Sweep:         SweepNone,
	}
}

// Validate checks that the rules describe a playable board.
func (r Rules) Validate() error {
	if r.PitsPerPlayer < 1 {
		return fmt.Errorf("pits per player must be positive, got %d", r.PitsPerPlayer)
	}
	if r.SeedsPerPit < 1 {
		return fmt.Errorf("seeds per pit must be positive, got %d", r.SeedsPerPit)
	}
	if r.PitsPerPlayer > MaxSeeds/2 || r.SeedsPerPit > MaxSeeds/(2*r.PitsPerPlayer) {
		return fmt.Errorf("%d pits of %d seeds exceed %d seeds per board", 2*r.PitsPerPlayer, r.SeedsPerPit, MaxSeeds)
	}
	if r.Sweep != SweepNone && r.Sweep != SweepRemaining {
		return fmt.Errorf("invalid sweep policy %d", int(r.Sweep))
	}
	return nil
}

// CycleLength is the number of pits in the sowing cycle.
func (r Rules) CycleLength() int {
	return 2 * (r.PitsPerPlayer + 1)
}
