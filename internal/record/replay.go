package record

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/lox/kalah/internal/kalah"
)

// Replay rebuilds the game by playing every recorded move through the engine
// and checks the outcome against the stored result and stores. Options are
// passed to kalah.NewGame, so callers can subscribe to the replayed events.
func Replay(r *Record, opts ...kalah.Option) (*kalah.Game, error) {
	rules, err := r.Rules()
	if err != nil {
		return nil, err
	}
	want, err := r.GameResult()
	if err != nil {
		return nil, err
	}

	var board *kalah.Board
	if r.Position != "" {
		board, err = kalah.ParseNotation(r.Position, r.First, r.Second, rules)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
	} else {
		board = kalah.NewBoard(r.First, r.Second, rules)
	}

	game := kalah.NewGame(board, append(slices.Clip(opts), kalah.WithID(r.ID))...)
	game.Start()

	for i, m := range r.Moves {
		seat, err := kalah.ParseSeat(m.Seat)
		if err != nil {
			return game, fmt.Errorf("%w: move %d: %v", ErrInvalidRecord, i+1, err)
		}
		if game.IsFinished() {
			return game, fmt.Errorf("%w: move %d played after the game ended", ErrInvalidRecord, i+1)
		}
		if active := game.ActivePlayer().Seat(); seat != active {
			return game, fmt.Errorf("%w: move %d by %s but %s is to move", ErrInvalidRecord, i+1, seat, active)
		}

		pit, err := game.Select(strconv.Itoa(m.Pit))
		if err != nil {
			return game, fmt.Errorf("%w: move %d: pit %d: %v", ErrInvalidRecord, i+1, m.Pit, err)
		}
		if _, err := game.PlayTurn(pit); err != nil {
			return game, fmt.Errorf("%w: move %d: %v", ErrInvalidRecord, i+1, err)
		}
	}

	if got := game.Result(); got != want {
		return game, fmt.Errorf("%w: replay ended %s, record says %s", ErrInvalidRecord, got, want)
	}
	if game.IsFinished() {
		first := game.Board().FirstPlayer().Score()
		second := game.Board().SecondPlayer().Score()
		if first != r.FirstStore || second != r.SecondStore {
			return game, fmt.Errorf("%w: replay stores %d-%d, record says %d-%d",
				ErrInvalidRecord, first, second, r.FirstStore, r.SecondStore)
		}
	}
	return game, nil
}
