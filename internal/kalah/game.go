package kalah

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/kalah/internal/gameid"
)

// Move records one played turn.
type Move struct {
	Number       int       `json:"number"`
	Seat         Seat      `json:"seat"`
	Player       string    `json:"player"`
	Pit          int       `json:"pit"` // 1-based, as typed by the player
	Sown         int       `json:"sown"`
	Landing      PitID     `json:"landing"`
	LandingKind  PitKind   `json:"landing_kind"`
	LandingOwner Seat      `json:"landing_owner"`
	LandingIndex int       `json:"landing_index"` // -1 when landing in a store
	Captured     int       `json:"captured"`
	ExtraTurn    bool      `json:"extra_turn"`
	At           time.Time `json:"at"`
}

// TurnResult is what PlayTurn reports back to the caller.
type TurnResult struct {
	Move     Move
	Next     *Player
	Finished bool
	Result   GameResult
}

// View is the read-only state handed to a Mover.
type View struct {
	GameID string
	Active Seat
	Player string
	Rules  Rules
	Board  Snapshot
	Moves  int
}

// Mover supplies raw pit selections for one player. NextMove blocks until the
// player has typed something; returning ErrQuit ends the game early.
type Mover interface {
	NextMove(ctx context.Context, view View) (string, error)
	Rejected(view View, input string, err error)
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger used by the engine.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithClock sets the clock used to timestamp moves and events.
func WithClock(clock quartz.Clock) Option {
	return func(g *Game) { g.clock = clock }
}

// WithEventBus publishes the game's events on an existing bus.
func WithEventBus(bus EventBus) Option {
	return func(g *Game) { g.bus = bus }
}

// WithID sets the game ID instead of generating one.
func WithID(id string) Option {
	return func(g *Game) { g.id = id }
}

// Game is the turn engine: it owns the board for the length of one game and
// applies turns strictly one after another.
type Game struct {
	id     string
	board  *Board
	active Seat
	result GameResult

	started    bool
	startedAt  time.Time
	finishedAt time.Time
	moves      []Move

	// total seeds on the board when the engine took it over
	startingSeeds int
	// set once a turn breaks seed conservation; no further turns are played
	failed error

	logger *log.Logger
	clock  quartz.Clock
	bus    EventBus
}

// NewGame creates a game on the board. The first player moves first.
func NewGame(board *Board, opts ...Option) *Game {
	g := &Game{
		board:         board,
		active:        First,
		startingSeeds: board.TotalSeeds(),
		logger:        log.New(io.Discard),
		clock:         quartz.NewReal(),
		bus:           NewEventBus(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.id == "" {
		g.id = gameid.Generate()
	}
	g.logger = g.logger.WithPrefix("engine").With("game", g.id)
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Board returns the board being played.
func (g *Game) Board() *Board { return g.board }

// Rules returns the board's rules.
func (g *Game) Rules() Rules { return g.board.rules }

// EventBus returns the bus the game publishes on.
func (g *Game) EventBus() EventBus { return g.bus }

// ActivePlayer returns the player whose turn it is.
func (g *Game) ActivePlayer() *Player { return g.board.players[g.active] }

// Opponent returns the player across from p.
func (g *Game) Opponent(p *Player) *Player { return g.board.Opponent(p) }

// Result returns the final result, or InProgress.
func (g *Game) Result() GameResult { return g.result }

// IsFinished reports whether the game has been finalized.
func (g *Game) IsFinished() bool { return g.result != InProgress }

// StartedAt returns when Start was first called.
func (g *Game) StartedAt() time.Time { return g.startedAt }

// FinishedAt returns when the game was finalized.
func (g *Game) FinishedAt() time.Time { return g.finishedAt }

// Moves returns a copy of the turns played so far.
func (g *Game) Moves() []Move {
	moves := make([]Move, len(g.moves))
	copy(moves, g.moves)
	return moves
}

// View returns the read-only state for the active player.
func (g *Game) View() View {
	return View{
		GameID: g.id,
		Active: g.active,
		Player: g.ActivePlayer().name,
		Rules:  g.board.rules,
		Board:  g.board.Snapshot(),
		Moves:  len(g.moves),
	}
}

// NextPlayer decides who moves after a turn that ended in the landing pit:
// the active player again if it is their own store, otherwise the opponent.
func (g *Game) NextPlayer(landing PitID) *Player {
	active := g.ActivePlayer()
	pit := g.board.Pit(landing)
	if pit.IsStore() && pit.owner == active.seat {
		return active
	}
	return g.Opponent(active)
}

// Start publishes the GameStartEvent. A board that is already over, such as a
// parsed end position, is finalized straight away. Calling Start again does
// nothing.
func (g *Game) Start() {
	if g.started {
		return
	}
	g.started = true
	g.startedAt = g.clock.Now()

	first, second := g.board.FirstPlayer(), g.board.SecondPlayer()
	g.logger.Info("Game started", "first", first.name, "second", second.name,
		"pits", g.board.rules.PitsPerPlayer, "seeds", g.board.rules.SeedsPerPit,
		"sweep", g.board.rules.Sweep)
	g.bus.Publish(GameStartEvent{
		GameID:    g.id,
		First:     first.name,
		Second:    second.name,
		Rules:     g.board.rules,
		Board:     g.board.Snapshot(),
		timestamp: g.startedAt,
	})

	if IsGameOver(g.board) {
		g.finish()
	}
}

// Select validates raw input for the active player.
func (g *Game) Select(raw string) (PitID, error) {
	if g.failed != nil {
		return NoPit, g.failed
	}
	if g.IsFinished() {
		return NoPit, ErrGameOver
	}
	return ValidateSelection(g.ActivePlayer(), raw)
}

// PlayTurn sows from the active player's pit, applies a capture if the last
// seed allows one, hands the turn to the next player and finalizes the game
// when a row is empty.
func (g *Game) PlayTurn(pit PitID) (TurnResult, error) {
	g.Start()
	if g.failed != nil {
		return TurnResult{}, g.failed
	}
	if g.IsFinished() {
		return TurnResult{}, ErrGameOver
	}

	player := g.ActivePlayer()
	if !player.Owns(pit) {
		return TurnResult{}, ErrNotYourPit
	}
	selected := g.board.Pit(pit)
	if selected.Empty() {
		return TurnResult{}, ErrEmptyPitSelected
	}
	sown := selected.Seeds()

	landingID := player.Sow(pit)
	landing := g.board.Pit(landingID)

	captured := 0
	if landing.Kind() == Ordinary && player.CanCapture(landingID) {
		captured = player.Capture(landingID)
	}

	next := g.NextPlayer(landingID)
	move := Move{
		Number:       len(g.moves) + 1,
		Seat:         player.seat,
		Player:       player.name,
		Pit:          selected.index + 1,
		Sown:         sown,
		Landing:      landingID,
		LandingKind:  landing.kind,
		LandingOwner: landing.owner,
		LandingIndex: landing.index,
		Captured:     captured,
		ExtraTurn:    next == player,
		At:           g.clock.Now(),
	}
	if err := g.validateSeedConservation(); err != nil {
		g.logger.Error("Seed conservation violation detected!", "error", err)
		g.failed = err
		return TurnResult{}, err
	}
	g.moves = append(g.moves, move)

	g.logger.Debug("Turn played",
		"player", player.name,
		"pit", move.Pit,
		"sown", sown,
		"landing", landingID,
		"captured", captured,
		"extraTurn", move.ExtraTurn)

	g.active = next.seat
	g.bus.Publish(TurnEvent{
		GameID:    g.id,
		Move:      move,
		Next:      next.seat,
		NextName:  next.name,
		Board:     g.board.Snapshot(),
		timestamp: move.At,
	})

	result := TurnResult{Move: move, Next: next}
	if IsGameOver(g.board) {
		g.finish()
		result.Finished = true
		result.Result = g.result
	}
	return result, nil
}

// Play runs the game to the end, asking each player's mover for a pit in
// turn. Input that fails validation is reported back through Rejected and the
// same mover is asked again.
func (g *Game) Play(ctx context.Context, first, second Mover) (GameResult, error) {
	movers := [2]Mover{First: first, Second: second}

	g.Start()
	for !g.IsFinished() {
		if err := ctx.Err(); err != nil {
			return InProgress, err
		}

		pit, err := g.ask(ctx, movers[g.active])
		if err != nil {
			g.logger.Info("Game stopped", "player", g.ActivePlayer().name, "error", err)
			return InProgress, err
		}

		if _, err := g.PlayTurn(pit); err != nil {
			return InProgress, err
		}
	}
	return g.result, nil
}

func (g *Game) ask(ctx context.Context, mover Mover) (PitID, error) {
	player := g.ActivePlayer()
	for {
		view := g.View()
		raw, err := mover.NextMove(ctx, view)
		if err != nil {
			return NoPit, err
		}

		pit, err := ValidateSelection(player, raw)
		if err == nil {
			return pit, nil
		}
		if !errors.Is(err, ErrInvalidPitNumber) && !errors.Is(err, ErrEmptyPitSelected) {
			return NoPit, err
		}
		g.logger.Debug("Rejected selection", "player", player.name, "input", raw, "error", err)
		mover.Rejected(view, raw, err)
	}
}

func (g *Game) finish() {
	g.result = Finalize(g.board, g.board.rules.Sweep)
	g.finishedAt = g.clock.Now()

	var winner string
	if seat, ok := g.result.Winner(); ok {
		winner = g.board.players[seat].name
	}

	g.logger.Info("Game over",
		"result", g.result,
		"winner", winner,
		"firstStore", g.board.FirstPlayer().Score(),
		"secondStore", g.board.SecondPlayer().Score(),
		"moves", len(g.moves))

	g.bus.Publish(GameEndEvent{
		GameID:    g.id,
		Result:    g.result,
		Winner:    winner,
		Board:     g.board.Snapshot(),
		Moves:     len(g.moves),
		timestamp: g.finishedAt,
	})
}

// validateSeedConservation checks that sowing and capturing never created or
// lost a seed.
func (g *Game) validateSeedConservation() error {
	if total := g.board.TotalSeeds(); total != g.startingSeeds {
		return fmt.Errorf("seed conservation violation: expected %d seeds, found %d", g.startingSeeds, total)
	}
	return nil
}
