package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/kalah/internal/config"
	"github.com/lox/kalah/internal/console"
	"github.com/lox/kalah/internal/kalah"
	"github.com/lox/kalah/internal/record"
	"github.com/lox/kalah/internal/render"
	"github.com/lox/kalah/internal/spectate"
	"github.com/lox/kalah/internal/tui"
)

const (
	defaultFirstName  = "Player 1"
	defaultSecondName = "Player 2"
)

// PlayCmd plays one game between two people sharing the terminal
type PlayCmd struct {
	First    string `help:"Name of the player who moves first"`
	Second   string `help:"Name of the second player"`
	Config   string `short:"c" type:"path" default:"kalah.hcl" help:"HCL configuration file"`
	TUI      bool   `name:"tui" help:"Use the full screen interface"`
	Sweep    bool   `help:"Move remaining seeds into their owner's store when the game ends"`
	Record   string `type:"path" help:"Write the game record to this file"`
	Spectate string `placeholder:"ADDR" help:"Serve a read-only websocket feed of the game, e.g. :8080"`
	Position string `help:"Start from a board in notation, e.g. <6,0,0,4,4,4,4,4,4,4,4,4,4,4,4>"`
	Debug    bool   `help:"Enable debug logging"`
	LogFile  string `type:"path" help:"Log file (default from config)"`
}

func (c *PlayCmd) Run(out io.Writer) error {
	cfg, err := c.settings()
	if err != nil {
		return err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	logger, closer, err := openLogger(cfg.Log.File, level)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	ctx, cancel := signalContext(context.Background(), logger)
	defer cancel()

	if c.TUI {
		return c.runTUI(ctx, cfg, out, logger)
	}

	con, err := console.New(out, render.New(out), console.Options{Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if err := con.Close(); err != nil {
			logger.Error("Failed to close console", "error", err)
		}
	}()
	return c.runConsole(ctx, cfg, con, logger)
}

// settings loads the config file and environment, then applies the flags
func (c *PlayCmd) settings() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	if c.First != "" {
		cfg.Players.First = c.First
	}
	if c.Second != "" {
		cfg.Players.Second = c.Second
	}
	if c.Sweep {
		cfg.Rules.Sweep = kalah.SweepRemaining.String()
	}
	if c.Spectate != "" {
		cfg.Spectate.Address = c.Spectate
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	if c.Debug {
		cfg.Log.Level = log.DebugLevel.String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *PlayCmd) runConsole(ctx context.Context, cfg *config.Config, con *console.Console, logger *log.Logger) error {
	first, second, err := con.AskNames(ctx, cfg.Players.First, cfg.Players.Second)
	if errors.Is(err, kalah.ErrQuit) {
		return nil
	}
	if err != nil {
		return err
	}

	game, err := c.newGame(cfg, first, second, logger)
	if err != nil {
		return err
	}
	game.EventBus().Subscribe(con)

	return c.session(ctx, cfg, game, logger, func(ctx context.Context) error {
		_, err := game.Play(ctx, con, con)
		return err
	})
}

func (c *PlayCmd) runTUI(ctx context.Context, cfg *config.Config, out io.Writer, logger *log.Logger) error {
	first, second := tuiNames(cfg.Players.First, cfg.Players.Second)
	game, err := c.newGame(cfg, first, second, logger)
	if err != nil {
		return err
	}

	return c.session(ctx, cfg, game, logger, func(ctx context.Context) error {
		model := tui.NewModel(render.New(out), logger)
		program, session := tui.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		game.EventBus().Subscribe(session)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			_, err := game.Play(gctx, session, session)
			if err != nil && !errors.Is(err, kalah.ErrQuit) {
				session.Quit()
			}
			return err
		})
		g.Go(func() error {
			_, err := program.Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		})
		return g.Wait()
	})
}

// session plays the game next to the optional spectator server and writes
// the record once play returns. The spectator server stops with the game.
func (c *PlayCmd) session(ctx context.Context, cfg *config.Config, game *kalah.Game, logger *log.Logger, play func(context.Context) error) error {
	bus := game.EventBus()

	var writer record.Writer = record.NoOpWriter{}
	if c.Record != "" {
		writer = record.NewFileWriter(c.Record)
	}
	recorder := record.NewRecorder(writer, logger)
	bus.Subscribe(recorder)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if addr := cfg.Spectate.Address; addr != "" {
		var lc net.ListenConfig
		ln, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", addr, err)
		}
		srv := spectate.NewServer(spectate.WithLogger(logger))
		bus.Subscribe(srv)
		g.Go(func() error { return srv.Serve(gctx, ln) })
	}

	g.Go(func() error {
		defer cancel()
		err := play(gctx)
		if errors.Is(err, kalah.ErrQuit) || errors.Is(err, context.Canceled) {
			logger.Info("Game abandoned", "game", game.ID(), "moves", len(game.Moves()))
			return nil
		}
		if err == nil {
			logger.Info("Game finished", "game", game.ID(), "result", game.Result())
		}
		return err
	})

	err := g.Wait()
	if ferr := recorder.Flush(); ferr != nil && err == nil {
		err = fmt.Errorf("failed to write record: %w", ferr)
	}
	return err
}

func (c *PlayCmd) newGame(cfg *config.Config, first, second string, logger *log.Logger) (*kalah.Game, error) {
	rules, err := cfg.KalahRules()
	if err != nil {
		return nil, err
	}
	board, err := newBoard(c.Position, first, second, rules)
	if err != nil {
		return nil, err
	}
	return kalah.NewGame(board, kalah.WithLogger(logger)), nil
}

// newBoard starts a fresh board, or the given position when there is one
func newBoard(position, first, second string, rules kalah.Rules) (*kalah.Board, error) {
	if position == "" {
		return kalah.NewBoard(first, second, rules), nil
	}
	return kalah.ParseNotation(position, first, second, rules)
}

// tuiNames fills in names the full screen interface cannot prompt for
func tuiNames(first, second string) (string, string) {
	if first == "" {
		first = defaultFirstName
	}
	if second == "" {
		second = defaultSecondName
	}
	if first == second {
		first = defaultFirstName
		if second == first {
			second = defaultSecondName
		}
	}
	return first, second
}
