package main

import (
	"fmt"
	"io"

	"github.com/lox/kalah/internal/kalah"
	"github.com/lox/kalah/internal/record"
	"github.com/lox/kalah/internal/render"
)

// ReplayCmd plays a game record back through the engine
type ReplayCmd struct {
	File  string `arg:"" type:"existingfile" help:"Game record written by 'kalah play --record'"`
	Plain bool   `help:"Draw boards without colour"`
}

func (c *ReplayCmd) Run(out io.Writer) error {
	r, err := record.Load(c.File)
	if err != nil {
		return err
	}

	renderer := render.New(out)
	if c.Plain {
		renderer = render.Plain()
	}

	if started, err := r.StartTime(); err == nil {
		fmt.Fprintf(out, "Played %s\n", started.UTC().Format("2006-01-02 15:04 MST"))
	}

	bus := kalah.NewEventBus()
	bus.Subscribe(kalah.EventSubscriberFunc(func(event kalah.GameEvent) {
		switch e := event.(type) {
		case kalah.GameStartEvent:
			fmt.Fprintln(out, render.Describe(e))
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderer.WithActive(kalah.First).Board(e.Board))
			fmt.Fprintln(out)
		case kalah.TurnEvent:
			fmt.Fprintf(out, "%d. %s\n\n", e.Move.Number, render.Describe(e))
			fmt.Fprintln(out, renderer.WithActive(e.Next).Board(e.Board))
			fmt.Fprintln(out)
		}
	}))

	game, err := record.Replay(r, kalah.WithEventBus(bus))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, render.Outcome(game.Result(), game.Board().Snapshot()))
	return nil
}
