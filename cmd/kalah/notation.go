package main

import (
	"fmt"
	"io"

	"github.com/lox/kalah/internal/kalah"
	"github.com/lox/kalah/internal/render"
)

// NotationCmd prints a board and the notation that recreates it
type NotationCmd struct {
	Position string `help:"Board in notation; a fresh board when empty"`
	First    string `default:"${first}" help:"Name of the first player"`
	Second   string `default:"${second}" help:"Name of the second player"`
	Pits     int    `default:"${pits}" help:"Ordinary pits per player for a fresh board"`
	Seeds    int    `default:"${seeds}" help:"Seeds per pit for a fresh board"`
	Plain    bool   `help:"Draw the board without colour"`
}

func (c *NotationCmd) Run(out io.Writer) error {
	rules := kalah.DefaultRules()
	rules.PitsPerPlayer = c.Pits
	rules.SeedsPerPit = c.Seeds
	if err := rules.Validate(); err != nil {
		return err
	}

	board, err := newBoard(c.Position, c.First, c.Second, rules)
	if err != nil {
		return err
	}

	renderer := render.New(out)
	if c.Plain {
		renderer = render.Plain()
	}
	fmt.Fprintln(out, renderer.Board(board.Snapshot()))
	fmt.Fprintln(out)
	fmt.Fprintln(out, board.Notation())
	return nil
}
