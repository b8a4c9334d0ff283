package main

import (
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/lox/kalah/internal/kalah"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play a game of Kalah at this terminal"`
	Replay   ReplayCmd        `cmd:"" help:"Replay a recorded game"`
	Notation NotationCmd      `cmd:"" help:"Print a board and its notation"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("kalah"),
		kong.Description("Two player Kalah (Mancala) for the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
			"first":   defaultFirstName,
			"second":  defaultSecondName,
			"pits":    strconv.Itoa(kalah.DefaultPitsPerPlayer),
			"seeds":   strconv.Itoa(kalah.DefaultSeedsPerPit),
		},
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
