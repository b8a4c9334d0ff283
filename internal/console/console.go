// Package console plays Kalah on a line-oriented terminal with readline
// editing and history.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"

	"github.com/lox/kalah/internal/kalah"
	"github.com/lox/kalah/internal/render"
)

// LineReader reads one edited line at a time. *readline.Instance implements it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// Command is a word the player can type instead of a pit number
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Handler     func(view kalah.View) error
}

// Console is a Mover and EventSubscriber for two players sharing a terminal
type Console struct {
	rl       LineReader
	out      io.Writer
	renderer *render.Renderer
	styles   render.Styles
	commands map[string]*Command
	logger   *log.Logger
}

// Options configures the readline instance created by New
type Options struct {
	HistoryFile string
	Logger      *log.Logger
}

// New creates a console reading from the terminal with readline
func New(out io.Writer, renderer *render.Renderer, opts Options) (*Console, error) {
	completer := readline.NewPrefixCompleter()
	for _, name := range commandNames() {
		completer.Children = append(completer.Children, readline.PcItem(name))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     opts.HistoryFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdout:          out,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start readline: %w", err)
	}

	return NewWithReader(rl, out, renderer, opts.Logger), nil
}

// NewWithReader creates a console on an existing line reader
func NewWithReader(rl LineReader, out io.Writer, renderer *render.Renderer, logger *log.Logger) *Console {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Console{
		rl:       rl,
		out:      out,
		renderer: renderer,
		styles:   renderer.Styles(),
		logger:   logger.WithPrefix("console"),
	}
	c.initCommands()
	return c
}

// Close closes the line reader
func (c *Console) Close() error {
	return c.rl.Close()
}

func commandNames() []string {
	return []string{"board", "help", "quit"}
}

func (c *Console) initCommands() {
	c.commands = map[string]*Command{
		"board": {
			Name:        "board",
			Aliases:     []string{"b"},
			Description: "Show the board",
			Handler:     c.handleBoard,
		},
		"help": {
			Name:        "help",
			Aliases:     []string{"h", "?"},
			Description: "Show available commands",
			Handler:     c.handleHelp,
		},
		"quit": {
			Name:        "quit",
			Aliases:     []string{"q", "exit"},
			Description: "Quit the game",
			Handler:     c.handleQuit,
		},
	}

	// Add aliases to commands map
	for _, cmd := range []*Command{c.commands["board"], c.commands["help"], c.commands["quit"]} {
		for _, alias := range cmd.Aliases {
			c.commands[alias] = cmd
		}
	}
}

// AskNames prompts for whichever names are missing until both are non-empty
// and different from each other.
func (c *Console) AskNames(ctx context.Context, first, second string) (string, string, error) {
	var err error
	first = strings.TrimSpace(first)
	second = strings.TrimSpace(second)

	for first == "" {
		if first, err = c.readName(ctx, "First player name: "); err != nil {
			return "", "", err
		}
	}
	for second == "" || second == first {
		if second == first {
			c.println(c.styles.Error.Render(fmt.Sprintf("%s is already playing, choose another name", first)))
		}
		if second, err = c.readName(ctx, "Second player name: "); err != nil {
			return "", "", err
		}
	}
	return first, second, nil
}

func (c *Console) readName(ctx context.Context, prompt string) (string, error) {
	c.rl.SetPrompt(prompt)
	line, err := c.readLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readLine maps end of input to ErrQuit and repeats the prompt after ^C
func (c *Console) readLine(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		line, err := c.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			c.println(c.styles.Info.Render("Use 'quit' to exit"))
			continue
		} else if errors.Is(err, io.EOF) {
			return "", kalah.ErrQuit
		} else if err != nil {
			return "", err
		}
		return line, nil
	}
}

// NextMove reads lines until the player types something that is not a
// command, and returns it for validation.
func (c *Console) NextMove(ctx context.Context, view kalah.View) (string, error) {
	for {
		c.rl.SetPrompt(fmt.Sprintf("%s, choose a pit (1-%d)> ", view.Player, view.Rules.PitsPerPlayer))

		line, err := c.readLine(ctx)
		if err != nil {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cmd, exists := c.commands[strings.ToLower(line)]
		if !exists {
			return line, nil
		}
		if err := cmd.Handler(view); err != nil {
			return "", err
		}
	}
}

// Rejected explains why the input was not accepted
func (c *Console) Rejected(view kalah.View, input string, err error) {
	c.logger.Debug("Rejected input", "player", view.Player, "input", input, "error", err)
	c.println(c.styles.Error.Render(err.Error()))
}

// OnEvent prints the board as the game progresses
func (c *Console) OnEvent(event kalah.GameEvent) {
	switch e := event.(type) {
	case kalah.GameStartEvent:
		c.println(c.styles.Header.Render(fmt.Sprintf("%s vs %s", e.First, e.Second)))
		c.println("")
		c.println(c.renderer.WithActive(kalah.First).Board(e.Board))
		c.println("")
	case kalah.TurnEvent:
		c.println(c.styles.Info.Render(render.Describe(e)))
		c.println("")
		c.println(c.renderer.WithActive(e.Next).Board(e.Board))
		c.println("")
	case kalah.GameEndEvent:
		c.println(c.styles.Success.Render(render.Describe(e)))
	}
}

func (c *Console) handleBoard(view kalah.View) error {
	c.println(c.renderer.WithActive(view.Active).Board(view.Board))
	return nil
}

func (c *Console) handleHelp(view kalah.View) error {
	c.println(fmt.Sprintf("Type a pit number from 1 to %d to sow its seeds.", view.Rules.PitsPerPlayer))
	names := commandNames()
	sort.Strings(names)
	for _, name := range names {
		cmd := c.commands[name]
		c.println(fmt.Sprintf("  %-6s %s", cmd.Name, c.styles.Info.Render(cmd.Description)))
	}
	return nil
}

func (c *Console) handleQuit(view kalah.View) error {
	c.logger.Info("Player quit", "player", view.Player)
	return kalah.ErrQuit
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
