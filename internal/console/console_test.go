package console

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/kalah/internal/kalah"
	"github.com/lox/kalah/internal/render"
)

// fakeReader replays lines, then errors, and remembers the prompts it saw
type fakeReader struct {
	lines   []string
	errs    map[int]error
	prompts []string
	reads   int
	closed  bool
}

func (f *fakeReader) Readline() (string, error) {
	i := f.reads
	f.reads++
	if err, ok := f.errs[i]; ok {
		return "", err
	}
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakeReader) SetPrompt(prompt string) { f.prompts = append(f.prompts, prompt) }

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func newTestConsole(lines ...string) (*Console, *fakeReader, *bytes.Buffer) {
	reader := &fakeReader{lines: lines}
	var out bytes.Buffer
	return NewWithReader(reader, &out, render.Plain(), nil), reader, &out
}

func TestAskNames(t *testing.T) {
	c, reader, out := newTestConsole("  ", " Alice ", "Alice", "", "Bob")

	first, second, err := c.AskNames(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, "Alice", first)
	assert.Equal(t, "Bob", second)
	assert.Contains(t, out.String(), "Alice is already playing")
	assert.Equal(t, []string{
		"First player name: ",
		"First player name: ",
		"Second player name: ",
		"Second player name: ",
		"Second player name: ",
	}, reader.prompts)
}

func TestAskNames_KeepsGivenNames(t *testing.T) {
	c, reader, _ := newTestConsole()

	first, second, err := c.AskNames(context.Background(), "Alice", "Bob")
	require.NoError(t, err)

	assert.Equal(t, "Alice", first)
	assert.Equal(t, "Bob", second)
	assert.Zero(t, reader.reads)
}

func TestAskNames_DuplicateGivenNamePromptsAgain(t *testing.T) {
	c, _, _ := newTestConsole("Bob")

	first, second, err := c.AskNames(context.Background(), "Sam", "Sam")
	require.NoError(t, err)

	assert.Equal(t, "Sam", first)
	assert.Equal(t, "Bob", second)
}

func TestAskNames_EOFQuits(t *testing.T) {
	c, _, _ := newTestConsole()

	_, _, err := c.AskNames(context.Background(), "", "")
	assert.ErrorIs(t, err, kalah.ErrQuit)
}

func TestNextMove(t *testing.T) {
	c, reader, out := newTestConsole("", "help", "b", "  3  ")
	view := kalah.NewGame(kalah.CreateBoard("Alice", "Bob")).View()

	input, err := c.NextMove(context.Background(), view)
	require.NoError(t, err)

	assert.Equal(t, "3", input, "surrounding whitespace is trimmed")
	assert.Equal(t, "Alice, choose a pit (1-6)> ", reader.prompts[0])
	assert.Contains(t, out.String(), "Show available commands")
	assert.Contains(t, out.String(), "| 4 | 4 | 4 | 4 | 4 | 4 |")
}

func TestNextMove_PassesInvalidInputThrough(t *testing.T) {
	c, _, _ := newTestConsole("abc")
	view := kalah.NewGame(kalah.CreateBoard("Alice", "Bob")).View()

	input, err := c.NextMove(context.Background(), view)
	require.NoError(t, err)
	assert.Equal(t, "abc", input)
}

func TestNextMove_Quit(t *testing.T) {
	for _, word := range []string{"quit", "Q", "exit"} {
		t.Run(word, func(t *testing.T) {
			c, _, _ := newTestConsole(word)
			view := kalah.NewGame(kalah.CreateBoard("Alice", "Bob")).View()

			_, err := c.NextMove(context.Background(), view)
			assert.ErrorIs(t, err, kalah.ErrQuit)
		})
	}
}

func TestNextMove_InterruptRepeatsPrompt(t *testing.T) {
	c, reader, out := newTestConsole("2")
	reader.errs = map[int]error{0: readline.ErrInterrupt}
	view := kalah.NewGame(kalah.CreateBoard("Alice", "Bob")).View()

	input, err := c.NextMove(context.Background(), view)
	require.NoError(t, err)

	assert.Equal(t, "2", input)
	assert.Contains(t, out.String(), "Use 'quit' to exit")
}

func TestNextMove_ContextCancelled(t *testing.T) {
	c, reader, _ := newTestConsole("1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.NextMove(ctx, kalah.View{Player: "Alice"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, reader.reads)
}

func TestConsole_PlaysWholeGame(t *testing.T) {
	// Alice has one seed left; she types garbage, an empty pit, then pit 6
	c, _, out := newTestConsole("x", "1", "6")
	board, err := kalah.ParseNotation("<6,0,0,0,0,0,0,0,1,0,0,0,0,0,1>", "Alice", "Bob", kalah.DefaultRules())
	require.NoError(t, err)

	game := kalah.NewGame(board)
	game.EventBus().Subscribe(c)

	result, err := game.Play(context.Background(), c, c)
	require.NoError(t, err)

	assert.Equal(t, kalah.FirstPlayerWon, result)
	output := out.String()
	assert.Contains(t, output, "Alice vs Bob")
	assert.Contains(t, output, kalah.ErrInvalidPitNumber.Error())
	assert.Contains(t, output, kalah.ErrEmptyPitSelected.Error())
	assert.Contains(t, output, "Alice sowed 1 from pit 6, last seed in Alice's store, extra turn")
	assert.Contains(t, output, "Game over: Alice wins 1 to 0")
}

func TestClose(t *testing.T) {
	c, reader, _ := newTestConsole()
	require.NoError(t, c.Close())
	assert.True(t, reader.closed)
}
