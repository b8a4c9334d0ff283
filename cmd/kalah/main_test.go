package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/kalah/internal/console"
	"github.com/lox/kalah/internal/gameid"
	"github.com/lox/kalah/internal/kalah"
	"github.com/lox/kalah/internal/record"
	"github.com/lox/kalah/internal/render"
)

// endgame leaves the first player two moves from emptying their row
const endgame = "<6,0,0,0,0,0,0,2,0,0,0,0,0,0,1>"

type scriptReader struct {
	lines []string
}

func (s *scriptReader) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptReader) SetPrompt(string) {}

func (s *scriptReader) Close() error { return nil }

func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.hcl")
}

func playConsole(t *testing.T, cmd *PlayCmd, lines ...string) string {
	t.Helper()
	cfg, err := cmd.settings()
	require.NoError(t, err)

	var out bytes.Buffer
	con := console.NewWithReader(&scriptReader{lines: lines}, &out, render.Plain(), nil)
	require.NoError(t, cmd.runConsole(context.Background(), cfg, con, log.New(io.Discard)))
	return out.String()
}

func TestPlayCmd_Settings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kalah.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
rules {
  pits_per_player = 5
}

players {
  first  = "Ann"
  second = "Ben"
}
`), 0o644))

	cmd := &PlayCmd{Config: path, Second: "Cat", Sweep: true, Debug: true, LogFile: "game.log"}
	cfg, err := cmd.settings()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Rules.PitsPerPlayer)
	assert.Equal(t, 4, cfg.Rules.SeedsPerPit)
	assert.Equal(t, "remaining", cfg.Rules.Sweep)
	assert.Equal(t, "Ann", cfg.Players.First)
	assert.Equal(t, "Cat", cfg.Players.Second)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "game.log", cfg.Log.File)
}

func TestPlayCmd_SettingsRejectsSameNames(t *testing.T) {
	cmd := &PlayCmd{Config: missingConfig(t), First: "Al", Second: "Al"}
	_, err := cmd.settings()
	assert.Error(t, err)
}

func TestPlayCmd_ConsoleGameWritesRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.hcl")
	cmd := &PlayCmd{
		Config:   missingConfig(t),
		First:    "Alice",
		Second:   "Bob",
		Position: endgame,
		Record:   path,
	}

	out := playConsole(t, cmd, "7", "5", "6")
	assert.Contains(t, out, "Alice vs Bob")
	assert.Contains(t, out, "Alice sowed 2 from pit 5, last seed in Alice's store, extra turn")
	assert.Contains(t, out, "Game over: Alice wins 2 to 0")

	r, err := record.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "first_player_won", r.Result)
	assert.Equal(t, endgame, r.Position)
	assert.Equal(t, []record.MoveRecord{{Seat: "first", Pit: 5}, {Seat: "first", Pit: 6}}, r.Moves)
	assert.Equal(t, 2, r.FirstStore)
	assert.Equal(t, 0, r.SecondStore)
}

func TestPlayCmd_PromptsForMissingNames(t *testing.T) {
	cmd := &PlayCmd{Config: missingConfig(t), Position: endgame}

	out := playConsole(t, cmd, "Alice", "Alice", "Bob", "5", "6")
	assert.Contains(t, out, "Alice is already playing, choose another name")
	assert.Contains(t, out, "Alice vs Bob")
	assert.Contains(t, out, "Game over: Alice wins 2 to 0")
}

func TestPlayCmd_QuitKeepsUnfinishedRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.hcl")
	cmd := &PlayCmd{Config: missingConfig(t), First: "Alice", Second: "Bob", Record: path}

	playConsole(t, cmd, "3", "quit")

	r, err := record.Load(path)
	require.NoError(t, err)
	assert.Empty(t, r.Result)
	assert.Equal(t, []record.MoveRecord{{Seat: "first", Pit: 3}}, r.Moves)
}

func TestPlayCmd_InvalidPosition(t *testing.T) {
	cmd := &PlayCmd{Config: missingConfig(t), First: "Alice", Second: "Bob", Position: "<6,0>"}
	cfg, err := cmd.settings()
	require.NoError(t, err)

	con := console.NewWithReader(&scriptReader{}, io.Discard, render.Plain(), nil)
	err = cmd.runConsole(context.Background(), cfg, con, log.New(io.Discard))
	assert.ErrorIs(t, err, kalah.ErrInvalidNotation)
}

func TestReplayCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.hcl")
	playConsole(t, &PlayCmd{
		Config:   missingConfig(t),
		First:    "Alice",
		Second:   "Bob",
		Position: endgame,
		Record:   path,
	}, "5", "6")

	var out bytes.Buffer
	require.NoError(t, (&ReplayCmd{File: path, Plain: true}).Run(&out))

	assert.Contains(t, out.String(), "1. Alice sowed 2 from pit 5, last seed in Alice's store, extra turn")
	assert.Contains(t, out.String(), "2. Alice sowed 1 from pit 6, last seed in Alice's store")
	assert.Contains(t, out.String(), "Game over: Alice wins 2 to 0")
	assert.True(t, strings.HasPrefix(out.String(), "Played "), out.String())
}

func TestReplayCmd_StartTimeFromGameID(t *testing.T) {
	id := gameid.Generate()
	started, err := gameid.Timestamp(id)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "game.hcl")
	r := &record.Record{
		ID:            id,
		First:         "Alice",
		Second:        "Bob",
		PitsPerPlayer: 6,
		SeedsPerPit:   4,
		Position:      endgame,
		Moves:         []record.MoveRecord{{Seat: "first", Pit: 5}, {Seat: "first", Pit: 6}},
		Result:        "first_player_won",
		FirstStore:    2,
	}
	require.NoError(t, os.WriteFile(path, record.Encode(r), 0o644))

	var out bytes.Buffer
	require.NoError(t, (&ReplayCmd{File: path, Plain: true}).Run(&out))
	assert.Contains(t, out.String(), "Played "+started.UTC().Format("2006-01-02 15:04 MST"))
}

func TestReplayCmd_ResultMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.hcl")
	r := &record.Record{
		ID:            gameid.Generate(),
		First:         "Alice",
		Second:        "Bob",
		PitsPerPlayer: 6,
		SeedsPerPit:   4,
		Position:      endgame,
		Moves:         []record.MoveRecord{{Seat: "first", Pit: 5}, {Seat: "first", Pit: 6}},
		Result:        "second_player_won",
	}
	require.NoError(t, os.WriteFile(path, record.Encode(r), 0o644))

	err := (&ReplayCmd{File: path, Plain: true}).Run(io.Discard)
	assert.ErrorIs(t, err, record.ErrInvalidRecord)
}

func TestNotationCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := &NotationCmd{First: "Alice", Second: "Bob", Pits: 6, Seeds: 4, Plain: true}
	require.NoError(t, cmd.Run(&out))

	want := strings.Join([]string{
		"                Bob",
		"     | 4 | 4 | 4 | 4 | 4 | 4 |",
		"(0)                             (0)",
		"     | 4 | 4 | 4 | 4 | 4 | 4 |",
		"               Alice",
		"",
		"<6,0,0,4,4,4,4,4,4,4,4,4,4,4,4>",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())
}

func TestNotationCmd_Position(t *testing.T) {
	var out bytes.Buffer
	cmd := &NotationCmd{Position: " < 6, 0,0,0,0,0,0,2,0,0,0,0,0,0,1 > ", First: "A", Second: "B", Pits: 6, Seeds: 4, Plain: true}
	require.NoError(t, cmd.Run(&out))
	assert.Contains(t, out.String(), endgame)

	err := (&NotationCmd{Position: "nonsense", First: "A", Second: "B", Pits: 6, Seeds: 4}).Run(io.Discard)
	assert.ErrorIs(t, err, kalah.ErrInvalidNotation)

	err = (&NotationCmd{First: "A", Second: "B", Pits: 0, Seeds: 4}).Run(io.Discard)
	assert.Error(t, err)
}

func TestTUINames(t *testing.T) {
	tests := []struct {
		first, second string
		wantFirst     string
		wantSecond    string
	}{
		{"", "", "Player 1", "Player 2"},
		{"Alice", "", "Alice", "Player 2"},
		{"", "Bob", "Player 1", "Bob"},
		{"Player 2", "", "Player 1", "Player 2"},
		{"Alice", "Bob", "Alice", "Bob"},
	}
	for _, tt := range tests {
		first, second := tuiNames(tt.first, tt.second)
		assert.Equal(t, tt.wantFirst, first)
		assert.Equal(t, tt.wantSecond, second)
	}
}

func TestOpenLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kalah.log")
	logger, closer, err := openLogger(path, log.InfoLevel)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("Game started", "first", "Alice")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Game started")
	assert.Contains(t, string(data), "first=Alice")
	assert.NotContains(t, string(data), "hidden")

	logger, closer, err = openLogger("", log.InfoLevel)
	require.NoError(t, err)
	logger.Info("discarded")
	assert.NoError(t, closer.Close())
}
