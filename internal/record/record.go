// Package record stores finished (or abandoned) games as HCL files that can
// be replayed through the engine.
//
// A record file holds a single game block:
//
//	game "0hb2y3w1k8m4q2r6t9v0x5z7cd" {
//	  first           = "Alice"
//	  second          = "Bob"
//	  pits_per_player = 6
//	  seeds_per_pit   = 4
//	  sweep           = "none"
//	  position        = "<6,0,0,4,4,4,4,4,4,4,4,4,4,4,4>"
//	  started_at      = "2026-10-16T10:00:00Z"
//
//	  move {
//	    seat = "first"
//	    pit  = 3
//	  }
//
//	  result       = "first_player_won"
//	  first_store  = 25
//	  second_store = 23
//	}
package record

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/lox/kalah/internal/gameid"
	"github.com/lox/kalah/internal/kalah"
)

// ErrInvalidRecord is returned when a record cannot be decoded or replayed
var ErrInvalidRecord = errors.New("invalid game record")

// Record is one game: who played, on which board, every move and the result
type Record struct {
	ID            string `hcl:"id,label"`
	First         string `hcl:"first"`
	Second        string `hcl:"second"`
	PitsPerPlayer int    `hcl:"pits_per_player"`
	SeedsPerPit   int    `hcl:"seeds_per_pit"`
	Sweep         string `hcl:"sweep,optional"`
	Position      string `hcl:"position,optional"`
	StartedAt     string `hcl:"started_at,optional"`
	FinishedAt    string `hcl:"finished_at,optional"`

	Moves []MoveRecord `hcl:"move,block"`

	Result      string `hcl:"result,optional"`
	FirstStore  int    `hcl:"first_store,optional"`
	SecondStore int    `hcl:"second_store,optional"`
}

// MoveRecord is a single turn: the seat that moved and the 1-based pit
type MoveRecord struct {
	Seat string `hcl:"seat"`
	Pit  int    `hcl:"pit"`
}

type file struct {
	Games []Record `hcl:"game,block"`
}

// Rules returns the engine rules the game was played with
func (r *Record) Rules() (kalah.Rules, error) {
	sweep, err := kalah.ParseSweepPolicy(r.Sweep)
	if err != nil {
		return kalah.Rules{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	rules := kalah.Rules{
		PitsPerPlayer: r.PitsPerPlayer,
		SeedsPerPit:   r.SeedsPerPit,
		Sweep:         sweep,
	}
	if err := rules.Validate(); err != nil {
		return kalah.Rules{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return rules, nil
}

// GameResult parses the stored result; a missing result means the game was
// abandoned.
func (r *Record) GameResult() (kalah.GameResult, error) {
	if r.Result == "" {
		return kalah.InProgress, nil
	}
	result, err := kalah.ParseGameResult(r.Result)
	if err != nil {
		return kalah.InProgress, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return result, nil
}

// StartTime returns when the game started. Records without started_at fall
// back to the time carried in the game ID.
func (r *Record) StartTime() (time.Time, error) {
	if r.StartedAt == "" {
		t, err := gameid.Timestamp(r.ID)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, r.StartedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: started_at: %v", ErrInvalidRecord, err)
	}
	return t, nil
}

// Encode writes the record as HCL
func Encode(r *Record) []byte {
	f := hclwrite.NewEmptyFile()
	game := f.Body().AppendNewBlock("game", []string{r.ID}).Body()

	game.SetAttributeValue("first", cty.StringVal(r.First))
	game.SetAttributeValue("second", cty.StringVal(r.Second))
	game.SetAttributeValue("pits_per_player", cty.NumberIntVal(int64(r.PitsPerPlayer)))
	game.SetAttributeValue("seeds_per_pit", cty.NumberIntVal(int64(r.SeedsPerPit)))
	game.SetAttributeValue("sweep", cty.StringVal(r.Sweep))
	if r.Position != "" {
		game.SetAttributeValue("position", cty.StringVal(r.Position))
	}
	if r.StartedAt != "" {
		game.SetAttributeValue("started_at", cty.StringVal(r.StartedAt))
	}
	if r.FinishedAt != "" {
		game.SetAttributeValue("finished_at", cty.StringVal(r.FinishedAt))
	}

	for _, m := range r.Moves {
		game.AppendNewline()
		move := game.AppendNewBlock("move", nil).Body()
		move.SetAttributeValue("seat", cty.StringVal(m.Seat))
		move.SetAttributeValue("pit", cty.NumberIntVal(int64(m.Pit)))
	}

	if r.Result != "" {
		game.AppendNewline()
		game.SetAttributeValue("result", cty.StringVal(r.Result))
		game.SetAttributeValue("first_store", cty.NumberIntVal(int64(r.FirstStore)))
		game.SetAttributeValue("second_store", cty.NumberIntVal(int64(r.SecondStore)))
	}

	return hclwrite.Format(f.Bytes())
}

// Decode parses a record file's contents
func Decode(src []byte, filename string) (*Record, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var decoded file
	diags = gohcl.DecodeBody(f.Body, nil, &decoded)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if len(decoded.Games) != 1 {
		return nil, fmt.Errorf("%w: expected one game block, found %d", ErrInvalidRecord, len(decoded.Games))
	}
	r := &decoded.Games[0]
	if err := gameid.Validate(r.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return r, nil
}

// Load reads a record file
func Load(filename string) (*Record, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}
	return Decode(src, filename)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
