package spectate

import (
	"time"

	"github.com/lox/kalah/internal/kalah"
)

// Message is the JSON frame sent to spectators for every game event
type Message struct {
	Type      kalah.EventType `json:"type"`
	GameID    string          `json:"game_id"`
	Timestamp time.Time       `json:"timestamp"`
	Board     kalah.Snapshot  `json:"board"`
	Notation  string          `json:"notation"`

	// game_start
	First  string     `json:"first,omitempty"`
	Second string     `json:"second,omitempty"`
	Rules  *RulesData `json:"rules,omitempty"`

	// turn
	Move     *kalah.Move `json:"move,omitempty"`
	Next     string      `json:"next,omitempty"`
	NextName string      `json:"next_name,omitempty"`

	// game_end
	Result string `json:"result,omitempty"`
	Winner string `json:"winner,omitempty"`
	Moves  int    `json:"moves,omitempty"`
}

// RulesData describes the board a game is played on
type RulesData struct {
	PitsPerPlayer int    `json:"pits_per_player"`
	SeedsPerPit   int    `json:"seeds_per_pit"`
	Sweep         string `json:"sweep"`
}

// NewMessage converts a game event into a frame. Unknown events return false.
func NewMessage(event kalah.GameEvent) (*Message, bool) {
	msg := &Message{
		Type:      event.EventType(),
		Timestamp: event.Timestamp(),
	}

	switch e := event.(type) {
	case kalah.GameStartEvent:
		msg.GameID = e.GameID
		msg.Board = e.Board
		msg.First = e.First
		msg.Second = e.Second
		msg.Rules = &RulesData{
			PitsPerPlayer: e.Rules.PitsPerPlayer,
			SeedsPerPit:   e.Rules.SeedsPerPit,
			Sweep:         e.Rules.Sweep.String(),
		}
	case kalah.TurnEvent:
		move := e.Move
		msg.GameID = e.GameID
		msg.Board = e.Board
		msg.Move = &move
		msg.Next = e.Next.String()
		msg.NextName = e.NextName
	case kalah.GameEndEvent:
		msg.GameID = e.GameID
		msg.Board = e.Board
		msg.Result = e.Result.String()
		msg.Winner = e.Winner
		msg.Moves = e.Moves
	default:
		return nil, false
	}

	msg.Notation = msg.Board.Notation()
	return msg, true
}
