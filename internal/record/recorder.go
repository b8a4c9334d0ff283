package record

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/lox/kalah/internal/kalah"
)

// Writer stores a finished record
type Writer interface {
	WriteRecord(r *Record) error
}

// FileWriter writes records to a single file, replacing it atomically
type FileWriter struct {
	path string
}

// NewFileWriter creates a writer for the given path
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// WriteRecord writes the record, creating parent directories as needed
func (w *FileWriter) WriteRecord(r *Record) error {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create record directory: %w", err)
		}
	}
	if err := writeAtomic(w.path, Encode(r), 0644); err != nil {
		return fmt.Errorf("failed to write record file: %w", err)
	}
	return nil
}

// writeAtomic writes data next to path and renames it into place, so a
// reader sees either the previous record or the complete new one.
func writeAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// NoOpWriter discards records
type NoOpWriter struct{}

// WriteRecord does nothing
func (NoOpWriter) WriteRecord(*Record) error { return nil }

// Recorder builds a Record from game events and writes it when the game ends.
// Subscribe it to the game's EventBus before the game starts.
type Recorder struct {
	writer  Writer
	logger  *log.Logger
	record  *Record
	written bool
	err     error
}

// NewRecorder creates a recorder that hands the record to w
func NewRecorder(w Writer, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{writer: w, logger: logger.WithPrefix("record")}
}

// OnEvent implements kalah.EventSubscriber
func (r *Recorder) OnEvent(event kalah.GameEvent) {
	switch e := event.(type) {
	case kalah.GameStartEvent:
		r.record = &Record{
			ID:            e.GameID,
			First:         e.First,
			Second:        e.Second,
			PitsPerPlayer: e.Rules.PitsPerPlayer,
			SeedsPerPit:   e.Rules.SeedsPerPit,
			Sweep:         e.Rules.Sweep.String(),
			Position:      e.Board.Notation(),
			StartedAt:     formatTime(e.Timestamp()),
		}
		r.written = false
		r.err = nil

	case kalah.TurnEvent:
		if r.record == nil {
			return
		}
		r.record.Moves = append(r.record.Moves, MoveRecord{
			Seat: e.Move.Seat.String(),
			Pit:  e.Move.Pit,
		})

	case kalah.GameEndEvent:
		if r.record == nil {
			return
		}
		r.record.Result = e.Result.String()
		r.record.FirstStore = e.Board.First.Store
		r.record.SecondStore = e.Board.Second.Store
		r.record.FinishedAt = formatTime(e.Timestamp())
		if err := r.Flush(); err != nil {
			r.logger.Error("Failed to write record", "game", e.GameID, "error", err)
		}
	}
}

// Flush writes the record if it has not been written yet, so an abandoned
// game is kept without a result.
func (r *Recorder) Flush() error {
	if r.record == nil || r.written {
		return r.err
	}
	r.written = true
	r.err = r.writer.WriteRecord(r.record)
	if r.err == nil {
		r.logger.Info("Record written", "game", r.record.ID, "moves", len(r.record.Moves), "result", r.record.Result)
	}
	return r.err
}

// Record returns a copy of the record built so far, or nil before the game
// starts.
func (r *Recorder) Record() *Record {
	if r.record == nil {
		return nil
	}
	c := *r.record
	c.Moves = append([]MoveRecord(nil), r.record.Moves...)
	return &c
}

// Err returns the error from the last write
func (r *Recorder) Err() error { return r.err }
