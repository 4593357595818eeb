package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/silly-chess-go/internal/chess"
	"github.com/lgbarn/silly-chess-go/internal/config"
	"github.com/lgbarn/silly-chess-go/internal/game"
)

// GameWriter is the interface for reporting command results and game
// states. Different implementations handle different formats.
type GameWriter interface {
	// WriteResult writes the outcome of a command.
	WriteResult(res game.Result) error

	// WriteState writes a snapshot of the game.
	WriteState(g *game.Game) error

	// WriteMoves writes the legal destinations of the piece on from.
	WriteMoves(from chess.Square, squares []chess.Square) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewGameWriter picks a writer for cfg.Output. JSON output is written one
// record per line so interactive adapters see it immediately.
func NewGameWriter(w io.Writer, cfg *config.Config) GameWriter {
	if cfg.Output != nil && cfg.Output.JSONFormat {
		return NewJSONWriterSingle(w)
	}
	return NewTextWriter(w, cfg.Output)
}

// TextWriter writes human readable diagrams and event lines.
type TextWriter struct {
	w   io.Writer
	cfg *config.OutputConfig
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.OutputConfig) *TextWriter {
	if cfg == nil {
		cfg = config.NewOutputConfig()
	}
	return &TextWriter{w: w, cfg: cfg}
}

// WriteResult writes the result's events, or the reason it was rejected.
func (tw *TextWriter) WriteResult(res game.Result) error {
	RenderResult(tw.w, res)
	return nil
}

// WriteState writes the board and status line.
func (tw *TextWriter) WriteState(g *game.Game) error {
	RenderState(tw.w, g, tw.cfg)
	return nil
}

// WriteMoves writes the destinations wrapped at movesLineLength.
func (tw *TextWriter) WriteMoves(_ chess.Square, squares []chess.Square) error {
	RenderMoves(tw.w, squares, movesLineLength)
	return nil
}

// Flush flushes the text writer (no-op as it writes immediately).
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes results and states in JSON format.
// It buffers records and writes them as one document on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	records []JSONRecord
	single  bool // If true, write each record immediately as one line
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches records and writes them on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:       w,
		records: make([]JSONRecord, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each record immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		single: true,
	}
}

// WriteResult buffers a result (or writes it immediately in single mode).
func (jw *JSONWriter) WriteResult(res game.Result) error {
	return jw.add(JSONRecord{Result: ResultToJSON(res)})
}

// WriteState buffers a snapshot (or writes it immediately in single mode).
// The snapshot is taken now, not at flush time.
func (jw *JSONWriter) WriteState(g *game.Game) error {
	return jw.add(JSONRecord{State: StateToJSON(g)})
}

// WriteMoves buffers a destination list (or writes it immediately in single mode).
func (jw *JSONWriter) WriteMoves(from chess.Square, squares []chess.Square) error {
	return jw.add(JSONRecord{Moves: MovesToJSON(from, squares)})
}

func (jw *JSONWriter) add(rec JSONRecord) error {
	if jw.single {
		return json.NewEncoder(jw.w).Encode(rec)
	}
	jw.records = append(jw.records, rec)
	return nil
}

// Flush writes all buffered records as a JSON document.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.records) == 0 {
		return nil
	}

	err := WriteJSON(jw.w, &JSONOutput{Records: jw.records})

	// Clear buffer after writing
	jw.records = jw.records[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
