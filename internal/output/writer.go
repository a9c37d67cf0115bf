// Package output writes parsed games in the supported output formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/pgnkit/movetree/internal/config"
	"github.com/pgnkit/movetree/internal/parser"
	"github.com/pgnkit/movetree/internal/render"
)

// SevenTagRoster lists the mandatory PGN header tags in export order.
var SevenTagRoster = []string{
	"Event", "Site", "Date", "Round", "White", "Black", "Result",
}

// GameWriter is the interface for writing games to output. Different
// implementations handle different output formats.
type GameWriter interface {
	// WriteGame writes a single game to the output.
	WriteGame(game *parser.Game) error

	// Close flushes any buffered data. For batch writers (JSON) this
	// writes the pending output.
	Close() error
}

// NewWriter returns the GameWriter for the configured format.
func NewWriter(w io.Writer, cfg *config.Config) GameWriter {
	if cfg.Format == config.JSON {
		return NewJSONWriter(w, cfg)
	}
	return NewPGNWriter(w, cfg)
}

// PGNWriter writes games as PGN: a tag-pair header, a blank line, then
// the movetext.
type PGNWriter struct {
	w   io.Writer
	cfg *config.Config
}

// NewPGNWriter creates a PGN writer.
func NewPGNWriter(w io.Writer, cfg *config.Config) *PGNWriter {
	return &PGNWriter{w: w, cfg: cfg}
}

// WriteGame writes a game in PGN format.
func (pw *PGNWriter) WriteGame(game *parser.Game) error {
	for _, tag := range headerOrder(game.Tags) {
		if _, err := fmt.Fprintf(pw.w, "[%s %q]\n", tag, game.Tags[tag]); err != nil {
			return err
		}
	}
	if len(game.Tags) > 0 {
		if _, err := fmt.Fprintln(pw.w); err != nil {
			return err
		}
	}
	text := render.Movetext(game, render.Options{
		Figurine:        pw.cfg.Figurine,
		StripComments:   !pw.cfg.KeepComments,
		StripNAGs:       !pw.cfg.KeepNAGs,
		StripVariations: !pw.cfg.KeepVariations,
	})
	_, err := fmt.Fprintf(pw.w, "%s\n\n", text)
	return err
}

// Close closes the PGN writer (no-op; PGN writes immediately).
func (pw *PGNWriter) Close() error {
	return nil
}

// headerOrder returns tag names in export order: the seven tag roster
// first, then the rest alphabetically.
func headerOrder(tags map[string]string) []string {
	order := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range SevenTagRoster {
		if _, ok := tags[tag]; ok {
			order = append(order, tag)
			seen[tag] = true
		}
	}
	var rest []string
	for tag := range tags {
		if !seen[tag] {
			rest = append(rest, tag)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// JSONWriter writes games in JSON format. It buffers games and writes
// them as one array on Close.
type JSONWriter struct {
	w     io.Writer
	cfg   *config.Config
	games []*JSONGame
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{w: w, cfg: cfg}
}

// WriteGame buffers a game for JSON output.
func (jw *JSONWriter) WriteGame(game *parser.Game) error {
	jw.games = append(jw.games, GameToJSON(game, jw.cfg))
	return nil
}

// Close writes all buffered games as a JSON array.
func (jw *JSONWriter) Close() error {
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&JSONOutput{Games: jw.games})
	jw.games = jw.games[:0]
	return err
}
