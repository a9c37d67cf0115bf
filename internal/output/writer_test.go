package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pgnkit/movetree/internal/config"
	"github.com/pgnkit/movetree/internal/parser"
	"github.com/pgnkit/movetree/internal/rules"
	"github.com/pgnkit/movetree/internal/testutil"
)

func parseGame(t *testing.T, src string) *parser.Game {
	t.Helper()
	game, err := parser.Parse(src, rules.NewEngine())
	testutil.AssertNoError(t, err)
	return game
}

func TestPGNWriter(t *testing.T) {
	game := parseGame(t, "[White \"Anand\"]\n[Event \"Test\"]\n\n1. e4 e5 1-0")

	var buf bytes.Buffer
	w := NewPGNWriter(&buf, config.NewDefault())
	testutil.AssertNoError(t, w.WriteGame(game))
	testutil.AssertNoError(t, w.Close())

	got := buf.String()
	testutil.AssertContains(t, got, "[Event \"Test\"]\n[White \"Anand\"]", "roster order puts Event first")
	testutil.AssertContains(t, got, "1.e4 e5 1-0")
}

func TestPGNWriterNoTags(t *testing.T) {
	game := parseGame(t, "1. e4 *")

	var buf bytes.Buffer
	w := NewPGNWriter(&buf, config.NewDefault())
	testutil.AssertNoError(t, w.WriteGame(game))

	testutil.AssertEqual(t, buf.String(), "1.e4 *\n\n")
}

func TestHeaderOrder(t *testing.T) {
	tags := map[string]string{
		"Annotator": "x",
		"White":     "a",
		"Event":     "b",
		"ECO":       "c",
	}
	got := headerOrder(tags)
	testutil.AssertEqual(t, got, []string{"Event", "White", "Annotator", "ECO"})
}

func TestJSONWriter(t *testing.T) {
	game := parseGame(t, "1. e4 (1. d4) e5 {solid} 1-0")

	var buf bytes.Buffer
	w := NewJSONWriter(&buf, config.NewDefault())
	testutil.AssertNoError(t, w.WriteGame(game))
	testutil.AssertNoError(t, w.Close())

	var out JSONOutput
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &out))
	testutil.AssertEqual(t, len(out.Games), 1)

	g := out.Games[0]
	testutil.AssertEqual(t, g.Result, "1-0")
	testutil.AssertEqual(t, g.PlyCount, 2)
	testutil.AssertEqual(t, len(g.Moves), 2)

	e4 := g.Moves[0]
	testutil.AssertEqual(t, e4.SAN, "e4")
	testutil.AssertEqual(t, e4.Color, "white")
	testutil.AssertEqual(t, e4.MoveNumber, 1)
	testutil.AssertEqual(t, len(e4.Variations), 1)
	testutil.AssertEqual(t, e4.Variations[0][0].SAN, "d4")

	e5 := g.Moves[1]
	testutil.AssertEqual(t, e5.Color, "black")
	testutil.AssertEqual(t, e5.Comment, "solid")
	testutil.AssertEqual(t, g.FinalFEN, e5.FEN)
}

func TestGameToJSONEmptyResult(t *testing.T) {
	game := parseGame(t, "1. e4")
	jg := GameToJSON(game, config.NewDefault())
	testutil.AssertEqual(t, jg.Result, "*")
}

func TestPGNWriterContentStrips(t *testing.T) {
	game := parseGame(t, "1. e4 $1 {strong} (1. d4) e5 *")

	cfg := config.NewDefault()
	cfg.KeepComments = false
	cfg.KeepNAGs = false
	cfg.KeepVariations = false

	var buf bytes.Buffer
	w := NewPGNWriter(&buf, cfg)
	testutil.AssertNoError(t, w.WriteGame(game))

	testutil.AssertEqual(t, buf.String(), "1.e4 1...e5 *\n\n")
}
