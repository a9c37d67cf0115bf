package movetree

import (
	"strings"
	"testing"

	"github.com/pgnkit/movetree/internal/testutil"
)

// End-to-end flow a host UI would drive: parse, replay, edit, re-emit.
func TestParseNavigateEditEmit(t *testing.T) {
	game, err := Parse("1. e4 e5 (1... c5) 2. Nf3 {developing} Nc6 1-0")
	testutil.AssertNoError(t, err)

	s := NewSession(game)
	s.ToEnd()
	testutil.AssertEqual(t, s.Tree().Ply(s.Cursor()), 4)

	s.ToRoot()
	_, err = s.AppendUserMove("d4")
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, s.Tree().IsVariation(s.Cursor()))

	testutil.AssertTrue(t, s.PromoteVariation(s.Cursor()))
	text := Movetext(game, Options{})
	testutil.AssertTrue(t, strings.HasPrefix(text, "1.d4 (1.e4"), "promoted line leads, got %q", text)
}

func TestParseAllFacade(t *testing.T) {
	src := "1. e4 e5 1-0\n\n[Event \"Next\"]\n\n1. d4 *"
	games, err := ParseAll(strings.NewReader(src))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(games), 2)
}

func TestItemsFacade(t *testing.T) {
	game, err := Parse("1. e4 *")
	testutil.AssertNoError(t, err)

	items := Items(game, Options{})
	testutil.AssertEqual(t, len(items), 3, "number, move, result")
	testutil.AssertEqual(t, items[1].Text, "e4")
}
