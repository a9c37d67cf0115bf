package parser

import (
	"strings"
	"testing"

	"github.com/pgnkit/movetree/internal/rules"
	"github.com/pgnkit/movetree/internal/testutil"
	"github.com/pgnkit/movetree/internal/tree"
)

func mustParse(t *testing.T, src string) *Game {
	t.Helper()
	game, err := Parse(src, rules.NewEngine())
	testutil.AssertNoError(t, err)
	testutil.AssertNotNil(t, game.Tree)
	return game
}

// mainlineSANs walks the mainline from the root and returns the SANs.
func mainlineSANs(tr *tree.Tree) []string {
	var sans []string
	for id := tr.Node(tr.Root()).Next; id != tree.NilNode; id = tr.Node(id).Next {
		sans = append(sans, tr.Node(id).SAN)
	}
	return sans
}

func TestParseMainline(t *testing.T) {
	game := mustParse(t, "1. e4 e5 2. Nf3 Nc6 *")
	tr := game.Tree

	testutil.AssertEqual(t, mainlineSANs(tr), []string{"e4", "e5", "Nf3", "Nc6"})
	testutil.AssertEqual(t, tr.Len(), 5, "root plus four plies")
	testutil.AssertEqual(t, game.Result, "*")

	end := tr.MainlineEnd(tr.Root())
	testutil.AssertEqual(t, tr.FEN(end),
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")

	for id := tr.Node(tr.Root()).Next; id != tree.NilNode; id = tr.Node(id).Next {
		testutil.AssertEqual(t, len(tr.Node(id).Variations), 0)
	}
}

func TestParseVariationOnRootMove(t *testing.T) {
	game := mustParse(t, "1. e4 (1. d4 d5) e5")
	tr := game.Tree
	root := tr.Node(tr.Root())

	e4 := tr.Node(root.Next)
	testutil.AssertEqual(t, e4.SAN, "e4")
	testutil.AssertEqual(t, len(root.Variations), 1)

	d4 := tr.Node(root.Variations[0])
	testutil.AssertEqual(t, d4.SAN, "d4")
	testutil.AssertTrue(t, tr.IsVariation(d4.ID))
	testutil.AssertTrue(t, d4.Renumber, "variation start carries its own number")

	d5 := tr.Node(d4.Next)
	testutil.AssertEqual(t, d5.SAN, "d5")

	e5 := tr.Node(e4.Next)
	testutil.AssertEqual(t, e5.SAN, "e5")
	testutil.AssertTrue(t, e5.Renumber, "black move after a closed variation renumbers")
}

func TestParseNestedVariations(t *testing.T) {
	game := mustParse(t, "1. e4 e5 (1... c5 2. Nf3 (2. c3 d5) d6) 2. Nf3")
	tr := game.Tree

	e4 := tr.Node(tr.Node(tr.Root()).Next)
	e5 := tr.Node(e4.Next)
	testutil.AssertEqual(t, len(e4.Variations), 1)

	c5 := tr.Node(e4.Variations[0])
	testutil.AssertEqual(t, c5.SAN, "c5")

	nf3v := tr.Node(c5.Next)
	testutil.AssertEqual(t, nf3v.SAN, "Nf3")
	testutil.AssertEqual(t, len(c5.Variations), 1)

	c3 := tr.Node(c5.Variations[0])
	testutil.AssertEqual(t, c3.SAN, "c3")
	testutil.AssertEqual(t, tr.Node(c3.Next).SAN, "d5")

	d6 := tr.Node(nf3v.Next)
	testutil.AssertEqual(t, d6.SAN, "d6")

	nf3 := tr.Node(e5.Next)
	testutil.AssertEqual(t, nf3.SAN, "Nf3")
	testutil.AssertTrue(t, nf3.Mainline)
}

func TestParseCommentAttachment(t *testing.T) {
	game := mustParse(t, "1. e4 {good move} e5")
	tr := game.Tree

	e4 := tr.Node(tr.Node(tr.Root()).Next)
	testutil.AssertEqual(t, e4.Comment, "good move")

	e5 := tr.Node(e4.Next)
	testutil.AssertEqual(t, e5.Comment, "")
	testutil.AssertEqual(t, tr.Node(tr.Root()).Comment, "")
	testutil.AssertTrue(t, e5.Renumber, "black move after a comment renumbers")
}

func TestParseLeadingCommentBuffered(t *testing.T) {
	game := mustParse(t, "{pregame thoughts} 1. e4")
	tr := game.Tree

	e4 := tr.Node(tr.Node(tr.Root()).Next)
	testutil.AssertEqual(t, e4.Comment, "pregame thoughts")
}

func TestParseVariationLeadingComment(t *testing.T) {
	game := mustParse(t, "1. e4 ({instead} 1. d4) e5")
	tr := game.Tree

	d4 := tr.Node(tr.Node(tr.Root()).Variations[0])
	testutil.AssertEqual(t, d4.SAN, "d4")
	testutil.AssertEqual(t, d4.Comment, "instead")
}

func TestParseUnterminatedComment(t *testing.T) {
	game := mustParse(t, "{unterminated comment")
	tr := game.Tree

	testutil.AssertEqual(t, tr.Len(), 1)
	testutil.AssertEqual(t, tr.Node(tr.Root()).Comment, "unterminated comment")
}

func TestParseAnnotations(t *testing.T) {
	game := mustParse(t, "1. e4 $1 e5 ?! $13")
	tr := game.Tree

	e4 := tr.Node(tr.Node(tr.Root()).Next)
	testutil.AssertEqual(t, e4.Annotations, []string{"!"})

	e5 := tr.Node(e4.Next)
	testutil.AssertEqual(t, e5.Annotations, []string{"?!", "∞"})
}

func TestParseIllegalMoveEchoed(t *testing.T) {
	game := mustParse(t, "1. e4 Ke4 e5")
	tr := game.Tree

	testutil.AssertEqual(t, mainlineSANs(tr), []string{"e4", "e5"})
	testutil.AssertEqual(t, game.Stats.IllegalMoves, 1)
	testutil.AssertEqual(t, len(game.Literals), 1)
	testutil.AssertEqual(t, game.Literals[0].Text, "Ke4")

	e4 := tr.Node(tr.Root()).Next
	testutil.AssertEqual(t, game.Literals[0].After, e4)
}

func TestParseDuplicateResultSuppressed(t *testing.T) {
	game := mustParse(t, "1. e4 e5 1-0 1-0")

	testutil.AssertEqual(t, game.Result, "1-0")
	testutil.AssertEqual(t, game.Stats.DuplicateResults, 1)
}

func TestParseUnbalancedVariations(t *testing.T) {
	game := mustParse(t, "1. e4 (1. d4 (1. c4 c5")
	tr := game.Tree
	root := tr.Node(tr.Root())

	testutil.AssertEqual(t, tr.Node(root.Next).SAN, "e4")
	testutil.AssertEqual(t, len(root.Variations), 2, "both open variations implicitly closed")

	extraClose := mustParse(t, "1. e4 ) e5")
	testutil.AssertEqual(t, mainlineSANs(extraClose.Tree), []string{"e4", "e5"})
	testutil.AssertEqual(t, extraClose.Stats.TokensSkipped, 1)
}

func TestParseTagPairs(t *testing.T) {
	game := mustParse(t, "[Event \"Test Match\"]\n[White \"Anand\"]\n\n1. e4 *")

	testutil.AssertEqual(t, game.Tags["Event"], "Test Match")
	testutil.AssertEqual(t, game.Tags["White"], "Anand")
}

func TestParseFENTagRoot(t *testing.T) {
	fen := "8/4P3/8/8/8/8/8/k6K w - - 0 1"
	game := mustParse(t, "[SetUp \"1\"]\n[FEN \""+fen+"\"]\n\n1. e8=Q *")
	tr := game.Tree

	testutil.AssertEqual(t, tr.FEN(tr.Root()), fen)
	e8 := tr.Node(tr.Node(tr.Root()).Next)
	testutil.AssertEqual(t, e8.SAN, "e8=Q")
}

func TestParseInvalidFENTagFallsBack(t *testing.T) {
	game := mustParse(t, "[FEN \"totally broken\"]\n\n1. e4 *")
	tr := game.Tree

	testutil.AssertEqual(t, tr.FEN(tr.Root()), rules.NewEngine().StartingFEN())
	testutil.AssertEqual(t, mainlineSANs(tr), []string{"e4"})
}

func TestParseFigurineInput(t *testing.T) {
	game := mustParse(t, "1. e4 e5 2. ♘f3 ♞c6 *")
	testutil.AssertEqual(t, mainlineSANs(game.Tree), []string{"e4", "e5", "Nf3", "Nc6"})
}

func TestParseCommentKeepsGlyphs(t *testing.T) {
	game := mustParse(t, "1. e4 {♘f3 is next} *")
	tr := game.Tree

	e4 := tr.Node(tr.Node(tr.Root()).Next)
	testutil.AssertEqual(t, e4.Comment, "♘f3 is next")
}

func TestParseResultOnly(t *testing.T) {
	game, err := Parse("1-0", rules.NewEngine())
	testutil.AssertNoError(t, err)
	testutil.AssertNil(t, game.Tree)
	testutil.AssertEqual(t, game.Result, "1-0")
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse("", rules.NewEngine())
	testutil.AssertError(t, err)
}

func TestParseAllMultipleGames(t *testing.T) {
	src := "[Event \"One\"]\n\n1. e4 e5 1-0\n\n[Event \"Two\"]\n\n1. d4 d5 1/2-1/2\n"
	games, err := ParseAll(strings.NewReader(src), rules.NewEngine())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(games), 2)

	testutil.AssertEqual(t, games[0].Tags["Event"], "One")
	testutil.AssertEqual(t, games[0].Result, "1-0")
	testutil.AssertEqual(t, mainlineSANs(games[0].Tree), []string{"e4", "e5"})

	testutil.AssertEqual(t, games[1].Tags["Event"], "Two")
	testutil.AssertEqual(t, games[1].Result, "1/2-1/2")
	testutil.AssertEqual(t, mainlineSANs(games[1].Tree), []string{"d4", "d5"})
}

func TestParseAllTaglessGames(t *testing.T) {
	src := "1. e4 e5 1-0\n\n1. d4 d5 0-1"
	games, err := ParseAll(strings.NewReader(src), rules.NewEngine())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(games), 2, "result token ends the game")

	testutil.AssertEqual(t, games[0].Result, "1-0")
	testutil.AssertEqual(t, mainlineSANs(games[0].Tree), []string{"e4", "e5"})
	testutil.AssertEqual(t, games[0].Stats.DuplicateResults, 0)

	testutil.AssertEqual(t, games[1].Result, "0-1")
	testutil.AssertEqual(t, mainlineSANs(games[1].Tree), []string{"d4", "d5"})
	testutil.AssertEqual(t, games[1].Tree.FEN(games[1].Tree.Root()),
		rules.NewEngine().StartingFEN(), "second game starts fresh")
}

func TestParseChunkedMatchesOneShot(t *testing.T) {
	src := "1. e4 e5 (1... c5) 2. Nf3 {developing} Nc6 *"

	oneShot := mustParse(t, src)

	b := NewBuilder(src, rules.NewEngine())
	steps := 0
	for {
		done, err := b.ParseChunk(2)
		testutil.AssertNoError(t, err)
		steps++
		if done {
			break
		}
	}
	testutil.AssertTrue(t, steps > 1, "input should take several chunks")
	chunked := b.Game()

	testutil.AssertEqual(t, mainlineSANs(chunked.Tree), mainlineSANs(oneShot.Tree))
	testutil.AssertEqual(t, chunked.Tree.Len(), oneShot.Tree.Len())
	testutil.AssertEqual(t, chunked.Result, oneShot.Result)
}
