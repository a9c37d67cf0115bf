package parser

import (
	"testing"

	"github.com/pgnkit/movetree/internal/testutil"
)

// collect drains the lexer into (type, text) pairs, excluding EOF.
func collect(src string) []Token {
	lex := NewLexer(src)
	var toks []Token
	for {
		tok := lex.Next()
		if tok.Type == EOFToken {
			return toks
		}
		toks = append(toks, Token{Type: tok.Type, Text: tok.Text})
	}
}

func TestLexerBasicMovetext(t *testing.T) {
	got := collect("1. e4 e5 2. Nf3 Nc6 *")
	want := []Token{
		{Type: MoveNumberToken, Text: "1"},
		{Type: SANToken, Text: "e4"},
		{Type: SANToken, Text: "e5"},
		{Type: MoveNumberToken, Text: "2"},
		{Type: SANToken, Text: "Nf3"},
		{Type: SANToken, Text: "Nc6"},
		{Type: ResultToken, Text: "*"},
	}
	testutil.AssertEqual(t, got, want)
}

func TestLexerVariationsAndComments(t *testing.T) {
	got := collect("1. e4 {King's pawn (best by test)} (1. d4 d5) e5")
	want := []Token{
		{Type: MoveNumberToken, Text: "1"},
		{Type: SANToken, Text: "e4"},
		{Type: CommentToken, Text: "King's pawn (best by test)"},
		{Type: VariationOpen, Text: "("},
		{Type: MoveNumberToken, Text: "1"},
		{Type: SANToken, Text: "d4"},
		{Type: SANToken, Text: "d5"},
		{Type: VariationClose, Text: ")"},
		{Type: SANToken, Text: "e5"},
	}
	testutil.AssertEqual(t, got, want)
}

func TestLexerNAGs(t *testing.T) {
	got := collect("e4 $1 !? +- = ∞")
	want := []Token{
		{Type: SANToken, Text: "e4"},
		{Type: NAGToken, Text: "$1"},
		{Type: NAGToken, Text: "!?"},
		{Type: NAGToken, Text: "+-"},
		{Type: NAGToken, Text: "="},
		{Type: NAGToken, Text: "∞"},
	}
	testutil.AssertEqual(t, got, want)
}

func TestLexerResults(t *testing.T) {
	for _, tt := range []struct {
		src  string
		want string
	}{
		{"1-0", "1-0"},
		{"0-1", "0-1"},
		{"1/2-1/2", "1/2-1/2"},
		{"1/2", "1/2-1/2"},
		{"*", "*"},
	} {
		got := collect(tt.src)
		testutil.AssertEqual(t, len(got), 1, "token count for %q", tt.src)
		testutil.AssertEqual(t, got[0].Type, ResultToken, "type for %q", tt.src)
		testutil.AssertEqual(t, got[0].Text, tt.want, "text for %q", tt.src)
	}
}

func TestLexerFigurineSAN(t *testing.T) {
	got := collect("♘f3 ♞c6 e8=♕ ♖xd1+")
	want := []Token{
		{Type: SANToken, Text: "Nf3"},
		{Type: SANToken, Text: "Nc6"},
		{Type: SANToken, Text: "e8=Q"},
		{Type: SANToken, Text: "Rxd1+"},
	}
	testutil.AssertEqual(t, got, want)
}

func TestLexerLegacyCastling(t *testing.T) {
	got := collect("0-0 0-0-0 0-0+")
	want := []Token{
		{Type: SANToken, Text: "O-O"},
		{Type: SANToken, Text: "O-O-O"},
		{Type: SANToken, Text: "O-O+"},
	}
	testutil.AssertEqual(t, got, want)
}

func TestLexerTagPair(t *testing.T) {
	got := collect("[Event \"World Championship\"]\n[FEN \"8/8/8/8/8/8/8/k6K w - - 0 1\"]")
	want := []Token{
		{Type: TagToken, Text: "Event"},
		{Type: StringToken, Text: "World Championship"},
		{Type: TagToken, Text: "FEN"},
		{Type: StringToken, Text: "8/8/8/8/8/8/8/k6K w - - 0 1"},
	}
	testutil.AssertEqual(t, got, want)
}

func TestLexerDiagramAndBracketTags(t *testing.T) {
	got := collect("e4 [D] [%clk 0:03:00] e5")
	want := []Token{
		{Type: SANToken, Text: "e4"},
		{Type: DiagramToken, Text: "[D]"},
		{Type: SANToken, Text: "e5"},
	}
	testutil.AssertEqual(t, got, want)
}

func TestLexerCommentStripsBracketTags(t *testing.T) {
	got := collect("{good move [%clk 0:03:00] indeed}")
	want := []Token{{Type: CommentToken, Text: "good move indeed"}}
	testutil.AssertEqual(t, got, want)
}

func TestLexerUnterminatedComment(t *testing.T) {
	got := collect("{runs to the end")
	want := []Token{{Type: CommentToken, Text: "runs to the end"}}
	testutil.AssertEqual(t, got, want)
}

func TestLexerUnterminatedString(t *testing.T) {
	got := collect("[White \"Unfinished\ne4")
	want := []Token{
		{Type: TagToken, Text: "White"},
		{Type: StringToken, Text: "Unfinished"},
		{Type: SANToken, Text: "e4"},
	}
	testutil.AssertEqual(t, got, want)
}

func TestLexerStrayClose(t *testing.T) {
	got := collect("} e4")
	want := []Token{
		{Type: UnknownToken, Text: "}"},
		{Type: SANToken, Text: "e4"},
	}
	testutil.AssertEqual(t, got, want)
}

func TestLexerSeekRestarts(t *testing.T) {
	lex := NewLexer("1. e4 e5")
	lex.Next() // move number
	tok := lex.Next()
	testutil.AssertEqual(t, tok.Text, "e4")

	offset := lex.Offset()
	lex.Next()
	lex.Seek(offset)
	again := lex.Next()
	testutil.AssertEqual(t, again.Text, "e5")
}

func TestLexerLineNumbers(t *testing.T) {
	lex := NewLexer("e4\ne5\nNf3")
	testutil.AssertEqual(t, lex.Next().Line, 1)
	testutil.AssertEqual(t, lex.Next().Line, 2)
	testutil.AssertEqual(t, lex.Next().Line, 3)
}
