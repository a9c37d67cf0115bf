// Package parser provides movetext lexing and tree building.
package parser

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Tokens returned to the builder
	EOFToken TokenType = iota
	TagToken
	StringToken
	MoveNumberToken
	SANToken
	CommentToken
	NAGToken
	VariationOpen
	VariationClose
	ResultToken
	DiagramToken
	UnknownToken

	// Internal token used while scanning
	noToken
)

// tokenTypeNames maps token types to their string representations.
var tokenTypeNames = [...]string{
	EOFToken:        "EOF",
	TagToken:        "TAG",
	StringToken:     "STRING",
	MoveNumberToken: "MOVE_NUMBER",
	SANToken:        "SAN",
	CommentToken:    "COMMENT",
	NAGToken:        "NAG",
	VariationOpen:   "VARIATION_OPEN",
	VariationClose:  "VARIATION_CLOSE",
	ResultToken:     "RESULT",
	DiagramToken:    "DIAGRAM_MARKER",
	UnknownToken:    "UNKNOWN",
	noToken:         "NO_TOKEN",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "INVALID"
}

// Token is one lexical token of movetext.
type Token struct {
	Type TokenType

	// Text holds the token payload: the SAN text, comment body, NAG
	// code or glyph, result string, tag name or value, or the raw text
	// of an unknown token.
	Text string

	// Offset is the byte offset of the token start in the (normalized)
	// input; Line is the 1-based line it starts on.
	Offset int
	Line   int
}
