package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/pgnkit/movetree/internal/figurine"
)

// Lexer streams movetext into tokens. It scans a string by byte
// offset, which makes it restartable: Offset and Seek expose the
// position so a suspended parse can resume exactly where it stopped.
// The lexer performs no position validation; that is the builder's
// job.
type Lexer struct {
	src  string
	pos  int
	line int
}

// Character classes for the dispatch table.
type charClass byte

const (
	clOther charClass = iota
	clSpace
	clTagStart
	clTagEnd
	clQuote
	clCommentStart
	clCommentEnd
	clDollar
	clAnnotate
	clRAVStart
	clRAVEnd
	clDot
	clPercent
	clSemicolon
	clStar
	clDash
	clPlus
	clEquals
	clDigit
	clAlpha
	clHigh
)

var chClass [256]charClass

// moveChars marks bytes that may continue a SAN token.
var moveChars [256]bool

func init() {
	for _, c := range []byte{' ', '\t', '\r', '\n'} {
		chClass[c] = clSpace
	}
	chClass['['] = clTagStart
	chClass[']'] = clTagEnd
	chClass['"'] = clQuote
	chClass['{'] = clCommentStart
	chClass['}'] = clCommentEnd
	chClass['$'] = clDollar
	chClass['!'] = clAnnotate
	chClass['?'] = clAnnotate
	chClass['('] = clRAVStart
	chClass[')'] = clRAVEnd
	chClass['.'] = clDot
	chClass['%'] = clPercent
	chClass[';'] = clSemicolon
	chClass['*'] = clStar
	chClass['-'] = clDash
	chClass['+'] = clPlus
	chClass['='] = clEquals
	for c := byte('0'); c <= '9'; c++ {
		chClass[c] = clDigit
	}
	for c := byte('A'); c <= 'Z'; c++ {
		chClass[c] = clAlpha
		chClass[c+32] = clAlpha
	}
	chClass['_'] = clAlpha
	for c := 0x80; c < 0x100; c++ {
		chClass[c] = clHigh
	}

	// Files, ranks, piece letters, capture/promotion/castling marks.
	for c := byte('a'); c <= 'h'; c++ {
		moveChars[c] = true
	}
	for c := byte('1'); c <= '8'; c++ {
		moveChars[c] = true
	}
	for _, c := range []byte{'K', 'Q', 'R', 'N', 'B', 'k', 'q', 'r', 'n', 'b'} {
		moveChars[c] = true
	}
	for _, c := range []byte{'x', 'X', ':', '-', '=', 'O', 'o', '0', 'p'} {
		moveChars[c] = true
	}
}

// Evaluation glyphs recognized as human annotations.
var evalGlyphs = map[rune]bool{
	'∞': true, '±': true, '∓': true, '⩲': true, '⩱': true,
	'□': true, '⇆': true, '↑': true, '→': true, '⊕': true,
}

// NewLexer creates a lexer for the given movetext.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Offset returns the current byte offset. Together with the builder's
// context stack it is the entire resumable state of a parse.
func (l *Lexer) Offset() int {
	return l.pos
}

// Seek repositions the lexer at the given byte offset.
func (l *Lexer) Seek(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(l.src) {
		offset = len(l.src)
	}
	l.pos = offset
	l.line = 1 + strings.Count(l.src[:offset], "\n")
}

// Next returns the next token. At end of input it returns EOFToken
// forever.
func (l *Lexer) Next() Token {
	for {
		tok := l.scan()
		if tok.Type != noToken {
			return tok
		}
	}
}

func (l *Lexer) scan() Token {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return Token{Type: EOFToken, Offset: l.pos, Line: l.line}
	}

	start := l.pos
	startLine := l.line
	ch := l.src[l.pos]

	mk := func(t TokenType, text string) Token {
		return Token{Type: t, Text: text, Offset: start, Line: startLine}
	}

	switch chClass[ch] {
	case clTagStart:
		return l.scanBracket(mk)

	case clTagEnd:
		l.pos++
		return mk(noToken, "")

	case clQuote:
		l.pos++
		return mk(StringToken, l.scanString())

	case clCommentStart:
		l.pos++
		return mk(CommentToken, l.scanComment())

	case clCommentEnd:
		// Stray close; surfaced so the builder can count it.
		l.pos++
		return mk(UnknownToken, "}")

	case clDollar:
		l.pos++
		ds := l.pos
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		return mk(NAGToken, "$"+l.src[ds:l.pos])

	case clAnnotate:
		for l.pos < len(l.src) && chClass[l.src[l.pos]] == clAnnotate {
			l.pos++
		}
		return mk(NAGToken, l.src[start:l.pos])

	case clRAVStart:
		l.pos++
		return mk(VariationOpen, "(")

	case clRAVEnd:
		l.pos++
		return mk(VariationClose, ")")

	case clDot:
		for l.pos < len(l.src) && l.src[l.pos] == '.' {
			l.pos++
		}
		return mk(noToken, "")

	case clPercent, clSemicolon:
		// PGN escape / rest-of-line comment: skip the line.
		l.skipLine()
		return mk(noToken, "")

	case clStar:
		l.pos++
		return mk(ResultToken, "*")

	case clDash:
		if strings.HasPrefix(l.src[l.pos:], "-+") {
			l.pos += 2
			return mk(NAGToken, "-+")
		}
		l.pos++
		for l.pos < len(l.src) && l.src[l.pos] == '-' {
			l.pos++
		}
		return mk(UnknownToken, l.src[start:l.pos])

	case clPlus:
		if strings.HasPrefix(l.src[l.pos:], "+-") {
			l.pos += 2
			return mk(NAGToken, "+-")
		}
		for l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '#') {
			l.pos++
		}
		return mk(UnknownToken, l.src[start:l.pos])

	case clEquals:
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '+' {
			l.pos++
		}
		return mk(NAGToken, l.src[start:l.pos])

	case clDigit:
		return l.scanNumeric(mk)

	case clAlpha:
		return l.scanWord(mk)

	case clHigh:
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if letter, ok := figurine.PieceLetter(r); ok {
			// Figurine SAN: the glyph is the piece letter.
			l.pos += size
			return l.scanWordFrom(mk, string(letter))
		}
		l.pos += size
		if evalGlyphs[r] {
			return mk(NAGToken, string(r))
		}
		return mk(UnknownToken, string(r))

	default:
		l.pos++
		return mk(UnknownToken, l.src[start:l.pos])
	}
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) && chClass[l.src[l.pos]] == clSpace {
		if l.src[l.pos] == '\n' {
			l.line++
		}
		l.pos++
	}
}

func (l *Lexer) skipLine() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
}

// scanBracket handles '[': a [D] diagram marker, a [%...] bracket tag
// (stripped), or the start of a [Key "Value"] tag pair.
func (l *Lexer) scanBracket(mk func(TokenType, string) Token) Token {
	l.pos++ // consume '['
	rest := l.src[l.pos:]

	if strings.HasPrefix(rest, "D]") {
		l.pos += 2
		return mk(DiagramToken, "[D]")
	}
	if strings.HasPrefix(rest, "%") {
		for l.pos < len(l.src) && l.src[l.pos] != ']' && l.src[l.pos] != '\n' {
			l.pos++
		}
		if l.pos < len(l.src) && l.src[l.pos] == ']' {
			l.pos++
		}
		return mk(noToken, "")
	}

	for l.pos < len(l.src) && chClass[l.src[l.pos]] == clSpace && l.src[l.pos] != '\n' {
		l.pos++
	}
	nameStart := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if chClass[c] == clAlpha || isDigit(c) {
			l.pos++
		} else {
			break
		}
	}
	if l.pos == nameStart {
		return mk(UnknownToken, "[")
	}
	return mk(TagToken, l.src[nameStart:l.pos])
}

// scanString gathers a quoted tag value. An unterminated string runs
// to end of line.
func (l *Lexer) scanString() string {
	var sb strings.Builder
	escaped := false
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\n' {
			break
		}
		l.pos++
		switch {
		case escaped:
			sb.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			return sb.String()
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// scanComment gathers text up to the first matching '}'. Parentheses
// inside a comment are plain text. An unterminated comment consumes to
// end of input rather than failing.
func (l *Lexer) scanComment() string {
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '}' {
		if l.src[l.pos] == '\n' {
			l.line++
		}
		l.pos++
	}
	text := l.src[start:l.pos]
	if l.pos < len(l.src) {
		l.pos++ // consume '}'
	}
	return strings.TrimSpace(stripBracketTags(text))
}

// stripBracketTags removes embedded [%...] command tags (clock times,
// arrows, etc.) from comment text.
func stripBracketTags(text string) string {
	if !strings.Contains(text, "[%") {
		return text
	}
	var sb strings.Builder
	for {
		i := strings.Index(text, "[%")
		if i < 0 {
			sb.WriteString(text)
			break
		}
		sb.WriteString(text[:i])
		rest := text[i:]
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		text = rest[end+1:]
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// scanNumeric handles tokens starting with a digit: results, legacy
// castling, or a move number.
func (l *Lexer) scanNumeric(mk func(TokenType, string) Token) Token {
	start := l.pos
	rest := l.src[l.pos:]

	switch {
	case strings.HasPrefix(rest, "1-0"):
		l.pos += 3
		return mk(ResultToken, "1-0")
	case strings.HasPrefix(rest, "0-1"):
		l.pos += 3
		return mk(ResultToken, "0-1")
	case strings.HasPrefix(rest, "1/2-1/2"):
		l.pos += 7
		return mk(ResultToken, "1/2-1/2")
	case strings.HasPrefix(rest, "1/2"):
		l.pos += 3
		return mk(ResultToken, "1/2-1/2")
	case strings.HasPrefix(rest, "0-0-0"):
		l.pos += 5
		return mk(SANToken, "O-O-O"+l.scanCheckSuffix())
	case strings.HasPrefix(rest, "0-0"):
		l.pos += 3
		return mk(SANToken, "O-O"+l.scanCheckSuffix())
	}

	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	text := l.src[start:l.pos]
	// Trailing dots ("12.", "12...") belong to the move number.
	for l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
	}
	return mk(MoveNumberToken, text)
}

// scanWord handles alphabetic tokens: SAN candidates or arbitrary
// words.
func (l *Lexer) scanWord(mk func(TokenType, string) Token) Token {
	prefix := l.src[l.pos : l.pos+1]
	l.pos++
	return l.scanWordFrom(mk, prefix)
}

// scanWordFrom continues a word whose first character (already
// consumed) normalized to prefix. Piece glyphs are accepted after '='
// so figurine promotions tokenize as one move; only SAN tokens are
// normalized this way, comment text keeps its glyphs.
func (l *Lexer) scanWordFrom(mk func(TokenType, string) Token, prefix string) Token {
	var sb strings.Builder
	sb.WriteString(prefix)
	last := prefix[len(prefix)-1]
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if moveChars[c] {
			sb.WriteByte(c)
			last = c
			l.pos++
			continue
		}
		if chClass[c] == clHigh && last == '=' {
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if letter, ok := figurine.PieceLetter(r); ok {
				sb.WriteByte(letter)
				last = letter
				l.pos += size
				continue
			}
		}
		break
	}
	text := sb.String() + l.scanCheckSuffix()

	if sanPlausible(text) {
		return mk(SANToken, text)
	}
	return mk(UnknownToken, text)
}

// scanCheckSuffix consumes '+' and '#' characters directly following a
// move and returns them.
func (l *Lexer) scanCheckSuffix() string {
	start := l.pos
	for l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '#') {
		l.pos++
	}
	return l.src[start:l.pos]
}

// sanPlausible is a cheap shape check; the rules engine decides
// legality.
func sanPlausible(text string) bool {
	core := strings.TrimRight(text, "+#")
	switch core {
	case "O-O", "O-O-O", "o-o", "o-o-o":
		return true
	}
	if len(core) < 2 {
		return false
	}
	hasFile, hasRank := false, false
	for i := 0; i < len(core); i++ {
		c := core[i]
		if c >= 'a' && c <= 'h' {
			hasFile = true
		}
		if c >= '1' && c <= '8' {
			hasRank = true
		}
	}
	return hasFile && hasRank
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
