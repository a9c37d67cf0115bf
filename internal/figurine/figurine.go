// Package figurine converts between Unicode chess-piece glyphs and
// ASCII piece letters in SAN text. SAN never encodes color in the piece
// letter, so both white and black glyphs normalize to the same letter;
// figurine output always uses the white glyph set.
package figurine

import "strings"

// Glyph-to-letter table. Black glyphs are accepted on input for
// tolerance, even though ToFigurine only ever emits white glyphs.
var glyphToLetter = map[rune]rune{
	'♔': 'K', '♕': 'Q', '♖': 'R', '♗': 'B', '♘': 'N',
	'♚': 'K', '♛': 'Q', '♜': 'R', '♝': 'B', '♞': 'N',
}

var letterToGlyph = map[rune]rune{
	'K': '♔', 'Q': '♕', 'R': '♖', 'B': '♗', 'N': '♘',
}

// PieceLetter returns the ASCII piece letter for a chess-piece glyph.
func PieceLetter(r rune) (byte, bool) {
	letter, ok := glyphToLetter[r]
	if !ok {
		return 0, false
	}
	return byte(letter), true
}

// ToASCII replaces each chess-piece glyph in text with its ASCII piece
// letter. All other content passes through unchanged.
func ToASCII(text string) string {
	if !strings.ContainsFunc(text, func(r rune) bool {
		_, ok := glyphToLetter[r]
		return ok
	}) {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if letter, ok := glyphToLetter[r]; ok {
			sb.WriteRune(letter)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// ToFigurine replaces a SAN token's leading piece letter, or the piece
// letter following '=' (promotion), with the corresponding glyph.
// Pawn-move and castling tokens are returned unchanged.
func ToFigurine(token string) string {
	runes := []rune(token)
	if len(runes) == 0 {
		return token
	}

	changed := false
	if glyph, ok := letterToGlyph[runes[0]]; ok {
		runes[0] = glyph
		changed = true
	}
	for i := 1; i < len(runes); i++ {
		if runes[i-1] != '=' {
			continue
		}
		if glyph, ok := letterToGlyph[runes[i]]; ok {
			runes[i] = glyph
			changed = true
		}
	}

	if !changed {
		return token
	}
	return string(runes)
}
