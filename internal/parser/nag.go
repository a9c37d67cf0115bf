package parser

// nagGlyphs maps numeric annotation codes to display glyphs. Codes
// without an entry are kept verbatim ("$27") so nothing is lost.
var nagGlyphs = map[string]string{
	"$1":   "!",
	"$2":   "?",
	"$3":   "!!",
	"$4":   "??",
	"$5":   "!?",
	"$6":   "?!",
	"$7":   "□",
	"$10":  "=",
	"$13":  "∞",
	"$14":  "⩲",
	"$15":  "⩱",
	"$16":  "±",
	"$17":  "∓",
	"$18":  "+-",
	"$19":  "-+",
	"$22":  "⊙",
	"$32":  "⟳",
	"$36":  "↑",
	"$40":  "→",
	"$132": "⇆",
	"$140": "∆",
	"$146": "N",
}

// AnnotationGlyph maps a NAG token (numeric code or human annotation
// symbol) to its display glyph.
func AnnotationGlyph(code string) string {
	if glyph, ok := nagGlyphs[code]; ok {
		return glyph
	}
	return code
}
