// Package rules defines the rules-engine contract the tree builder and
// session depend on, and an adapter over github.com/corentings/chess.
// The engine is the single authority for move legality and position
// computation: node FENs are always derived through it, never mutated
// independently.
package rules

import (
	"strings"

	chess "github.com/corentings/chess/v2"

	"github.com/pgnkit/movetree/internal/errors"
)

// Result describes a successfully applied move.
type Result struct {
	SAN       string // canonical SAN for the move
	FEN       string // position after the move
	From      string // origin square, e.g. "e2"
	To        string // destination square, e.g. "e4"
	Promotion string // promotion piece letter ("Q", "N", ...) or ""
}

// Engine validates a move against a position and returns the resulting
// position. Implementations must be stateless with respect to calls:
// every operation takes the position as a FEN.
type Engine interface {
	// ApplyMove applies a SAN token or coordinate move spec to the
	// position. With sloppy set, disambiguation shortcuts, check-suffix
	// noise and legacy castling forms are tolerated.
	ApplyMove(fen, move string, sloppy bool) (Result, bool)

	// StartingFEN returns the standard starting position.
	StartingFEN() string

	// Turn returns 'w' or 'b' for the side to move in fen.
	Turn(fen string) byte

	// ValidateFEN reports whether fen describes a usable position.
	ValidateFEN(fen string) error
}

// SloppyEngine adapts github.com/corentings/chess to the Engine
// contract with tolerant SAN matching.
type SloppyEngine struct{}

// NewEngine returns the default rules engine.
func NewEngine() *SloppyEngine {
	return &SloppyEngine{}
}

func positionFromFEN(fen string) (*chess.Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidFEN, err.Error())
	}
	return chess.NewGame(opt).Position(), nil
}

// ApplyMove implements Engine.
func (e *SloppyEngine) ApplyMove(fen, move string, sloppy bool) (Result, bool) {
	pos, err := positionFromFEN(fen)
	if err != nil {
		return Result{}, false
	}

	m := decodeMove(pos, move, sloppy)
	if m == nil {
		return Result{}, false
	}

	next := pos.Update(m)
	if next == nil {
		return Result{}, false
	}

	return Result{
		SAN:       chess.AlgebraicNotation{}.Encode(pos, m),
		FEN:       next.String(),
		From:      m.S1().String(),
		To:        m.S2().String(),
		Promotion: promotionLetter(m.Promo()),
	}, true
}

// decodeMove tries the given text, then progressively relaxed forms.
func decodeMove(pos *chess.Position, move string, sloppy bool) *chess.Move {
	if m, err := (chess.AlgebraicNotation{}).Decode(pos, move); err == nil {
		return m
	}
	if !sloppy {
		return nil
	}
	for _, candidate := range sloppyForms(move) {
		if m, err := (chess.AlgebraicNotation{}).Decode(pos, candidate); err == nil {
			return m
		}
	}
	// Coordinate input ("e2e4", "e7e8q") from interactive callers.
	if m, err := (chess.UCINotation{}).Decode(pos, strings.ToLower(move)); err == nil {
		return m
	}
	return nil
}

// sloppyForms returns relaxed rewrites of a move token: legacy castling
// digits, stripped check/annotation suffixes, normalized capture colon.
func sloppyForms(move string) []string {
	var forms []string
	seen := map[string]bool{move: true}
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			forms = append(forms, s)
		}
	}

	trimmed := strings.TrimRight(move, "+#!?")
	add(trimmed)

	for _, base := range []string{move, trimmed} {
		c := strings.ReplaceAll(base, "0-0-0", "O-O-O")
		c = strings.ReplaceAll(c, "0-0", "O-O")
		c = strings.ReplaceAll(c, "o-o-o", "O-O-O")
		c = strings.ReplaceAll(c, "o-o", "O-O")
		add(c)
		add(strings.ReplaceAll(c, ":", "x"))
		add(strings.TrimSuffix(c, " e.p."))
	}
	return forms
}

func promotionLetter(p chess.PieceType) string {
	switch p {
	case chess.Queen:
		return "Q"
	case chess.Rook:
		return "R"
	case chess.Bishop:
		return "B"
	case chess.Knight:
		return "N"
	default:
		return ""
	}
}

// StartingFEN implements Engine.
func (e *SloppyEngine) StartingFEN() string {
	return chess.StartingPosition().String()
}

// Turn implements Engine. Malformed FENs report white to move.
func (e *SloppyEngine) Turn(fen string) byte {
	pos, err := positionFromFEN(fen)
	if err != nil {
		return 'w'
	}
	if pos.Turn() == chess.Black {
		return 'b'
	}
	return 'w'
}

// ValidateFEN implements Engine.
func (e *SloppyEngine) ValidateFEN(fen string) error {
	_, err := positionFromFEN(fen)
	return err
}
