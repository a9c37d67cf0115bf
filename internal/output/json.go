package output

import (
	"strconv"
	"strings"

	"github.com/pgnkit/movetree/internal/config"
	"github.com/pgnkit/movetree/internal/parser"
	"github.com/pgnkit/movetree/internal/tree"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	Tags       map[string]string `json:"tags,omitempty"`
	InitialFEN string            `json:"initialFEN,omitempty"`
	Moves      []JSONMove        `json:"moves,omitempty"`
	Result     string            `json:"result,omitempty"`
	PlyCount   int               `json:"plyCount,omitempty"`
	FinalFEN   string            `json:"finalFEN,omitempty"`
}

// JSONMove represents a move in JSON format. Variations carry the
// alternative lines to this move, each as its own move list.
type JSONMove struct {
	MoveNumber  int          `json:"moveNumber,omitempty"`
	Color       string       `json:"color"`
	SAN         string       `json:"san"`
	FEN         string       `json:"fen,omitempty"`
	Annotations []string     `json:"annotations,omitempty"`
	Comment     string       `json:"comment,omitempty"`
	Variations  [][]JSONMove `json:"variations,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a parsed game to its JSON form.
func GameToJSON(game *parser.Game, cfg *config.Config) *JSONGame {
	jg := &JSONGame{
		Tags:   game.Tags,
		Result: game.Result,
	}
	if jg.Result == "" {
		jg.Result = "*"
	}
	if game.Tree == nil {
		return jg
	}

	t := game.Tree
	root := t.Node(t.Root())
	jg.InitialFEN = root.FEN
	jg.Moves = convertLine(t, root.Next, cfg)
	end := t.MainlineEnd(t.Root())
	jg.PlyCount = t.Ply(end)
	jg.FinalFEN = t.FEN(end)
	return jg
}

// convertLine converts a chain of mainline continuations, attaching
// each move's alternatives as nested variation lists.
func convertLine(t *tree.Tree, id tree.NodeID, cfg *config.Config) []JSONMove {
	var moves []JSONMove
	for id != tree.NilNode {
		n := t.Node(id)
		if n == nil {
			break
		}
		parentFEN := t.FEN(n.Parent)
		jm := JSONMove{
			Color: colorName(parentFEN),
			SAN:   n.SAN,
			FEN:   n.FEN,
		}
		if cfg.KeepNAGs {
			jm.Annotations = n.Annotations
		}
		if cfg.KeepComments {
			jm.Comment = n.Comment
		}
		if jm.Color == "white" {
			jm.MoveNumber = fullmove(parentFEN)
		}
		if p := t.Node(n.Parent); p != nil && p.Next == id && cfg.KeepVariations {
			for _, v := range p.Variations {
				if line := convertLine(t, v, cfg); len(line) > 0 {
					jm.Variations = append(jm.Variations, line)
				}
			}
		}
		moves = append(moves, jm)
		id = n.Next
	}
	return moves
}

func colorName(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) >= 2 && fields[1] == "b" {
		return "black"
	}
	return "white"
}

func fullmove(fen string) int {
	fields := strings.Fields(fen)
	if len(fields) < 6 {
		return 1
	}
	n, err := strconv.Atoi(fields[5])
	if err != nil {
		return 1
	}
	return n
}
