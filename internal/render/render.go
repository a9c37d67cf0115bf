// Package render flattens a parsed game into the ordered item list a
// display layer consumes: move-number labels, move labels carrying
// their FEN, comment paragraphs, annotation glyphs and variation
// brackets. It also re-emits movetext from the same item stream.
package render

import (
	"strings"

	"github.com/pgnkit/movetree/internal/figurine"
	"github.com/pgnkit/movetree/internal/parser"
	"github.com/pgnkit/movetree/internal/tree"
)

// ItemKind classifies a renderable item.
type ItemKind int

const (
	MoveNumberItem ItemKind = iota
	MoveItem
	CommentItem
	AnnotationItem
	LiteralItem
	VariationOpenItem
	VariationCloseItem
	ResultItem
)

// Item is one element of the flattened display stream. Move items
// carry the node id and resulting FEN so a click can navigate straight
// to the position.
type Item struct {
	Kind     ItemKind
	Text     string
	Node     tree.NodeID // set for MoveItem
	FEN      string      // set for MoveItem
	Mainline bool        // set for MoveItem
}

// Options controls item generation.
type Options struct {
	// Figurine replaces SAN piece letters with Unicode glyphs in move
	// labels.
	Figurine bool

	// Content strips.
	StripComments   bool
	StripNAGs       bool
	StripVariations bool
}

type renderer struct {
	t        *tree.Tree
	opts     Options
	literals map[tree.NodeID][]string
	items    []Item
}

// Items flattens a game into display order: mainline moves with each
// move's alternatives parenthesized directly after it, in the order
// they were discovered.
func Items(g *parser.Game, opts Options) []Item {
	if g == nil || g.Tree == nil {
		return nil
	}
	r := &renderer{
		t:        g.Tree,
		opts:     opts,
		literals: make(map[tree.NodeID][]string),
	}
	for _, lit := range g.Literals {
		r.literals[lit.After] = append(r.literals[lit.After], lit.Text)
	}

	root := g.Tree.Node(g.Tree.Root())
	if root.Comment != "" && !opts.StripComments {
		r.emit(Item{Kind: CommentItem, Text: root.Comment})
	}
	r.emitLiterals(root.ID)
	r.line(root.Next, true)

	if g.Result != "" {
		r.emit(Item{Kind: ResultItem, Text: g.Result})
	}
	return r.items
}

func (r *renderer) emit(it Item) {
	r.items = append(r.items, it)
}

func (r *renderer) emitLiterals(id tree.NodeID) {
	for _, text := range r.literals[id] {
		r.emit(Item{Kind: LiteralItem, Text: text})
	}
}

// line walks a chain of mainline continuations starting at id,
// emitting each node followed by the alternatives that branch off it.
// needNumber forces a full move number on the first emitted move, and
// is re-armed after anything that interrupts the move flow.
func (r *renderer) line(id tree.NodeID, needNumber bool) {
	for id != tree.NilNode {
		n := r.t.Node(id)
		if n == nil {
			return
		}

		r.emitNumber(n, needNumber)
		r.emit(Item{
			Kind:     MoveItem,
			Text:     r.moveText(n.SAN),
			Node:     n.ID,
			FEN:      n.FEN,
			Mainline: n.Mainline,
		})
		if !r.opts.StripNAGs {
			for _, glyph := range n.Annotations {
				r.emit(Item{Kind: AnnotationItem, Text: glyph})
			}
		}

		needNumber = false
		if n.Comment != "" && !r.opts.StripComments {
			r.emit(Item{Kind: CommentItem, Text: n.Comment})
			needNumber = true
		}
		if len(r.literals[n.ID]) > 0 {
			r.emitLiterals(n.ID)
			needNumber = true
		}

		// Alternatives to this move hang off its parent.
		if p := r.t.Node(n.Parent); p != nil && p.Next == id && !r.opts.StripVariations {
			for _, v := range p.Variations {
				r.emit(Item{Kind: VariationOpenItem, Text: "("})
				r.line(v, true)
				r.emit(Item{Kind: VariationCloseItem, Text: ")"})
				needNumber = true
			}
		}

		id = n.Next
	}
}

// emitNumber writes the move-number label. White moves always carry
// one; black moves only at a line start or after an interruption.
func (r *renderer) emitNumber(n *tree.Node, needNumber bool) {
	parentFEN := r.t.FEN(n.Parent)
	white := fenTurn(parentFEN) == 'w'
	if white {
		r.emit(Item{Kind: MoveNumberItem, Text: fenFullmove(parentFEN) + "."})
	} else if needNumber || n.Renumber {
		r.emit(Item{Kind: MoveNumberItem, Text: fenFullmove(parentFEN) + "..."})
	}
}

func (r *renderer) moveText(san string) string {
	if r.opts.Figurine {
		return figurine.ToFigurine(san)
	}
	return san
}

// fenTurn returns the side to move recorded in a FEN, defaulting to
// white on malformed input.
func fenTurn(fen string) byte {
	fields := strings.Fields(fen)
	if len(fields) < 2 || fields[1] == "" {
		return 'w'
	}
	return fields[1][0]
}

// fenFullmove returns the fullmove counter recorded in a FEN.
func fenFullmove(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) < 6 {
		return "1"
	}
	return fields[5]
}

// Movetext re-emits a game as PGN movetext (moves, comments,
// variations, result) without the tag-pair header.
func Movetext(g *parser.Game, opts Options) string {
	items := Items(g, opts)
	var b strings.Builder
	for i, it := range items {
		if i > 0 && needSpace(items[i-1], it) {
			b.WriteByte(' ')
		}
		switch it.Kind {
		case CommentItem:
			b.WriteString("{" + it.Text + "}")
		default:
			b.WriteString(it.Text)
		}
	}
	return b.String()
}

// needSpace suppresses the space between a move number and its move
// and inside variation brackets.
func needSpace(prev, cur Item) bool {
	if prev.Kind == MoveNumberItem && cur.Kind == MoveItem {
		return false
	}
	if prev.Kind == VariationOpenItem {
		return false
	}
	if cur.Kind == VariationCloseItem {
		return false
	}
	if prev.Kind == MoveItem && cur.Kind == AnnotationItem {
		return false
	}
	return true
}
