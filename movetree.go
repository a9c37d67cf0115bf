// Package movetree turns PGN movetext into a navigable, editable tree
// of positions. A host UI parses a game, opens a session over the
// resulting tree, and drives replay and editing through the session's
// cursor; the render item stream feeds its display layer.
package movetree

import (
	"io"

	"github.com/pgnkit/movetree/internal/parser"
	"github.com/pgnkit/movetree/internal/render"
	"github.com/pgnkit/movetree/internal/rules"
	"github.com/pgnkit/movetree/internal/session"
	"github.com/pgnkit/movetree/internal/tree"
)

// Re-exported core types. Hosts receive these through the functions
// below without importing the internal packages.
type (
	Game    = parser.Game
	Session = session.Session
	Tree    = tree.Tree
	Node    = tree.Node
	NodeID  = tree.NodeID
	Item    = render.Item
	Options = render.Options
)

// NilNode is the absent-node sentinel.
const NilNode = tree.NilNode

// Parse parses a single game of PGN movetext (with optional tag-pair
// header) into a move tree. Parsing is tolerant: bad tokens never
// abort it.
func Parse(src string) (*Game, error) {
	return parser.Parse(src, rules.NewEngine())
}

// ParseAll parses every game in the input.
func ParseAll(r io.Reader) ([]*Game, error) {
	return parser.ParseAll(r, rules.NewEngine())
}

// NewSession opens an editing session over a parsed game, with the
// cursor on the root. One session owns the tree; concurrent use must
// be serialized by the host.
func NewSession(g *Game) *Session {
	return session.New(g.Tree, rules.NewEngine())
}

// Items flattens a game into the ordered item stream a display layer
// consumes.
func Items(g *Game, opts Options) []Item {
	return render.Items(g, opts)
}

// Movetext re-emits a game as PGN movetext.
func Movetext(g *Game, opts Options) string {
	return render.Movetext(g, opts)
}
