package parser

import (
	"io"

	"github.com/pgnkit/movetree/internal/errors"
	"github.com/pgnkit/movetree/internal/rules"
	"github.com/pgnkit/movetree/internal/tree"
)

// Stats counts non-fatal parse diagnostics. They may be logged but are
// not part of the structural contract.
type Stats struct {
	TokensSkipped    int
	IllegalMoves     int
	DuplicateResults int
}

// Literal is an input token that could not become a node (an illegal
// move, per the compatibility decision to echo rather than drop). It
// is surfaced as display text after the node it followed.
type Literal struct {
	After tree.NodeID
	Text  string
}

// Game is the parse product: the move tree plus everything that is not
// a node.
type Game struct {
	Tree     *tree.Tree
	Tags     map[string]string
	Result   string
	Literals []Literal
	Stats    Stats
}

// contextKind distinguishes the mainline context from variation
// contexts.
type contextKind int

const (
	mainContext contextKind = iota
	variationContext
)

// context is one frame of the builder's explicit stack. Variations
// nest arbitrarily; an explicit stack (rather than call recursion)
// bounds stack growth on adversarial input and makes the parse
// resumable: the whole resumable state is this stack plus the lexer's
// byte offset.
type context struct {
	kind contextKind

	// fen is the current position of this line.
	fen string

	// attach is the node the next created node will continue from.
	attach tree.NodeID

	// lastCreated is the most recent node created in this context, or
	// NilNode; comments and annotations bind to it.
	lastCreated tree.NodeID

	// pendingComment buffers comment text seen before any node exists
	// in this context; it binds to the first node created here.
	pendingComment string

	// lastWasInterrupt is set after a comment, closed variation or
	// diagram marker so the following black move renders as "N...".
	lastWasInterrupt bool

	// baseHistoryLen is the ply count at which this context began.
	baseHistoryLen int
}

// Builder consumes tokens and constructs the move tree, validating
// each candidate move through the rules engine. All parse errors are
// local and non-fatal: the builder always yields a best-effort tree.
type Builder struct {
	lex    *Lexer
	engine rules.Engine

	tree     *tree.Tree
	stack    []context
	tags     map[string]string
	result   string
	literals []Literal
	stats    Stats

	cur        Token
	primed     bool
	finished   bool
	pendingTag string
}

// NewBuilder creates a builder over the given movetext. The lexer
// normalizes figurine glyphs inside SAN tokens; comment text keeps
// them verbatim.
func NewBuilder(src string, engine rules.Engine) *Builder {
	return &Builder{
		lex:    NewLexer(src),
		engine: engine,
		tags:   make(map[string]string),
	}
}

// Offset returns the lexer's byte offset; with the context stack it is
// the entire state a chunked parse needs to preserve between chunks.
func (b *Builder) Offset() int {
	return b.lex.Offset()
}

func (b *Builder) peek() Token {
	if !b.primed {
		b.cur = b.lex.Next()
		b.primed = true
	}
	return b.cur
}

func (b *Builder) consume() {
	b.primed = false
}

// Parse runs the current game to completion and returns it. Calling
// Parse again continues with the next game in the input; it returns
// ErrNoGame when the input is exhausted.
func (b *Builder) Parse() (*Game, error) {
	if b.finished {
		b.reset()
	}
	for {
		done, err := b.ParseChunk(256)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	game := b.Game()
	if game.Tree == nil && len(game.Tags) == 0 && game.Result == "" {
		return nil, errors.ErrNoGame
	}
	return game, nil
}

// ParseChunk consumes up to maxTokens tokens (unlimited if negative)
// and reports whether the current game is complete. It allows a host
// to parse very large movetext cooperatively without stalling a UI
// thread; chunks of the same parse must not run concurrently.
func (b *Builder) ParseChunk(maxTokens int) (bool, error) {
	if b.finished {
		return true, nil
	}
	for n := 0; maxTokens < 0 || n < maxTokens; n++ {
		tok := b.peek()
		if tok.Type == EOFToken {
			b.finish()
			return true, nil
		}
		if b.boundary(tok) {
			b.finish()
			return true, nil
		}
		b.consume()
		b.step(tok)
	}
	return false, nil
}

// boundary reports whether tok begins the next game rather than
// continuing the current one.
func (b *Builder) boundary(tok Token) bool {
	switch tok.Type {
	case TagToken:
		// Header of the next game.
		return b.tree != nil || b.result != ""
	case SANToken, MoveNumberToken:
		// Movetext after a recorded result belongs to the next game;
		// games without tag headers still split at their result.
		// A repeated result token is not movetext, so trailing
		// duplicates stay suppressed.
		return b.result != ""
	}
	return false
}

// Game returns the current (possibly still partial) parse product.
func (b *Builder) Game() *Game {
	return &Game{
		Tree:     b.tree,
		Tags:     b.tags,
		Result:   b.result,
		Literals: b.literals,
		Stats:    b.stats,
	}
}

func (b *Builder) reset() {
	b.tree = nil
	b.stack = nil
	b.tags = make(map[string]string)
	b.result = ""
	b.literals = nil
	b.stats = Stats{}
	b.finished = false
	b.pendingTag = ""
}

// ensureTree creates the tree on first demand. A FEN tag (puzzle or
// other non-standard setup) establishes the root position; an invalid
// one falls back to the standard start.
func (b *Builder) ensureTree() {
	if b.tree != nil {
		return
	}
	start := b.engine.StartingFEN()
	if fen, ok := b.tags["FEN"]; ok && b.engine.ValidateFEN(fen) == nil {
		start = fen
	}
	b.tree = tree.New(start)
	b.stack = []context{{
		kind:        mainContext,
		fen:         start,
		attach:      b.tree.Root(),
		lastCreated: tree.NilNode,
	}}
}

func (b *Builder) top() *context {
	return &b.stack[len(b.stack)-1]
}

func (b *Builder) step(tok Token) {
	switch tok.Type {
	case TagToken:
		b.pendingTag = tok.Text

	case StringToken:
		if b.pendingTag != "" {
			b.tags[b.pendingTag] = tok.Text
			b.pendingTag = ""
		} else {
			b.stats.TokensSkipped++
		}

	case MoveNumberToken:
		// Move numbers are derived from ply count, never trusted from
		// the source text.

	case SANToken:
		b.applySAN(tok.Text)

	case CommentToken:
		b.ensureTree()
		ctx := b.top()
		if ctx.lastCreated != tree.NilNode {
			appendComment(b.tree.Node(ctx.lastCreated), tok.Text)
		} else if ctx.pendingComment == "" {
			ctx.pendingComment = tok.Text
		} else {
			ctx.pendingComment += " " + tok.Text
		}
		ctx.lastWasInterrupt = true

	case NAGToken:
		b.ensureTree()
		ctx := b.top()
		if ctx.lastCreated == tree.NilNode {
			b.stats.TokensSkipped++
			return
		}
		node := b.tree.Node(ctx.lastCreated)
		node.Annotations = append(node.Annotations, AnnotationGlyph(tok.Text))

	case VariationOpen:
		b.openVariation()

	case VariationClose:
		if len(b.stack) > 1 {
			b.closeVariation()
		} else {
			b.stats.TokensSkipped++
		}

	case ResultToken:
		if b.result == "" {
			b.result = tok.Text
		} else {
			b.stats.DuplicateResults++
		}

	case DiagramToken:
		// Presentation hint for a collaborator; the tree ignores it.
		b.ensureTree()
		b.top().lastWasInterrupt = true

	default:
		b.stats.TokensSkipped++
	}
}

// applySAN validates a candidate move and grows the tree. A token the
// engine rejects is echoed as literal display text; it never aborts
// the parse.
func (b *Builder) applySAN(text string) {
	b.ensureTree()
	ctx := b.top()

	res, ok := b.engine.ApplyMove(ctx.fen, text, true)
	if !ok {
		b.literals = append(b.literals, Literal{After: ctx.attach, Text: text})
		b.stats.IllegalMoves++
		return
	}

	firstOfLine := ctx.lastCreated == tree.NilNode
	id := b.tree.Attach(ctx.attach, res.SAN, res.FEN)
	node := b.tree.Node(id)
	node.Renumber = ctx.lastWasInterrupt || (firstOfLine && ctx.kind == variationContext)
	if ctx.pendingComment != "" {
		node.Comment = ctx.pendingComment
		ctx.pendingComment = ""
	}

	ctx.attach = id
	ctx.lastCreated = id
	ctx.fen = res.FEN
	ctx.lastWasInterrupt = false
}

// openVariation pushes a context whose starting position is the
// position before the move the variation is commenting on (the
// standard PGN meaning of "alternative to the move just played").
func (b *Builder) openVariation() {
	b.ensureTree()
	ctx := b.top()

	branch := ctx.attach
	fen := ctx.fen
	if ctx.lastCreated != tree.NilNode {
		branch = b.tree.Node(ctx.attach).Parent
		fen = b.tree.FEN(branch)
	}
	b.stack = append(b.stack, context{
		kind:           variationContext,
		fen:            fen,
		attach:         branch,
		lastCreated:    tree.NilNode,
		baseHistoryLen: b.tree.Ply(branch),
	})
}

func (b *Builder) closeVariation() {
	popped := b.top()
	if popped.pendingComment != "" {
		// Comment in an otherwise empty variation has nothing to bind
		// to.
		b.stats.TokensSkipped++
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.top().lastWasInterrupt = true
}

// finish implicitly closes any still-open variations and seals the
// game.
func (b *Builder) finish() {
	for len(b.stack) > 1 {
		b.closeVariation()
	}
	if len(b.stack) == 1 {
		ctx := b.top()
		if ctx.pendingComment != "" && ctx.lastCreated == tree.NilNode {
			// Comment-only input binds to the root.
			appendComment(b.tree.Node(b.tree.Root()), ctx.pendingComment)
			ctx.pendingComment = ""
		}
	}
	b.pendingTag = ""
	b.finished = true
}

func appendComment(n *tree.Node, text string) {
	if n.Comment == "" {
		n.Comment = text
	} else {
		n.Comment += " " + text
	}
}

// Parse parses a single game from movetext.
func Parse(src string, engine rules.Engine) (*Game, error) {
	return NewBuilder(src, engine).Parse()
}

// ParseAll parses every game in the input and returns one Game per
// game found. Junk between games is skipped.
func ParseAll(r io.Reader, engine rules.Engine) ([]*Game, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read input")
	}

	b := NewBuilder(string(raw), engine)
	var games []*Game
	for {
		game, err := b.Parse()
		if err != nil {
			if errors.Is(err, errors.ErrNoGame) {
				break
			}
			return games, err
		}
		games = append(games, game)
	}
	if len(games) == 0 {
		return nil, errors.ErrNoGame
	}
	return games, nil
}
