// Package session owns the tree and cursor for one editing session.
// There are no package-level globals: every cursor lives in a Session
// value, and concurrent use of one Session must be serialized by the
// caller.
package session

import (
	"github.com/pgnkit/movetree/internal/errors"
	"github.com/pgnkit/movetree/internal/rules"
	"github.com/pgnkit/movetree/internal/tree"
)

// Session is a cursor over one move tree, with interactive edit
// operations. Navigation operations return the destination position's
// FEN so the caller can render it; the returned FEN is authoritative
// immediately.
type Session struct {
	tree   *tree.Tree
	engine rules.Engine
	cursor tree.NodeID
}

// New creates a session over t with the cursor on the root.
func New(t *tree.Tree, engine rules.Engine) *Session {
	return &Session{
		tree:   t,
		engine: engine,
		cursor: t.Root(),
	}
}

// Tree returns the underlying move tree.
func (s *Session) Tree() *tree.Tree {
	return s.tree
}

// Cursor returns the current node id.
func (s *Session) Cursor() tree.NodeID {
	return s.cursor
}

// FEN returns the position at the cursor. For the root this is the
// tree's recorded starting position.
func (s *Session) FEN() string {
	return s.tree.FEN(s.cursor)
}

// ToRoot moves the cursor to the root.
func (s *Session) ToRoot() string {
	s.cursor = s.tree.Root()
	return s.FEN()
}

// ToEnd follows mainline continuations from the cursor to the last
// node of the line.
func (s *Session) ToEnd() string {
	if end := s.tree.MainlineEnd(s.cursor); end != tree.NilNode {
		s.cursor = end
	}
	return s.FEN()
}

// ToParent moves the cursor one node back. No-op on the root.
func (s *Session) ToParent() string {
	if n := s.tree.Node(s.cursor); n != nil && n.Parent != tree.NilNode {
		s.cursor = n.Parent
	}
	return s.FEN()
}

// ToChild follows the mainline continuation. No-op if there is none.
func (s *Session) ToChild() string {
	if n := s.tree.Node(s.cursor); n != nil && n.Next != tree.NilNode {
		s.cursor = n.Next
	}
	return s.FEN()
}

// ToNode jumps the cursor to an arbitrary node (click-to-navigate).
// No-op if id does not name a live node.
func (s *Session) ToNode(id tree.NodeID) string {
	if s.tree.Node(id) != nil {
		s.cursor = id
	}
	return s.FEN()
}

// AppendUserMove validates a move (SAN or coordinate spec) against the
// cursor's position and advances the cursor to the resulting node.
//
// If the cursor already has a child whose SAN matches the resulting
// move, the call is idempotent: the cursor advances to the existing
// child and no node is created. Otherwise the new node becomes the
// mainline continuation if none exists yet, or is appended to the
// variation list in discovery order.
func (s *Session) AppendUserMove(move string) (tree.NodeID, error) {
	res, ok := s.engine.ApplyMove(s.FEN(), move, true)
	if !ok {
		return tree.NilNode, errors.Wrap(errors.ErrIllegalMove, move)
	}

	if existing := s.tree.FindChild(s.cursor, res.SAN); existing != tree.NilNode {
		s.cursor = existing
		return existing, nil
	}

	id := s.tree.Attach(s.cursor, res.SAN, res.FEN)
	s.cursor = id
	return id, nil
}

// PromoteVariation makes a variation node its parent's mainline
// continuation; the previous mainline child is demoted to the front of
// the variation list. Silent no-op (returns false) if id is not a
// variation.
func (s *Session) PromoteVariation(id tree.NodeID) bool {
	return s.tree.Promote(id)
}

// DeleteVariation detaches a variation node and its whole subtree.
// If the cursor is inside the subtree it is relocated to the subtree's
// parent before detachment, so it is never left dangling. Silent
// no-op (returns false) if id is not a variation.
func (s *Session) DeleteVariation(id tree.NodeID) bool {
	if !s.tree.IsVariation(id) {
		return false
	}
	if s.tree.Contains(id, s.cursor) {
		s.cursor = s.tree.Node(id).Parent
	}
	return s.tree.Detach(id)
}
