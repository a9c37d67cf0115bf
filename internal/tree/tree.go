// Package tree implements the move tree: positions reached by moves,
// with a single mainline continuation and an ordered list of variation
// continuations per node.
//
// The tree is an arena: a flat table of nodes keyed by stable id, with
// id-based edges. Parent references are plain index lookups, never
// owning references, so there are no cycles and no shared ownership.
// Ids are never reused; a detached node's slot is marked dead.
package tree

// NodeID is a stable node identifier, unique within a tree.
type NodeID int32

// NilNode is the absent-node sentinel.
const NilNode NodeID = -1

// Node is one position reached by one move (or the game start, for the
// root).
type Node struct {
	ID  NodeID
	SAN string // move that produced this node; empty only for the root
	FEN string // position after the move (root: the starting position)

	Comment     string
	Annotations []string // display glyphs, in source order

	Parent     NodeID
	Next       NodeID   // preferred (mainline) continuation
	Variations []NodeID // ordered alternative continuations

	// Mainline is assigned when the node is created (or when a
	// variation is promoted) and never re-derived by pointer
	// comparison.
	Mainline bool

	// Renumber marks a node created after an interrupt (comment,
	// closed variation, diagram marker), so a black move renders with
	// its full "N..." number.
	Renumber bool

	alive bool
}

// Tree is the arena of nodes for one game.
type Tree struct {
	nodes []Node
	root  NodeID
}

// New creates a tree whose root records the given starting position.
func New(startFEN string) *Tree {
	t := &Tree{}
	t.root = t.alloc(Node{
		SAN:      "",
		FEN:      startFEN,
		Parent:   NilNode,
		Mainline: true,
	})
	return t
}

func (t *Tree) alloc(n Node) NodeID {
	id := NodeID(len(t.nodes))
	n.ID = id
	n.Next = NilNode
	n.alive = true
	t.nodes = append(t.nodes, n)
	return id
}

// Root returns the root node id.
func (t *Tree) Root() NodeID {
	return t.root
}

// Node returns the node for id, or nil if id is out of range or the
// node has been detached.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	n := &t.nodes[id]
	if !n.alive {
		return nil
	}
	return n
}

// FEN returns the position recorded at id, or "" for an invalid id.
func (t *Tree) FEN(id NodeID) string {
	if n := t.Node(id); n != nil {
		return n.FEN
	}
	return ""
}

// Attach creates a node continuing from parent. The first child of a
// node becomes its mainline continuation; later children are appended
// to the variation list in discovery order.
func (t *Tree) Attach(parent NodeID, san, fen string) NodeID {
	p := t.Node(parent)
	if p == nil {
		return NilNode
	}
	mainline := p.Next == NilNode
	id := t.alloc(Node{
		SAN:      san,
		FEN:      fen,
		Parent:   parent,
		Mainline: mainline,
	})
	p = t.Node(parent) // alloc may have grown the arena
	if mainline {
		p.Next = id
	} else {
		p.Variations = append(p.Variations, id)
	}
	return id
}

// IsVariation reports whether id is currently an alternative
// continuation, i.e. not its parent's mainline child. The root is
// never a variation.
func (t *Tree) IsVariation(id NodeID) bool {
	n := t.Node(id)
	if n == nil || n.Parent == NilNode {
		return false
	}
	return t.Node(n.Parent).Next != id
}

// Promote makes a variation its parent's mainline continuation. The
// previous mainline child, if any, is demoted to the front of the
// variation list; other variations keep their relative order. Promote
// is a no-op returning false if id is not currently a variation.
func (t *Tree) Promote(id NodeID) bool {
	if !t.IsVariation(id) {
		return false
	}
	n := t.Node(id)
	p := t.Node(n.Parent)

	vars := make([]NodeID, 0, len(p.Variations))
	for _, v := range p.Variations {
		if v != id {
			vars = append(vars, v)
		}
	}
	if p.Next != NilNode {
		old := t.Node(p.Next)
		old.Mainline = false
		vars = append([]NodeID{p.Next}, vars...)
	}
	p.Variations = vars
	p.Next = id
	n.Mainline = true
	return true
}

// Detach removes a variation node and its whole subtree from the tree.
// It is a no-op returning false if id is not currently a variation.
func (t *Tree) Detach(id NodeID) bool {
	if !t.IsVariation(id) {
		return false
	}
	n := t.Node(id)
	p := t.Node(n.Parent)

	vars := p.Variations[:0]
	for _, v := range p.Variations {
		if v != id {
			vars = append(vars, v)
		}
	}
	p.Variations = vars

	// Kill the subtree. Explicit stack: variations nest arbitrarily.
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := t.Node(cur)
		if node == nil {
			continue
		}
		if node.Next != NilNode {
			stack = append(stack, node.Next)
		}
		stack = append(stack, node.Variations...)
		node.alive = false
	}
	return true
}

// Contains reports whether id lies in the subtree rooted at root
// (including root itself).
func (t *Tree) Contains(root, id NodeID) bool {
	for cur := id; cur != NilNode; {
		if cur == root {
			return true
		}
		n := t.Node(cur)
		if n == nil {
			return false
		}
		cur = n.Parent
	}
	return false
}

// MainlineEnd follows mainline continuations from id to the last node
// of the line.
func (t *Tree) MainlineEnd(id NodeID) NodeID {
	cur := t.Node(id)
	if cur == nil {
		return NilNode
	}
	for cur.Next != NilNode {
		cur = t.Node(cur.Next)
	}
	return cur.ID
}

// Ply returns the ply count of id: the number of moves on the path
// from the root (root itself is ply 0).
func (t *Tree) Ply(id NodeID) int {
	ply := 0
	for n := t.Node(id); n != nil && n.Parent != NilNode; n = t.Node(n.Parent) {
		ply++
	}
	return ply
}

// FindChild returns the child of parent (mainline first, then
// variations in order) whose SAN matches, or NilNode.
func (t *Tree) FindChild(parent NodeID, san string) NodeID {
	p := t.Node(parent)
	if p == nil {
		return NilNode
	}
	if p.Next != NilNode && t.Node(p.Next).SAN == san {
		return p.Next
	}
	for _, v := range p.Variations {
		if t.Node(v).SAN == san {
			return v
		}
	}
	return NilNode
}

// Len returns the number of live nodes, including the root.
func (t *Tree) Len() int {
	count := 0
	for i := range t.nodes {
		if t.nodes[i].alive {
			count++
		}
	}
	return count
}
