package mcts

import "github.com/llmrts/arena/simgame"

// childEdge records one explored transition out of a node: the joint action
// that produced it and the arena index of the resulting node.
type childEdge struct {
	Action simgame.PlayerAction
	ChildIndex int
	ActionPrior float64
}

// pendingAction is one not-yet-expanded candidate joint action, weighted by
// the product of its units' individual policy-prior probabilities,
// normalized over all units' legal actions.
type pendingAction struct {
	Action simgame.PlayerAction
	Weight float64
}

// TreeNode is one position in the search tree: a cloned simulator state, the
// not-yet-expanded candidate actions still available from it, and its
// expanded children. A node is owned exclusively by the search that created
// it and freed (by discarding the Arena) once a new root is chosen; nodes
// reference each other only by index into Arena.nodes, never by pointer, so
// the tree can never contain a cycle.
type TreeNode struct {
	Sim simgame.Simulator
	Owner simgame.Owner
	Parent int // -1 for the root

	Unexplored []pendingAction
	Children []childEdge

	VisitCount int
	AccumulatedEvaluation float64

	// Prior is the policy-prior weight of the action that produced this
	// node from its parent; the root's Prior is meaningless (0).
	Prior float64
}

// MeanEvaluation returns the node's average backpropagated value, or 0 for
// an unvisited node.
func (n *TreeNode) MeanEvaluation() float64 {
	if n.VisitCount == 0 {
		return 0
	}
	return n.AccumulatedEvaluation / float64(n.VisitCount)
}

// Arena owns every TreeNode allocated during one search call. Indexing by
// slice position (rather than pointers) is what keeps the tree acyclic and
// makes discarding an entire search as cheap as dropping the Arena value.
type Arena struct {
	nodes []TreeNode
}

// NewArena creates an arena with a single root node wrapping sim.
func NewArena(sim simgame.Simulator, owner simgame.Owner) *Arena {
	return &Arena{nodes: []TreeNode{{Sim: sim, Owner: owner, Parent: -1}}}
}

// Root returns the index of the root node (always 0).
func (a *Arena) Root() int { return 0 }

// Node returns a pointer to the node at idx, valid only until the next call
// to AddChild (which may grow the backing slice).
func (a *Arena) Node(idx int) *TreeNode { return &a.nodes[idx] }

// AddChild appends a new node produced by applying action from parentIdx,
// records the edge on the parent, and returns the new node's index.
func (a *Arena) AddChild(parentIdx int, action simgame.PlayerAction, prior float64, sim simgame.Simulator, owner simgame.Owner) int {
	childIdx := len(a.nodes)
	a.nodes = append(a.nodes, TreeNode{Sim: sim, Owner: owner, Parent: parentIdx, Prior: prior})
	parent := &a.nodes[parentIdx]
	parent.Children = append(parent.Children, childEdge{Action: action, ChildIndex: childIdx, ActionPrior: prior})
	return childIdx
}
