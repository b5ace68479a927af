package history

import "euchre-lite/euchre"

// TraverseNode is one visited node of a preorder traversal. Sibling is set
// when the parent has more than one child, and LastSibling on the highest id
// among them.
type TraverseNode struct {
	ID          ID
	Parent      ID
	Action      euchre.Action
	Depth       int
	Sibling     bool
	LastSibling bool
	Leaf        bool
}

// Traverse visits the tree depth first, children in ascending id order.
func (l *Log) Traverse() []TraverseNode {
	type frame struct {
		id    ID
		depth int
	}
	out := make([]TraverseNode, 0, len(l.nodes))
	var stack []frame
	pushChildren := func(parent ID, depth int) {
		kids := l.children[parent]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: kids[i], depth: depth})
		}
	}
	pushChildren(NoID, 0)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := l.nodes[f.id]
		siblings := l.children[n.Parent]
		kids := l.children[f.id]
		tn := TraverseNode{
			ID:     n.ID,
			Parent: n.Parent,
			Action: n.Action,
			Depth:  f.depth,
			Leaf:   len(kids) == 0,
		}
		if len(siblings) > 1 {
			tn.Sibling = true
			tn.LastSibling = siblings[len(siblings)-1] == n.ID
		}
		out = append(out, tn)
		pushChildren(f.id, f.depth+1)
	}
	return out
}
