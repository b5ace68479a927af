package history

import (
	"slices"
	"strconv"

	"euchre-lite/euchre"
)

// ID addresses a node in a Log. Ids are allocated sequentially from zero.
type ID uint32

// NoID is the implicit root: the state right after the deal.
const NoID ID = ^ID(0)

func (id ID) String() string {
	if id == NoID {
		return "root"
	}
	return strconv.FormatUint(uint64(id), 10)
}

// Node is one recorded action and the node it was applied after.
type Node struct {
	ID     ID
	Parent ID
	Action euchre.Action
}

// Step is one entry of a backtrace.
type Step struct {
	ID     ID
	Action euchre.Action
}

// Log is a tree of the actions taken in a round, rooted at the deal. Nodes
// live in an arena keyed by id; children are indexed by parent. Nothing is
// ever removed.
type Log struct {
	config   euchre.RoundConfig
	nodes    map[ID]Node
	children map[ID][]ID
	nextID   ID
}

// NewLog returns an empty log for a validated config.
func NewLog(cfg euchre.RoundConfig) (*Log, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Log{
		config:   cfg.Clone(),
		nodes:    make(map[ID]Node),
		children: make(map[ID][]ID),
	}, nil
}

// Config returns a copy of the round's initial conditions.
func (l *Log) Config() euchre.RoundConfig { return l.config.Clone() }

// Len is the number of recorded nodes.
func (l *Log) Len() int { return len(l.nodes) }

func (l *Log) Node(id ID) (Node, bool) {
	n, ok := l.nodes[id]
	return n, ok
}

// Contains reports whether id is NoID or a recorded node.
func (l *Log) Contains(id ID) bool {
	_, ok := l.nodes[id]
	return ok || id == NoID
}

// Children returns the ids recorded directly after parent, oldest first.
func (l *Log) Children(parent ID) []ID { return slices.Clone(l.children[parent]) }

// FindChild looks for an existing child of parent recording action.
func (l *Log) FindChild(parent ID, action euchre.Action) (ID, bool) {
	for _, id := range l.children[parent] {
		if l.nodes[id].Action == action {
			return id, true
		}
	}
	return NoID, false
}

// Insert records action after parent and returns its id. An identical action
// already recorded under parent is reused rather than duplicated.
func (l *Log) Insert(parent ID, action euchre.Action) (ID, error) {
	if !l.Contains(parent) {
		return NoID, invalidID(parent)
	}
	if id, ok := l.FindChild(parent, action); ok {
		return id, nil
	}
	id := l.nextID
	l.nextID++
	l.nodes[id] = Node{ID: id, Parent: parent, Action: action}
	l.children[parent] = append(l.children[parent], id)
	return id, nil
}

// Backtrace returns the path from the root to id, root first.
func (l *Log) Backtrace(id ID) ([]Step, error) {
	var trace []Step
	for cur := id; cur != NoID; {
		n, ok := l.nodes[cur]
		if !ok {
			return nil, invalidID(cur)
		}
		if len(trace) > len(l.nodes) {
			return nil, corrupt("cycle through node %s", cur)
		}
		trace = append(trace, Step{ID: n.ID, Action: n.Action})
		cur = n.Parent
	}
	slices.Reverse(trace)
	return trace, nil
}

// Leaves returns every node without children, in ascending id order.
func (l *Log) Leaves() []ID {
	var out []ID
	for id := range l.nodes {
		if len(l.children[id]) == 0 {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}
