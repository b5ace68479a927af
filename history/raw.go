package history

import (
	"cmp"
	"slices"

	"euchre-lite/euchre"
)

// RawNode is the persisted form of a Node. Parent is nil for a node recorded
// right after the deal.
type RawNode struct {
	ID     ID            `json:"id"`
	Parent *ID           `json:"parent"`
	Action euchre.Action `json:"action"`
}

// RawLog is the persisted form of a Log: the initial config and the nodes in
// no particular order.
type RawLog struct {
	Config  euchre.RoundConfig `json:"config"`
	Actions []RawNode          `json:"actions"`
}

// Raw exports the log with nodes sorted by id.
func (l *Log) Raw() RawLog {
	raw := RawLog{Config: l.config.Clone(), Actions: make([]RawNode, 0, len(l.nodes))}
	for _, n := range l.nodes {
		rn := RawNode{ID: n.ID, Action: n.Action}
		if n.Parent != NoID {
			p := n.Parent
			rn.Parent = &p
		}
		raw.Actions = append(raw.Actions, rn)
	}
	slices.SortFunc(raw.Actions, func(a, b RawNode) int { return cmp.Compare(a.ID, b.ID) })
	return raw
}

// FromRaw rebuilds a Log from its persisted form. The config is validated
// again and the node set must form a tree: unique ids, canonical payloads,
// every parent present, no two siblings with the same action, no cycles.
// Replay legality is not checked here.
func FromRaw(raw RawLog) (*Log, error) {
	l, err := NewLog(raw.Config)
	if err != nil {
		return nil, err
	}
	for _, rn := range raw.Actions {
		if rn.ID >= NoID-1 {
			return nil, corrupt("id %d out of range", uint32(rn.ID))
		}
		if _, dup := l.nodes[rn.ID]; dup {
			return nil, corrupt("duplicate id %s", rn.ID)
		}
		if !rn.Action.Data.Valid() {
			return nil, corrupt("node %s has invalid payload %+v", rn.ID, rn.Action.Data)
		}
		parent := NoID
		if rn.Parent != nil {
			parent = *rn.Parent
		}
		l.nodes[rn.ID] = Node{ID: rn.ID, Parent: parent, Action: rn.Action}
		if rn.ID >= l.nextID {
			l.nextID = rn.ID + 1
		}
	}
	for _, n := range l.nodes {
		if !l.Contains(n.Parent) {
			return nil, corrupt("node %s has unknown parent %s", n.ID, n.Parent)
		}
		l.children[n.Parent] = append(l.children[n.Parent], n.ID)
	}
	for parent, kids := range l.children {
		slices.Sort(kids)
		seen := make(map[euchre.Action]ID, len(kids))
		for _, id := range kids {
			a := l.nodes[id].Action
			if first, dup := seen[a]; dup {
				return nil, corrupt("nodes %s and %s repeat %s under %s", first, id, a, parent)
			}
			seen[a] = id
		}
	}
	for id := range l.nodes {
		if _, err := l.Backtrace(id); err != nil {
			return nil, err
		}
	}
	return l, nil
}
