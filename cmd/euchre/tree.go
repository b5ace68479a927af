package main

import (
	"fmt"
	"io"
	"strings"

	"euchre-lite/history"
)

// printTree writes the log one action per line. A line of play stays at one
// indent; alternatives open a new level under the node they branch from.
func printTree(w io.Writer, l *history.Log) {
	indent := map[history.ID]int{history.NoID: 0}
	for _, n := range l.Traverse() {
		level := indent[n.Parent]
		if n.Sibling {
			level++
		}
		indent[n.ID] = level

		marker := "  "
		switch {
		case n.Sibling && n.LastSibling:
			marker = "└ "
		case n.Sibling:
			marker = "├ "
		}
		suffix := ""
		if n.Leaf {
			suffix = " *"
		}
		fmt.Fprintf(w, "%s%s%3d %s%s\n", strings.Repeat("  ", level), marker, n.ID, n.Action, suffix)
	}
}
