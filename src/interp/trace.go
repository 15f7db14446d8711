package interp

import (
	"fmt"

	"github.com/pterm/pterm"
)

// RenderTree prints the scope-nesting structure of an event trace as a
// pterm tree (SPEC_FULL.md's host-observability commitment: "the event
// trace is additionally rendered, when the host runs interactively,
// through pterm.DefaultTree"). Each ENTER_SCOPE becomes a tree node
// labelled with its DECLARE/UPDATE/MOVE children in emission order.
func RenderTree(events []Event) error {
	roots, _ := buildScopeNodes(events)
	if len(roots) == 0 {
		return nil
	}
	forest := pterm.TreeNode{Text: "<program>", Children: roots}
	return pterm.DefaultTree.WithRoot(forest).Render()
}

// buildScopeNodes assembles a forest of pterm.TreeNode from the flat event
// list. Scope ids are assigned in strictly increasing creation order
// (Interpreter.nextScopeID), so a child scope's id is always greater than
// its parent's; building children before attaching them to a parent (via a
// plain recursive walk over sorted ids) avoids needing to mutate already-
// copied tree nodes.
func buildScopeNodes(events []Event) ([]pterm.TreeNode, map[int]*pterm.TreeNode) {
	type scopeInfo struct {
		parentID int
		leaves   []pterm.TreeNode
		children []int
	}
	scopes := map[int]*scopeInfo{}
	var ids []int

	for _, e := range events {
		switch e.Kind {
		case EnterScope:
			scopes[e.ScopeID] = &scopeInfo{parentID: e.ParentScopeID}
			ids = append(ids, e.ScopeID)
			if e.ParentScopeID >= 0 {
				if p, ok := scopes[e.ParentScopeID]; ok {
					p.children = append(p.children, e.ScopeID)
				}
			}
		case Declare, Update, Move:
			if s, ok := scopes[e.ScopeID]; ok {
				s.leaves = append(s.leaves, pterm.TreeNode{
					Text: fmt.Sprintf("%s %s = %s", e.Kind, e.Name, displayString(e.Value)),
				})
			}
		}
	}

	var build func(id int) pterm.TreeNode
	build = func(id int) pterm.TreeNode {
		s := scopes[id]
		node := pterm.TreeNode{Text: fmt.Sprintf("scope %d", id)}
		node.Children = append(node.Children, s.leaves...)
		for _, childID := range s.children {
			node.Children = append(node.Children, build(childID))
		}
		return node
	}

	var roots []pterm.TreeNode
	nodes := map[int]*pterm.TreeNode{}
	for _, id := range ids {
		if scopes[id].parentID < 0 {
			n := build(id)
			roots = append(roots, n)
			nodes[id] = &n
		}
	}
	return roots, nodes
}

// RenderTable prints the flat event trace as a pterm table, one row per
// event, for hosts that prefer a tabular view over the tree.
func RenderTable(events []Event) error {
	data := pterm.TableData{{"kind", "scope", "name", "value"}}
	for _, e := range events {
		value := ""
		if e.Kind == Declare || e.Kind == Update || e.Kind == Move {
			value = displayString(e.Value)
		}
		data = append(data, []string{e.Kind, fmt.Sprintf("%d", e.ScopeID), e.Name, value})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
