package typescript

import ts "github.com/tree-sitter/go-tree-sitter"

// inAmbientContext reports whether node has an ambient_declaration
// ancestor, per §4.2's ambient-context rule.
func inAmbientContext(node ts.Node) bool {
	cur := node.Parent()
	for cur != nil {
		if cur.Kind() == "ambient_declaration" {
			return true
		}
		cur = cur.Parent()
	}
	return false
}

// inNamespaceContext reports whether node has an internal_module
// ancestor, or sits inside a statement_block whose parent is
// internal_module, per §4.2's ambient-context rule.
func inNamespaceContext(node ts.Node) bool {
	cur := node.Parent()
	for cur != nil {
		if cur.Kind() == "internal_module" {
			return true
		}
		if cur.Kind() == "statement_block" {
			if gp := cur.Parent(); gp != nil && gp.Kind() == "internal_module" {
				return true
			}
		}
		cur = cur.Parent()
	}
	return false
}
