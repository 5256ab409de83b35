// Package view defines the declarative tree the route producers return: a
// tree of labeled nodes with attributes, text, children, and an optional
// activation callback on interactive nodes. The router hands finished trees
// to a render sink; Render is the HTML binding used by the HTTP server.
package view

// Node is one node of a view tree. A node with an empty Tag is a text node
// and renders only its Text.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []*Node

	// OnActivate is invoked when the user activates this node in an
	// in-process binding (a click, in the browser analog). Nil for
	// non-interactive nodes. The HTML binding ignores it; producers set an
	// href alongside for that case.
	OnActivate func()
}

// El builds an element node. Nil children are dropped so producers can splice
// conditional parts inline.
func El(tag string, attrs map[string]string, children ...*Node) *Node {
	n := &Node{Tag: tag, Attrs: attrs}
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Text builds a text node.
func Text(s string) *Node {
	return &Node{Text: s}
}

// Shell wraps route content in the constant page shell: a header bar plus the
// main content region. Every rendered navigation replaces the whole shell.
func Shell(content *Node) *Node {
	return El("div", map[string]string{"class": "app-shell"},
		El("header", map[string]string{"class": "topbar"},
			El("h1", nil, Text("GymControl")),
		),
		El("main", map[string]string{"class": "content"}, content),
	)
}

// Activate fires the node's callback if it has one. It exists so bindings and
// tests do not reach into the struct.
func (n *Node) Activate() {
	if n != nil && n.OnActivate != nil {
		n.OnActivate()
	}
}

// Find returns the first node in the tree (depth-first, self included) whose
// attrs contain the given key/value, or nil.
func (n *Node) Find(attr, value string) *Node {
	if n == nil {
		return nil
	}
	if n.Attrs[attr] == value {
		return n
	}
	for _, c := range n.Children {
		if hit := c.Find(attr, value); hit != nil {
			return hit
		}
	}
	return nil
}
