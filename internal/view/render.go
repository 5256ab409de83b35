package view

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"
)

// voidTags are rendered without a closing tag.
var voidTags = map[string]bool{
	"br":    true,
	"hr":    true,
	"img":   true,
	"input": true,
	"meta":  true,
	"link":  true,
}

// Render writes the tree as HTML. Text and attribute values are escaped;
// attributes are emitted in sorted order so output is deterministic.
func Render(w io.Writer, n *Node) error {
	if n == nil {
		return nil
	}
	if n.Tag == "" {
		_, err := io.WriteString(w, html.EscapeString(n.Text))
		return err
	}

	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(n.Tag)

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, ` %s="%s"`, k, html.EscapeString(n.Attrs[k]))
	}
	b.WriteByte('>')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	if voidTags[n.Tag] {
		return nil
	}

	if n.Text != "" {
		if _, err := io.WriteString(w, html.EscapeString(n.Text)); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := Render(w, c); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "</%s>", n.Tag)
	return err
}
