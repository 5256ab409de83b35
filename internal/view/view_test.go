package view

import (
	"strings"
	"testing"
)

// TestRenderEscapes verifies text and attribute values are HTML-escaped.
func TestRenderEscapes(t *testing.T) {
	n := El("div", map[string]string{"title": `a "b" <c>`},
		Text("1 < 2 & 3"),
	)

	var b strings.Builder
	if err := Render(&b, n); err != nil {
		t.Fatalf("render: %v", err)
	}
	got := b.String()
	want := `<div title="a &#34;b&#34; &lt;c&gt;">1 &lt; 2 &amp; 3</div>`
	if got != want {
		t.Errorf("rendered = %s, want %s", got, want)
	}
}

// TestRenderVoidElement verifies input renders without a closing tag.
func TestRenderVoidElement(t *testing.T) {
	n := El("input", map[string]string{"type": "number", "min": "0"})

	var b strings.Builder
	if err := Render(&b, n); err != nil {
		t.Fatalf("render: %v", err)
	}
	got := b.String()
	if got != `<input min="0" type="number">` {
		t.Errorf("rendered = %s", got)
	}
}

// TestRenderNesting verifies children render in order inside the parent.
func TestRenderNesting(t *testing.T) {
	n := El("ul", nil,
		El("li", nil, Text("one")),
		nil, // dropped by El
		El("li", nil, Text("two")),
	)

	var b strings.Builder
	if err := Render(&b, n); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := b.String(); got != "<ul><li>one</li><li>two</li></ul>" {
		t.Errorf("rendered = %s", got)
	}
}

// TestShell verifies route content lands inside the constant page frame.
func TestShell(t *testing.T) {
	n := Shell(El("p", nil, Text("hello")))

	var b strings.Builder
	if err := Render(&b, n); err != nil {
		t.Fatalf("render: %v", err)
	}
	got := b.String()
	for _, frag := range []string{"app-shell", "topbar", "GymControl", "<main", "<p>hello</p>"} {
		if !strings.Contains(got, frag) {
			t.Errorf("shell output missing %q in %s", frag, got)
		}
	}
}

// TestFindAndActivate verifies tree lookup by attribute and callback firing.
func TestFindAndActivate(t *testing.T) {
	fired := false
	btn := El("button", map[string]string{"class": "fab"}, Text("+"))
	btn.OnActivate = func() { fired = true }
	root := El("div", nil, El("div", nil, btn))

	hit := root.Find("class", "fab")
	if hit == nil {
		t.Fatal("Find returned nil")
	}
	hit.Activate()
	if !fired {
		t.Error("OnActivate did not fire")
	}

	if root.Find("class", "missing") != nil {
		t.Error("Find matched a non-existent attribute value")
	}

	// Activating a non-interactive node is a no-op, not a panic.
	root.Activate()
}
