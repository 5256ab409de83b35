package router

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/meltforce/gymcontrol/internal/view"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingSink collects every tree handed to the sink.
type recordingSink struct {
	mu    sync.Mutex
	trees []*view.Node
}

func (s *recordingSink) sink(n *view.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trees = append(s.trees, n)
}

func (s *recordingSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.trees)
}

func (s *recordingSink) last() *view.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.trees) == 0 {
		return nil
	}
	return s.trees[len(s.trees)-1]
}

func textProducer(text string) Producer {
	return func(ctx context.Context, params url.Values) (*view.Node, error) {
		return view.El("p", map[string]string{"data-route": text}, view.Text(text)), nil
	}
}

// TestParseFragment covers the fragment grammar, including the empty and
// malformed cases.
func TestParseFragment(t *testing.T) {
	tests := []struct {
		fragment string
		wantName string
		wantID   string
	}{
		{"", "home", ""},
		{"#", "home", ""},
		{"#home", "home", ""},
		{"#workout-edit?id=3", "workout-edit", "3"},
		{"#session-run?workout_id=2&id=9", "session-run", "9"},
		{"#?id=5", "home", "5"},
		{"#sessions-history?%zz", "sessions-history", ""},
	}

	for _, tt := range tests {
		name, params := ParseFragment(tt.fragment)
		if name != tt.wantName {
			t.Errorf("ParseFragment(%q) name = %q, want %q", tt.fragment, name, tt.wantName)
		}
		if got := params.Get("id"); got != tt.wantID {
			t.Errorf("ParseFragment(%q) id = %q, want %q", tt.fragment, got, tt.wantID)
		}
	}
}

// TestFragmentFor verifies the inverse mapping used by history bindings.
func TestFragmentFor(t *testing.T) {
	if got := FragmentFor("home", nil); got != "#home" {
		t.Errorf("FragmentFor(home) = %q", got)
	}
	got := FragmentFor("workout-edit", url.Values{"id": {"3"}})
	if got != "#workout-edit?id=3" {
		t.Errorf("FragmentFor(workout-edit) = %q", got)
	}
}

// TestNavigateRendersThroughSink verifies a navigation resolves its producer
// and hands the shell-wrapped tree to the sink.
func TestNavigateRendersThroughSink(t *testing.T) {
	r := New(testLogger())
	r.Handle("home", textProducer("home"))
	rec := &recordingSink{}
	r.SetSink(rec.sink)

	if err := r.Navigate(context.Background(), "home", nil); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if rec.len() != 1 {
		t.Fatalf("sink calls = %d, want 1", rec.len())
	}
	if rec.last().Find("data-route", "home") == nil {
		t.Error("rendered tree is not the home view")
	}
	if e, ok := r.Current(); !ok || e.Route != "home" {
		t.Errorf("current = %+v, want home", e)
	}
}

// TestUnknownRouteFallsBack verifies an unrecognized name renders home
// instead of failing.
func TestUnknownRouteFallsBack(t *testing.T) {
	r := New(testLogger())
	r.Handle("home", textProducer("home"))
	rec := &recordingSink{}
	r.SetSink(rec.sink)

	if err := r.NavigateFragment(context.Background(), "#no-such-view?x=1"); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if rec.last().Find("data-route", "home") == nil {
		t.Error("fallback did not render home")
	}
	if e, _ := r.Current(); e.Route != "home" {
		t.Errorf("current route = %q, want home", e.Route)
	}
}

// TestBack verifies popping re-renders the previous entry and bottoms out
// quietly.
func TestBack(t *testing.T) {
	r := New(testLogger())
	r.Handle("home", textProducer("home"))
	r.Handle("workouts-list", textProducer("workouts-list"))
	rec := &recordingSink{}
	r.SetSink(rec.sink)

	ctx := context.Background()
	if err := r.Navigate(ctx, "home", nil); err != nil {
		t.Fatalf("navigate home: %v", err)
	}
	if err := r.Navigate(ctx, "workouts-list", nil); err != nil {
		t.Fatalf("navigate list: %v", err)
	}

	if err := r.Back(ctx); err != nil {
		t.Fatalf("back: %v", err)
	}
	if rec.last().Find("data-route", "home") == nil {
		t.Error("back did not re-render home")
	}

	// Bottom of the stack: nothing to pop, nothing rendered.
	n := rec.len()
	if err := r.Back(ctx); err != nil {
		t.Fatalf("back at bottom: %v", err)
	}
	if rec.len() != n {
		t.Error("back at the bottom of the stack rendered something")
	}
}

// TestStaleNavigationDiscarded verifies a slow producer that loses the race
// never reaches the sink.
func TestStaleNavigationDiscarded(t *testing.T) {
	r := New(testLogger())

	started := make(chan struct{})
	release := make(chan struct{})
	r.Handle("slow", func(ctx context.Context, params url.Values) (*view.Node, error) {
		close(started)
		<-release
		return view.El("p", map[string]string{"data-route": "slow"}), nil
	})
	r.Handle("fast", textProducer("fast"))
	rec := &recordingSink{}
	r.SetSink(rec.sink)

	done := make(chan error, 1)
	go func() { done <- r.Navigate(context.Background(), "slow", nil) }()
	<-started

	if err := r.Navigate(context.Background(), "fast", nil); err != nil {
		t.Fatalf("fast navigate: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("slow navigate: %v", err)
	}

	if rec.len() != 1 {
		t.Fatalf("sink calls = %d, want 1 (stale result discarded)", rec.len())
	}
	if rec.last().Find("data-route", "fast") == nil {
		t.Error("displayed content is not the newer navigation")
	}
}

// TestProducerErrorRendersErrorView verifies a failing producer surfaces an
// error view and propagates the error.
func TestProducerErrorRendersErrorView(t *testing.T) {
	r := New(testLogger())
	boom := errors.New("boom")
	r.Handle("broken", func(ctx context.Context, params url.Values) (*view.Node, error) {
		return nil, boom
	})
	rec := &recordingSink{}
	r.SetSink(rec.sink)

	err := r.Navigate(context.Background(), "broken", nil)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if rec.len() != 1 {
		t.Fatalf("sink calls = %d, want 1", rec.len())
	}
	if rec.last().Find("class", "notice") == nil {
		t.Error("error view not rendered")
	}
}

// TestResolveDoesNotTouchHistory verifies the stateless resolution path used
// by the HTTP binding.
func TestResolveDoesNotTouchHistory(t *testing.T) {
	r := New(testLogger())
	r.Handle("home", textProducer("home"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	node, err := r.Resolve(ctx, "nope", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if node.Find("data-route", "home") == nil {
		t.Error("resolve fallback did not produce home")
	}
	if _, ok := r.Current(); ok {
		t.Error("resolve pushed a history entry")
	}
}
