// Package router maps route names plus query parameters to view producers
// and owns the navigation history. The browser hash-fragment mechanism is one
// external binding of this component; the HTTP server's path-based rendering
// is another.
package router

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/meltforce/gymcontrol/internal/view"
)

// DefaultRoute is rendered for the empty fragment and for any unrecognized
// route name. Falling back is never an error.
const DefaultRoute = "home"

// Producer resolves one route into a view tree. Producers fetch whatever
// records they need and run to completion; the router decides afterwards
// whether the result is still current.
type Producer func(ctx context.Context, params url.Values) (*view.Node, error)

// Sink receives the shell-wrapped tree of a navigation that won, replacing
// the displayed content wholesale.
type Sink func(*view.Node)

// Entry is one resolved navigation on the history stack.
type Entry struct {
	Route  string
	Params url.Values
}

// Router dispatches navigations to registered producers. All state is guarded
// by mu; resolution itself runs unlocked so a slow producer never blocks a
// newer navigation.
type Router struct {
	mu      sync.Mutex
	routes  map[string]Producer
	sink    Sink
	history []Entry
	gen     uint64

	log *slog.Logger
}

// New creates an empty router.
func New(log *slog.Logger) *Router {
	return &Router{
		routes: make(map[string]Producer),
		sink:   func(*view.Node) {},
		log:    log,
	}
}

// Handle registers the producer for a route name.
func (r *Router) Handle(name string, p Producer) {
	r.routes[name] = p
}

// SetSink installs the render sink.
func (r *Router) SetSink(s Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sink = s
}

// ParseFragment splits a "#name?k=v" fragment into route name and params.
// An empty fragment yields the default route; a malformed query yields empty
// params rather than an error.
func ParseFragment(fragment string) (string, url.Values) {
	s := strings.TrimPrefix(fragment, "#")
	name, query, _ := strings.Cut(s, "?")
	if name == "" {
		name = DefaultRoute
	}
	params, err := url.ParseQuery(query)
	if err != nil {
		params = url.Values{}
	}
	return name, params
}

// FragmentFor builds the "#name?k=v" fragment for a navigation, for bindings
// that mirror the history stack into a browser location.
func FragmentFor(name string, params url.Values) string {
	if q := params.Encode(); q != "" {
		return "#" + name + "?" + q
	}
	return "#" + name
}

// Resolve runs the producer for a route without touching history or the
// sink. Unknown names resolve the default route.
func (r *Router) Resolve(ctx context.Context, name string, params url.Values) (*view.Node, error) {
	r.mu.Lock()
	p, ok := r.routes[name]
	if !ok {
		p = r.routes[DefaultRoute]
	}
	r.mu.Unlock()
	if p == nil {
		return nil, nil
	}
	return p(ctx, params)
}

// Navigate pushes a new history entry and renders its view through the sink.
// If a newer navigation starts before this one's producer finishes, the
// result is discarded instead of clobbering the newer content.
func (r *Router) Navigate(ctx context.Context, name string, params url.Values) error {
	r.mu.Lock()
	if _, ok := r.routes[name]; !ok {
		name = DefaultRoute
	}
	if params == nil {
		params = url.Values{}
	}
	r.history = append(r.history, Entry{Route: name, Params: params})
	r.gen++
	gen := r.gen
	r.mu.Unlock()

	return r.render(ctx, name, params, gen)
}

// NavigateFragment parses a location fragment and navigates to it. Used on
// initial load and by back/forward bindings.
func (r *Router) NavigateFragment(ctx context.Context, fragment string) error {
	name, params := ParseFragment(fragment)
	return r.Navigate(ctx, name, params)
}

// Back pops the current entry and re-renders the previous one. At the bottom
// of the stack it is a no-op.
func (r *Router) Back(ctx context.Context) error {
	r.mu.Lock()
	if len(r.history) < 2 {
		r.mu.Unlock()
		return nil
	}
	r.history = r.history[:len(r.history)-1]
	e := r.history[len(r.history)-1]
	r.gen++
	gen := r.gen
	r.mu.Unlock()

	return r.render(ctx, e.Route, e.Params, gen)
}

// Current returns the entry on top of the history stack.
func (r *Router) Current() (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return Entry{}, false
	}
	return r.history[len(r.history)-1], true
}

func (r *Router) render(ctx context.Context, name string, params url.Values, gen uint64) error {
	node, err := r.Resolve(ctx, name, params)

	r.mu.Lock()
	stale := gen != r.gen
	sink := r.sink
	r.mu.Unlock()

	if stale {
		// A newer navigation superseded this one while its producer ran.
		r.log.Debug("discarding stale navigation", "route", name)
		return nil
	}
	if err != nil {
		r.log.Error("route resolution failed", "route", name, "error", err)
		sink(view.Shell(errorView()))
		return err
	}
	sink(view.Shell(node))
	return nil
}

func errorView() *view.Node {
	return view.El("p", map[string]string{"class": "notice"},
		view.Text("Something went wrong loading this view."))
}
