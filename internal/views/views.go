// Package views holds one producer per route. Producers fetch records through
// the store and return declarative trees; everything interactive carries both
// an activation callback (in-process binding) and enough attributes for the
// HTML binding to act on.
package views

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/meltforce/gymcontrol/internal/router"
	"github.com/meltforce/gymcontrol/internal/storage"
	"github.com/meltforce/gymcontrol/internal/view"
)

// Navigator triggers navigations from interactive nodes.
type Navigator interface {
	Navigate(ctx context.Context, route string, params url.Values) error
}

// Views builds route views over the record store.
type Views struct {
	db  *storage.DB
	nav Navigator
	log *slog.Logger
}

// New creates the view producers.
func New(db *storage.DB, nav Navigator, log *slog.Logger) *Views {
	return &Views{db: db, nav: nav, log: log}
}

// Register hooks every route's producer into the router.
func (v *Views) Register(r *router.Router) {
	r.Handle("home", v.Home)
	r.Handle("workouts-list", v.WorkoutsList)
	r.Handle("workout-edit", v.WorkoutEdit)
	r.Handle("session-run", v.SessionRun)
	r.Handle("sessions-history", v.SessionsHistory)
	r.Handle("session-detail", v.SessionDetail)
}

// goTo returns an activation callback that navigates. Navigation errors are
// already rendered by the router; here they are only logged.
func (v *Views) goTo(route string, params url.Values) func() {
	return func() {
		if err := v.nav.Navigate(context.Background(), route, params); err != nil {
			v.log.Error("navigation failed", "route", route, "error", err)
		}
	}
}

// href builds the HTML-binding link for a route.
func href(route string, params url.Values) string {
	if q := params.Encode(); q != "" {
		return "/" + route + "?" + q
	}
	return "/" + route
}

func notice(text string) *view.Node {
	return view.El("p", map[string]string{"class": "notice"}, view.Text(text))
}

func formatDate(t time.Time, withTime bool) string {
	if withTime {
		return t.Local().Format("02/01/2006 15:04")
	}
	return t.Local().Format("02/01/2006")
}

func formatLoad(load float64) string {
	return strconv.FormatFloat(load, 'f', -1, 64)
}

func idParam(params url.Values, key string) (int64, bool) {
	id, err := strconv.ParseInt(params.Get(key), 10, 64)
	return id, err == nil && id > 0
}

// card builds a clickable card node, the list building block shared by most
// routes.
func (v *Views) card(route string, params url.Values, children ...*view.Node) *view.Node {
	n := view.El("a", map[string]string{
		"class": "card",
		"href":  href(route, params),
	}, children...)
	n.OnActivate = v.goTo(route, params)
	return n
}

// Home renders the landing grid.
func (v *Views) Home(ctx context.Context, params url.Values) (*view.Node, error) {
	workouts := v.card("workouts-list", nil,
		view.El("div", map[string]string{"class": "card-emoji"}, view.Text("🏋️")),
		view.El("div", map[string]string{"class": "card-title"}, view.Text("My workouts")),
	)
	history := v.card("sessions-history", nil,
		view.El("div", map[string]string{"class": "card-emoji"}, view.Text("📅")),
		view.El("div", map[string]string{"class": "card-title"}, view.Text("Session history")),
	)

	return view.El("div", nil,
		notice("Create workouts, run them, and track your progress."),
		view.El("div", map[string]string{"class": "grid"}, workouts, history),
	), nil
}

// WorkoutsList renders all workouts, newest first.
func (v *Views) WorkoutsList(ctx context.Context, params url.Values) (*view.Node, error) {
	workouts, err := v.db.ListWorkouts(ctx)
	if err != nil {
		return nil, err
	}

	root := view.El("div", nil, view.El("h2", nil, view.Text("My workouts")))
	if len(workouts) == 0 {
		root.Children = append(root.Children, notice("No workouts yet."))
	}
	for _, w := range workouts {
		p := url.Values{"id": {strconv.FormatInt(w.ID, 10)}}
		root.Children = append(root.Children, v.card("workout-edit", p,
			view.El("div", map[string]string{"class": "card-title"}, view.Text(w.Name)),
			view.El("div", map[string]string{"class": "muted"},
				view.Text("Created "+formatDate(w.CreatedAt, false))),
		))
	}

	fab := view.El("button", map[string]string{"class": "fab"}, view.Text("+"))
	fab.OnActivate = v.goTo("workout-edit", nil)
	root.Children = append(root.Children, fab)
	return root, nil
}
