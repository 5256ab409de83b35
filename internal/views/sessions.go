package views

import (
	"context"
	"net/url"
	"strconv"

	"github.com/meltforce/gymcontrol/internal/view"
)

// SessionsHistory renders all sessions, most recent first, titled by the
// owning workout's current name. A session whose workout is gone keeps
// rendering with a fallback label; full cascade makes that unreachable today,
// but the view stays graceful about it.
func (v *Views) SessionsHistory(ctx context.Context, params url.Values) (*view.Node, error) {
	sessions, err := v.db.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	root := view.El("div", nil, view.El("h2", nil, view.Text("Session history")))
	if len(sessions) == 0 {
		root.Children = append(root.Children, notice("No sessions recorded yet."))
		return root, nil
	}

	workouts, err := v.db.ListWorkouts(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(workouts))
	for _, w := range workouts {
		names[w.ID] = w.Name
	}

	for _, s := range sessions {
		title, ok := names[s.WorkoutID]
		if !ok {
			title = "Workout removed"
		}
		p := url.Values{"id": {strconv.FormatInt(s.ID, 10)}}
		root.Children = append(root.Children, v.card("session-detail", p,
			view.El("div", map[string]string{"class": "card-title"}, view.Text(title)),
			view.El("div", map[string]string{"class": "muted"},
				view.Text(formatDate(s.PerformedAt, true))),
		))
	}
	return root, nil
}

// SessionDetail renders one session's snapshot records. The snapshots carry
// their own names, so this view needs no exercise lookups and survives any
// later edits to the source workout.
func (v *Views) SessionDetail(ctx context.Context, params url.Values) (*view.Node, error) {
	sessionID, ok := idParam(params, "id")
	if !ok {
		return notice("Session not found."), nil
	}

	items, err := v.db.ListSessionExercises(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return notice("Session has no exercises."), nil
	}

	root := view.El("div", nil, view.El("h2", nil, view.Text("Session")))
	for _, it := range items {
		root.Children = append(root.Children, view.El("div", map[string]string{"class": "card"},
			view.El("div", map[string]string{"class": "card-title"}, view.Text(it.Name)),
			view.El("div", map[string]string{"class": "muted"},
				view.Text(strconv.Itoa(it.ActualReps)+" reps · "+formatLoad(it.ActualLoad)+" kg")),
		))
	}
	return root, nil
}
