package views

import (
	"context"
	"net/url"
	"strconv"

	"github.com/meltforce/gymcontrol/internal/models"
	"github.com/meltforce/gymcontrol/internal/view"
)

// WorkoutEdit renders the create/edit form. With an id parameter it loads the
// workout and its exercises; without one it renders a blank draft with a
// single empty row. The form posts to the plan endpoint, which runs the
// validate → prune → upsert flow.
func (v *Views) WorkoutEdit(ctx context.Context, params url.Values) (*view.Node, error) {
	var workout *models.Workout
	var exercises []models.Exercise

	id, editing := idParam(params, "id")
	if editing {
		var err error
		workout, err = v.db.GetWorkout(ctx, id)
		if err != nil {
			return nil, err
		}
		if workout == nil {
			return notice("Workout not found."), nil
		}
		exercises, err = v.db.ListWorkoutExercises(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	title := "New workout"
	name := ""
	action := "/api/v1/workouts/plan"
	if workout != nil {
		title = "Edit workout"
		name = workout.Name
		action = "/api/v1/workouts/" + strconv.FormatInt(id, 10) + "/plan"
	}

	form := view.El("form", map[string]string{"method": "post", "action": action},
		view.El("input", map[string]string{
			"type":        "text",
			"class":       "input",
			"name":        "name",
			"value":       name,
			"placeholder": "Workout name (e.g. Treino A)",
		}),
		view.El("h3", nil, view.Text("Exercises")),
	)

	rows := view.El("div", map[string]string{"class": "stack"})
	for _, ex := range exercises {
		rows.Children = append(rows.Children, exerciseRow(&ex))
	}
	if len(exercises) == 0 {
		rows.Children = append(rows.Children, exerciseRow(nil))
	}
	form.Children = append(form.Children, rows)

	actions := view.El("div", map[string]string{"class": "btn-row"},
		view.El("button", map[string]string{"class": "btn primary", "type": "submit"},
			view.Text("Save workout")),
	)
	if workout != nil {
		run := view.El("button", map[string]string{"class": "btn ghost"}, view.Text("Run workout"))
		run.OnActivate = v.goTo("session-run", url.Values{"workout_id": {strconv.FormatInt(id, 10)}})

		del := view.El("button", map[string]string{"class": "btn ghost"}, view.Text("Delete workout"))
		del.OnActivate = v.deleteWorkout(id)

		actions.Children = append(actions.Children, run, del)
	}
	form.Children = append(form.Children, actions)

	return view.El("div", nil, view.El("h2", nil, view.Text(title)), form), nil
}

// deleteWorkout cascades the workout away and returns to the list.
func (v *Views) deleteWorkout(id int64) func() {
	return func() {
		ctx := context.Background()
		if err := v.db.DeleteWorkout(ctx, id); err != nil {
			v.log.Error("workout delete failed", "id", id, "error", err)
			return
		}
		v.goTo("workouts-list", nil)()
	}
}

// exerciseRow renders one editable exercise row. A nil exercise is a blank
// draft row.
func exerciseRow(ex *models.Exercise) *view.Node {
	name, note := "", ""
	reps, load := 10, 0.0
	attrs := map[string]string{"class": "card ex-row"}
	if ex != nil {
		name, note = ex.Name, ex.Note
		reps, load = ex.TargetReps, ex.TargetLoad
		attrs["data-ex-id"] = strconv.FormatInt(ex.ID, 10)
	}

	return view.El("div", attrs,
		view.El("div", map[string]string{"class": "btn-row"},
			view.El("input", map[string]string{
				"type":        "text",
				"class":       "input ex-name",
				"value":       name,
				"placeholder": "Exercise (e.g. Bench press)",
			}),
		),
		view.El("div", map[string]string{"class": "btn-row"},
			view.El("span", nil, view.Text("Reps: ")),
			view.El("input", map[string]string{
				"type": "number", "class": "input-small ex-reps",
				"value": strconv.Itoa(reps), "min": "0",
			}),
			view.El("span", nil, view.Text("Kg: ")),
			view.El("input", map[string]string{
				"type": "number", "class": "input-small ex-load",
				"value": formatLoad(load), "min": "0", "step": "0.5",
			}),
		),
		view.El("div", map[string]string{"class": "btn-row"},
			view.El("input", map[string]string{
				"type": "text", "class": "input ex-note",
				"value": note, "placeholder": "Note (optional)",
			}),
			view.El("button", map[string]string{"class": "btn ghost"}, view.Text("Remove")),
		),
	)
}
