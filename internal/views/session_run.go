package views

import (
	"context"
	"net/url"
	"strconv"

	"github.com/meltforce/gymcontrol/internal/view"
)

// SessionRun renders the execution screen: one block per exercise, prefilled
// with the stored targets, and the finalize action. The form posts to the
// session endpoint; the update-targets checkbox drives the optional feedback
// onto the source exercises.
func (v *Views) SessionRun(ctx context.Context, params url.Values) (*view.Node, error) {
	workoutID, ok := idParam(params, "workout_id")
	if !ok {
		return notice("Workout not found."), nil
	}

	workout, err := v.db.GetWorkout(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if workout == nil {
		return notice("Workout not found."), nil
	}

	exercises, err := v.db.ListWorkoutExercises(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if len(exercises) == 0 {
		return view.El("div", nil,
			view.El("h2", nil, view.Text(workout.Name)),
			notice("This workout has no exercises yet."),
		), nil
	}

	form := view.El("form", map[string]string{
		"method": "post",
		"action": "/api/v1/workouts/" + strconv.FormatInt(workoutID, 10) + "/sessions",
	})
	for i, ex := range exercises {
		form.Children = append(form.Children, view.El("div",
			map[string]string{
				"class":      "exec-block",
				"data-ex-id": strconv.FormatInt(ex.ID, 10),
			},
			view.El("div", nil,
				view.El("div", map[string]string{"class": "exec-name"},
					view.Text(strconv.Itoa(i+1)+". "+ex.Name)),
				view.El("div", map[string]string{"class": "muted"},
					view.Text("Target: "+strconv.Itoa(ex.TargetReps)+" reps · "+formatLoad(ex.TargetLoad)+" kg")),
			),
			view.El("div", nil,
				view.El("input", map[string]string{
					"type": "number", "class": "input-small cur-reps",
					"value": strconv.Itoa(ex.TargetReps), "min": "0",
				}),
				view.El("input", map[string]string{
					"type": "number", "class": "input-small cur-load",
					"value": formatLoad(ex.TargetLoad), "min": "0", "step": "0.5",
				}),
			),
		))
	}

	form.Children = append(form.Children,
		view.El("label", map[string]string{"class": "btn-row"},
			view.El("input", map[string]string{"type": "checkbox", "name": "update_targets"}),
			view.Text("Update the workout targets with this session's numbers"),
		),
		view.El("div", map[string]string{"class": "btn-row"},
			view.El("button", map[string]string{"class": "btn primary", "type": "submit"},
				view.Text("Finish session")),
		),
	)

	return view.El("div", nil,
		view.El("h2", nil, view.Text("Running · "+workout.Name)),
		form,
	), nil
}
