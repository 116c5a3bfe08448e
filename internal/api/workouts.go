package api

import (
	"context"
	"net/http"

	"sportify-admin/internal/apiclient"
	"sportify-admin/internal/model"
	"sportify-admin/internal/util"
)

const workoutsPath = "/admin/workouts"

type Workouts struct {
	resource
}

func (w *Workouts) List(ctx context.Context, filters WorkoutFilters) (model.Page[model.Workout], error) {
	return list[model.Workout](ctx, w.resource, resWorkouts, "workouts", workoutsPath, filters.Values())
}

func (w *Workouts) Get(ctx context.Context, id string) (*model.Envelope[model.Workout], error) {
	return detail[model.Workout](ctx, w.resource, resWorkoutDetail, workoutsPath+"/"+escape(id), nil)
}

func (w *Workouts) Create(ctx context.Context, payload model.WorkoutPayload) (*model.Envelope[model.Workout], error) {
	req := apiclient.NewRequest(http.MethodPost, workoutsPath).WithBody(util.SanitizeWorkoutPayload(payload))
	return mutate[model.Workout](ctx, w.resource, req, workoutWritten)
}

func (w *Workouts) Update(ctx context.Context, id string, payload model.WorkoutPayload) (*model.Envelope[model.Workout], error) {
	req := apiclient.NewRequest(http.MethodPut, workoutsPath+"/"+escape(id)).WithBody(util.SanitizeWorkoutPayload(payload))
	return mutate[model.Workout](ctx, w.resource, req, workoutWritten)
}

func (w *Workouts) Delete(ctx context.Context, id string) (*model.Envelope[any], error) {
	req := apiclient.NewRequest(http.MethodDelete, workoutsPath+"/"+escape(id))
	return mutate[any](ctx, w.resource, req, workoutWritten)
}
