package api

import (
	"context"
	"net/http"

	"sportify-admin/internal/apiclient"
	"sportify-admin/internal/model"
)

const exercisesPath = "/admin/exercises"

type Exercises struct {
	resource
}

func (e *Exercises) List(ctx context.Context, filters ExerciseFilters) (model.Page[model.Exercise], error) {
	return list[model.Exercise](ctx, e.resource, resExercises, "exercises", exercisesPath, filters.Values())
}

func (e *Exercises) Get(ctx context.Context, id string) (*model.Envelope[model.Exercise], error) {
	return detail[model.Exercise](ctx, e.resource, resExerciseDetail, exercisesPath+"/"+escape(id), nil)
}

func (e *Exercises) Stats(ctx context.Context) (*model.Envelope[model.ExerciseStats], error) {
	return detail[model.ExerciseStats](ctx, e.resource, resExerciseStats, exercisesPath+"/stats", nil)
}

// Seed asks the backend to import the exercise catalogue. Unset options are
// left to the backend's defaults.
func (e *Exercises) Seed(ctx context.Context, options model.SeedExercisesOptions) (*model.Envelope[any], error) {
	req := apiclient.NewRequest(http.MethodPost, exercisesPath+"/seed").WithBody(options)
	return mutate[any](ctx, e.resource, req, exercisesSeeded)
}
