package model

type Workout struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Level       string            `json:"level,omitempty"`
	Difficulty  string            `json:"difficulty,omitempty"`
	Category    string            `json:"category,omitempty"`
	Description string            `json:"description"`
	Duration    int               `json:"duration,omitempty"`
	Exercises   []WorkoutExercise `json:"exercises"`
	Tags        []string          `json:"tags,omitempty"`
	ImageURL    string            `json:"imageUrl,omitempty"`
	CreatedBy   string            `json:"createdBy,omitempty"`
	CreatedAt   string            `json:"createdAt,omitempty"`
	UpdatedAt   string            `json:"updatedAt,omitempty"`
}

type WorkoutExercise struct {
	ID              string `json:"id,omitempty"`
	ExerciseID      string `json:"exerciseId"`
	ExerciseName    string `json:"exerciseName,omitempty"`
	Order           int    `json:"order"`
	Sets            int    `json:"sets"`
	Reps            any    `json:"reps,omitempty"`
	DurationSeconds *int   `json:"durationSeconds,omitempty"`
	RestSeconds     int    `json:"restSeconds"`
}

// WorkoutPayload is the body of workout create and update calls. Numeric
// exercise fields arrive loosely typed from forms and are normalized by
// util.SanitizeWorkoutPayload before transmission.
type WorkoutPayload struct {
	Name        string                   `json:"name,omitempty"`
	Description string                   `json:"description,omitempty"`
	Level       string                   `json:"level,omitempty"`
	Category    string                   `json:"category,omitempty"`
	Exercises   []WorkoutExercisePayload `json:"exercises,omitempty"`
}

type WorkoutExercisePayload struct {
	ExerciseID      string `json:"exerciseId"`
	Order           int    `json:"order"`
	Sets            any    `json:"sets,omitempty"`
	Reps            any    `json:"reps,omitempty"`
	DurationSeconds any    `json:"durationSeconds,omitempty"`
	RestSeconds     any    `json:"restSeconds,omitempty"`
}
