package model

type Exercise struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	BodyPart         string   `json:"bodyPart"`
	Equipment        string   `json:"equipment"`
	Target           string   `json:"target"`
	SecondaryMuscles []string `json:"secondaryMuscles,omitempty"`
	Instructions     []string `json:"instructions,omitempty"`
	GifURL           string   `json:"gifUrl,omitempty"`
	Tips             []string `json:"tips,omitempty"`
	Variations       []string `json:"variations,omitempty"`
	Difficulty       string   `json:"difficulty,omitempty"`
	CreatedAt        string   `json:"createdAt,omitempty"`
	UpdatedAt        string   `json:"updatedAt,omitempty"`
}

type ExerciseStats struct {
	TotalExercises int            `json:"totalExercises"`
	LastSeeded     string         `json:"lastSeeded,omitempty"`
	SeedStatus     string         `json:"seedStatus"`
	BodyParts      map[string]int `json:"bodyParts"`
	Equipment      map[string]int `json:"equipment"`
}

type SeedExercisesOptions struct {
	Force *bool `json:"force,omitempty"`
	Limit *int  `json:"limit,omitempty"`
}
