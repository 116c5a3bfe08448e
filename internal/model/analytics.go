package model

type AnalyticsOverview struct {
	TotalUsers     int `json:"totalUsers"`
	ActiveUsers    int `json:"activeUsers"`
	TotalExercises int `json:"totalExercises"`
	TotalWorkouts  int `json:"totalWorkouts"`
	UserGrowth     struct {
		ThisMonth int     `json:"thisMonth"`
		LastMonth int     `json:"lastMonth"`
		Growth    float64 `json:"growth"`
	} `json:"userGrowth"`
	WorkoutStats struct {
		Completed  int `json:"completed"`
		InProgress int `json:"inProgress"`
		Abandoned  int `json:"abandoned"`
	} `json:"workoutStats"`
	ExerciseStats struct {
		MostPopular []NamedCount `json:"mostPopular"`
	} `json:"exerciseStats"`
}

type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ChartData struct {
	UserActivity []struct {
		Date        string `json:"date"`
		ActiveUsers int    `json:"activeUsers"`
	} `json:"userActivity"`
	ExerciseDistribution []struct {
		BodyPart string `json:"bodyPart"`
		Count    int    `json:"count"`
	} `json:"exerciseDistribution"`
	WorkoutPopularity []struct {
		Name        string `json:"name"`
		Completions int    `json:"completions"`
	} `json:"workoutPopularity"`
}
