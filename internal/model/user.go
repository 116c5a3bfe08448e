package model

type User struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	FirstName   string       `json:"firstName,omitempty"`
	LastName    string       `json:"lastName,omitempty"`
	Name        string       `json:"name,omitempty"`
	Role        string       `json:"role"`
	Status      string       `json:"status,omitempty"`
	IsVerified  bool         `json:"isVerified,omitempty"`
	IsActive    bool         `json:"isActive,omitempty"`
	Provider    string       `json:"provider,omitempty"`
	Avatar      string       `json:"avatar,omitempty"`
	Goal        string       `json:"goal,omitempty"`
	CreatedAt   string       `json:"createdAt,omitempty"`
	UpdatedAt   string       `json:"updatedAt,omitempty"`
	DeletedAt   *string      `json:"deletedAt,omitempty"`
	LastLogin   string       `json:"lastLogin,omitempty"`
	Profile     *UserProfile `json:"profile,omitempty"`
	Roles       []Role       `json:"roles,omitempty"`
	GoalHistory []any        `json:"goalHistory,omitempty"`
}

// DisplayName falls back to first/last name, then email.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.FirstName != "" || u.LastName != "" {
		if u.LastName == "" {
			return u.FirstName
		}
		if u.FirstName == "" {
			return u.LastName
		}
		return u.FirstName + " " + u.LastName
	}
	return u.Email
}

type UserProfile struct {
	Age             *float64 `json:"age,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	Height          *float64 `json:"height,omitempty"`
	Gender          string   `json:"gender,omitempty"`
	BMI             *float64 `json:"bmi,omitempty"`
	ProfileImageURL string   `json:"profileImageUrl,omitempty"`
}

type UserStats struct {
	TotalWorkouts   int      `json:"totalWorkouts"`
	TotalExercises  int      `json:"totalExercises"`
	CurrentStreak   int      `json:"currentStreak"`
	LongestStreak   int      `json:"longestStreak"`
	LastWorkoutDate string   `json:"lastWorkoutDate,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	Height          *float64 `json:"height,omitempty"`
	BMI             *float64 `json:"bmi,omitempty"`
	BMICategory     string   `json:"bmiCategory,omitempty"`
}

type CreateUserPayload struct {
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Password       string `json:"password,omitempty"`
	Role           string `json:"role,omitempty"`
	SendInvitation *bool  `json:"sendInvitation,omitempty"`
}

type UpdateUserPayload struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Role      *string `json:"role,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

type ResetPasswordPayload struct {
	NewPassword string `json:"newPassword"`
}

type AssignRolesPayload struct {
	RoleNames []string `json:"roleNames"`
}
