package api

// Cache resource names. A dotted name belongs to the family before the dot,
// so invalidating "users" also covers "users.detail" and "users.deleted".
const (
	resUsers          = "users"
	resUserDetail     = "users.detail"
	resUserStats      = "users.stats"
	resUsersDeleted   = "users.deleted"
	resExercises      = "exercises"
	resExerciseDetail = "exercises.detail"
	resExerciseStats  = "exercises.stats"
	resWorkouts       = "workouts"
	resWorkoutDetail  = "workouts.detail"
	resNotifications  = "notifications"
	resAuditLogs      = "audit-logs"
	resAnalytics      = "analytics"
	resOverview       = "analytics.overview"
	resCharts         = "analytics.charts"
	resRoles          = "roles"
	resRoleDetail     = "roles.detail"
	resPermissions    = "permissions"
	resGrouped        = "permissions.grouped"
)

// Families invalidated after each kind of successful mutation.
var (
	userWritten     = []string{resUsers, resAuditLogs}
	userCreated     = []string{resUsers, resAnalytics, resAuditLogs}
	userRemoved     = []string{resUsers, resUsersDeleted, resAnalytics, resAuditLogs}
	exercisesSeeded = []string{resExercises, resAnalytics, resAuditLogs}
	workoutWritten  = []string{resWorkouts, resAnalytics, resAuditLogs}
	notificationSet = []string{resNotifications}
	roleWritten     = []string{resRoles, resUsers, resAuditLogs}
	permWritten     = []string{resPermissions, resRoles, resAuditLogs}
)
