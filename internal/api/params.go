package api

import (
	"net/url"
	"strconv"
)

// Filter fields are pointers: nil is omitted from the query string, any set
// value is sent, including 0 and "".

type UserFilters struct {
	Page   *int
	Limit  *int
	Search *string
	Role   *string
	Status *string
}

func (f UserFilters) Values() url.Values {
	v := url.Values{}
	setInt(v, "page", f.Page)
	setInt(v, "limit", f.Limit)
	setString(v, "search", f.Search)
	setString(v, "role", f.Role)
	setString(v, "status", f.Status)
	return v
}

type ExerciseFilters struct {
	Page       *int
	Limit      *int
	Search     *string
	BodyPart   *string
	Equipment  *string
	Target     *string
	Difficulty *string
}

func (f ExerciseFilters) Values() url.Values {
	v := url.Values{}
	setInt(v, "page", f.Page)
	setInt(v, "limit", f.Limit)
	setString(v, "search", f.Search)
	setString(v, "bodyPart", f.BodyPart)
	setString(v, "equipment", f.Equipment)
	setString(v, "target", f.Target)
	setString(v, "difficulty", f.Difficulty)
	return v
}

type WorkoutFilters struct {
	Page     *int
	Limit    *int
	Search   *string
	Level    *string
	Category *string
}

func (f WorkoutFilters) Values() url.Values {
	v := url.Values{}
	setInt(v, "page", f.Page)
	setInt(v, "limit", f.Limit)
	setString(v, "search", f.Search)
	setString(v, "level", f.Level)
	setString(v, "category", f.Category)
	return v
}

type NotificationFilters struct {
	Page   *int
	Limit  *int
	Status *string
}

func (f NotificationFilters) Values() url.Values {
	v := url.Values{}
	setInt(v, "page", f.Page)
	setInt(v, "limit", f.Limit)
	setString(v, "status", f.Status)
	return v
}

type AuditLogFilters struct {
	Page      *int
	Limit     *int
	UserID    *string
	Action    *string
	Resource  *string
	StartDate *string
	EndDate   *string
}

func (f AuditLogFilters) Values() url.Values {
	v := url.Values{}
	setInt(v, "page", f.Page)
	setInt(v, "limit", f.Limit)
	setString(v, "userId", f.UserID)
	setString(v, "action", f.Action)
	setString(v, "resource", f.Resource)
	setString(v, "startDate", f.StartDate)
	setString(v, "endDate", f.EndDate)
	return v
}

type AnalyticsFilters struct {
	StartDate *string
	EndDate   *string
}

func (f AnalyticsFilters) Values() url.Values {
	v := url.Values{}
	setString(v, "startDate", f.StartDate)
	setString(v, "endDate", f.EndDate)
	return v
}

// Ptr returns a pointer to v, for filling filter and payload fields inline.
func Ptr[T any](v T) *T {
	return &v
}

func setInt(v url.Values, key string, value *int) {
	if value != nil {
		v.Set(key, strconv.Itoa(*value))
	}
}

func setString(v url.Values, key string, value *string) {
	if value != nil {
		v.Set(key, *value)
	}
}
