package util

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"sportify-admin/internal/model"
)

// leadingInt matches the integer a form value starts with, so a reps range
// like "10-12" yields its lower bound.
var leadingInt = regexp.MustCompile(`^\s*([+-]?\d+)`)

type bound struct {
	min int
}

var (
	setsBound     = bound{min: 1}
	repsBound     = bound{min: 1}
	durationBound = bound{min: 1}
	restBound     = bound{min: 0}
)

// SanitizeWorkoutPayload returns a copy of payload ready for transmission.
// Numeric exercise fields are coerced to int and kept only when they pass
// their minimum; anything else is dropped. Level and category are
// lowercased. Applying it twice gives the same result.
func SanitizeWorkoutPayload(payload model.WorkoutPayload) model.WorkoutPayload {
	out := payload
	out.Level = strings.ToLower(payload.Level)
	out.Category = strings.ToLower(payload.Category)

	if payload.Exercises == nil {
		return out
	}

	out.Exercises = make([]model.WorkoutExercisePayload, len(payload.Exercises))
	for i, exercise := range payload.Exercises {
		out.Exercises[i] = model.WorkoutExercisePayload{
			ExerciseID:      exercise.ExerciseID,
			Order:           exercise.Order,
			Sets:            setsBound.apply(exercise.Sets),
			Reps:            repsBound.apply(exercise.Reps),
			DurationSeconds: durationBound.apply(exercise.DurationSeconds),
			RestSeconds:     restBound.apply(exercise.RestSeconds),
		}
	}
	return out
}

// apply returns the coerced value as int, or nil when it is missing,
// unparsable or below the minimum.
func (b bound) apply(value any) any {
	n, ok := CoerceInt(value)
	if !ok || n < b.min {
		return nil
	}
	return n
}

// CoerceInt converts loosely typed form input to an int. Strings yield
// their leading integer; non-integral numbers are truncated.
func CoerceInt(value any) (int, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case string:
		match := leadingInt.FindStringSubmatch(v)
		if match == nil {
			return 0, false
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
