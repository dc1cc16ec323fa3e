package backend

import (
	"strconv"
	"strings"

	"github.com/projetgotham/gothamstats/internal/gym"
)

// The backend API renamed most record fields at least once across its
// versions, and old records come back with the old names. Each canonical
// field maps to an ordered list of known aliases, first present wins.
var (
	performanceIDAliases         = []string{"performance_id", "perf_id", "id"}
	performanceExerciseIDAliases = []string{"exercise_id", "exerciseId"}
	userIDAliases                = []string{"user_id", "userId"}
	dateAliases                  = []string{"date", "created_at", "at", "timestamp"}
	weightAliases                = []string{"weight", "kg", "charge"}
	repsAliases                  = []string{"reps", "repetitions"}
	rpeAliases                   = []string{"ressenti", "rpe", "rpe10"}
	notesAliases                 = []string{"notes", "note"}

	exerciseIDAliases     = []string{"exercise_id", "id", "exerciseId"}
	exerciseNameAliases   = []string{"name", "exercise"}
	zoneAliases           = []string{"zone", "muscle_group"}
	videoURLAliases       = []string{"video_url", "video", "videoUrl"}
	sessionsAliases       = []string{"sessions", "nb", "count"}
	maxWeightAliases      = []string{"max_weight", "max"}
	trainingWeightAliases = []string{"training_weight", "training"}

	userRecordIDAliases = []string{"user_id", "id", "userId"}
	usernameAliases     = []string{"username", "name", "pseudo"}
	scoreAliases        = []string{"score", "points"}
	tierAliases         = []string{"tier", "rank", "level"}
)

// NormalizePerformance canonicalizes one raw performance record. Missing or
// non numeric fields become zero, missing strings become empty. It never
// fails, one broken record must not take the whole dashboard down with it.
func NormalizePerformance(raw map[string]any) gym.Performance {
	return gym.Performance{
		PerformanceID: stringField(raw, performanceIDAliases...),
		ExerciseID:    stringField(raw, performanceExerciseIDAliases...),
		UserID:        stringField(raw, userIDAliases...),
		Date:          stringField(raw, dateAliases...),
		Weight:        floatField(raw, weightAliases...),
		Reps:          intField(raw, repsAliases...),
		RPE:           floatField(raw, rpeAliases...),
		Notes:         stringField(raw, notesAliases...),
	}
}

// NormalizeExercise canonicalizes one raw exercise record.
func NormalizeExercise(raw map[string]any) gym.Exercise {
	return gym.Exercise{
		ExerciseID:     stringField(raw, exerciseIDAliases...),
		Name:           stringField(raw, exerciseNameAliases...),
		Zone:           gym.Zone(stringField(raw, zoneAliases...)),
		VideoURL:       stringField(raw, videoURLAliases...),
		Sessions:       intField(raw, sessionsAliases...),
		MaxWeight:      floatField(raw, maxWeightAliases...),
		TrainingWeight: floatField(raw, trainingWeightAliases...),
	}
}

// NormalizeUser canonicalizes one raw user record.
func NormalizeUser(raw map[string]any) gym.User {
	return gym.User{
		UserID:   stringField(raw, userRecordIDAliases...),
		Username: stringField(raw, usernameAliases...),
		Score:    floatField(raw, scoreAliases...),
		Tier:     stringField(raw, tierAliases...),
	}
}

// stringField returns the first alias present, rendered as a string. Some
// backend versions return ids as JSON numbers, those get stringified without
// a fractional part.
func stringField(raw map[string]any, aliases ...string) string {
	for _, alias := range aliases {
		v, ok := raw[alias]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			return val
		case float64:
			return strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(val)
		}
	}
	return ""
}

// floatField returns the first alias present that converts to a number.
// Numeric strings count, "82.5" is a valid weight in old records.
func floatField(raw map[string]any, aliases ...string) float64 {
	for _, alias := range aliases {
		v, ok := raw[alias]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case float64:
			return val
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
				return f
			}
		}
	}
	return 0
}

func intField(raw map[string]any, aliases ...string) int {
	return int(floatField(raw, aliases...))
}
