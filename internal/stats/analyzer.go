package stats

import (
	"context"
	"time"

	"github.com/projetgotham/gothamstats/internal/gym"
	"github.com/projetgotham/gothamstats/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// WeeklySessionGoal is the fixed weekly training goal the dashboard ring
// counts towards: train on 3 distinct days per week.
const WeeklySessionGoal = 3

// Stats are the derived dashboard numbers, recomputed from scratch on every
// view load. Nothing here is persisted.
type Stats struct {
	// WeeklyVolume is the sum of weight x reps over the current week window.
	WeeklyVolume float64 `json:"weeklyVolume"`
	// WeeklySessionDays is the number of distinct days trained this week,
	// capped at WeeklySessionGoal.
	WeeklySessionDays int `json:"weeklySessionDays"`
	// MonthlyVolume is the sum of weight x reps over the current month window.
	// A performance in the first week of a month counts towards both the week
	// and the month, that is intentional.
	MonthlyVolume float64 `json:"monthlyVolume"`
	// MaxWeightByExercise holds the all-time heaviest weight per exercise.
	// Personal records are not scoped to any window.
	MaxWeightByExercise map[string]float64 `json:"maxWeightByExercise"`
}

// ComputeStats derives the dashboard stats from a set of performances.
//
// Performances whose date cannot be parsed are left out of the week and month
// buckets but still count towards the per-exercise maximums, which ignore
// dates entirely. Malformed numeric fields have already been normalized to
// zero upstream, so a broken record degrades to zero contribution instead of
// poisoning the whole aggregate.
func ComputeStats(ctx context.Context, performances []gym.Performance, now time.Time) Stats {
	_, span := tracing.GlobalTracer.Start(ctx, "stats.compute")
	defer span.End()
	span.SetAttributes(attribute.Int("performances", len(performances)))

	weekStart, weekEnd := WeekStart(now), WeekEnd(now)
	monthStart, monthEnd := MonthStart(now), MonthEnd(now)

	stats := Stats{
		MaxWeightByExercise: maxWeightByExercise(performances),
	}

	weekDays := make(map[string]struct{})
	for _, p := range performances {
		date, ok := ParseLooseDate(p.Date)
		if !ok {
			continue
		}

		volume := p.Volume()
		if !date.Before(weekStart) && !date.After(weekEnd) {
			stats.WeeklyVolume += volume
			weekDays[date.Format("2006-01-02")] = struct{}{}
		}
		if !date.Before(monthStart) && !date.After(monthEnd) {
			stats.MonthlyVolume += volume
		}
	}

	stats.WeeklySessionDays = len(weekDays)
	if stats.WeeklySessionDays > WeeklySessionGoal {
		stats.WeeklySessionDays = WeeklySessionGoal
	}

	return stats
}

// maxWeightByExercise tracks the running maximum weight per exercise over the
// whole input, in any order. An exercise with only zero-weight sets still gets
// an entry, with max 0.
func maxWeightByExercise(performances []gym.Performance) map[string]float64 {
	maxWeights := make(map[string]float64)
	for _, p := range performances {
		if p.ExerciseID == "" {
			continue
		}
		if current, ok := maxWeights[p.ExerciseID]; !ok || p.Weight > current {
			maxWeights[p.ExerciseID] = p.Weight
		}
	}
	return maxWeights
}
