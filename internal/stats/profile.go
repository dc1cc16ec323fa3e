package stats

import (
	"context"
	"sort"

	"github.com/projetgotham/gothamstats/internal/gym"
	"github.com/projetgotham/gothamstats/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// TopRecordsLimit caps the personal records list on the profile view.
	TopRecordsLimit = 15
	// RecentHistoryLimit caps the history list on the profile view.
	RecentHistoryLimit = 50
)

// Record is one personal record line on the profile view: the heaviest
// weight ever logged for an exercise.
type Record struct {
	Name      string  `json:"name"`
	MaxWeight float64 `json:"maxWeight"`
}

// HistoryEntry is one logged set on the profile history list.
type HistoryEntry struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	Date   string  `json:"date"`
}

// Profile is the read only profile view model. Tier and score come straight
// from the user record, the backend computes them.
type Profile struct {
	DisplayName          string         `json:"displayName"`
	Tier                 string         `json:"tier"`
	Score                float64        `json:"score"`
	TotalVolume          float64        `json:"totalVolume"`
	TotalVolumeFormatted string         `json:"totalVolumeFormatted"`
	TopRecords           []Record       `json:"topRecords"`
	RecentHistory        []HistoryEntry `json:"recentHistory"`
}

// BuildProfile assembles the profile view from already fetched data. No
// network calls happen here.
//
// Lifetime volume runs over every performance, including those with
// unparseable dates, which the windowed aggregates skip. Top records join the
// all time per exercise maximums with the catalog names, heaviest first, ties
// kept in catalog order. Recent history is ordered by raw date string
// descending, the same ordering the upstream records carry, so mixed date
// formats sort predictably even when they do not sort chronologically.
func BuildProfile(ctx context.Context, user gym.User, exercises []gym.Exercise, performances []gym.Performance) Profile {
	_, span := tracing.GlobalTracer.Start(ctx, "stats.profile")
	defer span.End()
	span.SetAttributes(
		attribute.String("user", user.UserID),
		attribute.Int("performances", len(performances)),
	)

	profile := Profile{
		DisplayName:   user.Username,
		Tier:          user.Tier,
		Score:         user.Score,
		TopRecords:    topRecords(exercises, performances),
		RecentHistory: recentHistory(exercises, performances),
	}
	for _, p := range performances {
		profile.TotalVolume += p.Volume()
	}
	profile.TotalVolumeFormatted = FormatKgCompact(profile.TotalVolume)

	return profile
}

func topRecords(exercises []gym.Exercise, performances []gym.Performance) []Record {
	maxWeights := maxWeightByExercise(performances)

	records := make([]Record, 0, len(maxWeights))
	seen := make(map[string]struct{}, len(maxWeights))
	for _, e := range exercises {
		maxWeight, ok := maxWeights[e.ExerciseID]
		if !ok {
			continue
		}
		records = append(records, Record{Name: e.Name, MaxWeight: maxWeight})
		seen[e.ExerciseID] = struct{}{}
	}
	// performances referencing an exercise missing from the catalog still
	// show up, under the raw exercise id
	for _, p := range performances {
		if _, ok := seen[p.ExerciseID]; ok || p.ExerciseID == "" {
			continue
		}
		records = append(records, Record{Name: p.ExerciseID, MaxWeight: maxWeights[p.ExerciseID]})
		seen[p.ExerciseID] = struct{}{}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].MaxWeight > records[j].MaxWeight
	})
	if len(records) > TopRecordsLimit {
		records = records[:TopRecordsLimit]
	}
	return records
}

func recentHistory(exercises []gym.Exercise, performances []gym.Performance) []HistoryEntry {
	names := make(map[string]string, len(exercises))
	for _, e := range exercises {
		names[e.ExerciseID] = e.Name
	}

	history := make([]HistoryEntry, 0, len(performances))
	for _, p := range performances {
		name, ok := names[p.ExerciseID]
		if !ok {
			name = p.ExerciseID
		}
		history = append(history, HistoryEntry{
			Name:   name,
			Weight: p.Weight,
			Reps:   p.Reps,
			Date:   p.Date,
		})
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date > history[j].Date
	})
	if len(history) > RecentHistoryLimit {
		history = history[:RecentHistoryLimit]
	}
	return history
}

var frenchPrinter = message.NewPrinter(language.French)

// FormatKgCompact renders a kilogram total the way the profile page shows it:
// French number formatting, and totals of ten tonnes or more compacted to one
// decimal with a "k" suffix.
func FormatKgCompact(kilos float64) string {
	if kilos >= 10000 {
		return frenchPrinter.Sprintf("%.1fk kg", kilos/1000)
	}
	return frenchPrinter.Sprintf("%.0f kg", kilos)
}
