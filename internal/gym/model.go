package gym

// Zone is the coarse body region an exercise targets.
type Zone string

const (
	ZoneUpper Zone = "haut"
	ZoneLower Zone = "bas"
)

// Valid reports whether the zone is one of the two known body regions.
func (z Zone) Valid() bool {
	return z == ZoneUpper || z == ZoneLower
}

// User is a tracked athlete. Score and tier are computed by the backend,
// this service only reads them.
type User struct {
	UserID   string  `json:"userId"`
	Username string  `json:"username"`
	Score    float64 `json:"score"`
	Tier     string  `json:"tier"`
}

type Exercise struct {
	ExerciseID string `json:"exerciseId"`
	Name       string `json:"name"`
	Zone       Zone   `json:"zone"`
	VideoURL   string `json:"videoUrl"`

	// backend-computed extras, zero when the backend variant does not send them
	Sessions       int     `json:"sessions"`
	MaxWeight      float64 `json:"maxWeight"`
	TrainingWeight float64 `json:"trainingWeight"`
}

// Performance is one logged set of an exercise.
// Date keeps the raw backend value; parsing it is the stats package's job,
// since historical backend versions format it in several different ways.
type Performance struct {
	PerformanceID string  `json:"performanceId"`
	ExerciseID    string  `json:"exerciseId"`
	UserID        string  `json:"userId"`
	Date          string  `json:"date"`
	Weight        float64 `json:"weight"`
	Reps          int     `json:"reps"`
	RPE           float64 `json:"rpe"`
	Notes         string  `json:"notes"`
}

// Volume is the training load of one set: weight x reps.
func (p Performance) Volume() float64 {
	return p.Weight * float64(p.Reps)
}
