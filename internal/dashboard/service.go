package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/projetgotham/gothamstats/internal/gym"
	"github.com/projetgotham/gothamstats/internal/stats"
	"github.com/projetgotham/gothamstats/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=dashboard_test

// ErrValidation marks bad user input, caught before any backend call.
var ErrValidation = errors.New("invalid input")

// maxConcurrentFetches bounds the per exercise performance fan out.
const maxConcurrentFetches = 5

type backendAPI interface {
	ListUsers(ctx context.Context) ([]gym.User, error)
	ListExercises(ctx context.Context, userID string) ([]gym.Exercise, error)
	CreateExercise(ctx context.Context, userID string, exercise gym.Exercise) error
	ListPerformances(ctx context.Context, userID, exerciseID string) ([]gym.Performance, error)
	CreatePerformance(ctx context.Context, p gym.Performance) error
	DeletePerformance(ctx context.Context, performanceID, userID string) error
	LeastExercise(ctx context.Context, userID string) (string, error)
}

// View is the dashboard view model handed to the rendering layer.
type View struct {
	Stats             stats.Stats   `json:"stats"`
	WeeklySessionGoal int           `json:"weeklySessionGoal"`
	LeastTrained      *LeastTrained `json:"leastTrained,omitempty"`
}

// LeastTrained is the "you are neglecting this one" card.
type LeastTrained struct {
	ExerciseID string   `json:"exerciseId"`
	Name       string   `json:"name"`
	Zone       gym.Zone `json:"zone"`
	Sessions   int      `json:"sessions"`
}

// Service builds the dashboard and profile views. Everything is recomputed
// per request from fresh backend data, there is no local persistence.
type Service struct {
	api backendAPI
	now func() time.Time
}

func NewService(api backendAPI) *Service {
	return &Service{
		api: api,
		now: time.Now,
	}
}

// Dashboard loads the exercise catalog, fans out one performance fetch per
// exercise, and aggregates the merged history. A single exercise fetch
// failing degrades that exercise to an empty history instead of failing the
// whole view. The catalog fetch failing does fail the view, there is nothing
// to render without it.
func (s *Service) Dashboard(ctx context.Context, userID string) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.view")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user", userID))

	if userID == "" {
		return View{}, fmt.Errorf("%w: user id empty", ErrValidation)
	}

	exercises, err := s.api.ListExercises(ctx, userID)
	if err != nil {
		return View{}, fmt.Errorf("list exercises: %w", err)
	}

	performances := s.fetchAllPerformances(ctx, userID, exercises)
	if err := ctx.Err(); err != nil {
		return View{}, err
	}

	view := View{
		Stats:             stats.ComputeStats(ctx, performances, s.now()),
		WeeklySessionGoal: stats.WeeklySessionGoal,
		LeastTrained:      s.leastTrained(ctx, userID, exercises, performances),
	}
	return view, nil
}

// Profile loads users and the catalog concurrently, then fans out one
// performance fetch per catalog exercise. A single exercise fetch failing
// degrades to an empty history for that exercise, the backend serves no
// "all performances" listing to lean on.
func (s *Service) Profile(ctx context.Context, userID string) (_ stats.Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.profile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user", userID))

	if userID == "" {
		return stats.Profile{}, fmt.Errorf("%w: user id empty", ErrValidation)
	}

	var (
		users     []gym.User
		exercises []gym.Exercise
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		users, err = s.api.ListUsers(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		exercises, err = s.api.ListExercises(groupCtx, userID)
		return err
	})
	if err := group.Wait(); err != nil {
		return stats.Profile{}, err
	}

	performances := s.fetchAllPerformances(ctx, userID, exercises)
	if err := ctx.Err(); err != nil {
		return stats.Profile{}, err
	}

	var user gym.User
	for _, u := range users {
		if u.UserID == userID {
			user = u
			break
		}
	}
	if user.UserID == "" {
		return stats.Profile{}, fmt.Errorf("%w: unknown user %s", ErrValidation, userID)
	}

	return stats.BuildProfile(ctx, user, exercises, performances), nil
}

// Exercises returns the user's exercise catalog.
func (s *Service) Exercises(ctx context.Context, userID string) ([]gym.Exercise, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id empty", ErrValidation)
	}
	return s.api.ListExercises(ctx, userID)
}

// AddExercise validates and forwards a new catalog entry.
func (s *Service) AddExercise(ctx context.Context, userID string, exercise gym.Exercise) error {
	if userID == "" {
		return fmt.Errorf("%w: user id empty", ErrValidation)
	}
	if exercise.Name == "" {
		return fmt.Errorf("%w: exercise name empty", ErrValidation)
	}
	if !exercise.Zone.Valid() {
		return fmt.Errorf("%w: unknown zone %q", ErrValidation, exercise.Zone)
	}
	return s.api.CreateExercise(ctx, userID, exercise)
}

// LogPerformance validates and forwards one logged set.
func (s *Service) LogPerformance(ctx context.Context, p gym.Performance) error {
	if p.UserID == "" {
		return fmt.Errorf("%w: user id empty", ErrValidation)
	}
	if p.ExerciseID == "" {
		return fmt.Errorf("%w: exercise id empty", ErrValidation)
	}
	if p.Weight < 0 {
		return fmt.Errorf("%w: negative weight", ErrValidation)
	}
	if p.Reps < 0 {
		return fmt.Errorf("%w: negative reps", ErrValidation)
	}
	if p.RPE < 0 || p.RPE > 10 {
		return fmt.Errorf("%w: rpe %v out of range", ErrValidation, p.RPE)
	}
	if p.Date == "" {
		p.Date = s.now().Format("2006-01-02T15:04:05")
	} else if _, ok := stats.ParseLooseDate(p.Date); !ok {
		return fmt.Errorf("%w: unparseable date %q", ErrValidation, p.Date)
	}
	return s.api.CreatePerformance(ctx, p)
}

// DeletePerformance removes one logged set.
func (s *Service) DeletePerformance(ctx context.Context, performanceID, userID string) error {
	if performanceID == "" {
		return fmt.Errorf("%w: performance id empty", ErrValidation)
	}
	if userID == "" {
		return fmt.Errorf("%w: user id empty", ErrValidation)
	}
	return s.api.DeletePerformance(ctx, performanceID, userID)
}

// fetchAllPerformances fans out one fetch per exercise and merges the
// results in catalog order, so the merged history is deterministic no matter
// which fetch lands first.
func (s *Service) fetchAllPerformances(ctx context.Context, userID string, exercises []gym.Exercise) []gym.Performance {
	perExercise := make([][]gym.Performance, len(exercises))

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentFetches)
	for i := range exercises {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			performances, err := s.api.ListPerformances(ctx, userID, exercises[i].ExerciseID)
			if err != nil {
				log.Errorf("dashboard: performances for exercise %s: %s", exercises[i].ExerciseID, err)
				return
			}
			perExercise[i] = performances
		}(i)
	}
	wg.Wait()

	var merged []gym.Performance
	for _, performances := range perExercise {
		merged = append(merged, performances...)
	}
	return merged
}

// leastTrained asks the backend which exercise the user neglects; deployments
// without the endpoint get the same answer computed locally: fewest logged
// sets, catalog order breaking ties. No card when the catalog is empty.
func (s *Service) leastTrained(ctx context.Context, userID string, exercises []gym.Exercise, performances []gym.Performance) *LeastTrained {
	if len(exercises) == 0 {
		return nil
	}

	counts := make(map[string]int, len(exercises))
	for _, p := range performances {
		counts[p.ExerciseID]++
	}

	if name, err := s.api.LeastExercise(ctx, userID); err != nil {
		log.Debugf("dashboard: least exercise endpoint unavailable, computing locally: %s", err)
	} else if name != "" {
		for _, e := range exercises {
			if e.Name == name || e.ExerciseID == name {
				return &LeastTrained{
					ExerciseID: e.ExerciseID,
					Name:       e.Name,
					Zone:       e.Zone,
					Sessions:   counts[e.ExerciseID],
				}
			}
		}
		// not in the catalog, still show what the backend said
		return &LeastTrained{Name: name}
	}

	best := 0
	for i := 1; i < len(exercises); i++ {
		if counts[exercises[i].ExerciseID] < counts[exercises[best].ExerciseID] {
			best = i
		}
	}

	e := exercises[best]
	return &LeastTrained{
		ExerciseID: e.ExerciseID,
		Name:       e.Name,
		Zone:       e.Zone,
		Sessions:   counts[e.ExerciseID],
	}
}
