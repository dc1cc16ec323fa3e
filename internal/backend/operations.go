package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/projetgotham/gothamstats/internal/gym"
)

// Candidate chains per logical operation, preferred variant first. The old
// paths stay listed as long as some deployment still answers on them.
var (
	listUsersCandidates = []Candidate{
		{Method: http.MethodGet, Path: "/api/users"},
	}
	loginCandidates = []Candidate{
		{Method: http.MethodPost, Path: "/api/login"},
	}
	leastExerciseCandidates = []Candidate{
		{Method: http.MethodGet, Path: "/api/least-exercise"},
	}
	listExercisesCandidates = []Candidate{
		{Method: http.MethodGet, Path: "/api/exercises"},
		{Method: http.MethodGet, Path: "/api/exercices"},
	}
	createExerciseCandidates = []Candidate{
		{Method: http.MethodPost, Path: "/api/exercises/create"},
		{Method: http.MethodPost, Path: "/api/exercises"},
		{Method: http.MethodPost, Path: "/api/exercices"},
	}
	listPerformancesCandidates = []Candidate{
		{Method: http.MethodGet, Path: "/api/performances"},
		{Method: http.MethodGet, Path: "/api/workouts"},
	}
	createPerformanceCandidates = []Candidate{
		{Method: http.MethodPost, Path: "/api/performances/create"},
		{Method: http.MethodPost, Path: "/api/performances"},
		{Method: http.MethodPost, Path: "/api/workouts"},
	}
	deletePerformanceCandidates = []Candidate{
		{Method: http.MethodDelete, Path: "/api/performances/{performance_id}"},
		{Method: http.MethodPost, Path: "/api/performances/delete"},
	}
)

func (c *Client) ListUsers(ctx context.Context) ([]gym.User, error) {
	body, err := c.resolve(ctx, "listUsers", listUsersCandidates, nil)
	if err != nil {
		return nil, err
	}
	records, err := DecodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]gym.User, 0, len(records))
	for _, record := range records {
		users = append(users, NormalizeUser(record))
	}
	return users, nil
}

// Login forwards the credentials to the backend. Whether they are valid is
// entirely the backend's call, a rejection comes back as a StatusError.
func (c *Client) Login(ctx context.Context, username, password string) error {
	_, err := c.resolve(ctx, "login", loginCandidates, map[string]any{
		"username": username,
		"password": password,
	})
	return err
}

// LeastExercise asks the backend which exercise the user trains the least.
// Older deployments do not serve the endpoint at all, callers are expected
// to fall back to computing it themselves.
func (c *Client) LeastExercise(ctx context.Context, userID string) (string, error) {
	body, err := c.resolve(ctx, "leastExercise", leastExerciseCandidates, map[string]any{
		"user_id": userID,
	})
	if err != nil {
		return "", err
	}
	records, err := DecodeRecords(body)
	if err != nil {
		return "", fmt.Errorf("least exercise: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}
	return stringField(records[0], "exercise", "name"), nil
}

func (c *Client) ListExercises(ctx context.Context, userID string) ([]gym.Exercise, error) {
	body, err := c.resolve(ctx, "listExercises", listExercisesCandidates, map[string]any{
		"user_id": userID,
	})
	if err != nil {
		return nil, err
	}
	records, err := DecodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}

	exercises := make([]gym.Exercise, 0, len(records))
	for _, record := range records {
		exercises = append(exercises, NormalizeExercise(record))
	}
	return exercises, nil
}

func (c *Client) CreateExercise(ctx context.Context, userID string, exercise gym.Exercise) error {
	_, err := c.resolve(ctx, "createExercise", createExerciseCandidates, map[string]any{
		"user_id":   userID,
		"name":      exercise.Name,
		"zone":      string(exercise.Zone),
		"video_url": exercise.VideoURL,
	})
	return err
}

// ListPerformances lists the performances of one user, optionally narrowed
// to one exercise.
func (c *Client) ListPerformances(ctx context.Context, userID, exerciseID string) ([]gym.Performance, error) {
	params := map[string]any{
		"user_id": userID,
	}
	if exerciseID != "" {
		params["exercise_id"] = exerciseID
	}

	body, err := c.resolve(ctx, "listPerformances", listPerformancesCandidates, params)
	if err != nil {
		return nil, err
	}
	records, err := DecodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("list performances: %w", err)
	}

	performances := make([]gym.Performance, 0, len(records))
	for _, record := range records {
		performances = append(performances, NormalizePerformance(record))
	}
	return performances, nil
}

func (c *Client) CreatePerformance(ctx context.Context, p gym.Performance) error {
	params := map[string]any{
		"user_id":     p.UserID,
		"exercise_id": p.ExerciseID,
		"date":        p.Date,
		"weight":      p.Weight,
		"reps":        p.Reps,
	}
	if p.RPE > 0 {
		params["rpe"] = p.RPE
	}
	if p.Notes != "" {
		params["notes"] = p.Notes
	}

	_, err := c.resolve(ctx, "createPerformance", createPerformanceCandidates, params)
	return err
}

// DeletePerformance removes one logged set. The newer endpoint takes the id
// in the path, the older one takes a JSON body, which is why user_id rides
// along in the params.
func (c *Client) DeletePerformance(ctx context.Context, performanceID, userID string) error {
	_, err := c.resolve(ctx, "deletePerformance", deletePerformanceCandidates, map[string]any{
		"performance_id": performanceID,
		"user_id":        userID,
	})
	return err
}
