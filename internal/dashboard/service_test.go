package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/projetgotham/gothamstats/internal/dashboard"
	"github.com/projetgotham/gothamstats/internal/gym"
	"github.com/projetgotham/gothamstats/internal/stats"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// today keeps test performances inside the current week and month windows
// without having to control the clock.
func today() string {
	return time.Now().Format("2006-01-02T15:04:05")
}

func TestDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := NewMockbackendAPI(ctrl)
	service := dashboard.NewService(api)

	exercises := []gym.Exercise{
		{ExerciseID: "squat", Name: "Squat", Zone: gym.ZoneLower},
		{ExerciseID: "bench", Name: "Bench Press", Zone: gym.ZoneUpper},
	}
	api.EXPECT().ListExercises(gomock.Any(), "u1").Return(exercises, nil)
	api.EXPECT().ListPerformances(gomock.Any(), "u1", "squat").Return([]gym.Performance{
		{PerformanceID: "p1", ExerciseID: "squat", Date: today(), Weight: 100, Reps: 5},
		{PerformanceID: "p2", ExerciseID: "squat", Date: today(), Weight: 80, Reps: 5},
	}, nil)
	api.EXPECT().ListPerformances(gomock.Any(), "u1", "bench").Return([]gym.Performance{
		{PerformanceID: "p3", ExerciseID: "bench", Date: today(), Weight: 60, Reps: 10},
	}, nil)
	api.EXPECT().LeastExercise(gomock.Any(), "u1").Return("", errors.New("no such endpoint"))

	view, err := service.Dashboard(context.Background(), "u1")
	require.NoError(t, err)

	assert.InDelta(t, 100*5+80*5+60*10, view.Stats.WeeklyVolume, 0.001)
	assert.InDelta(t, 100, view.Stats.MaxWeightByExercise["squat"], 0.001)
	assert.InDelta(t, 60, view.Stats.MaxWeightByExercise["bench"], 0.001)
	assert.Equal(t, stats.WeeklySessionGoal, view.WeeklySessionGoal)

	require.NotNil(t, view.LeastTrained)
	assert.Equal(t, "bench", view.LeastTrained.ExerciseID)
	assert.Equal(t, 1, view.LeastTrained.Sessions)
}

func TestDashboard_leastExerciseFromBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := NewMockbackendAPI(ctrl)
	service := dashboard.NewService(api)

	exercises := []gym.Exercise{
		{ExerciseID: "squat", Name: "Squat", Zone: gym.ZoneLower},
		{ExerciseID: "bench", Name: "Bench Press", Zone: gym.ZoneUpper},
	}
	api.EXPECT().ListExercises(gomock.Any(), "u1").Return(exercises, nil)
	api.EXPECT().ListPerformances(gomock.Any(), "u1", "squat").Return([]gym.Performance{
		{PerformanceID: "p1", ExerciseID: "squat", Date: today(), Weight: 100, Reps: 5},
	}, nil)
	api.EXPECT().ListPerformances(gomock.Any(), "u1", "bench").Return(nil, nil)
	// the backend answer wins over the local count, which would pick bench
	api.EXPECT().LeastExercise(gomock.Any(), "u1").Return("Squat", nil)

	view, err := service.Dashboard(context.Background(), "u1")
	require.NoError(t, err)

	require.NotNil(t, view.LeastTrained)
	assert.Equal(t, "squat", view.LeastTrained.ExerciseID)
	assert.Equal(t, "Squat", view.LeastTrained.Name)
	assert.Equal(t, 1, view.LeastTrained.Sessions)
}

func TestDashboard_exerciseFetchFailureDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := NewMockbackendAPI(ctrl)
	service := dashboard.NewService(api)

	exercises := []gym.Exercise{
		{ExerciseID: "squat", Name: "Squat", Zone: gym.ZoneLower},
		{ExerciseID: "bench", Name: "Bench Press", Zone: gym.ZoneUpper},
	}
	api.EXPECT().ListExercises(gomock.Any(), "u1").Return(exercises, nil)
	api.EXPECT().ListPerformances(gomock.Any(), "u1", "squat").Return([]gym.Performance{
		{PerformanceID: "p1", ExerciseID: "squat", Date: today(), Weight: 100, Reps: 5},
	}, nil)
	api.EXPECT().ListPerformances(gomock.Any(), "u1", "bench").
		Return(nil, errors.New("backend down"))
	api.EXPECT().LeastExercise(gomock.Any(), "u1").Return("", errors.New("no such endpoint"))

	view, err := service.Dashboard(context.Background(), "u1")
	require.NoError(t, err)

	// the failed exercise degrades to an empty history
	assert.InDelta(t, 500, view.Stats.WeeklyVolume, 0.001)
	require.NotNil(t, view.LeastTrained)
	assert.Equal(t, "bench", view.LeastTrained.ExerciseID)
	assert.Zero(t, view.LeastTrained.Sessions)
}

func TestDashboard_catalogFailureFailsView(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := NewMockbackendAPI(ctrl)
	service := dashboard.NewService(api)

	api.EXPECT().ListExercises(gomock.Any(), "u1").Return(nil, errors.New("backend down"))

	_, err := service.Dashboard(context.Background(), "u1")
	assert.Error(t, err)
}

func TestDashboard_emptyUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := dashboard.NewService(NewMockbackendAPI(ctrl))
	_, err := service.Dashboard(context.Background(), "")
	assert.ErrorIs(t, err, dashboard.ErrValidation)
}

func TestProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := NewMockbackendAPI(ctrl)
	service := dashboard.NewService(api)

	api.EXPECT().ListUsers(gomock.Any()).Return([]gym.User{
		{UserID: "u1", Username: "bruce", Score: 4200, Tier: "gold"},
		{UserID: "u2", Username: "alfred", Score: 100, Tier: "bronze"},
	}, nil)
	api.EXPECT().ListExercises(gomock.Any(), "u1").Return([]gym.Exercise{
		{ExerciseID: "squat", Name: "Squat", Zone: gym.ZoneLower},
		{ExerciseID: "bench", Name: "Bench Press", Zone: gym.ZoneUpper},
	}, nil)
	api.EXPECT().ListPerformances(gomock.Any(), "u1", "squat").Return([]gym.Performance{
		{PerformanceID: "p1", ExerciseID: "squat", Date: "2024-03-05T18:00:00", Weight: 100, Reps: 5},
	}, nil)
	api.EXPECT().ListPerformances(gomock.Any(), "u1", "bench").Return([]gym.Performance{
		{PerformanceID: "p2", ExerciseID: "bench", Date: "2024-03-06T18:00:00", Weight: 60, Reps: 10},
	}, nil)

	profile, err := service.Profile(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "bruce", profile.DisplayName)
	assert.Equal(t, "gold", profile.Tier)
	assert.InDelta(t, 500+600, profile.TotalVolume, 0.001)
	require.Len(t, profile.TopRecords, 2)
	assert.Equal(t, stats.Record{Name: "Squat", MaxWeight: 100}, profile.TopRecords[0])
}

func TestProfile_exerciseFetchFailureDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := NewMockbackendAPI(ctrl)
	service := dashboard.NewService(api)

	api.EXPECT().ListUsers(gomock.Any()).Return([]gym.User{
		{UserID: "u1", Username: "bruce", Score: 4200, Tier: "gold"},
	}, nil)
	api.EXPECT().ListExercises(gomock.Any(), "u1").Return([]gym.Exercise{
		{ExerciseID: "squat", Name: "Squat", Zone: gym.ZoneLower},
		{ExerciseID: "bench", Name: "Bench Press", Zone: gym.ZoneUpper},
	}, nil)
	api.EXPECT().ListPerformances(gomock.Any(), "u1", "squat").Return([]gym.Performance{
		{PerformanceID: "p1", ExerciseID: "squat", Date: "2024-03-05T18:00:00", Weight: 100, Reps: 5},
	}, nil)
	api.EXPECT().ListPerformances(gomock.Any(), "u1", "bench").
		Return(nil, errors.New("backend down"))

	profile, err := service.Profile(context.Background(), "u1")
	require.NoError(t, err, "one failed exercise fetch must not fail the profile")

	assert.InDelta(t, 500, profile.TotalVolume, 0.001)
	require.Len(t, profile.TopRecords, 1)
	assert.Equal(t, stats.Record{Name: "Squat", MaxWeight: 100}, profile.TopRecords[0])
}

func TestProfile_unknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := NewMockbackendAPI(ctrl)
	service := dashboard.NewService(api)

	api.EXPECT().ListUsers(gomock.Any()).Return([]gym.User{
		{UserID: "u2", Username: "alfred"},
	}, nil)
	api.EXPECT().ListExercises(gomock.Any(), "u1").Return(nil, nil)

	_, err := service.Profile(context.Background(), "u1")
	assert.ErrorIs(t, err, dashboard.ErrValidation)
}

func TestLogPerformance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := NewMockbackendAPI(ctrl)
	service := dashboard.NewService(api)

	performance := gym.Performance{
		UserID:     "u1",
		ExerciseID: "squat",
		Date:       "2024-03-05T18:00:00",
		Weight:     100,
		Reps:       5,
		RPE:        8,
	}
	api.EXPECT().CreatePerformance(gomock.Any(), performance).Return(nil)
	require.NoError(t, service.LogPerformance(context.Background(), performance))
}

func TestLogPerformance_emptyDateDefaultsToNow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := NewMockbackendAPI(ctrl)
	service := dashboard.NewService(api)

	var logged gym.Performance
	api.EXPECT().CreatePerformance(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p gym.Performance) error {
			logged = p
			return nil
		})

	require.NoError(t, service.LogPerformance(context.Background(), gym.Performance{
		UserID:     "u1",
		ExerciseID: "squat",
		Weight:     100,
		Reps:       5,
	}))

	parsed, ok := stats.ParseLooseDate(logged.Date)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)
}

func TestLogPerformance_validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no backend call should ever happen for invalid input
	service := dashboard.NewService(NewMockbackendAPI(ctrl))

	testCases := []struct {
		name        string
		performance gym.Performance
	}{
		{name: "missing user", performance: gym.Performance{ExerciseID: "squat", Weight: 100, Reps: 5}},
		{name: "missing exercise", performance: gym.Performance{UserID: "u1", Weight: 100, Reps: 5}},
		{name: "negative weight", performance: gym.Performance{UserID: "u1", ExerciseID: "squat", Weight: -1}},
		{name: "negative reps", performance: gym.Performance{UserID: "u1", ExerciseID: "squat", Reps: -1}},
		{name: "rpe out of range", performance: gym.Performance{UserID: "u1", ExerciseID: "squat", RPE: 11}},
		{name: "unparseable date", performance: gym.Performance{UserID: "u1", ExerciseID: "squat", Date: "not-a-date"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := service.LogPerformance(context.Background(), tc.performance)
			assert.ErrorIs(t, err, dashboard.ErrValidation)
		})
	}
}

func TestAddExercise_validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := dashboard.NewService(NewMockbackendAPI(ctrl))

	err := service.AddExercise(context.Background(), "u1", gym.Exercise{Name: "Squat", Zone: "sideways"})
	assert.ErrorIs(t, err, dashboard.ErrValidation)

	err = service.AddExercise(context.Background(), "u1", gym.Exercise{Zone: gym.ZoneLower})
	assert.ErrorIs(t, err, dashboard.ErrValidation)
}

func TestDeletePerformance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := NewMockbackendAPI(ctrl)
	service := dashboard.NewService(api)

	api.EXPECT().DeletePerformance(gomock.Any(), "p1", "u1").Return(nil)
	require.NoError(t, service.DeletePerformance(context.Background(), "p1", "u1"))

	err := service.DeletePerformance(context.Background(), "", "u1")
	assert.ErrorIs(t, err, dashboard.ErrValidation)
}
