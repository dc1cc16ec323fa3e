package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/projetgotham/gothamstats/internal/backend"
	"github.com/projetgotham/gothamstats/internal/gym"
	"github.com/projetgotham/gothamstats/internal/telemetry/metrics"
	"github.com/projetgotham/gothamstats/internal/telemetry/tracing"
	"github.com/projetgotham/gothamstats/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service        *Service
	metricsManager *metrics.Manager
}

func NewHandler(service *Service, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	view, err := handler.service.Dashboard(ctx, userID)
	if err != nil {
		writeServiceError(w, "failed to load dashboard", err)
		return
	}

	viewJson, err := json.Marshal(view)
	if err != nil {
		log.Errorf("failed to marshal dashboard view: %s", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, viewJson, http.StatusOK)
}

func (handler *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	profile, err := handler.service.Profile(ctx, userID)
	if err != nil {
		writeServiceError(w, "failed to load profile", err)
		return
	}

	profileJson, err := json.Marshal(profile)
	if err != nil {
		log.Errorf("failed to marshal profile view: %s", err)
		http.Error(w, "failed to load profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, profileJson, http.StatusOK)
}

func (handler *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	exercises, err := handler.service.Exercises(ctx, userID)
	if err != nil {
		writeServiceError(w, "failed to list exercises", err)
		return
	}

	exercisesJson, err := json.Marshal(exercises)
	if err != nil {
		log.Errorf("failed to marshal exercises: %s", err)
		http.Error(w, "failed to list exercises", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exercisesJson, http.StatusOK)
}

func (handler *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	userID := mux.Vars(r)["userId"]

	var exercise gym.Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Tracef("add exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	if err := handler.service.AddExercise(ctx, userID, exercise); err != nil {
		writeServiceError(w, "failed to add exercise", err)
		return
	}

	log.Debugf("exercise added for user %s: %s", userID, exercise.Name)
	pkg.WriteJSONResponseOK(w, `{"added":true}`)
}

func (handler *Handler) HandleLogPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.performances.log")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var performance gym.Performance
	if err := json.NewDecoder(r.Body).Decode(&performance); err != nil {
		log.Tracef("log performance, unmarshal json params: %s", err)
		http.Error(w, "log performance failed", http.StatusBadRequest)
		return
	}

	if err := handler.service.LogPerformance(ctx, performance); err != nil {
		writeServiceError(w, "failed to log performance", err)
		return
	}

	handler.metricsManager.CounterPerformancesLogged.Inc()
	log.Debugf("performance logged: user %s, exercise %s, %v kg x %d",
		performance.UserID, performance.ExerciseID, performance.Weight, performance.Reps)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, []byte(`{"logged":true}`), http.StatusCreated)
}

func (handler *Handler) HandleDeletePerformance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.performances.delete")
	defer span.End()

	vars := mux.Vars(r)
	performanceID := vars["id"]
	userID := r.URL.Query().Get("user_id")

	if err := handler.service.DeletePerformance(ctx, performanceID, userID); err != nil {
		writeServiceError(w, "failed to delete performance", err)
		return
	}

	deleteRespJson, err := json.Marshal(struct {
		DeletedID string `json:"deletedId"`
	}{DeletedID: performanceID})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

// writeServiceError maps service errors to status codes: bad input is the
// caller's fault, an exhausted endpoint chain is the backend's, everything
// else is ours.
func writeServiceError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		log.Tracef("%s: %s", message, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, backend.ErrEndpointUnavailable):
		log.Errorf("%s: %s", message, err)
		http.Error(w, message, http.StatusBadGateway)
	default:
		log.Errorf("%s: %s", message, err)
		http.Error(w, message, http.StatusInternalServerError)
	}
}
