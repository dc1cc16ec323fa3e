package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/projetgotham/gothamstats/internal/backend"
	"github.com/projetgotham/gothamstats/internal/gym"
	"github.com/projetgotham/gothamstats/internal/telemetry/metrics"
	"github.com/projetgotham/gothamstats/internal/telemetry/tracing"
	"github.com/projetgotham/gothamstats/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth_test

// TokenHeader carries the session token on authenticated requests.
const TokenHeader = "X-GOTHAM-TOKEN"

type loginBackend interface {
	Login(ctx context.Context, username, password string) error
	ListUsers(ctx context.Context) ([]gym.User, error)
}

type Handler struct {
	service        *Service
	backend        loginBackend
	metricsManager *metrics.Manager
}

func NewHandler(service *Service, backend loginBackend, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		backend:        backend,
		metricsManager: metricsManager,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  gym.User `json:"user"`
}

// HandleLogin forwards the credentials to the backend, which owns the
// accounts; on acceptance a session token is issued for the matching user.
func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("login, unmarshal json params: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}
	if req.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	if err := handler.backend.Login(ctx, req.Username, req.Password); err != nil {
		var statusErr *backend.StatusError
		if errors.As(err, &statusErr) {
			log.Tracef("login rejected for %s: %s", req.Username, statusErr)
			http.Error(w, "wrong credentials", http.StatusUnauthorized)
			return
		}
		log.Errorf("login, backend: %s", err)
		http.Error(w, "login failed", http.StatusBadGateway)
		return
	}

	users, err := handler.backend.ListUsers(ctx)
	if err != nil {
		log.Errorf("login, list users: %s", err)
		http.Error(w, "login failed", http.StatusBadGateway)
		return
	}

	var user gym.User
	for _, u := range users {
		if u.Username == req.Username || u.UserID == req.Username {
			user = u
			break
		}
	}
	if user.UserID == "" {
		// the backend accepted the credentials, the listing just does not
		// carry the record, keep the login working
		user = gym.User{UserID: req.Username, Username: req.Username}
	}

	token, err := handler.service.Login(ctx, user.UserID)
	if err != nil {
		log.Errorf("login, create session: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(loginResponse{Token: token, User: user})
	if err != nil {
		log.Errorf("login, marshal response: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterLogins.Inc()
	log.Debugf("user %s logged in", user.UserID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	token := r.Header.Get(TokenHeader)
	if token == "" {
		http.Error(w, "error, token empty", http.StatusBadRequest)
		return
	}

	existed, err := handler.service.Logout(ctx, token)
	if err != nil {
		log.Errorf("logout: %s", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}
	if !existed {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"loggedOut":true}`)
}
