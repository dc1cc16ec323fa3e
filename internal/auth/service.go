package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/projetgotham/gothamstats/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "gotham-session||"
	tokensSetKey     = "gotham-sessions"
)

var ErrNotLoggedIn = errors.New("not logged in")

// Session binds a token to the user it was issued for.
type Session struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service issues and checks view session tokens, backed by redis. A session
// here is profile selection, not account security, the backend owns the
// actual accounts.
type Service struct {
	redisClient *redis.Client
	ttl         time.Duration
	// injectable for unit and dev testing
	RandStringFunc func(s int) (string, error)
	NowFunc        func() time.Time
}

func NewService(ttl time.Duration, redisClient *redis.Client) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
		NowFunc:        time.Now,
	}
}

// Login creates a session for the given user and returns its token.
func (s *Service) Login(ctx context.Context, userID string) (string, error) {
	token, err := s.RandStringFunc(35)
	if err != nil {
		return "", err
	}

	sessionJson, err := json.Marshal(Session{
		UserID:    userID,
		CreatedAt: s.NowFunc(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	sessionKey := sessionKeyPrefix + token
	if err := s.redisClient.Set(ctx, sessionKey, sessionJson, s.ttl).Err(); err != nil {
		return "", err
	}

	// the tokens set is what ScanAndClean walks; entries whose session key
	// already expired get removed there
	if err := s.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// SessionUser returns the user a token belongs to, or ErrNotLoggedIn when
// the token is unknown or the session aged out.
func (s *Service) SessionUser(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrNotLoggedIn
	}

	cmd := s.redisClient.Get(ctx, sessionKeyPrefix+token)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotLoggedIn
		}
		return "", err
	}

	var session Session
	if err := json.Unmarshal([]byte(cmd.Val()), &session); err != nil {
		return "", fmt.Errorf("unmarshal session: %w", err)
	}

	if s.NowFunc().Sub(session.CreatedAt) > s.ttl {
		return "", ErrNotLoggedIn
	}

	return session.UserID, nil
}

// IsLogged reports whether the token maps to a live session.
func (s *Service) IsLogged(ctx context.Context, token string) (bool, error) {
	_, err := s.SessionUser(ctx, token)
	if errors.Is(err, ErrNotLoggedIn) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Logout drops the session. Reports whether a live session actually existed.
func (s *Service) Logout(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token

	existed := true
	if err := s.redisClient.Get(ctx, sessionKey).Err(); err != nil {
		if !errors.Is(err, redis.Nil) {
			return false, err
		}
		existed = false
	}

	if err := s.redisClient.Del(ctx, sessionKey).Err(); err != nil {
		return false, err
	}
	if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, err
	}

	return existed, nil
}

// ScanAndClean walks all known tokens and drops the ones whose session key
// is gone or aged out.
func (s *Service) ScanAndClean(ctx context.Context) {
	cmd := s.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		log.Debugf("auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		cmd := s.redisClient.Get(ctx, sessionKeyPrefix+token)
		if err := cmd.Err(); err != nil {
			if errors.Is(err, redis.Nil) {
				toRemove = append(toRemove, token)
				continue
			}
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
			continue
		}

		var session Session
		if err := json.Unmarshal([]byte(cmd.Val()), &session); err != nil {
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
			toRemove = append(toRemove, token)
			continue
		}

		if s.NowFunc().Sub(session.CreatedAt) > s.ttl {
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := s.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			log.Errorf("auth service, clean token %s: %s", token, err)
			continue
		}
		if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("auth service, clean token %s: %s", token, err)
		}
	}
}
