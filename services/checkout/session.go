package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"careflow/models"
	"careflow/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// SessionStore is the durable key-value home of checkout sessions. It is the
// only persistence the wizard logic touches, so a non-Redis target can swap
// in a different store without changing any funnel code.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
	Put(ctx context.Context, session *models.CheckoutSession) error
	Delete(ctx context.Context, sessionID string) error
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore returns a SessionStore storing sessions as JSON under
// a prefixed key with the given TTL.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	data, err := s.client.Get(ctx, utils.SessionKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load checkout session: %w", err)
	}
	var session models.CheckoutSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse checkout session: %w", err)
	}
	return &session, nil
}

func (s *redisSessionStore) Put(ctx context.Context, session *models.CheckoutSession) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout session: %w", err)
	}
	if err := s.client.Set(ctx, utils.SessionKeyPrefix+session.SessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store checkout session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, utils.SessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete checkout session: %w", err)
	}
	return nil
}

// loadSession fetches the stored session and, when the persisted mirror
// carries an authorization this process has no handle for, re-seeds the
// intent handle. Every read path goes through here so a session resumed
// after a restart never triggers a duplicate processor-side authorization.
func (s *DefaultCheckoutService) loadSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IntentStatus == string(IntentReady) {
		s.Intents.Restore(session.SessionID, session.ClientSecret, session.TrackingID)
	}
	return session, nil
}

// StartSession creates a new empty session, or resumes an existing one: the
// stored answers alone reproduce the step the patient left off at.
func (s *DefaultCheckoutService) StartSession(ctx context.Context, sessionID string) (*models.CheckoutState, error) {
	if sessionID != "" {
		session, err := s.loadSession(ctx, sessionID)
		if err == nil {
			return s.stateFor(session), nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
	}

	session := &models.CheckoutSession{
		SessionID: uuid.New().String(),
		CreatedAt: time.Now(),
	}
	if err := s.Store.Put(ctx, session); err != nil {
		return nil, err
	}
	return s.stateFor(session), nil
}

// GetSession returns the stored session with its resolved step.
func (s *DefaultCheckoutService) GetSession(ctx context.Context, sessionID string) (*models.CheckoutState, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.stateFor(session), nil
}

// mutate loads a session, applies one answer mutation, persists the result,
// and returns the session with its recomputed step. Every wizard input funnels
// through here so no mutation can skip the persistence write.
func (s *DefaultCheckoutService) mutate(ctx context.Context, sessionID string, fn func(*models.CheckoutSession) error) (*models.CheckoutState, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	s.mirrorIntent(session)
	if err := s.Store.Put(ctx, session); err != nil {
		return nil, err
	}
	return s.stateFor(session), nil
}

// mirrorIntent copies the live intent handle onto the session record so a
// reload can restore a ready authorization.
func (s *DefaultCheckoutService) mirrorIntent(session *models.CheckoutSession) {
	view := s.Intents.Snapshot(session.SessionID)
	session.IntentStatus = string(view.Status)
	session.ClientSecret = view.ClientSecret
	session.TrackingID = view.TrackingID
}

func (s *DefaultCheckoutService) stateFor(session *models.CheckoutSession) *models.CheckoutState {
	return &models.CheckoutState{
		Session: session,
		Step:    string(ResolveStep(session, s.Gate)),
	}
}
