package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/config"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/repository"
)

const sessionKeyPrefix = "session_"

// SessionKey returns the storage key of a session record.
func SessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// LoadSessionKeys decodes a base64 fernet key. An empty value generates a
// fresh key, which invalidates every token issued before a restart.
func LoadSessionKeys(encoded string) ([]*fernet.Key, error) {
	if strings.TrimSpace(encoded) == "" {
		var k fernet.Key
		if err := k.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
		return []*fernet.Key{&k}, nil
	}

	keys, err := fernet.DecodeKeys(strings.Split(encoded, ",")...)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_KEY: %w", err)
	}
	return keys, nil
}

// SessionService handles login, signup and logout, and resolves session tokens
// to identities. A session is a record under "session_<id>" holding the
// identity; the client holds a fernet token wrapping the session id.
type SessionService struct {
	kv        repository.KeyValueStore
	auth      Authenticator
	registry  *StoreRegistry
	keys      []*fernet.Key
	ttl       time.Duration
	retention config.RetentionPolicy
	log       *logrus.Logger
	now       func() time.Time
}

// NewSessionService creates a new SessionService.
// The first key signs new tokens; every key is accepted when verifying.
func NewSessionService(
	kv repository.KeyValueStore,
	auth Authenticator,
	registry *StoreRegistry,
	keys []*fernet.Key,
	ttl time.Duration,
	retention config.RetentionPolicy,
	log *logrus.Logger,
) *SessionService {
	return &SessionService{
		kv:        kv,
		auth:      auth,
		registry:  registry,
		keys:      keys,
		ttl:       ttl,
		retention: retention,
		log:       log,
		now:       time.Now,
	}
}

// Login authenticates the credentials and opens a session.
func (s *SessionService) Login(ctx context.Context, req request.LoginRequest) (model.SessionResponse, error) {
	identity, err := s.auth.Authenticate(ctx, req)
	if err != nil {
		return model.SessionResponse{}, err
	}
	return s.open(ctx, identity)
}

// Signup registers the identity and opens a session.
func (s *SessionService) Signup(ctx context.Context, req request.SignupRequest) (model.SessionResponse, error) {
	identity, err := s.auth.Register(ctx, req)
	if err != nil {
		return model.SessionResponse{}, err
	}
	return s.open(ctx, identity)
}

// open persists a session record, preloads the owner's transaction store and
// returns the signed token.
func (s *SessionService) open(ctx context.Context, identity model.Identity) (model.SessionResponse, error) {
	session := model.Session{
		ID:        uuid.New().String(),
		Identity:  identity,
		CreatedAt: s.now().UTC(),
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return model.SessionResponse{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToCreateSession, err)
	}
	if err := s.kv.Set(ctx, SessionKey(session.ID), raw); err != nil {
		return model.SessionResponse{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToCreateSession, err)
	}

	if _, err := s.registry.Attach(ctx, identity.ID, session.ID); err != nil {
		return model.SessionResponse{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToCreateSession, err)
	}

	tok, err := fernet.EncryptAndSign([]byte(session.ID), s.keys[0])
	if err != nil {
		return model.SessionResponse{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToCreateSession, err)
	}

	s.log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"owner_id":   identity.ID,
		"role":       identity.Role,
	}).Info("session opened")

	return model.SessionResponse{Token: string(tok), Identity: identity}, nil
}

// Current resolves a token to its session.
// Returns apperrors.ErrInvalidSession for malformed, forged or expired tokens,
// and apperrors.ErrSessionNotFound when the session was closed or swept.
func (s *SessionService) Current(ctx context.Context, token string) (model.Session, error) {
	if token == "" {
		return model.Session{}, apperrors.ErrUnauthenticated
	}

	sid := fernet.VerifyAndDecrypt([]byte(token), s.ttl, s.keys)
	if sid == nil {
		return model.Session{}, apperrors.ErrInvalidSession
	}

	raw, err := s.kv.Get(ctx, SessionKey(string(sid)))
	if errors.Is(err, apperrors.ErrKeyNotFound) {
		return model.Session{}, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return model.Session{}, fmt.Errorf("%w: session %s: %v", apperrors.ErrDataInconsistency, sid, err)
	}
	return session, nil
}

// Logout closes the session behind token. Under the retain policy the owner's
// loaded store is discarded once no other session of the owner is open. Under
// the erase policy the owner's persisted transactions are deleted, which
// affects every open session of that owner.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	session, err := s.Current(ctx, token)
	if err != nil {
		return err
	}

	if err := s.kv.Delete(ctx, SessionKey(session.ID)); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToEndSession, err)
	}

	ownerID := session.Identity.ID
	if s.retention == config.EraseOnLogout {
		if err := s.registry.Erase(ctx, ownerID); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrFailedToEndSession, err)
		}
	} else {
		s.registry.Release(ownerID, session.ID)
	}

	s.log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"owner_id":   ownerID,
		"retention":  s.retention,
	}).Info("session closed")

	return nil
}

// CountActive returns the number of stored session records.
func (s *SessionService) CountActive(ctx context.Context) (int, error) {
	return s.kv.Count(ctx, sessionKeyPrefix)
}
