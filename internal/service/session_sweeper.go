package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/repository"
)

// SessionSweeper periodically deletes session records older than the session
// TTL. Their tokens can no longer be verified, so the records are unreachable.
// Each swept session is released from the registry, which evicts the owner's
// store once none of the owner's sessions remain.
type SessionSweeper struct {
	kv       repository.KeyValueStore
	registry *StoreRegistry
	ttl      time.Duration
	log      *logrus.Logger
	cron     *cron.Cron
	now      func() time.Time
}

// NewSessionSweeper creates a sweeper running on the given cron schedule
// (five-field cron expression or a descriptor such as "@every 1h").
func NewSessionSweeper(kv repository.KeyValueStore, registry *StoreRegistry, ttl time.Duration, schedule string, log *logrus.Logger) (*SessionSweeper, error) {
	s := &SessionSweeper{
		kv:       kv,
		registry: registry,
		ttl:      ttl,
		log:      log,
		cron:     cron.New(cron.WithLogger(cron.PrintfLogger(log))),
		now:      time.Now,
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid SESSION_SWEEP_SCHEDULE %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins running the schedule in the background.
func (s *SessionSweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish or ctx to expire.
func (s *SessionSweeper) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Sweep deletes expired session records and returns how many were removed.
// It keeps going past individual delete failures and reports the first one.
func (s *SessionSweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.ttl)

	keys, err := s.kv.KeysUpdatedBefore(ctx, sessionKeyPrefix, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list expired sessions: %w", err)
	}

	var firstErr error
	removed := 0
	for _, key := range keys {
		ownerID, known := s.ownerOf(ctx, key)

		if err := s.kv.Delete(ctx, key); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to delete %s: %w", key, err)
			}
			continue
		}
		removed++

		if known {
			s.registry.Release(ownerID, strings.TrimPrefix(key, sessionKeyPrefix))
		}
	}
	return removed, firstErr
}

// ownerOf reads the owner of a session record. Unreadable records are still
// swept; they just release nothing.
func (s *SessionSweeper) ownerOf(ctx context.Context, key string) (string, bool) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		return "", false
	}
	var session model.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return "", false
	}
	return session.Identity.ID, true
}

func (s *SessionSweeper) run() {
	start := time.Now()
	removed, err := s.Sweep(context.Background())

	entry := s.log.WithFields(logrus.Fields{
		"removed":  removed,
		"duration": time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Error("session sweep failed")
		return
	}
	entry.Info("session sweep completed")
}
