package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/repository"
)

// AdminService provides the statistics shown on the admin panel.
type AdminService struct {
	kv repository.KeyValueStore
}

// NewAdminService creates a new AdminService.
func NewAdminService(kv repository.KeyValueStore) *AdminService {
	return &AdminService{kv: kv}
}

// GetStats counts stored sessions and transaction collections concurrently.
func (s *AdminService) GetStats(ctx context.Context) (model.AdminStats, error) {
	var stats model.AdminStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.kv.Count(gctx, sessionKeyPrefix)
		if err != nil {
			return err
		}
		stats.ActiveSessions = n
		return nil
	})
	g.Go(func() error {
		n, err := s.kv.Count(gctx, transactionKeyPrefix)
		if err != nil {
			return err
		}
		stats.TransactionCollections = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.AdminStats{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToGetStats, err)
	}
	return stats, nil
}
