package service

import (
	"context"
	"time"

	"github.com/akinfotech/rma-backend/internal/models"
)

// StatsCounter отдаёт счётчики заявок по статусам.
type StatsCounter interface {
	CountByStatus(ctx context.Context) (map[models.RMAStatus]int, error)
}

// DashboardService собирает счётчики для дашборда.
// Счётчики кэшируются на короткий TTL, запись в rmas сбрасывает кэш.
type DashboardService struct {
	repo  StatsCounter
	cache *CacheService
	ttl   time.Duration
}

// NewDashboardService создаёт новый экземпляр.
func NewDashboardService(repo StatsCounter, cache *CacheService, ttl time.Duration) *DashboardService {
	return &DashboardService{repo: repo, cache: cache, ttl: ttl}
}

// GetStats возвращает счётчики заявок по статусам и общее количество.
func (s *DashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	compute := func() (interface{}, error) {
		counts, err := s.repo.CountByStatus(ctx)
		if err != nil {
			return nil, err
		}
		stats := &models.DashboardStats{
			Processing:      counts[models.StatusProcessing],
			InServiceCentre: counts[models.StatusInServiceCentre],
			Ready:           counts[models.StatusReady],
			Delivered:       counts[models.StatusDelivered],
		}
		stats.Total = stats.Processing + stats.InServiceCentre + stats.Ready + stats.Delivered
		return stats, nil
	}

	if s.cache == nil {
		value, err := compute()
		if err != nil {
			return nil, err
		}
		return value.(*models.DashboardStats), nil
	}

	value, err := s.cache.GetOrSet(StatsCacheKey(), s.ttl, compute)
	if err != nil {
		return nil, err
	}
	return value.(*models.DashboardStats), nil
}
