package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecopulse-app/ecopulse/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = 5 * time.Minute
	leaderboardSize     = 20
)

// LeaderboardStore reads the ranking from storage.
type LeaderboardStore interface {
	TopByPoints(ctx context.Context, limit int64) ([]models.User, error)
}

// LeaderboardCache is the best-effort cache surface. pkg/cache
// satisfies it; callers never depend on a hit.
type LeaderboardCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// LeaderboardService serves the top users by eco points, reading
// through the cache façade with the database as the always-correct
// fallback.
type LeaderboardService struct {
	store LeaderboardStore
	cache LeaderboardCache
}

// NewLeaderboardService creates a new instance of LeaderboardService.
func NewLeaderboardService(store LeaderboardStore, cache LeaderboardCache) *LeaderboardService {
	return &LeaderboardService{store: store, cache: cache}
}

// Top returns the current leaderboard.
func (s *LeaderboardService) Top(ctx context.Context) ([]models.PublicUser, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, leaderboardCacheKey); ok {
			var entries []models.PublicUser
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
			// A corrupt cache entry is just a miss.
			logrus.Warn("Discarding unreadable leaderboard cache entry")
		}
	}
	return s.Refresh(ctx)
}

// Refresh reloads the leaderboard from storage and repopulates the
// cache. The scheduler calls this periodically so most reads hit the
// cached copy.
func (s *LeaderboardService) Refresh(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.store.TopByPoints(ctx, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %v", err)
	}

	entries := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		entries = append(entries, models.PublicUser{
			ID:        u.ID,
			Username:  u.Username,
			EcoPoints: u.EcoPoints,
			EcoLevel:  u.EcoLevel,
			Badges:    u.Badges,
		})
	}

	if s.cache != nil {
		if data, err := json.Marshal(entries); err == nil {
			s.cache.Set(ctx, leaderboardCacheKey, string(data), leaderboardCacheTTL)
		}
	}
	return entries, nil
}
