package cron

import (
	"context"

	"github.com/ecopulse-app/ecopulse/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartLeaderboardCronJobs keeps the cached leaderboard warm so reads
// rarely hit the database. Notification expiry needs no job here: the
// TTL index handles it inside the store.
func StartLeaderboardCronJobs(leaderboardService *services.LeaderboardService) *cron.Cron {
	c := cron.New()

	c.AddFunc("@every 5m", func() {
		if _, err := leaderboardService.Refresh(context.Background()); err != nil {
			logrus.WithError(err).Error("Leaderboard refresh failed")
		}
	})

	c.Start()
	return c
}
