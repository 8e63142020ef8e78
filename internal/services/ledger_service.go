package services

import (
	"context"
	"fmt"

	"github.com/ecopulse-app/ecopulse/internal/gamification"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerStore is the storage surface the ledger needs. The increment
// operations must be atomic at the storage layer.
type LedgerStore interface {
	AwardPoints(ctx context.Context, id primitive.ObjectID, amount int) (int, error)
	SetLevel(ctx context.Context, id primitive.ObjectID, level int) error
	IncrementStat(ctx context.Context, id primitive.ObjectID, field string, delta int) error
}

// LedgerService owns the per-user engagement counters: eco points,
// the derived level, and the stat counters the badge rules read.
type LedgerService struct {
	store LedgerStore
}

// NewLedgerService creates a new instance of LedgerService.
func NewLedgerService(store LedgerStore) *LedgerService {
	return &LedgerService{store: store}
}

// AwardPoints adds a fixed, call-site-determined amount to a user's
// eco points and refreshes the derived level. Points only ever
// increase through this path.
func (s *LedgerService) AwardPoints(ctx context.Context, userID string, amount int) error {
	if amount < 0 {
		return fmt.Errorf("point awards cannot be negative: %d", amount)
	}
	if amount == 0 {
		return nil
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %v", err)
	}

	newTotal, err := s.store.AwardPoints(ctx, objID, amount)
	if err != nil {
		return fmt.Errorf("failed to award points: %v", err)
	}

	level := gamification.LevelForPoints(newTotal)
	if err := s.store.SetLevel(ctx, objID, level); err != nil {
		// The level is recomputed from points on the next award, so a
		// failed refresh is only logged.
		logrus.WithError(err).WithField("userID", userID).Warn("Failed to refresh eco level")
	}

	logrus.WithFields(logrus.Fields{
		"userID": userID,
		"amount": amount,
		"total":  newTotal,
		"level":  level,
	}).Info("Eco points awarded")
	return nil
}

// IncrementStat bumps one of the engagement counters.
func (s *LedgerService) IncrementStat(ctx context.Context, userID, field string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %v", err)
	}
	return s.store.IncrementStat(ctx, objID, field, delta)
}
