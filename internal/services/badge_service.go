package services

import (
	"context"
	"fmt"

	"github.com/ecopulse-app/ecopulse/internal/gamification"
	"github.com/ecopulse-app/ecopulse/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BadgeStore is the storage surface the badge engine needs. AddBadges
// must be a single batched set-union write.
type BadgeStore interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	AddBadges(ctx context.Context, id primitive.ObjectID, badgeIDs []string) error
}

// BadgeAnnouncer lets the engine tell a user about a new badge. The
// announcement is best-effort and never blocks a grant.
type BadgeAnnouncer interface {
	Notify(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, data bson.M) error
}

// BadgeService evaluates the declarative badge rule table against a
// user's counters and grants whatever is newly earned. Called after
// post creation, challenge completion, follow receipt and streak
// increments; never polled.
type BadgeService struct {
	store     BadgeStore
	announcer BadgeAnnouncer
}

// NewBadgeService creates a new instance of BadgeService.
func NewBadgeService(store BadgeStore, announcer BadgeAnnouncer) *BadgeService {
	return &BadgeService{store: store, announcer: announcer}
}

// CheckAndAwardBadges re-evaluates every badge rule for the user and
// writes all newly-qualified badge ids in one batched update. With no
// counter change since the previous call this is a no-op, which is
// what makes repeated triggers safe.
func (s *BadgeService) CheckAndAwardBadges(ctx context.Context, userID string) ([]string, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %v", err)
	}

	user, err := s.store.GetUserByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for badge check: %v", err)
	}

	counters := gamification.Counters{
		Posts:               user.Stats.Posts,
		Comments:            user.Stats.Comments,
		LikesReceived:       user.Stats.LikesReceived,
		Followers:           user.Stats.Followers,
		ChallengesCompleted: user.Stats.ChallengesCompleted,
		StreakCurrent:       user.Streak.Current,
		EcoLevel:            user.EcoLevel,
	}

	earned := gamification.NewlyQualified(counters, user.Badges)
	if len(earned) == 0 {
		return nil, nil
	}

	// One batched write for the whole set. Retried once; after that the
	// grant is dropped and picked up by the next trigger.
	if err := s.store.AddBadges(ctx, objID, earned); err != nil {
		if err = s.store.AddBadges(ctx, objID, earned); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"userID": userID,
				"badges": earned,
			}).Warn("Dropping badge grant after retry")
			return nil, nil
		}
	}

	logrus.WithFields(logrus.Fields{
		"userID": userID,
		"badges": earned,
	}).Info("Badges awarded")

	for _, id := range earned {
		s.announce(ctx, objID, id)
	}
	return earned, nil
}

func (s *BadgeService) announce(ctx context.Context, userID primitive.ObjectID, badgeID string) {
	if s.announcer == nil {
		return
	}

	rule, ok := gamification.RuleByID(badgeID)
	if !ok {
		return
	}

	err := s.announcer.Notify(ctx, userID,
		models.NotificationBadge,
		"New badge earned!",
		fmt.Sprintf("You earned the %q badge.", rule.Name),
		bson.M{"badge_id": rule.ID, "category": rule.Category},
	)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"userID": userID.Hex(),
			"badge":  badgeID,
		}).Warn("Failed to announce badge")
	}
}
