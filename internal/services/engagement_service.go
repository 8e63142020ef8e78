package services

import (
	"context"
	"fmt"

	"github.com/ecopulse-app/ecopulse/internal/gamification"
	"github.com/ecopulse-app/ecopulse/internal/models"
	"github.com/ecopulse-app/ecopulse/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EngagementService is the seam the route handlers call after their own
// domain mutation succeeds. Every method is best-effort by contract:
// gamification and notification side effects must never abort the
// action that triggered them, so failures are logged and swallowed
// here rather than returned.
type EngagementService struct {
	ledger        *LedgerService
	badges        *BadgeService
	notifications *NotificationService
	publisher     Publisher
}

// NewEngagementService creates a new instance of EngagementService.
func NewEngagementService(ledger *LedgerService, badges *BadgeService, notifications *NotificationService, publisher Publisher) *EngagementService {
	return &EngagementService{
		ledger:        ledger,
		badges:        badges,
		notifications: notifications,
		publisher:     publisher,
	}
}

// PostCreated records a new post by the author: +10 points, post
// counter, badge check.
func (s *EngagementService) PostCreated(ctx context.Context, authorID string) {
	s.incrementStat(ctx, authorID, repository.StatPosts)
	s.award(ctx, authorID, gamification.PointsPostCreated)
	s.checkBadges(ctx, authorID)
}

// PostLiked records a like on authorID's post by actorID: +2 points to
// the author, a durable like notification, and a live event on the
// post's room. A user liking their own post produces nothing.
func (s *EngagementService) PostLiked(ctx context.Context, actorID, authorID, postID string) {
	if actorID == authorID {
		return
	}

	s.incrementStat(ctx, authorID, repository.StatLikesReceived)
	s.award(ctx, authorID, gamification.PointsLikeReceived)
	s.notify(ctx, authorID, models.NotificationLike,
		"Your post got a like",
		"Someone appreciated your post.",
		bson.M{"post_id": postID, "actor_id": actorID},
	)
	if s.publisher != nil {
		s.publisher.Publish("post:"+postID, "post_liked", bson.M{"post_id": postID, "actor_id": actorID})
	}
}

// CommentAdded records a comment by actorID on authorID's post: +5
// points to the commenter, comment counter, and a notification for the
// post author unless they commented on their own post.
func (s *EngagementService) CommentAdded(ctx context.Context, actorID, authorID, postID string) {
	s.incrementStat(ctx, actorID, repository.StatComments)
	s.award(ctx, actorID, gamification.PointsCommentAdded)

	if actorID != authorID {
		s.notify(ctx, authorID, models.NotificationComment,
			"New comment on your post",
			"Someone commented on your post.",
			bson.M{"post_id": postID, "actor_id": actorID},
		)
	}
	if s.publisher != nil {
		s.publisher.Publish("post:"+postID, "comment_added", bson.M{"post_id": postID, "actor_id": actorID})
	}
}

// FollowReceived records that followerID now follows followedID:
// follower counter, follow notification, badge check.
func (s *EngagementService) FollowReceived(ctx context.Context, followerID, followedID string) {
	if followerID == followedID {
		return
	}

	s.incrementStat(ctx, followedID, repository.StatFollowers)
	s.notify(ctx, followedID, models.NotificationFollow,
		"New follower",
		"Someone started following you.",
		bson.M{"follower_id": followerID},
	)
	s.checkBadges(ctx, followedID)
}

// ChallengeJoined records a user joining a challenge: +10 points and a
// live update on the challenge room.
func (s *EngagementService) ChallengeJoined(ctx context.Context, userID, challengeID string) {
	s.award(ctx, userID, gamification.PointsChallengeJoined)
	if s.publisher != nil {
		s.publisher.Publish("challenge:"+challengeID, "challenge:"+challengeID+":update",
			bson.M{"user_id": userID, "action": "joined"})
	}
}

// ChallengeCompleted records a finished challenge submission: the
// completion counter, floor(10%) of the challenge's reward points, a
// durable notification, a live challenge-room update, and a badge
// check.
func (s *EngagementService) ChallengeCompleted(ctx context.Context, userID, challengeID string, rewardPoints int) {
	s.incrementStat(ctx, userID, repository.StatChallengesCompleted)

	award := gamification.ChallengeCompletionPoints(rewardPoints)
	s.award(ctx, userID, award)

	s.notify(ctx, userID, models.NotificationChallenge,
		"Challenge completed!",
		fmt.Sprintf("You completed a challenge and earned %d eco points.", award),
		bson.M{"challenge_id": challengeID, "points": award},
	)
	if s.publisher != nil {
		s.publisher.Publish("challenge:"+challengeID, "challenge:"+challengeID+":update",
			bson.M{"user_id": userID, "action": "completed"})
	}
	s.checkBadges(ctx, userID)
}

func (s *EngagementService) award(ctx context.Context, userID string, amount int) {
	if err := s.ledger.AwardPoints(ctx, userID, amount); err != nil {
		logrus.WithError(err).WithField("userID", userID).Warn("Point award failed")
	}
}

func (s *EngagementService) incrementStat(ctx context.Context, userID, field string) {
	if err := s.ledger.IncrementStat(ctx, userID, field, 1); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"userID": userID,
			"field":  field,
		}).Warn("Stat increment failed")
	}
}

func (s *EngagementService) checkBadges(ctx context.Context, userID string) {
	if _, err := s.badges.CheckAndAwardBadges(ctx, userID); err != nil {
		logrus.WithError(err).WithField("userID", userID).Warn("Badge check failed")
	}
}

func (s *EngagementService) notify(ctx context.Context, userID, notifType, title, message string, data bson.M) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		logrus.WithField("userID", userID).Warn("Skipping notification for invalid user ID")
		return
	}
	if err := s.notifications.Notify(ctx, objID, notifType, title, message, data); err != nil {
		logrus.WithError(err).WithField("userID", userID).Warn("Notification failed")
	}
}
