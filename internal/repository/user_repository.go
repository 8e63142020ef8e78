package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ecopulse-app/ecopulse/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Stat field paths accepted by IncrementStat.
const (
	StatPosts               = "stats.posts"
	StatComments            = "stats.comments"
	StatLikesReceived       = "stats.likes_received"
	StatFollowers           = "stats.followers"
	StatChallengesCompleted = "stats.challenges_completed"
)

// UserRepository handles database operations related to users.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// CreateUser inserts a new user into the database.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert user into database")
		return nil, fmt.Errorf("failed to insert user: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	user.ID = insertedID

	logrus.WithField("userID", user.ID.Hex()).Info("User inserted successfully")
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userID": id.Hex(),
			"error":  err,
		}).Warn("Failed to find user by ID")
		return nil, fmt.Errorf("failed to find user by id: %v", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %v", err)
	}
	return &user, nil
}

// AwardPoints atomically adds amount to the user's eco points and
// returns the new total. A single $inc keeps concurrent awards from
// losing updates; there is no read-modify-write anywhere on this path.
func (r *UserRepository) AwardPoints(ctx context.Context, id primitive.ObjectID, amount int) (int, error) {
	update := bson.M{
		"$inc": bson.M{"eco_points": amount},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userID": id.Hex(),
			"amount": amount,
			"error":  err,
		}).Error("Failed to award eco points")
		return 0, fmt.Errorf("failed to award points: %v", err)
	}
	return user.EcoPoints, nil
}

// SetLevel stores the level derived from the user's point total.
func (r *UserRepository) SetLevel(ctx context.Context, id primitive.ObjectID, level int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"eco_level": level}},
	)
	if err != nil {
		return fmt.Errorf("failed to set eco level: %v", err)
	}
	return nil
}

// IncrementStat atomically bumps one of the engagement counters. The
// field must be one of the Stat* constants.
func (r *UserRepository) IncrementStat(ctx context.Context, id primitive.ObjectID, field string, delta int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{field: delta}},
	)
	if err != nil {
		return fmt.Errorf("failed to increment %s: %v", field, err)
	}
	return nil
}

// AddBadges appends badge ids to the user's badge set in one batched
// write. $addToSet with $each keeps the array duplicate-free even if
// two checks race.
func (r *UserRepository) AddBadges(ctx context.Context, id primitive.ObjectID, badgeIDs []string) error {
	if len(badgeIDs) == 0 {
		return nil
	}

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"badges": bson.M{"$each": badgeIDs}}},
	)
	if err != nil {
		return fmt.Errorf("failed to add badges: %v", err)
	}
	return nil
}

// UpdateStreak persists a recomputed streak.
func (r *UserRepository) UpdateStreak(ctx context.Context, id primitive.ObjectID, streak models.Streak) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"streak": streak}},
	)
	if err != nil {
		return fmt.Errorf("failed to update streak: %v", err)
	}
	return nil
}

// TopByPoints returns the highest-scoring users, for the leaderboard.
func (r *UserRepository) TopByPoints(ctx context.Context, limit int64) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "eco_points", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top users: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode top users: %v", err)
	}
	return users, nil
}
