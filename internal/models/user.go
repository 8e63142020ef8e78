package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Streak tracks consecutive days of activity for a user.
type Streak struct {
	Current      int       `bson:"current" json:"current"`
	Longest      int       `bson:"longest" json:"longest"`
	LastActivity time.Time `bson:"last_activity,omitempty" json:"last_activity,omitempty"`
}

// Stats holds the engagement counters the badge rules evaluate. All of
// them are mutated only through atomic increments.
type Stats struct {
	Posts               int `bson:"posts" json:"posts"`
	Comments            int `bson:"comments" json:"comments"`
	LikesReceived       int `bson:"likes_received" json:"likes_received"`
	Followers           int `bson:"followers" json:"followers"`
	ChallengesCompleted int `bson:"challenges_completed" json:"challenges_completed"`
}

// User represents a user account in the EcoPulse system.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	Role           string             `bson:"role" json:"role"`
	EcoPoints      int                `bson:"eco_points" json:"eco_points"`
	EcoLevel       int                `bson:"eco_level" json:"eco_level"`
	Streak         Streak             `bson:"streak" json:"streak"`
	Badges         []string           `bson:"badges,omitempty" json:"badges"`
	Stats          Stats              `bson:"stats" json:"stats"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

type PublicUser struct {
	ID        primitive.ObjectID `json:"id"`
	Username  string             `json:"username"`
	EcoPoints int                `json:"eco_points"`
	EcoLevel  int                `json:"eco_level"`
	Badges    []string           `json:"badges"`
}
