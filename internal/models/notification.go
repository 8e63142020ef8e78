package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types.
const (
	NotificationLike      = "like"
	NotificationComment   = "comment"
	NotificationFollow    = "follow"
	NotificationMention   = "mention"
	NotificationChallenge = "challenge"
	NotificationBadge     = "badge"
	NotificationSystem    = "system"
)

// Notification is the durable record of an event addressed to a user.
// Documents expire 30 days after creation through a TTL index on
// created_at; the only mutation after insert is flipping Read.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Type      string             `bson:"type" json:"type"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Data      bson.M             `bson:"data,omitempty" json:"data,omitempty"` // opaque payload for the client
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
