package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/ecopulse-app/ecopulse/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserStore is an in-memory stand-in for the user repository. Its
// counter mutations are atomic under one mutex, mirroring the
// single-document atomicity the real storage layer provides.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User

	addBadgesCalls int
	failAddBadges  int // fail this many AddBadges calls before succeeding
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserStore) put(user *models.User) primitive.ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = user
	return user.ID
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	f.put(user)
	return user, nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	snapshot := *user
	snapshot.Badges = append([]string(nil), user.Badges...)
	return &snapshot, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			snapshot := *user
			return &snapshot, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserStore) AwardPoints(ctx context.Context, id primitive.ObjectID, amount int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return 0, fmt.Errorf("user not found")
	}
	user.EcoPoints += amount
	return user.EcoPoints, nil
}

func (f *fakeUserStore) SetLevel(ctx context.Context, id primitive.ObjectID, level int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.EcoLevel = level
	}
	return nil
}

func (f *fakeUserStore) IncrementStat(ctx context.Context, id primitive.ObjectID, field string, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	switch field {
	case "stats.posts":
		user.Stats.Posts += delta
	case "stats.comments":
		user.Stats.Comments += delta
	case "stats.likes_received":
		user.Stats.LikesReceived += delta
	case "stats.followers":
		user.Stats.Followers += delta
	case "stats.challenges_completed":
		user.Stats.ChallengesCompleted += delta
	default:
		return fmt.Errorf("unknown stat field %q", field)
	}
	return nil
}

func (f *fakeUserStore) AddBadges(ctx context.Context, id primitive.ObjectID, badgeIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addBadgesCalls++
	if f.failAddBadges > 0 {
		f.failAddBadges--
		return fmt.Errorf("write conflict")
	}
	user, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	held := make(map[string]bool, len(user.Badges))
	for _, b := range user.Badges {
		held[b] = true
	}
	for _, b := range badgeIDs {
		if !held[b] {
			user.Badges = append(user.Badges, b)
		}
	}
	return nil
}

func (f *fakeUserStore) UpdateStreak(ctx context.Context, id primitive.ObjectID, streak models.Streak) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.Streak = streak
	}
	return nil
}

func (f *fakeUserStore) TopByPoints(ctx context.Context, limit int64) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var users []models.User
	for _, u := range f.users {
		users = append(users, *u)
	}
	for i := 0; i < len(users); i++ {
		for j := i + 1; j < len(users); j++ {
			if users[j].EcoPoints > users[i].EcoPoints {
				users[i], users[j] = users[j], users[i]
			}
		}
	}
	if int64(len(users)) > limit {
		users = users[:limit]
	}
	return users, nil
}

// fakeNotificationStore keeps notifications in memory.
type fakeNotificationStore struct {
	mu            sync.Mutex
	notifications []*models.Notification
	failCreate    bool
}

func (f *fakeNotificationStore) CreateNotification(ctx context.Context, notif *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return fmt.Errorf("insert failed")
	}
	notif.ID = primitive.NewObjectID()
	f.notifications = append(f.notifications, notif)
	return nil
}

func (f *fakeNotificationStore) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for i := len(f.notifications) - 1; i >= 0; i-- {
		if f.notifications[i].UserID == userID {
			out = append(out, *f.notifications[i])
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkAsRead(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == id {
			n.Read = true
		}
	}
	return nil
}

func (f *fakeNotificationStore) MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (f *fakeNotificationStore) ClearForUser(ctx context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.notifications[:0]
	for _, n := range f.notifications {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	f.notifications = kept
	return nil
}

func (f *fakeNotificationStore) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	room    string
	event   string
	payload interface{}
}

func (f *fakePublisher) Publish(room, event string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{room: room, event: event, payload: payload})
}

func (f *fakePublisher) forRoom(room string) []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []publishedEvent
	for _, e := range f.events {
		if e.room == room {
			out = append(out, e)
		}
	}
	return out
}

// fakeAnnouncer records badge announcements.
type fakeAnnouncer struct {
	mu    sync.Mutex
	notes []string
}

func (f *fakeAnnouncer) Notify(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, data bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = append(f.notes, fmt.Sprintf("%s:%v", notifType, data["badge_id"]))
	return nil
}
