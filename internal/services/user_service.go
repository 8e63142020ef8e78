package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ecopulse-app/ecopulse/internal/gamification"
	"github.com/ecopulse-app/ecopulse/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserStore is the storage surface for accounts and the streak.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateStreak(ctx context.Context, id primitive.ObjectID, streak models.Streak) error
}

// UserService encapsulates the business logic for user operations.
type UserService struct {
	repo   UserStore
	badges *BadgeService
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore, badges *BadgeService) *UserService {
	return &UserService{repo: repo, badges: badges}
}

// RegisterUser registers a new user after hashing their password.
func (s *UserService) RegisterUser(ctx context.Context, user *models.User) (*models.User, error) {
	logrus.Info("Registering new user")

	if user.Email == "" || user.Username == "" || user.HashedPassword == "" {
		logrus.Warn("Missing required fields during registration")
		return nil, fmt.Errorf("missing required user fields")
	}

	if !emailRegex.MatchString(user.Email) {
		logrus.WithField("email", user.Email).Warn("Invalid email format during registration")
		return nil, fmt.Errorf("invalid email format")
	}

	existingUser, _ := s.repo.GetUserByEmail(ctx, user.Email)
	if existingUser != nil {
		logrus.WithField("email", user.Email).Warn("Email already in use")
		return nil, fmt.Errorf("email already in use")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(user.HashedPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}
	user.HashedPassword = string(hashedPwd)

	if user.Role == "" {
		user.Role = "user"
	}
	user.EcoPoints = 0
	user.EcoLevel = gamification.LevelForPoints(0)

	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, fmt.Errorf("failed to register user: %v", err)
	}

	logrus.WithField("userID", createdUser.ID.Hex()).Info("User registered successfully")
	return createdUser, nil
}

// AuthenticateUser verifies the email and password and returns the user
// if credentials are valid.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logrus.WithField("email", email).Warn("User not found")
		return nil, fmt.Errorf("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", email).Warn("Invalid credentials")
		return nil, fmt.Errorf("invalid credentials")
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, nil
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %v", err)
	}
	return s.repo.GetUserByID(ctx, objID)
}

// TouchStreak recomputes the user's streak for an authenticated request
// and persists the updated last-activity date. This is a read followed
// by a write: two near-simultaneous logins may double-increment, an
// accepted approximation that avoids background scheduling entirely.
func (s *UserService) TouchStreak(ctx context.Context, userID string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %v", err)
	}

	user, err := s.repo.GetUserByID(ctx, objID)
	if err != nil {
		return fmt.Errorf("failed to load user for streak update: %v", err)
	}

	now := time.Now()
	transition := gamification.EvaluateStreak(user.Streak.LastActivity, now)
	updated := gamification.ApplyStreak(user.Streak, transition, now)

	if err := s.repo.UpdateStreak(ctx, objID, updated); err != nil {
		return fmt.Errorf("failed to persist streak: %v", err)
	}

	if transition == gamification.StreakIncrement {
		logrus.WithFields(logrus.Fields{
			"userID":  userID,
			"current": updated.Current,
			"longest": updated.Longest,
		}).Info("Streak incremented")

		// Streak badges only move on an increment, so this is the one
		// place worth re-checking them.
		if s.badges != nil {
			if _, err := s.badges.CheckAndAwardBadges(ctx, userID); err != nil {
				logrus.WithError(err).WithField("userID", userID).Warn("Badge check after streak increment failed")
			}
		}
	}
	return nil
}
