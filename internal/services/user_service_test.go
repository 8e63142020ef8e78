package services

import (
	"context"
	"testing"
	"time"

	"github.com/ecopulse-app/ecopulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil)
	ctx := context.Background()

	created, err := svc.RegisterUser(ctx, &models.User{
		Username:       "dana",
		Email:          "dana@example.com",
		HashedPassword: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, "user", created.Role)
	assert.Equal(t, 0, created.EcoPoints)
	assert.Equal(t, 1, created.EcoLevel)
	assert.NotEqual(t, "hunter22", created.HashedPassword)

	authed, err := svc.AuthenticateUser(ctx, "dana@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, created.ID, authed.ID)

	_, err = svc.AuthenticateUser(ctx, "dana@example.com", "wrong")
	assert.Error(t, err)
}

func TestRegisterUser_Validation(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, &models.User{Username: "dana"})
	assert.Error(t, err)

	_, err = svc.RegisterUser(ctx, &models.User{
		Username: "dana", Email: "not-an-email", HashedPassword: "pw",
	})
	assert.Error(t, err)

	_, err = svc.RegisterUser(ctx, &models.User{
		Username: "dana", Email: "dana@example.com", HashedPassword: "pw",
	})
	require.NoError(t, err)

	_, err = svc.RegisterUser(ctx, &models.User{
		Username: "dana2", Email: "dana@example.com", HashedPassword: "pw",
	})
	assert.Error(t, err, "duplicate email must be rejected")
}

func TestTouchStreak_IncrementAfterYesterday(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil)
	ctx := context.Background()

	id := store.put(&models.User{
		Username: "dana",
		Streak: models.Streak{
			Current:      5,
			Longest:      5,
			LastActivity: time.Now().AddDate(0, 0, -1),
		},
	})

	require.NoError(t, svc.TouchStreak(ctx, id.Hex()))

	user, _ := store.GetUserByID(ctx, id)
	assert.Equal(t, 6, user.Streak.Current)
	assert.Equal(t, 6, user.Streak.Longest)
	assert.WithinDuration(t, time.Now(), user.Streak.LastActivity, time.Minute)
}

func TestTouchStreak_SameDayNoChange(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil)
	ctx := context.Background()

	id := store.put(&models.User{
		Username: "dana",
		Streak:   models.Streak{Current: 3, Longest: 8, LastActivity: time.Now()},
	})

	require.NoError(t, svc.TouchStreak(ctx, id.Hex()))

	user, _ := store.GetUserByID(ctx, id)
	assert.Equal(t, 3, user.Streak.Current)
	assert.Equal(t, 8, user.Streak.Longest)
}

func TestTouchStreak_GapResets(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil)
	ctx := context.Background()

	id := store.put(&models.User{
		Username: "dana",
		Streak:   models.Streak{Current: 12, Longest: 12, LastActivity: time.Now().AddDate(0, 0, -4)},
	})

	require.NoError(t, svc.TouchStreak(ctx, id.Hex()))

	user, _ := store.GetUserByID(ctx, id)
	assert.Equal(t, 1, user.Streak.Current)
	assert.Equal(t, 12, user.Streak.Longest)
}

func TestTouchStreak_IncrementTriggersStreakBadge(t *testing.T) {
	store := newFakeUserStore()
	badges := NewBadgeService(store, nil)
	svc := NewUserService(store, badges)
	ctx := context.Background()

	id := store.put(&models.User{
		Username: "dana",
		Streak:   models.Streak{Current: 6, Longest: 6, LastActivity: time.Now().AddDate(0, 0, -1)},
	})

	require.NoError(t, svc.TouchStreak(ctx, id.Hex()))

	user, _ := store.GetUserByID(ctx, id)
	assert.Equal(t, 7, user.Streak.Current)
	assert.Contains(t, user.Badges, "week-streak")
}
