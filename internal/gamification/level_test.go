package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForPoints_Boundaries(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{499, 3},
		{500, 4},
		{999, 4},
		{1000, 5},
		{1999, 5},
		{2000, 6},
		{3499, 6},
		{3500, 7},
		{4999, 7},
		{5000, 8},
		{1000000, 8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForPoints(tt.points), "points=%d", tt.points)
	}
}

func TestLevelForPoints_MonotonicAndTotal(t *testing.T) {
	prev := LevelForPoints(0)
	assert.Equal(t, 1, prev)

	for points := 1; points <= 6000; points++ {
		level := LevelForPoints(points)
		assert.GreaterOrEqual(t, level, prev, "level dropped at points=%d", points)
		assert.GreaterOrEqual(t, level, 1)
		prev = level
	}
}

func TestChallengeCompletionPoints(t *testing.T) {
	assert.Equal(t, 10, ChallengeCompletionPoints(100))
	assert.Equal(t, 2, ChallengeCompletionPoints(25))
	assert.Equal(t, 0, ChallengeCompletionPoints(9))
	assert.Equal(t, 0, ChallengeCompletionPoints(0))
	assert.Equal(t, 0, ChallengeCompletionPoints(-50))
}
