package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewlyQualified_FirstPost(t *testing.T) {
	earned := NewlyQualified(Counters{Posts: 1}, nil)
	assert.Equal(t, []string{"first-post"}, earned)
}

func TestNewlyQualified_SkipsOwnedBadges(t *testing.T) {
	c := Counters{Posts: 2}

	first := NewlyQualified(c, nil)
	assert.Contains(t, first, "first-post")

	// Second post with the badge already held grants nothing.
	second := NewlyQualified(c, first)
	assert.Empty(t, second)
}

func TestNewlyQualified_MultipleAtOnce(t *testing.T) {
	c := Counters{Posts: 10, StreakCurrent: 7}
	earned := NewlyQualified(c, nil)
	assert.Equal(t, []string{"first-post", "eco-blogger", "week-streak"}, earned)
}

func TestNewlyQualified_NoDuplicatesUnderRepeatedEvaluation(t *testing.T) {
	c := Counters{Posts: 10, Followers: 100, ChallengesCompleted: 10, StreakCurrent: 30, EcoLevel: 5}

	var owned []string
	for i := 0; i < 5; i++ {
		owned = append(owned, NewlyQualified(c, owned)...)
	}

	seen := make(map[string]int)
	for _, id := range owned {
		seen[id]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "badge %s granted %d times", id, n)
	}
}

func TestNewlyQualified_ThresholdEdges(t *testing.T) {
	assert.NotContains(t, NewlyQualified(Counters{Followers: 9}, nil), "social-butterfly")
	assert.Contains(t, NewlyQualified(Counters{Followers: 10}, nil), "social-butterfly")

	assert.NotContains(t, NewlyQualified(Counters{StreakCurrent: 29}, nil), "devoted-month")
	assert.Contains(t, NewlyQualified(Counters{StreakCurrent: 30}, nil), "devoted-month")

	assert.NotContains(t, NewlyQualified(Counters{EcoLevel: 4}, nil), "eco-warrior")
	assert.Contains(t, NewlyQualified(Counters{EcoLevel: 5}, nil), "eco-warrior")
}

func TestRuleByID(t *testing.T) {
	rule, ok := RuleByID("first-post")
	assert.True(t, ok)
	assert.Equal(t, "First Post", rule.Name)

	_, ok = RuleByID("no-such-badge")
	assert.False(t, ok)
}

func TestBadgeRules_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, rule := range BadgeRules {
		assert.False(t, seen[rule.ID], "duplicate rule id %s", rule.ID)
		seen[rule.ID] = true
	}
}
