package gamification

// Points awarded per engagement action. The amounts are fixed at the
// call site of each action, never computed dynamically.
const (
	PointsPostCreated     = 10
	PointsLikeReceived    = 2
	PointsCommentAdded    = 5
	PointsChallengeJoined = 10
)

// ChallengeCompletionPoints returns the award for submitting a
// challenge: 10% of the challenge's reward, rounded down.
func ChallengeCompletionPoints(rewardPoints int) int {
	if rewardPoints < 0 {
		return 0
	}
	return rewardPoints / 10
}

// levelThresholds maps the minimum eco point total to each level, in
// ascending order. The first entry must start at 0 so every
// non-negative point value maps to exactly one level.
var levelThresholds = []struct {
	minPoints int
	level     int
}{
	{0, 1},
	{100, 2},
	{250, 3},
	{500, 4},
	{1000, 5},
	{2000, 6},
	{3500, 7},
	{5000, 8},
}

// LevelForPoints maps an eco point total to its level. The mapping is
// total and monotonic non-decreasing; the level is always derived from
// points, never stored independently of this rule.
func LevelForPoints(points int) int {
	level := levelThresholds[0].level
	for _, t := range levelThresholds {
		if points < t.minPoints {
			break
		}
		level = t.level
	}
	return level
}
