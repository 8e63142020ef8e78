package gamification

// Counters is the snapshot of a user's engagement counters the badge
// rules evaluate against.
type Counters struct {
	Posts               int
	Comments            int
	LikesReceived       int
	Followers           int
	ChallengesCompleted int
	StreakCurrent       int
	EcoLevel            int
}

// BadgeRule pairs a badge with the predicate that earns it. Rules are
// declarative data so the engine can be exercised without any storage.
type BadgeRule struct {
	ID        string
	Name      string
	Category  string
	Qualifies func(Counters) bool
}

// BadgeRules is the ordered rule table. Appending here is the only
// change needed to introduce a new badge.
var BadgeRules = []BadgeRule{
	{
		ID:       "first-post",
		Name:     "First Post",
		Category: "posts",
		Qualifies: func(c Counters) bool { return c.Posts >= 1 },
	},
	{
		ID:       "eco-blogger",
		Name:     "Eco Blogger",
		Category: "posts",
		Qualifies: func(c Counters) bool { return c.Posts >= 10 },
	},
	{
		ID:       "community-voice",
		Name:     "Community Voice",
		Category: "comments",
		Qualifies: func(c Counters) bool { return c.Comments >= 25 },
	},
	{
		ID:       "crowd-favorite",
		Name:     "Crowd Favorite",
		Category: "likes",
		Qualifies: func(c Counters) bool { return c.LikesReceived >= 50 },
	},
	{
		ID:       "week-streak",
		Name:     "Week Streak",
		Category: "streak",
		Qualifies: func(c Counters) bool { return c.StreakCurrent >= 7 },
	},
	{
		ID:       "devoted-month",
		Name:     "Devoted Month",
		Category: "streak",
		Qualifies: func(c Counters) bool { return c.StreakCurrent >= 30 },
	},
	{
		ID:       "first-challenge",
		Name:     "First Challenge",
		Category: "challenges",
		Qualifies: func(c Counters) bool { return c.ChallengesCompleted >= 1 },
	},
	{
		ID:       "challenge-champion",
		Name:     "Challenge Champion",
		Category: "challenges",
		Qualifies: func(c Counters) bool { return c.ChallengesCompleted >= 10 },
	},
	{
		ID:       "eco-warrior",
		Name:     "Eco Warrior",
		Category: "level",
		Qualifies: func(c Counters) bool { return c.EcoLevel >= 5 },
	},
	{
		ID:       "social-butterfly",
		Name:     "Social Butterfly",
		Category: "social",
		Qualifies: func(c Counters) bool { return c.Followers >= 10 },
	},
	{
		ID:       "influencer",
		Name:     "Influencer",
		Category: "social",
		Qualifies: func(c Counters) bool { return c.Followers >= 100 },
	},
}

// RuleByID looks up a badge rule by its id.
func RuleByID(id string) (BadgeRule, bool) {
	for _, rule := range BadgeRules {
		if rule.ID == id {
			return rule, true
		}
	}
	return BadgeRule{}, false
}

// NewlyQualified returns the ids of badges the counters now satisfy
// that are not already owned, in rule-table order. Repeated calls with
// unchanged inputs return the same result, which is what makes the
// award path idempotent.
func NewlyQualified(c Counters, owned []string) []string {
	held := make(map[string]bool, len(owned))
	for _, id := range owned {
		held[id] = true
	}

	var earned []string
	for _, rule := range BadgeRules {
		if held[rule.ID] {
			continue
		}
		if rule.Qualifies(c) {
			earned = append(earned, rule.ID)
		}
	}
	return earned
}
