package gamification

import (
	"time"

	"github.com/ecopulse-app/ecopulse/internal/models"
)

// StreakTransition is the outcome of re-evaluating a streak.
type StreakTransition int

const (
	// StreakNoChange: activity already recorded for today.
	StreakNoChange StreakTransition = iota
	// StreakIncrement: last activity was exactly yesterday.
	StreakIncrement
	// StreakReset: gap of two or more days, or no prior activity.
	StreakReset
)

// EvaluateStreak decides the streak transition for a user active at
// now, given their previous activity date. The comparison is by
// calendar date in now's location, not elapsed hours, so a login at
// 23:59 followed by one at 00:01 still counts as consecutive days.
func EvaluateStreak(lastActivity, now time.Time) StreakTransition {
	if lastActivity.IsZero() {
		return StreakReset
	}

	gap := calendarDayGap(lastActivity.In(now.Location()), now)
	switch {
	case gap <= 0:
		return StreakNoChange
	case gap == 1:
		return StreakIncrement
	default:
		return StreakReset
	}
}

// ApplyStreak returns the streak updated for the given transition,
// stamping now as the last activity. Longest never falls below current.
func ApplyStreak(s models.Streak, t StreakTransition, now time.Time) models.Streak {
	switch t {
	case StreakIncrement:
		s.Current++
	case StreakReset:
		s.Current = 1
	}
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.LastActivity = now
	return s
}

// calendarDayGap counts whole calendar days between two instants in the
// same location. Dates are normalized to UTC midnights before
// subtraction so DST shifts cannot produce fractional days.
func calendarDayGap(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}
