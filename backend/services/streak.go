package services

import (
	"time"

	"learnhub/backend/config"
)

// StreakState is the streak summary stored on the user row.
type StreakState struct {
	Current    int        `json:"currentStreak"`
	Longest    int        `json:"longestStreak"`
	LastActive *time.Time `json:"lastActiveDate,omitempty"`
}

// StreakEngine advances a streak for one completion event.
//
// In per-completion mode every event increments the current streak. In daily
// mode the increment is gated on UTC calendar days: same day leaves the streak
// alone, the following day increments it, a longer gap restarts it at 1.
// Either way Longest is raised to Current when exceeded.
type StreakEngine struct {
	Mode string
}

func (e StreakEngine) Advance(s StreakState, now time.Time) StreakState {
	today := civilDay(now)

	if e.Mode == config.StreakDaily {
		switch {
		case s.LastActive == nil:
			s.Current = 1
		case civilDay(*s.LastActive).Equal(today):
			if s.Current == 0 {
				s.Current = 1
			}
		case civilDay(*s.LastActive).AddDate(0, 0, 1).Equal(today):
			s.Current++
		default:
			s.Current = 1
		}
	} else {
		s.Current++
	}

	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.LastActive = &today
	return s
}

// staleCutoff is the earliest last-active day that keeps a daily streak alive at now.
func staleCutoff(now time.Time) time.Time {
	return civilDay(now).AddDate(0, 0, -1)
}

func civilDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
