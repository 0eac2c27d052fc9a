package services

import (
	"testing"
	"time"

	"learnhub/backend/config"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestStreakEnginePerCompletion(t *testing.T) {
	engine := StreakEngine{Mode: config.StreakPerCompletion}
	now := time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

	got := engine.Advance(StreakState{Current: 2, Longest: 5}, now)
	assert.Equal(t, 3, got.Current)
	assert.Equal(t, 5, got.Longest)

	// Same-day completions still count in this mode.
	got = engine.Advance(got, now)
	got = engine.Advance(got, now)
	got = engine.Advance(got, now)
	assert.Equal(t, 6, got.Current)
	assert.Equal(t, 6, got.Longest)
	assert.Equal(t, day(2026, 10, 19), got.LastActive)
}

func TestStreakEngineDaily(t *testing.T) {
	engine := StreakEngine{Mode: config.StreakDaily}
	now := time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      StreakState
		current int
		longest int
	}{
		{"first ever", StreakState{}, 1, 1},
		{"same day", StreakState{Current: 4, Longest: 4, LastActive: day(2026, 10, 19)}, 4, 4},
		{"same day after sweep", StreakState{Current: 0, Longest: 4, LastActive: day(2026, 10, 19)}, 1, 4},
		{"next day", StreakState{Current: 4, Longest: 9, LastActive: day(2026, 10, 18)}, 5, 9},
		{"next day beats longest", StreakState{Current: 9, Longest: 9, LastActive: day(2026, 10, 18)}, 10, 10},
		{"gap", StreakState{Current: 7, Longest: 7, LastActive: day(2026, 10, 16)}, 1, 7},
		{"month boundary", StreakState{Current: 1, Longest: 1, LastActive: day(2026, 9, 30)}, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Advance(tt.in, now)
			assert.Equal(t, tt.current, got.Current)
			assert.Equal(t, tt.longest, got.Longest)
			assert.LessOrEqual(t, got.Current, got.Longest)
			assert.Equal(t, day(2026, 10, 19), got.LastActive)
		})
	}

	got := engine.Advance(StreakState{Current: 3, Longest: 3, LastActive: day(2026, 10, 31)}, time.Date(2026, 11, 1, 0, 30, 0, 0, time.UTC))
	assert.Equal(t, 4, got.Current)
}

func TestStaleCutoff(t *testing.T) {
	assert.Equal(t, *day(2026, 10, 18), staleCutoff(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, *day(2026, 10, 31), staleCutoff(time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)))
	// A non-UTC clock is normalised before taking the day.
	east := time.FixedZone("UTC+3", 3*60*60)
	assert.Equal(t, *day(2026, 10, 17), staleCutoff(time.Date(2026, 10, 19, 1, 0, 0, 0, east)))
}
