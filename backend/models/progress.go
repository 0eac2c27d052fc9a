package models

import "time"

// MonthlyProgress and ProgressOverview are read models, not tables.
type MonthlyProgress struct {
	Month            time.Month `json:"month"`
	Year             int        `json:"year"`
	LessonsCompleted int64      `json:"lessonsCompleted"`
	ActiveDays       int        `json:"activeDays"`
}

type ProgressOverview struct {
	TotalProgress    int64             `json:"totalProgress"`
	LessonsCompleted int64             `json:"lessonsCompleted"`
	Bookmarks        int64             `json:"bookmarks"`
	CurrentStreak    int               `json:"currentStreak"`
	LongestStreak    int               `json:"longestStreak"`
	MonthlyProgress  []MonthlyProgress `json:"monthlyProgress"`
}

// UserSummary is one row of the admin user list and export.
type UserSummary struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	IsActive         bool      `json:"isActive"`
	TotalProgress    int64     `json:"totalProgress"`
	CompletedLessons int64     `json:"completedLessons"`
	CurrentStreak    int       `json:"currentStreak"`
	LongestStreak    int       `json:"longestStreak"`
	CreatedAt        time.Time `json:"createdAt"`
}
