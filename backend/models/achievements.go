package models

import "time"

const (
	AchievementLessonsCompleted = "lessons_completed"
	AchievementStreak           = "streak"
	AchievementBookmarks        = "bookmarks"
)

// Achievement is a catalogue entry. Rows are seeded from the built-in rule set.
type Achievement struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Key         string `gorm:"uniqueIndex;not null" json:"key"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Kind        string `gorm:"not null" json:"kind"`
	Threshold   int    `gorm:"not null" json:"threshold"`
	SortOrder   int    `gorm:"not null;index" json:"sortOrder"`
}

// UserAchievement is never updated or deleted once written.
type UserAchievement struct {
	ID            uint         `gorm:"primarykey" json:"id"`
	UserID        uint         `gorm:"uniqueIndex:idx_user_achievement;not null" json:"userId"`
	AchievementID uint         `gorm:"uniqueIndex:idx_user_achievement;not null" json:"achievementId"`
	Achievement   *Achievement `json:"achievement,omitempty"`
	UnlockedAt    time.Time    `gorm:"not null" json:"unlockedAt"`
}
