package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	Slug string `gorm:"index" json:"slug"`
}

type Lesson struct {
	gorm.Model
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `json:"description"`
	Content       string    `json:"content"`
	CategoryID    *uint     `gorm:"index" json:"categoryId"`
	Category      *Category `json:"category,omitempty"`
	IsPublished   bool      `gorm:"not null;default:false;index" json:"isPublished"`
	SequenceOrder int       `json:"sequenceOrder"`
	Duration      int       `json:"duration"` // minutes
}

// LessonProgress and Bookmark are hard-deleted, so they carry no DeletedAt:
// a soft-deleted row would still hold the unique (user, lesson) slot.
type LessonProgress struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	UserID         uint       `gorm:"uniqueIndex:idx_progress_user_lesson;not null" json:"userId"`
	LessonID       uint       `gorm:"uniqueIndex:idx_progress_user_lesson;not null" json:"lessonId"`
	Completed      bool       `gorm:"not null;default:false" json:"completed"`
	Score          *int       `json:"score,omitempty"`
	TimeSpent      int        `gorm:"not null;default:0" json:"timeSpent"` // seconds
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	LastAccessedAt time.Time  `json:"lastAccessedAt"`
}

type Bookmark struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    uint      `gorm:"uniqueIndex:idx_bookmark_user_lesson;not null" json:"userId"`
	LessonID  uint      `gorm:"uniqueIndex:idx_bookmark_user_lesson;not null" json:"lessonId"`
	Lesson    *Lesson   `json:"lesson,omitempty"`
}
