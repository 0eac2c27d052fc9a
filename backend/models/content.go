package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Blog struct {
	gorm.Model
	Title       string                      `gorm:"not null" json:"title"`
	Slug        string                      `gorm:"index" json:"slug"`
	Excerpt     string                      `json:"excerpt"`
	Content     string                      `gorm:"not null" json:"content"`
	AuthorID    uint                        `json:"authorId"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	IsPublished bool                        `gorm:"not null;default:false" json:"isPublished"`
	PublishedAt *time.Time                  `json:"publishedAt,omitempty"`
}

type Career struct {
	gorm.Model
	Title          string                      `gorm:"not null" json:"title"`
	Department     string                      `json:"department"`
	Location       string                      `json:"location"`
	EmploymentType string                      `json:"employmentType"` // full-time, part-time, contract
	Description    string                      `gorm:"not null" json:"description"`
	Requirements   datatypes.JSONSlice[string] `json:"requirements"`
	Benefits       datatypes.JSONSlice[string] `json:"benefits"`
	IsActive       bool                        `gorm:"not null" json:"isActive"`
}

type Announcement struct {
	gorm.Model
	Message  string     `gorm:"not null" json:"message"`
	IsActive bool       `gorm:"not null" json:"isActive"`
	StartsAt *time.Time `json:"startsAt,omitempty"`
	EndsAt   *time.Time `json:"endsAt,omitempty"`
}

// Visible reports whether an active announcement's window contains now.
func (a *Announcement) Visible(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.StartsAt != nil && now.Before(*a.StartsAt) {
		return false
	}
	if a.EndsAt != nil && !now.Before(*a.EndsAt) {
		return false
	}
	return true
}
