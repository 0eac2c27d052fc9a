package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	gorm.Model
	ExternalAuthID string     `gorm:"uniqueIndex;not null" json:"externalAuthId"`
	Name           string     `json:"name"`
	Email          string     `gorm:"index" json:"email"`
	PasswordHash   string     `json:"-"`
	Role           string     `gorm:"not null;default:USER" json:"role"` // USER, ADMIN
	IsActive       bool       `gorm:"not null" json:"isActive"`
	CurrentStreak  int        `gorm:"not null;default:0" json:"currentStreak"`
	LongestStreak  int        `gorm:"not null;default:0" json:"longestStreak"`
	LastActiveDate *time.Time `json:"lastActiveDate,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type LoginHistory struct {
	gorm.Model
	UserID    uint
	LoginTime time.Time
}
