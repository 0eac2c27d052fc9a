package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// DB opens a private in-memory sqlite database with every model migrated.
// A single connection keeps transactions serialised.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.AutoMigrate(models.All()...); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return db
}

// Config returns a configuration suitable for tests.
func Config() *config.Config {
	return &config.Config{
		Env:           "test",
		ServerPort:    "8080",
		DBDriver:      "sqlite",
		JWTSecret:     "testsecret",
		JWTTTL:        time.Hour,
		CORSOrigins:   "*",
		StreakMode:    config.StreakPerCompletion,
		StreakSweepAt: "00:05",
	}
}

func CreateUser(tb testing.TB, db *gorm.DB, externalID, role string) *models.User {
	tb.Helper()
	user := &models.User{
		ExternalAuthID: externalID,
		Name:           externalID,
		Email:          externalID + "@example.com",
		Role:           role,
		IsActive:       true,
	}
	if err := db.Create(user).Error; err != nil {
		tb.Fatalf("create user: %v", err)
	}
	return user
}

func CreateLesson(tb testing.TB, db *gorm.DB, title string, published bool) *models.Lesson {
	tb.Helper()
	lesson := &models.Lesson{Title: title, Content: title + " content", IsPublished: published}
	if err := db.Create(lesson).Error; err != nil {
		tb.Fatalf("create lesson: %v", err)
	}
	return lesson
}

// SetStreak overwrites the streak columns of a user.
func SetStreak(tb testing.TB, db *gorm.DB, userID uint, current, longest int, lastActive *time.Time) {
	tb.Helper()
	err := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"current_streak":   current,
		"longest_streak":   longest,
		"last_active_date": lastActive,
	}).Error
	if err != nil {
		tb.Fatalf("set streak: %v", err)
	}
}
