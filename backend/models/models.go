package models

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&LoginHistory{},
		&Category{},
		&Lesson{},
		&LessonProgress{},
		&Bookmark{},
		&Achievement{},
		&UserAchievement{},
		&Blog{},
		&Career{},
		&Announcement{},
	}
}
