package routes

import (
	"learnhub/backend/config"
	"learnhub/backend/controllers"
	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// NewApp builds the Fiber app with the shared error handler and middleware.
func NewApp(cfg *config.Config, logger *utils.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "learnhub",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return utils.HandleError(c, logger, err)
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	return app
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, log *utils.Logger, svc *services.Services) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes
	authController := controllers.NewAuthController(db, cfg, log, svc.Policy)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg, svc.Users, log)
	adminMiddleware := middleware.AdminMiddleware(svc.Policy, log)

	api := app.Group("/api", authMiddleware)

	// User routes
	userController := controllers.NewUserController(db, cfg, log, svc.Progress, svc.Achievements)
	api.Get("/user/profile", userController.GetProfile)
	api.Get("/achievements", userController.GetAchievements)

	// Lesson routes
	lessonsController := controllers.NewLessonsController(db, cfg, log, svc.Policy, svc.Progress, svc.Bookmarks)
	overviewController := controllers.NewOverviewController(db, log, svc.Progress)
	api.Get("/overview", overviewController.GetUserOverview)

	api.Get("/lessons", lessonsController.ListLessons)
	api.Get("/lessons/search", overviewController.SearchLessons)
	api.Get("/lessons/:id", lessonsController.GetLesson)
	api.Post("/lessons/:id/progress", lessonsController.RecordProgress)
	api.Get("/categories", lessonsController.ListCategories)

	// Progress routes
	progressController := controllers.NewProgressController(log, svc.Progress)
	api.Get("/progress", progressController.GetProgress)
	api.Get("/progress/overview", progressController.GetProgressOverview)

	// Bookmark routes
	bookmarksController := controllers.NewBookmarksController(log, svc.Bookmarks)
	api.Get("/bookmarks", bookmarksController.GetBookmarks)
	api.Post("/bookmarks", bookmarksController.ToggleBookmark)

	announcementsController := controllers.NewAnnouncementsController(db, log)
	api.Get("/announcements", announcementsController.GetActiveAnnouncements)

	// Admin routes
	admin := api.Group("/admin", adminMiddleware)

	blogsController := controllers.NewBlogsController(db, log)
	admin.Get("/blogs", blogsController.ListBlogs)
	admin.Post("/blogs", blogsController.CreateBlog)
	admin.Put("/blogs/:id", blogsController.UpdateBlog)
	admin.Delete("/blogs/:id", blogsController.DeleteBlog)

	careersController := controllers.NewCareersController(db, log)
	admin.Get("/careers", careersController.ListCareers)
	admin.Post("/careers", careersController.CreateCareer)
	admin.Put("/careers/:id", careersController.UpdateCareer)
	admin.Delete("/careers/:id", careersController.DeleteCareer)

	admin.Get("/announcements", announcementsController.ListAnnouncements)
	admin.Post("/announcements", announcementsController.CreateAnnouncement)
	admin.Delete("/announcements/:id", announcementsController.DeleteAnnouncement)
	admin.Patch("/announcements/:id/toggle", announcementsController.ToggleAnnouncement)

	admin.Get("/lessons", lessonsController.AdminListLessons)
	admin.Post("/lessons", lessonsController.CreateLesson)
	admin.Put("/lessons/:id", lessonsController.UpdateLesson)
	admin.Patch("/lessons/:id/publish", lessonsController.PublishLesson)
	admin.Post("/categories", lessonsController.CreateCategory)

	adminUsersController := controllers.NewAdminUsersController(log, svc.Users, svc.Progress)
	admin.Get("/users", adminUsersController.ListUsers)
	admin.Get("/users/export", adminUsersController.ExportUsers)
	admin.Post("/users/:id/reset-progress", adminUsersController.ResetProgress)
	admin.Patch("/users/:id/status", adminUsersController.UpdateStatus)
}
