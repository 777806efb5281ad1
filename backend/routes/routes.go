package routes

import (
	"studyhub/backend/config"
	"studyhub/backend/controllers"
	"studyhub/backend/middleware"
	"studyhub/backend/store"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// SetupRoutes registers every API route and returns a function releasing
// the controllers' store subscriptions.
func SetupRoutes(app *fiber.App, s *store.Store, cfg *config.Config, log zerolog.Logger) (cleanup func()) {
	// Auth routes
	authController := controllers.NewAuthController(s, cfg, log)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/logout", authController.Logout)
	app.Get("/api/auth/me", authController.CurrentUser)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	instructorMiddleware := middleware.InstructorMiddleware(s)

	// User routes
	userController := controllers.NewUserController(s, cfg)
	user := app.Group("/api/user", authMiddleware)
	user.Get("/profile", userController.GetProfile)
	user.Put("/profile", userController.UpdateProfile)
	user.Post("/notes", userController.AddNote)
	user.Post("/achievements", userController.AddAchievement)

	// Progress routes
	progressController := controllers.NewProgressController(s, cfg, log)
	app.Get("/api/progress/overview", authMiddleware, progressController.GetProgressOverview)
	app.Post("/api/lessons/:id/complete", authMiddleware, progressController.CompleteLesson)
	app.Get("/api/leaderboard", progressController.GetLeaderboard)

	overviewController := controllers.NewOverviewController(s, cfg)
	app.Get("/api/overview", authMiddleware, overviewController.GetUserOverview)

	// Courses routes
	coursesController := controllers.NewCoursesController(s, cfg)
	courses := app.Group("/api/courses")
	courses.Get("/", coursesController.GetCourses)
	courses.Get("/:id", coursesController.GetCourseDetails)
	courses.Post("/:id/enroll", authMiddleware, coursesController.Enroll)
	courses.Post("/:id/certificate", authMiddleware, coursesController.IssueCertificate)

	// Community routes
	commentsController := controllers.NewCommentsController(s, cfg)
	courses.Get("/:id/comments", commentsController.GetCourseComments)
	courses.Post("/:id/comments", authMiddleware, commentsController.AddCourseComment)
	app.Post("/api/comments/:id/replies", authMiddleware, commentsController.ReplyToComment)
	app.Get("/api/feed", commentsController.GetFeed)

	// Instructor routes, edits limited to the course owner
	courses.Post("/", authMiddleware, instructorMiddleware, coursesController.CreateCourse)
	courses.Put("/:id", authMiddleware, instructorMiddleware, coursesController.RequireOwner, coursesController.UpdateCourse)
	courses.Delete("/:id", authMiddleware, instructorMiddleware, coursesController.RequireOwner, coursesController.DeleteCourse)

	// Analytics routes
	analyticsController := controllers.NewAnalyticsController(s, cfg)
	courses.Get("/:id/analytics", authMiddleware, instructorMiddleware, coursesController.RequireOwner, analyticsController.GetCourseAnalytics)
	app.Get("/api/analytics/platform", authMiddleware, instructorMiddleware, analyticsController.GetPlatformAnalytics)

	return coursesController.Close
}
