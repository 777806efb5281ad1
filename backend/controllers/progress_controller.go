package controllers

import (
	"studyhub/backend/config"
	"studyhub/backend/middleware"
	"studyhub/backend/models"
	"studyhub/backend/store"
	"studyhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type ProgressController struct {
	Store *store.Store
	Cfg   *config.Config
	Log   zerolog.Logger
}

func NewProgressController(s *store.Store, cfg *config.Config, log zerolog.Logger) *ProgressController {
	return &ProgressController{Store: s, Cfg: cfg, Log: log}
}

// CompleteLesson godoc
// @Summary Complete a lesson
// @Description Marks the lesson completed and awards XP the first time
// @Tags progress
// @Param id path string true "Lesson ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /lessons/{id}/complete [post]
func (pc *ProgressController) CompleteLesson(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if err := pc.Store.CompleteLesson(c.UserContext(), userID, c.Params("id")); err != nil {
		return utils.StoreError(c, err)
	}

	earned, err := pc.Store.AwardAchievements(c.UserContext(), userID)
	if err != nil {
		pc.Log.Warn().Err(err).Str("user_id", userID).Msg("could not award achievements")
	}

	user, err := pc.Store.GetUser(c.UserContext(), userID)
	if err != nil {
		return utils.StoreError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":               "Lesson completed",
		"xp":                    user.XP,
		"completed_lessons":     user.CompletedLessonIDs,
		"achievements_unlocked": earned,
	})
}

// GetProgressOverview godoc
// @Summary Get progress overview
// @Description Returns XP, streak and per-course completion of enrolled courses
// @Tags progress
// @Produce json
// @Success 200 {object} models.ProgressOverview
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/overview [get]
func (pc *ProgressController) GetProgressOverview(c *fiber.Ctx) error {
	user, err := pc.Store.GetUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return utils.StoreError(c, err)
	}

	courses := pc.Store.GetCourses(c.UserContext())
	overview := models.ProgressOverview{
		XP:                 user.XP,
		Streak:             user.Streak,
		EnrolledCourses:    len(user.EnrolledCourseIDs),
		LessonsCompleted:   len(user.CompletedLessonIDs),
		CertificatesEarned: len(user.Certificates),
		Courses:            []models.CourseProgress{},
	}
	for _, a := range user.Achievements {
		if a.Unlocked {
			overview.AchievementsUnlocked++
		}
	}
	for _, id := range user.EnrolledCourseIDs {
		if course := models.FindCourse(courses, id); course != nil {
			overview.Courses = append(overview.Courses, models.ProgressFor(user, course))
		}
	}

	return c.JSON(overview)
}

// GetLeaderboard godoc
// @Summary Leaderboard
// @Description Users ranked by XP, then streak
// @Tags progress
// @Produce json
// @Param limit query int false "Max entries" default(10)
// @Success 200 {object} utils.SuccessResponse
// @Router /leaderboard [get]
func (pc *ProgressController) GetLeaderboard(c *fiber.Ctx) error {
	users := pc.Store.Leaderboard(c.UserContext(), c.QueryInt("limit", 10))

	entries := make([]fiber.Map, 0, len(users))
	for i, u := range users {
		entries = append(entries, fiber.Map{
			"rank":   i + 1,
			"id":     u.ID,
			"name":   u.Name,
			"avatar": u.Avatar,
			"xp":     u.XP,
			"streak": u.Streak,
		})
	}
	return utils.Success(c, fiber.StatusOK, entries)
}
