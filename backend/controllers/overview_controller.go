package controllers

import (
	"studyhub/backend/config"
	"studyhub/backend/middleware"
	"studyhub/backend/models"
	"studyhub/backend/store"
	"studyhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type OverviewController struct {
	Store *store.Store
	Cfg   *config.Config
}

func NewOverviewController(s *store.Store, cfg *config.Config) *OverviewController {
	return &OverviewController{Store: s, Cfg: cfg}
}

// GetUserOverview возвращает обзорную информацию для пользователя
// @Summary Home screen overview
// @Description Streak, XP, up to three unfinished courses and recommendations
// @Tags progress
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /overview [get]
func (oc *OverviewController) GetUserOverview(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	user, err := oc.Store.GetUser(c.UserContext(), userID)
	if err != nil {
		return utils.StoreError(c, err)
	}

	// Активные курсы
	courses := oc.Store.GetCourses(c.UserContext())
	active := []models.CourseProgress{}
	for _, id := range user.EnrolledCourseIDs {
		course := models.FindCourse(courses, id)
		if course == nil {
			continue
		}
		if p := models.ProgressFor(user, course); p.CompletionRate < 100 {
			active = append(active, p)
		}
		if len(active) == 3 {
			break
		}
	}

	recommendations, err := oc.Store.Recommendations(c.UserContext(), userID, c.QueryInt("recommendations", 3))
	if err != nil {
		return utils.StoreError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"streak_days":         user.Streak,
		"xp":                  user.XP,
		"courses_completed":   len(user.Certificates),
		"subscription_status": user.SubscriptionStatus,
		"active_courses":      active,
		"recommendations":     recommendations,
	})
}
