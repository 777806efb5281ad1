package controllers

import (
	"studyhub/backend/config"
	"studyhub/backend/store"
	"studyhub/backend/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsController struct {
	Store *store.Store
	Cfg   *config.Config
}

func NewAnalyticsController(s *store.Store, cfg *config.Config) *AnalyticsController {
	return &AnalyticsController{Store: s, Cfg: cfg}
}

// GetCourseAnalytics возвращает аналитику по курсу
// @Summary Course analytics
// @Description Enrollment and completion statistics, visible to the course's instructor only
// @Tags analytics
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} models.CourseAnalytics
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/analytics [get]
func (ac *AnalyticsController) GetCourseAnalytics(c *fiber.Ctx) error {
	// Права автора проверяет CoursesController.RequireOwner
	stats, err := ac.Store.CourseAnalytics(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.StoreError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, stats)
}

// GetPlatformAnalytics возвращает аналитику по всей платформе
// @Summary Platform analytics
// @Tags analytics
// @Produce json
// @Success 200 {object} models.PlatformAnalytics
// @Security ApiKeyAuth
// @Router /analytics/platform [get]
func (ac *AnalyticsController) GetPlatformAnalytics(c *fiber.Ctx) error {
	metrics := ac.Store.PlatformAnalytics(c.UserContext(), 5)
	return utils.Success(c, fiber.StatusOK, metrics, fiber.Map{
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
