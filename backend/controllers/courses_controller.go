package controllers

import (
	"studyhub/backend/config"
	"studyhub/backend/middleware"
	"studyhub/backend/models"
	"studyhub/backend/store"
	"studyhub/backend/utils"
	"sync"

	"github.com/gofiber/fiber/v2"
)

type CoursesController struct {
	Store *store.Store
	Cfg   *config.Config

	mu         sync.RWMutex
	catalog    []models.Course // nil when stale
	generation uint64          // bumped by every invalidate

	unsubscribe func()
}

// NewCoursesController caches the catalog and drops the cache whenever the
// store reports a change.
func NewCoursesController(s *store.Store, cfg *config.Config) *CoursesController {
	cc := &CoursesController{Store: s, Cfg: cfg}
	cc.unsubscribe = s.Subscribe(cc.invalidate)
	return cc
}

// Close stops listening for store changes.
func (cc *CoursesController) Close() {
	cc.unsubscribe()
}

func (cc *CoursesController) invalidate() {
	cc.mu.Lock()
	cc.catalog = nil
	cc.generation++
	cc.mu.Unlock()
}

func (cc *CoursesController) courses(c *fiber.Ctx) []models.Course {
	cc.mu.RLock()
	cached, gen := cc.catalog, cc.generation
	cc.mu.RUnlock()
	if cached != nil {
		return cached
	}

	fresh := cc.Store.GetCourses(c.UserContext())
	cc.mu.Lock()
	// skip the refill when a write committed during the read
	if cc.generation == gen {
		cc.catalog = fresh
	}
	cc.mu.Unlock()
	return fresh
}

// GetCourses godoc
// @Summary List courses
// @Description Returns the course catalog filtered by search text, category and difficulty
// @Tags courses
// @Produce json
// @Param search query string false "Search term"
// @Param category query string false "Category"
// @Param difficulty query string false "Beginner|Intermediate|Advanced"
// @Param published query bool false "Only published courses"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size, 0 for all" default(0)
// @Success 200 {object} utils.PaginatedResponse
// @Router /courses [get]
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	filtered := models.FilterCourses(cc.courses(c), models.CourseFilter{
		Search:        c.Query("search"),
		Category:      c.Query("category"),
		Difficulty:    models.Difficulty(c.Query("difficulty")),
		PublishedOnly: c.QueryBool("published", false),
	})

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 0)
	if page < 1 {
		page = 1
	}
	total := int64(len(filtered))
	if pageSize > 0 {
		start := (page - 1) * pageSize
		if start > len(filtered) {
			start = len(filtered)
		}
		end := start + pageSize
		if end > len(filtered) {
			end = len(filtered)
		}
		filtered = filtered[start:end]
	} else {
		pageSize = len(filtered)
	}

	return utils.Paginate(c, filtered, total, page, pageSize)
}

// GetCourseDetails godoc
// @Summary Course details
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{id} [get]
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	course := models.FindCourse(cc.courses(c), c.Params("id"))
	if course == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	resp := fiber.Map{"course": course}
	// Публичный маршрут: прогресс только при валидном токене
	if userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg); err == nil {
		if user, err := cc.Store.GetUser(c.UserContext(), userID); err == nil {
			resp["enrolled"] = user.HasEnrolled(course.ID)
			resp["progress"] = models.ProgressFor(user, course)
		}
	}
	return c.JSON(resp)
}

// CreateCourse godoc
// @Summary Create a course
// @Description Instructor only. Id and creation time are assigned by the server
// @Tags courses
// @Accept json
// @Produce json
// @Param course body models.NewCourse true "Course"
// @Success 201 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var input models.NewCourse
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.InstructorID == "" {
		if user, err := cc.Store.GetUser(c.UserContext(), middleware.UserID(c)); err == nil {
			input.InstructorID = user.ID
			input.InstructorName = user.Name
		}
	}

	course, err := cc.Store.AddCourse(c.UserContext(), input)
	if err != nil {
		return utils.StoreError(c, err)
	}
	cc.invalidate()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

// RequireOwner lets the request through only for the instructor who owns
// the course in the :id param. It runs after AuthMiddleware.
func (cc *CoursesController) RequireOwner(c *fiber.Ctx) error {
	course, err := cc.Store.GetCourse(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.StoreError(c, err)
	}
	if course.InstructorID != middleware.UserID(c) {
		return utils.Forbidden(c, "You don't have permission to edit this course")
	}
	return c.Next()
}

// UpdateCourse godoc
// @Summary Update a course
// @Description Owning instructor only. Only the fields present in the body change
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param patch body models.CoursePatch true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id} [put]
func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	var patch models.CoursePatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if err := cc.Store.UpdateCourse(c.UserContext(), c.Params("id"), patch); err != nil {
		return utils.StoreError(c, err)
	}
	cc.invalidate()

	course, err := cc.Store.GetCourse(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.StoreError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Course updated",
		"course":  course,
	})
}

// DeleteCourse godoc
// @Summary Delete a course
// @Description Owning instructor only
// @Tags courses
// @Param id path string true "Course ID"
// @Success 204
// @Security ApiKeyAuth
// @Router /courses/{id} [delete]
func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	if err := cc.Store.DeleteCourse(c.UserContext(), c.Params("id")); err != nil {
		return utils.StoreError(c, err)
	}
	cc.invalidate()
	return utils.NoContent(c)
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags courses
// @Param id path string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/enroll [post]
func (cc *CoursesController) Enroll(c *fiber.Ctx) error {
	courseID := c.Params("id")
	if models.FindCourse(cc.courses(c), courseID) == nil {
		return utils.NotFound(c, "Course not found")
	}

	userID := middleware.UserID(c)
	if err := cc.Store.EnrollUser(c.UserContext(), userID, courseID); err != nil {
		return utils.StoreError(c, err)
	}

	user, err := cc.Store.GetUser(c.UserContext(), userID)
	if err != nil {
		return utils.StoreError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":          "Enrolled",
		"enrolled_courses": user.EnrolledCourseIDs,
	})
}

// IssueCertificate godoc
// @Summary Issue a course certificate
// @Description Requires every lesson of the course to be completed
// @Tags courses
// @Param id path string true "Course ID"
// @Success 200 {object} models.Certificate
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/certificate [post]
func (cc *CoursesController) IssueCertificate(c *fiber.Ctx) error {
	cert, err := cc.Store.IssueCertificate(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return utils.StoreError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, cert)
}
