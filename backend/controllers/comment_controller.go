package controllers

import (
	"studyhub/backend/config"
	"studyhub/backend/middleware"
	"studyhub/backend/models"
	"studyhub/backend/store"
	"studyhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CommentsController struct {
	Store *store.Store
	Cfg   *config.Config
}

func NewCommentsController(s *store.Store, cfg *config.Config) *CommentsController {
	return &CommentsController{Store: s, Cfg: cfg}
}

// AddCourseComment godoc
// @Summary Add comment to course
// @Description Adds a comment with an optional rating to a course
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param input body models.CommentInput true "Comment data"
// @Success 201 {object} models.Comment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/comments [post]
func (cc *CommentsController) AddCourseComment(c *fiber.Ctx) error {
	var input models.CommentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	comment, err := cc.Store.AddComment(c.UserContext(), middleware.UserID(c), c.Params("id"), input)
	if err != nil {
		return utils.StoreError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetCourseComments godoc
// @Summary Get course comments
// @Description Returns all comments for a course with their average rating
// @Tags comments
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{id}/comments [get]
func (cc *CommentsController) GetCourseComments(c *fiber.Ctx) error {
	courseID := c.Params("id")
	if _, err := cc.Store.GetCourse(c.UserContext(), courseID); err != nil {
		return utils.StoreError(c, err)
	}

	comments := cc.Store.CourseComments(c.UserContext(), courseID)
	return c.JSON(fiber.Map{
		"comments":       comments,
		"average_rating": models.AverageRating(comments),
	})
}

// ReplyToComment godoc
// @Summary Reply to a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Comment ID"
// @Param input body models.ReplyInput true "Reply"
// @Success 201 {object} models.CommentReply
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /comments/{id}/replies [post]
func (cc *CommentsController) ReplyToComment(c *fiber.Ctx) error {
	var input models.ReplyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	reply, err := cc.Store.ReplyToComment(c.UserContext(), middleware.UserID(c), c.Params("id"), input)
	if err != nil {
		return utils.StoreError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}

// GetFeed godoc
// @Summary Community feed
// @Description Newest comments across all courses
// @Tags comments
// @Produce json
// @Param limit query int false "Max entries" default(20)
// @Success 200 {object} utils.SuccessResponse
// @Router /feed [get]
func (cc *CommentsController) GetFeed(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, cc.Store.Feed(c.UserContext(), c.QueryInt("limit", 20)))
}
