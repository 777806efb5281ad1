package controllers

import (
	"studyhub/backend/config"
	"studyhub/backend/middleware"
	"studyhub/backend/models"
	"studyhub/backend/store"
	"studyhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Store *store.Store
	Cfg   *config.Config
}

func NewUserController(s *store.Store, cfg *config.Config) *UserController {
	return &UserController{Store: s, Cfg: cfg}
}

type UpdateUserRequest struct {
	Name               *string                    `json:"name" example:"Ada Lovelace"`
	Email              *string                    `json:"email" example:"user@example.com" format:"email"`
	Password           *string                    `json:"password"`
	Avatar             *string                    `json:"avatar" example:"https://example.com/a.png"`
	SubscriptionStatus *models.SubscriptionStatus `json:"subscriptionStatus" enums:"free,premium"`
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns authenticated user's profile data
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user, err := uc.Store.GetUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return utils.NotFound(c, "User not found")
	}

	return utils.Success(c, fiber.StatusOK, user.Public())
}

// UpdateProfile godoc
// @Summary Update user profile
// @Description Updates the profile fields a user may edit; progress counters are not editable
// @Tags users
// @Accept json
// @Produce json
// @Param input body UpdateUserRequest true "Profile update data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	var input UpdateUserRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	patch := models.UserPatch{
		Name:               input.Name,
		Email:              input.Email,
		Password:           input.Password,
		Avatar:             input.Avatar,
		SubscriptionStatus: input.SubscriptionStatus,
	}
	userID := middleware.UserID(c)
	if err := uc.Store.UpdateUser(c.UserContext(), userID, patch); err != nil {
		return utils.StoreError(c, err)
	}

	user, err := uc.Store.GetUser(c.UserContext(), userID)
	if err != nil {
		return utils.StoreError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, user.Public())
}

// AddNote godoc
// @Summary Add a lesson note
// @Tags users
// @Accept json
// @Produce json
// @Param note body models.Note true "Note"
// @Success 201 {object} models.Note
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/notes [post]
func (uc *UserController) AddNote(c *fiber.Ctx) error {
	var input models.Note
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	note, err := uc.Store.AddNote(c.UserContext(), middleware.UserID(c), input)
	if err != nil {
		return utils.StoreError(c, err)
	}
	return utils.Created(c, note)
}

// AddAchievement godoc
// @Summary Unlock an achievement
// @Description Used by mini-games to record achievements. Already held ids are ignored
// @Tags users
// @Accept json
// @Produce json
// @Param achievement body models.Achievement true "Achievement"
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /user/achievements [post]
func (uc *UserController) AddAchievement(c *fiber.Ctx) error {
	var input models.Achievement
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	userID := middleware.UserID(c)
	user, err := uc.Store.GetUser(c.UserContext(), userID)
	if err != nil {
		return utils.StoreError(c, err)
	}
	// the store does not deduplicate achievements
	if user.HasAchievement(input.ID) {
		return c.JSON(fiber.Map{"message": "Achievement already unlocked"})
	}

	input.Unlocked = true
	if err := uc.Store.AddAchievement(c.UserContext(), userID, input); err != nil {
		return utils.StoreError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":     "Achievement unlocked",
		"achievement": input,
	})
}
