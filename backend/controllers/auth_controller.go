package controllers

import (
	"errors"
	"studyhub/backend/config"
	"studyhub/backend/models"
	"studyhub/backend/store"
	"studyhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type AuthController struct {
	Store *store.Store
	Cfg   *config.Config
	Log   zerolog.Logger
}

func NewAuthController(s *store.Store, cfg *config.Config, log zerolog.Logger) *AuthController {
	return &AuthController{Store: s, Cfg: cfg, Log: log}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a new user account and starts a session for it
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.RegisterInput true "User registration data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input models.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Role == "" {
		input.Role = models.RoleStudent
	}

	user, err := ac.Store.RegisterUser(c.UserContext(), input)
	if err != nil {
		return utils.StoreError(c, err)
	}

	return ac.session(c, user, nil)
}

// Login godoc
// @Summary User login
// @Description Authenticate user, bump the streak and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	user, err := ac.Store.LoginUser(c.UserContext(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}
		return utils.StoreError(c, err)
	}

	// Streak achievements
	earned, err := ac.Store.AwardAchievements(c.UserContext(), user.ID)
	if err != nil {
		ac.Log.Warn().Err(err).Str("user_id", user.ID).Msg("could not award achievements")
	}
	if len(earned) > 0 {
		user.Achievements = append(user.Achievements, earned...)
	}

	return ac.session(c, user, earned)
}

// Logout godoc
// @Summary Logout
// @Description Clears the current session
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Store.Logout(c.UserContext()); err != nil {
		return utils.StoreError(c, err)
	}
	return utils.NoContent(c)
}

// CurrentUser godoc
// @Summary Current session user
// @Description Returns the user of the active session
// @Tags auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /auth/me [get]
func (ac *AuthController) CurrentUser(c *fiber.Ctx) error {
	user := ac.Store.GetCurrentUser(c.UserContext())
	if user == nil {
		return utils.NotFound(c, "No active session")
	}
	return utils.Success(c, fiber.StatusOK, user.Public())
}

func (ac *AuthController) session(c *fiber.Ctx, user *models.User, earned []models.Achievement) error {
	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	resp := fiber.Map{
		"token": token,
		"user":  user.Public(),
	}
	if len(earned) > 0 {
		resp["achievements_unlocked"] = earned
	}
	return c.JSON(resp)
}
