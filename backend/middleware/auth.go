package middleware

import (
	"studyhub/backend/config"
	"studyhub/backend/models"
	"studyhub/backend/store"
	"studyhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// LocalUserID is the fiber.Ctx local holding the authenticated user's id.
const LocalUserID = "user_id"

func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, err.Error())
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

// InstructorMiddleware allows only users with the instructor role. It must
// run after AuthMiddleware.
func InstructorMiddleware(s *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(LocalUserID).(string)
		user, err := s.GetUser(c.UserContext(), userID)
		if err != nil {
			return utils.Unauthorized(c, "Unknown user")
		}

		if user.Role != models.RoleInstructor {
			return utils.Forbidden(c, "Instructor access required")
		}

		return c.Next()
	}
}

// UserID returns the id stored by AuthMiddleware.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
