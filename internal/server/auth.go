package server

import (
	"github.com/gofiber/fiber/v2"

	"devconnector/internal/middleware"
	"devconnector/internal/models"
)

const (
	authHeader = "x-auth-token"

	MsgNoToken      = "No token, authorization denied"
	MsgInvalidToken = "Invalid token. Please try again"
)

// AuthRequired rejects requests without a valid x-auth-token and exposes the caller's id
// as c.Locals("userID") and on the request context.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(authHeader)
		if token == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError(MsgNoToken))
		}

		userID, err := s.tokens.Verify(token)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError(MsgInvalidToken))
		}

		c.Locals("userID", userID)
		c.SetUserContext(middleware.WithUserID(c.UserContext(), userID))
		return c.Next()
	}
}

func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals("userID").(string)
	return id
}
