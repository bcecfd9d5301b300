package server

import (
	"github.com/gofiber/fiber/v2"

	"devconnector/internal/service"
)

// Register handles POST /api/users
func (s *Server) Register(c *fiber.Ctx) error {
	var in service.RegisterInput
	if err := parseBody(c, &in); err != nil {
		return invalidBody(c)
	}

	token, err := s.userService.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token})
}

// Login handles POST /api/auth
func (s *Server) Login(c *fiber.Ctx) error {
	var in service.LoginInput
	if err := parseBody(c, &in); err != nil {
		return invalidBody(c)
	}

	token, err := s.userService.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"token": token})
}

// GetAuthUser handles GET /api/auth
func (s *Server) GetAuthUser(c *fiber.Ctx) error {
	user, err := s.userService.CurrentUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
