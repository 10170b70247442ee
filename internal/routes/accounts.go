package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/life-connect/life_connect/internal/account"
)

// RegisterAccountRoutes wires registration and login.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler, rateLimiter fiber.Handler) {
	r.Post("/register", h.Register)
	if rateLimiter != nil {
		r.Post("/login", rateLimiter, h.Login)
	} else {
		r.Post("/login", h.Login)
	}
}
