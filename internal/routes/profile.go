package routes

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/life-connect/life_connect/internal/account"
	"github.com/life-connect/life_connect/internal/request"
)

// RegisterProfileRoutes wires the authenticated profile endpoints. The profile
// view composes the user document with the peer-request inbox.
func RegisterProfileRoutes(r fiber.Router, h *account.Handler, accounts *account.Service, requests *request.Service) {
	r.Get("/profile", func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		user, err := accounts.Get(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, account.ErrNotFound) {
				return fiber.NewError(http.StatusNotFound, "user not found")
			}
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}

		inbox, err := requests.Inbox(c.UserContext(), userID)
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}

		received := make([]fiber.Map, 0, len(inbox))
		for _, item := range inbox {
			received = append(received, fiber.Map{
				"request_id":     item.ID,
				"from_user":      item.FromUser,
				"from_user_name": item.FromName,
				"message":        item.Message,
				"status":         item.Status,
				"created_at":     item.CreatedAt,
			})
		}

		return c.JSON(fiber.Map{
			"user": fiber.Map{
				"user_id":     user.ID,
				"name":        user.Name,
				"email":       user.Email,
				"phone":       user.Phone,
				"blood_group": user.BloodGroup,
				"address":     user.Address,
				"city":        user.City,
				"state":       user.State,
				"is_donor":    user.IsDonor,
				"photo":       user.Photo,
				"created_at":  user.CreatedAt,
			},
			"requests": received,
		})
	})

	r.Put("/profile", h.UpdateProfile)
	r.Post("/profile/toggle", h.ToggleDonor)
	r.Post("/profile/photo", h.SetPhoto)
}
