package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/life-connect/life_connect/internal/request"
)

// RegisterRequestRoutes wires the public blood-request endpoints.
func RegisterRequestRoutes(r fiber.Router, h *request.Handler) {
	// Full matching workflow: persist, confirm, alert matching donors.
	r.Post("/find", h.Submit)
	// Broadcast-only alert; nothing is persisted.
	r.Post("/request_blood", h.Broadcast)
}

// RegisterPeerRoutes wires the authenticated peer-request endpoints.
func RegisterPeerRoutes(r fiber.Router, h *request.Handler) {
	r.Post("/send_request/:to_user_id", h.SendPeer)
	r.Post("/handle_request/:request_id/:action", h.HandlePeer)
}
