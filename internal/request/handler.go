package request

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/life-connect/life_connect/internal/donor"
)

// Handler exposes the matching workflow and peer lifecycle over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a request handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type submitRequest struct {
	Name       string `json:"name" form:"name"`
	Gender     string `json:"gender" form:"gender"`
	Mobile     string `json:"mobile" form:"mobile"`
	Email      string `json:"email" form:"email"`
	BloodGroup string `json:"blood_group" form:"blood_group"`
	City       string `json:"city" form:"city"`
	State      string `json:"state" form:"state"`
}

// Submit handles POST /find: the full matching workflow.
func (h *Handler) Submit(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	page := c.QueryInt("page", 1)

	outcome, err := h.service.Submit(c.UserContext(), Submission{
		Name:       req.Name,
		Gender:     req.Gender,
		Mobile:     req.Mobile,
		Email:      req.Email,
		BloodGroup: req.BloodGroup,
		City:       req.City,
		State:      req.State,
	}, page)
	if err != nil {
		return mapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"request_id":        outcome.RequestID,
		"confirmation_sent": outcome.ConfirmationSent,
		"lookup_failed":     outcome.LookupFailed,
		"donors_matched":    outcome.DonorsMatched,
		"donors_notified":   outcome.DonorsNotified,
		"failed_recipients": outcome.FailedRecipients,
		"donors":            outcome.Listing,
		"message":           submitMessage(outcome),
	})
}

type broadcastRequest struct {
	PatientName  string `json:"patient_name" form:"patient_name"`
	PatientPhone string `json:"patient_phone" form:"patient_phone"`
	BloodGroup   string `json:"blood_group" form:"blood_group"`
	City         string `json:"city" form:"city"`
	State        string `json:"state" form:"state"`
}

// Broadcast handles POST /request_blood: alert matching donors, persist nothing.
func (h *Handler) Broadcast(c *fiber.Ctx) error {
	var req broadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.service.Broadcast(c.UserContext(), Alert{
		PatientName:  req.PatientName,
		PatientPhone: req.PatientPhone,
		BloodGroup:   req.BloodGroup,
		City:         req.City,
		State:        req.State,
	})
	if err != nil {
		return mapError(err)
	}

	message := "No matching donors found."
	if outcome.DonorsNotified > 0 {
		message = "Blood request sent to matching donors."
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"donors_matched":    outcome.DonorsMatched,
		"donors_notified":   outcome.DonorsNotified,
		"failed_recipients": outcome.FailedRecipients,
		"message":           message,
	})
}

type peerMessageRequest struct {
	Message string `json:"message" form:"message"`
}

// SendPeer handles POST /send_request/:to_user_id.
func (h *Handler) SendPeer(c *fiber.Ctx) error {
	var req peerMessageRequest
	if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	fromUser, _ := c.Locals("user_id").(string)

	peer, err := h.service.CreatePeer(c.UserContext(), fromUser, c.Params("to_user_id"), req.Message)
	if err != nil {
		return mapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"request_id": peer.ID,
		"status":     peer.Status,
		"message":    "Request sent successfully.",
	})
}

// HandlePeer handles POST /handle_request/:request_id/:action.
func (h *Handler) HandlePeer(c *fiber.Ctx) error {
	actor, _ := c.Locals("user_id").(string)

	peer, err := h.service.ResolvePeer(c.UserContext(), c.Params("request_id"), actor, c.Params("action"))
	if err != nil {
		return mapError(err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"request_id": peer.ID,
		"status":     peer.Status,
		"message":    "Request " + peer.Status + ".",
	})
}

func submitMessage(outcome Outcome) string {
	switch {
	case outcome.LookupFailed:
		return "Your request was recorded, but the donor lookup failed. We will retry shortly."
	case outcome.DonorsNotified > 0:
		return "Blood request sent to matching donors."
	default:
		return "No matching donors found."
	}
}

func mapError(err error) error {
	var verr ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.NewError(http.StatusBadRequest, verr.Error())
	case errors.Is(err, ErrDuplicateSubmission):
		return fiber.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotRecipient):
		return fiber.NewError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidAction):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrAlreadyResolved):
		return fiber.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, donor.ErrUnavailable):
		return fiber.NewError(http.StatusServiceUnavailable, "donor directory unavailable")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
