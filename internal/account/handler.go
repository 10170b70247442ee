package account

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/life-connect/life_connect/internal/auth"
)

// Handler exposes registration, login and profile endpoints.
type Handler struct {
	service *Service
	tokens  *auth.Service
}

// NewHandler constructs an account HTTP handler.
func NewHandler(service *Service, tokens *auth.Service) *Handler {
	return &Handler{service: service, tokens: tokens}
}

type registerRequest struct {
	Name       string `json:"name" form:"name"`
	Email      string `json:"email" form:"email"`
	Phone      string `json:"phone" form:"phone"`
	Password   string `json:"password" form:"password"`
	BloodGroup string `json:"blood_group" form:"blood_group"`
	Address    string `json:"address" form:"address"`
	City       string `json:"city" form:"city"`
	State      string `json:"state" form:"state"`
}

type userResponse struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	BloodGroup string `json:"blood_group"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	IsDonor    bool   `json:"is_donor"`
	Photo      string `json:"photo,omitempty"`
}

func toUserResponse(user User) userResponse {
	return userResponse{
		UserID:     user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		BloodGroup: user.BloodGroup,
		Address:    user.Address,
		City:       user.City,
		State:      user.State,
		IsDonor:    user.IsDonor,
		Photo:      user.Photo,
	}
}

// Register handles POST /register.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Register(c.UserContext(), RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Password:   req.Password,
		BloodGroup: req.BloodGroup,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
	})
	if err != nil {
		var verr ValidationError
		switch {
		case errors.As(err, &verr):
			return fiber.NewError(http.StatusBadRequest, verr.Error())
		case errors.Is(err, ErrDuplicate):
			return fiber.NewError(http.StatusConflict, "a user with this email or phone already exists")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user":    toUserResponse(user),
		"message": "Registration successful. Please log in.",
	})
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Login handles POST /login and returns an access token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Authenticate(c.UserContext(), Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return fiber.NewError(http.StatusUnauthorized, "invalid email or password")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"user":         toUserResponse(user),
		"access_token": token.AccessToken,
		"expires_in":   token.ExpiresIn,
	})
}

type updateProfileRequest struct {
	Name       string `json:"name" form:"name"`
	Email      string `json:"email" form:"email"`
	Phone      string `json:"phone" form:"phone"`
	BloodGroup string `json:"blood_group" form:"blood_group"`
	Address    string `json:"address" form:"address"`
	City       string `json:"city" form:"city"`
	State      string `json:"state" form:"state"`
}

// UpdateProfile handles PUT /profile for the authenticated user.
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	err := h.service.UpdateProfile(c.UserContext(), userID, Profile{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		BloodGroup: req.BloodGroup,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "user not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"message": "Profile updated successfully."})
}

type photoRequest struct {
	Photo string `json:"photo" form:"photo"`
}

// SetPhoto handles POST /profile/photo: stores an opaque photo reference.
// File upload itself is handled elsewhere; only the reference lands here.
func (h *Handler) SetPhoto(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req photoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Photo == "" {
		return fiber.NewError(http.StatusBadRequest, "missing required field: photo")
	}

	if err := h.service.SetPhoto(c.UserContext(), userID, req.Photo); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "user not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"message": "Profile photo updated successfully."})
}

type toggleRequest struct {
	Donor bool `json:"donor" form:"donor"`
}

// ToggleDonor handles POST /profile/toggle: donor visibility on or off.
func (h *Handler) ToggleDonor(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req toggleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.SetDonorVisibility(c.UserContext(), userID, req.Donor); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "user not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	message := "Your profile is active. You are visible as a donor."
	if !req.Donor {
		message = "Your profile is inactive. You are not visible as a donor."
	}
	return c.JSON(fiber.Map{"is_donor": req.Donor, "message": message})
}
