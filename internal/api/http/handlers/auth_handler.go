package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/telecom-triage/internal/api/dto"
	"github.com/spec-kit/telecom-triage/internal/service"
	apperrors "github.com/spec-kit/telecom-triage/pkg/util"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Phone == "" || req.Password == "" {
		return apperrors.NewValidationError("name, phone, password required", nil)
	}

	user, token, exp, err := h.auth.Register(c.Context(), req.Name, req.Phone, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token, ExpiresAt: exp, User: dto.NewUserResponse(user)},
	})
}

// CreateOperator handles POST /operators. The route sits behind the
// operator-only middleware; the bootstrap operator seeds the first account.
func (h *AuthHandler) CreateOperator(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Phone == "" || req.Password == "" {
		return apperrors.NewValidationError("name, phone, password required", nil)
	}

	user, _, _, err := h.auth.RegisterOperator(c.Context(), req.Name, req.Phone, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewUserResponse(user),
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Phone == "" || req.Password == "" {
		return apperrors.NewValidationError("phone and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Phone, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token, ExpiresAt: exp, User: dto.NewUserResponse(user)},
	})
}
