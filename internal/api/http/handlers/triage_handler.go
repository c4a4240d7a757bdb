package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/telecom-triage/internal/api/dto"
	"github.com/spec-kit/telecom-triage/internal/auth"
	"github.com/spec-kit/telecom-triage/internal/service"
	apperrors "github.com/spec-kit/telecom-triage/pkg/util"
)

// TriageHandler exposes the classification and conversation endpoints.
type TriageHandler struct {
	service *service.TriageService
}

// NewTriageHandler constructs handler.
func NewTriageHandler(triageService *service.TriageService) *TriageHandler {
	return &TriageHandler{service: triageService}
}

// Classify POST /classify. Dry run: classifies without persisting anything.
func (h *TriageHandler) Classify(c *fiber.Ctx) error {
	var req dto.ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.Classify(c.UserContext(), req.Query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewClassificationResponse(result)})
}

// RecordInteraction POST /conversations. Classifies the turn, stores the
// conversation, and opens the matching query or grievance record.
func (h *TriageHandler) RecordInteraction(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.RecordInteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.RecordInteraction(c.UserContext(), service.RecordInteractionInput{
		UserID:   principal.User.ID,
		Phone:    principal.User.Phone,
		Query:    req.Query,
		Response: req.Response,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.InteractionResponse{
			ConversationID: result.ConversationID,
			RecordID:       result.RecordID,
			Classification: dto.NewClassificationResponse(result.Classification),
		},
	})
}

// ListConversations GET /conversations.
func (h *TriageHandler) ListConversations(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	conversations, err := h.service.ListConversations(c.UserContext(), principal.User.ID, limit, offset)
	if err != nil {
		return err
	}

	items := make([]dto.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		items = append(items, dto.NewConversationResponse(conversations[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetConversation GET /conversations/:id. Scoped to the caller's own turns.
func (h *TriageHandler) GetConversation(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid conversation id", nil)
	}

	conversation, err := h.service.GetConversation(c.UserContext(), principal.User.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewConversationResponse(*conversation)})
}
