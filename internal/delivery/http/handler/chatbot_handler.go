package handler

import (
	"errors"

	"jobpath/internal/delivery/http/middleware"
	"jobpath/internal/pkg/response"
	"jobpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ChatbotHandler struct {
	uc usecase.ChatbotUsecase
}

type askRequest struct {
	Question string `json:"question"`
}

func NewChatbotHandler(uc usecase.ChatbotUsecase) *ChatbotHandler {
	return &ChatbotHandler{uc: uc}
}

func (h *ChatbotHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/chat/ask", h.Ask)
}

func (h *ChatbotHandler) Ask(c fiber.Ctx) error {
	var req askRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	answer, err := h.uc.Ask(c.Context(), req.Question)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyQuestion) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Question is empty", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, answer)
}
